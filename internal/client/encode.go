package client

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodePathComponent кодирует строку для вставки в путь URL:
// всё, кроме ASCII букв и цифр, заменяется на %XX.
//
// Это строже, чем url.PathEscape: '/', '.', '-', '~' тоже кодируются,
// поэтому путь blob'а всегда остаётся одним сегментом.
func EncodePathComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
