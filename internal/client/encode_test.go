package client

import (
	"net/url"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestEncodePathComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"report", "report"},
		{"a b.txt", "a%20b%2Etxt"},
		{"dir/file", "dir%2Ffile"},
		{"a-b_c~d", "a%2Db%5Fc%7Ed"},
		{"100%", "100%25"},
		{"é", "%C3%A9"},
	}

	for _, tt := range tests {
		if got := EncodePathComponent(tt.in); got != tt.want {
			t.Errorf("EncodePathComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodePathComponent_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("round-trips through PathUnescape", prop.ForAll(
		func(s string) bool {
			decoded, err := url.PathUnescape(EncodePathComponent(s))
			return err == nil && decoded == s
		},
		gen.AnyString(),
	))

	properties.Property("output is alphanumeric or escapes", prop.ForAll(
		func(s string) bool {
			for _, c := range []byte(EncodePathComponent(s)) {
				if !isUnreserved(c) && c != '%' {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("alphanumeric strings are unchanged", prop.ForAll(
		func(s string) bool {
			return EncodePathComponent(s) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
