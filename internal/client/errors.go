package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind — семантический тип ошибки API.
type Kind int

const (
	// KindGeneric — любая другая ошибка: неожиданный статус,
	// сбой соединения, невалидное тело ответа.
	KindGeneric Kind = iota

	// KindUnauthorized — 401, токен не принят.
	KindUnauthorized

	// KindForbidden — 403, доступ запрещён.
	KindForbidden

	// KindNotFound — 404, ресурс не найден.
	KindNotFound

	// KindConflict — 409, конфликт состояния.
	KindConflict
)

// String возвращает имя типа ошибки.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "error"
	}
}

// maxErrorBody — сколько байт тела ответа попадает в описание ошибки.
const maxErrorBody = 512

// Error — ошибка операции Client.
//
// Сравнение с sentinel-ошибками идёт по Kind:
//
//	if errors.Is(err, client.ErrNotFound) { ... }
type Error struct {
	Kind       Kind   // семантический тип
	Op         string // операция Client, например "download blob file"
	StatusCode int    // HTTP-статус, 0 если ответа не было
	Detail     string // описание для KindGeneric
	Err        error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())

	switch {
	case e.Detail != "":
		b.WriteString(": ")
		b.WriteString(e.Detail)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap возвращает базовую ошибку.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибку с sentinel по Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.StatusCode == 0 && t.Detail == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinel-ошибки для errors.Is.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrGeneric      = &Error{Kind: KindGeneric}
)

// ErrScanAlreadyScheduled — scan для этого workflow уже запланирован.
// Возвращается только DispatchScan, обёрнутой в Error с KindConflict.
var ErrScanAlreadyScheduled = errors.New("scan already scheduled for this workflow")

// KindOf возвращает Kind ошибки. Ошибки не из этого пакета — KindGeneric.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// StatusError преобразует не-2xx HTTP-статус в Error.
func StatusError(op string, status int, body []byte) *Error {
	e := &Error{Op: op, StatusCode: status}

	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusForbidden:
		e.Kind = KindForbidden
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusConflict:
		e.Kind = KindConflict
	default:
		e.Kind = KindGeneric
		e.Detail = fmt.Sprintf("unexpected status %d", status)
		if excerpt := strings.TrimSpace(truncate(string(body), maxErrorBody)); excerpt != "" {
			e.Detail += ": " + excerpt
		}
	}
	return e
}

// transportError — сбой соединения или отправки запроса.
func transportError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindGeneric, Detail: err.Error(), Err: err}
}

// decodeError — тело ответа не удалось разобрать.
func decodeError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindGeneric, Detail: "decode response: " + err.Error(), Err: err}
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
