package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InputKind — тип значения входного параметра scan'а.
type InputKind int

const (
	// InputKindString — строковое значение (--input-string).
	InputKindString InputKind = iota + 1

	// InputKindBool — булево значение (--input-bool).
	InputKindBool
)

// String возвращает имя типа.
func (k InputKind) String() string {
	switch k {
	case InputKindString:
		return "string"
	case InputKindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ErrInvalidInputValue — значение не может быть сериализовано или разобрано.
var ErrInvalidInputValue = errors.New("invalid input value")

// InputValue — значение переменной workflow: строка или bool.
//
// Нулевое значение невалидно: MarshalJSON вернёт ошибку.
// Создавать только через StringValue / BoolValue.
type InputValue struct {
	kind InputKind
	str  string
	b    bool
}

// StringValue создаёт строковое значение.
func StringValue(s string) InputValue {
	return InputValue{kind: InputKindString, str: s}
}

// BoolValue создаёт булево значение.
func BoolValue(b bool) InputValue {
	return InputValue{kind: InputKindBool, b: b}
}

// Kind возвращает тип значения.
func (v InputValue) Kind() InputKind {
	return v.kind
}

// Str возвращает строку и true, если значение строковое.
func (v InputValue) Str() (string, bool) {
	return v.str, v.kind == InputKindString
}

// Bool возвращает bool и true, если значение булево.
func (v InputValue) Bool() (bool, bool) {
	return v.b, v.kind == InputKindBool
}

// String реализует fmt.Stringer.
func (v InputValue) String() string {
	switch v.kind {
	case InputKindString:
		return v.str
	case InputKindBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return "<invalid>"
	}
}

// MarshalJSON сериализует значение как JSON string или JSON boolean.
func (v InputValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case InputKindString:
		return json.Marshal(v.str)
	case InputKindBool:
		return json.Marshal(v.b)
	default:
		return nil, fmt.Errorf("%w: zero value", ErrInvalidInputValue)
	}
}

// UnmarshalJSON принимает только JSON string и JSON boolean.
func (v *InputValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case string:
		*v = StringValue(x)
	case bool:
		*v = BoolValue(x)
	default:
		return fmt.Errorf("%w: expected string or boolean, got %s", ErrInvalidInputValue, data)
	}
	return nil
}

// Inputs — входные параметры scan'а: ключ переменной → значение.
//
// Nil означает, что ни одного --input-* флага передано не было,
// и в теле запроса поле inputs будет null.
// encoding/json сериализует ключи map в отсортированном порядке.
type Inputs map[string]InputValue
