package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bountyhub/bh/internal/domain"
	"github.com/bountyhub/bh/internal/validation"
)

// Ошибки разбора --input-* флагов.
var (
	ErrInvalidInput = errors.New("invalid input, expected KEY=VALUE")
	ErrInvalidBool  = errors.New("not a valid boolean")
)

// SplitInput делит "KEY=VALUE" по первому '='.
// Значение может быть пустым и может содержать '='.
func SplitInput(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return key, value, nil
}

// ParseBool принимает только "true" и "false".
func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("value '%s' is %w", s, ErrInvalidBool)
	}
}

// BuildInputs собирает входные параметры scan'а из значений флагов.
//
// Если ни один флаг не передан, возвращается nil. Сначала применяются
// строковые значения, затем булевы; при повторе ключа побеждает
// последнее значение.
func BuildInputs(strs, bools []string, strsSet, boolsSet bool) (domain.Inputs, error) {
	if !strsSet && !boolsSet {
		return nil, nil
	}

	inputs := make(domain.Inputs, len(strs)+len(bools))

	for _, s := range strs {
		key, value, err := splitKey(s)
		if err != nil {
			return nil, err
		}
		inputs[key] = domain.StringValue(value)
	}

	for _, s := range bools {
		key, value, err := splitKey(s)
		if err != nil {
			return nil, err
		}
		b, err := ParseBool(value)
		if err != nil {
			return nil, err
		}
		inputs[key] = domain.BoolValue(b)
	}

	return inputs, nil
}

func splitKey(s string) (string, string, error) {
	key, value, err := SplitInput(s)
	if err != nil {
		return "", "", err
	}
	if err := validation.ValidateWorkflowVarKey(key); err != nil {
		return "", "", err
	}
	return key, value, nil
}
