package validation

import "fmt"

// ValidScanName проверяет имя scan'а: непустое, только ASCII буквы,
// цифры и '_'.
func ValidScanName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isASCIIAlnum(c) && c != '_' {
			return false
		}
	}
	return true
}

// ValidWorkflowVarKey проверяет ключ переменной workflow: непустой,
// только ASCII буквы, цифры, '_' и '-'.
func ValidWorkflowVarKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isASCIIAlnum(c) && c != '_' && c != '-' {
			return false
		}
	}
	return true
}

// ValidateScanName возвращает *ValidationError, если имя невалидно.
func ValidateScanName(s string) error {
	if ValidScanName(s) {
		return nil
	}
	return &ValidationError{
		Field:   "scan_name",
		Value:   s,
		Message: fmt.Sprintf("invalid scan name: '%s'", s),
		Err:     ErrInvalidScanName,
	}
}

// ValidateWorkflowVarKey возвращает *ValidationError, если ключ невалиден.
func ValidateWorkflowVarKey(s string) error {
	if ValidWorkflowVarKey(s) {
		return nil
	}
	return &ValidationError{
		Field:   "input",
		Value:   s,
		Message: fmt.Sprintf("key '%s' is in invalid format", s),
		Err:     ErrInvalidVarKey,
	}
}

// Байтовая проверка: не-ASCII руны состоят из байтов >= 0x80
// и никогда не проходят.
func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
