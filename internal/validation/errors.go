package validation

import "errors"

// Ошибки валидации.
var (
	// ErrInvalidScanName — имя scan'а пустое или содержит недопустимые символы.
	ErrInvalidScanName = errors.New("invalid scan name")

	// ErrInvalidVarKey — ключ переменной workflow в неверном формате.
	ErrInvalidVarKey = errors.New("invalid workflow variable key")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	Field   string // поле, вызвавшее ошибку
	Value   string // исходное значение
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
