// Package validation проверяет пользовательский ввод до обращения к API.
//
// Все функции чистые: без I/O, без состояния. Ошибка валидации
// означает, что запрос не будет отправлен в сеть.
package validation
