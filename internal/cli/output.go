package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format — формат вывода данных.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat проверяет значение --format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (text, json, yaml)", s)
	}
}

// Output управляет форматированием вывода CLI.
type Output struct {
	format Format
	w      io.Writer // stdout для данных
	errW   io.Writer // stderr для сообщений
}

// NewOutput создаёт Output.
func NewOutput(format Format, w, errW io.Writer) *Output {
	return &Output{
		format: format,
		w:      w,
		errW:   errW,
	}
}

// Format возвращает текущий формат.
func (o *Output) Format() Format {
	return o.format
}

// Print выводит данные: строку text или структуру в JSON/YAML.
// Пустой text в текстовом режиме ничего не печатает.
func (o *Output) Print(text string, data any) error {
	switch o.format {
	case FormatJSON:
		return o.JSON(data)
	case FormatYAML:
		return o.YAML(data)
	default:
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(o.w, text)
		return err
	}
}

// Raw выводит строку в stdout без перевода строки в текстовом режиме.
func (o *Output) Raw(text string, data any) error {
	if o.format != FormatText {
		return o.Print(text, data)
	}
	_, err := io.WriteString(o.w, text)
	return err
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML выводит данные в формате YAML.
func (o *Output) YAML(v any) error {
	enc := yaml.NewEncoder(o.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Success выводит сообщение об успехе в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// --- Результаты команд ---

// DownloadResult — результат скачивания файла.
type DownloadResult struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// RegistrationResult — регистрация runner'а.
type RegistrationResult struct {
	Token   string `json:"token" yaml:"token"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

// BhlastResult — созданный bhlast домен.
type BhlastResult struct {
	ID string `json:"id" yaml:"id"`
}
