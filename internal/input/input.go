// Package input вводит распознанный текст в активное поле.
package input

import (
	"errors"
	"strings"
)

// ErrNoTool возвращается, когда в системе нет утилиты ввода.
var ErrNoTool = errors.New("утилита ввода текста не найдена")

// Typer вводит текст в активное поле ввода.
type Typer interface {
	// Type вводит текст в текущее активное поле.
	Type(text string) error
}

// New создаёт платформо-специфичный Typer.
func New() (Typer, error) {
	return newTyper()
}

// TypeTranscript вводит итоговую расшифровку. Пустой текст пропускается.
// В конец добавляется пробел, чтобы следующая фраза не склеилась с этой.
func TypeTranscript(t Typer, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return t.Type(text + " ")
}
