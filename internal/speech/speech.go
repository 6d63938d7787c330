// Package speech предоставляет абстракцию для движков синтеза и распознавания речи.
package speech

import (
	"context"
	"errors"
	"fmt"

	"govorun/internal/language"
)

// DefaultRate - скорость речи по умолчанию, середина естественного диапазона движка.
const DefaultRate = 0.5

// ErrEngineUnavailable - движок для языка не удалось создать.
var ErrEngineUnavailable = errors.New("движок недоступен")

// Role - назначение движка.
type Role int

const (
	// RoleSynthesis - синтез речи (TTS).
	RoleSynthesis Role = iota
	// RoleRecognition - распознавание речи (STT).
	RoleRecognition
)

// String возвращает строковое представление роли.
func (r Role) String() string {
	switch r {
	case RoleSynthesis:
		return "synthesis"
	case RoleRecognition:
		return "recognition"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Handle - общий интерфейс движков, которые кэширует Factory.
type Handle interface {
	// Name возвращает название движка (для логирования).
	Name() string

	// Close освобождает ресурсы движка.
	Close() error
}

// Utterance - запрос на синтез одной фразы.
type Utterance struct {
	Text   string
	Locale string
	// Rate - скорость в диапазоне (0, 1], 0.5 - обычная скорость.
	Rate float64
}

// Synthesizer - интерфейс движков синтеза речи.
type Synthesizer interface {
	Handle

	// Speak произносит фразу. Блокируется до конца воспроизведения.
	Speak(ctx context.Context, u Utterance) error
}

// Result - событие распознавания.
type Result struct {
	// Text - полная расшифровка на текущий момент, заменяет предыдущую.
	Text string
	// Final - последний результат сессии.
	Final bool
	// Err - ошибка движка. Сессию не прерывает.
	Err error
}

// Recognizer - интерфейс движков распознавания речи.
type Recognizer interface {
	Handle

	// Recognize читает сэмплы float32 (16kHz, mono) из audio, пока канал не закрыт,
	// и отдаёт промежуточные результаты, затем один финальный.
	// Канал результатов закрывается после финального результата или отмены ctx.
	Recognize(ctx context.Context, audio <-chan []float32) (<-chan Result, error)
}

// EngineUnavailableError описывает неудачное создание движка для языка.
type EngineUnavailableError struct {
	Language language.Language
	Role     Role
	Err      error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrEngineUnavailable, e.Language.DisplayName, e.Role, e.Err)
}

// Unwrap возвращает исходную ошибку.
func (e *EngineUnavailableError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять ошибку через errors.Is(err, ErrEngineUnavailable).
func (e *EngineUnavailableError) Is(target error) bool {
	return target == ErrEngineUnavailable
}
