package voice

import (
	"fmt"
	"time"

	"govorun/internal/language"
	"govorun/internal/permission"
)

// State - состояние сессии распознавания.
type State int

const (
	// StateIdle - сессий ещё не было.
	StateIdle State = iota
	// StateActive - идёт запись и распознавание.
	StateActive
	// StateStopped - сессия остановлена, расшифровка сохранена.
	StateStopped
	// StateDisabled - доступ к микрофону запрещён, до перезапуска процесса.
	StateDisabled
)

// String возвращает строковое представление состояния.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

type trigger int

const (
	triggerStart trigger = iota
	triggerStop
	triggerStreamEnd
	triggerDeny
)

// transitions - допустимые переходы конечного автомата.
var transitions = map[State]map[trigger]State{
	StateIdle: {
		triggerStart: StateActive,
		triggerDeny:  StateDisabled,
	},
	StateActive: {
		triggerStop:      StateStopped,
		triggerStreamEnd: StateStopped,
	},
	StateStopped: {
		triggerStart: StateActive,
		triggerDeny:  StateDisabled,
	},
}

// next возвращает новое состояние или false, если переход недопустим.
func next(from State, t trigger) (State, bool) {
	to, ok := transitions[from][t]
	return to, ok
}

// checkLanguage отклоняет язык, которого нет в реестре.
func checkLanguage(r *language.Registry, lang language.Language) error {
	if !r.Contains(lang) {
		return fmt.Errorf("%w: %q (%s)", language.ErrUnknownLanguage, lang.DisplayName, lang.LocaleID)
	}
	return nil
}

// RecognitionSnapshot - неизменяемый снимок сессии распознавания.
type RecognitionSnapshot struct {
	ID            string            // UUID текущей сессии, пустой до первого Start
	State         State             // Состояние автомата
	Language      language.Language // Выбранный язык
	Text          string            // Расшифровка текущей сессии
	Authorization permission.Status // Результат запроса разрешения
	Captured      time.Duration     // Длительность записанного звука
	Err           error             // Последняя ошибка, nil если её не было
}

// IsRecording сообщает, что идёт запись.
func (s RecognitionSnapshot) IsRecording() bool {
	return s.State == StateActive
}

// StartDisabled сообщает, что кнопку записи нужно выключить.
func (s RecognitionSnapshot) StartDisabled() bool {
	return s.Authorization != permission.Authorized
}

// SynthesisSnapshot - неизменяемый снимок контроллера синтеза.
type SynthesisSnapshot struct {
	Language language.Language // Выбранный язык
	Text     string            // Текст в поле ввода
	Pending  int               // Фраз в очереди, включая произносимую
	Err      error             // Последняя ошибка, nil если её не было
}
