// Package notify предоставляет системные уведомления.
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"govorun/internal/i18n"
)

// maxMessage - сколько символов текста показывать в уведомлении.
const maxMessage = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message, icon string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Recording показывает уведомление о начале записи.
func (n *Notifier) Recording(language string) {
	n.notify(i18n.T("notify_recording"), i18n.Tf("notify_recording_hint", language))
}

// Success показывает итоговую расшифровку.
func (n *Notifier) Success(text string) {
	n.notify(i18n.T("notify_done"), truncate(text))
}

// Empty показывает уведомление о пустом результате.
func (n *Notifier) Empty() {
	n.notify(i18n.T("notify_empty"), i18n.T("notify_empty_hint"))
}

// Denied сообщает, что доступа к микрофону нет.
func (n *Notifier) Denied() {
	n.notify(i18n.T("notify_denied"), i18n.T("notify_denied_hint"))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), truncate(msg))
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	appName := i18n.T("app_name")
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = n.send(appName+": "+title, message, "")
	} else {
		_ = n.send(appName, message, "")
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessage {
		return s
	}
	return string(r[:maxMessage]) + "..."
}
