// Package permission описывает проверку доступа к микрофону.
package permission

import (
	"context"
	"fmt"
	"strings"
)

// Status - результат запроса разрешения.
type Status int

const (
	// Unknown - запрос ещё не выполнен.
	Unknown Status = iota
	// Authorized - доступ разрешён.
	Authorized
	// Denied - доступ запрещён.
	Denied
)

// String возвращает строковое представление статуса.
func (s Status) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Authorizer отвечает на запрос разрешения.
// Вызов может блокироваться, вызывающий сам решает, в какой горутине его делать.
type Authorizer interface {
	Authorize(ctx context.Context) (Status, error)
}

// Fixed всегда возвращает один и тот же статус.
type Fixed Status

// Authorize возвращает зафиксированный статус.
func (f Fixed) Authorize(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	return Status(f), nil
}

// Mode - способ проверки разрешения из конфигурации.
type Mode string

const (
	// ModeDevice - разрешено, если в системе есть устройство ввода.
	ModeDevice Mode = "device"
	// ModeAlways - всегда разрешено.
	ModeAlways Mode = "always"
	// ModeNever - всегда запрещено.
	ModeNever Mode = "never"
)

// ParseMode разбирает режим из строки. Пустая строка означает ModeDevice.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDevice, nil
	case ModeDevice, ModeAlways, ModeNever:
		return m, nil
	default:
		return "", fmt.Errorf("неизвестный режим разрешений: %q", s)
	}
}
