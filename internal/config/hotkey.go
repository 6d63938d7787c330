package config

import (
	"fmt"
	"slices"
	"strings"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `toml:"modifiers"`
	Key       Key        `toml:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	for _, m := range h.Modifiers {
		parts = append(parts, string(m))
	}
	return strings.Join(append(parts, string(h.Key)), "+")
}

// Validate проверяет, что клавиша и модификаторы известны.
func (h HotkeyConfig) Validate() error {
	if !slices.Contains(AvailableKeys(), h.Key) {
		return fmt.Errorf("неизвестная клавиша: %q", h.Key)
	}
	if len(h.Modifiers) == 0 {
		return fmt.Errorf("горячая клавиша %s без модификаторов", h)
	}
	for _, m := range h.Modifiers {
		if !slices.Contains(AvailableModifiers(), m) {
			return fmt.Errorf("неизвестный модификатор: %q", m)
		}
	}
	return nil
}

// ParseHotkey разбирает строку вида "ctrl+shift+space".
func ParseHotkey(s string) (HotkeyConfig, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var h HotkeyConfig
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			h.Key = Key(p)
			continue
		}
		switch p {
		case "cmd", "win", "meta":
			p = string(ModSuper)
		case "control":
			p = string(ModCtrl)
		case "option":
			p = string(ModAlt)
		}
		h.Modifiers = append(h.Modifiers, Modifier(p))
	}
	if err := h.Validate(); err != nil {
		return HotkeyConfig{}, err
	}
	return h, nil
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}
