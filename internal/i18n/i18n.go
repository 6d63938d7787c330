// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name": "Govorun",

		// Notifications
		"notify_recording":      "Запись...",
		"notify_recording_hint": "Говорите в микрофон (%s)",
		"notify_done":           "Готово",
		"notify_empty":          "Не удалось распознать",
		"notify_empty_hint":     "Попробуйте ещё раз",
		"notify_error":          "Ошибка",
		"notify_denied":         "Нет доступа к микрофону",
		"notify_denied_hint":    "Запись недоступна до перезапуска",

		// Dialogs
		"dialog_language_title":  "Язык",
		"dialog_language_prompt": "Выберите язык:",
		"dialog_text_title":      "Озвучить текст",
		"dialog_text_prompt":     "Введите текст (%s):",
		"dialog_mods_title":      "Настройка горячей клавиши - Модификаторы",
		"dialog_mods_prompt":     "Выберите модификаторы:",
		"dialog_mods_required":   "необходимо выбрать хотя бы один модификатор",
		"dialog_key_title":       "Настройка горячей клавиши - Клавиша",
		"dialog_key_prompt":      "Выберите клавишу:",

		// CLI
		"cli_listening":      "Слушаю (%s). Enter или %s - остановить.",
		"cli_speaking":       "Говорю (%s): %s",
		"cli_not_authorized": "запись запрещена: нет доступа к микрофону",
		"cli_installed":      "установлена",
		"cli_missing":        "не установлена",
		"cli_default":        "по умолчанию",
		"cli_saved":          "Сохранено: %s = %s",
	},

	EN: {
		// App
		"app_name": "Govorun",

		// Notifications
		"notify_recording":      "Recording...",
		"notify_recording_hint": "Speak into the microphone (%s)",
		"notify_done":           "Done",
		"notify_empty":          "Nothing recognized",
		"notify_empty_hint":     "Please try again",
		"notify_error":          "Error",
		"notify_denied":         "No microphone access",
		"notify_denied_hint":    "Recording is unavailable until restart",

		// Dialogs
		"dialog_language_title":  "Language",
		"dialog_language_prompt": "Choose a language:",
		"dialog_text_title":      "Speak text",
		"dialog_text_prompt":     "Enter text (%s):",
		"dialog_mods_title":      "Hotkey setup - Modifiers",
		"dialog_mods_prompt":     "Choose modifiers:",
		"dialog_mods_required":   "at least one modifier is required",
		"dialog_key_title":       "Hotkey setup - Key",
		"dialog_key_prompt":      "Choose a key:",

		// CLI
		"cli_listening":      "Listening (%s). Press Enter or %s to stop.",
		"cli_speaking":       "Speaking (%s): %s",
		"cli_not_authorized": "recording disabled: no microphone access",
		"cli_installed":      "installed",
		"cli_missing":        "missing",
		"cli_default":        "default",
		"cli_saved":          "Saved: %s = %s",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// Tf formats the translation for the given key.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Parse converts a config value like "en" or "en-US" to a UI language.
// Unsupported values fall back to RU.
func Parse(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	for _, l := range AvailableLanguages() {
		if string(l) == s {
			return l
		}
	}
	return RU
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
