// Package dialog предоставляет системные диалоги: выбор языка, ввод текста, горячая клавиша.
package dialog

import (
	"errors"
	"strings"

	"github.com/ncruces/zenity"

	"govorun/internal/config"
	"govorun/internal/i18n"
	"govorun/internal/language"
)

// ErrCanceled возвращается, когда пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// SelectLanguage открывает список языков реестра.
func SelectLanguage(registry *language.Registry, current language.Language) (language.Language, error) {
	name, err := zenity.List(
		i18n.T("dialog_language_prompt"),
		registry.Names(),
		zenity.Title(i18n.T("dialog_language_title")),
		zenity.DefaultItems(current.DisplayName),
	)
	if err != nil {
		return current, err
	}
	return registry.Resolve(name)
}

// EnterText запрашивает текст для озвучивания.
func EnterText(lang language.Language, initial string) (string, error) {
	text, err := zenity.Entry(
		i18n.Tf("dialog_text_prompt", lang.DisplayName),
		zenity.Title(i18n.T("dialog_text_title")),
		zenity.EntryText(initial),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// SelectHotkey открывает диалог выбора горячей клавиши.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	// Шаг 1: Выбор модификаторов
	modOptions := []string{"Ctrl", "Shift", "Alt", "Super (Win/Cmd)"}
	modValues := []config.Modifier{config.ModCtrl, config.ModShift, config.ModAlt, config.ModSuper}

	// Определяем текущие выбранные модификаторы
	currentMods := make([]string, 0)
	for _, m := range current.Modifiers {
		switch m {
		case config.ModCtrl:
			currentMods = append(currentMods, "Ctrl")
		case config.ModShift:
			currentMods = append(currentMods, "Shift")
		case config.ModAlt:
			currentMods = append(currentMods, "Alt")
		case config.ModSuper:
			currentMods = append(currentMods, "Super (Win/Cmd)")
		}
	}

	selectedMods, err := zenity.ListMultiple(
		i18n.T("dialog_mods_prompt"),
		modOptions,
		zenity.Title(i18n.T("dialog_mods_title")),
		zenity.DefaultItems(currentMods...),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	if len(selectedMods) == 0 {
		return current, errors.New(i18n.T("dialog_mods_required"))
	}

	// Преобразуем выбранные модификаторы
	newMods := make([]config.Modifier, 0, len(selectedMods))
	for _, s := range selectedMods {
		for i, opt := range modOptions {
			if s == opt {
				newMods = append(newMods, modValues[i])
				break
			}
		}
	}

	// Шаг 2: Выбор клавиши
	keyOptions := []string{
		"Space", "Return", "Tab",
		"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
		"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
		"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	}
	keyValues := []config.Key{
		config.KeySpace, config.KeyReturn, config.KeyTab,
		config.KeyA, config.KeyB, config.KeyC, config.KeyD, config.KeyE,
		config.KeyF, config.KeyG, config.KeyH, config.KeyI, config.KeyJ,
		config.KeyK, config.KeyL, config.KeyM, config.KeyN, config.KeyO,
		config.KeyP, config.KeyQ, config.KeyR, config.KeyS, config.KeyT,
		config.KeyU, config.KeyV, config.KeyW, config.KeyX, config.KeyY, config.KeyZ,
		config.KeyF1, config.KeyF2, config.KeyF3, config.KeyF4,
		config.KeyF5, config.KeyF6, config.KeyF7, config.KeyF8,
		config.KeyF9, config.KeyF10, config.KeyF11, config.KeyF12,
	}

	currentKey := keyLabel(current.Key)

	selectedKey, err := zenity.List(
		i18n.T("dialog_key_prompt"),
		keyOptions,
		zenity.Title(i18n.T("dialog_key_title")),
		zenity.DefaultItems(currentKey),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	// Преобразуем выбранную клавишу
	var newKey config.Key
	for i, opt := range keyOptions {
		if selectedKey == opt {
			newKey = keyValues[i]
			break
		}
	}

	return config.HotkeyConfig{
		Modifiers: newMods,
		Key:       newKey,
	}, nil
}

// keyLabel возвращает подпись клавиши в списке.
func keyLabel(k config.Key) string {
	switch k {
	case config.KeySpace:
		return "Space"
	case config.KeyReturn:
		return "Return"
	case config.KeyTab:
		return "Tab"
	default:
		return strings.ToUpper(string(k))
	}
}

// ShowError показывает сообщение об ошибке.
func ShowError(message string) {
	zenity.Error(message, zenity.Title(i18n.T("notify_error")))
}
