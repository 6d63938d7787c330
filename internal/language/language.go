// Package language описывает поддерживаемые языки и их локали.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage возвращается для имени, которого нет в реестре.
var ErrUnknownLanguage = errors.New("неизвестный язык")

// Language - язык с отображаемым именем и идентификатором локали.
type Language struct {
	DisplayName string // Имя в списке выбора: "English"
	LocaleID    string // Локаль движка: "en-US"
}

// String возвращает отображаемое имя.
func (l Language) String() string {
	return l.DisplayName
}

// IsZero сообщает, что язык не задан.
func (l Language) IsZero() bool {
	return l.DisplayName == "" && l.LocaleID == ""
}

// Defaults - языки по умолчанию.
var Defaults = []Language{
	{DisplayName: "English", LocaleID: "en-US"},
	{DisplayName: "Japanese", LocaleID: "ja-JP"},
	{DisplayName: "Korean", LocaleID: "ko-KR"},
}

// Registry - неизменяемый набор языков. Безопасен для конкурентного чтения.
type Registry struct {
	languages []Language
	byName    map[string]Language
	byLocale  map[string]Language
}

// New создаёт реестр из списка языков.
func New(languages []Language) (*Registry, error) {
	if len(languages) == 0 {
		return nil, errors.New("список языков пуст")
	}

	r := &Registry{
		languages: make([]Language, 0, len(languages)),
		byName:    make(map[string]Language, len(languages)),
		byLocale:  make(map[string]Language, len(languages)),
	}

	for i, l := range languages {
		l.DisplayName = strings.TrimSpace(l.DisplayName)
		l.LocaleID = strings.TrimSpace(l.LocaleID)

		if l.DisplayName == "" || l.LocaleID == "" {
			return nil, fmt.Errorf("язык #%d: имя и локаль обязательны", i+1)
		}
		if _, dup := r.byName[l.DisplayName]; dup {
			return nil, fmt.Errorf("язык %q указан дважды", l.DisplayName)
		}
		if _, dup := r.byLocale[l.LocaleID]; dup {
			return nil, fmt.Errorf("локаль %q указана дважды", l.LocaleID)
		}

		r.languages = append(r.languages, l)
		r.byName[l.DisplayName] = l
		r.byLocale[l.LocaleID] = l
	}

	return r, nil
}

// Default возвращает реестр с языками по умолчанию.
func Default() *Registry {
	r, err := New(Defaults)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve возвращает язык по отображаемому имени.
func (r *Registry) Resolve(displayName string) (Language, error) {
	l, ok := r.byName[displayName]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, displayName)
	}
	return l, nil
}

// ByLocale возвращает язык по идентификатору локали.
func (r *Registry) ByLocale(localeID string) (Language, error) {
	l, ok := r.byLocale[localeID]
	if !ok {
		return Language{}, fmt.Errorf("%w: локаль %q", ErrUnknownLanguage, localeID)
	}
	return l, nil
}

// Lookup ищет язык по имени, затем по локали (без учёта регистра).
// Используется для ввода из командной строки.
func (r *Registry) Lookup(s string) (Language, error) {
	if l, err := r.Resolve(s); err == nil {
		return l, nil
	}
	if l, err := r.ByLocale(s); err == nil {
		return l, nil
	}
	for _, l := range r.languages {
		if strings.EqualFold(l.DisplayName, s) || strings.EqualFold(l.LocaleID, s) {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// First возвращает первый язык списка (язык по умолчанию).
func (r *Registry) First() Language {
	return r.languages[0]
}

// All возвращает копию списка языков в порядке конфигурации.
func (r *Registry) All() []Language {
	out := make([]Language, len(r.languages))
	copy(out, r.languages)
	return out
}

// Contains сообщает, что язык есть в реестре с тем же именем и локалью.
func (r *Registry) Contains(l Language) bool {
	known, err := r.ByLocale(l.LocaleID)
	return err == nil && known == l
}

// Names возвращает отображаемые имена в порядке конфигурации.
func (r *Registry) Names() []string {
	names := make([]string, len(r.languages))
	for i, l := range r.languages {
		names[i] = l.DisplayName
	}
	return names
}
