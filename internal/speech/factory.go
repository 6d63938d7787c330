package speech

import (
	"errors"
	"fmt"
	"sync"

	"govorun/internal/language"
)

// SynthesizerFunc создаёт движок синтеза для языка.
type SynthesizerFunc func(lang language.Language) (Synthesizer, error)

// RecognizerFunc создаёт движок распознавания для языка.
type RecognizerFunc func(lang language.Language) (Recognizer, error)

type handleKey struct {
	locale string
	role   Role
}

// Factory лениво создаёт и кэширует движки по паре (локаль, роль).
// Каждый контроллер владеет своей фабрикой, движки между контроллерами не разделяются.
type Factory struct {
	mu             sync.Mutex
	newSynthesizer SynthesizerFunc
	newRecognizer  RecognizerFunc
	handles        map[handleKey]Handle
	closed         bool
}

// NewFactory создаёт фабрику. Любой из конструкторов может быть nil,
// тогда движки этой роли недоступны.
func NewFactory(newSynthesizer SynthesizerFunc, newRecognizer RecognizerFunc) *Factory {
	return &Factory{
		newSynthesizer: newSynthesizer,
		newRecognizer:  newRecognizer,
		handles:        make(map[handleKey]Handle),
	}
}

// For возвращает движок для языка и роли, создавая его при первом обращении.
// Неудачное создание не кэшируется.
func (f *Factory) For(lang language.Language, role Role) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, &EngineUnavailableError{Language: lang, Role: role, Err: errors.New("фабрика закрыта")}
	}

	key := handleKey{locale: lang.LocaleID, role: role}
	if h, ok := f.handles[key]; ok {
		return h, nil
	}

	h, err := f.create(lang, role)
	if err != nil {
		return nil, &EngineUnavailableError{Language: lang, Role: role, Err: err}
	}

	f.handles[key] = h
	return h, nil
}

func (f *Factory) create(lang language.Language, role Role) (h Handle, err error) {
	// Движки часто обёртки над C-библиотеками, паника не должна уронить контроллер
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("паника при создании движка: %v", r)
		}
	}()

	switch role {
	case RoleSynthesis:
		if f.newSynthesizer == nil {
			return nil, errors.New("синтез не настроен")
		}
		s, err := f.newSynthesizer(lang)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, errors.New("конструктор вернул nil")
		}
		return s, nil
	case RoleRecognition:
		if f.newRecognizer == nil {
			return nil, errors.New("распознавание не настроено")
		}
		r, err := f.newRecognizer(lang)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, errors.New("конструктор вернул nil")
		}
		return r, nil
	default:
		return nil, fmt.Errorf("неизвестная роль: %s", role)
	}
}

// Synthesizer возвращает движок синтеза для языка.
func (f *Factory) Synthesizer(lang language.Language) (Synthesizer, error) {
	h, err := f.For(lang, RoleSynthesis)
	if err != nil {
		return nil, err
	}
	return h.(Synthesizer), nil
}

// Recognizer возвращает движок распознавания для языка.
func (f *Factory) Recognizer(lang language.Language) (Recognizer, error) {
	h, err := f.For(lang, RoleRecognition)
	if err != nil {
		return nil, err
	}
	return h.(Recognizer), nil
}

// Close закрывает все созданные движки. Повторный вызов ничего не делает.
func (f *Factory) Close() error {
	f.mu.Lock()
	handles := f.handles
	f.handles = make(map[handleKey]Handle)
	f.closed = true
	f.mu.Unlock()

	var errs []error
	for _, h := range handles {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
		}
	}
	return errors.Join(errs...)
}
