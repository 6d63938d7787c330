package speech

import (
	"fmt"

	"govorun/internal/language"
	"govorun/internal/models"
)

// Override - ручные настройки движков для одной локали.
type Override struct {
	Voice            string // Голос say
	SynthesisModel   string // Путь к голосу Piper
	RecognitionModel string // Путь к модели Vosk
}

// EngineOptions описывает, как создавать движки.
type EngineOptions struct {
	Synthesis   models.Engine // say или piper
	PiperBinary string
	SampleRate  float64
	Models      *models.Manager
	Player      PCMPlayer
	Overrides   map[string]Override // По локали
}

// NewSynthesizerFunc возвращает конструктор движков синтеза.
func NewSynthesizerFunc(opts EngineOptions) SynthesizerFunc {
	return func(lang language.Language) (Synthesizer, error) {
		ov := opts.Overrides[lang.LocaleID]

		switch opts.Synthesis {
		case models.EnginePiper:
			path := ov.SynthesisModel
			if path == "" {
				p, err := findModel(opts.Models, models.EnginePiper, lang.LocaleID)
				if err != nil {
					return nil, err
				}
				path = p
			}
			if opts.Player == nil {
				return nil, fmt.Errorf("для Piper нужен плеер")
			}
			return NewPiper(opts.PiperBinary, path, lang.LocaleID, opts.Player)

		case models.EngineSay, "":
			voice := ov.Voice
			if voice == "" {
				if info, ok := models.ForLocale(models.EngineSay, lang.LocaleID); ok {
					voice = info.Filename
				}
			}
			// Без голоса say выберет системный, что для другой локали неверно
			if voice == "" {
				return nil, fmt.Errorf("нет голоса say для локали %s", lang.LocaleID)
			}
			return NewSay(voice, lang.LocaleID)

		default:
			return nil, fmt.Errorf("неизвестный движок синтеза: %s", opts.Synthesis)
		}
	}
}

// NewRecognizerFunc возвращает конструктор движков распознавания (Vosk).
func NewRecognizerFunc(opts EngineOptions) RecognizerFunc {
	return func(lang language.Language) (Recognizer, error) {
		path := opts.Overrides[lang.LocaleID].RecognitionModel
		if path == "" {
			p, err := findModel(opts.Models, models.EngineVosk, lang.LocaleID)
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewVosk(path, lang.LocaleID, opts.SampleRate)
	}
}

func findModel(m *models.Manager, engine models.Engine, locale string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("каталог моделей не задан")
	}
	return m.Find(engine, locale)
}
