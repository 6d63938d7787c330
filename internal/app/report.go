package app

import (
	"os"

	"govorun/internal/language"
	"govorun/internal/models"
)

// EngineStatus описывает модель одного движка для языка.
type EngineStatus struct {
	Engine    models.Engine
	Name      string // Имя модели или голоса
	Path      string
	Installed bool
}

// LanguageStatus - какие модели обслуживают язык.
type LanguageStatus struct {
	Language    language.Language
	Default     bool
	Recognition EngineStatus
	Synthesis   EngineStatus
}

// ModelReport проверяет модели для каждого настроенного языка.
func (a *App) ModelReport() []LanguageStatus {
	selected := a.Language()

	var out []LanguageStatus
	for _, lang := range a.registry.All() {
		ov := a.engines.Overrides[lang.LocaleID]
		out = append(out, LanguageStatus{
			Language:    lang,
			Default:     lang == selected,
			Recognition: a.engineStatus(models.EngineVosk, lang.LocaleID, ov.RecognitionModel),
			Synthesis:   a.synthesisStatus(lang.LocaleID, ov.Voice, ov.SynthesisModel),
		})
	}
	return out
}

func (a *App) synthesisStatus(locale, voice, model string) EngineStatus {
	engine := a.engines.Synthesis
	if engine == "" {
		engine = models.EngineSay
	}
	if engine == models.EngineSay {
		if voice != "" {
			return EngineStatus{Engine: engine, Name: voice, Path: voice, Installed: true}
		}
		return a.engineStatus(engine, locale, "")
	}
	return a.engineStatus(engine, locale, model)
}

// engineStatus ищет модель в каталоге. Путь из настроек языка важнее каталога.
func (a *App) engineStatus(engine models.Engine, locale, override string) EngineStatus {
	if override != "" {
		_, err := os.Stat(override)
		return EngineStatus{Engine: engine, Name: override, Path: override, Installed: err == nil}
	}

	info, ok := models.ForLocale(engine, locale)
	if !ok {
		return EngineStatus{Engine: engine}
	}
	return EngineStatus{
		Engine:    engine,
		Name:      info.Name,
		Path:      a.models.GetModelPath(info),
		Installed: a.models.IsInstalled(info),
	}
}
