// Package app связывает конфигурацию, движки и контроллеры в приложение.
package app

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"govorun/internal/audio"
	"govorun/internal/config"
	"govorun/internal/i18n"
	"govorun/internal/input"
	"govorun/internal/language"
	"govorun/internal/models"
	"govorun/internal/notify"
	"govorun/internal/speech"
)

// App представляет главное приложение.
type App struct {
	config   *config.Config
	root     *log.Logger
	logger   *log.Logger
	registry *language.Registry
	models   *models.Manager
	notifier *notify.Notifier
	engines  speech.EngineOptions

	mu            sync.Mutex
	selected      language.Language
	hotkey        config.HotkeyConfig
	typer         input.Typer
	recordingPath string
}

// New создаёт приложение из проверенной конфигурации.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация %s: %w", cfg.Path(), err)
	}

	// Инициализируем язык интерфейса из конфига
	i18n.SetLanguage(i18n.Parse(cfg.UILanguage()))

	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	selected, err := registry.Resolve(cfg.Language())
	if err != nil {
		return nil, err
	}

	rec := cfg.Recognition()
	manager, err := models.NewManager(rec.ModelsDir)
	if err != nil {
		return nil, err
	}

	syn := cfg.Synthesis()
	a := &App{
		config:   cfg,
		root:     logger,
		logger:   logger.WithPrefix("app"),
		registry: registry,
		models:   manager,
		notifier: notify.New(cfg.NotificationsEnabled()),
		engines: speech.EngineOptions{
			Synthesis:   models.Engine(syn.Engine),
			PiperBinary: syn.PiperBinary,
			SampleRate:  rec.SampleRate,
			Models:      manager,
			Player:      audio.NewPlayer(),
			Overrides:   overrides(cfg.Languages()),
		},
		selected: selected,
		hotkey:   cfg.Hotkey(),
	}
	return a, nil
}

func overrides(langs []config.LanguageConfig) map[string]speech.Override {
	out := make(map[string]speech.Override, len(langs))
	for _, l := range langs {
		out[l.Locale] = speech.Override{
			Voice:            l.Voice,
			SynthesisModel:   l.SynthesisModel,
			RecognitionModel: l.RecognitionModel,
		}
	}
	return out
}

// Registry возвращает реестр языков.
func (a *App) Registry() *language.Registry {
	return a.registry
}

// Language возвращает выбранный язык.
func (a *App) Language() language.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// SelectLanguage выбирает язык по имени или локали.
func (a *App) SelectLanguage(s string) error {
	lang, err := a.registry.Lookup(s)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.selected = lang
	a.mu.Unlock()
	return nil
}

// SetNotifications переопределяет настройку уведомлений на время запуска.
func (a *App) SetNotifications(enabled bool) {
	a.notifier.SetEnabled(enabled)
}

// SetHotkey переопределяет горячую клавишу на время запуска.
func (a *App) SetHotkey(hk config.HotkeyConfig) {
	a.mu.Lock()
	a.hotkey = hk
	a.mu.Unlock()
}

// Hotkey возвращает горячую клавишу.
func (a *App) Hotkey() config.HotkeyConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hotkey
}

// EnableTyping включает ввод итоговой расшифровки в активное окно.
func (a *App) EnableTyping() error {
	t, err := input.New()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.typer = t
	a.mu.Unlock()
	return nil
}

// SaveRecordingTo задаёт файл, куда Listen сохранит звук сессии (PCM16 mono).
func (a *App) SaveRecordingTo(path string) {
	a.mu.Lock()
	a.recordingPath = path
	a.mu.Unlock()
}
