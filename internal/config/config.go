// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"govorun/internal/language"
	"govorun/internal/permission"
)

// FileName - имя файла конфигурации рядом с бинарником.
const FileName = "config.toml"

// LanguageConfig описывает язык и необязательные переопределения движков.
type LanguageConfig struct {
	Name             string `toml:"name"`
	Locale           string `toml:"locale"`
	Voice            string `toml:"voice,omitempty"`             // Голос say
	SynthesisModel   string `toml:"synthesis_model,omitempty"`   // Путь к голосу Piper
	RecognitionModel string `toml:"recognition_model,omitempty"` // Путь к модели Vosk
}

// SynthesisConfig настройки синтеза речи.
type SynthesisConfig struct {
	Engine      string  `toml:"engine"` // say или piper
	Rate        float64 `toml:"rate"`   // (0, 1], 0.5 - обычная скорость
	QueueSize   int     `toml:"queue_size"`
	PiperBinary string  `toml:"piper_binary,omitempty"`
}

// RecognitionConfig настройки записи и распознавания.
type RecognitionConfig struct {
	ModelsDir       string  `toml:"models_dir,omitempty"`
	SampleRate      float64 `toml:"sample_rate"`
	FramesPerBuffer int     `toml:"frames_per_buffer"`
	Device          string  `toml:"device,omitempty"`
	Authorization   string  `toml:"authorization"` // device, always, never
}

// configData структура для сериализации.
type configData struct {
	Language      string            `toml:"language"`
	UILanguage    string            `toml:"ui_language,omitempty"`
	Notifications bool              `toml:"notifications"`
	Hotkey        HotkeyConfig      `toml:"hotkey"`
	Synthesis     SynthesisConfig   `toml:"synthesis"`
	Recognition   RecognitionConfig `toml:"recognition"`
	Languages     []LanguageConfig  `toml:"languages"`
}

func defaults() configData {
	langs := make([]LanguageConfig, 0, len(language.Defaults))
	for _, l := range language.Defaults {
		langs = append(langs, LanguageConfig{Name: l.DisplayName, Locale: l.LocaleID})
	}

	return configData{
		Language:      language.Defaults[0].DisplayName,
		UILanguage:    "ru",
		Notifications: true,
		Hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeySpace,
		},
		Synthesis: SynthesisConfig{
			Engine:      "say",
			Rate:        0.5,
			QueueSize:   16,
			PiperBinary: "piper",
		},
		Recognition: RecognitionConfig{
			SampleRate:      16000,
			FramesPerBuffer: 1024,
			Authorization:   string(permission.ModeDevice),
		},
		Languages: langs,
	}
}

// Config хранит настройки приложения.
type Config struct {
	mu         sync.RWMutex
	data       configData
	configPath string
}

// New загружает конфигурацию из path. Пустой path - config.toml рядом с бинарником.
// Отсутствующий файл не ошибка: используются настройки по умолчанию.
func New(path string) (*Config, error) {
	c := &Config{data: defaults(), configPath: path}

	if c.configPath == "" {
		c.configPath = defaultPath()
	}

	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// defaultPath возвращает путь к файлу рядом с бинарником.
func defaultPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	// Резолвим симлинки
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(execPath), FileName)
}

// load загружает конфигурацию из файла.
func (c *Config) load() error {
	if c.configPath == "" {
		return nil
	}

	data := defaults()
	// Списки из файла заменяют значения по умолчанию целиком
	data.Languages = nil
	data.Hotkey = HotkeyConfig{}

	if _, err := toml.DecodeFile(c.configPath, &data); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // Файл не существует, используем defaults
		}
		return fmt.Errorf("ошибка чтения %s: %w", c.configPath, err)
	}

	def := defaults()
	if len(data.Languages) == 0 {
		data.Languages = def.Languages
	}
	if data.Hotkey.Key == "" {
		data.Hotkey = def.Hotkey
	}

	c.data = data
	return nil
}

// save сохраняет конфигурацию в файл. Вызывается под c.mu.
func (c *Config) save() error {
	if c.configPath == "" {
		return nil
	}

	f, err := os.Create(c.configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c.data)
}

// Save сохраняет конфигурацию в файл.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.save()
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configPath
}

// Validate проверяет настройки.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []error

	reg, err := registry(c.data.Languages)
	if err != nil {
		errs = append(errs, err)
	} else if _, err := reg.Resolve(c.data.Language); err != nil {
		errs = append(errs, fmt.Errorf("язык по умолчанию: %w", err))
	}

	if r := c.data.Synthesis.Rate; r <= 0 || r > 1 {
		errs = append(errs, fmt.Errorf("скорость речи %v вне диапазона (0, 1]", r))
	}
	switch c.data.Synthesis.Engine {
	case "say", "piper":
	default:
		errs = append(errs, fmt.Errorf("неизвестный движок синтеза: %q", c.data.Synthesis.Engine))
	}
	if c.data.Synthesis.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("размер очереди синтеза должен быть больше нуля"))
	}

	if c.data.Recognition.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("частота дискретизации должна быть больше нуля"))
	}
	if c.data.Recognition.FramesPerBuffer <= 0 {
		errs = append(errs, fmt.Errorf("размер буфера должен быть больше нуля"))
	}
	if _, err := permission.ParseMode(c.data.Recognition.Authorization); err != nil {
		errs = append(errs, err)
	}

	if err := c.data.Hotkey.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func registry(langs []LanguageConfig) (*language.Registry, error) {
	list := make([]language.Language, 0, len(langs))
	for _, l := range langs {
		list = append(list, language.Language{
			DisplayName: strings.TrimSpace(l.Name),
			LocaleID:    strings.TrimSpace(l.Locale),
		})
	}
	return language.New(list)
}

// Registry строит реестр языков из настроек.
func (c *Config) Registry() (*language.Registry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return registry(c.data.Languages)
}

// Languages возвращает копию списка языков.
func (c *Config) Languages() []LanguageConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]LanguageConfig(nil), c.data.Languages...)
}

// SetLanguage устанавливает язык по умолчанию. Язык должен быть в списке.
func (c *Config) SetLanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	reg, err := registry(c.data.Languages)
	if err != nil {
		return err
	}
	if _, err := reg.Resolve(lang); err != nil {
		return err
	}
	c.data.Language = lang
	return c.save()
}

// Language возвращает язык по умолчанию.
func (c *Config) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Language
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = enabled
	return c.save()
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// Hotkey возвращает текущую горячую клавишу.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Hotkey
}

// SetHotkey устанавливает горячую клавишу.
func (c *Config) SetHotkey(hk HotkeyConfig) error {
	if err := hk.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Hotkey = hk
	return c.save()
}

// Synthesis возвращает настройки синтеза.
func (c *Config) Synthesis() SynthesisConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Synthesis
}

// SetSynthesisRate устанавливает скорость речи.
func (c *Config) SetSynthesisRate(rate float64) error {
	if rate <= 0 || rate > 1 {
		return fmt.Errorf("скорость речи %v вне диапазона (0, 1]", rate)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Synthesis.Rate = rate
	return c.save()
}

// Recognition возвращает настройки распознавания.
func (c *Config) Recognition() RecognitionConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Recognition
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.UILanguage = lang
	return c.save()
}
