package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"govorun/internal/config"
	"govorun/internal/language"
	"govorun/internal/models"
	"govorun/internal/speech"
)

func newTestApp(t *testing.T, data string) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	modelsDir := filepath.Join(dir, "models")
	if err := os.MkdirAll(filepath.Join(modelsDir, "vosk"), 0755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "config.toml")
	data = "notifications = false\n" + data + "\n[recognition]\nmodels_dir = " + quote(modelsDir) + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(path)
	if err != nil {
		t.Fatalf("config.New() error = %v", err)
	}
	a, err := New(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a, modelsDir
}

func quote(s string) string {
	return "'" + s + "'"
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[synthesis]\nrate = 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, nil); err == nil {
		t.Error("New() error = nil for rate 2.0")
	}
}

func TestSelectLanguage(t *testing.T) {
	a, _ := newTestApp(t, `language = "Korean"`)

	if got := a.Language().LocaleID; got != "ko-KR" {
		t.Errorf("Language() = %q, want ko-KR", got)
	}
	if err := a.SelectLanguage("ja-jp"); err != nil {
		t.Fatalf("SelectLanguage(locale) error = %v", err)
	}
	if got := a.Language().DisplayName; got != "Japanese" {
		t.Errorf("Language() = %q, want Japanese", got)
	}
	if err := a.SelectLanguage("Klingon"); !errors.Is(err, language.ErrUnknownLanguage) {
		t.Errorf("SelectLanguage(Klingon) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestModelReport(t *testing.T) {
	a, modelsDir := newTestApp(t, "")

	info, ok := models.ForLocale(models.EngineVosk, "en-US")
	if !ok {
		t.Fatal("no vosk model for en-US")
	}
	if err := os.MkdirAll(filepath.Join(modelsDir, "vosk", info.Filename), 0755); err != nil {
		t.Fatal(err)
	}

	report := a.ModelReport()
	if len(report) != 3 {
		t.Fatalf("ModelReport() = %d entries, want 3", len(report))
	}

	en := report[0]
	if en.Language.LocaleID != "en-US" || !en.Default {
		t.Errorf("first entry = %+v, want default en-US", en)
	}
	if !en.Recognition.Installed {
		t.Errorf("en-US recognition = %+v, want installed", en.Recognition)
	}
	if en.Synthesis.Engine != models.EngineSay || !en.Synthesis.Installed {
		t.Errorf("en-US synthesis = %+v, want installed say voice", en.Synthesis)
	}
	if report[1].Recognition.Installed {
		t.Errorf("ja-JP recognition = %+v, want missing", report[1].Recognition)
	}
}

func TestModelReport_Overrides(t *testing.T) {
	model := filepath.Join(t.TempDir(), "custom-ru")
	if err := os.MkdirAll(model, 0755); err != nil {
		t.Fatal(err)
	}

	a, _ := newTestApp(t, `language = "Russian"

[[languages]]
name = "Russian"
locale = "ru-RU"
voice = "Yuri"
recognition_model = `+quote(model))

	report := a.ModelReport()
	if len(report) != 1 {
		t.Fatalf("ModelReport() = %d entries, want 1", len(report))
	}
	ru := report[0]
	if ru.Recognition.Path != model || !ru.Recognition.Installed {
		t.Errorf("recognition = %+v, want override %s", ru.Recognition, model)
	}
	if ru.Synthesis.Name != "Yuri" {
		t.Errorf("synthesis = %+v, want voice Yuri", ru.Synthesis)
	}
}

func TestSpeak_MissingVoiceReportsEngineUnavailable(t *testing.T) {
	a, _ := newTestApp(t, "[synthesis]\nengine = \"piper\"\n")

	err := a.Speak(context.Background(), "hello")
	if !errors.Is(err, speech.ErrEngineUnavailable) {
		t.Errorf("Speak() error = %v, want ErrEngineUnavailable", err)
	}
}

func TestSpeak_EmptyTextIsNoop(t *testing.T) {
	a, _ := newTestApp(t, "[synthesis]\nengine = \"piper\"\n")

	// Пустой текст не доходит до движка, поэтому отсутствие голоса не важно
	if err := a.Speak(context.Background(), ""); err != nil {
		t.Errorf("Speak(\"\") error = %v", err)
	}
}
