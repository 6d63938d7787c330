package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() on defaults error = %v", err)
	}

	if got := c.Language(); got != "English" {
		t.Errorf("Language() = %q, want English", got)
	}
	if got := c.Synthesis().Rate; got != 0.5 {
		t.Errorf("Synthesis().Rate = %v, want 0.5", got)
	}
	if got := len(c.Languages()); got != 3 {
		t.Errorf("Languages() = %d entries, want 3", got)
	}
	if got := c.Hotkey().String(); got != "ctrl+shift+space" {
		t.Errorf("Hotkey() = %q, want ctrl+shift+space", got)
	}
}

func TestNew_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
language = "Russian"
notifications = false

[synthesis]
engine = "piper"
rate = 0.75

[recognition]
authorization = "always"

[[languages]]
name = "Russian"
locale = "ru-RU"
recognition_model = "/opt/vosk-ru"

[[languages]]
name = "English"
locale = "en-US"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if c.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true, want false")
	}
	syn := c.Synthesis()
	if syn.Engine != "piper" || syn.Rate != 0.75 {
		t.Errorf("Synthesis() = %+v", syn)
	}
	// Не заданные в файле значения остаются по умолчанию
	if syn.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want 16", syn.QueueSize)
	}
	if got := c.Recognition().SampleRate; got != 16000 {
		t.Errorf("SampleRate = %v, want 16000", got)
	}

	langs := c.Languages()
	if len(langs) != 2 || langs[0].RecognitionModel != "/opt/vosk-ru" {
		t.Errorf("Languages() = %+v", langs)
	}

	reg, err := c.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if got := reg.First().LocaleID; got != "ru-RU" {
		t.Errorf("First().LocaleID = %q, want ru-RU", got)
	}
}

func TestNew_Hotkey(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no hotkey table", "notifications = false\n", "ctrl+shift+space"},
		{"hotkey from file", "[hotkey]\nmodifiers = [\"alt\"]\nkey = \"f9\"\n", "alt+f9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			c, err := New(path)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := c.Hotkey().String(); got != tt.want {
				t.Errorf("Hotkey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("language = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path); err == nil {
		t.Error("New() error = nil for malformed file")
	}
}

func TestSetterPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SetLanguage("Japanese"); err != nil {
		t.Fatalf("SetLanguage() error = %v", err)
	}
	if err := c.SetSynthesisRate(0.3); err != nil {
		t.Fatalf("SetSynthesisRate() error = %v", err)
	}

	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("New() after save error = %v", err)
	}
	if got := reloaded.Language(); got != "Japanese" {
		t.Errorf("Language() = %q, want Japanese", got)
	}
	if got := reloaded.Synthesis().Rate; got != 0.3 {
		t.Errorf("Rate = %v, want 0.3", got)
	}
	if got := len(reloaded.Languages()); got != 3 {
		t.Errorf("Languages() = %d entries, want 3", got)
	}
}

func TestSetSynthesisRate_Range(t *testing.T) {
	c, _ := New(filepath.Join(t.TempDir(), "config.toml"))
	for _, rate := range []float64{0, -0.1, 1.5} {
		if err := c.SetSynthesisRate(rate); err == nil {
			t.Errorf("SetSynthesisRate(%v) error = nil", rate)
		}
	}
}

func TestSetters_Reject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c, _ := New(path)

	if err := c.SetLanguage("Klingon"); err == nil {
		t.Error("SetLanguage(Klingon) error = nil")
	}
	if err := c.SetHotkey(HotkeyConfig{Key: KeyA}); err == nil {
		t.Error("SetHotkey() without modifiers error = nil")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("rejected setters wrote the file")
	}

	hk := HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyF5}
	if err := c.SetHotkey(hk); err != nil {
		t.Fatalf("SetHotkey() error = %v", err)
	}
	if err := c.SetUILanguage("en"); err != nil {
		t.Fatalf("SetUILanguage() error = %v", err)
	}
	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Hotkey().String(); got != "alt+f5" {
		t.Errorf("Hotkey() = %q, want alt+f5", got)
	}
	if got := reloaded.UILanguage(); got != "en" {
		t.Errorf("UILanguage() = %q, want en", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"rate too high", "[synthesis]\nrate = 1.5\n", "скорость"},
		{"unknown engine", "[synthesis]\nengine = \"espeak\"\n", "движок"},
		{"bad authorization", "[recognition]\nauthorization = \"sometimes\"\n", "sometimes"},
		{"unknown default language", "language = \"Klingon\"\n", "Klingon"},
		{"duplicate locale", "[[languages]]\nname = \"A\"\nlocale = \"en-US\"\n[[languages]]\nname = \"B\"\nlocale = \"en-US\"\n", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			c, err := New(path)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			err = c.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"ctrl+shift+space", "ctrl+shift+space", false},
		{"Cmd+R", "super+r", false},
		{" alt + f5 ", "alt+f5", false},
		{"space", "", true},
		{"ctrl+hyper+a", "", true},
		{"ctrl+enter", "", true},
	}

	for _, tt := range tests {
		got, err := ParseHotkey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHotkey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("ParseHotkey(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}
