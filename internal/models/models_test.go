package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForLocale(t *testing.T) {
	tests := []struct {
		engine Engine
		locale string
		wantID string
		wantOK bool
	}{
		{EngineVosk, "en-US", "vosk-en-us-small", true},
		{EngineVosk, "ja-JP", "vosk-ja-small", true},
		{EngineSay, "ko-KR", "say-ko-kr", true},
		{EnginePiper, "ja-JP", "", false},
		{EngineVosk, "xx-XX", "", false},
	}

	for _, tt := range tests {
		info, ok := ForLocale(tt.engine, tt.locale)
		if ok != tt.wantOK {
			t.Errorf("ForLocale(%s, %s) ok = %v, want %v", tt.engine, tt.locale, ok, tt.wantOK)
			continue
		}
		if info.ID != tt.wantID {
			t.Errorf("ForLocale(%s, %s) = %q, want %q", tt.engine, tt.locale, info.ID, tt.wantID)
		}
	}
}

func TestRegistry_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Registry {
		if seen[m.ID] {
			t.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true

		if _, ok := GetModel(m.ID); !ok {
			t.Errorf("GetModel(%q) not found", m.ID)
		}
	}
}

func TestManager_IsInstalled(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	vosk, _ := GetModel("vosk-en-us-small")
	piper, _ := GetModel("piper-en-us-lessac")
	say, _ := GetModel("say-en-us")

	if m.IsInstalled(vosk) {
		t.Error("vosk model reported installed before creation")
	}
	if !m.IsInstalled(say) {
		t.Error("say voice must always be installed")
	}

	if err := os.MkdirAll(m.GetModelPath(vosk), 0o755); err != nil {
		t.Fatal(err)
	}
	if !m.IsInstalled(vosk) {
		t.Error("vosk model directory not detected")
	}

	piperPath := m.GetModelPath(piper)
	if err := os.MkdirAll(filepath.Dir(piperPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(piperPath, []byte("onnx"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m.IsInstalled(piper) {
		t.Error("piper voice without .json config reported installed")
	}
	if err := os.WriteFile(piperPath+".json", []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !m.IsInstalled(piper) {
		t.Error("piper voice with config not detected")
	}

	path, err := m.Find(EngineVosk, "en-US")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if path != filepath.Join(dir, "vosk", vosk.Filename) {
		t.Errorf("Find() = %q", path)
	}

	if _, err := m.Find(EngineVosk, "ja-JP"); err == nil {
		t.Error("Find() for missing model must fail")
	}

	if got := len(m.ListInstalled()); got < 3 {
		t.Errorf("ListInstalled() = %d models, want at least 3", got)
	}
}
