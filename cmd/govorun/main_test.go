package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "notifications = false\nlanguage = \"Japanese\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLanguagesCommand(t *testing.T) {
	out, err := execute(t, "languages", "--config", writeConfig(t))
	if err != nil {
		t.Fatalf("languages error = %v", err)
	}
	for _, want := range []string{"English", "ja-JP", "Korean"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownLanguageFlag(t *testing.T) {
	if _, err := execute(t, "languages", "--config", writeConfig(t), "-l", "Klingon"); err == nil {
		t.Error("error = nil for unknown --language")
	}
}

func TestInvalidHotkeyFlag(t *testing.T) {
	if _, err := execute(t, "languages", "--config", writeConfig(t), "--hotkey", "ctrl+hyper"); err == nil {
		t.Error("error = nil for invalid --hotkey")
	}
}

func TestSpeakTextsFromStdin(t *testing.T) {
	c := &cli{}
	texts, err := c.speakTexts(strings.NewReader("hello\n\n  world \n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(texts) != 2 || texts[0] != "hello" || texts[1] != "world" {
		t.Errorf("speakTexts() = %q, want [hello world]", texts)
	}

	texts, _ = c.speakTexts(nil, []string{"good", "morning"})
	if len(texts) != 1 || texts[0] != "good morning" {
		t.Errorf("speakTexts(args) = %q, want [good morning]", texts)
	}
}

func TestConfigCommands(t *testing.T) {
	path := writeConfig(t)

	for _, args := range [][]string{
		{"config", "notifications", "on"},
		{"config", "rate", "0.8"},
		{"config", "hotkey", "alt+f9"},
		{"config", "language", "ko-KR"},
	} {
		if _, err := execute(t, append(args, "--config", path)...); err != nil {
			t.Fatalf("%v error = %v", args, err)
		}
	}

	out, err := execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"Korean", "alt+f9", "0.8", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "config", "rate", "2", "--config", path); err == nil {
		t.Error("config rate 2 error = nil")
	}
	if _, err := execute(t, "config", "ui-language", "de", "--config", path); err == nil {
		t.Error("config ui-language de error = nil")
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"true", true, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSwitch(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestConfigCommandRepairsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[synthesis]\nrate = 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "languages", "--config", path); err == nil {
		t.Fatal("languages error = nil for rate 1.5")
	}
	if _, err := execute(t, "config", "rate", "0.5", "--config", path); err != nil {
		t.Fatalf("config rate 0.5 error = %v", err)
	}
	if _, err := execute(t, "languages", "--config", path); err != nil {
		t.Errorf("languages after repair error = %v", err)
	}
}

func TestInConfigTree(t *testing.T) {
	root := newRootCommand()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"config", "rate"}, true},
		{[]string{"config"}, true},
		{[]string{"speak"}, false},
	}
	for _, tt := range tests {
		cmd, _, err := root.Find(tt.args)
		if err != nil {
			t.Fatalf("Find(%v) error = %v", tt.args, err)
		}
		if got := inConfigTree(cmd); got != tt.want {
			t.Errorf("inConfigTree(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
