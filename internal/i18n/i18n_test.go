package i18n

import "testing"

func TestTranslationsComplete(t *testing.T) {
	for key := range translations[RU] {
		if _, ok := translations[EN][key]; !ok {
			t.Errorf("key %q missing in EN", key)
		}
	}
	for key := range translations[EN] {
		if _, ok := translations[RU][key]; !ok {
			t.Errorf("key %q missing in RU", key)
		}
	}
}

func TestT(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(EN)
	if got := T("notify_done"); got != "Done" {
		t.Errorf("T(notify_done) = %q, want Done", got)
	}
	if got := T("no_such_key"); got != "no_such_key" {
		t.Errorf("T(unknown) = %q, want the key", got)
	}
	if got := Tf("cli_speaking", "English", "hi"); got != "Speaking (English): hi" {
		t.Errorf("Tf() = %q", got)
	}

	SetLanguage(RU)
	if got := T("notify_done"); got != "Готово" {
		t.Errorf("T(notify_done) = %q, want Готово", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"en", EN},
		{"EN-us", EN},
		{"ru_RU", RU},
		{"", RU},
		{"de", RU},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
