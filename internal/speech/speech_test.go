package speech

import (
	"context"
	"errors"
	"testing"

	"govorun/internal/language"
	"govorun/internal/models"
)

type stubSynth struct {
	name   string
	closed int
}

func (s *stubSynth) Name() string { return s.name }
func (s *stubSynth) Close() error { s.closed++; return nil }

func (s *stubSynth) Speak(ctx context.Context, u Utterance) error { return nil }

var (
	english  = language.Language{DisplayName: "English", LocaleID: "en-US"}
	japanese = language.Language{DisplayName: "Japanese", LocaleID: "ja-JP"}
)

func TestFactory_CachesPerLanguageAndRole(t *testing.T) {
	calls := 0
	f := NewFactory(func(lang language.Language) (Synthesizer, error) {
		calls++
		return &stubSynth{name: lang.LocaleID}, nil
	}, nil)

	first, err := f.Synthesizer(english)
	if err != nil {
		t.Fatalf("Synthesizer() error = %v", err)
	}
	second, err := f.Synthesizer(english)
	if err != nil {
		t.Fatalf("Synthesizer() error = %v", err)
	}
	if first != second {
		t.Error("second call must return the cached handle")
	}
	if calls != 1 {
		t.Errorf("constructor calls = %d, want 1", calls)
	}

	if _, err := f.Synthesizer(japanese); err != nil {
		t.Fatalf("Synthesizer(japanese) error = %v", err)
	}
	if calls != 2 {
		t.Errorf("constructor calls = %d, want 2", calls)
	}
}

func TestFactory_FailureIsReportedAndNotCached(t *testing.T) {
	calls := 0
	f := NewFactory(func(lang language.Language) (Synthesizer, error) {
		calls++
		if lang.LocaleID == "ja-JP" {
			return nil, errors.New("unsupported locale")
		}
		return &stubSynth{name: lang.LocaleID}, nil
	}, nil)

	_, err := f.Synthesizer(japanese)
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("error = %v, want ErrEngineUnavailable", err)
	}

	var unavailable *EngineUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error %T is not *EngineUnavailableError", err)
	}
	if unavailable.Language != japanese || unavailable.Role != RoleSynthesis {
		t.Errorf("error = %+v, want japanese/synthesis", unavailable)
	}

	// Другие языки продолжают работать
	if _, err := f.Synthesizer(english); err != nil {
		t.Errorf("Synthesizer(english) error = %v", err)
	}

	f.Synthesizer(japanese)
	if calls != 3 {
		t.Errorf("constructor calls = %d, want 3 (failures are retried)", calls)
	}
}

func TestFactory_MissingConstructorAndPanic(t *testing.T) {
	f := NewFactory(func(lang language.Language) (Synthesizer, error) {
		panic("boom")
	}, nil)

	if _, err := f.Recognizer(english); !errors.Is(err, ErrEngineUnavailable) {
		t.Errorf("Recognizer() error = %v, want ErrEngineUnavailable", err)
	}
	if _, err := f.Synthesizer(english); !errors.Is(err, ErrEngineUnavailable) {
		t.Errorf("Synthesizer() after panic error = %v, want ErrEngineUnavailable", err)
	}
}

func TestFactory_CloseReleasesHandles(t *testing.T) {
	stub := &stubSynth{name: "stub"}
	f := NewFactory(func(lang language.Language) (Synthesizer, error) {
		return stub, nil
	}, nil)

	if _, err := f.Synthesizer(english); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if stub.closed != 1 {
		t.Errorf("closed = %d, want 1", stub.closed)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if stub.closed != 1 {
		t.Errorf("closed after second Close = %d, want 1", stub.closed)
	}

	if _, err := f.Synthesizer(english); !errors.Is(err, ErrEngineUnavailable) {
		t.Errorf("Synthesizer() after Close error = %v, want ErrEngineUnavailable", err)
	}
}

func TestSayWPM(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{0.5, 175},
		{1.0, 350},
		{0.25, 88},
		{0, 175},
		{1.5, 175},
	}

	for _, tt := range tests {
		if got := sayWPM(tt.rate); got != tt.want {
			t.Errorf("sayWPM(%v) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestSayArgs(t *testing.T) {
	got := sayArgs("Kyoko", Utterance{Text: "-hello", Rate: 0.5})
	want := []string{"-v", "Kyoko", "-r", "175", "--", "-hello"}

	if len(got) != len(want) {
		t.Fatalf("sayArgs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sayArgs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPiperLengthScale(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{0.5, 1.0},
		{1.0, 0.5},
		{0.25, 2.0},
		{-1, 1.0},
	}

	for _, tt := range tests {
		if got := piperLengthScale(tt.rate); got != tt.want {
			t.Errorf("piperLengthScale(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestJoinPhrases(t *testing.T) {
	if got := joinPhrases([]string{"hello", "world"}, " again "); got != "hello world again" {
		t.Errorf("joinPhrases() = %q", got)
	}
	if got := joinPhrases(nil, "  "); got != "" {
		t.Errorf("joinPhrases(nil, blank) = %q, want empty", got)
	}
}

func TestParseVosk(t *testing.T) {
	r, err := parseVosk(`{"partial": "hel"}`)
	if err != nil {
		t.Fatalf("parseVosk() error = %v", err)
	}
	if r.Partial != "hel" {
		t.Errorf("Partial = %q, want hel", r.Partial)
	}

	if _, err := parseVosk([]byte("not json")); err == nil {
		t.Error("parseVosk(invalid) error = nil")
	}
}

func TestNewRecognizerFunc_MissingModel(t *testing.T) {
	m, err := models.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	newRec := NewRecognizerFunc(EngineOptions{Models: m})
	if _, err := newRec(english); err == nil {
		t.Error("constructor must fail without installed model")
	}
}

func TestNewSynthesizerFunc_UnknownEngine(t *testing.T) {
	newSynth := NewSynthesizerFunc(EngineOptions{Synthesis: "espeak"})
	if _, err := newSynth(english); err == nil {
		t.Error("constructor must fail for unknown engine")
	}
}
