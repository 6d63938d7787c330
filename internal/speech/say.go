package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"runtime"
	"strconv"
)

// sayDefaultWPM - скорость say по умолчанию (слов в минуту), соответствует DefaultRate.
const sayDefaultWPM = 175

// SaySynthesizer реализует синтез через системную команду macOS say.
type SaySynthesizer struct {
	binary string
	voice  string
	locale string
}

// NewSay создаёт синтезатор с голосом voice.
func NewSay(voice, locale string) (*SaySynthesizer, error) {
	if runtime.GOOS != "darwin" {
		return nil, errors.New("say доступен только на macOS")
	}

	binary, err := exec.LookPath("say")
	if err != nil {
		return nil, fmt.Errorf("say не найден: %w", err)
	}

	return &SaySynthesizer{
		binary: binary,
		voice:  voice,
		locale: locale,
	}, nil
}

// Name возвращает название движка.
func (s *SaySynthesizer) Name() string {
	return "say/" + s.locale
}

// Speak произносит фразу и ждёт окончания.
func (s *SaySynthesizer) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, s.binary, sayArgs(s.voice, u)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("say: %w: %s", err, out)
	}
	return nil
}

func sayArgs(voice string, u Utterance) []string {
	args := []string{}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	args = append(args, "-r", strconv.Itoa(sayWPM(u.Rate)))
	// "--" чтобы текст, начинающийся с "-", не читался как флаг
	return append(args, "--", u.Text)
}

// sayWPM переводит скорость (0, 1] в слова в минуту: 0.5 - обычная скорость.
func sayWPM(rate float64) int {
	if rate <= 0 || rate > 1 {
		rate = DefaultRate
	}
	wpm := int(math.Round(sayDefaultWPM * rate / DefaultRate))
	if wpm < 1 {
		wpm = 1
	}
	return wpm
}

// Close ничего не делает: say - внешний процесс.
func (s *SaySynthesizer) Close() error {
	return nil
}
