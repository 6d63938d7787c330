package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// piperDefaultSampleRate - частота большинства голосов Piper.
const piperDefaultSampleRate = 22050

// PCMPlayer воспроизводит сырой PCM16.
type PCMPlayer interface {
	PlayRaw(ctx context.Context, pcm []byte, sampleRate float64) error
}

// PiperSynthesizer реализует синтез через бинарник Piper и воспроизводит результат.
type PiperSynthesizer struct {
	binaryPath string
	modelPath  string
	configPath string
	espeakData string
	sampleRate int
	locale     string
	player     PCMPlayer
}

// piperVoiceConfig - нужная часть .onnx.json голоса.
type piperVoiceConfig struct {
	Audio struct {
		SampleRate int `json:"sample_rate"`
	} `json:"audio"`
}

// NewPiper создаёт синтезатор для голоса modelPath.
func NewPiper(binaryPath, modelPath, locale string, player PCMPlayer) (*PiperSynthesizer, error) {
	if binaryPath == "" {
		binaryPath = "piper"
	}
	resolved, err := exec.LookPath(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("piper не найден: %w", err)
	}

	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("голос Piper не найден: %s", modelPath)
	}

	// Конфиг лежит рядом с моделью
	configPath := modelPath + ".json"
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("конфиг голоса не найден: %s", configPath)
	}

	var cfg piperVoiceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига голоса: %w", err)
	}
	sampleRate := cfg.Audio.SampleRate
	if sampleRate <= 0 {
		sampleRate = piperDefaultSampleRate
	}

	// espeak-ng-data обычно лежит рядом с бинарником
	espeakData := filepath.Join(filepath.Dir(resolved), "espeak-ng-data")
	if _, err := os.Stat(espeakData); err != nil {
		espeakData = ""
	}

	return &PiperSynthesizer{
		binaryPath: resolved,
		modelPath:  modelPath,
		configPath: configPath,
		espeakData: espeakData,
		sampleRate: sampleRate,
		locale:     locale,
		player:     player,
	}, nil
}

// Name возвращает название движка.
func (p *PiperSynthesizer) Name() string {
	return "piper/" + p.locale
}

// Speak синтезирует фразу и воспроизводит её.
func (p *PiperSynthesizer) Speak(ctx context.Context, u Utterance) error {
	pcm, err := p.synthesize(ctx, u)
	if err != nil {
		return err
	}
	if len(pcm) == 0 {
		return nil
	}
	return p.player.PlayRaw(ctx, pcm, float64(p.sampleRate))
}

func (p *PiperSynthesizer) synthesize(ctx context.Context, u Utterance) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.binaryPath, p.args(u.Rate)...)
	cmd.Stdin = strings.NewReader(u.Text)
	cmd.Dir = filepath.Dir(p.binaryPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper: %w, stderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}

func (p *PiperSynthesizer) args(rate float64) []string {
	args := []string{
		"--model", p.modelPath,
		"--config", p.configPath,
		"--output_raw",
		"--length_scale", strconv.FormatFloat(piperLengthScale(rate), 'f', 2, 64),
	}
	if p.espeakData != "" {
		args = append(args, "--espeak_data", p.espeakData)
	}
	return args
}

// piperLengthScale переводит скорость (0, 1] в length_scale Piper:
// 0.5 -> 1.0, быстрее - меньше.
func piperLengthScale(rate float64) float64 {
	if rate <= 0 || rate > 1 {
		rate = DefaultRate
	}
	return DefaultRate / rate
}

// Close ничего не делает: Piper запускается на каждую фразу.
func (p *PiperSynthesizer) Close() error {
	return nil
}
