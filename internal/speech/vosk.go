package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	vosk "github.com/alphacep/vosk-api/go"

	"govorun/internal/audio"
)

// VoskRecognizer реализует потоковый Recognizer через Vosk.
// Модель загружается один раз, на каждую сессию создаётся свой распознаватель.
type VoskRecognizer struct {
	mu         sync.Mutex
	model      *vosk.VoskModel
	sampleRate float64
	locale     string
}

// voskResult структура для парсинга JSON результата от Vosk.
type voskResult struct {
	Text    string `json:"text"`
	Partial string `json:"partial"`
}

// NewVosk создаёт VoskRecognizer из пути к модели.
func NewVosk(modelPath, locale string, sampleRate float64) (*VoskRecognizer, error) {
	// Проверяем существование директории модели
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("модель Vosk не найдена: %s", modelPath)
	}

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки модели Vosk: %w", err)
	}

	if sampleRate <= 0 {
		sampleRate = audio.SampleRate
	}

	return &VoskRecognizer{
		model:      model,
		sampleRate: sampleRate,
		locale:     locale,
	}, nil
}

// Name возвращает название движка.
func (v *VoskRecognizer) Name() string {
	return "vosk/" + v.locale
}

// Recognize запускает сессию распознавания.
func (v *VoskRecognizer) Recognize(ctx context.Context, samples <-chan []float32) (<-chan Result, error) {
	v.mu.Lock()
	model := v.model
	v.mu.Unlock()

	if model == nil {
		return nil, errors.New("распознаватель закрыт")
	}

	rec, err := vosk.NewRecognizer(model, v.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания распознавателя Vosk: %w", err)
	}

	results := make(chan Result, 16)
	go v.run(ctx, rec, samples, results)
	return results, nil
}

func (v *VoskRecognizer) run(ctx context.Context, rec *vosk.VoskRecognizer, samples <-chan []float32, results chan<- Result) {
	defer close(results)
	defer rec.Free()

	// Vosk отдаёт текст по фразам: завершённые фразы копим, к ним добавляем текущую
	var committed []string
	last := ""

	emit := func(r Result) bool {
		select {
		case results <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case chunk, ok := <-samples:
			if !ok {
				final, err := parseVosk(rec.FinalResult())
				if err != nil {
					emit(Result{Err: err})
				}
				emit(Result{Text: joinPhrases(committed, final.Text), Final: true})
				return
			}

			// Vosk принимает PCM16
			if rec.AcceptWaveform(audio.Float32ToPCM16(chunk)) != 0 {
				res, err := parseVosk(rec.Result())
				if err != nil {
					if !emit(Result{Err: err}) {
						return
					}
					continue
				}
				if res.Text != "" {
					committed = append(committed, res.Text)
				}
			} else {
				res, err := parseVosk(rec.PartialResult())
				if err != nil {
					if !emit(Result{Err: err}) {
						return
					}
					continue
				}
				text := joinPhrases(committed, res.Partial)
				if text == last {
					continue
				}
				last = text
				if !emit(Result{Text: text}) {
					return
				}
			}
		}
	}
}

func parseVosk[T ~string | ~[]byte](raw T) (voskResult, error) {
	var r voskResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return r, fmt.Errorf("ошибка разбора результата Vosk: %w", err)
	}
	return r, nil
}

func joinPhrases(committed []string, current string) string {
	parts := make([]string, 0, len(committed)+1)
	parts = append(parts, committed...)
	if current = strings.TrimSpace(current); current != "" {
		parts = append(parts, current)
	}
	return strings.Join(parts, " ")
}

// Close освобождает модель.
func (v *VoskRecognizer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
	return nil
}
