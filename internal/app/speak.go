package app

import (
	"context"
	"errors"

	"govorun/internal/speech"
	"govorun/internal/voice"
)

// Speak произносит фразы по очереди на выбранном языке и ждёт окончания.
func (a *App) Speak(ctx context.Context, texts ...string) error {
	syn := a.Synthesis()
	lang := a.Language()

	if err := syn.SetLanguage(lang.DisplayName); err != nil {
		syn.Close(ctx)
		return err
	}

	var errs []error
	for _, text := range texts {
		syn.SetText(text)
		if err := syn.SpeakCurrent(); err != nil {
			errs = append(errs, err)
			break
		}
	}

	// Close дожидается, пока очередь договорит
	if err := syn.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := syn.Snapshot().Err; err != nil && len(errs) == 0 {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		a.logger.Error("ошибка синтеза", "language", lang, "err", err)
		a.notifier.Error(err.Error())
	}
	return err
}

// Synthesis создаёт контроллер синтеза с движками из конфигурации.
func (a *App) Synthesis() *voice.SynthesisController {
	syn := a.config.Synthesis()
	return voice.NewSynthesisController(a.registry, speech.NewSynthesizerFunc(a.engines),
		voice.WithLogger(a.root.WithPrefix("tts")),
		voice.WithRate(syn.Rate),
		voice.WithQueueSize(syn.QueueSize),
	)
}
