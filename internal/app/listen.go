package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"govorun/internal/audio"
	"govorun/internal/hotkey"
	"govorun/internal/i18n"
	"govorun/internal/input"
	"govorun/internal/permission"
	"govorun/internal/speech"
	"govorun/internal/voice"
)

// Recognition создаёт контроллер распознавания поверх источника звука.
// Выбранный язык приложения становится языком контроллера.
func (a *App) Recognition(source audio.Source) (*voice.RecognitionController, error) {
	mode, err := permission.ParseMode(a.config.Recognition().Authorization)
	if err != nil {
		return nil, err
	}
	return a.recognition(source, speech.NewRecognizerFunc(a.engines), audio.NewAuthorizer(mode))
}

func (a *App) recognition(source audio.Source, newRecognizer speech.RecognizerFunc, auth permission.Authorizer) (*voice.RecognitionController, error) {
	rec := voice.NewRecognitionController(a.registry, newRecognizer, source, auth,
		voice.WithLogger(a.root.WithPrefix("stt")),
		voice.WithSampleRate(int(a.config.Recognition().SampleRate)),
	)
	if err := rec.SetLanguage(a.Language().DisplayName); err != nil {
		rec.Close()
		return nil, err
	}
	return rec, nil
}

func (a *App) microphone() (*audio.Microphone, error) {
	rec := a.config.Recognition()
	return audio.NewMicrophone(audio.Config{
		SampleRate:      rec.SampleRate,
		FramesPerBuffer: rec.FramesPerBuffer,
		Device:          rec.Device,
	})
}

// authorize запрашивает доступ к микрофону и ждёт ответа.
func (a *App) authorize(ctx context.Context, rec *voice.RecognitionController) error {
	rec.RequestAuthorization(ctx)
	status, err := rec.WaitAuthorization(ctx)
	if err != nil {
		return err
	}
	if status != permission.Authorized {
		a.notifier.Denied()
		return fmt.Errorf("%s: %w", i18n.T("cli_not_authorized"), voice.ErrNotAuthorized)
	}
	return nil
}

// Listen записывает одну сессию на выбранном языке, пока не закроется stop,
// не истечёт ctx или не закончится звук. Возвращает расшифровку.
func (a *App) Listen(ctx context.Context, stop <-chan struct{}, onUpdate func(voice.RecognitionSnapshot)) (string, error) {
	mic, err := a.microphone()
	if err != nil {
		return "", err
	}
	defer mic.Terminate()

	rec, err := a.Recognition(mic)
	if err != nil {
		return "", err
	}
	defer rec.Close()

	return a.listen(ctx, rec, stop, onUpdate)
}

func (a *App) listen(ctx context.Context, rec *voice.RecognitionController, stop <-chan struct{}, onUpdate func(voice.RecognitionSnapshot)) (string, error) {
	if err := a.authorize(ctx, rec); err != nil {
		return "", err
	}

	updates, cancel := rec.Subscribe()
	defer cancel()

	if err := rec.StartSelected(ctx); err != nil {
		a.notifier.Error(err.Error())
		return "", err
	}
	a.notifier.Recording(rec.Snapshot().Language.DisplayName)

	done := ctx.Done()
	for {
		select {
		case <-done:
			rec.Stop()
			done = nil
		case <-stop:
			rec.Stop()
			stop = nil
		case s, ok := <-updates:
			if !ok {
				return rec.Snapshot().Text, nil
			}
			if onUpdate != nil {
				onUpdate(s)
			}
			if s.State == voice.StateStopped {
				a.deliver(s.Text)
				if err := a.saveRecording(rec); err != nil {
					return s.Text, err
				}
				return s.Text, nil
			}
		}
	}
}

// Serve переключает запись горячей клавишей, пока не истечёт ctx.
// Каждая законченная сессия вводится в активное окно или показывается уведомлением.
func (a *App) Serve(ctx context.Context, onUpdate func(voice.RecognitionSnapshot)) error {
	mic, err := a.microphone()
	if err != nil {
		return err
	}
	defer mic.Terminate()

	rec, err := a.Recognition(mic)
	if err != nil {
		return err
	}
	defer rec.Close()

	return a.serve(ctx, rec, onUpdate)
}

func (a *App) serve(ctx context.Context, rec *voice.RecognitionController, onUpdate func(voice.RecognitionSnapshot)) error {
	if err := a.authorize(ctx, rec); err != nil {
		return err
	}

	var done deliveries
	h := hotkey.New(func() { a.toggle(ctx, rec, &done) }, a.root.WithPrefix("hotkey"))
	if err := h.Register(a.Hotkey()); err != nil {
		return fmt.Errorf("горячая клавиша %s: %w", a.Hotkey(), err)
	}
	defer h.Unregister()

	updates, cancel := rec.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			rec.Stop()
			return nil
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if onUpdate != nil {
				onUpdate(s)
			}
			if done.take(s) {
				a.deliver(s.Text)
			}
		}
	}
}

func (a *App) toggle(ctx context.Context, rec *voice.RecognitionController, done *deliveries) {
	snap := rec.Snapshot()
	if snap.IsRecording() {
		rec.Stop()
		return
	}

	// Подписчик видит только последний снимок: итог прошлой сессии
	// выдаём здесь, пока новая сессия его не заменила
	if done.take(snap) {
		a.deliver(snap.Text)
	}

	if err := rec.StartSelected(ctx); err != nil {
		a.logger.Error("не удалось начать запись", "language", snap.Language, "err", err)
		a.notifier.Error(err.Error())
		return
	}
	a.notifier.Recording(rec.Snapshot().Language.DisplayName)
}

// deliveries помнит последнюю выданную сессию.
type deliveries struct {
	mu   sync.Mutex
	last string
}

// take сообщает, что сессия остановлена и её итог ещё не выдан.
func (d *deliveries) take(s voice.RecognitionSnapshot) bool {
	if s.State != voice.StateStopped || s.ID == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.ID == d.last {
		return false
	}
	d.last = s.ID
	return true
}

// saveRecording пишет звук последней сессии как PCM16 mono, если задан путь.
func (a *App) saveRecording(rec *voice.RecognitionController) error {
	a.mu.Lock()
	path := a.recordingPath
	a.mu.Unlock()

	if path == "" {
		return nil
	}
	samples := rec.Recording()
	if err := os.WriteFile(path, audio.Float32ToPCM16(samples), 0644); err != nil {
		return fmt.Errorf("запись звука в %s: %w", path, err)
	}
	a.logger.Info("звук сохранён", "path", path, "samples", len(samples))
	return nil
}

// deliver отдаёт итог сессии пользователю.
func (a *App) deliver(text string) {
	if text == "" {
		a.notifier.Empty()
		return
	}

	a.mu.Lock()
	typer := a.typer
	a.mu.Unlock()

	if typer != nil {
		if err := input.TypeTranscript(typer, text); err != nil {
			a.logger.Error("ошибка ввода текста", "err", err)
			a.notifier.Error(err.Error())
			return
		}
	}
	a.notifier.Success(text)
}
