package voice

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"govorun/internal/language"
	"govorun/internal/speech"
)

type utteranceJob struct {
	engine    speech.Synthesizer
	utterance speech.Utterance
}

// SynthesisController озвучивает текст на выбранном языке.
// Фразы произносятся по очереди одной горутиной.
type SynthesisController struct {
	mu       sync.Mutex
	registry *language.Registry
	engines  *speech.Factory
	rate     float64
	logger   *log.Logger

	snap   SynthesisSnapshot
	queue  chan utteranceJob
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	hub hub[SynthesisSnapshot]
}

// NewSynthesisController создаёт контроллер и запускает очередь воспроизведения.
// Выбранный язык - первый в реестре.
func NewSynthesisController(registry *language.Registry, newSynthesizer speech.SynthesizerFunc, opts ...Option) *SynthesisController {
	o := buildOptions("tts", opts)
	ctx, cancel := context.WithCancel(context.Background())

	c := &SynthesisController{
		registry: registry,
		engines:  speech.NewFactory(newSynthesizer, nil),
		rate:     o.rate,
		logger:   o.logger,
		snap:     SynthesisSnapshot{Language: registry.First()},
		queue:    make(chan utteranceJob, o.queueSize),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go c.dispatch()
	return c
}

// Snapshot возвращает текущее состояние.
func (c *SynthesisController) Snapshot() SynthesisSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe возвращает канал снимков. Первым приходит текущий снимок.
// Функция отписки закрывает канал.
func (c *SynthesisController) Subscribe() (<-chan SynthesisSnapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hub.subscribe(c.snap)
}

// SetText сохраняет текст поля ввода.
func (c *SynthesisController) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap.Text == text {
		return
	}
	c.snap.Text = text
	c.publish()
}

// SetLanguage выбирает язык по отображаемому имени.
func (c *SynthesisController) SetLanguage(name string) error {
	lang, err := c.registry.Resolve(name)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.snap.Language = lang
	c.publish()
	return nil
}

// SpeakCurrent произносит сохранённый текст на выбранном языке.
func (c *SynthesisController) SpeakCurrent() error {
	c.mu.Lock()
	text, lang := c.snap.Text, c.snap.Language
	c.mu.Unlock()

	return c.Speak(text, lang)
}

// Speak ставит фразу в очередь и сразу возвращается.
// Пустой текст игнорируется. После постановки в очередь поле ввода очищается.
func (c *SynthesisController) Speak(text string, lang language.Language) error {
	if text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err := checkLanguage(c.registry, lang); err != nil {
		c.snap.Err = err
		c.publish()
		return err
	}

	engine, err := c.engines.Synthesizer(lang)
	if err != nil {
		c.logger.Error("движок синтеза недоступен", "language", lang, "err", err)
		c.snap.Err = err
		c.publish()
		return err
	}

	job := utteranceJob{
		engine:    engine,
		utterance: speech.Utterance{Text: text, Locale: lang.LocaleID, Rate: c.rate},
	}

	select {
	case c.queue <- job:
	default:
		c.logger.Warn("очередь синтеза переполнена", "pending", c.snap.Pending)
		c.snap.Err = ErrSynthesisBusy
		c.publish()
		return ErrSynthesisBusy
	}

	c.logger.Debug("фраза в очереди", "engine", engine.Name(), "chars", len(text))
	c.snap.Pending++
	c.snap.Text = ""
	c.snap.Err = nil
	c.publish()
	return nil
}

// Close перестаёт принимать фразы и ждёт, пока очередь договорит.
// Если ctx истёк раньше, текущая фраза прерывается.
func (c *SynthesisController) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	var waitErr error
	select {
	case <-c.done:
	case <-ctx.Done():
		waitErr = ctx.Err()
		c.cancel()
		<-c.done
	}
	c.cancel()

	err := c.engines.Close()
	c.hub.close()

	if waitErr != nil {
		return waitErr
	}
	return err
}

func (c *SynthesisController) dispatch() {
	defer close(c.done)

	for job := range c.queue {
		err := c.speak(job)

		c.mu.Lock()
		c.snap.Pending--
		if err != nil {
			c.logger.Error("ошибка воспроизведения", "engine", job.engine.Name(), "err", err)
			c.snap.Err = err
		}
		c.publish()
		c.mu.Unlock()
	}
}

func (c *SynthesisController) speak(job utteranceJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("паника в движке %s: %v", job.engine.Name(), r)
		}
	}()

	if err := c.ctx.Err(); err != nil {
		return err
	}
	return job.engine.Speak(c.ctx, job.utterance)
}

// publish вызывается под c.mu.
func (c *SynthesisController) publish() {
	c.hub.publish(c.snap)
}
