package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"govorun/internal/audio"
	"govorun/internal/language"
	"govorun/internal/permission"
	"govorun/internal/speech"
)

// feedSize - сколько кусков аудио может ждать движок.
const feedSize = 64

// session - ресурсы одной сессии записи.
type session struct {
	id           string
	lang         language.Language
	buffer       *audio.Buffer
	ctx          context.Context
	cancel       context.CancelFunc
	sourceClosed bool
}

// RecognitionController управляет сессиями записи и распознавания.
type RecognitionController struct {
	mu         sync.Mutex
	registry   *language.Registry
	engines    *speech.Factory
	source     audio.Source
	authorizer permission.Authorizer
	sampleRate int
	logger     *log.Logger

	snap    RecognitionSnapshot
	current *session
	closed  bool

	authOnce sync.Once
	authDone chan struct{}

	hub hub[RecognitionSnapshot]
}

// NewRecognitionController создаёт контроллер. Пока не вызван RequestAuthorization,
// запись запрещена.
func NewRecognitionController(registry *language.Registry, newRecognizer speech.RecognizerFunc,
	source audio.Source, authorizer permission.Authorizer, opts ...Option) *RecognitionController {
	o := buildOptions("stt", opts)

	return &RecognitionController{
		registry:   registry,
		engines:    speech.NewFactory(nil, newRecognizer),
		source:     source,
		authorizer: authorizer,
		sampleRate: o.sampleRate,
		logger:     o.logger,
		snap:       RecognitionSnapshot{State: StateIdle, Language: registry.First()},
		authDone:   make(chan struct{}),
	}
}

// Snapshot возвращает текущее состояние.
func (c *RecognitionController) Snapshot() RecognitionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe возвращает канал снимков. Первым приходит текущий снимок.
func (c *RecognitionController) Subscribe() (<-chan RecognitionSnapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hub.subscribe(c.snap)
}

// SetLanguage выбирает язык по отображаемому имени.
// Идущая сессия продолжает работать на своём языке.
func (c *RecognitionController) SetLanguage(name string) error {
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

// RequestAuthorization запрашивает доступ к микрофону в отдельной горутине.
// Учитывается только первый вызов.
func (c *RecognitionController) RequestAuthorization(ctx context.Context) {
	c.authOnce.Do(func() {
		go func() {
			status, err := c.authorize(ctx)
			c.applyAuthorization(status, err)
		}()
	})
}

// WaitAuthorization ждёт ответа на RequestAuthorization.
func (c *RecognitionController) WaitAuthorization(ctx context.Context) (permission.Status, error) {
	select {
	case <-c.authDone:
		return c.Snapshot().Authorization, nil
	case <-ctx.Done():
		return permission.Unknown, ctx.Err()
	}
}

func (c *RecognitionController) authorize(ctx context.Context) (status permission.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = permission.Unknown, fmt.Errorf("паника при запросе разрешения: %v", r)
		}
	}()

	if c.authorizer == nil {
		return permission.Unknown, errors.New("проверка разрешения не настроена")
	}
	return c.authorizer.Authorize(ctx)
}

func (c *RecognitionController) applyAuthorization(status permission.Status, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(c.authDone)

	if status == permission.Authorized && err == nil {
		c.logger.Info("доступ к микрофону разрешён")
		c.snap.Authorization = permission.Authorized
		c.publish()
		return
	}

	c.logger.Warn("доступ к микрофону запрещён", "status", status, "err", err)
	c.snap.Authorization = permission.Denied
	if to, ok := next(c.snap.State, triggerDeny); ok {
		c.snap.State = to
	}
	c.snap.Err = ErrNotAuthorized
	c.publish()
}

// Start начинает сессию на языке lang.
// Повторный Start на том же языке во время записи ничего не делает.
func (c *RecognitionController) Start(ctx context.Context, lang language.Language) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err := checkLanguage(c.registry, lang); err != nil {
		return c.fail(err)
	}
	if c.snap.Authorization != permission.Authorized {
		return c.fail(ErrNotAuthorized)
	}
	if c.snap.State == StateActive {
		if c.current != nil && c.current.lang.LocaleID == lang.LocaleID {
			return nil
		}
		return c.fail(fmt.Errorf("%w: %s", ErrAlreadyActive, c.current.lang))
	}
	to, ok := next(c.snap.State, triggerStart)
	if !ok {
		return c.fail(ErrNotAuthorized)
	}

	engine, err := c.engines.Recognizer(lang)
	if err != nil {
		c.logger.Error("движок распознавания недоступен", "language", lang, "err", err)
		return c.fail(err)
	}

	sctx, cancel := context.WithCancel(context.Background())
	chunks, err := c.source.Open(sctx)
	if err != nil {
		cancel()
		c.logger.Error("не удалось открыть аудиопоток", "err", err)
		return c.fail(fmt.Errorf("%w: %v", ErrAudioStart, err))
	}

	feed := make(chan []float32, feedSize)
	results, err := recognize(sctx, engine, feed)
	if err != nil {
		if cerr := c.source.Close(); cerr != nil {
			c.logger.Warn("ошибка закрытия аудиопотока", "err", cerr)
		}
		cancel()
		return c.fail(&speech.EngineUnavailableError{Language: lang, Role: speech.RoleRecognition, Err: err})
	}

	s := &session{
		id:     uuid.NewString(),
		lang:   lang,
		buffer: audio.NewBuffer(c.sampleRate, c.sampleRate*30),
		ctx:    sctx,
		cancel: cancel,
	}
	c.current = s

	go c.tap(s, chunks, feed)
	go c.collect(s, results)

	c.logger.Info("запись начата", "session", s.id, "language", lang, "engine", engine.Name())
	c.snap.ID = s.id
	c.snap.State = to
	c.snap.Language = lang
	c.snap.Text = ""
	c.snap.Captured = 0
	c.snap.Err = nil
	c.publish()
	return nil
}

// StartSelected начинает сессию на выбранном языке.
func (c *RecognitionController) StartSelected(ctx context.Context) error {
	return c.Start(ctx, c.Snapshot().Language)
}

// Stop останавливает запись. Расшифровка сохраняется.
// Вне активной сессии ничего не делает.
func (c *RecognitionController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	to, ok := next(c.snap.State, triggerStop)
	if !ok {
		return
	}

	s := c.current
	c.snap.State = to
	c.snap.Captured = s.buffer.Duration()
	c.closeSource(s)

	c.logger.Info("запись остановлена", "session", s.id, "captured", c.snap.Captured, "samples", s.buffer.Len())
	c.publish()
}

// Close останавливает запись и освобождает движки.
func (c *RecognitionController) Close() error {
	c.Stop()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.current != nil {
		c.current.cancel()
	}
	c.mu.Unlock()

	err := c.engines.Close()
	c.hub.close()
	return err
}

// Recording возвращает записанный звук текущей или последней сессии.
func (c *RecognitionController) Recording() []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	return c.current.buffer.Samples()
}

// tap сохраняет звук в буфер сессии и передаёт его движку.
// Когда звук заканчивается, движок получает закрытый канал и отдаёт итог.
func (c *RecognitionController) tap(s *session, chunks <-chan []float32, feed chan<- []float32) {
	defer c.streamEnded(s)
	defer close(feed)

	for chunk := range chunks {
		s.buffer.Append(chunk)
		select {
		case feed <- chunk:
		case <-s.ctx.Done():
			return
		}
	}
}

// collect передаёт результаты движка контроллеру.
func (c *RecognitionController) collect(s *session, results <-chan speech.Result) {
	defer s.cancel()

	for r := range results {
		c.handleResult(s, r)
	}
	c.logger.Debug("движок завершил сессию", "session", s.id)
}

func (c *RecognitionController) handleResult(s *session, r speech.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != s || c.snap.State != StateActive {
		c.logger.Debug("результат вне активной сессии пропущен", "session", s.id)
		return
	}

	if r.Err != nil {
		c.logger.Warn("ошибка распознавания", "session", s.id, "err", r.Err)
		c.snap.Err = fmt.Errorf("%w: %v", ErrRecognitionStream, r.Err)
		c.publish()
		return
	}

	c.snap.Text = r.Text
	c.snap.Captured = s.buffer.Duration()
	c.snap.Err = nil
	c.publish()
}

func (c *RecognitionController) streamEnded(s *session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != s {
		return
	}
	to, ok := next(c.snap.State, triggerStreamEnd)
	if !ok {
		return
	}

	c.logger.Info("аудиопоток завершился", "session", s.id)
	c.snap.State = to
	c.snap.Captured = s.buffer.Duration()
	c.closeSource(s)
	c.publish()
}

// closeSource закрывает источник один раз за сессию. Вызывается под c.mu.
func (c *RecognitionController) closeSource(s *session) {
	if s.sourceClosed {
		return
	}
	s.sourceClosed = true
	if err := c.source.Close(); err != nil {
		c.logger.Warn("ошибка закрытия аудиопотока", "err", err)
	}
}

// fail публикует ошибку и возвращает её. Вызывается под c.mu.
func (c *RecognitionController) fail(err error) error {
	c.snap.Err = err
	c.publish()
	return err
}

// publish вызывается под c.mu.
func (c *RecognitionController) publish() {
	c.hub.publish(c.snap)
}

func recognize(ctx context.Context, engine speech.Recognizer, feed <-chan []float32) (results <-chan speech.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("паника в движке %s: %v", engine.Name(), r)
		}
	}()

	results, err = engine.Recognize(ctx, feed)
	if err == nil && results == nil {
		err = errors.New("движок не вернул канал результатов")
	}
	return results, err
}
