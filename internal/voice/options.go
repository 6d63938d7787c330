package voice

import (
	"github.com/charmbracelet/log"

	"govorun/internal/audio"
	"govorun/internal/speech"
)

// DefaultQueueSize - ёмкость очереди синтеза по умолчанию.
const DefaultQueueSize = 16

type options struct {
	logger     *log.Logger
	rate       float64
	queueSize  int
	sampleRate int
}

// Option настраивает контроллер.
type Option func(*options)

// WithLogger задаёт логгер контроллера.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRate задаёт скорость речи в диапазоне (0, 1].
func WithRate(rate float64) Option {
	return func(o *options) {
		if rate > 0 && rate <= 1 {
			o.rate = rate
		}
	}
}

// WithQueueSize задаёт ёмкость очереди синтеза.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithSampleRate задаёт частоту записи, по ней считается длительность сессии.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		if rate > 0 {
			o.sampleRate = rate
		}
	}
}

func buildOptions(prefix string, opts []Option) options {
	o := options{
		logger:     log.Default().WithPrefix(prefix),
		rate:       speech.DefaultRate,
		queueSize:  DefaultQueueSize,
		sampleRate: audio.SampleRate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
