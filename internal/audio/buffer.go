package audio

import (
	"sync"
	"time"
)

// Buffer накапливает сэмплы одной сессии записи.
// Безопасен для одновременной записи и чтения.
type Buffer struct {
	mu         sync.RWMutex
	samples    []float32
	sampleRate int
}

// NewBuffer создаёт буфер. capacity - ожидаемое число сэмплов.
func NewBuffer(sampleRate, capacity int) *Buffer {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	return &Buffer{
		samples:    make([]float32, 0, capacity),
		sampleRate: sampleRate,
	}
}

// Append добавляет кусок в конец буфера.
func (b *Buffer) Append(chunk []float32) {
	b.mu.Lock()
	b.samples = append(b.samples, chunk...)
	b.mu.Unlock()
}

// Len возвращает количество сэмплов.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Duration возвращает длительность записанного.
func (b *Buffer) Duration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return time.Duration(len(b.samples)) * time.Second / time.Duration(b.sampleRate)
}

// Samples возвращает копию сэмплов.
func (b *Buffer) Samples() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}
