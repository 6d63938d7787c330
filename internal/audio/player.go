package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// ErrBusy возвращается, если плеер уже воспроизводит звук.
var ErrBusy = errors.New("воспроизведение уже идёт")

// Player воспроизводит PCM через устройство вывода по умолчанию.
type Player struct {
	mu      sync.Mutex
	playing bool
}

// NewPlayer создаёт плеер.
func NewPlayer() *Player {
	return &Player{}
}

// PlayRaw воспроизводит PCM 16-bit little-endian mono.
// Блокируется до конца воспроизведения или отмены ctx.
func (p *Player) PlayRaw(ctx context.Context, pcm []byte, sampleRate float64) error {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return ErrBusy
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	return playFloat32(ctx, PCM16ToFloat32(pcm), sampleRate)
}

func playFloat32(ctx context.Context, samples []float32, sampleRate float64) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("ошибка инициализации PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	buffer := make([]float32, FramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, Channels, sampleRate, len(buffer), buffer)
	if err != nil {
		return fmt.Errorf("ошибка открытия потока вывода: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("ошибка запуска потока вывода: %w", err)
	}
	defer stream.Stop()

	for pos := 0; pos < len(samples); pos += len(buffer) {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(buffer, samples[pos:])
		// Хвост последнего буфера заполняем тишиной
		for i := n; i < len(buffer); i++ {
			buffer[i] = 0
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("ошибка записи в поток вывода: %w", err)
		}
	}

	return nil
}

// PCM16ToFloat32 конвертирует PCM16 little-endian в float32 [-1, 1).
// Нечётный последний байт отбрасывается.
func PCM16ToFloat32(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples
}

// Float32ToPCM16 конвертирует float32 [-1, 1] в PCM16 little-endian.
// Значения за пределами диапазона обрезаются.
func Float32ToPCM16(samples []float32) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(s*32767)))
	}
	return pcm
}
