// Package audio предоставляет запись с микрофона и воспроизведение звука.
package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации (требование Vosk).
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера.
	FramesPerBuffer = 1024
)

// ErrAlreadyOpen возвращается при повторном Open без Close.
var ErrAlreadyOpen = errors.New("поток уже открыт")

// Source - источник аудио. После Open отдаёт куски сэмплов float32
// в канал до вызова Close. Канал закрывается, когда поток завершён.
type Source interface {
	Open(ctx context.Context) (<-chan []float32, error)
	Close() error
}

// Config настройки захвата.
type Config struct {
	SampleRate      float64
	FramesPerBuffer int
	Device          string // Имя устройства, пустое или "default" - устройство по умолчанию
}

// DefaultConfig возвращает настройки по умолчанию.
func DefaultConfig() Config {
	return Config{
		SampleRate:      SampleRate,
		FramesPerBuffer: FramesPerBuffer,
	}
}

// Microphone записывает аудио с микрофона через PortAudio.
type Microphone struct {
	mu      sync.Mutex
	cfg     Config
	stream  *portaudio.Stream
	buffer  []float32
	running bool
	done    chan struct{}
}

// NewMicrophone инициализирует PortAudio и создаёт источник.
func NewMicrophone(cfg Config) (*Microphone, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = SampleRate
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = FramesPerBuffer
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации PortAudio: %w", err)
	}

	return &Microphone{
		cfg:    cfg,
		buffer: make([]float32, cfg.FramesPerBuffer),
	}, nil
}

// Open открывает поток и начинает запись.
func (m *Microphone) Open(ctx context.Context) (<-chan []float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil, ErrAlreadyOpen
	}

	stream, err := m.openStream()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия аудиопотока: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("ошибка запуска аудиопотока: %w", err)
	}

	m.stream = stream
	m.running = true
	m.done = make(chan struct{})

	out := make(chan []float32, 64)
	go m.recordLoop(ctx, stream, out, m.done)

	return out, nil
}

func (m *Microphone) openStream() (*portaudio.Stream, error) {
	if m.cfg.Device == "" || m.cfg.Device == "default" {
		return portaudio.OpenDefaultStream(Channels, 0, m.cfg.SampleRate, m.cfg.FramesPerBuffer, m.buffer)
	}

	device, err := findInputDevice(m.cfg.Device)
	if err != nil {
		return nil, err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      m.cfg.SampleRate,
		FramesPerBuffer: m.cfg.FramesPerBuffer,
	}
	return portaudio.OpenStream(params, m.buffer)
}

func (m *Microphone) recordLoop(ctx context.Context, stream *portaudio.Stream, out chan<- []float32, done chan struct{}) {
	defer func() {
		close(out)
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			// Поток завершается сам: освобождаем его, если он ещё текущий
			go m.close(stream)
			return
		default:
		}

		if !m.isRunning() {
			return
		}

		// Проверяем доступность данных, чтобы не блокироваться в Read
		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := stream.Read(); err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		m.mu.Lock()
		if !m.running {
			m.mu.Unlock()
			return
		}
		chunk := make([]float32, len(m.buffer))
		copy(chunk, m.buffer)
		m.mu.Unlock()

		select {
		case out <- chunk:
		case <-ctx.Done():
		}
	}
}

func (m *Microphone) isRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Close останавливает запись. Повторный вызов ничего не делает.
func (m *Microphone) Close() error {
	return m.close(nil)
}

// close закрывает текущий поток. Если only задан, закрывает, только когда он текущий.
func (m *Microphone) close(only *portaudio.Stream) error {
	m.mu.Lock()
	if !m.running || (only != nil && m.stream != only) {
		m.mu.Unlock()
		return nil
	}

	m.running = false
	stream := m.stream
	m.stream = nil
	done := m.done
	m.mu.Unlock()

	// Ждём завершения recordLoop (он проверяет running каждые 10ms)
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
	}

	if stream == nil {
		return nil
	}
	stream.Stop()
	if err := stream.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия аудиопотока: %w", err)
	}
	return nil
}

// Terminate закрывает поток и освобождает PortAudio.
func (m *Microphone) Terminate() error {
	m.Close()
	return portaudio.Terminate()
}

// DeviceInfo информация об устройстве ввода.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices возвращает список устройств ввода.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var result []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels == 0 {
			continue
		}
		result = append(result, DeviceInfo{
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			IsDefault:         dev.Name == defaultName,
		})
	}
	return result, nil
}

func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("устройство не найдено: %s", name)
}
