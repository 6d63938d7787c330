package audio

import (
	"context"
	"testing"
	"time"

	"govorun/internal/permission"
)

func TestBuffer_AppendAndDuration(t *testing.T) {
	b := NewBuffer(16000, 0)

	b.Append(make([]float32, 8000))
	b.Append(make([]float32, 8000))

	if got := b.Len(); got != 16000 {
		t.Errorf("Len() = %d, want %d", got, 16000)
	}
	if got := b.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want %v", got, time.Second)
	}

	samples := b.Samples()
	samples[0] = 1
	if b.Samples()[0] != 0 {
		t.Error("Samples() must return a copy")
	}
}

func TestBuffer_DefaultSampleRate(t *testing.T) {
	b := NewBuffer(0, 0)
	b.Append(make([]float32, SampleRate/2))

	if got := b.Duration(); got != 500*time.Millisecond {
		t.Errorf("Duration() = %v, want 500ms", got)
	}
}

func TestPCM16_RoundTripValues(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"silence", 0, 0},
		{"clip high", 2.0, 32767.0 / 32768.0},
		{"clip low", -2.0, -32767.0 / 32768.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PCM16ToFloat32(Float32ToPCM16([]float32{tt.in}))
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("got %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestPCM16ToFloat32_OddLength(t *testing.T) {
	if got := len(PCM16ToFloat32([]byte{0, 0, 1})); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}
}

func TestNewAuthorizer_FixedModes(t *testing.T) {
	tests := []struct {
		mode permission.Mode
		want permission.Status
	}{
		{permission.ModeAlways, permission.Authorized},
		{permission.ModeNever, permission.Denied},
	}

	for _, tt := range tests {
		got, err := NewAuthorizer(tt.mode).Authorize(context.Background())
		if err != nil {
			t.Fatalf("Authorize() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("mode %s: Authorize() = %v, want %v", tt.mode, got, tt.want)
		}
	}

	if _, ok := NewAuthorizer(permission.ModeDevice).(DeviceAuthorizer); !ok {
		t.Error("ModeDevice must use DeviceAuthorizer")
	}
}
