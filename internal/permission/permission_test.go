package permission

import (
	"context"
	"testing"
)

func TestFixed_Authorize(t *testing.T) {
	for _, want := range []Status{Unknown, Authorized, Denied} {
		got, err := Fixed(want).Authorize(context.Background())
		if err != nil {
			t.Fatalf("Authorize() error = %v", err)
		}
		if got != want {
			t.Errorf("Authorize() = %v, want %v", got, want)
		}
	}
}

func TestFixed_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Fixed(Authorized).Authorize(ctx)
	if err == nil {
		t.Fatal("Authorize() error = nil, want context error")
	}
	if got != Unknown {
		t.Errorf("Authorize() = %v, want %v", got, Unknown)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeDevice, false},
		{"device", ModeDevice, false},
		{" Always ", ModeAlways, false},
		{"NEVER", ModeNever, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
