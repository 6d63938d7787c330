package hotkey

import (
	"testing"
	"time"

	"govorun/internal/config"
)

func TestDebouncer(t *testing.T) {
	var d debouncer
	start := time.Now()

	steps := []struct {
		offset time.Duration
		want   bool
	}{
		{0, true},
		{100 * time.Millisecond, false},
		{299 * time.Millisecond, false},
		{300 * time.Millisecond, true},
		{400 * time.Millisecond, false},
		{time.Second, true},
	}

	for _, s := range steps {
		if got := d.allow(start.Add(s.offset)); got != s.want {
			t.Errorf("allow(+%v) = %v, want %v", s.offset, got, s.want)
		}
	}
}

func TestKeyMapCoversConfig(t *testing.T) {
	for _, k := range config.AvailableKeys() {
		if _, ok := keyMap[k]; !ok {
			t.Errorf("key %q has no mapping", k)
		}
	}
	for _, m := range config.AvailableModifiers() {
		if _, ok := modifierMap[m]; !ok {
			t.Errorf("modifier %q has no mapping", m)
		}
	}
}
