//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
)

// linuxTyper вызывает wtype под Wayland и xdotool под X11.
type linuxTyper struct {
	tool string
	args func(text string) []string
}

func newTyper() (Typer, error) {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return lookup("wtype", func(text string) []string {
			return []string{"--", text}
		})
	}
	return lookup("xdotool", func(text string) []string {
		return []string{"type", "--clearmodifiers", "--", text}
	})
}

func lookup(tool string, args func(string) []string) (Typer, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTool, tool)
	}
	return &linuxTyper{tool: path, args: args}, nil
}

func (t *linuxTyper) Type(text string) error {
	out, err := exec.Command(t.tool, t.args(text)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", t.tool, err, out)
	}
	return nil
}
