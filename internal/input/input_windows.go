//go:build windows

package input

import (
	"fmt"
	"syscall"
	"unicode/utf16"
	"unsafe"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyEventFKeyUp   = 0x0002
	keyEventFUnicode = 0x0004
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type windowsTyper struct{}

func newTyper() (Typer, error) {
	return &windowsTyper{}, nil
}

// unicodeInputs превращает текст в пары нажатие/отпускание для SendInput.
func unicodeInputs(text string) []input {
	units := utf16.Encode([]rune(text))
	inputs := make([]input, 0, len(units)*2)
	for _, u := range units {
		for _, flags := range []uint32{keyEventFUnicode, keyEventFUnicode | keyEventFKeyUp} {
			inputs = append(inputs, input{
				inputType: inputKeyboard,
				ki:        keyboardInput{wScan: u, dwFlags: flags},
			})
		}
	}
	return inputs
}

func (t *windowsTyper) Type(text string) error {
	inputs := unicodeInputs(text)
	if len(inputs) == 0 {
		return nil
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput отправил %d из %d событий: %v", sent, len(inputs), err)
	}
	return nil
}
