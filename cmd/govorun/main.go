// Govorun - озвучивание текста и распознавание речи на нескольких языках.
//
// speak произносит текст выбранным голосом, listen записывает микрофон
// и печатает расшифровку. Языки, голоса и модели задаются в config.toml.
package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"govorun/internal/dialog"
	"govorun/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	code := 0
	// Запускаем в главном потоке (требование горячих клавиш на macOS)
	hotkey.RunOnMainThread(func() {
		err := newRootCommand().Execute()
		switch {
		case err == nil:
		case errors.Is(err, dialog.ErrCanceled):
			// Пользователь закрыл диалог
			code = 1
		default:
			log.Error(err)
			code = 1
		}
	})
	os.Exit(code)
}
