// Package voice содержит контроллеры синтеза и распознавания речи.
//
// Контроллер владеет своим кэшем движков, сериализует изменения состояния
// под мьютексом и публикует неизменяемые снимки для слоя представления.
package voice

import "errors"

var (
	// ErrNotAuthorized - запись запрещена или разрешение ещё не получено.
	ErrNotAuthorized = errors.New("нет разрешения на запись")
	// ErrAlreadyActive - сессия уже идёт на другом языке.
	ErrAlreadyActive = errors.New("сессия уже активна")
	// ErrAudioStart - не удалось открыть аудиопоток.
	ErrAudioStart = errors.New("ошибка запуска аудио")
	// ErrRecognitionStream - ошибка движка во время сессии, сессия продолжается.
	ErrRecognitionStream = errors.New("ошибка потока распознавания")
	// ErrSynthesisBusy - очередь синтеза переполнена.
	ErrSynthesisBusy = errors.New("очередь синтеза переполнена")
	// ErrClosed - контроллер закрыт.
	ErrClosed = errors.New("контроллер закрыт")
)
