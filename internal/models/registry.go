// Package models описывает модели распознавания и голоса синтеза по локалям.
package models

// Engine тип движка.
type Engine string

const (
	EngineVosk  Engine = "vosk"
	EnginePiper Engine = "piper"
	EngineSay   Engine = "say"
)

// ModelInfo информация о модели или голосе.
type ModelInfo struct {
	ID       string // Уникальный идентификатор: "vosk-en-us-small"
	Engine   Engine // Движок: vosk, piper или say
	Locale   string // Локаль: "en-US"
	Name     string // Отображаемое имя
	Filename string // Имя файла/директории в каталоге моделей, для say - имя голоса
	URL      string // Откуда скачать вручную
	Size     int64  // Размер в байтах
	IsDir    bool   // Модель - директория (Vosk)
}

// Registry все известные модели.
var Registry = []ModelInfo{
	// Vosk - маленькие модели для потокового распознавания
	{
		ID:       "vosk-en-us-small",
		Engine:   EngineVosk,
		Locale:   "en-US",
		Name:     "English Small",
		Filename: "vosk-model-small-en-us-0.15",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-en-us-0.15.zip",
		Size:     40 * 1024 * 1024,
		IsDir:    true,
	},
	{
		ID:       "vosk-ja-small",
		Engine:   EngineVosk,
		Locale:   "ja-JP",
		Name:     "Japanese Small",
		Filename: "vosk-model-small-ja-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-ja-0.22.zip",
		Size:     48 * 1024 * 1024,
		IsDir:    true,
	},
	{
		ID:       "vosk-ko-small",
		Engine:   EngineVosk,
		Locale:   "ko-KR",
		Name:     "Korean Small",
		Filename: "vosk-model-small-ko-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-ko-0.22.zip",
		Size:     82 * 1024 * 1024,
		IsDir:    true,
	},
	{
		ID:       "vosk-ru-small",
		Engine:   EngineVosk,
		Locale:   "ru-RU",
		Name:     "Russian Small",
		Filename: "vosk-model-small-ru-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-ru-0.22.zip",
		Size:     45 * 1024 * 1024,
		IsDir:    true,
	},
	// Piper - голоса ONNX, рядом должен лежать .onnx.json
	{
		ID:       "piper-en-us-lessac",
		Engine:   EnginePiper,
		Locale:   "en-US",
		Name:     "Lessac (medium)",
		Filename: "en_US-lessac-medium.onnx",
		URL:      "https://huggingface.co/rhasspy/piper-voices/resolve/main/en/en_US/lessac/medium/en_US-lessac-medium.onnx",
		Size:     63 * 1024 * 1024,
	},
	{
		ID:       "piper-ru-irina",
		Engine:   EnginePiper,
		Locale:   "ru-RU",
		Name:     "Irina (medium)",
		Filename: "ru_RU-irina-medium.onnx",
		URL:      "https://huggingface.co/rhasspy/piper-voices/resolve/main/ru/ru_RU/irina/medium/ru_RU-irina-medium.onnx",
		Size:     63 * 1024 * 1024,
	},
	// macOS say - системные голоса, скачивать нечего
	{ID: "say-en-us", Engine: EngineSay, Locale: "en-US", Name: "Samantha", Filename: "Samantha"},
	{ID: "say-ja-jp", Engine: EngineSay, Locale: "ja-JP", Name: "Kyoko", Filename: "Kyoko"},
	{ID: "say-ko-kr", Engine: EngineSay, Locale: "ko-KR", Name: "Yuna", Filename: "Yuna"},
	{ID: "say-ru-ru", Engine: EngineSay, Locale: "ru-RU", Name: "Milena", Filename: "Milena"},
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// ForLocale возвращает первую модель движка для локали.
func ForLocale(engine Engine, locale string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.Engine == engine && m.Locale == locale {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// EngineName возвращает отображаемое имя движка.
func EngineName(e Engine) string {
	switch e {
	case EngineVosk:
		return "Vosk"
	case EnginePiper:
		return "Piper"
	case EngineSay:
		return "macOS say"
	default:
		return string(e)
	}
}
