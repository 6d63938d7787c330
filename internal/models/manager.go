package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// Manager находит модели на диске.
type Manager struct {
	modelsDir string
}

// NewManager создаёт менеджер моделей.
// Пустой dir означает директорию models/ рядом с бинарником.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		execPath, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
		}

		execPath, err = filepath.EvalSymlinks(execPath)
		if err != nil {
			return nil, fmt.Errorf("не удалось разрешить симлинки: %w", err)
		}

		dir = filepath.Join(filepath.Dir(execPath), "models")
	}

	return &Manager{modelsDir: dir}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// GetModelPath возвращает полный путь к модели.
func (m *Manager) GetModelPath(info ModelInfo) string {
	switch info.Engine {
	case EngineVosk:
		return filepath.Join(m.modelsDir, "vosk", info.Filename)
	case EnginePiper:
		return filepath.Join(m.modelsDir, "piper", info.Filename)
	case EngineSay:
		// Системный голос, пути нет
		return info.Filename
	default:
		return filepath.Join(m.modelsDir, info.Filename)
	}
}

// IsInstalled проверяет, что модель лежит на диске.
func (m *Manager) IsInstalled(info ModelInfo) bool {
	if info.Engine == EngineSay {
		return true
	}

	stat, err := os.Stat(m.GetModelPath(info))
	if err != nil {
		return false
	}

	// Для Vosk проверяем что это директория
	if info.IsDir {
		return stat.IsDir()
	}

	// Для Piper файл не пустой и рядом есть конфиг
	if stat.Size() == 0 {
		return false
	}
	_, err = os.Stat(m.GetModelPath(info) + ".json")
	return err == nil
}

// Find возвращает путь к установленной модели движка для локали.
func (m *Manager) Find(engine Engine, locale string) (string, error) {
	info, ok := ForLocale(engine, locale)
	if !ok {
		return "", fmt.Errorf("нет модели %s для локали %s", EngineName(engine), locale)
	}
	if !m.IsInstalled(info) {
		return "", fmt.Errorf("модель не установлена: %s (%s)", info.Name, m.GetModelPath(info))
	}
	return m.GetModelPath(info), nil
}

// ListInstalled возвращает список установленных моделей.
func (m *Manager) ListInstalled() []ModelInfo {
	var installed []ModelInfo
	for _, model := range Registry {
		if m.IsInstalled(model) {
			installed = append(installed, model)
		}
	}
	return installed
}
