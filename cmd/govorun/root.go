package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"govorun/internal/app"
	"govorun/internal/config"
	"govorun/internal/dialog"
	"govorun/internal/i18n"
)

// cli хранит флаги и общее состояние команд.
type cli struct {
	configPath string
	language   string
	verbose    bool
	dialog     bool
	notify     bool
	hotkey     string

	logger *log.Logger
	cfg    *config.Config
	app    *app.App
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "govorun",
		Short:         "Озвучивание текста и распознавание речи",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "путь к config.toml (по умолчанию рядом с бинарником)")
	flags.StringVarP(&c.language, "language", "l", "", "язык: имя или локаль")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "подробный лог")
	flags.BoolVar(&c.dialog, "dialog", false, "выбирать язык и вводить текст в системном диалоге")
	flags.BoolVar(&c.notify, "notify", true, "системные уведомления")
	flags.StringVar(&c.hotkey, "hotkey", "", "горячая клавиша, например ctrl+shift+space")

	root.AddCommand(
		newSpeakCommand(c),
		newListenCommand(c),
		newLanguagesCommand(c),
		newModelsCommand(c),
		newDevicesCommand(c),
		newConfigCommand(c),
	)

	return root
}

// setup создаёт логгер и приложение по флагам.
func (c *cli) setup(cmd *cobra.Command) error {
	c.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    c.verbose,
		Level:           log.InfoLevel,
	})
	if c.verbose {
		c.logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(c.logger)

	cfg, err := config.New(c.configPath)
	if err != nil {
		return c.fail(err)
	}
	c.logger.Debug("конфигурация", "path", cfg.Path())
	c.cfg = cfg

	// Команды config должны работать и с файлом, который не проходит проверку
	if inConfigTree(cmd) {
		i18n.SetLanguage(i18n.Parse(cfg.UILanguage()))
		return nil
	}

	a, err := app.New(cfg, c.logger)
	if err != nil {
		return c.fail(err)
	}

	if c.language != "" {
		if err := a.SelectLanguage(c.language); err != nil {
			return c.fail(err)
		}
	}
	if cmd.Flags().Changed("notify") {
		a.SetNotifications(c.notify)
	}
	if c.hotkey != "" {
		hk, err := config.ParseHotkey(c.hotkey)
		if err != nil {
			return c.fail(err)
		}
		a.SetHotkey(hk)
	}
	if c.dialog && c.language == "" {
		lang, err := dialog.SelectLanguage(a.Registry(), a.Language())
		if err != nil {
			return c.fail(err)
		}
		if err := a.SelectLanguage(lang.DisplayName); err != nil {
			return c.fail(err)
		}
	}

	c.app = a
	return nil
}

// inConfigTree сообщает, что команда - config или её подкоманда.
func inConfigTree(cmd *cobra.Command) bool {
	for p := cmd; p != nil && p.HasParent(); p = p.Parent() {
		if p.Name() == "config" && p.Parent() == cmd.Root() {
			return true
		}
	}
	return false
}

// fail показывает ошибку в диалоге, если он включён, и возвращает её.
func (c *cli) fail(err error) error {
	if c.dialog && !errors.Is(err, dialog.ErrCanceled) {
		dialog.ShowError(err.Error())
	}
	return err
}
