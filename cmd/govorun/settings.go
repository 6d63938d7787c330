package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"govorun/internal/config"
	"govorun/internal/dialog"
	"govorun/internal/i18n"
	"govorun/internal/language"
)

func newConfigCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Показать и изменить сохранённые настройки",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Показать настройки",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"key", "value"}, configRows(c.cfg)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "language [name]",
			Short: "Язык по умолчанию (с --dialog - выбор из списка)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := c.cfg.Registry()
				if err != nil {
					return c.fail(err)
				}

				var lang language.Language
				switch {
				case len(args) == 1:
					lang, err = reg.Lookup(args[0])
				case c.dialog:
					current, _ := reg.Resolve(c.cfg.Language())
					lang, err = dialog.SelectLanguage(reg, current)
				default:
					err = fmt.Errorf("укажите язык: %s", strings.Join(reg.Names(), ", "))
				}
				if err != nil {
					return c.fail(err)
				}
				return c.saved(cmd, "language", lang.DisplayName, c.cfg.SetLanguage(lang.DisplayName))
			},
		},
		&cobra.Command{
			Use:   "ui-language <code>",
			Short: "Язык интерфейса: ru или en",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				lang, err := parseUILanguage(args[0])
				if err != nil {
					return c.fail(err)
				}
				return c.saved(cmd, "ui_language", i18n.LanguageName(lang), c.cfg.SetUILanguage(string(lang)))
			},
		},
		&cobra.Command{
			Use:   "notifications <on|off>",
			Short: "Включить или выключить уведомления",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := parseSwitch(args[0])
				if err != nil {
					return c.fail(err)
				}
				return c.saved(cmd, "notifications", strconv.FormatBool(enabled), c.cfg.SetNotifications(enabled))
			},
		},
		&cobra.Command{
			Use:   "rate <0..1>",
			Short: "Скорость речи, 0.5 - обычная",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rate, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return c.fail(fmt.Errorf("скорость речи: %w", err))
				}
				return c.saved(cmd, "synthesis.rate", args[0], c.cfg.SetSynthesisRate(rate))
			},
		},
		&cobra.Command{
			Use:   "hotkey [combo]",
			Short: "Горячая клавиша записи (без аргумента - выбор в диалоге)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					hk  config.HotkeyConfig
					err error
				)
				if len(args) == 1 {
					hk, err = config.ParseHotkey(args[0])
				} else {
					hk, err = dialog.SelectHotkey(c.cfg.Hotkey())
				}
				if err != nil {
					return c.fail(err)
				}
				return c.saved(cmd, "hotkey", hk.String(), c.cfg.SetHotkey(hk))
			},
		},
	)

	return cmd
}

// saved печатает подтверждение, если настройка сохранилась.
func (c *cli) saved(cmd *cobra.Command, key, value string, err error) error {
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(i18n.Tf("cli_saved", key, value)))
	return nil
}

func configRows(cfg *config.Config) [][]string {
	syn := cfg.Synthesis()
	rec := cfg.Recognition()

	modelsDir := rec.ModelsDir
	if modelsDir == "" {
		modelsDir = i18n.T("cli_default")
	}
	device := rec.Device
	if device == "" {
		device = i18n.T("cli_default")
	}

	return [][]string{
		{"path", cfg.Path()},
		{"language", cfg.Language()},
		{"ui_language", i18n.LanguageName(i18n.Parse(cfg.UILanguage()))},
		{"notifications", strconv.FormatBool(cfg.NotificationsEnabled())},
		{"hotkey", cfg.Hotkey().String()},
		{"synthesis.engine", syn.Engine},
		{"synthesis.rate", strconv.FormatFloat(syn.Rate, 'f', -1, 64)},
		{"synthesis.queue_size", strconv.Itoa(syn.QueueSize)},
		{"recognition.models_dir", modelsDir},
		{"recognition.sample_rate", strconv.FormatFloat(rec.SampleRate, 'f', -1, 64)},
		{"recognition.device", device},
		{"recognition.authorization", rec.Authorization},
	}
}

func parseUILanguage(s string) (i18n.Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	names := make([]string, 0, 2)
	for _, l := range i18n.AvailableLanguages() {
		if string(l) == code {
			return l, nil
		}
		names = append(names, string(l))
	}
	return "", fmt.Errorf("язык интерфейса %q не поддерживается: %s", s, strings.Join(names, ", "))
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("ожидается on или off: %q", s)
	}
	return v, nil
}
