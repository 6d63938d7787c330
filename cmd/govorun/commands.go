package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"govorun/internal/app"
	"govorun/internal/audio"
	"govorun/internal/dialog"
	"govorun/internal/i18n"
	"govorun/internal/voice"
)

func newSpeakCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "speak [text]",
		Short: "Озвучить текст на выбранном языке",
		Long: "Озвучивает аргументы как одну фразу. Без аргументов читает фразы из stdin,\n" +
			"по одной на строку, а с --dialog спрашивает текст в окне.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			texts, err := c.speakTexts(cmd.InOrStdin(), args)
			if err != nil {
				return c.fail(err)
			}

			lang := c.app.Language()
			for _, t := range texts {
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(i18n.Tf("cli_speaking", lang.DisplayName, t)))
			}
			if err := c.app.Speak(ctx, texts...); err != nil {
				return c.fail(err)
			}
			return nil
		},
	}
}

func (c *cli) speakTexts(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	if c.dialog {
		text, err := dialog.EnterText(c.app.Language(), "")
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	var texts []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, scanner.Err()
}

func newListenCommand(c *cli) *cobra.Command {
	var (
		typing bool
		serve  bool
		save   string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Распознать речь с микрофона",
		Long: "Записывает одну фразу до Enter или Ctrl+C и печатает расшифровку.\n" +
			"С --serve работает в фоне: горячая клавиша включает и выключает запись.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if typing {
				if err := c.app.EnableTyping(); err != nil {
					return c.fail(err)
				}
			}
			c.app.SaveRecordingTo(save)

			progress := progressPrinter(cmd.ErrOrStderr())

			if serve {
				fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(
					i18n.Tf("cli_listening", c.app.Language().DisplayName, c.app.Hotkey())))
				if err := c.app.Serve(ctx, progress); err != nil {
					return c.fail(err)
				}
				return nil
			}

			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(
				i18n.Tf("cli_listening", c.app.Language().DisplayName, "Ctrl+C")))

			text, err := c.app.Listen(ctx, enterPressed(cmd.InOrStdin()), progress)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				if errors.Is(err, voice.ErrNotAuthorized) {
					return c.fail(err)
				}
				return c.fail(fmt.Errorf("распознавание: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&typing, "type", false, "вводить расшифровку в активное окно")
	cmd.Flags().BoolVar(&serve, "serve", false, "переключать запись горячей клавишей")
	cmd.Flags().StringVar(&save, "save", "", "сохранить звук сессии в файл (PCM16 mono)")
	return cmd
}

// enterPressed закрывает канал, когда пользователь нажал Enter.
func enterPressed(in io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		bufio.NewReader(in).ReadString('\n')
		close(ch)
	}()
	return ch
}

// progressPrinter перерисовывает строку с текущей расшифровкой.
func progressPrinter(w io.Writer) func(voice.RecognitionSnapshot) {
	last := ""
	return func(s voice.RecognitionSnapshot) {
		if s.Err != nil && !errors.Is(s.Err, voice.ErrNotAuthorized) {
			fmt.Fprintf(w, "\r\033[K%s\n", errorStyle.Render(s.Err.Error()))
		}
		line := s.Text
		if s.IsRecording() {
			line = recordingStyle.Render("● ") + line
		}
		if line == last {
			return
		}
		last = line
		fmt.Fprintf(w, "\r\033[K%s", line)
	}
}

func newLanguagesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "Показать настроенные языки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := c.app.Language()
			rows := make([][]string, 0)
			for _, l := range c.app.Registry().All() {
				mark := ""
				if l == selected {
					mark = i18n.T("cli_default")
				}
				rows = append(rows, []string{l.DisplayName, l.LocaleID, mark})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"name", "locale", ""}, rows))
			return nil
		},
	}
}

func newModelsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Показать модели и голоса для каждого языка",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, s := range c.app.ModelReport() {
				for _, e := range []struct {
					role   string
					status app.EngineStatus
				}{
					{"stt", s.Recognition},
					{"tts", s.Synthesis},
				} {
					rows = append(rows, []string{
						s.Language.DisplayName,
						e.role,
						string(e.status.Engine),
						e.status.Name,
						installedLabel(e.status.Installed),
						e.status.Path,
					})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"language", "role", "engine", "model", "status", "path"}, rows))
			return nil
		},
	}
}

func newDevicesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "Показать устройства ввода",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := audio.ListInputDevices()
			if err != nil {
				return c.fail(err)
			}
			rows := make([][]string, 0, len(devices))
			for _, d := range devices {
				mark := ""
				if d.IsDefault {
					mark = i18n.T("cli_default")
				}
				rows = append(rows, []string{
					d.Name,
					fmt.Sprint(d.MaxInputChannels),
					fmt.Sprintf("%.0f", d.DefaultSampleRate),
					mark,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"device", "channels", "rate", ""}, rows))
			return nil
		},
	}
}
