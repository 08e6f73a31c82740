package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/minutes/internal/config"
	"github.com/csheth/minutes/internal/gateway"
	"github.com/csheth/minutes/internal/ingest"
	"github.com/csheth/minutes/internal/tui"
)

type app struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	logFile    string

	noAltScreen bool
	transcript  string

	cfg     config.Config
	client  *gateway.Client
	logSink io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "minutes",
		Short:        "Turn meeting transcripts into tracked action items",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive workspace
  minutes

  # Prefill the composer from a file or URL
  minutes --transcript standup.pdf

  # Scriptable commands
  minutes extract --file notes.txt
  minutes transcripts list
  minutes insights --json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.close()
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSONC config file (default: $XDG_CONFIG_HOME/minutes/config.json)")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (default "+config.DefaultAPIURL+")")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (default "+config.DefaultTimeout.String()+")")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append debug logs to this file")

	cmd.Flags().BoolVar(&a.noAltScreen, "no-alt-screen", false, "Disable the alternate screen buffer")
	cmd.Flags().StringVar(&a.transcript, "transcript", "", "Prefill the composer from a .txt, .md or .pdf file or URL")

	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newTranscriptsCmd(a))
	cmd.AddCommand(newInsightsCmd(a))

	return cmd
}

func (a *app) setup() error {
	cfg, _, err := config.Load(config.Options{
		ConfigPath: a.configPath,
		Overrides: config.Overrides{
			APIURL:  a.apiURL,
			Timeout: a.timeout,
			LogFile: a.logFile,
		},
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
	} else {
		f, err := tea.LogToFile(cfg.LogFile, "minutes")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logSink = f
	}
	log.Printf("[config] api=%s timeout=%s", cfg.APIURL, cfg.Timeout)

	a.client = gateway.New(gateway.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout})
	return nil
}

func (a *app) close() error {
	if a.logSink == nil {
		return nil
	}
	err := a.logSink.Close()
	a.logSink = nil
	return err
}

func (a *app) runTUI(cmd *cobra.Command) error {
	var text string
	if a.transcript != "" {
		var err error
		text, err = ingest.Read(cmd.Context(), a.transcript)
		if err != nil {
			return fmt.Errorf("load transcript: %w", err)
		}
	}

	opts := []tea.ProgramOption{tea.WithMouseCellMotion(), tea.WithContext(cmd.Context())}
	if !a.noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Backend:    a.client,
			Timeout:    a.cfg.Timeout,
			Transcript: text,
		}),
		opts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// resolveText picks the transcript for a scripted command: a file or URL
// when given, otherwise the joined positional args, otherwise stdin.
func resolveText(cmd *cobra.Command, file string, args []string) (string, error) {
	if file != "" {
		return ingest.Read(cmd.Context(), file)
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no transcript: pass TEXT, --file, or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
