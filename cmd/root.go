package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/byxorna/roster/pkg/config"
	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/db/fs"
	"github.com/byxorna/roster/pkg/db/rest"
	"github.com/byxorna/roster/pkg/logger"
	"github.com/byxorna/roster/pkg/model"
	"github.com/byxorna/roster/pkg/runtime"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flags = struct {
		ConfigFile string
		LogLevel   string
		LogFormat  string
	}{}

	root = &cobra.Command{
		Use:           "roster",
		Short:         "Roster is a terminal based user directory",
		Args:          cobra.MaximumNArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logOut, err := openLogFile(cfg)
			if err != nil {
				return err
			}
			defer logOut.Close()

			log, err := newLogger(cfg, logOut)
			if err != nil {
				return err
			}

			backend, err := newBackend(cfg, log)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			m, err := model.New(cmd.Context(), cfg, backend, log)
			if err != nil {
				return err
			}

			log.Info("starting", "source", backend.StoragePath())
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
)

func init() {
	root.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides the configuration file")
	root.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "log format (text, json); overrides the configuration file")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	return applyFlags(cfg)
}

// applyFlags overrides cfg with any logging flags given on the command line.
func applyFlags(cfg *config.Config) (*config.Config, error) {
	if flags.LogLevel == "" && flags.LogFormat == "" {
		return cfg, nil
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.LogFormat = flags.LogFormat
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogFile opens the file the interactive UI logs to, since the terminal
// belongs to the UI.
func openLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.LogFile
	if path == "" {
		p, err := runtime.LogFile()
		if err != nil {
			return nil, fmt.Errorf("unable to locate log file: %w", err)
		}
		path = p
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	return f, nil
}

func newLogger(cfg *config.Config, out io.Writer) (logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc := logger.DefaultConfig()
	lc.Level = level
	lc.Output = out
	lc.JSON = cfg.LogFormat == "json"
	return logger.New(lc), nil
}

// newBackend picks the directory snapshot when one is configured, and the REST
// API otherwise. Callers close the backend when it is an io.Closer.
func newBackend(cfg *config.Config, log logger.Logger) (db.Backend, error) {
	if cfg.DataDir != "" {
		loader, err := fs.New(cfg.DataDir, log.With("component", "fs"))
		if err != nil {
			return nil, err
		}
		return loader, nil
	}

	client, err := rest.New(rest.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Logger:  log.With("component", "rest"),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func closeBackend(backend db.Backend) {
	if c, ok := backend.(io.Closer); ok {
		_ = c.Close()
	}
}

func Execute() {
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
