package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/heartmarshall/textcheck/internal/app"
	"github.com/heartmarshall/textcheck/internal/config"
)

// cli holds state shared by subcommands of one root command.
type cli struct {
	configPath string
	colorMode  string
	logLevel   string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "textcheck",
		Short:         "Spelling and punctuation checker",
		Long:          "textcheck submits text to the Yandex Speller service, scans it for missing spaces after punctuation, and reports or fixes what it finds.",
		Version:       app.Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("CONFIG_PATH"), "path to config.yaml (default ./config.yaml if present)")
	root.PersistentFlags().StringVar(&c.colorMode, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log level (debug|info|warn|error)")

	root.AddCommand(
		newCheckCmd(c),
		newFixCmd(c),
		newServeCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) loadConfig() error {
	switch c.colorMode {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", c.colorMode)
	}

	cfg, err := config.LoadFrom(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// cliLogger logs human-readable text to stderr; quiet unless --log-level asks.
func (c *cli) cliLogger(cmd *cobra.Command) *slog.Logger {
	level := c.logLevel
	if level == "" {
		level = "warn"
	}
	return app.NewLoggerTo(cmd.ErrOrStderr(), config.LogConfig{Level: level, Format: "text"})
}

// serverLogger follows the log section of the config.
func (c *cli) serverLogger() *slog.Logger {
	logCfg := c.cfg.Log
	if c.logLevel != "" {
		logCfg.Level = c.logLevel
	}
	return app.NewLogger(logCfg)
}

func (c *cli) useColor(cmd *cobra.Command) bool {
	switch c.colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(cmd.OutOrStdout())
	}
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func trimmedName(path string) string {
	if path == "-" || path == "" {
		return "<stdin>"
	}
	return strings.TrimSpace(path)
}
