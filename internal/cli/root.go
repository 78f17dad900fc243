// Package cli implements the beheer command line: the HTTP server, the
// legacy seeding run and report exports.
//
// # Usage
//
//	os.Exit(cli.Execute(ctx, version, os.Args[1:]))
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vzwadmin/beheer/internal/config"
)

// app carries what every subcommand needs once the root has loaded it.
type app struct {
	version string
	envFile string
	cfg     *config.Config
	logger  zerolog.Logger
	stderr  io.Writer
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version, stderr: os.Stderr}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "beheer",
		Short:         "Deelnemersbeheer: administration API and legacy data seeding",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			if err := config.LoadDotEnv(a.envFile); err != nil {
				return withCode(exitConfig, err)
			}
			a.cfg = config.NewConfig()
			if logLevel != "" {
				a.cfg.Global.LogLevel = logLevel
			}
			if err := a.cfg.Validate(); err != nil {
				return withCode(exitConfig, err)
			}
			logger, err := newLogger(a.stderr, a.cfg.Global.LogLevel)
			if err != nil {
				return withCode(exitConfig, err)
			}
			a.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "Optional .env file loaded before the environment is read")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newReportCmd(a))
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	cmd := NewRootCmd(version)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err.Error())
		return ExitCode(err)
	}
	return exitOK
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(exitUsage, validate(cmd, args))
	}
}
