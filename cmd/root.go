package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"github.com/ByLCY/pagecast/config"
	"github.com/ByLCY/pagecast/version"
)

var (
	configPath  string
	profileName string
	logLevel    string
	logFile     string
	debug       bool

	cfg      *config.Config
	logger   = slog.New(slog.DiscardHandler)
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:          "pagecast",
	Short:        "pagecast renders text messages as paged PNG images",
	Long:         `pagecast wraps and paginates text with a chosen font and renders every page as a PNG image.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := logLevel
		if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
			level = cfg.Log.Level
		}
		if debug {
			level = "debug"
		}
		file := logFile
		if file == "" {
			file = cfg.Resolve(cfg.Log.File)
		}
		logger, closeLog, err = newLogger(cmd.ErrOrStderr(), level, file)
		if err != nil {
			return err
		}
		logger.Debug("loaded config", slog.String("path", cfg.Path()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_ = closeLog()
		if debug {
			b, merr := json.MarshalIndent(errors.StackTraces(err), "", "  ")
			if merr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "%v\n", merr)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "%s\n", b)
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/pagecast/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "", "", "profile name")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "", false, "debug logging and stack traces on error")
}
