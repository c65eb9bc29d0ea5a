package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/internal/cli"
	"github.com/aretw0/urakawa/internal/config"
	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/workspace"
	"github.com/aretw0/urakawa/pkg/xuk"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "urakawa",
	Short:         "Inspect, validate and store XUK documents",
	Long:          `urakawa works with DAISY/Urakawa XUK documents: it validates and renders them and keeps them in a document store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded
		logger = cfg.Logger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// xukOptions returns the configured codec options, with strict mode forced on
// when strict is set.
func xukOptions(strict bool) ([]xuk.Option, error) {
	opts, err := cfg.XukOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, xuk.WithLogger(logger))
	if strict {
		opts = append(opts, xuk.WithStrict(true))
	}
	return opts, nil
}

func readProject(path string, strict bool) (*core.Project, error) {
	opts, err := xukOptions(strict)
	if err != nil {
		return nil, err
	}
	return urakawa.ReadFile(path, opts...)
}

// openWorkspace opens the configured store. The caller must call the returned
// close function.
func openWorkspace() (*workspace.Manager, func(), error) {
	backend, err := cli.OpenBackend(cfg.Store, logger)
	if err != nil {
		return nil, nil, err
	}
	opts, err := xukOptions(false)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	repo := urakawa.NewRepository(backend.Store,
		urakawa.WithLogger(logger),
		urakawa.WithXukOptions(opts...),
	)
	wsOpts := []workspace.Option{workspace.WithLogger(logger)}
	if backend.Locker != nil {
		wsOpts = append(wsOpts, workspace.WithLocker(backend.Locker))
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close store", "err", err)
		}
	}
	return workspace.NewManager(repo, wsOpts...), closeFn, nil
}
