package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/urakawa/internal/cli"
	"github.com/aretw0/urakawa/pkg/observability"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-validate a XUK document whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		addr, _ := cmd.Flags().GetString("metrics-addr")
		if addr == "" {
			addr = cfg.MetricsAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		collector := observability.NewCollector(reg)
		if addr != "" {
			srv := serveMetrics(addr, reg)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		check := func() {
			pr, err := readProject(path, true)
			collector.ObserveDecode(err)
			if err != nil {
				logger.Error("document is invalid", "path", path, "err", err)
				fmt.Fprintf(cmd.OutOrStdout(), ">>> %s is invalid: %v\n", path, err)
				return
			}
			st := cli.Collect(pr)
			fmt.Fprintf(cmd.OutOrStdout(), ">>> %s is valid: %d node(s), %d channel(s).\n", path, st.Nodes, st.Channels)
		}

		check()
		fmt.Fprintln(cmd.OutOrStdout(), ">>> Waiting for changes...")
		return cli.Watch(ctx, path, cli.DefaultDebounce, logger, check)
	},
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}

func init() {
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (for example :2112)")
	rootCmd.AddCommand(watchCmd)
}
