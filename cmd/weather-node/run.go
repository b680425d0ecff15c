// cmd/weather-node/run.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/weather-node/internal/config"
	"github.com/tamzrod/weather-node/internal/diag"
	"github.com/tamzrod/weather-node/internal/metrics"
	"github.com/tamzrod/weather-node/internal/node"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Boots the node and runs acquisition cycles until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return run(path)
		},
	}
	cmd.Flags().StringP("config", "c", "", "YAML file overriding the compiled defaults")
	return cmd
}

func run(path string) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	config.Normalize(cfg)

	log, err := diag.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	entry := log.WithField("node", cfg.Node.ID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build collaborators + node
	// --------------------

	parts, closeAll, err := node.Build(cfg, entry)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeAll(); err != nil {
			entry.WithError(err).Warn("close collaborators")
		}
	}()

	n := node.New(cfg, parts, entry)

	if cfg.Metrics.Listen != "" {
		m := metrics.New(cfg.Node.ID)
		n.Observe(m)
		srv := serveMetrics(cfg.Metrics.Listen, m, entry)
		defer shutdown(srv)
	}

	entry.WithField("config", path).Info("weather node starting")
	err = n.Run(ctx)
	entry.Info("weather node stopped")
	return err
}

// serveMetrics exposes /metrics. Observability only; no commands.
func serveMetrics(addr string, m *metrics.Collector, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics listener failed")
		}
	}()
	log.WithField("listen", addr).Info("metrics listener started")
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
