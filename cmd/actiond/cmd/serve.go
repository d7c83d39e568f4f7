package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bjaus/action"
	"github.com/bjaus/action/breaker"
	"github.com/bjaus/action/commands"
	"github.com/bjaus/action/internal/config"
	"github.com/bjaus/action/internal/loopback"
	"github.com/bjaus/action/logging"
	"github.com/bjaus/action/metrics"
	"github.com/bjaus/action/tracing"
	"github.com/bjaus/action/transport/natsrpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve commands on the configured NATS subject",
	Long: `Starts the dispatcher. Every command is backed by a loopback invoker
that echoes its arguments, optionally behind a circuit breaker.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Service("actiond"))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("failed to flush traces", logging.Error(err))
		}
	}()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	registry, err := newRegistry(cfg, logger, promReg)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Addr, promReg, logger)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	conn, err := natsrpc.Connect(cfg.NATS.URL, "actiond", cfg.NATS.Timeout, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.FlushTimeout(cfg.NATS.Timeout); err != nil {
			logger.Warn("failed to flush replies", logging.Error(err))
		}
		conn.Close()
	}()

	server := natsrpc.NewServer(natsrpc.Conn(conn), registry,
		natsrpc.WithSubject(cfg.NATS.Subject),
		natsrpc.WithQueue(cfg.NATS.Queue),
		natsrpc.WithLogger(logger),
	)
	return server.Serve(ctx)
}

// newRegistry builds the sealed registry actiond serves.
func newRegistry(c *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*action.Registry, error) {
	r := action.New(
		tracing.Hooks(),
		logging.Hooks(logger),
		metrics.New(reg).Hooks(),
	)

	if err := commands.Register(r); err != nil {
		return nil, err
	}

	var bc *breaker.Config
	if c.Breaker.Enabled {
		bc = &breaker.Config{
			MaxFailures: c.Breaker.MaxFailures,
			OpenTimeout: c.Breaker.OpenTimeout,
		}
	}
	if err := loopback.Register(r, bc); err != nil {
		return nil, err
	}

	r.Seal()
	return r, nil
}

func serveMetrics(addr string, g prometheus.Gatherer, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", logging.Error(err))
		}
	}()
	return srv
}
