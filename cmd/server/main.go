package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"scribe/internal/admin"
	"scribe/internal/collector"
	"scribe/internal/platform/config"
	"scribe/internal/platform/httpserver"
	"scribe/internal/platform/logger"
	"scribe/internal/platform/socket"
	"scribe/internal/platform/unixfs"
	"scribe/internal/sink"
	kafkasink "scribe/internal/sink/kafka"
	pgsink "scribe/internal/sink/postgres"
	redissink "scribe/internal/sink/redis"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// The pipeline itself lives in internal/collector.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scribe:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	session := collector.NewSession(cfg.SessionID, cfg.LogDir)
	metrics := collector.NewMetrics()

	mirrors, err := buildSinks(cfg, session, log, metrics)
	if err != nil {
		return err
	}
	defer mirrors.Close()

	opts := []collector.Option{
		collector.WithLogger(log),
		collector.WithMetrics(metrics),
	}
	if mirrors.Len() > 0 {
		opts = append(opts, collector.WithSink(mirrors))
	}
	coll := collector.New(cfg.SocketPath, session, unixfs.New(), socket.NewProvider(), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return coll.Run(ctx)
	})

	if cfg.AdminAddr != "" {
		srv := httpserver.New(cfg.AdminAddr, admin.New(coll, log).Router())
		g.Go(func() error {
			log.Info("admin surface listening", "addr", cfg.AdminAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("admin server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// buildSinks assembles the configured mirror sinks. A configured but
// unreachable sink is a startup failure.
func buildSinks(cfg config.Config, session collector.Session, log *slog.Logger, metrics *collector.Metrics) (*sink.Fanout, error) {
	var sinks []sink.Named

	if cfg.RedisURL != "" {
		s, err := redissink.New(cfg.RedisURL, "scribe:audit:"+session.ID)
		if err != nil {
			return nil, fmt.Errorf("redis sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	if cfg.PostgresDSN != "" {
		s, err := pgsink.New(cfg.PostgresDSN, session.ID)
		if err != nil {
			return nil, fmt.Errorf("postgres sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	if len(cfg.KafkaBrokers) > 0 {
		s, err := kafkasink.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka sink: %w", err)
		}
		sinks = append(sinks, s)
	}
	return sink.NewFanout(log, metrics, sinks...), nil
}
