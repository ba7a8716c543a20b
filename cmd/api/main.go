package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	_ "flowershop/docs"
	"flowershop/pkg/config"
	"flowershop/pkg/inventory"
	invpg "flowershop/pkg/inventory/postgres"
	"flowershop/pkg/logger"
	"flowershop/pkg/order"
	"flowershop/pkg/order/kafka"
	"flowershop/pkg/order/memory"
	pg "flowershop/pkg/order/postgres"
	"flowershop/pkg/otel"
)

// @title Flowershop API
// @version 1.0
// @description Perishable inventory and order fulfillment
// @host localhost:8080
// @BasePath /
func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, config.ServiceName, otel.GetTraceID)
	defer log.Sync()
	if err := run(log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("FLOWERSHOP_CONFIG"))
	if err != nil {
		return err
	}

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: config.ServiceName, Host: cfg.OtelHost, Probability: cfg.SampleProbability})
	if err != nil {
		return err
	}
	defer shutdown(context.Background())
	tracer := tp.Tracer(config.ServiceName)

	storeOpts := []inventory.Option{inventory.WithLogger(log), inventory.WithTracer(tracer)}
	var (
		repo    order.Repository = memory.New()
		journal *invpg.Journal
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		for _, schema := range []string{pg.Schema, invpg.Schema} {
			if _, err := db.ExecContext(ctx, schema); err != nil {
				return err
			}
		}
		repo = pg.New(db)
		journal = invpg.New(db)
		storeOpts = append(storeOpts, inventory.WithJournal(journal))
	}
	store := inventory.New(storeOpts...)
	if err := cfg.Seed(ctx, store, time.Now); err != nil {
		return err
	}

	srv := &server{
		store:         store,
		repo:          repo,
		log:           log,
		tracer:        tracer,
		threshold:     cfg.LowStockThreshold,
		freshnessDays: cfg.FreshnessDays,
		now:           time.Now,
	}
	if journal != nil {
		srv.history = journal
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		srv.sessions = newRedisSessions(client)
	} else {
		log.Warn(ctx, "REDIS_ADDR not set, sessions kept in memory")
		srv.sessions = newMemorySessions(time.Now)
	}
	if cfg.KafkaBroker != "" {
		pub := kafka.New(kafka.NewWriter(cfg.KafkaBroker, cfg.KafkaTopic), log)
		defer pub.Close()
		srv.notifier = pub
	}

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.routes(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr, "tls", cfg.TLSCert != "")
		if cfg.TLSCert != "" {
			errc <- httpSrv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info(context.Background(), "server closed")
	return nil
}
