// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/pangkah/service/internal/auth"
	"github.com/jason-s-yu/pangkah/service/internal/cache"
	"github.com/jason-s-yu/pangkah/service/internal/config"
	"github.com/jason-s-yu/pangkah/service/internal/database"
	"github.com/jason-s-yu/pangkah/service/internal/game"
	"github.com/jason-s-yu/pangkah/service/internal/handlers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func configureLogging(cfg config.Config) {
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.WithField("level", cfg.LogLevel).Warn("unknown log level; using info")
	}
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logrus.NewEntry(logrus.StandardLogger())
	checks := make(map[string]handlers.Pinger)
	opts := []game.Option{
		game.WithLogger(log),
		game.WithTiming(game.Timing{
			Turn:         cfg.TurnDuration,
			Tick:         time.Second,
			BotDelay:     cfg.BotDelay,
			ResolveDelay: cfg.ResolveDelay,
			SwapBotDelay: cfg.SwapBotDelay,
			RematchDelay: cfg.RematchDelay,
		}),
	}

	var totals handlers.TotalsReader
	if cfg.DatabaseURL != "" {
		store, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, game.WithRecorder(store))
		totals = store
		checks["postgres"] = store
		log.Info("recording game results to Postgres")
	} else {
		log.Warn("DATABASE_URL not set; game results will not be recorded")
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.Connect(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return err
		}
		defer rc.Close()
		opts = append(opts, game.WithActionPublisher(rc), game.WithLobbyPublisher(rc))
		checks["redis"] = rc
		log.Info("publishing actions and lobby to Redis")
	} else {
		log.Warn("REDIS_ADDR not set; action log disabled")
	}

	hub := handlers.NewHub(log)
	mgr := game.NewManager(game.NewRepository(), hub, opts...)
	srv := handlers.NewServer(handlers.Config{
		Manager: mgr,
		Hub:     hub,
		Issuer:  auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Totals:  totals,
		Checks:  checks,
		Origins: cfg.AllowedOrigins,
		Log:     log,
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", httpSrv.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		mgr.Shutdown()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(sctx)
	})
	return g.Wait()
}
