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

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yashrajz/EventHorizon-sub001/config"
	"github.com/yashrajz/EventHorizon-sub001/handlers"
	"github.com/yashrajz/EventHorizon-sub001/monitoring"
	"github.com/yashrajz/EventHorizon-sub001/services"
	"github.com/yashrajz/EventHorizon-sub001/store"
)

func Start() error {
	cfg := config.LoadConfig()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	monitor := monitoring.NewMonitor()
	repo := services.NewRepository(st, monitor)

	if feed := buildFeed(cfg, repo); feed != nil {
		defer feed.Close()
	}

	e := echo.New()
	e.Use(middleware.Recover())

	eventHandler := handlers.NewEventHandler(repo)
	adminHandler := handlers.NewAdminHandler(repo)
	handlers.Register(e, eventHandler, adminHandler)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.RedisURL != "" {
		slog.Info("using redis store", "url", cfg.RedisURL)
		return store.NewRedisStore(cfg.RedisURL)
	}
	slog.Info("using badger store", "dir", cfg.DataDir)
	return store.NewBadgerStore(cfg.DataDir)
}

func buildFeed(cfg *config.Config, repo *services.Repository) *services.Feed {
	var sinks []services.Sink

	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		sinks = append(sinks, services.NewPubNubSink(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubChannel))
		slog.Info("change feed: pubnub sink enabled", "channel", cfg.PubNubChannel)
	}
	if cfg.KafkaBroker != "" {
		sinks = append(sinks, services.NewKafkaSink(cfg.KafkaBroker, cfg.KafkaTopic))
		slog.Info("change feed: kafka sink enabled", "topic", cfg.KafkaTopic)
	}

	if len(sinks) == 0 {
		return nil
	}
	return services.NewFeed(repo, sinks...)
}
