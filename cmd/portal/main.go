package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/simkah-portal/internal/infrastructure/metrics"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/storage"
	"github.com/jhoicas/simkah-portal/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/simkah-portal/internal/interfaces/http"
	"github.com/jhoicas/simkah-portal/pkg/config"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("starting portal")

	m := metrics.New()
	api := upstream.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), log, m)

	app, err := httpRouter.NewApp(httpRouter.AppDeps{
		Name:   cfg.App.Name,
		API:    api,
		Routes: cfg.Routes,
		Cookies: storage.CookieOptions{
			Prefix: cfg.Session.CookiePrefix,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.MaxAge(),
		},
		Metrics: m,
		Log:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build portal")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("portal stopped")
}
