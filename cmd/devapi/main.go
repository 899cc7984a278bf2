package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/simkah-portal/internal/application/auth"
	"github.com/jhoicas/simkah-portal/internal/devapi"
	"github.com/jhoicas/simkah-portal/pkg/config"
	"github.com/jhoicas/simkah-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Str("env", cfg.App.Env).Msg("starting development registration API")

	srv, err := devapi.New(devapi.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.DevAPI.JWTSecret,
			ExpMinutes: cfg.DevAPI.Expiration,
			Issuer:     cfg.DevAPI.Issuer,
		},
		Seed: devapi.DefaultSeed(),
		Log:  log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build devapi")
	}

	go func() {
		if err := srv.App.Listen(cfg.DevAPI.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.App.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("devapi stopped")
}
