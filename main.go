// server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/studynotes-server/auth"
	"github.com/ViniZap4/studynotes-server/config"
	"github.com/ViniZap4/studynotes-server/filesystem"
	httphandlers "github.com/ViniZap4/studynotes-server/http"
	"github.com/ViniZap4/studynotes-server/platform"
	"github.com/ViniZap4/studynotes-server/store"
	"github.com/ViniZap4/studynotes-server/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("configuration")
	}
	log := config.NewLogger(cfg, os.Stderr)

	seed, err := filesystem.LoadSeed(cfg.SeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("seed", cfg.SeedPath).Msg("failed to load seed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(log.With().Str("component", "hub").Logger())
	go hub.Run(ctx)

	notes := store.New(seed,
		store.WithLogger(log.With().Str("component", "store").Logger()),
		store.WithEvents(hub),
		store.WithShare(hub, platform.SystemClipboard{}, platform.LogNotifier{Log: log}, cfg.PublicURL),
	)

	authMw, err := auth.Middleware(cfg.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare auth")
	}

	server := httphandlers.NewServer(notes, hub, log.With().Str("component", "http").Logger())
	app := server.NewApp(authMw)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Int("subjects", len(seed.Subjects)).
		Int("notes", len(seed.Notes)).
		Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
