// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"server-warden/internal/auth"
	"server-warden/internal/command"
	"server-warden/internal/command/info"
	"server-warden/internal/command/moderation"
	"server-warden/internal/config"
	"server-warden/internal/discord"
	"server-warden/internal/logging"
	"server-warden/internal/middleware"
	v "server-warden/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logging.Setup("info", "")
		log.Fatal().Err(err).Msg("Configuration error")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	log.Info().Str("version", v.BuildDate).Msgf("Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gate := auth.NewGate(cfg.ModerationRoles)

	for _, c := range moderation.Commands() {
		command.RegisterCommand(
			c,
			middleware.WithCooldown(),
			middleware.WithAuthorization(gate),
			middleware.WithCommandLogger(),
		)
	}
	for _, c := range info.Commands() {
		command.RegisterCommand(
			c,
			middleware.WithCommandLogger(),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Msgf("Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
	}

	log.Info().Msg("Shutdown complete")
}
