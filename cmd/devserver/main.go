package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bmispelon/noyel/internal/app"
	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/logging"
	"github.com/bmispelon/noyel/internal/storage"
)

func main() {
	env := flag.String("env", "development", "config environment (config/<env>.yaml)")
	fixtures := flag.String("fixtures", "", "override devserver.fixtures_file")
	flag.Parse()

	cfg, err := config.LoadConfig(*env)
	if err != nil {
		fallback := logging.New(config.Default().Logging, os.Stderr)
		fallback.Fatal().Err(err).Msg("loading config")
	}
	logger := logging.New(cfg.Logging, os.Stderr)

	if *fixtures != "" {
		cfg.DevServer.FixturesFile = *fixtures
	}

	fixtureStore, err := storage.NewFixtures(cfg.DevServer.FixturesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening fixtures")
	}
	defer fixtureStore.Close()

	server, err := app.NewServer(*cfg, fixtureStore, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("building server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SIGHUP re-reads the fixtures file
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := server.Reload(); err != nil {
					logger.Error().Err(err).Msg("fixtures reload failed")
				}
			}
		}
	}()

	if err := server.Start(ctx, cfg.DevServer.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
