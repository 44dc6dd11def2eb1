package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jacobtread/quizler/internal/actor"
	"github.com/jacobtread/quizler/internal/config"
	"github.com/jacobtread/quizler/internal/httpapi"
	"github.com/jacobtread/quizler/internal/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const releaseVersion = "0.1.0"

func main() {
	cmd := config.NewCommand(releaseVersion, runServer)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, cfg *config.Config) error {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	engine := actor.NewEngine(log)
	pending := registry.NewPendingGames(log, registry.DefaultPendingGameTTL)
	defer pending.Close()
	games := registry.NewGameRegistry(log)

	server := httpapi.NewServer(log, engine, pending, games)

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler:           server.Router(),
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during HTTP shutdown")
	}
	engine.Shutdown(5 * time.Second)
	return nil
}
