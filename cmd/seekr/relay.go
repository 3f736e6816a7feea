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

	"github.com/poiesic/seekr/relay"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func relayCmd() *cli.Command {
	return &cli.Command{
		Name:   "relay",
		Usage:  "Serve the gateway relay",
		Action: relayCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on",
			},
			&cli.StringFlag{
				Name:  "mount",
				Usage: "Local path prefix stripped before forwarding",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Backend origin requests are forwarded to",
			},
			&cli.StringFlag{
				Name:  "proxy",
				Usage: "Proxy hop for backend calls (empty string for none)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for one backend call",
			},
		},
	}
}

func relayCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("listen") {
		cfg.Relay.Listen = c.String("listen")
	}
	if c.IsSet("mount") {
		cfg.Relay.Mount = c.String("mount")
	}
	if c.IsSet("backend") {
		cfg.Relay.Backend = c.String("backend")
	}
	if c.IsSet("proxy") {
		cfg.Relay.Proxy = c.String("proxy")
	}
	if c.IsSet("timeout") {
		cfg.Relay.Timeout = c.Duration("timeout")
	}

	relayConfig, err := cfg.RelayConfig()
	if err != nil {
		return fmt.Errorf("invalid relay configuration: %w", err)
	}

	rl, err := relay.NewRelay(relayConfig, relay.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to create relay: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Relay.Listen,
		Handler:           relay.NewRouter(rl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("relay listening", "addr", server.Addr, "mount", relayConfig.MountPath, "backend", relayConfig.BackendURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("relay server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
