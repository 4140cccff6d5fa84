package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/desertthunder/singme/internal/repositories"
	"github.com/desertthunder/singme/internal/server"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve opens the store, wires the services and runs the HTTP server until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	if err := applyServeFlags(&cfg.Server, cmd.String("mode"), cmd.String("addr")); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Error("failed to close store", "error", err)
		}
	}()

	random := services.NewTimeSeededSource()
	recs := services.NewRecommendationService(store, random, shared.WithLogger(r.logger, "component", "recommendations"))
	scenarios := services.NewScenarioService(store, random, shared.WithLogger(r.logger, "component", "scenarios"))

	srv := server.New(cfg.Server, recs, scenarios, shared.WithLogger(r.logger, "component", "http"))
	return srv.ListenAndServe(ctx)
}

// applyServeFlags overrides the server section with non-empty --mode and --addr values.
func applyServeFlags(cfg *shared.ServerConfig, mode, addr string) error {
	if mode != "" {
		cfg.Mode = mode
	}
	if addr == "" {
		return nil
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: --addr %q: %v", shared.ErrInvalidFlag, addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("%w: --addr port %q is not a number", shared.ErrInvalidFlag, portStr)
	}
	cfg.Host, cfg.Port = host, port
	return nil
}
