package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/topix/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the development backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}
	limit := cmd.Float("rate-limit")
	if limit < 0 {
		limit = r.config.Server.RateLimit
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{Addr: addr, RateLimit: limit, Logger: r.logger}, server.NewTopicsHandler())
	r.writePlain("→ Serving GET and POST /topic/multiple on http://%s (ctrl+c to stop)\n", addr)
	return server.Run(ctx, srv, r.logger)
}
