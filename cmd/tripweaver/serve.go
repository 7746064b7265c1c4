package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deppfellow/tripweaver/internal/handler"
	"github.com/deppfellow/tripweaver/internal/logger"
	"github.com/deppfellow/tripweaver/internal/middleware"
	"github.com/deppfellow/tripweaver/internal/router"
	"github.com/deppfellow/tripweaver/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve loads the destination index once and serves the API until
SIGINT or SIGTERM, then shuts down gracefully.

A missing or broken index is logged and the API starts with no destinations.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.New(appConfig.Observability)

	srv, err := server.New(appConfig, &log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	services, err := newServices(srv)
	if err != nil {
		return err
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services), middleware.NewMiddlewares(srv))
	srv.SetupHTTPServer(r)

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()

		timeout := time.Duration(appConfig.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
