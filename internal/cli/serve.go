package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prudhvinik1/estatesync/internal/api"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start an HTTP server exposing the entity stores, derived views and preferences.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default: ESTATESYNC_SERVER_PORT)")

	return cmd
}

func runServe(ctx context.Context, port string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if port == "" {
		port = a.cfg.ServerPort
	}

	if a.cfg.SeedOnStart {
		if err := a.stores.SeedAll(ctx); err != nil {
			a.log.Error().Err(err).Msg("failed to seed sample data")
		}
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: api.NewServer(a.stores, a.theme, a.log).Router(),
	}

	// graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		a.log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.log.Error().Err(err).Msg("shutdown did not complete")
		}
	}()

	a.log.Info().Str("port", port).Msg("starting server")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	a.log.Info().Msg("server stopped gracefully")
	return nil
}
