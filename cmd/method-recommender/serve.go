// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/method-recommender/internal/graphdb"
	"github.com/pdiddy/method-recommender/internal/server"
	"github.com/pdiddy/method-recommender/internal/users"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API",
	Long: `Serve starts the HTTP API: recommendation and details endpoints, option
lists for every ontology dimension under /meta, user login and saved searches
under /users, and a raw SPARQL passthrough under /sparql. The GraphDB client
is constructed once at startup and shared across requests.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	dev, _ := cmd.Flags().GetBool("dev")

	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	cfg := appConfig()

	db := graphdb.NewClient(cfg.GraphDB)
	store, err := users.NewStore(cfg.Users)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(db, store, logger, cfg.Server).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("graphdb", cfg.GraphDB.BaseURL),
			zap.String("repository", cfg.GraphDB.Repository),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().Bool("dev", false, "use human-readable development logging")

	rootCmd.AddCommand(serveCmd)
}
