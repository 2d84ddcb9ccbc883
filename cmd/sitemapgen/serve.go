package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/romangod6/sitemapgen/config"
	"github.com/romangod6/sitemapgen/internal/api"
	"github.com/romangod6/sitemapgen/internal/storage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the generated sitemaps over HTTP",
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize database tables: %w", err)
		}
	}

	server := api.NewServer(cfg.Server.Port, store, cfg.Output.Dir, cfg.Output.SitemapsDir)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting preview server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start preview server: %w", err)
	case <-cmd.Context().Done():
	}

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	log.Println("Server shut down gracefully")
	return nil
}
