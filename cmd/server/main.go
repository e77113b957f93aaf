/*
main.go - HTTP server entry point

PURPOSE:
  Starts the habit tracking API server: configuration, dependency
  wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load TOML configuration (flags override the file)
  3. Open the SQLite store
  4. Build handler, metrics, and router
  5. Serve with graceful shutdown on SIGINT/SIGTERM

COMMAND-LINE FLAGS:
  -config  TOML config file path (optional)
  -addr    Listen address (overrides config)
  -db      SQLite database path (overrides config; ":memory:" works)

EXAMPLES:
  ./server -config=tally.toml
  ./server -db=":memory:" -addr=:3000

SEE ALSO:
  - config/: The TOML schema and defaults
  - api/server.go: Router configuration
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallyhq/habit-engine/api"
	"github.com/tallyhq/habit-engine/config"
	"github.com/tallyhq/habit-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "TOML config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, api.NewMetrics())
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.Server.CORSOrigins,
		EnableMetrics:  cfg.Server.Metrics,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s (db: %s)", cfg.Server.Addr, cfg.Storage.Path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
