package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/promolens/backend/config"
	httpDelivery "github.com/promolens/backend/internal/delivery/http"
	"github.com/promolens/backend/internal/domain"
	"github.com/promolens/backend/internal/infrastructure/store"
	"github.com/promolens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PromoLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize the record store backend
	recordStore, err := newRecordStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}

	// Pattern library is built once and shared by every parse call
	lib := domain.DefaultPatternLibrary()
	log.Printf("Pattern library: %d price patterns, %d discount patterns, %d categories, %d retailers",
		len(lib.PricePatterns), len(lib.DiscountPatterns), len(lib.Categories), len(lib.Retailers))

	// Enable debug mode in development environment
	debugLogging := cfg.Parser.EnableDebugLogging
	if cfg.Server.Environment == "development" {
		debugLogging = true
		log.Printf("Parser debug logging enabled")
	}

	// Initialize usecase layer
	analyzer := usecase.NewAnalyzerService(recordStore, lib, usecase.AnalyzerConfig{
		EnableDebugLogging: debugLogging,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analyzer, cfg.Parser.MaxTextBytes)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newRecordStore builds the store backend selected by configuration
func newRecordStore(cfg *config.Config) (domain.RecordStore, error) {
	switch cfg.Store.Type {
	case "sqlite":
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		return store.NewSQLiteStore(cfg.Store.SQLitePath)
	case "postgres":
		return store.NewPostgresStore(cfg.Store.PostgresDSN)
	default:
		return store.NewMemoryStore(), nil
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
