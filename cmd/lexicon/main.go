package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/ai"
	"github.com/wayne-14e/Lexicon-AI/internal/app"
	"github.com/wayne-14e/Lexicon-AI/internal/config"
	"github.com/wayne-14e/Lexicon-AI/internal/handler"
	"github.com/wayne-14e/Lexicon-AI/internal/repository/sqlite"
	"github.com/wayne-14e/Lexicon-AI/internal/service"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Lexicon AI")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Open local store
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	db, err := sql.Open("sqlite3", cfg.DBPath())
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping local store", zap.Error(err))
	}

	logger.Info("Local store opened", zap.String("path", cfg.DBPath()))

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepo(db)
	tableRepo := sqlite.NewTableRepo(db)
	notesRepo := sqlite.NewNotesRepo(db)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	generator := ai.NewGemini(cfg.Gemini, logger)
	tableService := service.NewTableService(tableRepo, generator, logger)
	notesService := service.NewNotesService(notesRepo, service.DefaultAutosaveDelay, logger)

	// Initialize controller and restore any previous session
	controller := app.NewController(authService, tableService, notesService, logger)
	controller.Startup(os.Getenv("LEXICON_SHARE_TOKEN"))

	// Initialize HTTP surface
	router := mux.NewRouter()
	h := handler.NewHandler(controller, logger)
	h.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	// Pending scratchpad text must reach the store before the process exits
	notesService.Flush()

	logger.Info("Server stopped gracefully")
}

// runMigrations prepares the key-value schema
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := sqlitedb.WithInstance(db, &sqlitedb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"sqlite3",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
