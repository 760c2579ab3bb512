package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/playwheel/doublespin/internal/catalog"
	"github.com/playwheel/doublespin/internal/config"
	"github.com/playwheel/doublespin/internal/database"
	"github.com/playwheel/doublespin/internal/grader"
	"github.com/playwheel/doublespin/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	store, err := catalog.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("preparing catalog: %w", err)
	}
	if err := catalog.Seed(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Grading model ---
	ai, err := grader.New(grader.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.GradingModel,
		Timeout: cfg.GradeTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating grader: %w", err)
	}

	// --- HTTP server ---
	srv := server.New(cfg.HTTPAddr, logger, db, store, ai, grader.DefaultRules())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
