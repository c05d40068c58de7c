package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finny-import/internal/config"
	"github.com/MrJamesThe3rd/finny-import/internal/database"
	finnyHttp "github.com/MrJamesThe3rd/finny-import/internal/http"
	importHandler "github.com/MrJamesThe3rd/finny-import/internal/http/importcsv"
	templateHandler "github.com/MrJamesThe3rd/finny-import/internal/http/templates"
	txHandler "github.com/MrJamesThe3rd/finny-import/internal/http/transaction"
	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finny-import/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	var (
		parser             = ingest.NewParser(ingest.WithDefaultCategory(cfg.Import.DefaultCategory))
		transactionService = transaction.NewService(txStore.New(db))
		importService      = importer.NewService(parser,
			importer.WithMaxFileSize(cfg.Import.MaxFileSize),
			importer.WithLogger(log),
		)
	)

	router := finnyHttp.New(
		finnyHttp.Config{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			JWTSecret:      cfg.Auth.JWTSecret,
			Timeout:        cfg.Server.Timeout,
		},
		txHandler.NewHandler(transactionService),
		importHandler.NewHandler(importService, transactionService),
		templateHandler.NewHandler(),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "auth", cfg.Auth.JWTSecret != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
