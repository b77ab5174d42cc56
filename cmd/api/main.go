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

	"github.com/srjn0201/betting/internal/api"
	"github.com/srjn0201/betting/internal/config"
	"github.com/srjn0201/betting/internal/infra/logging"
	"github.com/srjn0201/betting/internal/infra/pgutils"
	"github.com/srjn0201/betting/internal/services/auth"
	"github.com/srjn0201/betting/internal/services/betting"
	"github.com/srjn0201/betting/internal/services/directory"
	"github.com/srjn0201/betting/internal/services/wallet"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	// --- Services ---
	authSvc := auth.New(db, cfg.Auth)
	dirSvc := directory.New(db)
	walletSvc := wallet.New(db)
	bettingSvc := betting.New(db, cfg.HouseUsername)

	// --- HTTP server ---
	h := api.NewHandler(authSvc, dirSvc, walletSvc, bettingSvc)
	srv := api.NewServer(cfg.Port, h)

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		slog.Info("Shut down server")

		err = srv.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
