package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akarpov/finlog/api"
	"github.com/akarpov/finlog/auth"
	"github.com/akarpov/finlog/config"
	"github.com/akarpov/finlog/db"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("loading config", "err", err)
		os.Exit(1)
	}

	storage, err := db.NewStorage(cfg.DatabaseDSN)
	if err != nil {
		log.Error("connecting to postgres", "err", err)
		os.Exit(1)
	}
	defer storage.Close()

	issuer := auth.NewIssuer(auth.TokenConfig{
		Secret:       cfg.JWTSecret,
		TTL:          cfg.TokenTTL,
		Issuer:       cfg.TokenIssuer,
		Audience:     cfg.TokenAudience,
		StrictClaims: cfg.StrictTokenClaims,
	})
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	handler := api.NewHandler(storage, issuer, hasher, log)
	router := api.NewRouter(handler, cfg.OpenListing)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", cfg.Addr, "open_listing", cfg.OpenListing)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
