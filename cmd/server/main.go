package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"backoffice/backend/internal/config"
	"backoffice/backend/internal/httpapi"
	"backoffice/backend/internal/logger"
	"backoffice/backend/internal/service"
	"backoffice/backend/internal/store"
	fsstore "backoffice/backend/internal/store/firestore"
	"backoffice/backend/internal/store/memory"
	pgstore "backoffice/backend/internal/store/postgres"
	"backoffice/backend/internal/store/redisdoc"
)

func main() {
	cfg := config.Load()

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatal("invalid security configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid store configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, closers, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal("store unavailable", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	log.Info("document store ready", zap.String("backend", cfg.StoreBackend))

	docs := store.NewDocuments(collections, log.Named("store"))
	svc := service.New(docs, log.Named("service"))
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, docs, log.Named("auth"))
	api := httpapi.New(svc, auth, cfg.AllowedOrigin, log.Named("http"))

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("report backend listening", zap.String("addr", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Warn("close error", zap.Error(err))
		}
	}

	log.Info("server stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	lc := logger.ForEnvironment(cfg.AppEnv)
	if cfg.LogLevel != "" {
		lc.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		lc.Format = cfg.LogFormat
	}
	return logger.New(lc)
}

// openBackend connects the configured document store. A configured backend
// that cannot be reached is fatal; there is no silent fallback to memory.
func openBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Collections, []func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return pg, []func() error{pg.Close}, nil
	case config.BackendRedis:
		rd := redisdoc.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rd.Ping(ctx); err != nil {
			_ = rd.Close()
			return nil, nil, err
		}
		return rd, []func() error{rd.Close}, nil
	case config.BackendFirestore:
		fs, err := fsstore.New(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, nil, err
		}
		return fs, []func() error{fs.Close}, nil
	case config.BackendMemory:
		return memory.NewSeeded(log.Named("memory")), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	return nil
}
