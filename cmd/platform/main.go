package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/drivemate/kyc-platform/internal/api"
	"github.com/drivemate/kyc-platform/internal/config"
	"github.com/drivemate/kyc-platform/internal/core/services"
	"github.com/drivemate/kyc-platform/internal/db"
	"github.com/drivemate/kyc-platform/internal/gateways"
	"github.com/drivemate/kyc-platform/internal/health"
	"github.com/drivemate/kyc-platform/internal/log"
	"github.com/drivemate/kyc-platform/internal/redis"
	"github.com/drivemate/kyc-platform/internal/repositories"
	"github.com/drivemate/kyc-platform/internal/session"
	"github.com/drivemate/kyc-platform/pkg/cache"
	pkgHTTP "github.com/drivemate/kyc-platform/pkg/http"
	"github.com/drivemate/kyc-platform/pkg/pubsub"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)

	if err := cfg.Sanitize(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent server to start", "err", err)
		return
	}

	storage, err := db.NewStorage(cfg.Database.URL)
	if err != nil {
		log.Error(ctx, "cannot connect to database", "err", err)
		return
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error(ctx, "closing database", "err", err)
		}
	}()

	rdb, err := redis.Open(ctx, cfg.Cache.RedisUrl)
	if err != nil {
		log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.RedisUrl)
		return
	}

	cachex := cache.NewRedisCache(rdb)
	ps := pubsub.NewRedis(rdb)

	providerBackend := gateways.NewProviderBackendClient(pkgHTTP.DefaultHTTPClientWithRetry, cfg.Provider.BaseURL)
	providerClient := services.NewProvider(providerBackend, cfg.Provider.ResponseTimeout)
	fetcher := services.NewDocumentFetcher(pkgHTTP.DefaultHTTPClientWithRetry, cfg.TmpDir, cfg.OCR.DownloadTimeout)
	comparer := services.NewOCRComparer(gateways.NewComparisonClient(pkgHTTP.DefaultHTTPClientWithRetry, cfg.OCR.URL), cfg.OCR.ResponseTimeout)
	finalizer := gateways.NewFinalizerClient(cfg.Finalizer.URL)

	verificationService := services.NewVerification(
		providerClient,
		fetcher,
		comparer,
		finalizer,
		repositories.NewSessions(),
		repositories.NewUserVerification(),
		repositories.NewDocuments(),
		storage,
		session.Cached(cachex),
		ps,
		cfg.ServerUrl,
	)

	healthStatus := health.New(storage.Pgx, redis.Wrapper{Client: rdb})

	mux := chi.NewRouter()
	api.NewServer(verificationService, healthStatus).Routes(ctx, mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: mux,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, fmt.Sprintf("server started on port:%d", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "starting http server", "err", err)
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
	if err := server.Shutdown(ctx); err != nil {
		log.Error(ctx, "shutting down http server", "err", err)
	}
}
