package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/drivemate/kyc-platform/internal/config"
	"github.com/drivemate/kyc-platform/internal/core/event"
	"github.com/drivemate/kyc-platform/internal/core/services"
	"github.com/drivemate/kyc-platform/internal/gateways"
	"github.com/drivemate/kyc-platform/internal/log"
	"github.com/drivemate/kyc-platform/internal/redis"
	"github.com/drivemate/kyc-platform/pkg/http"
	"github.com/drivemate/kyc-platform/pkg/pubsub"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)

	rdb, err := redis.Open(ctx, cfg.Cache.RedisUrl)
	if err != nil {
		log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.RedisUrl)
		return
	}

	ps := pubsub.NewRedis(rdb)

	notificationGateway := gateways.NewPushNotificationClient(http.DefaultHTTPClientWithRetry, cfg.Notifier.URL)
	notificationService := services.NewNotification(notificationGateway)

	ps.Subscribe(ctx, event.VerificationCompletedEvent, notificationService.SendVerificationCompletedNotification)

	log.Info(ctx, "notifications worker started")

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	<-gracefulShutdown
}
