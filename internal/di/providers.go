package di

import (
	"context"
	"log"
	"momnt-server/internal/config"
	"momnt-server/internal/notify"
	platformservice "momnt-server/internal/platform/service"
	"momnt-server/internal/storage"

	"github.com/redis/go-redis/v9"
)

func provideRedisClient() (*redis.Client, func()) {
	client := platformservice.NewRedisClient(config.Get().Redis)
	return client, func() {
		if err := platformservice.CloseRedisClient(client); err != nil {
			log.Printf("⚠️ close redis: %v", err)
		}
	}
}

func provideGateway(ctx context.Context, appService *platformservice.AppService) (storage.Gateway, error) {
	return storage.New(ctx, appService.Config().Storage)
}

// provideHub starts the live feed hub; it stops when ctx is done.
func provideHub(ctx context.Context) *notify.Hub {
	hub := notify.NewHub()
	go hub.Run(ctx)
	return hub
}

// provideNotifier fans notifications out to the hub and, when enabled, the broker.
func provideNotifier(appService *platformservice.AppService, hub *notify.Hub) (notify.Notifier, func()) {
	notifiers := notify.Multi{hub}
	cleanup := func() {}

	cfg := appService.Config().Broker
	if !cfg.Enabled {
		return notifiers, cleanup
	}
	publisher, err := notify.NewPublisher(cfg)
	if err != nil {
		log.Printf("⚠️ broker unavailable, upload events stay local: %v", err)
		return notifiers, cleanup
	}
	log.Printf("✅ Broker connected, exchange %s", cfg.Exchange)
	return append(notifiers, publisher), func() {
		if err := publisher.Close(); err != nil {
			log.Printf("⚠️ close broker: %v", err)
		}
	}
}
