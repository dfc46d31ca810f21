package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cliper/internal/broker"
	"cliper/internal/config"
	"cliper/internal/database"
	handlers "cliper/internal/handler"
	"cliper/internal/middleware"
	"cliper/internal/realtime"
	"cliper/internal/repository"
	"cliper/internal/service"
	"cliper/internal/storage"
)

// App holds the wired process dependencies.
type App struct {
	DB        *database.DB
	Repo      *repository.Repository
	Services  *service.Service
	Handlers  *handlers.Handlers
	Hub       *realtime.Hub
	Realtime  *realtime.Handler
	Redis     *redis.Client
	Publisher *broker.Publisher
	Consumer  *broker.Consumer
}

func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) *App {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// object storage
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise image storage")
	}

	a := &App{
		DB:   db,
		Repo: repository.NewRepository(db.DB, cfg.BcryptCost),
		Hub:  realtime.NewHub(log),
	}

	checks := service.HealthChecks{
		Database: db.HealthCheck,
		Storage:  store.Ping,
	}

	if cfg.Redis.Addr != "" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		checks.Redis = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}

	var pusher service.NotificationPusher = a.Hub
	if cfg.RabbitMQ.URL != "" {
		publisher, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, delivering notifications in-process")
		} else {
			a.Publisher = publisher
			a.Consumer = broker.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, a.Hub, log)
			checks.Broker = publisher.Ping
			pusher = publisher
		}
	}

	a.Services = service.NewService(a.Repo, cfg, store, pusher, checks, log)
	a.Handlers = handlers.NewHandlers(a.Services, cfg, log)
	a.Realtime = realtime.NewHandler(a.Hub, cfg.AllowedOrigin, log)

	return a
}

// Limiter is nil when redis is not configured, which disables rate limiting.
func (a *App) Limiter() middleware.Counter {
	if a.Redis == nil {
		return nil
	}
	return a.Redis
}

func (a *App) Close(log logrus.FieldLogger) {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			log.WithError(err).Warn("closing rabbitmq publisher")
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.WithError(err).Warn("closing redis client")
		}
	}
	if err := a.DB.CloseDB(); err != nil {
		log.WithError(err).Warn("closing database")
	}
}
