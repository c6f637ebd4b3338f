package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/quokkabay/quokkabay/internal/config"
	"github.com/quokkabay/quokkabay/internal/infra/cache"
	"github.com/quokkabay/quokkabay/internal/infra/db"
	"github.com/quokkabay/quokkabay/internal/infra/httpclient"
	"github.com/quokkabay/quokkabay/internal/infra/identity"
	"github.com/quokkabay/quokkabay/internal/infra/llm"
	"github.com/quokkabay/quokkabay/internal/infra/logger"
	mq "github.com/quokkabay/quokkabay/internal/infra/queue"
	"github.com/quokkabay/quokkabay/internal/modules/handler"
	"github.com/quokkabay/quokkabay/internal/modules/repo"
	"github.com/quokkabay/quokkabay/internal/modules/service"
	"github.com/quokkabay/quokkabay/internal/pkg/tokenizer"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)

		// [optional] apply embedded migrations before the pool is opened
		if cfg.Database.AutoMigrate {
			if err := db.MigrateUp(db.DSN(cfg.Database), log); err != nil {
				return nil, err
			}
		}
		return db.New(cfg)
	})

	// Redis, nil when disabled
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		return cache.New(cfg)
	})

	do.Provide(inj, func(i *do.Injector) (cache.Locker, error) {
		rdb := do.MustInvoke[*redis.Client](i)
		if rdb == nil {
			return cache.NewNoopLocker(), nil
		}
		return cache.NewRedisLocker(rdb, "quokkabay:lease:"), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return mq.Dial(cfg)
	})

	// RabbitMQ Publisher, noop when disabled
	do.Provide(inj, func(i *do.Injector) (mq.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.RabbitMQ.Enabled {
			return mq.NewNoopPublisher(), nil
		}
		conn, err := do.Invoke[*amqp.Connection](i)
		if err != nil {
			return nil, err
		}
		return mq.NewPublisher(conn, do.MustInvoke[*zap.Logger](i), cfg)
	})

	// Outbound HTTP Client
	do.Provide(inj, func(i *do.Injector) (*http.Client, error) {
		return httpclient.New(do.MustInvoke[*config.Config](i)), nil
	})

	// Identity
	do.Provide(inj, func(i *do.Injector) (identity.Resolver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		api := identity.NewSupabaseAPI(cfg.Supabase.URL, cfg.Supabase.AnonKey, do.MustInvoke[*http.Client](i))
		return identity.NewSupabaseResolver(api, cfg.Supabase.JWTSecret, do.MustInvoke[*zap.Logger](i)), nil
	})

	// LLM
	do.Provide(inj, func(i *do.Injector) (llm.Completer, error) {
		return llm.New(context.Background(), do.MustInvoke[*config.Config](i), do.MustInvoke[*http.Client](i))
	})
	do.Provide(inj, func(i *do.Injector) (*tokenizer.Counter, error) {
		return tokenizer.New()
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.SurveyRepo, error) {
		return repo.NewSurveyRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.SurveyActivitiesRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		base := repo.NewSurveyActivitiesRepo(do.MustInvoke[*gorm.DB](i))
		rdb := do.MustInvoke[*redis.Client](i)
		if rdb == nil {
			return base, nil
		}
		ttl := time.Duration(cfg.Redis.ResultTTLSec) * time.Second
		return repo.NewCachedSurveyActivitiesRepo(base, rdb, ttl, do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.FavoriteRepo, error) {
		return repo.NewFavoriteRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.SurveyService, error) {
		return service.NewSurveyService(
			do.MustInvoke[repo.SurveyRepo](i),
			do.MustInvoke[mq.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ActivityGenerator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewActivityGenerator(
			do.MustInvoke[llm.Completer](i),
			do.MustInvoke[*tokenizer.Counter](i),
			service.GeneratorOptions{
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				MaxTokens:   cfg.LLM.MaxTokens,
			},
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ResultsService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewResultsService(
			do.MustInvoke[repo.SurveyRepo](i),
			do.MustInvoke[repo.SurveyActivitiesRepo](i),
			do.MustInvoke[service.ActivityGenerator](i),
			do.MustInvoke[cache.Locker](i),
			do.MustInvoke[mq.EventPublisher](i),
			service.ResultsOptions{LeaseTTL: time.Duration(cfg.Redis.LeaseTTLSec) * time.Second},
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.FavoriteService, error) {
		return service.NewFavoriteService(
			do.MustInvoke[repo.FavoriteRepo](i),
			do.MustInvoke[repo.SurveyRepo](i),
			do.MustInvoke[mq.EventPublisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.SurveyHandler, error) {
		return handler.NewSurveyHandler(
			do.MustInvoke[service.SurveyService](i),
			do.MustInvoke[service.ResultsService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.FavoriteHandler, error) {
		return handler.NewFavoriteHandler(do.MustInvoke[service.FavoriteService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return handler.NewAuthHandler(
			do.MustInvoke[identity.Resolver](i),
			cfg.App.PublicURL,
			cfg.Supabase.CookieName,
			cfg.Supabase.CookieSecure,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	return inj
}
