package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	_ "github.com/portfolio-cms/portfolio-api/docs" // swagger docs

	"github.com/portfolio-cms/portfolio-api/internal/api"
	"github.com/portfolio-cms/portfolio-api/internal/api/handler"
	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
	"github.com/portfolio-cms/portfolio-api/internal/core/ports"
	"github.com/portfolio-cms/portfolio-api/internal/core/service"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/config"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/db/memory"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/db/redis"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/db/sqlstore"
	"github.com/portfolio-cms/portfolio-api/internal/infrastructure/security"
	"github.com/portfolio-cms/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users      ports.UserRepository
	services   ports.ContentRepository[domain.Service]
	projects   ports.ContentRepository[domain.Project]
	categories ports.CategoryRepository
}

// @title Portfolio CMS API
// @version 1.0
// @description Portfolio content API with users, services, projects and categories under an admin approval workflow.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "portfolio-api"})
		bootLog.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portfolio-api",
	})

	checks := map[string]handler.Check{}

	repos, db, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init")
	}
	defer func() {
		if err := sqlstore.Close(db); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}()
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	var revocations ports.TokenRevocations
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis init")
		}
		defer closeRedis(rdb, log)

		revocations = redis.NewRevocationStore(rdb)
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	} else {
		log.Warn().Msg("REDIS_ADDR not set, logout will not revoke tokens")
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("token service")
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	users := service.NewUserService(repos.users, hasher, logger.Named("users"))
	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if err := users.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin")
		}
	}

	e := api.NewRouter(api.Deps{
		Logger:     logger.Named("http"),
		Resolver:   service.NewIdentityResolver(tokens, repos.users, revocations, logger.Named("identity")),
		Auth:       service.NewAuthService(repos.users, hasher, tokens, revocations, logger.Named("auth")),
		Users:      users,
		Services:   service.NewLifecycle[domain.Service, *domain.Service]("service", repos.services, repos.users, logger.Named("content")),
		Projects:   service.NewLifecycle[domain.Project, *domain.Project]("project", repos.projects, repos.users, logger.Named("content")),
		Categories: service.NewCategoryService(repos.categories, logger.Named("categories")),

		HealthChecks: checks,
	})

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		serverErrors <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server start")
		}
	case <-ctx.Done():
		log.Info().Msg("starting graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("could not gracefully shutdown the server")
			_ = e.Close()
		}
		log.Info().Msg("server gracefully stopped")
	}
}

// openStorage returns gorm-backed repositories for postgres and mysql, and
// process-local ones for the memory driver. db is nil for memory.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories, *gorm.DB, error) {
	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			users:      store.Users(),
			services:   memory.NewContentStore[domain.Service, *domain.Service](domain.ErrServiceNotFound),
			projects:   memory.NewContentStore[domain.Project, *domain.Project](domain.ErrProjectNotFound),
			categories: store.Categories(),
		}, nil, nil
	}

	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			_ = sqlstore.Close(db)
			return repositories{}, nil, err
		}
		log.Info().Msg("database schema migrated")
	}

	return repositories{
		users:      sqlstore.NewUserRepository(db),
		services:   sqlstore.NewServiceRepository(db),
		projects:   sqlstore.NewProjectRepository(db),
		categories: sqlstore.NewCategoryRepository(db),
	}, db, nil
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("close redis")
	}
}
