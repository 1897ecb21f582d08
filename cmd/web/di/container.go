package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"userdeck/cmd/web/infrastructure"
	"userdeck/internal/adapter/cache"
	"userdeck/internal/adapter/db/sqlstore"
	ginhandler "userdeck/internal/adapter/gin/handler"
	"userdeck/internal/adapter/gin/middleware"
	ginrouter "userdeck/internal/adapter/gin/router"
	"userdeck/internal/adapter/repository/cached"
	"userdeck/internal/adapter/rest"
	"userdeck/internal/adapter/session"
	"userdeck/internal/config"
	"userdeck/internal/ui"
	"userdeck/internal/usecase/user"
	redisclient "userdeck/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	SQLStore    *sqlstore.StateRepo // nil unless sessions live in SQL
	Store       user.StateStore
	Backend     *rest.Client
	UserUC      user.Usecase
	Renderer    *ui.Renderer
	UIHandler   *ginhandler.UIHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	if cfg.NeedsDB() {
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
	}

	if cfg.NeedsRedis() {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
	}

	store, err := c.newStateStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Store = store

	// Initialize backend client
	var opts []rest.Option
	if cfg.API.TimeoutSeconds > 0 {
		opts = append(opts, rest.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))
	}
	c.Backend = rest.NewClient(cfg.API.URL, l, opts...)

	// Initialize use case
	c.UserUC = user.New(c.Backend, c.Store, l)

	renderer, err := ui.NewRenderer()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	c.Renderer = renderer

	// Initialize Gin handler
	c.UIHandler = ginhandler.NewUIHandler(c.UserUC, ui.BackendName, l)

	l.Info("container initialized",
		zap.String("session_store", cfg.Session.Store),
		zap.String("api_url", cfg.API.URL),
	)

	return c, nil
}

// newStateStore builds the session store named by SESSION_STORE
func (c *Container) newStateStore(ctx context.Context) (user.StateStore, error) {
	ttl := time.Duration(c.Config.Session.TTLSeconds) * time.Second

	switch c.Config.Session.Store {
	case config.StoreMemory:
		return session.NewMemoryStore(ttl), nil
	case config.StoreRedis:
		return cache.NewRedisStateStore(c.RedisClient.Client, ttl, c.Logger), nil
	case config.StoreSQL, config.StoreCached:
		repo := sqlstore.NewStateRepo(c.DB, ttl, c.Logger)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate session table: %w", err)
		}
		c.SQLStore = repo
		if c.Config.Session.Store == config.StoreSQL {
			return repo, nil
		}
		redisStore := cache.NewRedisStateStore(c.RedisClient.Client, ttl, c.Logger)
		return cached.NewStateStore(repo, redisStore, c.Logger), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", c.Config.Session.Store)
	}
}

// RouterOptions returns the router settings derived from the container
func (c *Container) RouterOptions() ginrouter.Options {
	opts := ginrouter.Options{
		Templates: c.Renderer.Template(),
		Static:    ui.Static(),
		Session: middleware.SessionConfig{
			CookieName: c.Config.Session.CookieName,
			MaxAge:     c.Config.Session.TTLSeconds,
			Secure:     c.Config.Session.CookieSecure,
		},
		RateLimit: middleware.RateLimiterConfig{
			RequestsPerSecond: c.Config.RateLimit.RequestsPerSecond,
			BurstCapacity:     c.Config.RateLimit.BurstCapacity,
			Enabled:           c.Config.RateLimit.Enabled,
		},
		ServiceName: c.Config.Logger.ServiceName,
	}
	if c.RedisClient != nil {
		opts.RedisClient = c.RedisClient.Client
	}
	return opts
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
