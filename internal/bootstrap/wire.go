package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/user"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/db/sqlite"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/memory"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
	http_handlers "github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(storage, dsn string, debug bool) (*sql.DB, error)

	// NewRedis is optional; nil means in-process rate limiting only.
	NewRedis func(addr, password string, db int) RedisClient

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	if deps.LoadConfig == nil || deps.NewRouter == nil {
		return nil, nil, errNilDeps
	}

	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) storage
	repo, sqlDB, err := openRepository(deps, cfg)
	if err != nil {
		return nil, nil, err
	}
	if sqlDB != nil {
		cleanupFns = append(cleanupFns, func() { _ = sqlDB.Close() })
	}

	// 2) redis (best-effort, only feeds the rate limiter)
	var redisCli RedisClient
	if cfg.RLEnabled && cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-process rate limiter")
			_ = c.Close()
		} else {
			logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 3) services
	createSvc := user.NewCreateService(repo)
	getSvc := user.NewGetService(repo)

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 5) handlers + middleware
	usersH := http_handlers.NewUsersHandler(createSvc, getSvc)
	// a typed nil *sql.DB must not reach the Pinger interface
	var healthH *http_handlers.HealthHandler
	if sqlDB != nil {
		healthH = http_handlers.NewHealthHandler(sqlDB)
	} else {
		healthH = http_handlers.NewHealthHandler(nil)
	}

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Users:       usersH,
		AuthMW:      middleware.Auth(signer, response.WriteError),
		RateLimitMW: rateLimitMiddleware(cfg, redisCli),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	logger.Logger.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage).
		Bool("rate_limit", cfg.RLEnabled).
		Bool("redis", redisCli != nil).
		Msg("server wired")

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

// openRepository returns the repository for cfg.Storage. sqlDB is nil for
// in-memory storage.
func openRepository(deps Deps, cfg *config.Config) (user.UserRepository, *sql.DB, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Logger.Warn().Msg("using in-memory storage; data is lost on restart")
		return memory.NewUserRepo(), nil, nil
	}

	if deps.NewDB == nil {
		return nil, nil, fmt.Errorf("bootstrap: STORAGE=%s needs a NewDB dependency", cfg.Storage)
	}
	db, err := deps.NewDB(cfg.Storage, cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: open %s: %w", cfg.Storage, err)
	}

	var (
		repo   user.UserRepository
		ensure func(context.Context, *sql.DB) error
	)
	switch cfg.Storage {
	case config.StoragePostgres:
		repo, ensure = postgres.NewUserRepo(db), postgres.EnsureSchema
	case config.StorageSQLite:
		repo, ensure = sqlite.NewUserRepo(db), sqlite.EnsureSchema
	default:
		_ = db.Close()
		return nil, nil, fmt.Errorf("bootstrap: unsupported storage %q", cfg.Storage)
	}

	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ensure(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}

	return repo, db, nil
}

// rateLimitMiddleware prefers the shared Redis window so limits hold across
// replicas, and falls back to a per-process limiter.
func rateLimitMiddleware(cfg *config.Config, redisCli RedisClient) func(http.Handler) http.Handler {
	if !cfg.RLEnabled || cfg.RLLimit <= 0 {
		return nil
	}

	if c, ok := redisCli.(*redis.Client); ok && c != nil {
		return middleware.RateLimitFixedWindow(
			c.Limiter(),
			middleware.FixedWindowConfig{RouteKey: "users", Limit: cfg.RLLimit, Window: cfg.RLWindow},
			response.WriteError,
		)
	}

	return httprate.Limit(
		cfg.RLLimit,
		cfg.RLWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.WriteError(w, r, domain.ErrRateLimited("users"))
		}),
	)
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

var errNilDeps = errors.New("bootstrap: LoadConfig and NewRouter are required")

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
