package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	appAuth "github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/services"
	"github.com/yigit/unirecords/internal/client"
	"github.com/yigit/unirecords/internal/config"
	"github.com/yigit/unirecords/internal/mockapi"
	"github.com/yigit/unirecords/internal/pkg/cache"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/notify"
	"github.com/yigit/unirecords/internal/pkg/validation"
	"github.com/yigit/unirecords/internal/session"
)

// redisPrefix namespaces snapshot keys in a shared Redis.
const redisPrefix = "unirecords:"

// App holds everything a command needs
type App struct {
	Config    *config.Config
	Store     *session.Store
	Client    *client.Client
	Session   *session.Manager
	Data      *services.DataStore
	Authz     *appAuth.AuthorizationService
	Cache     cache.Cache
	Notifier  notify.Notifier
	Validator *validation.Validator
	Logger    zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Logs go to stderr so stdout stays free for tables and exported files.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
		Output: os.Stderr,
	})

	lgr := logger.Component("bootstrap")
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// NewCache opens the snapshot cache named by the config. An unreachable Redis
// degrades to no caching rather than failing the command.
func NewCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.Noop{}, nil
	case config.CacheBackendMemory:
		return cache.NewMemory(), nil
	case config.CacheBackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		rc, err := cache.NewRedis(pingCtx, cfg.Cache.RedisAddr, cfg.Cache.RedisDB, redisPrefix)
		if err != nil {
			lgr.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, snapshot cache disabled")
			return cache.Noop{}, nil
		}
		return rc, nil
	default:
		fc, err := cache.NewFile(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache dir: %w", err)
		}
		return fc, nil
	}
}

// BuildApp wires session, API client and data store. A stored session whose
// token has expired is dropped before any command runs.
func BuildApp(ctx context.Context, cfg *config.Config, notifier notify.Notifier, lgr zerolog.Logger) (*App, error) {
	if notifier == nil {
		notifier = notify.Discard{}
	}

	store, err := session.Open(cfg.Session.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	c, err := NewCache(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Store:     store,
		Cache:     c,
		Notifier:  notifier,
		Validator: validation.New(),
		Logger:    lgr,
	}

	// The manager is created after the client, so the 401 hook looks it up
	// through app at call time.
	app.Client = client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.APITimeout(),
		OnUnauthorized: func() {
			if app.Session != nil {
				app.Session.Expire()
			}
		},
	}, store)

	app.Session = session.NewManager(store, app.Client, notifier)
	app.Data = services.NewDataStore(app.Client, notifier, c, cfg.CacheTTL())
	app.Authz = appAuth.NewAuthorizationService(app.Session)

	app.Session.OnLogout(app.Data.Clear)
	if u := store.User(); u != nil {
		app.Data.SetOwner(u.ID)
	}

	if app.Session.DropIfExpired(time.Now()) {
		lgr.Info().Msg("Stored session expired")
	}
	return app, nil
}

// Login signs in and scopes the snapshot cache to the new user.
func (a *App) Login(ctx context.Context, username, password string) (bool, error) {
	ok, err := a.Session.Login(ctx, username, password)
	if err != nil || !ok {
		return ok, err
	}
	if u := a.Session.User(); u != nil {
		a.Data.SetOwner(u.ID)
	}
	return true, nil
}

// Close releases the cache.
func (a *App) Close() error {
	if a.Cache == nil {
		return nil
	}
	return a.Cache.Close()
}

// BuildMockAPI assembles the development backend from the mock_server and
// jwt config sections. storagePath archives uploaded import files when set.
func BuildMockAPI(cfg *config.Config, empty bool, storagePath string, lgr zerolog.Logger) (*mockapi.API, error) {
	api, err := mockapi.New(mockapi.Options{
		Seed:        cfg.MockServer.Seed,
		Empty:       empty,
		JWTSecret:   cfg.JWT.Secret,
		TokenTTL:    cfg.TokenExpiration(),
		Issuer:      cfg.JWT.Issuer,
		StoragePath: storagePath,
		Mode:        cfg.MockServer.Mode,
		Logger:      &lgr,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build mock API")
		return nil, err
	}
	return api, nil
}

// WriteDefaultConfig writes a commented starter config to w.
func WriteDefaultConfig(w io.Writer) error {
	_, err := io.WriteString(w, defaultConfigYAML)
	return err
}

const defaultConfigYAML = `api:
  base_url: http://localhost:8080/api
  timeout: 15s
# session:
#   file: ~/.config/unirecords/session.json
cache:
  backend: file # none | memory | file | redis
  ttl: 5m
  # redis_addr: localhost:6379
  # redis_db: 0
output:
  dir: .
  # TrueType/OpenType font with Thai glyphs for portfolio cards
  # font_path: /usr/share/fonts/truetype/tlwg/Garuda.ttf
mock_server:
  port: "8080"
  mode: release
  seed: 42
jwt:
  secret: unirecords-dev-secret
  access_token_expiration: 24h
  issuer: unirecords.local
logging:
  level: warn
  format: console # console | json
`
