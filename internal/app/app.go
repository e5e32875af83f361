// Package app arma el proceso a partir de la configuración: session store, motor de
// storage, métricas y router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/adapters/storage/mongodb"
	pgstore "animal-sos/internal/adapters/storage/postgres"
	redisstore "animal-sos/internal/adapters/storage/redis"
	"animal-sos/internal/auth"
	"animal-sos/internal/config"
	"animal-sos/internal/platform/logger"
	"animal-sos/internal/platform/metrics"
	"animal-sos/internal/router"
	"animal-sos/internal/session"
	"animal-sos/internal/storage"
)

type App struct {
	Config   *config.Config
	Log      logger.Logger
	Storage  storage.Storage
	Sessions session.Store
	Metrics  *metrics.Metrics
}

// seeder lo implementa el motor mongodb; memory siembra al construirse.
type seeder interface {
	SeedVets(ctx context.Context) (bool, error)
}

// New abre sessions y storage. Si falla el storage, cierra lo ya abierto.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}

	sessions, err := OpenSessions(ctx, cfg.Session, log)
	if err != nil {
		return nil, err
	}

	st, err := OpenStorage(ctx, cfg.Storage, sessions, log)
	if err != nil {
		_ = sessions.Close()
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Storage:  st,
		Sessions: sessions,
		Metrics:  metrics.New(metricsNamespace(cfg.App.Name)),
	}

	if cfg.Storage.Seed {
		if _, err := a.Seed(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}
	return a, nil
}

func (a *App) Handler() http.Handler {
	return router.NewRouter(router.Options{
		Storage:      a.Storage,
		Logger:       a.Log,
		Metrics:      a.Metrics,
		CookieName:   a.Config.Session.CookieName,
		CookieSecure: a.Config.Session.CookieSecure,
		SessionTTL:   a.Config.Session.TTL,
		DevHeader:    a.Config.Auth.DevHeader,
	})
}

// Seed siembra las veterinarias de ejemplo si el motor lo soporta y están vacías.
func (a *App) Seed(ctx context.Context) (bool, error) {
	s, ok := a.Storage.(seeder)
	if !ok {
		a.Log.Debug("storage seeds itself on startup", map[string]any{"driver": a.Config.Storage.Driver})
		return false, nil
	}
	seeded, err := s.SeedVets(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return seeded, nil
}

func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Storage.Close(ctx), a.Sessions.Close())
}

func OpenSessions(ctx context.Context, cfg config.SessionConfig, log logger.Logger) (session.Store, error) {
	switch cfg.Driver {
	case config.SessionDriverMemory, "":
		return session.NewMemoryStore(session.MemoryOptions{TTL: cfg.TTL, CheckPeriod: cfg.CheckPeriod}), nil

	case config.SessionDriverRedis:
		s, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   redisstore.DefaultPrefix,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.SessionDriverPostgres:
		s, err := pgstore.Connect(ctx, cfg.PostgresDSN, pgstore.SessionOptions{
			TTL:         cfg.TTL,
			CheckPeriod: cfg.CheckPeriod,
			Logger:      log,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Driver)
	}
}

func OpenStorage(ctx context.Context, cfg config.StorageConfig, sessions session.Store, log logger.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case storage.DriverMemory, "":
		opts := memory.Options{Sessions: sessions}
		if cfg.AdminPassword != "" {
			hash, err := auth.HashPassword(cfg.AdminPassword)
			if err != nil {
				return nil, fmt.Errorf("hash seed admin password: %w", err)
			}
			opts.AdminPasswordHash = hash
		}
		return memory.New(opts), nil

	case storage.DriverMongoDB:
		s, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		}, sessions, log)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// metricsNamespace: "animal-sos" => "animal_sos".
func metricsNamespace(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "app"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
}
