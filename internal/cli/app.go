package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/config"
	"github.com/prudhvinik1/estatesync/internal/database"
	"github.com/prudhvinik1/estatesync/internal/logger"
	"github.com/prudhvinik1/estatesync/internal/preferences"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/services"
)

const serviceName = "estatesync"

// app holds everything a command needs, built from the environment.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	stores  *services.Stores
	theme   *preferences.ThemeStore
	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logger.New(serviceName, cfg.Environment, cfg.LogLevel),
	}

	gw, err := a.openGateway(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	prefs, err := a.openPreferences(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.stores = services.NewStores(repositories.NewInstrumentedGateway(gw), a.log, services.Config{
		ExpiringWindow: cfg.ExpiringWindow,
	})
	a.theme = preferences.NewThemeStore(ctx, prefs, a.log)
	return a, nil
}

func (a *app) openGateway(ctx context.Context) (repositories.Gateway, error) {
	a.log.Info().Str("driver", a.cfg.GatewayDriver).Msg("opening gateway")

	switch a.cfg.GatewayDriver {
	case config.DriverMemory:
		return repositories.NewMemoryGateway(), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(a.cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { db.Close() })
		return repositories.NewSQLiteGateway(db), nil

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, a.cfg.DatabaseURL, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.EnsureDocumentSchema(ctx, pool); err != nil {
			return nil, err
		}
		return repositories.NewPostgresGateway(pool), nil

	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, a.cfg.MongoURI, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to create mongo client: %w", err)
		}
		a.closers = append(a.closers, func() { client.Disconnect(context.Background()) })
		return repositories.NewMongoGateway(client.Database(a.cfg.MongoDatabase)), nil
	}

	return nil, fmt.Errorf("unsupported gateway driver: %s", a.cfg.GatewayDriver)
}

func (a *app) openPreferences(ctx context.Context) (repositories.PreferenceRepository, error) {
	if a.cfg.RedisURL == "" {
		return repositories.NewMemoryPreferenceRepository(), nil
	}

	client, err := database.NewRedisClient(ctx, a.cfg.RedisURL, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	a.closers = append(a.closers, func() { client.Close() })
	return repositories.NewRedisPreferenceRepository(client), nil
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
