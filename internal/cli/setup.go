package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/gridsmith/gridview/pkg/cache"
	"github.com/gridsmith/gridview/pkg/component/store"
	"github.com/gridsmith/gridview/pkg/config"
)

// openStore builds the component store selected by cfg. A memory store is
// seeded with cfg.Components; a Mongo store is assumed to already hold the
// inventory, so seeds only fill it when empty.
func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMongo:
		logger.Debug("connecting to mongo", "uri", cfg.Store.Mongo.URI, "collection", cfg.Store.Mongo.Collection)
		st, err := store.NewMongoStore(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database, cfg.Store.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		existing, err := st.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			if err := seedStore(ctx, st, cfg); err != nil {
				return nil, err
			}
		}
		return st, nil
	default:
		st := store.NewMemStore()
		if err := seedStore(ctx, st, cfg); err != nil {
			return nil, err
		}
		return st, nil
	}
}

func seedStore(ctx context.Context, st store.Store, cfg *config.Config) error {
	for i := range cfg.Components {
		c, err := cfg.Components[i].Component()
		if err != nil {
			return err
		}
		if err := st.Put(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// openCache builds the artifact cache selected by cfg.
func openCache(ctx context.Context, cfg *config.Config, logger *log.Logger) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		logger.Debug("connecting to redis", "addr", cfg.Cache.Redis.Addr)
		return cache.NewRedisCache(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
	case config.CacheNone:
		return cache.NewNullCache(), nil
	default:
		return cache.NewMemCache(), nil
	}
}
