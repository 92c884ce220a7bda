package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"b3cms/internal/cache"
	"b3cms/internal/config"
	"b3cms/internal/database"
	"b3cms/internal/handlers"
	"b3cms/internal/service"
	"b3cms/internal/store"
	"b3cms/internal/store/memory"
)

// app is the wired dependency graph shared by the subcommands.
type app struct {
	db       *sql.DB
	valkey   *redis.Client
	content  *service.ContentService
	category *service.CategoryService
	checks   map[string]handlers.Pinger
}

// valkeyPinger adapts a go-redis client to handlers.Pinger.
type valkeyPinger struct {
	client *redis.Client
}

func (p valkeyPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// newApp connects the configured backends and builds the services. When
// migrate is set, pending migrations run before anything else touches the
// database.
func newApp(cfg *config.Config, logger *slog.Logger, migrate bool) (*app, error) {
	a := &app{checks: make(map[string]handlers.Pinger)}

	var (
		contentRepo  service.ContentRepository
		categoryRepo service.CategoryRepository
	)
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		contentRepo = memory.NewContentStore()
		categoryRepo = memory.NewCategoryStore()
	default:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, err
		}
		a.db = db
		a.checks["postgres"] = db

		if migrate {
			if err := database.Migrate(db); err != nil {
				a.close()
				return nil, err
			}
			if cfg.IsDev() {
				if err := database.Seed(db); err != nil {
					a.close()
					return nil, err
				}
			}
		}
		contentRepo = store.NewContentStore(db)
		categoryRepo = store.NewCategoryStore(db)
	}

	var listing service.ListingCache
	if cfg.Cache.Enabled {
		client, err := cache.ConnectValkey(cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password, cfg.Valkey.DB)
		if err != nil {
			a.close()
			return nil, err
		}
		a.valkey = client
		a.checks["valkey"] = valkeyPinger{client: client}
		listing = cache.NewListingCache(client, cfg.Cache.TTL)
		logger.Info("published listing cache enabled", "ttl", cfg.Cache.TTL)
	}

	a.content = service.NewContentService(contentRepo, categoryRepo, listing, logger)
	a.category = service.NewCategoryService(categoryRepo, logger)
	return a, nil
}

// close releases every connection the app opened.
func (a *app) close() error {
	var errs []error
	if a.valkey != nil {
		if err := a.valkey.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close valkey: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

var (
	_ service.ContentRepository  = (*store.ContentStore)(nil)
	_ service.ContentRepository  = (*memory.ContentStore)(nil)
	_ service.CategoryRepository = (*store.CategoryStore)(nil)
	_ service.CategoryRepository = (*memory.CategoryStore)(nil)
	_ service.ListingCache       = (*cache.ListingCache)(nil)
)
