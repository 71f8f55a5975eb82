package rpgbot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/internal/gateways/database"
	"github.com/ellavondegurechaff/gorpg/internal/gateways/database/repositories"
	"github.com/ellavondegurechaff/gorpg/internal/gateways/mongostore"
)

// Storage is the opened character store for the configured driver.
// Exactly one of SQL and Mongo is set.
type Storage struct {
	Driver     string
	SQL        *database.DB
	Mongo      *mongostore.Store
	Characters characters.Repository
}

// OpenStorage connects to the configured database, creates the schema when it is relational
// and wraps the repository with the LRU cache when cache.size is positive.
func OpenStorage(ctx context.Context, cfg Config) (*Storage, error) {
	start := time.Now()
	s := &Storage{Driver: cfg.DB.Driver}

	switch cfg.DB.Driver {
	case DriverMongo:
		store, err := mongostore.Connect(ctx, cfg.DB.DSN, cfg.DB.Database)
		if err != nil {
			return nil, err
		}
		s.Mongo = store
		s.Characters = store
	default:
		db, err := database.New(ctx, database.DBConfig{
			Driver:       cfg.DB.Driver,
			Path:         cfg.DB.Path,
			DSN:          cfg.DB.DSN,
			PoolSize:     cfg.DB.PoolSize,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxLifetime:  cfg.DB.MaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if err = db.InitializeSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		s.SQL = db
		s.Characters = repositories.NewCharacterRepository(db.BunDB())
	}

	if cfg.Cache.Size > 0 {
		cached, err := repositories.NewCachedRepository(s.Characters, cfg.Cache.Size)
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.Characters = cached
	}

	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("driver", s.Driver),
		slog.Int("cache_size", cfg.Cache.Size),
		slog.Duration("took", time.Since(start)))
	return s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.Mongo != nil {
		return s.Mongo.Ping(ctx)
	}
	return s.SQL.Ping(ctx)
}

func (s *Storage) Close(ctx context.Context) {
	if s.Mongo != nil {
		if err := s.Mongo.Close(ctx); err != nil {
			slog.Error("Failed to disconnect from mongo", slog.String("type", "db"), slog.Any("error", err))
		}
		return
	}
	if s.SQL != nil {
		s.SQL.Close()
	}
}
