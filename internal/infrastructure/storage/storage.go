// Package storage selects and opens the key-value backend that holds the
// client's token, session and preferences.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/ports"
	mongodb "github.com/oaworkspace/oaclient/internal/infrastructure/db/mongo"
	redisdb "github.com/oaworkspace/oaclient/internal/infrastructure/db/redis"
)

// Supported drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// Config selects a driver and carries the settings of each.
type Config struct {
	Driver    string
	Path      string
	Secret    string
	Namespace string
	Redis     redisdb.Config
	Mongo     mongodb.Config
}

// Backend is an opened store plus the function that releases it.
type Backend struct {
	Store ports.KeyValueStore
	Close func(ctx context.Context) error
}

func noClose(context.Context) error { return nil }

// Open connects the configured driver.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Backend, error) {
	log = log.With().Str("storage_driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case DriverMemory:
		return &Backend{Store: NewMemory(), Close: noClose}, nil

	case DriverFile, "":
		f, err := OpenFile(cfg.Path, cfg.Secret, log)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", cfg.Path).Bool("encrypted", cfg.Secret != "").Msg("file storage ready")
		return &Backend{Store: f, Close: noClose}, nil

	case DriverRedis:
		store, err := redisdb.Open(ctx, cfg.Redis, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("redis storage ready")
		return &Backend{Store: store, Close: store.Close}, nil

	case DriverMongo:
		store, err := mongodb.Open(ctx, cfg.Mongo, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("database", cfg.Mongo.Database).Msg("mongo storage ready")
		return &Backend{Store: store, Close: store.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
