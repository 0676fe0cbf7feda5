package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`
	// Namespace prefixes every key; see [Config.Keyer].
	Namespace string       `toml:"namespace"`
	Dir       string       `toml:"dir"`
	Redis     RedisOptions `toml:"redis"`
	Mongo     MongoOptions `toml:"mongo"`
}

// Keyer returns the keyer matching cfg.Namespace.
func (cfg Config) Keyer() Keyer {
	return NewNamespacedKeyer(nil, cfg.Namespace)
}

// Open builds the backend named by cfg.Backend. An empty name means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.Mongo)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
