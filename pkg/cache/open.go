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

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Config selects and configures a cache backend.
type Config struct {
	Backend   string
	Dir       string // file backend
	RedisAddr string
	MongoURI  string
	MongoDB   string
}

// Open creates the cache selected by cfg. An empty backend name selects the
// file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDB)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
