package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/aretw0/urakawa/internal/config"
	"github.com/aretw0/urakawa/pkg/adapters/badger"
	"github.com/aretw0/urakawa/pkg/adapters/file"
	"github.com/aretw0/urakawa/pkg/adapters/memory"
	"github.com/aretw0/urakawa/pkg/adapters/redis"
	"github.com/aretw0/urakawa/pkg/adapters/sqlite"
	"github.com/aretw0/urakawa/pkg/persistence/middleware"
	"github.com/aretw0/urakawa/pkg/ports"
)

// Backend is an opened document store plus the locker that goes with it.
type Backend struct {
	Store ports.DocumentStore

	// Locker is nil for backends that only serve a single process.
	Locker ports.DistributedLocker

	close func() error
}

// Close releases the store's resources.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the store selected by cfg.Backend, wrapped in the
// encryption middleware when a key is configured.
func OpenBackend(cfg config.Store, logger *slog.Logger) (*Backend, error) {
	b, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.EncryptionKey == "" {
		return b, nil
	}
	mw, err := encryption(cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = mw(b.Store)
	return b, nil
}

func encryption(cfg config.Store) (middleware.Middleware, error) {
	decode := func(s string) ([]byte, error) {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode encryption key: %w", err)
		}
		return k, nil
	}
	var ec middleware.EncryptionConfig
	var err error
	if ec.ActiveKey, err = decode(cfg.EncryptionKey); err != nil {
		return nil, err
	}
	for _, s := range cfg.EncryptionFallbackKeys {
		k, err := decode(s)
		if err != nil {
			return nil, err
		}
		ec.FallbackKeys = append(ec.FallbackKeys, k)
	}
	return middleware.NewEncryption(ec)
}

func openBackend(cfg config.Store, logger *slog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{Store: memory.NewStore()}, nil

	case config.BackendFile:
		return &Backend{Store: file.New(cfg.Dir)}, nil

	case config.BackendRedis:
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithTTL(cfg.RedisTTL), redis.WithPrefix(prefix))
		return &Backend{
			Store:  s,
			Locker: redis.NewLocker(s.Client(), prefix),
			close:  s.Close,
		}, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: s, close: s.Close}, nil

	case config.BackendBadger:
		bc := badger.DefaultConfig(cfg.BadgerDir)
		if cfg.BadgerInMemory {
			bc = badger.InMemoryConfig()
		}
		bc.Logger = logger
		s, err := badger.Open(bc)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: s, close: s.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
