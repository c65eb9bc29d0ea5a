// Package config loads CLI settings from a YAML file and URAKAWA_* environment
// variables, in that order of precedence from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/urakawa/internal/logging"
	"github.com/aretw0/urakawa/pkg/xuk"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "URAKAWA_"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// ErrInvalid is returned when the loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete CLI configuration.
type Config struct {
	LogLevel    string `mapstructure:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogJSON     bool   `mapstructure:"log_json" env:"LOG_JSON"`
	MetricsAddr string `mapstructure:"metrics_addr" env:"METRICS_ADDR" validate:"omitempty,hostname_port"`

	Store Store `mapstructure:"store" envPrefix:"STORE_"`
	Xuk   Xuk   `mapstructure:"xuk" envPrefix:"XUK_"`
}

// Store selects and configures the document store.
type Store struct {
	Backend string `mapstructure:"backend" env:"BACKEND" validate:"oneof=memory file redis sqlite badger"`

	Dir string `mapstructure:"dir" env:"DIR" validate:"required_if=Backend file"`

	RedisAddr     string        `mapstructure:"redis_addr" env:"REDIS_ADDR" validate:"required_if=Backend redis"`
	RedisPassword string        `mapstructure:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"redis_db" env:"REDIS_DB" validate:"gte=0"`
	RedisPrefix   string        `mapstructure:"redis_prefix" env:"REDIS_PREFIX"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl" env:"REDIS_TTL" validate:"gte=0"`

	SQLitePath string `mapstructure:"sqlite_path" env:"SQLITE_PATH" validate:"required_if=Backend sqlite"`

	BadgerDir      string `mapstructure:"badger_dir" env:"BADGER_DIR" validate:"required_if=Backend badger BadgerInMemory false"`
	BadgerInMemory bool   `mapstructure:"badger_in_memory" env:"BADGER_IN_MEMORY"`

	// EncryptionKey is a base64 AES-256 key. When set, documents are sealed
	// before they reach the backend.
	EncryptionKey          string   `mapstructure:"encryption_key" env:"ENCRYPTION_KEY" validate:"omitempty,base64"`
	EncryptionFallbackKeys []string `mapstructure:"encryption_fallback_keys" env:"ENCRYPTION_FALLBACK_KEYS" validate:"dive,base64"`
}

// Xuk holds codec settings.
type Xuk struct {
	Strict  bool   `mapstructure:"strict" env:"STRICT"`
	Indent  string `mapstructure:"indent" env:"INDENT"`
	BaseURI string `mapstructure:"base_uri" env:"BASE_URI" validate:"omitempty,uri"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: Store{
			Backend:     BackendFile,
			Dir:         ".urakawa/documents",
			RedisPrefix: "urakawa:doc:",
			SQLitePath:  ".urakawa/urakawa.db",
			BadgerDir:   ".urakawa/badger",
		},
		Xuk: Xuk{Indent: "  "},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Logger builds the application logger.
func (c Config) Logger() *slog.Logger {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level, logging.WithJSON(c.LogJSON))
}

// XukOptions translates the codec settings.
func (c Config) XukOptions() ([]xuk.Option, error) {
	opts := []xuk.Option{xuk.WithStrict(c.Xuk.Strict), xuk.WithIndent(c.Xuk.Indent)}
	if c.Xuk.BaseURI != "" {
		base, err := url.Parse(c.Xuk.BaseURI)
		if err != nil {
			return nil, fmt.Errorf("xuk base uri: %w", err)
		}
		opts = append(opts, xuk.WithBaseURI(base))
	}
	return opts, nil
}
