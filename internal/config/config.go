// Package config loads front-desk configuration from an optional TOML file
// with INNKEEP_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	env "github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"innkeep/internal/core"
	"innkeep/pkg/domain"
)

// DefaultPath is consulted when no explicit config path is given.
const DefaultPath = "innkeep.toml"

// Config is the full front-desk configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Blob    BlobConfig    `toml:"blob"`
	Rooms   RoomsConfig   `toml:"rooms"`
}

// StorageConfig selects the reservation store backend.
type StorageConfig struct {
	Driver      string `toml:"driver" env:"INNKEEP_STORAGE_DRIVER"`
	Path        string `toml:"path" env:"INNKEEP_STORAGE_PATH"`
	PostgresDSN string `toml:"postgres_dsn" env:"INNKEEP_POSTGRES_DSN"`
}

// BlobConfig selects the ledger archive backend. S3 settings ride on the
// INNKEEP_BLOB_S3_* variables read by the blob package itself.
type BlobConfig struct {
	Driver string `toml:"driver" env:"INNKEEP_BLOB_DRIVER"`
	FSRoot string `toml:"fs_root" env:"INNKEEP_BLOB_FS_ROOT"`
}

// RoomsConfig sizes the seeded catalog per category.
type RoomsConfig struct {
	Standard int `toml:"standard" env:"INNKEEP_ROOMS_STANDARD"`
	Deluxe   int `toml:"deluxe" env:"INNKEEP_ROOMS_DELUXE"`
	Suite    int `toml:"suite" env:"INNKEEP_ROOMS_SUITE"`
}

// Load reads the TOML file at path (DefaultPath when empty), applies
// environment overrides and validates the result. A missing file is not an
// error; defaults plus environment apply.
func Load(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// defaults only
	default:
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config env overrides: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and negative room counts.
func Validate(cfg Config) error {
	switch core.StorageDriver(strings.TrimSpace(cfg.Storage.Driver)) {
	case "", core.StorageMemory, core.StorageFile, core.StorageSQLite, core.StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	switch strings.TrimSpace(cfg.Blob.Driver) {
	case "", "fs", "s3", "memory":
	default:
		return fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
	if cfg.Rooms.Standard < 0 || cfg.Rooms.Deluxe < 0 || cfg.Rooms.Suite < 0 {
		return fmt.Errorf("room counts cannot be negative")
	}
	return nil
}

// StorageOptions converts the configuration into store options for
// core.OpenPersistentStore.
func (c Config) StorageOptions() core.StorageOptions {
	return core.StorageOptions{
		Driver:      core.StorageDriver(strings.TrimSpace(c.Storage.Driver)),
		Path:        c.Storage.Path,
		PostgresDSN: c.Storage.PostgresDSN,
		Seed:        c.SeedPlan(),
	}
}

// SeedPlan returns the configured catalog plan, falling back to the stock
// ten-room layout when no counts are set.
func (c Config) SeedPlan() domain.SeedPlan {
	plan := domain.SeedPlan{Standard: c.Rooms.Standard, Deluxe: c.Rooms.Deluxe, Suite: c.Rooms.Suite}
	if plan.Standard+plan.Deluxe+plan.Suite == 0 {
		return domain.DefaultSeedPlan()
	}
	return plan
}
