package core

import (
	"fmt"

	"innkeep/internal/infra/persistence/file"
	"innkeep/internal/infra/persistence/memory"
	"innkeep/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageFile     StorageDriver = "file"     // JSON flat file
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageOptions selects and parameterises a persistent store backend.
type StorageOptions struct {
	Driver      StorageDriver
	Path        string // file or sqlite path, backend defaults apply when empty
	PostgresDSN string
	Seed        SeedPlan
}

// OpenPersistentStore opens the backend described by the options, seeding
// the catalog from the plan. Defaults to sqlite when the driver is unset
// and to the stock ten-room plan when the seed is empty.
func OpenPersistentStore(opts StorageOptions, engine *domain.RulesEngine) (PersistentStore, error) {
	driver := opts.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	seed := opts.Seed
	if seed.Standard+seed.Deluxe+seed.Suite == 0 {
		seed = domain.DefaultSeedPlan()
	}
	switch driver {
	case StorageMemory:
		return memory.NewStore(seed, engine), nil
	case StorageFile:
		return file.NewStore(opts.Path, seed, engine)
	case StorageSQLite:
		return NewSQLiteStore(opts.Path, seed, engine)
	case StoragePostgres:
		return NewPostgresStore(opts.PostgresDSN, seed, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
