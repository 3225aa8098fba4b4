package core

import (
	"innkeep/internal/infra/persistence/sqlite"
	"innkeep/pkg/domain"
)

// NewSQLiteStore constructs a SQLite-backed persistent store using the
// provided file path (may be empty for default), seed plan, and rules engine.
func NewSQLiteStore(path string, plan SeedPlan, engine *domain.RulesEngine) (*sqlite.Store, error) {
	return sqlite.NewStore(path, plan, engine)
}
