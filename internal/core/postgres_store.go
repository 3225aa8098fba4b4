package core

import (
	"innkeep/internal/infra/persistence/postgres"
	"innkeep/pkg/domain"
)

// NewPostgresStore constructs a Postgres-backed store from the provided DSN.
func NewPostgresStore(dsn string, plan SeedPlan, engine *domain.RulesEngine) (*postgres.Store, error) {
	return postgres.NewStore(dsn, plan, engine)
}
