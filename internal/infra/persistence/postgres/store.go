// Package postgres provides a Postgres-backed persistent store that mirrors
// the in-memory semantics, snapshotting the reservation set after every
// successful transaction.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"innkeep/internal/infra/persistence/memory"
	"innkeep/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/innkeep?sslmode=disable"

	reservationsBucket = "reservations"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists state to Postgres while reusing the in-memory
// implementation for transactions.
type Store struct {
	*memory.Store
	db          *sql.DB
	mu          sync.Mutex
	loadWarning error
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN). It ensures the snapshot table exists and hydrates the
// in-memory store from any existing snapshot. An unreachable server is an
// environment failure and fails construction; a corrupt stored payload
// recovers to an empty reservation set with a load warning.
func NewStore(dsn string, plan domain.SeedPlan, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureStateTable(ctx, db); err != nil {
		return nil, err
	}
	mem := memory.NewStore(plan, engine)
	s := &Store{Store: mem, db: db}
	s.load(ctx)
	return s, nil
}

func ensureStateTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure state table: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, reservationsBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return
	}
	if err != nil {
		s.loadWarning = fmt.Errorf("select state: %w, starting empty", err)
		return
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		s.loadWarning = fmt.Errorf("decode reservations: %w, starting empty", err)
		return
	}
	s.ImportState(snapshot)
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES($1,$2)
		ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, reservationsBucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", reservationsBucket, err)
	}
	return nil
}

// RunInTransaction applies the provided function within a transaction, then
// snapshots to Postgres if successful. A failed snapshot surfaces as a
// PersistenceError; the committed in-memory state is retained.
func (s *Store) RunInTransaction(ctx context.Context, fn func(memory.Transaction) error) (memory.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(ctx); pErr != nil {
		return res, domain.PersistenceError{Err: pErr}
	}
	return res, nil
}

// LoadWarning reports the degraded-recovery condition hit during load, if any.
func (s *Store) LoadWarning() error { return s.loadWarning }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
