// Package sqlite provides the default durable backend. It persists the
// reservation set to a single SQLite table as a JSON payload, snapshotting
// the full state after every successful transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"innkeep/internal/infra/persistence/memory"
	"innkeep/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const reservationsBucket = "reservations"

// Store persists the in-memory state to SQLite.
type Store struct {
	*memory.Store
	db          *sql.DB
	mu          sync.Mutex
	path        string
	loadWarning error
}

// NewStore constructs a snapshotting SQLite-backed persistent store.
// Corrupt stored state never fails startup: an unreadable database file is
// moved aside and recreated, a corrupt payload hydrates an empty
// reservation set, and either condition is retained as an informational
// load warning.
func NewStore(path string, plan domain.SeedPlan, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "innkeep.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, warn, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	mem := memory.NewStore(plan, engine)
	s := &Store{Store: mem, db: db, path: path, loadWarning: warn}
	if warn == nil {
		s.load()
	}
	return s, nil
}

// openDatabase opens the database file and ensures the state table exists.
// A file sqlite cannot read is renamed to path+".corrupt" and replaced with
// a fresh database; the condition is reported as a load warning.
func openDatabase(path string) (*sql.DB, error, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	ddlErr := ensureStateTable(db)
	if ddlErr == nil {
		return db, nil, nil
	}
	_ = db.Close()
	if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
		return nil, nil, fmt.Errorf("set aside unreadable database %s: %w", path, renameErr)
	}
	db, err = sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("reopen sqlite: %w", err)
	}
	if err := ensureStateTable(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("recreate state table: %w", err)
	}
	warn := fmt.Errorf("unreadable database moved to %s.corrupt: %w, starting empty", path, ddlErr)
	return db, warn, nil
}

func ensureStateTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`)
	return err
}

func (s *Store) load() {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE bucket = ?`, reservationsBucket).Scan(&payload)
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

func (s *Store) persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)
		ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, reservationsBucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", reservationsBucket, err)
	}
	return nil
}

// RunInTransaction applies the provided function within a transaction, then
// snapshots state to SQLite if successful. A failed snapshot surfaces as a
// PersistenceError; the committed in-memory state is retained.
func (s *Store) RunInTransaction(ctx context.Context, fn func(memory.Transaction) error) (memory.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, domain.PersistenceError{Err: pErr}
	}
	return res, nil
}

// LoadWarning reports the degraded-recovery condition hit during load, if any.
func (s *Store) LoadWarning() error { return s.loadWarning }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
