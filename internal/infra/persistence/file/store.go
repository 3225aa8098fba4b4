// Package file provides a flat-file persistent store that snapshots the
// reservation set as JSON after every successful transaction. The write is
// a full-file overwrite staged through a temp file and an atomic rename.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"innkeep/internal/infra/persistence/memory"
	"innkeep/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// Store persists the in-memory state to a single JSON file.
type Store struct {
	*memory.Store
	mu          sync.Mutex
	path        string
	loadWarning error
}

// NewStore constructs a file-backed persistent store. Absent, unreadable,
// or corrupt stored state hydrates an empty reservation set; the condition
// is retained as an informational load warning instead of failing startup.
func NewStore(path string, plan domain.SeedPlan, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "innkeep.json"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	mem := memory.NewStore(plan, engine)
	s := &Store{Store: mem, path: path}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.loadWarning = fmt.Errorf("read %s: %w, starting empty", s.path, err)
		return
	}
	var snapshot memory.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.loadWarning = fmt.Errorf("decode %s: %w, starting empty", s.path, err)
		return
	}
	s.ImportState(snapshot)
}

func (s *Store) persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".innkeep-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// RunInTransaction applies the provided function within a transaction, then
// snapshots state to the file if successful. A failed snapshot surfaces as
// a PersistenceError; the committed in-memory state is retained.
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

// Path returns the configured data file path.
func (s *Store) Path() string { return s.path }
