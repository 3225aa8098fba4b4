package core

import (
	"path/filepath"
	"testing"

	"innkeep/internal/infra/persistence/file"
	"innkeep/internal/infra/persistence/sqlite"
)

func TestOpenPersistentStoreMemory(t *testing.T) {
	store, err := OpenPersistentStore(StorageOptions{Driver: StorageMemory}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := len(store.ListRooms()); got != 10 {
		t.Fatalf("expected default ten-room catalog, got %d", got)
	}
}

func TestOpenPersistentStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store, err := OpenPersistentStore(StorageOptions{Driver: StorageFile, Path: path}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	fs, ok := store.(*file.Store)
	if !ok {
		t.Fatalf("expected file store, got %T", store)
	}
	if fs.Path() != path {
		t.Fatalf("unexpected path %q", fs.Path())
	}
}

func TestOpenPersistentStoreSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := OpenPersistentStore(StorageOptions{Driver: StorageSQLite, Path: path}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ss, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	defer func() { _ = ss.Close() }()
	if ss.Path() != path {
		t.Fatalf("unexpected path %q", ss.Path())
	}
}

func TestOpenPersistentStoreCustomSeed(t *testing.T) {
	store, err := OpenPersistentStore(StorageOptions{Driver: StorageMemory, Seed: SeedPlan{Standard: 1, Deluxe: 1, Suite: 1}}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := len(store.ListRooms()); got != 3 {
		t.Fatalf("expected 3 rooms, got %d", got)
	}
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	if _, err := OpenPersistentStore(StorageOptions{Driver: "cloudtape"}, nil); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
