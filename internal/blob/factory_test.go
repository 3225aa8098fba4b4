package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_DRIVER", "")
	t.Setenv("INNKEEP_BLOB_FS_ROOT", filepath.Join(t.TempDir(), "archive"))
	store, err := Open(context.Background(), "", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("expected fs driver got %s", store.Driver())
	}
}

func TestOpenMemoryDriver(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_DRIVER", "memory")
	store, err := Open(context.Background(), "", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory driver got %s", store.Driver())
	}
}

func TestOpenConfigOverridesEnv(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_DRIVER", "s3")
	t.Setenv("INNKEEP_BLOB_FS_ROOT", filepath.Join(t.TempDir(), "env-root"))
	store, err := Open(context.Background(), "memory", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("config driver must win over env, got %s", store.Driver())
	}
}

func TestOpenConfigFSRoot(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_DRIVER", "")
	t.Setenv("INNKEEP_BLOB_FS_ROOT", "")
	root := filepath.Join(t.TempDir(), "cfg-root")
	store, err := Open(context.Background(), "fs", root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Put(context.Background(), "ledger/x.json", strings.NewReader("{}"), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "ledger", "x.json")); err != nil {
		t.Fatalf("blob should land under the configured root: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_DRIVER", "tape")
	if _, err := Open(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("INNKEEP_BLOB_S3_BUCKET", "")
	if _, err := Open(context.Background(), "s3", ""); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}
