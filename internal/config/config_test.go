package config

import (
	"os"
	"path/filepath"
	"testing"

	"innkeep/internal/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "innkeep.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INNKEEP_STORAGE_DRIVER", "INNKEEP_STORAGE_PATH", "INNKEEP_POSTGRES_DSN",
		"INNKEEP_BLOB_DRIVER", "INNKEEP_BLOB_FS_ROOT",
		"INNKEEP_ROOMS_STANDARD", "INNKEEP_ROOMS_DELUXE", "INNKEEP_ROOMS_SUITE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[storage]
driver = "file"
path = "ledger.json"

[blob]
driver = "memory"

[rooms]
standard = 2
deluxe = 1
suite = 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts := cfg.StorageOptions()
	if opts.Driver != core.StorageFile || opts.Path != "ledger.json" {
		t.Fatalf("unexpected storage options %+v", opts)
	}
	plan := cfg.SeedPlan()
	if plan.Standard != 2 || plan.Deluxe != 1 || plan.Suite != 1 {
		t.Fatalf("unexpected seed plan %+v", plan)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	plan := cfg.SeedPlan()
	if plan.Standard != 5 || plan.Deluxe != 3 || plan.Suite != 2 {
		t.Fatalf("expected stock plan got %+v", plan)
	}
	if cfg.StorageOptions().Driver != "" {
		t.Fatalf("expected empty driver default, got %q", cfg.Storage.Driver)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for explicit missing file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[storage]
driver = "file"
`)
	t.Setenv("INNKEEP_STORAGE_DRIVER", "sqlite")
	t.Setenv("INNKEEP_ROOMS_SUITE", "4")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Fatalf("expected env override, got %q", cfg.Storage.Driver)
	}
	if cfg.SeedPlan().Suite != 4 {
		t.Fatalf("expected suite override, got %+v", cfg.SeedPlan())
	}
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	if err := Validate(Config{Storage: StorageConfig{Driver: "tape"}}); err == nil {
		t.Fatalf("expected storage driver error")
	}
	if err := Validate(Config{Blob: BlobConfig{Driver: "tape"}}); err == nil {
		t.Fatalf("expected blob driver error")
	}
	if err := Validate(Config{Rooms: RoomsConfig{Standard: -1}}); err == nil {
		t.Fatalf("expected room count error")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "storage = [broken")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
