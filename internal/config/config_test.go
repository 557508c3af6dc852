package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesWithURI(t *testing.T) {
	cfg := Default()
	cfg.Mongo.URI = "mongodb://localhost:27017"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRequiresURI(t *testing.T) {
	t.Setenv("SCRIBE_MONGO_URI", "")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing mongo.uri")
	}
	if !strings.Contains(err.Error(), "mongo.uri") {
		t.Errorf("error %q should mention mongo.uri", err)
	}
}

func TestURIFallsBackToEnv(t *testing.T) {
	t.Setenv("SCRIBE_MONGO_URI", "mongodb://env-host:27017")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://env-host:27017" {
		t.Fatalf("uri = %q", cfg.Mongo.URI)
	}
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	cfg := Default()
	cfg.Mongo.URI = "mongodb://localhost"
	cfg.Archive.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestValidateRejectsCollectionCollision(t *testing.T) {
	cfg := Default()
	cfg.Mongo.URI = "mongodb://localhost"
	cfg.Mongo.SnapshotCollection = cfg.Mongo.MetadataCollection
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when collections collide")
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[mongo]
uri = "mongodb://localhost:27017"
database = "archivedb"

[archive]
assistant_name = "Helper"

[paths]
state_dir = "` + filepath.Join(dir, "state") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Mongo.Database != "archivedb" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.Archive.AssistantName != "Helper" {
		t.Errorf("assistant = %q", cfg.Archive.AssistantName)
	}
	// Unset sections keep defaults.
	if cfg.Mongo.GridFSPrefix != "pdfs" {
		t.Errorf("gridfs prefix = %q", cfg.Mongo.GridFSPrefix)
	}
	if !filepath.IsAbs(cfg.Paths.StateDir) {
		t.Errorf("state dir not absolute: %q", cfg.Paths.StateDir)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[mongo\nuri="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("SCRIBE_MONGO_URI", "mongodb://localhost:27017")
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample should exist")
	}
	if cfg.Archive.AssistantName != "SofIA" {
		t.Errorf("assistant = %q", cfg.Archive.AssistantName)
	}
}

func TestEnsureDirectoriesCreatesLockDir(t *testing.T) {
	cfg := Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(cfg.LockDir()); err != nil {
		t.Fatalf("lock dir missing: %v", err)
	}
}
