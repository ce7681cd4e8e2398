package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pettyctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigDefaults(t *testing.T) {
	cfg, err := LoadServiceConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "petty" || cfg.Addr != ":9200" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Store.Driver != DriverMemory {
		t.Fatalf("unexpected driver: %q", cfg.Store.Driver)
	}
	if !cfg.Store.SeedDefaultsEnabled() {
		t.Fatalf("expected seed defaults enabled")
	}
	if !cfg.Engine.SkipDecoratedEnabled() {
		t.Fatalf("expected skip decorated enabled")
	}
}

func TestLoadServiceConfigTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pettyctl.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing config error")
	}

	cfg, err := LoadServiceConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Store.Driver != DriverFile || cfg.Store.Path != "terms.toml" || !cfg.Store.Watch {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %+v", cfg.CorsOrigins)
	}
}

func TestLoadServiceConfigOverrides(t *testing.T) {
	cfg, err := LoadServiceConfig(writeConfig(t, `
name = "brand"
addr = "127.0.0.1:9300"
admin_token = "secret"
excluded_post_types = ["attachment"]

[store]
driver = "SQLite"
path = "petty.db"
seed_defaults = false

[engine]
skip_decorated = false
`))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "brand" || cfg.Addr != "127.0.0.1:9300" || cfg.AdminToken != "secret" {
		t.Fatalf("unexpected service fields: %+v", cfg)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Fatalf("driver not normalized: %q", cfg.Store.Driver)
	}
	if cfg.Store.SeedDefaultsEnabled() {
		t.Fatalf("expected seed defaults disabled")
	}
	if cfg.Engine.SkipDecoratedEnabled() {
		t.Fatalf("expected skip decorated disabled")
	}
	if len(cfg.ExcludedPostTypes) != 1 || cfg.ExcludedPostTypes[0] != "attachment" {
		t.Fatalf("unexpected excluded post types: %+v", cfg.ExcludedPostTypes)
	}
}

func TestValidateStoreConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr bool
	}{
		{name: "memory", cfg: StoreConfig{Driver: DriverMemory}},
		{name: "memory watch", cfg: StoreConfig{Driver: DriverMemory, Watch: true}, wantErr: true},
		{name: "file toml", cfg: StoreConfig{Driver: DriverFile, Path: "terms.toml", Watch: true}},
		{name: "file yaml", cfg: StoreConfig{Driver: DriverFile, Path: "terms.yml"}},
		{name: "file json", cfg: StoreConfig{Driver: DriverFile, Path: "terms.json"}, wantErr: true},
		{name: "file no path", cfg: StoreConfig{Driver: DriverFile}, wantErr: true},
		{name: "sqlite", cfg: StoreConfig{Driver: DriverSQLite, Path: "petty.db"}},
		{name: "sqlite no path", cfg: StoreConfig{Driver: DriverSQLite}, wantErr: true},
		{name: "unknown", cfg: StoreConfig{Driver: "redis"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStoreConfig(tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadServiceConfigInvalid(t *testing.T) {
	_, err := LoadServiceConfig(writeConfig(t, `
[store]
driver = "file"
`))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := LoadServiceConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoadServiceConfigMaxBodyBytes(t *testing.T) {
	cfg, err := LoadServiceConfig(writeConfig(t, "max_body_bytes = 1048576\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("unexpected max_body_bytes: %d", cfg.MaxBodyBytes)
	}
	if _, err := LoadServiceConfig(writeConfig(t, "max_body_bytes = -1\n")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative max_body_bytes, got %v", err)
	}
}
