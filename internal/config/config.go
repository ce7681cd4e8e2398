package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var ErrInvalid = errors.New("invalid config")

type ServiceConfig struct {
	Name              string       `toml:"name"`
	Addr              string       `toml:"addr"`
	CorsOrigins       []string     `toml:"cors_origins"`
	AdminToken        string       `toml:"admin_token"`
	ExcludedPostTypes []string     `toml:"excluded_post_types"`
	MaxBodyBytes      int64        `toml:"max_body_bytes"`
	Store             StoreConfig  `toml:"store"`
	Engine            EngineConfig `toml:"engine"`
}

type StoreConfig struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	Watch        bool   `toml:"watch"`
	SeedDefaults *bool  `toml:"seed_defaults"`
}

type EngineConfig struct {
	SkipDecorated *bool `toml:"skip_decorated"`
}

// SeedDefaultsEnabled reports whether an empty store gets the default terms.
func (s StoreConfig) SeedDefaultsEnabled() bool {
	return s.SeedDefaults == nil || *s.SeedDefaults
}

// SkipDecoratedEnabled reports whether already-decorated terms are left alone.
func (e EngineConfig) SkipDecoratedEnabled() bool {
	return e.SkipDecorated == nil || *e.SkipDecorated
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:  "petty",
		Addr:  ":9200",
		Store: StoreConfig{Driver: DriverMemory},
	}
}

func LoadServiceConfig(path string) (ServiceConfig, error) {
	cfg := DefaultServiceConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServiceConfig{}, err
	}
	applyDefaults(&cfg)
	if err := ValidateServiceConfig(cfg); err != nil {
		return ServiceConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *ServiceConfig) {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "petty"
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":9200"
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverMemory
	}
	cfg.Store.Path = strings.TrimSpace(cfg.Store.Path)
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServiceConfig(cfg ServiceConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("%w: missing addr", ErrInvalid)
	}
	if cfg.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: max_body_bytes must not be negative", ErrInvalid)
	}
	if err := ValidateStoreConfig(cfg.Store); err != nil {
		return fmt.Errorf("%w: store: %v", ErrInvalid, err)
	}
	return nil
}

func ValidateStoreConfig(cfg StoreConfig) error {
	switch cfg.Driver {
	case DriverMemory:
		if cfg.Watch {
			return fmt.Errorf("watch requires the file driver")
		}
		return nil
	case DriverFile:
		if cfg.Path == "" {
			return fmt.Errorf("path is required for driver %q", cfg.Driver)
		}
		switch strings.ToLower(filepath.Ext(cfg.Path)) {
		case ".toml", ".yaml", ".yml":
		default:
			return fmt.Errorf("unsupported term file extension %q", filepath.Ext(cfg.Path))
		}
		return nil
	case DriverSQLite:
		if cfg.Path == "" {
			return fmt.Errorf("path is required for driver %q", cfg.Driver)
		}
		if cfg.Watch {
			return fmt.Errorf("watch requires the file driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
