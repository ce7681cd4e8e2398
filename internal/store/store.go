package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/petty/internal/config"
	"github.com/danmuck/petty/internal/observability"
	"github.com/danmuck/petty/internal/terms"
)

var (
	ErrUnknownDriver     = errors.New("unknown store driver")
	ErrUnsupportedFormat = errors.New("unsupported term file format")
)

// Store loads and saves the whole term mapping. Load returns an empty
// mapping when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (terms.Mapping, error)
	Save(ctx context.Context, m terms.Mapping) error
}

// Backend is a Store with an identity and resources to release.
type Backend interface {
	Store
	Name() string
	Close() error
}

// Open builds the backend described by cfg, instrumented with metrics.
func Open(cfg config.StoreConfig) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory, "":
		b = NewMemory()
	case config.DriverFile:
		b, err = NewFile(cfg.Path)
	case config.DriverSQLite:
		b, err = OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return metered{next: b}, nil
}

type metered struct {
	next Backend
}

func (m metered) Name() string { return m.next.Name() }

func (m metered) Close() error { return m.next.Close() }

func (m metered) Load(ctx context.Context) (terms.Mapping, error) {
	start := time.Now()
	out, err := m.next.Load(ctx)
	observability.RecordStoreOp(m.next.Name(), "load", time.Since(start), err == nil)
	return out, err
}

func (m metered) Save(ctx context.Context, mapping terms.Mapping) error {
	start := time.Now()
	err := m.next.Save(ctx, mapping)
	observability.RecordStoreOp(m.next.Name(), "save", time.Since(start), err == nil)
	return err
}
