package store

import (
	"context"
	"sync"

	"github.com/danmuck/petty/internal/terms"
)

// Memory is a process-local store. Contents are lost on exit.
type Memory struct {
	mu      sync.RWMutex
	mapping terms.Mapping
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{mapping: terms.Mapping{}}
}

func (s *Memory) Name() string { return "memory" }

func (s *Memory) Close() error { return nil }

func (s *Memory) Load(ctx context.Context) (terms.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapping.Clone(), nil
}

func (s *Memory) Save(ctx context.Context, m terms.Mapping) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.mapping = m.Normalize()
	s.mu.Unlock()
	return nil
}
