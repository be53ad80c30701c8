package pages

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/graphsync/internal/ctxlog"
)

// Source supplies page settings snapshots.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// StaticSource always returns the same snapshot.
type StaticSource struct {
	Snapshot Snapshot
}

// Load implements Source.
func (s StaticSource) Load(context.Context) (Snapshot, error) {
	return s.Snapshot, nil
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Snapshot, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context) (Snapshot, error) {
	return f(ctx)
}

// Subscriber is notified with the new registry after every successful reload.
type Subscriber func(ctx context.Context, reg *Registry)

// Manager owns the current Registry. Readers call Current; Reload swaps in a
// new snapshot and notifies subscribers in registration order.
type Manager struct {
	source Source

	mu      sync.RWMutex
	current *Registry
	subs    []Subscriber
}

// NewManager loads the initial registry from source.
func NewManager(ctx context.Context, source Source) (*Manager, error) {
	snap, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load page settings: %w", err)
	}
	reg, err := NewRegistry(snap, 1)
	if err != nil {
		return nil, fmt.Errorf("invalid page settings: %w", err)
	}
	return &Manager{source: source, current: reg}, nil
}

// Current returns the registry in effect.
func (m *Manager) Current() *Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers fn for future reloads.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Reload reads the source again. On error the current registry stays in
// effect and subscribers are not called.
func (m *Manager) Reload(ctx context.Context) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	snap, err := m.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload page settings: %w", err)
	}

	m.mu.Lock()
	reg, err := NewRegistry(snap, m.current.Revision()+1)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("invalid page settings: %w", err)
	}
	m.current = reg
	subs := append([]Subscriber(nil), m.subs...)
	m.mu.Unlock()

	logger.Info("Page settings reloaded.", "revision", reg.Revision(), "pages", reg.Len())
	for _, fn := range subs {
		fn(ctx, reg)
	}
	return reg, nil
}
