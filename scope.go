package alembic

import (
	"context"
	"sync"
)

// Scope is a pluggable lifetime strategy. A binding's scope decides whether a
// resolved instance is cached and for how long.
//
// Store follows store-if-absent semantics: when two resolutions race to
// populate the same key, only the first store wins and every caller observes
// the winning instance. Store returns the canonical instance and whether the
// given instance became canonical.
//
// Factories are never invoked while a scope lock is held, so a factory is free
// to resolve further bindings sharing the same scope without deadlocking.
type Scope interface {
	// Cached returns the instance cached for key, if any.
	Cached(ctx context.Context, key TypeKey) (any, bool)

	// Store caches instance for key unless an entry already exists.
	Store(ctx context.Context, key TypeKey, instance any) (any, bool)

	// Evict removes the cache entry for key.
	Evict(key TypeKey)

	// Reset removes every cache entry.
	Reset()
}

// =============================================================================
// UNIQUE
// =============================================================================

// uniqueScope never caches. Every resolution constructs a fresh instance.
type uniqueScope struct{}

func (uniqueScope) Cached(context.Context, TypeKey) (any, bool) {
	return nil, false
}

func (uniqueScope) Store(_ context.Context, _ TypeKey, instance any) (any, bool) {
	return instance, true
}

func (uniqueScope) Evict(TypeKey) {}

func (uniqueScope) Reset() {}

// =============================================================================
// CACHED (strong references)
// =============================================================================

// strongScope caches instances with strong references until evicted or reset.
type strongScope struct {
	mu        sync.RWMutex
	instances map[TypeKey]any
}

func newStrongScope() *strongScope {
	return &strongScope{
		instances: make(map[TypeKey]any),
	}
}

func (s *strongScope) Cached(_ context.Context, key TypeKey) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, ok := s.instances[key]

	return instance, ok
}

func (s *strongScope) Store(_ context.Context, key TypeKey, instance any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.instances[key]; ok {
		return existing, false
	}

	s.instances[key] = instance

	return instance, true
}

func (s *strongScope) Evict(key TypeKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.instances, key)
}

func (s *strongScope) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instances = make(map[TypeKey]any)
}
