package alembic

import (
	"context"
	"sync"
)

// resolutionCycle is the transient cache backing Graph-scoped bindings. One is
// created when the outermost Resolve call enters and is discarded, success or
// failure, when that call returns. Nested resolutions triggered by a factory
// carry the same cycle through their context, so diamond-shaped dependency
// graphs deduplicate to one instance per key within a single root call-tree.
//
// The cycle travels in a context value rather than any ambient state, so
// unrelated concurrent root resolutions can never share a cache or observe
// each other's transitions.
type resolutionCycle struct {
	mu        sync.Mutex
	instances map[TypeKey]any
}

type cycleCtxKey struct{}

// enterCycle attaches a fresh cycle to ctx unless one is already active.
func enterCycle(ctx context.Context) context.Context {
	if ctx.Value(cycleCtxKey{}) != nil {
		return ctx
	}

	return context.WithValue(ctx, cycleCtxKey{}, &resolutionCycle{
		instances: make(map[TypeKey]any),
	})
}

func cycleFrom(ctx context.Context) *resolutionCycle {
	cycle, _ := ctx.Value(cycleCtxKey{}).(*resolutionCycle)

	return cycle
}

func (cy *resolutionCycle) cached(key TypeKey) (any, bool) {
	cy.mu.Lock()
	defer cy.mu.Unlock()

	instance, ok := cy.instances[key]

	return instance, ok
}

func (cy *resolutionCycle) store(key TypeKey, instance any) (any, bool) {
	cy.mu.Lock()
	defer cy.mu.Unlock()

	if existing, ok := cy.instances[key]; ok {
		return existing, false
	}

	cy.instances[key] = instance

	return instance, true
}

// graphScope caches in the active resolution cycle. With no cycle active it
// behaves like uniqueScope.
type graphScope struct{}

func (graphScope) Cached(ctx context.Context, key TypeKey) (any, bool) {
	cycle := cycleFrom(ctx)
	if cycle == nil {
		return nil, false
	}

	return cycle.cached(key)
}

func (graphScope) Store(ctx context.Context, key TypeKey, instance any) (any, bool) {
	cycle := cycleFrom(ctx)
	if cycle == nil {
		return instance, true
	}

	return cycle.store(key, instance)
}

// Evict is a no-op: cycle entries live for one root resolution only.
func (graphScope) Evict(TypeKey) {}

func (graphScope) Reset() {}
