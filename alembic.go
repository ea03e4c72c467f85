// Package alembic provides a service-resolution container: a registry of
// "how to build a value" that produces instances under pluggable lifetime
// scopes, supports stack-based factory overrides for test isolation, and
// groups bindings under tags for ordered or alias-keyed multi-resolution.
package alembic

import "context"

// Factory constructs a service instance. A factory may resolve further
// bindings through the container it receives; it must pass the given context
// along so nested resolutions share the caller's resolution cycle.
type Factory func(ctx context.Context, c Container) (any, error)

// ResetKind selects what ResetAll discards.
type ResetKind int

const (
	// ResetRegistrations drops every factory override in the current
	// override frame, restoring original factories.
	ResetRegistrations ResetKind = iota

	// ResetScopes clears the container's scope caches. The process-wide
	// singleton cache is untouched; use [ResetSingletons] for that.
	ResetScopes

	// ResetEverything combines ResetRegistrations and ResetScopes.
	ResetEverything
)

// Container resolves instances from registered bindings.
type Container interface {
	// Register installs a binding for key. The first registration defines
	// the binding's factory and scope; registering an already-bound key
	// installs a factory override in the current override frame and evicts
	// any cached instance for key, so the next resolution reflects the new
	// factory. The scope is fixed by the defining registration.
	Register(key TypeKey, factory Factory, opts ...BindOption) error

	// Resolve returns the instance for key. An active override wins over
	// the original factory; either way the binding's scope decides whether
	// a cached instance is returned or a new one is constructed. Factory
	// errors propagate unchanged.
	Resolve(ctx context.Context, key TypeKey) (any, error)

	// Reset removes any override for key, restoring the original factory,
	// and evicts the scope-cache entry for key.
	Reset(key TypeKey)

	// ResetAll discards overrides, scope caches, or both.
	ResetAll(kind ResetKind)

	// Has reports whether a binding is registered for key.
	Has(key TypeKey) bool

	// Keys returns all registered binding keys.
	Keys() []TypeKey

	// Inspect returns diagnostic information about a binding.
	Inspect(key TypeKey) BindingInfo

	// PushOverrides saves the current override frame. Subsequent overrides
	// and resets mutate only the new frame.
	PushOverrides()

	// PopOverrides discards the current override frame and restores the
	// previous one. A no-op when only the base frame remains.
	PopOverrides()

	// Tag registers the binding identified by key under tag. Re-tagging the
	// same (tag, key) pair replaces its priority and alias.
	Tag(key TypeKey, tag Tag, opts ...TagOption) error

	// ResolveTagged resolves every binding tagged under tag, ordered by
	// ascending priority with insertion order breaking ties. Entries whose
	// binding is gone or whose factory fails are skipped; their errors are
	// aggregated in the returned error alongside the partial results.
	ResolveTagged(ctx context.Context, tag Tag) ([]any, error)

	// ResolveTaggedAssociative resolves the aliased bindings tagged under
	// tag into an alias-keyed map. Duplicate aliases are last-write-wins in
	// priority order. Skip semantics match ResolveTagged.
	ResolveTaggedAssociative(ctx context.Context, tag Tag) (map[string]any, error)

	// OnCreated registers a hook fired when a resolution constructs a new
	// instance.
	OnCreated(hook Hook)

	// OnCached registers a hook fired when a resolution returns a cached
	// instance.
	OnCached(hook Hook)
}

// New creates a new container.
func New(opts ...ContainerOption) Container {
	return newContainer(opts...)
}
