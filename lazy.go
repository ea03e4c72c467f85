package alembic

import (
	"context"
	"fmt"
	"sync"
)

// Lazy wraps a binding that is resolved on first access.
// This is useful for breaking construction-order knots or deferring
// resolution of expensive bindings until they're actually needed.
type Lazy[T any] struct {
	container Container
	key       TypeKey
	once      sync.Once
	value     T
	err       error
	resolved  bool
}

// NewLazy creates a new lazy binding wrapper.
func NewLazy[T any](container Container, key TypeKey) *Lazy[T] {
	return &Lazy[T]{
		container: container,
		key:       key,
	}
}

// Get resolves the binding and returns it.
// The resolution happens only once; subsequent calls return the cached value.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		instance, err := l.container.Resolve(ctx, l.key)
		if err != nil {
			l.err = err

			return
		}

		typed, ok := instance.(T)
		if !ok {
			var zero T

			l.err = fmt.Errorf("lazy binding %s: expected type %T, got %T", l.key, zero, instance)

			return
		}

		l.value = typed
		l.resolved = true
	})

	return l.value, l.err
}

// MustGet resolves the binding and returns it, panicking on error.
func (l *Lazy[T]) MustGet(ctx context.Context) T {
	value, err := l.Get(ctx)
	if err != nil {
		panic(fmt.Sprintf("lazy binding %s failed: %v", l.key, err))
	}

	return value
}

// IsResolved returns true if the binding has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Key returns the key of the binding.
func (l *Lazy[T]) Key() TypeKey {
	return l.key
}

// Provider wraps a binding and resolves it on each access.
// Useful for unique-scoped bindings where a fresh instance is needed each time.
type Provider[T any] struct {
	container Container
	key       TypeKey
}

// NewProvider creates a new provider.
func NewProvider[T any](container Container, key TypeKey) *Provider[T] {
	return &Provider[T]{
		container: container,
		key:       key,
	}
}

// Provide resolves and returns an instance of the binding.
// Each call may return a different instance (if the binding is unique-scoped).
func (p *Provider[T]) Provide(ctx context.Context) (T, error) {
	instance, err := p.container.Resolve(ctx, p.key)
	if err != nil {
		var zero T

		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("provider %s: expected type %T, got %T", p.key, zero, instance)
	}

	return typed, nil
}

// MustProvide resolves and returns an instance, panicking on error.
func (p *Provider[T]) MustProvide(ctx context.Context) T {
	value, err := p.Provide(ctx)
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.key, err))
	}

	return value
}

// Key returns the key of the binding.
func (p *Provider[T]) Key() TypeKey {
	return p.key
}
