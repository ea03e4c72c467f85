package alembic

import (
	"context"
	"reflect"
)

// TypeKey identifies the type of value a binding produces. It is supplied by
// the caller and treated as opaque by the container; any stable, unique
// derivation works. [KeyFor] offers a reflect-based derivation for callers
// that don't want to manage key strings by hand.
type TypeKey string

// Tag is a secondary grouping identity. Multiple independent bindings tagged
// under the same Tag can be resolved together as an ordered collection or an
// alias-keyed mapping.
type Tag string

// Key provides type-safe binding identification.
// Use NewKey or KeyFor to create typed keys for your bindings.
type Key[T any] struct {
	key TypeKey
}

// NewKey creates a new typed key.
// The type parameter T ensures type safety when registering and resolving.
//
// Example:
//
//	var DatabaseKey = NewKey[*Database]("database")
func NewKey[T any](name string) Key[T] {
	return Key[T]{key: TypeKey(name)}
}

// KeyFor derives a typed key from T's type name. The derivation is stable for
// the lifetime of the process and distinct for distinct types.
func KeyFor[T any]() Key[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()

	return Key[T]{key: TypeKey(t.String())}
}

// TypeKey returns the untyped key.
func (k Key[T]) TypeKey() TypeKey {
	return k.key
}

// RegisterKey registers a binding using a typed key.
//
// Example:
//
//	var DatabaseKey = NewKey[*Database]("database")
//	RegisterKey(c, DatabaseKey, func(ctx context.Context, c Container) (*Database, error) {
//	    return &Database{}, nil
//	}, Cached())
func RegisterKey[T any](c Container, key Key[T], factory func(ctx context.Context, c Container) (T, error), opts ...BindOption) error {
	// Wrap the typed factory in an untyped factory
	wrapped := func(ctx context.Context, c Container) (any, error) {
		return factory(ctx, c)
	}

	return c.Register(key.key, wrapped, opts...)
}

// ResolveKey resolves a binding using a typed key.
//
// Example:
//
//	db, err := ResolveKey(ctx, c, DatabaseKey)
func ResolveKey[T any](ctx context.Context, c Container, key Key[T]) (T, error) {
	instance, err := c.Resolve(ctx, key.key)
	if err != nil {
		var zero T

		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		var zero T

		return zero, ErrTypeMismatch(key.key, instance)
	}

	return typed, nil
}

// MustKey resolves a binding using a typed key and panics on error.
func MustKey[T any](ctx context.Context, c Container, key Key[T]) T {
	instance, err := ResolveKey(ctx, c, key)
	if err != nil {
		panic(err)
	}

	return instance
}

// HasKey checks whether a binding is registered for a typed key.
func HasKey[T any](c Container, key Key[T]) bool {
	return c.Has(key.key)
}
