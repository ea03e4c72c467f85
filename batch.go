package alembic

import "context"

// BindingDef holds configuration for a binding to be registered.
type BindingDef struct {
	Key     TypeKey
	Factory Factory
	Options []BindOption
}

// Bind creates a BindingDef for batch registration.
//
// Example:
//
//	alembic.RegisterAll(c,
//	    alembic.Bind("db", NewDatabase, alembic.Cached()),
//	    alembic.Bind("cache", NewCache, alembic.Shared()),
//	)
func Bind(key TypeKey, factory Factory, opts ...BindOption) BindingDef {
	return BindingDef{
		Key:     key,
		Factory: factory,
		Options: opts,
	}
}

// RegisterAll registers multiple bindings in a single call.
// Returns on the first registration that fails.
func RegisterAll(c Container, defs ...BindingDef) error {
	for _, def := range defs {
		if err := c.Register(def.Key, def.Factory, def.Options...); err != nil {
			return err
		}
	}

	return nil
}

// KeyedDef holds configuration for a typed binding to be registered.
type KeyedDef[T any] struct {
	Key     Key[T]
	Factory func(ctx context.Context, c Container) (T, error)
	Options []BindOption
}

// Keyed creates a KeyedDef for batch registration with typed keys.
func Keyed[T any](key Key[T], factory func(ctx context.Context, c Container) (T, error), opts ...BindOption) KeyedDef[T] {
	return KeyedDef[T]{
		Key:     key,
		Factory: factory,
		Options: opts,
	}
}

// RegisterKeyed registers multiple typed bindings in a single call.
//
// Example:
//
//	var (
//	    DatabaseKey = alembic.NewKey[*Database]("database")
//	    CacheKey    = alembic.NewKey[*Cache]("cache")
//	)
//
//	err := alembic.RegisterKeyed(c,
//	    alembic.Keyed(DatabaseKey, NewDatabase, alembic.Cached()),
//	    alembic.Keyed(CacheKey, NewCache, alembic.Cached()),
//	)
func RegisterKeyed[T any](c Container, defs ...KeyedDef[T]) error {
	for _, def := range defs {
		if err := RegisterKey(c, def.Key, def.Factory, def.Options...); err != nil {
			return err
		}
	}

	return nil
}
