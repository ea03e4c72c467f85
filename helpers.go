package alembic

import (
	"context"
	"fmt"
)

// Resolve resolves a binding with type safety.
func Resolve[T any](ctx context.Context, c Container, key TypeKey) (T, error) {
	var zero T

	instance, err := c.Resolve(ctx, key)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(key, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](ctx context.Context, c Container, key TypeKey) T {
	instance, err := Resolve[T](ctx, c, key)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", key, err))
	}

	return instance
}

// RegisterUnique is a convenience wrapper for unique-scoped bindings.
func RegisterUnique[T any](c Container, key TypeKey, factory func(ctx context.Context, c Container) (T, error)) error {
	return c.Register(key, wrapFactory(factory), Unique())
}

// RegisterCached is a convenience wrapper for cached bindings.
func RegisterCached[T any](c Container, key TypeKey, factory func(ctx context.Context, c Container) (T, error)) error {
	return c.Register(key, wrapFactory(factory), Cached())
}

// RegisterShared is a convenience wrapper for weakly-shared bindings.
func RegisterShared[T any](c Container, key TypeKey, factory func(ctx context.Context, c Container) (T, error)) error {
	return c.Register(key, wrapFactory(factory), Shared())
}

// RegisterSingleton is a convenience wrapper for process-wide singletons.
func RegisterSingleton[T any](c Container, key TypeKey, factory func(ctx context.Context, c Container) (T, error)) error {
	return c.Register(key, wrapFactory(factory), Singleton())
}

// RegisterGraph is a convenience wrapper for graph-scoped bindings.
func RegisterGraph[T any](c Container, key TypeKey, factory func(ctx context.Context, c Container) (T, error)) error {
	return c.Register(key, wrapFactory(factory), Graph())
}

// RegisterValue registers a pre-built instance under Cached scope.
func RegisterValue[T any](c Container, key TypeKey, instance T) error {
	return c.Register(key, func(context.Context, Container) (any, error) {
		return instance, nil
	}, Cached())
}

// ResolveTagged resolves every binding under tag with element type safety.
// Entries that resolve to a different type are skipped, matching the
// best-effort semantics of Container.ResolveTagged.
func ResolveTagged[T any](ctx context.Context, c Container, tag Tag) ([]T, error) {
	instances, err := c.ResolveTagged(ctx, tag)

	typed := make([]T, 0, len(instances))

	for _, instance := range instances {
		v, ok := instance.(T)
		if !ok {
			continue
		}

		typed = append(typed, v)
	}

	return typed, err
}

func wrapFactory[T any](factory func(ctx context.Context, c Container) (T, error)) Factory {
	return func(ctx context.Context, c Container) (any, error) {
		return factory(ctx, c)
	}
}
