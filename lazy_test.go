package alembic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_ResolvesOnce(t *testing.T) {
	c := New()
	built := 0

	require.NoError(t, c.Register("svc", func(ctx context.Context, c Container) (any, error) {
		built++

		return &mockService{name: "svc"}, nil
	}, Unique()))

	lazy := NewLazy[*mockService](c, "svc")
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, TypeKey("svc"), lazy.Key())

	first, err := lazy.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, lazy.IsResolved())

	second, err := lazy.Get(context.Background())
	require.NoError(t, err)

	// Even for a unique-scoped binding, the lazy wrapper resolves once.
	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
}

func TestLazy_ErrorCached(t *testing.T) {
	c := New()

	lazy := NewLazy[*mockService](c, "missing")

	_, err := lazy.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, lazy.IsResolved())

	_, err = lazy.Get(context.Background())
	assert.Error(t, err)
}

func TestLazy_TypeMismatch(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", func(ctx context.Context, c Container) (any, error) {
		return "a string", nil
	}))

	lazy := NewLazy[*mockService](c, "svc")

	_, err := lazy.Get(context.Background())
	assert.Error(t, err)
}

func TestLazy_MustGetPanics(t *testing.T) {
	c := New()

	lazy := NewLazy[*mockService](c, "missing")

	assert.Panics(t, func() {
		lazy.MustGet(context.Background())
	})
}

func TestProvider_FreshInstanceEachCall(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("svc"), Unique()))

	provider := NewProvider[*mockService](c, "svc")
	assert.Equal(t, TypeKey("svc"), provider.Key())

	first, err := provider.Provide(context.Background())
	require.NoError(t, err)

	second, err := provider.Provide(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestProvider_MustProvidePanics(t *testing.T) {
	c := New()

	provider := NewProvider[*mockService](c, "missing")

	assert.Panics(t, func() {
		provider.MustProvide(context.Background())
	})
}
