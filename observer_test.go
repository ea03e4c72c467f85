package alembic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOnCreated_FiresOnConstruction(t *testing.T) {
	c := New()

	var created []TypeKey

	c.OnCreated(func(key TypeKey, instance any) {
		created = append(created, key)
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc"), Cached()))

	_, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)

	assert.Equal(t, []TypeKey{"svc"}, created)
}

func TestOnCached_FiresOnCacheHit(t *testing.T) {
	c := New()

	var cached []TypeKey

	c.OnCached(func(key TypeKey, instance any) {
		cached = append(cached, key)
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc"), Cached()))

	_, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)
	assert.Empty(t, cached)

	_, err = c.Resolve(context.Background(), "svc")
	require.NoError(t, err)
	assert.Equal(t, []TypeKey{"svc"}, cached)
}

func TestOnCreated_UniqueFiresEveryResolve(t *testing.T) {
	c := New()
	created := 0

	c.OnCreated(func(TypeKey, any) {
		created++
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc"), Unique()))

	for i := 0; i < 3; i++ {
		_, err := c.Resolve(context.Background(), "svc")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, created)
}

func TestHooks_ReceiveInstance(t *testing.T) {
	c := New()

	var observed any

	c.OnCreated(func(key TypeKey, instance any) {
		observed = instance
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	val, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)
	assert.Same(t, val, observed)
}

func TestHooks_PanicSuppressed(t *testing.T) {
	c := New(WithLogger(zap.NewNop()))

	c.OnCreated(func(TypeKey, any) {
		panic("hook gone wrong")
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	val, err := c.Resolve(context.Background(), "svc")
	assert.NoError(t, err)
	assert.NotNil(t, val)
}

func TestHooks_HookErrorNeverAbortsResolution(t *testing.T) {
	c := New()
	fired := 0

	c.OnCreated(func(TypeKey, any) {
		fired++

		panic("first hook panics")
	})
	c.OnCreated(func(TypeKey, any) {
		fired++
	})

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	_, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)

	// Both hooks ran despite the first one panicking.
	assert.Equal(t, 2, fired)
}

func TestHooks_NoneRegistered(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	_, err := c.Resolve(context.Background(), "svc")
	assert.NoError(t, err)
}
