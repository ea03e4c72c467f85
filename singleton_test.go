package alembic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleton_SharedAcrossContainers(t *testing.T) {
	defer ResetSingletons()

	c1 := New()
	c2 := New()

	require.NoError(t, c1.Register("shared-db", serviceFactory("shared-db"), Singleton()))
	require.NoError(t, c2.Register("shared-db", serviceFactory("shared-db"), Singleton()))

	v1, err := c1.Resolve(context.Background(), "shared-db")
	require.NoError(t, err)

	v2, err := c2.Resolve(context.Background(), "shared-db")
	require.NoError(t, err)

	assert.Same(t, v1, v2)
}

func TestResetSingletons(t *testing.T) {
	defer ResetSingletons()

	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("svc"), Singleton()))

	first, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)

	ResetSingletons()

	second, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestSingleton_OverrideEvictsProcessWideEntry(t *testing.T) {
	defer ResetSingletons()

	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("original"), Singleton()))

	_, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)

	require.NoError(t, c.Register("svc", serviceFactory("override")))

	val, err := c.Resolve(context.Background(), "svc")
	require.NoError(t, err)
	assert.Equal(t, "override", val.(*mockService).name)
}
