package alembic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
)

func TestResolveGeneric_Success(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	svc, err := Resolve[*mockService](context.Background(), c, "svc")
	require.NoError(t, err)
	assert.Equal(t, "svc", svc.name)
}

func TestResolveGeneric_TypeMismatch(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", serviceFactory("svc")))

	_, err := Resolve[string](context.Background(), c, "svc")
	require.Error(t, err)

	var mismatch *errs.Error
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "svc", mismatch.GetContext()["key"])
}

func TestMust_PanicsOnMissing(t *testing.T) {
	c := New()

	assert.Panics(t, func() {
		Must[*mockService](context.Background(), c, "missing")
	})
}

func TestRegisterConvenienceWrappers(t *testing.T) {
	c := New()

	require.NoError(t, RegisterUnique(c, "u", func(ctx context.Context, c Container) (*mockService, error) {
		return &mockService{name: "u"}, nil
	}))
	require.NoError(t, RegisterCached(c, "c", func(ctx context.Context, c Container) (*mockService, error) {
		return &mockService{name: "c"}, nil
	}))
	require.NoError(t, RegisterShared(c, "s", func(ctx context.Context, c Container) (*mockService, error) {
		return &mockService{name: "s"}, nil
	}))
	require.NoError(t, RegisterGraph(c, "g", func(ctx context.Context, c Container) (*mockService, error) {
		return &mockService{name: "g"}, nil
	}))

	assert.Equal(t, "unique", c.Inspect("u").Scope)
	assert.Equal(t, "cached", c.Inspect("c").Scope)
	assert.Equal(t, "shared", c.Inspect("s").Scope)
	assert.Equal(t, "graph", c.Inspect("g").Scope)
}

func TestRegisterValue(t *testing.T) {
	c := New()
	svc := &mockService{name: "prebuilt"}

	require.NoError(t, RegisterValue(c, "svc", svc))

	val, err := Resolve[*mockService](context.Background(), c, "svc")
	require.NoError(t, err)
	assert.Same(t, svc, val)
}

func TestResolveTaggedGeneric(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("a", serviceFactory("a")))
	require.NoError(t, c.Register("b", serviceFactory("b")))
	require.NoError(t, c.Register("s", func(ctx context.Context, c Container) (any, error) {
		return "not a mock", nil
	}))

	require.NoError(t, c.Tag("a", "handlers", WithPriority(1)))
	require.NoError(t, c.Tag("b", "handlers", WithPriority(2)))
	require.NoError(t, c.Tag("s", "handlers", WithPriority(3)))

	instances, err := ResolveTagged[*mockService](context.Background(), c, "handlers")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, "a", instances[0].name)
	assert.Equal(t, "b", instances[1].name)
}

func TestNewKey(t *testing.T) {
	key := NewKey[*mockService]("service")
	assert.Equal(t, TypeKey("service"), key.TypeKey())
}

func TestKeyFor_DistinctTypes(t *testing.T) {
	a := KeyFor[*mockService]()
	b := KeyFor[*holder]()
	c := KeyFor[*mockService]()

	assert.NotEqual(t, a.TypeKey(), b.TypeKey())
	assert.Equal(t, a.TypeKey(), c.TypeKey())
}

func TestRegisterKeyResolveKey(t *testing.T) {
	c := New()
	key := NewKey[*mockService]("svc")

	require.NoError(t, RegisterKey(c, key, func(ctx context.Context, c Container) (*mockService, error) {
		return &mockService{name: "svc"}, nil
	}, Cached()))

	assert.True(t, HasKey(c, key))

	svc, err := ResolveKey(context.Background(), c, key)
	require.NoError(t, err)
	assert.Equal(t, "svc", svc.name)

	again := MustKey(context.Background(), c, key)
	assert.Same(t, svc, again)
}

func TestMustKey_PanicsOnMissing(t *testing.T) {
	c := New()
	key := NewKey[*mockService]("missing")

	assert.Panics(t, func() {
		MustKey(context.Background(), c, key)
	})
}
