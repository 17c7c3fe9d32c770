package augment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/load"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &MemoryCache{now: func() time.Time { return now }}

	v, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	t.Run("SetGet", func(t *testing.T) {
		value := []byte("type A")
		require.NoError(t, c.Set(ctx, "a", value, 0))
		value[0] = 'X'
		v, err := c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("type A"), v)
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "b", []byte("b"), time.Second))
		v, err := c.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), v)

		now = now.Add(time.Second)
		v, err = c.Get(ctx, "b")
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("DeleteClear", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "c", []byte("c"), 0))
		require.NoError(t, c.Delete(ctx, "c"))
		v, err := c.Get(ctx, "c")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, c.Clear(ctx))
		assert.Zero(t, c.Len())
	})
}

func TestFingerprint(t *testing.T) {
	schema := func() *load.Schema {
		return &load.Schema{Types: []*load.Type{
			{Name: "Movie", Fields: []*load.Field{{Name: "title", Type: "String!"}}},
		}}
	}
	base, err := Fingerprint(schema(), nil)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	same, err := Fingerprint(schema(), gen.MustNewConfig())
	require.NoError(t, err)
	assert.Equal(t, base, same, "nil config and default config are equivalent")

	tests := []struct {
		name   string
		schema *load.Schema
		config *gen.Config
	}{
		{"header", schema(), gen.MustNewConfig(gen.WithHeader("generated"))},
		{"indent", schema(), gen.MustNewConfig(gen.WithIndent("\t"))},
		{"feature", schema(), gen.MustNewConfig(gen.WithoutFeatures(gen.FeatureMutations.Name))},
		{"schema", &load.Schema{Types: []*load.Type{
			{Name: "Movie", Fields: []*load.Field{{Name: "title", Type: "String"}}},
		}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := Fingerprint(tt.schema, tt.config)
			require.NoError(t, err)
			assert.NotEqual(t, base, fp)
		})
	}
}
