package kv

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBackendContract 所有驱动共用的契约测试
func testBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, found, err := b.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "habits-data", `[{"id":"a"}]`))
		v, found, err := b.Get(ctx, "habits-data")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"a"}]`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "habits-data", "first"))
		require.NoError(t, b.Set(ctx, "habits-data", "second"))
		v, _, err := b.Get(ctx, "habits-data")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("empty value is still found", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "empty", ""))
		v, found, err := b.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "k1", "one"))
		require.NoError(t, b.Set(ctx, "k2", "two"))
		v, _, err := b.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "one", v)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, b.Set(ctx, "race", fmt.Sprintf("v%d", i)))
			}(i)
		}
		wg.Wait()
		_, found, err := b.Get(ctx, "race")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, b))
	})
}
