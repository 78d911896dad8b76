package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryContract(t *testing.T) {
	testBackendContract(t, NewMemory())
}

func TestMemoryClosed(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	require.NoError(t, m.Close())
	ctx := context.Background()

	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, "k", "v"), ErrClosed)
	assert.ErrorIs(t, Ping(ctx, m), ErrClosed)
}

func TestMemoryHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()
	assert.ErrorIs(t, m.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

type bareBackend struct{ Backend }

func TestPingWithoutPinger(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Ping(context.Background(), bareBackend{}))
}
