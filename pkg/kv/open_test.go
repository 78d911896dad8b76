package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habittracker/pkg/config"
)

func openWith(t *testing.T, mutate func(*config.Config)) (Backend, error) {
	t.Helper()
	cfg := config.Default()
	mutate(&cfg)
	b, closeFn, err := Open(context.Background(), &cfg, zap.NewNop())
	if err == nil {
		t.Cleanup(closeFn)
	}
	return b, err
}

func TestOpenDrivers(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"default is memory", func(*config.Config) {}},
		{"memory", func(c *config.Config) { c.Storage.Driver = "memory" }},
		{"sqlite", func(c *config.Config) {
			c.Storage.Driver = "sqlite"
			c.SQLite.Path = filepath.Join(t.TempDir(), "habits.db")
		}},
		{"redis", func(c *config.Config) {
			c.Storage.Driver = "redis"
			c.Redis.Addr = mr.Addr()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := openWith(t, tt.mutate)
			require.NoError(t, err)
			_, ok := b.(*Guarded)
			assert.True(t, ok, "backends are wrapped")

			ctx := context.Background()
			require.NoError(t, b.Set(ctx, "habits-data", "[]"))
			v, found, err := b.Get(ctx, "habits-data")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := openWith(t, func(c *config.Config) { c.Storage.Driver = "etcd" })
	assert.ErrorContains(t, err, `unknown storage driver "etcd"`)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = openWith(t, func(c *config.Config) {
		c.Storage.Driver = "redis"
		c.Redis.Addr = addr
	})
	assert.Error(t, err)
}
