// Package kv implements the opaque get/set storage contract the habit store
// persists through, on top of memory, Redis, PostgreSQL and SQLite.
package kv

import (
	"context"
	"errors"
)

// Backend stores string values under string keys. It makes no atomicity,
// versioning or ordering promises.
type Backend interface {
	// Get returns found=false with a nil error when key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

var ErrClosed = errors.New("kv: backend closed")

// Ping checks b if it supports it and succeeds otherwise.
func Ping(ctx context.Context, b Backend) error {
	if p, ok := b.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
