package kv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"habittracker/pkg/circuitbreaker"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		errorType string
	}{
		{"nil", nil, false, ""},
		{"closed", fmt.Errorf("get: %w", ErrClosed), false, "backend_closed"},
		{"breaker open", circuitbreaker.ErrCircuitBreakerOpen, true, "breaker_open"},
		{"canceled", context.Canceled, false, "context_canceled"},
		{"deadline", fmt.Errorf("set: %w", context.DeadlineExceeded), true, "timeout"},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, true, "network_error"},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true, "db_locked"},
		{"connection text", errors.New("connection refused"), true, "db_connection_error"},
		{"other", errors.New("syntax error at or near"), false, "unknown_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retryable, errorType := Classify(tt.err)
			assert.Equal(t, tt.retryable, retryable)
			assert.Equal(t, tt.errorType, errorType)
		})
	}
}
