package kv

import (
	"context"
	"errors"
	"net"
	"strings"

	"habittracker/pkg/circuitbreaker"
)

// Classify 判断存储错误是否可重试，并返回用于日志和指标的错误类型
func Classify(err error) (retryable bool, errorType string) {
	if err == nil {
		return false, ""
	}

	switch {
	case errors.Is(err, ErrClosed):
		return false, "backend_closed"
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen):
		// 熔断器超时后会放行探测请求
		return true, "breaker_open"
	case errors.Is(err, context.Canceled):
		return false, "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return true, "timeout"
	}

	// Network errors - 可重试
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "database is locked"), strings.Contains(errStr, "sqlite_busy"):
		return true, "db_locked"
	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout"):
		// DB / Redis 连接问题 - 可重试
		return true, "db_connection_error"
	}

	// 默认：未知错误，保守处理 - 不重试
	return false, "unknown_error"
}
