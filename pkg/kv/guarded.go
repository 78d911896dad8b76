package kv

import (
	"context"
	"time"

	"go.uber.org/zap"

	"habittracker/pkg/circuitbreaker"
	"habittracker/pkg/logger"
	"habittracker/pkg/metrics"
)

// Guarded wraps a Backend with a circuit breaker, latency metrics and
// failure logging.
type Guarded struct {
	next    Backend
	driver  string
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
	now     func() time.Time
}

func NewGuarded(next Backend, driver string, cfg circuitbreaker.Config, log *zap.Logger) *Guarded {
	g := &Guarded{
		next:   next,
		driver: driver,
		logger: log.With(zap.String("driver", driver)),
		now:    time.Now,
	}
	g.breaker = circuitbreaker.NewCircuitBreaker(cfg).OnStateChange(func(from, to circuitbreaker.State) {
		g.logger.Warn("Storage circuit breaker state changed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	return g
}

func (g *Guarded) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := g.call(ctx, "get", key, func(ctx context.Context) error {
		var err error
		value, found, err = g.next.Get(ctx, key)
		return err
	})
	return value, found, err
}

func (g *Guarded) Set(ctx context.Context, key, value string) error {
	return g.call(ctx, "set", key, func(ctx context.Context) error {
		return g.next.Set(ctx, key, value)
	})
}

// Ping bypasses the breaker so readiness reflects the backend itself.
func (g *Guarded) Ping(ctx context.Context) error {
	return Ping(ctx, g.next)
}

// BreakerState 当前熔断器状态
func (g *Guarded) BreakerState() circuitbreaker.State {
	return g.breaker.State()
}

func (g *Guarded) call(ctx context.Context, op, key string, fn func(context.Context) error) error {
	start := g.now()
	err := g.breaker.Execute(ctx, fn)
	metrics.RecordKVOp(op, g.driver, err, g.now().Sub(start))
	if err != nil {
		retryable, errorType := Classify(err)
		metrics.IncrementKVError(g.driver, errorType)
		logger.WithTrace(ctx, g.logger).Error("Storage call failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.String("error_type", errorType),
			zap.Bool("retryable", retryable),
			zap.Error(err),
		)
	}
	return err
}
