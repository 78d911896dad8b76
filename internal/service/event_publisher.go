package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	contracts "habittracker/contracts/mq"
	"habittracker/internal/habit"
	"habittracker/pkg/logger"
	"habittracker/pkg/metrics"
	"habittracker/pkg/trace"
)

// MessagePublisher 发布到消息队列，由 pkg/mq.Publisher 实现
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// EventPublisher 把习惯变更事件转成 MQ 消息，实现 habit.Notifier
type EventPublisher struct {
	publisher MessagePublisher
	logger    *zap.Logger
}

func NewEventPublisher(publisher MessagePublisher, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// Notify 发布一条事件，routing key 就是事件类型
func (p *EventPublisher) Notify(ctx context.Context, e habit.Event) error {
	ctx, traceID := trace.Ensure(ctx)

	payload, err := payloadFor(e, traceID)
	if err != nil {
		return err
	}

	err = p.publisher.Publish(ctx, string(e.Kind), payload)
	metrics.IncrementEventPublished(string(e.Kind), err)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Kind, err)
	}

	logger.WithTrace(ctx, p.logger).Debug("Habit event published",
		zap.String("kind", string(e.Kind)),
		zap.String("habit_id", string(e.HabitID)),
	)
	return nil
}

func payloadFor(e habit.Event, traceID string) (any, error) {
	switch e.Kind {
	case habit.EventHabitCreated:
		return contracts.HabitCreatedPayload{
			HabitID:   string(e.HabitID),
			Name:      e.Name,
			CreatedAt: e.At,
			TraceID:   traceID,
		}, nil
	case habit.EventCompletionToggled:
		return contracts.CompletionToggledPayload{
			HabitID:   string(e.HabitID),
			Name:      e.Name,
			Day:       e.Day.String(),
			Completed: e.Completed,
			ToggledAt: e.At,
			TraceID:   traceID,
		}, nil
	case habit.EventHabitDeleted:
		return contracts.HabitDeletedPayload{
			HabitID:   string(e.HabitID),
			Name:      e.Name,
			DeletedAt: e.At,
			TraceID:   traceID,
		}, nil
	default:
		return nil, fmt.Errorf("unknown habit event kind %q", e.Kind)
	}
}
