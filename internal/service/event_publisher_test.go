package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	contracts "habittracker/contracts/mq"
	"habittracker/internal/habit"
	"habittracker/internal/model"
	"habittracker/pkg/kv"
	"habittracker/pkg/trace"
)

type published struct {
	routingKey string
	payload    any
	traceID    string
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, published{routingKey, payload, trace.FromContext(ctx)})
	return nil
}

func (f *fakePublisher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for _, p := range f.sent {
		keys = append(keys, p.routingKey)
	}
	return keys
}

func TestEventPublisherPayloads(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	ctx := trace.WithContext(context.Background(), "trace-1")

	tests := []struct {
		name  string
		event habit.Event
		want  any
	}{
		{
			name:  "created",
			event: habit.Event{Kind: habit.EventHabitCreated, HabitID: "h1", Name: "Read", At: at},
			want:  contracts.HabitCreatedPayload{HabitID: "h1", Name: "Read", CreatedAt: at, TraceID: "trace-1"},
		},
		{
			name: "toggled",
			event: habit.Event{
				Kind: habit.EventCompletionToggled, HabitID: "h1", Name: "Read",
				Day: model.Date(2024, time.January, 2), Completed: true, At: at,
			},
			want: contracts.CompletionToggledPayload{
				HabitID: "h1", Name: "Read", Day: "2024-01-02", Completed: true, ToggledAt: at, TraceID: "trace-1",
			},
		},
		{
			name:  "deleted",
			event: habit.Event{Kind: habit.EventHabitDeleted, HabitID: "h1", Name: "Read", At: at},
			want:  contracts.HabitDeletedPayload{HabitID: "h1", Name: "Read", DeletedAt: at, TraceID: "trace-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakePublisher{}
			p := NewEventPublisher(fake, zap.NewNop())

			require.NoError(t, p.Notify(ctx, tt.event))
			require.Len(t, fake.sent, 1)
			assert.Equal(t, string(tt.event.Kind), fake.sent[0].routingKey)
			assert.Equal(t, tt.want, fake.sent[0].payload)
		})
	}
}

func TestEventPublisherAddsTraceID(t *testing.T) {
	t.Parallel()

	fake := &fakePublisher{}
	p := NewEventPublisher(fake, zap.NewNop())
	require.NoError(t, p.Notify(context.Background(), habit.Event{Kind: habit.EventHabitDeleted, HabitID: "h1"}))

	require.Len(t, fake.sent, 1)
	payload := fake.sent[0].payload.(contracts.HabitDeletedPayload)
	assert.NotEmpty(t, payload.TraceID)
	assert.Equal(t, payload.TraceID, fake.sent[0].traceID)
}

func TestEventPublisherErrors(t *testing.T) {
	t.Parallel()

	down := errors.New("channel closed")
	p := NewEventPublisher(&fakePublisher{err: down}, zap.NewNop())
	err := p.Notify(context.Background(), habit.Event{Kind: habit.EventHabitCreated, HabitID: "h1"})
	assert.ErrorIs(t, err, down)

	p = NewEventPublisher(&fakePublisher{}, zap.NewNop())
	err = p.Notify(context.Background(), habit.Event{Kind: "habit.renamed"})
	assert.ErrorContains(t, err, "unknown habit event kind")
}

func TestEventPublisherAsStoreNotifier(t *testing.T) {
	t.Parallel()

	fake := &fakePublisher{}
	store := habit.NewStore(kv.NewMemory(), zap.NewNop()).
		WithNotifier(NewEventPublisher(fake, zap.NewNop()))
	store.Load(context.Background())

	h, ok := store.AddHabit("Read")
	require.True(t, ok)
	store.Wait()
	_, ok = store.ToggleToday(h.ID)
	require.True(t, ok)
	store.Wait()
	require.True(t, store.DeleteHabit(h.ID))
	store.Wait()

	assert.Equal(t, []string{"habit.created", "habit.completion.toggled", "habit.deleted"}, fake.keys())
}
