package habit

import (
	"context"
	"time"

	"habittracker/internal/model"
)

type EventKind string

const (
	EventHabitCreated      EventKind = "habit.created"
	EventCompletionToggled EventKind = "habit.completion.toggled"
	EventHabitDeleted      EventKind = "habit.deleted"
)

// Event describes one effective mutation. Day and Completed are only set
// for EventCompletionToggled.
type Event struct {
	Kind      EventKind
	HabitID   model.HabitID
	Name      string
	Day       model.Day
	Completed bool
	At        time.Time
}

// Notifier receives events after the store has applied them. Delivery is
// best effort: errors are logged by the store and dropped.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}
