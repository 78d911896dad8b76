// Package habit holds the habit store: pure state commands, derived
// statistics, the snapshot codec and the Store that persists it all through
// a key-value backend.
package habit

import (
	"strings"
	"time"

	"habittracker/internal/model"
)

// State is an immutable ordered list of habits. Commands never modify a
// State in place; they return a new one, so a State handed to a pending
// save stays valid.
type State struct {
	habits []model.Habit
}

// NewState copies habits into a State.
func NewState(habits []model.Habit) State {
	cp := make([]model.Habit, len(habits))
	for i, h := range habits {
		cp[i] = h.Clone()
	}
	return State{habits: cp}
}

// Effect is what a command asks its caller to do after swapping state in.
// The zero Effect means the command was a no-op.
type Effect struct {
	Save  bool
	Event *Event
}

// Len returns the number of habits.
func (s State) Len() int {
	return len(s.habits)
}

// Habits returns deep copies in display order.
func (s State) Habits() []model.Habit {
	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// Find looks a habit up by id.
func (s State) Find(id model.HabitID) (model.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// Add appends a habit named name with id. A name that is blank after
// trimming, or an id already in use, makes it a no-op.
func (s State) Add(id model.HabitID, name string, at time.Time) (State, Effect) {
	name = strings.TrimSpace(name)
	if name == "" || id == "" || s.index(id) >= 0 {
		return s, Effect{}
	}

	h := model.Habit{ID: id, Name: name, Completions: map[model.Day]bool{}}
	next := make([]model.Habit, len(s.habits), len(s.habits)+1)
	copy(next, s.habits)
	next = append(next, h)

	return State{habits: next}, Effect{
		Save:  true,
		Event: &Event{Kind: EventHabitCreated, HabitID: id, Name: name, At: at},
	}
}

// Toggle flips the completion of day for the habit id. Unknown ids are a
// no-op.
func (s State) Toggle(id model.HabitID, day model.Day, at time.Time) (State, Effect) {
	i := s.index(id)
	if i < 0 {
		return s, Effect{}
	}

	h := s.habits[i].Clone()
	completed := !h.Completions[day]
	if completed {
		h.Completions[day] = true
	} else {
		delete(h.Completions, day)
	}

	next := make([]model.Habit, len(s.habits))
	copy(next, s.habits)
	next[i] = h

	return State{habits: next}, Effect{
		Save: true,
		Event: &Event{
			Kind:      EventCompletionToggled,
			HabitID:   id,
			Name:      h.Name,
			Day:       day,
			Completed: completed,
			At:        at,
		},
	}
}

// Delete removes the habit id. Unknown ids are a no-op.
func (s State) Delete(id model.HabitID, at time.Time) (State, Effect) {
	i := s.index(id)
	if i < 0 {
		return s, Effect{}
	}

	name := s.habits[i].Name
	next := make([]model.Habit, 0, len(s.habits)-1)
	next = append(next, s.habits[:i]...)
	next = append(next, s.habits[i+1:]...)

	return State{habits: next}, Effect{
		Save:  true,
		Event: &Event{Kind: EventHabitDeleted, HabitID: id, Name: name, At: at},
	}
}

func (s State) index(id model.HabitID) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}
