// Package view holds presentation state and read models built from the
// habit store: the selected habit and the rows and detail panes shown for it.
package view

import (
	"strings"

	"habittracker/internal/habit"
	"habittracker/internal/model"
)

// Selection is an optional reference to one habit. It stores only the id
// and is resolved against the current state on every access.
type Selection struct {
	id  model.HabitID
	set bool
}

func (s *Selection) Select(id model.HabitID) {
	s.id, s.set = id, true
}

func (s *Selection) Clear() {
	s.id, s.set = "", false
}

// ID returns the selected id without resolving it.
func (s *Selection) ID() (model.HabitID, bool) {
	return s.id, s.set
}

// Resolve looks the selection up in st. A selection that no longer
// resolves is cleared.
func (s *Selection) Resolve(st habit.State) (model.Habit, bool) {
	if !s.set {
		return model.Habit{}, false
	}
	h, ok := st.Find(s.id)
	if !ok {
		s.Clear()
	}
	return h, ok
}

// Forget clears the selection if it points at id. Call it after deleting id.
func (s *Selection) Forget(id model.HabitID) {
	if s.set && s.id == id {
		s.Clear()
	}
}

// Lookup finds a habit by exact id, then by case-insensitive name.
func Lookup(st habit.State, ref string) (model.Habit, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Habit{}, false
	}
	if h, ok := st.Find(model.HabitID(ref)); ok {
		return h, true
	}
	for _, h := range st.Habits() {
		if strings.EqualFold(h.Name, ref) {
			return h, true
		}
	}
	return model.Habit{}, false
}

// Row is one line of the habit list.
type Row struct {
	ID             model.HabitID `json:"id"`
	Name           string        `json:"name"`
	CurrentStreak  int           `json:"current_streak"`
	CompletedToday bool          `json:"completed_today"`
	Selected       bool          `json:"selected,omitempty"`
}

// BuildRows lists habits in display order. sel may be nil.
func BuildRows(st habit.State, today model.Day, sel *Selection) []Row {
	var selected model.HabitID
	hasSel := false
	if sel != nil {
		selected, hasSel = sel.ID()
	}

	habits := st.Habits()
	rows := make([]Row, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, Row{
			ID:             h.ID,
			Name:           h.Name,
			CurrentStreak:  habit.Streak(h, today),
			CompletedToday: h.Completed(today),
			Selected:       hasSel && h.ID == selected,
		})
	}
	return rows
}

// Detail is the full pane for a single habit.
type Detail struct {
	ID   model.HabitID `json:"id"`
	Name string        `json:"name"`
	AsOf model.Day     `json:"as_of"`
	habit.Summary
}

// BuildDetail computes the statistics of h as seen on asOf. windowDays <= 0
// uses habit.DefaultWindowDays.
func BuildDetail(h model.Habit, asOf model.Day, windowDays int) Detail {
	if windowDays <= 0 {
		windowDays = habit.DefaultWindowDays
	}
	return Detail{
		ID:      h.ID,
		Name:    h.Name,
		AsOf:    asOf,
		Summary: habit.Summarize(h, asOf, windowDays),
	}
}
