package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HabitID is opaque. Older snapshots stored numeric ids, so the JSON
// decoder accepts a number as well as a string.
type HabitID string

func (id *HabitID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = HabitID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("habit id must be a string or number: %w", err)
	}
	*id = HabitID(n.String())
	return nil
}

type Habit struct {
	ID          HabitID      `json:"id"`
	Name        string       `json:"name"`
	Completions map[Day]bool `json:"completions"`
}

// Completed reports whether the habit was done on d.
func (h Habit) Completed(d Day) bool {
	return h.Completions[d]
}

// Clone returns a copy that shares no map with h.
func (h Habit) Clone() Habit {
	c := h
	c.Completions = make(map[Day]bool, len(h.Completions))
	for d, ok := range h.Completions {
		if ok {
			c.Completions[d] = true
		}
	}
	return c
}
