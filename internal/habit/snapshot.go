package habit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"habittracker/internal/model"
)

// ErrInvalidSnapshot wraps every reason a stored blob cannot be used.
var ErrInvalidSnapshot = errors.New("invalid habit snapshot")

// EncodeSnapshot serializes habits as a JSON array of
// {id, name, completions} objects in display order.
func EncodeSnapshot(habits []model.Habit) ([]byte, error) {
	if habits == nil {
		habits = []model.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a blob written by EncodeSnapshot or by an older
// client (numeric ids, "Mon Jan 02 2006" day keys). False completion
// markers are dropped. Entries with an empty id, a blank name or a
// duplicate id make the whole snapshot invalid.
func DecodeSnapshot(data []byte) ([]model.Habit, error) {
	var habits []model.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	seen := make(map[model.HabitID]struct{}, len(habits))
	out := make([]model.Habit, 0, len(habits))
	for i, h := range habits {
		if h.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[h.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSnapshot, h.ID)
		}
		seen[h.ID] = struct{}{}

		h.Name = strings.TrimSpace(h.Name)
		if h.Name == "" {
			return nil, fmt.Errorf("%w: habit %q has a blank name", ErrInvalidSnapshot, h.ID)
		}
		out = append(out, h.Clone())
	}
	return out, nil
}
