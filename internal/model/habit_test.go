package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHabitIDUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want HabitID
	}{
		{`"abc"`, "abc"},
		{`1704067200000`, "1704067200000"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id HabitID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &id), tt.in)
		assert.Equal(t, tt.want, id, tt.in)
	}

	var id HabitID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestHabitClone(t *testing.T) {
	t.Parallel()

	d := Date(2024, time.January, 1)
	h := Habit{ID: "1", Name: "Read", Completions: map[Day]bool{d: true, d.AddDays(1): false}}

	c := h.Clone()
	c.Completions[d.AddDays(5)] = true

	assert.True(t, c.Completed(d))
	assert.False(t, h.Completed(d.AddDays(5)))
	assert.NotContains(t, c.Completions, d.AddDays(1))
}
