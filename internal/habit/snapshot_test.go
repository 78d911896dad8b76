package habit

import (
	"testing"
	"time"

	"habittracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	d := model.Date(2024, time.January, 1)
	in := []model.Habit{
		{ID: "a", Name: "Exercise", Completions: map[model.Day]bool{d: true, d.AddDays(1): true}},
		{ID: "b", Name: "Read", Completions: map[model.Day]bool{}},
		{ID: "c", Name: "Sleep", Completions: map[model.Day]bool{d.AddDays(-400): true}},
	}

	data, err := EncodeSnapshot(in)
	require.NoError(t, err)

	out, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeSnapshotFormat(t *testing.T) {
	t.Parallel()

	d := model.Date(2024, time.January, 1)
	data, err := EncodeSnapshot([]model.Habit{{ID: "a", Name: "Exercise", Completions: map[model.Day]bool{d: true}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","name":"Exercise","completions":{"2024-01-01":true}}]`, string(data))

	data, err = EncodeSnapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeLegacySnapshot(t *testing.T) {
	t.Parallel()

	raw := `[
		{"id": 1704067200000, "name": "Exercise", "completions": {"Mon Jan 01 2024": true, "Tue Jan 02 2024": true, "Wed Jan 03 2024": false}},
		{"id": 1704067300000, "name": "Read", "completions": {}}
	]`

	out, err := DecodeSnapshot([]byte(raw))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.HabitID("1704067200000"), out[0].ID)
	assert.Equal(t, map[model.Day]bool{
		model.Date(2024, time.January, 1): true,
		model.Date(2024, time.January, 2): true,
	}, out[0].Completions)

	data, err := EncodeSnapshot(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2024-01-02":true`)
	assert.Contains(t, string(data), `"id":"1704067200000"`)
}

func TestDecodeSnapshotInvalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":     `{{`,
		"object":       `{"id":"a"}`,
		"bad day key":  `[{"id":"a","name":"x","completions":{"yesterday":true}}]`,
		"missing id":   `[{"name":"x","completions":{}}]`,
		"blank name":   `[{"id":"a","name":"   ","completions":{}}]`,
		"duplicate id": `[{"id":"a","name":"x"},{"id":"a","name":"y"}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeSnapshot([]byte(raw))
			require.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}

func TestDecodeSnapshotNullCompletions(t *testing.T) {
	t.Parallel()

	out, err := DecodeSnapshot([]byte(`[{"id":"a","name":"x","completions":null}]`))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Completions)
	assert.Empty(t, out[0].Completions)
}
