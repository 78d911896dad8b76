package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), "1970-01-01"},
		{"late evening keeps local date", time.Date(2024, 1, 1, 23, 59, 59, 0, time.FixedZone("X", -8*3600)), "2024-01-01"},
		{"early morning keeps local date", time.Date(2024, 1, 2, 0, 30, 0, 0, time.FixedZone("Y", 9*3600)), "2024-01-02"},
		{"before epoch", time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC), "1969-12-31"},
		{"leap day", time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DayOf(tt.in).String())
		})
	}
}

func TestDayArithmetic(t *testing.T) {
	t.Parallel()

	d := Date(2024, time.February, 28)
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2023-12-31", Date(2024, time.January, 1).AddDays(-1).String())
	assert.Equal(t, 2, d.AddDays(2).Sub(d))
	assert.Equal(t, Day(0), Date(1970, time.January, 1))
	assert.Equal(t, Day(-1), Date(1969, time.December, 31))
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{in: "2024-01-01", want: Date(2024, time.January, 1)},
		{in: " 2024-01-01 ", want: Date(2024, time.January, 1)},
		{in: "Mon Jan 01 2024", want: Date(2024, time.January, 1)},
		{in: "Thu Feb 29 2024", want: Date(2024, time.February, 29)},
		{in: "01/01/2024", wantErr: true},
		{in: "", wantErr: true},
		{in: "2024-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayAsMapKey(t *testing.T) {
	t.Parallel()

	in := map[Day]bool{Date(2024, time.January, 2): true}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-02":true}`, string(data))

	var out map[Day]bool
	require.NoError(t, json.Unmarshal([]byte(`{"Tue Jan 02 2024":true}`), &out))
	assert.Equal(t, in, out)
}
