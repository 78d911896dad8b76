package habit

import (
	"sort"

	"habittracker/internal/model"
)

// DefaultWindowDays is the length of the recent-activity strip.
const DefaultWindowDays = 30

// DayStatus is one cell of a window view.
type DayStatus struct {
	Day       model.Day `json:"day"`
	Completed bool      `json:"completed"`
}

// Summary bundles every statistic shown for a single habit.
type Summary struct {
	CurrentStreak  int         `json:"current_streak"`
	LongestStreak  int         `json:"longest_streak"`
	Total          int         `json:"total_completions"`
	SuccessRate    int         `json:"success_rate"`
	FirstCompleted *model.Day  `json:"first_completed,omitempty"`
	LastCompleted  *model.Day  `json:"last_completed,omitempty"`
	CompletedAsOf  bool        `json:"completed_as_of"`
	Window         []DayStatus `json:"window"`
}

// Streak counts consecutive completed days ending at asOf, walking
// backward. It is 0 when asOf itself is not completed.
func Streak(h model.Habit, asOf model.Day) int {
	n := 0
	for d := asOf; h.Completions[d]; d = d.AddDays(-1) {
		n++
	}
	return n
}

// TotalCompletions is the number of distinct completed days.
func TotalCompletions(h model.Habit) int {
	n := 0
	for _, ok := range h.Completions {
		if ok {
			n++
		}
	}
	return n
}

// SuccessRate is round(100 * total / span), where span counts the days from
// the earliest completion through asOf inclusive. The span starts at the
// first completion rather than at habit creation, and every completion is
// counted, so completions after asOf can push the rate above 100. When the
// earliest completion is after asOf the span is empty and the rate is 0.
func SuccessRate(h model.Habit, asOf model.Day) int {
	days := completedDays(h)
	if len(days) == 0 {
		return 0
	}

	span := asOf.Sub(days[0]) + 1
	if span <= 0 {
		return 0
	}
	total := len(days)
	// round half up: floor(100*total/span + 1/2)
	return (200*total + span) / (2 * span)
}

// Window returns size entries ending at asOf, oldest first.
func Window(h model.Habit, size int, asOf model.Day) []DayStatus {
	if size <= 0 {
		return nil
	}
	out := make([]DayStatus, size)
	start := asOf.AddDays(-(size - 1))
	for i := range out {
		d := start.AddDays(i)
		out[i] = DayStatus{Day: d, Completed: h.Completions[d]}
	}
	return out
}

// LongestStreak is the longest run of consecutive completed days anywhere
// in the record.
func LongestStreak(h model.Habit) int {
	days := completedDays(h)
	best, run := 0, 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// Summarize computes all statistics for h as of asOf.
func Summarize(h model.Habit, asOf model.Day, windowDays int) Summary {
	s := Summary{
		CurrentStreak: Streak(h, asOf),
		LongestStreak: LongestStreak(h),
		Total:         TotalCompletions(h),
		SuccessRate:   SuccessRate(h, asOf),
		CompletedAsOf: h.Completed(asOf),
		Window:        Window(h, windowDays, asOf),
	}
	if days := completedDays(h); len(days) > 0 {
		first, last := days[0], days[len(days)-1]
		s.FirstCompleted = &first
		s.LastCompleted = &last
	}
	return s
}

func completedDays(h model.Habit) []model.Day {
	days := make([]model.Day, 0, len(h.Completions))
	for d, ok := range h.Completions {
		if ok {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}
