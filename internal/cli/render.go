package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habittracker/internal/view"
)

const (
	doneMark   = "■"
	missedMark = "·"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle  = lipgloss.NewStyle().Width(16)
	valueStyle  = lipgloss.NewStyle().Width(12)
)

// renderRows 列表视图，一行一个习惯
func renderRows(rows []view.Row) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No habits yet. Add one with: habits add NAME") + "\n"
	}

	nameWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Name); w > nameWidth {
			nameWidth = w
		}
	}
	nameStyle := lipgloss.NewStyle().Width(nameWidth + 2)

	var b strings.Builder
	for _, r := range rows {
		mark := missedStyle.Render(missedMark)
		if r.CompletedToday {
			mark = doneStyle.Render(doneMark)
		}
		cursor := " "
		if r.Selected {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s %s%s %s\n",
			cursor,
			mark,
			nameStyle.Render(r.Name),
			fmt.Sprintf("streak %d", r.CurrentStreak),
			mutedStyle.Render(string(r.ID)),
		)
	}
	return b.String()
}

// renderStrip 最近 N 天的打卡条，最旧的在左
func renderStrip(d view.Detail) string {
	var b strings.Builder
	for _, day := range d.Window {
		if day.Completed {
			b.WriteString(doneStyle.Render(doneMark))
		} else {
			b.WriteString(missedStyle.Render(missedMark))
		}
	}
	return b.String()
}

// renderDetail 单个习惯的详情
func renderDetail(d view.Detail) string {
	stat := func(label string, value any) string {
		return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value))
	}

	lines := []string{
		titleStyle.Render(d.Name) + " " + mutedStyle.Render("("+string(d.ID)+")"),
		mutedStyle.Render("as of " + d.AsOf.String()),
		"",
		stat("Current streak", d.CurrentStreak) + stat("Longest streak", d.LongestStreak),
		stat("Completions", d.Total) + stat("Success rate", fmt.Sprintf("%d%%", d.SuccessRate)),
	}
	if d.FirstCompleted != nil {
		lines = append(lines, stat("First done", d.FirstCompleted.String())+stat("Last done", d.LastCompleted.String()))
	}
	if len(d.Window) > 0 {
		first, last := d.Window[0].Day, d.Window[len(d.Window)-1].Day
		lines = append(lines,
			"",
			renderStrip(d),
			mutedStyle.Render(fmt.Sprintf("%s → %s", first, last)),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
