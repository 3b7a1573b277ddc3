// Package render formats analysis results as compact text charts.
package render

import (
	"fmt"
	"strings"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Chart glyphs.
const (
	ChartDelimiter = "┊"
	Overline       = "‾"
)

var glyphs = []struct {
	percent float64
	glyph   rune
}{
	{100, '█'},
	{87.5, '▇'},
	{75, '▆'},
	{62.5, '▅'},
	{50, '▄'},
	{37.5, '▃'},
	{25, '▂'},
}

// Glyph returns the bar glyph for value relative to max.
// Zero values, and any value when max is zero, render blank.
func Glyph(value, max int) rune {
	if value == 0 || max == 0 {
		return ' '
	}

	percent := float64(value) / float64(max) * 100

	for _, g := range glyphs {
		if percent >= g.percent {
			return g.glyph
		}
	}

	return '▁'
}

// Expand returns the count of every day from start to end inclusive.
func Expand(timeline map[task.Date]int, start, end task.Date) []int {
	if end.Before(start) {
		return nil
	}

	days := make([]int, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, timeline[d])
	}

	return days
}

// Bucket sums consecutive days into n buckets of equal length (±1 day).
// Fewer days than buckets yield one bucket per day.
func Bucket(days []int, n int) []int {
	if len(days) < n {
		n = len(days)
	}

	if n <= 0 {
		return nil
	}

	buckets := make([]int, n)
	for i, count := range days {
		buckets[i*n/len(days)] += count
	}

	return buckets
}

// Chart is a rendered activity chart.
type Chart struct {
	DateLine  string
	ChartLine string
	Underline string
}

// Lines returns the three rows of c.
func (c Chart) Lines() []string {
	return []string{c.DateLine, c.ChartLine, c.Underline}
}

func (c Chart) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Activity renders the timeline from start to end as n bucketed bars.
// The chart row ends with the count and date of the busiest day, or 0
// when there was no activity.
func Activity(timeline map[task.Date]int, start, end task.Date, n int, p Palette) Chart {
	buckets := Bucket(Expand(timeline, start, end), n)

	maxBucket := 0
	for _, b := range buckets {
		maxBucket = max(maxBucket, b)
	}

	var bars strings.Builder
	for _, b := range buckets {
		bars.WriteRune(Glyph(b, maxBucket))
	}

	width := len(buckets) + 2
	startStr, endStr := start.String(), end.String()
	padding := strings.Repeat(" ", max(0, width-len(startStr)-len(endStr)))

	top := "0"
	if day, count, ok := topDay(timeline); ok {
		top = fmt.Sprintf("%s (%s)", p.Number(fmt.Sprint(count)), day)
	}

	return Chart{
		DateLine:  startStr + padding + endStr,
		ChartLine: ChartDelimiter + p.Bar(bars.String()) + ChartDelimiter + " " + top,
		Underline: strings.Repeat(Overline, width),
	}
}

func topDay(timeline map[task.Date]int) (task.Date, int, bool) {
	var (
		top   task.Date
		count int
	)

	for d, n := range timeline {
		if n > count || (n == count && n > 0 && d.Before(top)) {
			top, count = d, n
		}
	}

	return top, count, count > 0
}
