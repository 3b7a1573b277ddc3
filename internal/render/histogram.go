package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Histogram layout.
const (
	LabelWidth = 9
	Block      = "█"
	Ellipsis   = "…"
)

// HistogramOptions controls Histogram.
type HistogramOptions struct {
	// Width is the bar length of a category holding the whole sum.
	Width int
	// Order lists categories to print, including ones without a count.
	// Nil prints the histogram's own categories sorted by name.
	Order []string
	// States colours labels as task states when set.
	States  bool
	Palette Palette
}

// Histogram renders one line per category: label, delimiter, a bar
// proportional to the category's share of the total, and the raw count.
func Histogram(h map[string]int, opts HistogramOptions) []string {
	total := 0
	for _, n := range h {
		total += n
	}

	order := opts.Order
	if order == nil {
		order = make([]string, 0, len(h))
		for k := range h {
			order = append(order, k)
		}

		slices.Sort(order)
	}

	lines := make([]string, 0, len(order))

	for _, category := range order {
		value := h[category]

		bar := 0
		if total > 0 {
			bar = value * opts.Width / total
		}

		label := Label(category, LabelWidth)
		if opts.States {
			label = opts.Palette.State(category, label)
		}

		lines = append(lines, fmt.Sprintf("%s%s%s %d",
			label, ChartDelimiter, opts.Palette.Bar(strings.Repeat(Block, bar)), value))
	}

	return lines
}

// Label fits s into width terminal cells, truncating with an ellipsis
// and padding with spaces.
func Label(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, Ellipsis)
	}

	return runewidth.FillRight(s, width)
}
