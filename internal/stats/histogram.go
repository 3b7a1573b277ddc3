package stats

import (
	"maps"
	"slices"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Fallback buckets.
const (
	// NoneBucket counts occurrences without a state or property value.
	NoneBucket = "none"
	// UnknownBucket counts completed occurrences without a resolvable date.
	UnknownBucket = "unknown"
)

// DayOrder is the display order of the day-of-week histogram.
var DayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday", UnknownBucket,
}

// CategoryOrder is the display order of the difficulty histogram.
var CategoryOrder = []string{task.CategorySimple, task.CategoryRegular, task.CategoryHard}

// Histogram maps a category label to a count.
type Histogram map[string]int

// Add adds n to key.
func (h Histogram) Add(key string, n int) {
	h[key] += n
}

// Total returns the sum of all buckets.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}

	return total
}

// Keys returns the bucket labels in sorted order.
func (h Histogram) Keys() []string {
	return slices.Sorted(maps.Keys(h))
}

// Order returns order followed by any remaining labels of h, sorted.
func (h Histogram) Order(order []string) []string {
	out := slices.Clone(order)

	for _, k := range h.Keys() {
		if !slices.Contains(order, k) {
			out = append(out, k)
		}
	}

	return out
}

// StateHistogram counts occurrences by state. The sum of all buckets
// equals the number of occurrences.
func StateHistogram(views []task.View) Histogram {
	h := Histogram{}

	for _, v := range views {
		for _, occ := range task.Occurrences(v) {
			state := occ.State
			if state == "" {
				state = NoneBucket
			}

			h.Add(state, 1)
		}
	}

	return h
}

// DayOfWeekHistogram counts completed occurrences by weekday.
func DayOfWeekHistogram(views []task.View, states task.States) Histogram {
	h := Histogram{}

	for _, v := range views {
		for _, occ := range task.Occurrences(v) {
			if !states.IsDone(occ.State) {
				continue
			}

			if !occ.Resolved {
				h.Add(UnknownBucket, 1)

				continue
			}

			h.Add(occ.Date.Weekday().String(), 1)
		}
	}

	return h
}

// CategoryHistogram counts occurrences by a task property. For the difficulty
// property the parsed category is used; other properties bucket by raw value,
// missing values falling into NoneBucket.
func CategoryHistogram(views []task.View, property string) Histogram {
	h := Histogram{}

	for _, v := range views {
		var key string

		if property == task.DifficultyProperty {
			key = task.Category(v)
		} else if val, ok := v.Property(property); ok && val != "" {
			key = val
		} else {
			key = NoneBucket
		}

		h.Add(key, v.RepeatCount())
	}

	return h
}

// DoneCount returns the number of completed occurrences of v, or 1 when only
// the task itself is done.
func DoneCount(v task.View, states task.States) int {
	final := 0
	if states.IsDone(v.State()) {
		final = 1
	}

	repeats := 0

	for _, r := range v.Repeats() {
		if states.IsDone(r.State) {
			repeats++
		}
	}

	return max(final, repeats)
}
