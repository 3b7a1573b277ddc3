// Package filter narrows a task collection before it is analyzed.
//
// Selecting filters keep or drop whole tasks. Repeat-splitting filters
// evaluate each occurrence on its own and may replace a task with a view
// exposing only the repeats that matched.
package filter

import (
	"regexp"
	"time"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Filter transforms a task collection. Filters never modify their input slice.
type Filter func(views []task.View) []task.View

// Chain applies filters in order.
type Chain []Filter

// Apply runs every filter of c over views.
func (c Chain) Apply(views []task.View) []task.View {
	for _, f := range c {
		views = f(views)
	}

	return views
}

// Select returns a filter keeping the views for which keep returns true.
func Select(keep func(task.View) bool) Filter {
	return func(views []task.View) []task.View {
		out := make([]task.View, 0, len(views))

		for _, v := range views {
			if keep(v) {
				out = append(out, v)
			}
		}

		return out
	}
}

// Split returns a repeat-splitting filter.
//
// A task without repeats is kept when its single occurrence matches.
// A task with repeats is dropped when no repeat matches, kept unchanged
// when all match, and otherwise replaced by a view of the matching repeats.
func Split(match func(task.View, task.Occurrence) bool) Filter {
	return func(views []task.View) []task.View {
		out := make([]task.View, 0, len(views))

		for _, v := range views {
			repeats := v.Repeats()
			if len(repeats) == 0 {
				if match(v, task.Occurrences(v)[0]) {
					out = append(out, v)
				}

				continue
			}

			occs := task.Occurrences(v)
			kept := make([]task.Repeat, 0, len(repeats))

			for i, occ := range occs {
				if match(v, occ) {
					kept = append(kept, repeats[i])
				}
			}

			switch len(kept) {
			case 0:
			case len(repeats):
				out = append(out, v)
			default:
				out = append(out, v.Restrict(kept))
			}
		}

		return out
	}
}

// DifficultyAbove keeps tasks whose difficulty metric is greater than n.
// A missing metric counts as task.DefaultDifficulty.
func DifficultyAbove(n int) Filter {
	return Select(func(v task.View) bool { return task.DifficultyOrDefault(v) > n })
}

// DifficultyBelow keeps tasks whose difficulty metric is less than n.
func DifficultyBelow(n int) Filter {
	return Select(func(v task.View) bool { return task.DifficultyOrDefault(v) < n })
}

// RepeatsAbove keeps tasks with more than n occurrences.
func RepeatsAbove(n int) Filter {
	return Select(func(v task.View) bool { return v.RepeatCount() > n })
}

// RepeatsBelow keeps tasks with fewer than n occurrences.
func RepeatsBelow(n int) Filter {
	return Select(func(v task.View) bool { return v.RepeatCount() < n })
}

// Property keeps tasks whose property key equals value exactly.
func Property(key, value string) Filter {
	return Select(func(v task.View) bool {
		got, ok := v.Property(key)

		return ok && got == value
	})
}

// Tag keeps tasks with at least one tag matching re.
func Tag(re *regexp.Regexp) Filter {
	return Select(func(v task.View) bool {
		for _, tag := range v.Tags() {
			if re.MatchString(tag) {
				return true
			}
		}

		return false
	})
}

// Heading keeps tasks whose heading matches re.
func Heading(re *regexp.Regexp) Filter {
	return Select(func(v task.View) bool { return re.MatchString(v.Heading()) })
}

// Body keeps tasks whose body matches re.
func Body(re *regexp.Regexp) Filter {
	return Select(func(v task.View) bool { return re.MatchString(v.Body()) })
}

// Category keeps tasks whose difficulty category equals name.
func Category(name string) Filter {
	return Select(func(v task.View) bool { return task.Category(v) == name })
}

// DateFrom keeps occurrences at or after from. Unresolved occurrences never match.
// Times compare by wall clock, the way timelines bucket them.
func DateFrom(from time.Time) Filter {
	from = wallClock(from)

	return Split(func(_ task.View, occ task.Occurrence) bool {
		return occ.Resolved && !wallClock(occ.Time).Before(from)
	})
}

// DateUntil keeps occurrences at or before until. Unresolved occurrences never match.
func DateUntil(until time.Time) Filter {
	until = wallClock(until)

	return Split(func(_ task.View, occ task.Occurrence) bool {
		return occ.Resolved && !wallClock(occ.Time).After(until)
	})
}

// wallClock re-anchors t's calendar date and clock reading in UTC, dropping its offset.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Completed keeps occurrences whose state is a done keyword.
func Completed(states task.States) Filter {
	return Split(func(_ task.View, occ task.Occurrence) bool { return states.IsDone(occ.State) })
}

// NotCompleted keeps occurrences whose state is a todo keyword or empty.
func NotCompleted(states task.States) Filter {
	return Split(func(_ task.View, occ task.Occurrence) bool {
		return occ.State == "" || states.IsTodo(occ.State)
	})
}
