package stats

import (
	"slices"
	"time"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/task"
)

// Options configures Analyze. Every table is passed explicitly.
type Options struct {
	Extractor extract.Extractor
	States    task.States
	// MaxRelations is the per-item relation cap used for grouping.
	MaxRelations int
	// CategoryProperty selects the property of the category histogram.
	CategoryProperty string
	// Groups, when non-empty, replaces computed groups with these item lists.
	Groups [][]string
}

// Result is the complete analysis of a task collection.
type Result struct {
	// Tasks is the number of tasks; Occurrences counts each repeat.
	Tasks       int
	Occurrences int
	Completed   int

	States     Histogram
	Days       Histogram
	Categories Histogram

	TimeRange      TimeRange
	AvgPerDay      float64
	MaxSingleDay   int
	MaxRepeatCount int

	Frequencies Frequency
	Relations   Relations
	TimeRanges  map[string]TimeRange
	Groups      []Group
}

// Analyze runs every computation over views. An empty collection yields
// an empty result, never an error.
func Analyze(views []task.View, opts Options) Result {
	freq, rel := Count(views, opts.Extractor)
	ranges := ComputeTimeRanges(views, opts.Extractor)

	property := opts.CategoryProperty
	if property == "" {
		property = task.DifficultyProperty
	}

	res := Result{
		Tasks:       len(views),
		States:      StateHistogram(views),
		Days:        DayOfWeekHistogram(views, opts.States),
		Categories:  CategoryHistogram(views, property),
		TimeRange:   GlobalTimeRange(views),
		Frequencies: freq,
		Relations:   rel,
		TimeRanges:  ranges,
	}

	res.Occurrences = res.States.Total()

	for _, v := range views {
		res.MaxRepeatCount = max(res.MaxRepeatCount, DoneCount(v, opts.States))
	}

	for state, n := range res.States {
		if opts.States.IsDone(state) {
			res.Completed += n
		}
	}

	res.MaxSingleDay = res.TimeRange.MaxSingleDay()
	res.AvgPerDay = res.TimeRange.PerDay(res.Completed)

	if len(opts.Groups) > 0 {
		res.Groups = ExplicitGroups(opts.Groups, views, opts.Extractor, ranges)
	} else {
		res.Groups = ComputeGroups(rel, opts.MaxRelations, ranges)
		CountGroupTotals(res.Groups, views, opts.Extractor)
	}

	return res
}

// Item collects everything known about one item.
type Item struct {
	Name      string
	Count     int
	TimeRange TimeRange
	Relations []ItemCount
}

// Item returns the statistics of name with at most k relations.
// k <= 0 returns no relations, matching the cap ComputeGroups applies.
func (r Result) Item(name string, k int) Item {
	item := Item{
		Name:      name,
		Count:     r.Frequencies[name],
		TimeRange: r.TimeRanges[name],
	}

	if k > 0 {
		item.Relations = r.Relations.Top(name, k)
	}

	return item
}

// TaskTime pairs a task with its most recent occurrence time.
type TaskTime struct {
	View task.View
	Time time.Time
}

// RecentTasks returns up to n tasks ordered by their most recent occurrence,
// newest first. Tasks without any resolvable time are skipped.
func RecentTasks(views []task.View, n int) []TaskTime {
	out := make([]TaskTime, 0, len(views))

	for _, v := range views {
		if t, ok := task.MostRecent(v); ok {
			out = append(out, TaskTime{View: v, Time: t})
		}
	}

	slices.SortStableFunc(out, func(a, b TaskTime) int { return b.Time.Compare(a.Time) })

	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}
