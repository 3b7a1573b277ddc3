package stats

import (
	"maps"
	"slices"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/task"
)

// TimeRange tracks when an item occurred, at day granularity.
// Earliest and Latest are meaningful only when the timeline is non-empty.
type TimeRange struct {
	Earliest task.Date
	Latest   task.Date
	Timeline map[task.Date]int
}

// Update records one occurrence on d.
func (tr *TimeRange) Update(d task.Date) {
	tr.add(d, 1)
}

func (tr *TimeRange) add(d task.Date, n int) {
	if tr.Timeline == nil {
		tr.Timeline = map[task.Date]int{}
	}

	if len(tr.Timeline) == 0 || d.Before(tr.Earliest) {
		tr.Earliest = d
	}

	if len(tr.Timeline) == 0 || d.After(tr.Latest) {
		tr.Latest = d
	}

	tr.Timeline[d] += n
}

// Empty reports whether no occurrence was recorded.
func (tr TimeRange) Empty() bool {
	return len(tr.Timeline) == 0
}

// TopDay returns the day with the most occurrences, earliest first on ties.
func (tr TimeRange) TopDay() (task.Date, int, bool) {
	var (
		top   task.Date
		count int
	)

	if tr.Empty() {
		return top, 0, false
	}

	for d, n := range tr.Timeline {
		if n > count || (n == count && d.Before(top)) {
			top, count = d, n
		}
	}

	return top, count, true
}

// MaxSingleDay returns the highest count recorded on one day.
func (tr TimeRange) MaxSingleDay() int {
	_, n, _ := tr.TopDay()

	return n
}

// Total returns the number of recorded occurrences.
func (tr TimeRange) Total() int {
	total := 0
	for _, n := range tr.Timeline {
		total += n
	}

	return total
}

// SpanDays returns the number of days from Earliest to Latest, inclusive.
func (tr TimeRange) SpanDays() int {
	if tr.Empty() {
		return 0
	}

	return tr.Earliest.DaysUntil(tr.Latest) + 1
}

// PerDay divides n by the span of tr.
func (tr TimeRange) PerDay(n int) float64 {
	span := tr.SpanDays()
	if span == 0 {
		return 0
	}

	return float64(n) / float64(span)
}

// Days returns the recorded days in calendar order.
func (tr TimeRange) Days() []task.Date {
	days := slices.Collect(maps.Keys(tr.Timeline))
	slices.SortFunc(days, task.Date.Compare)

	return days
}

// Merge combines time ranges: earliest of earliest, latest of latest and
// the day-wise sum of timelines. It is commutative and associative.
func Merge(ranges ...TimeRange) TimeRange {
	var out TimeRange

	for _, tr := range ranges {
		for d, n := range tr.Timeline {
			out.add(d, n)
		}
	}

	return out
}

// ComputeTimeRanges returns a time range per item over resolved occurrences.
func ComputeTimeRanges(views []task.View, ex extract.Extractor) map[string]TimeRange {
	ranges := map[string]TimeRange{}

	for _, v := range views {
		items := ex.Items(v)
		if len(items) == 0 {
			continue
		}

		for _, occ := range task.Occurrences(v) {
			if !occ.Resolved {
				continue
			}

			for _, item := range items {
				tr := ranges[item]
				tr.Update(occ.Date)
				ranges[item] = tr
			}
		}
	}

	return ranges
}

// GlobalTimeRange returns the time range over every resolved occurrence.
func GlobalTimeRange(views []task.View) TimeRange {
	var tr TimeRange

	for _, v := range views {
		for _, occ := range task.Occurrences(v) {
			if occ.Resolved {
				tr.Update(occ.Date)
			}
		}
	}

	return tr
}
