// Package export persists an analysis as JSON or as a SQLite database.
package export

import (
	"maps"
	"slices"
	"time"

	"github.com/calvinalkan/taskstat/internal/stats"
)

// Report is a serializable snapshot of a stats.Result.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Domain      string    `json:"domain"`

	Tasks          int     `json:"tasks"`
	Occurrences    int     `json:"occurrences"`
	Completed      int     `json:"completed"`
	Earliest       string  `json:"earliest,omitempty"`
	Latest         string  `json:"latest,omitempty"`
	AvgPerDay      float64 `json:"avg_per_day"`
	MaxSingleDay   int     `json:"max_single_day"`
	MaxRepeatCount int     `json:"max_repeat_count"`

	States     map[string]int `json:"states"`
	Days       map[string]int `json:"days"`
	Categories map[string]int `json:"categories"`
	Timeline   map[string]int `json:"timeline"`

	Items  []Item  `json:"items"`
	Groups []Group `json:"groups"`
}

// Item is one ranked item with its relations and time range.
type Item struct {
	Name      string            `json:"name"`
	Count     int               `json:"count"`
	Earliest  string            `json:"earliest,omitempty"`
	Latest    string            `json:"latest,omitempty"`
	Timeline  map[string]int    `json:"timeline"`
	Relations []stats.ItemCount `json:"relations"`
}

// Group is one group of related items.
type Group struct {
	Items    []string       `json:"items"`
	Total    int            `json:"total"`
	Earliest string         `json:"earliest,omitempty"`
	Latest   string         `json:"latest,omitempty"`
	Timeline map[string]int `json:"timeline"`
}

// ReportOptions bounds what NewReport includes. Zero limits keep everything.
type ReportOptions struct {
	Domain       string
	MaxResults   int
	MaxRelations int
	MinGroupSize int
	MaxGroups    int
	Now          time.Time
}

// NewReport snapshots res.
func NewReport(res stats.Result, opts ReportOptions) Report {
	earliest, latest := bounds(res.TimeRange)

	r := Report{
		GeneratedAt:    opts.Now.UTC(),
		Domain:         opts.Domain,
		Tasks:          res.Tasks,
		Occurrences:    res.Occurrences,
		Completed:      res.Completed,
		Earliest:       earliest,
		Latest:         latest,
		AvgPerDay:      res.AvgPerDay,
		MaxSingleDay:   res.MaxSingleDay,
		MaxRepeatCount: res.MaxRepeatCount,
		States:         cloneCounts(res.States),
		Days:           cloneCounts(res.Days),
		Categories:     cloneCounts(res.Categories),
		Timeline:       timeline(res.TimeRange),
		Items:          []Item{},
		Groups:         []Group{},
	}

	for _, ic := range res.Frequencies.Ranked(opts.MaxResults) {
		item := res.Item(ic.Name, opts.MaxRelations)
		first, last := bounds(item.TimeRange)

		relations := item.Relations
		if relations == nil {
			relations = []stats.ItemCount{}
		}

		r.Items = append(r.Items, Item{
			Name:      item.Name,
			Count:     item.Count,
			Earliest:  first,
			Latest:    last,
			Timeline:  timeline(item.TimeRange),
			Relations: relations,
		})
	}

	for _, g := range stats.FilterGroups(res.Groups, opts.MinGroupSize, opts.MaxGroups) {
		first, last := bounds(g.TimeRange)

		r.Groups = append(r.Groups, Group{
			Items:    slices.Clone(g.Items),
			Total:    g.Total,
			Earliest: first,
			Latest:   last,
			Timeline: timeline(g.TimeRange),
		})
	}

	return r
}

func bounds(tr stats.TimeRange) (string, string) {
	if tr.Empty() {
		return "", ""
	}

	return tr.Earliest.String(), tr.Latest.String()
}

func timeline(tr stats.TimeRange) map[string]int {
	out := make(map[string]int, len(tr.Timeline))
	for d, n := range tr.Timeline {
		out[d.String()] = n
	}

	return out
}

func cloneCounts(h stats.Histogram) map[string]int {
	if h == nil {
		return map[string]int{}
	}

	return maps.Clone(map[string]int(h))
}

// sortedDays returns the keys of a date-keyed timeline in calendar order.
// ISO dates sort lexically.
func sortedDays(tl map[string]int) []string {
	return slices.Sorted(maps.Keys(tl))
}
