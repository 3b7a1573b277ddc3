package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/render"
	"github.com/calvinalkan/taskstat/internal/stats"
	"github.com/calvinalkan/taskstat/internal/task"
)

var sectionNames = map[extract.Domain]string{
	extract.DomainTags:    "tags",
	extract.DomainHeading: "heading words",
	extract.DomainBody:    "body words",
}

func (an *analysis) number(n int) string {
	return an.palette.Number(fmt.Sprint(n))
}

func (an *analysis) rate(f float64) string {
	return an.palette.Number(fmt.Sprintf("%.2f", f))
}

func (an *analysis) header(o *IO, title string) {
	o.Println()
	o.Println(an.palette.Header(title))
}

func (an *analysis) chart(o *IO, indent string, timeline map[task.Date]int) {
	if !an.hasTimeline() {
		return
	}

	for _, line := range render.Activity(timeline, an.start, an.end, an.cfg.Buckets, an.palette).Lines() {
		o.Println(indent + line)
	}
}

// printOverview prints the global chart and totals.
func (an *analysis) printOverview(o *IO) {
	res := an.result

	if an.hasTimeline() {
		o.Println()
		an.chart(o, "", res.TimeRange.Timeline)
	}

	o.Println("Total tasks: " + an.number(res.Occurrences))

	if !res.TimeRange.Empty() {
		o.Println("Average tasks per day: " + an.rate(res.AvgPerDay))
		o.Println("Max tasks on a single day: " + an.number(res.MaxSingleDay))
		o.Println("Max repeats of a single task: " + an.number(res.MaxRepeatCount))
	}
}

// printHistograms prints the state, category and weekday histograms.
func (an *analysis) printHistograms(o *IO) {
	res := an.result
	width := an.cfg.Buckets

	an.header(o, "Task states:")

	known := slices.Concat(an.states.Done, an.states.Todo)
	an.histogram(o, res.States, render.HistogramOptions{
		Width:   width,
		Order:   res.States.Order(known),
		States:  true,
		Palette: an.palette,
	})

	an.header(o, "Task categories:")

	var order []string
	if an.cfg.CategoryProperty == task.DifficultyProperty {
		order = stats.CategoryOrder
	}

	an.histogram(o, res.Categories, render.HistogramOptions{Width: width, Order: order, Palette: an.palette})

	an.header(o, "Task occurrence by day of week:")
	an.histogram(o, res.Days, render.HistogramOptions{Width: width, Order: stats.DayOrder, Palette: an.palette})
}

func (an *analysis) histogram(o *IO, h stats.Histogram, opts render.HistogramOptions) {
	for _, line := range render.Histogram(h, opts) {
		o.Println("  " + line)
	}
}

// printRecent prints the most recently active tasks.
func (an *analysis) printRecent(o *IO) {
	recent := stats.RecentTasks(an.views, an.cfg.MaxResults)
	if len(recent) == 0 {
		return
	}

	an.header(o, "TASKS:")

	for _, tt := range recent {
		v := tt.View
		line := an.palette.File(an.displayPath(v.File())) + ":"

		if state := v.State(); state != "" {
			line += " " + an.palette.State(state, state)
		}

		if heading := v.Heading(); heading != "" {
			line += " " + heading
		}

		o.Println("  " + line)
	}
}

// displayPath shortens paths below the working directory.
func (an *analysis) displayPath(path string) string {
	rel, err := filepath.Rel(an.cfg.EffectiveCwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

// printItems prints one block per item. Nil names prints the top items.
func (an *analysis) printItems(o *IO, names []string) {
	if names == nil {
		if an.cfg.MaxTags == 0 {
			return
		}

		for _, ic := range an.result.Frequencies.Ranked(an.cfg.MaxTags) {
			names = append(names, ic.Name)
		}
	}

	an.header(o, strings.ToUpper(sectionNames[an.extractor.Domain])+":")

	if len(names) == 0 {
		o.Println("  No results")

		return
	}

	for i, name := range names {
		if i > 0 {
			o.Println()
		}

		item := an.result.Item(name, an.cfg.MaxRelations)

		if !item.TimeRange.Empty() {
			an.chart(o, "  ", item.TimeRange.Timeline)
		}

		o.Println("  " + name)
		o.Println("    Total tasks: " + an.number(item.Count))

		if !item.TimeRange.Empty() {
			o.Println("    Average tasks per day: " + an.rate(item.TimeRange.PerDay(item.Count)))
			o.Println("    Max tasks on a single day: " + an.number(item.TimeRange.MaxSingleDay()))
		}

		if an.cfg.MaxRelations > 0 && len(item.Relations) > 0 {
			o.Println("    Top relations:")

			for _, rel := range item.Relations {
				o.Printf("      %s (%d)\n", rel.Name, rel.Count)
			}
		}
	}
}

// printGroups prints the groups that pass the size and count limits.
func (an *analysis) printGroups(o *IO) {
	if an.cfg.MaxGroups == 0 {
		return
	}

	groups := stats.FilterGroups(an.result.Groups, an.cfg.MinGroupSize, an.cfg.MaxGroups)

	an.header(o, "GROUPS:")

	if len(groups) == 0 {
		o.Println("  No results")

		return
	}

	for i, g := range groups {
		if i > 0 {
			o.Println()
		}

		an.chart(o, "  ", g.TimeRange.Timeline)

		o.Println("  " + strings.Join(g.Items, ", "))
		o.Println("    Total tasks: " + an.number(g.Total))
		o.Println("    Average tasks per day: " + an.rate(g.TimeRange.PerDay(g.Total)))
		o.Println("    Max tasks on a single day: " + an.number(g.TimeRange.MaxSingleDay()))
	}
}
