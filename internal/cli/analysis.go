package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/calvinalkan/taskstat/internal/config"
	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/filter"
	"github.com/calvinalkan/taskstat/internal/render"
	"github.com/calvinalkan/taskstat/internal/source"
	"github.com/calvinalkan/taskstat/internal/stats"
	"github.com/calvinalkan/taskstat/internal/task"
)

// analysis is a loaded, filtered and analyzed task collection.
type analysis struct {
	cfg       config.Config
	states    task.States
	extractor extract.Extractor
	views     []task.View
	result    stats.Result
	palette   render.Palette

	// Chart bounds: the date filters when given, else the global range.
	start, end task.Date
}

// analyze runs the whole pipeline for one command. It returns nil, and
// prints "No results", when no task survives filtering.
func (s *session) analyze(ctx context.Context, o *IO, a *analysisFlags, paths []string, groups [][]string) (*analysis, error) {
	cfg, err := a.resolve(s.cfg)
	if err != nil {
		return nil, err
	}

	states := cfg.States()

	// Every filter is validated before any file is read.
	if _, err := filter.Build(cfg.Filters, states); err != nil {
		return nil, err
	}

	extractor, err := cfg.Extractor()
	if err != nil {
		return nil, err
	}

	coll, err := source.Load(ctx, s.resolvePaths(paths), source.Options{States: states, Logger: s.logger})
	if err != nil {
		return nil, err
	}

	for _, issue := range coll.Issues {
		o.Warn(fmt.Sprintf("cannot parse %s: %v", issue.Path, issue.Err), "fix the file or leave it out")
	}

	// Files may declare further keywords.
	states = coll.States

	chain, err := filter.Build(cfg.Filters, states)
	if err != nil {
		return nil, err
	}

	views := chain.Apply(task.Views(coll.Tasks))
	s.logger.Debug("filtered", "tasks", len(coll.Tasks), "kept", len(views), "filters", len(chain))

	if len(views) == 0 {
		o.Println("No results")

		return nil, nil
	}

	if len(groups) == 0 {
		groups = cfg.Groups
	}

	res := stats.Analyze(views, stats.Options{
		Extractor:        extractor,
		States:           states,
		MaxRelations:     cfg.MaxRelations,
		CategoryProperty: cfg.CategoryProperty,
		Groups:           groups,
	})

	an := &analysis{
		cfg:       cfg,
		states:    states,
		extractor: extractor,
		views:     views,
		result:    res,
		palette:   render.NewPalette(s.color, states),
		start:     res.TimeRange.Earliest,
		end:       res.TimeRange.Latest,
	}

	an.applyDateBounds(cfg.Filters)

	return an, nil
}

// applyDateBounds narrows the chart bounds to the last date filters given.
func (an *analysis) applyDateBounds(specs []filter.Spec) {
	for _, spec := range specs {
		switch spec.Kind {
		case filter.KindDateFrom:
			if t, _, err := filter.ParseTime(strings.TrimSpace(spec.Value)); err == nil {
				an.start = task.DateOf(t)
			}
		case filter.KindDateUntil:
			if t, _, err := filter.ParseTime(strings.TrimSpace(spec.Value)); err == nil {
				an.end = task.DateOf(t)
			}
		}
	}
}

// hasTimeline reports whether charts can be drawn.
func (an *analysis) hasTimeline() bool {
	return !an.result.TimeRange.Empty() && !an.end.Before(an.start)
}

func (s *session) resolvePaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{s.cfg.EffectiveCwd}
	}

	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absPath(s.cfg.EffectiveCwd, p)
	}

	return out
}
