package cli

import (
	"context"
)

// SummaryCmd returns the summary command.
func SummaryCmd(s *session) *Command {
	a := newAnalysisFlags("summary")

	return &Command{
		Flags: a.fs,
		Usage: "summary [flags] [path...]",
		Short: "Show the full report",
		Long: `Analyze org-mode and markdown task files and print the activity chart,
totals, state, category and weekday histograms, recent tasks, the top
items with their relations, and groups of related items.

Paths default to the working directory. Directories contribute their
.org and .md files without recursing.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			an, err := s.analyze(ctx, o, a, args, nil)
			if err != nil || an == nil {
				return err
			}

			an.printOverview(o)
			an.printHistograms(o)
			an.printRecent(o)
			an.printItems(o, nil)
			an.printGroups(o)

			return nil
		},
	}
}

// TasksCmd returns the tasks command.
func TasksCmd(s *session) *Command {
	a := newAnalysisFlags("tasks")

	return &Command{
		Flags: a.fs,
		Usage: "tasks [flags] [path...]",
		Short: "Show totals and histograms",
		Long:  "Print the activity chart, totals and the state, category and weekday histograms.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			an, err := s.analyze(ctx, o, a, args, nil)
			if err != nil || an == nil {
				return err
			}

			an.printOverview(o)
			an.printHistograms(o)

			return nil
		},
	}
}
