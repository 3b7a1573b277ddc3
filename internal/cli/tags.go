package cli

import (
	"context"
	"strings"
)

// TagsCmd returns the tags command.
func TagsCmd(s *session) *Command {
	a := newAnalysisFlags("tags")

	var show []string

	a.fs.StringSliceVar(&show, "show", nil, "Comma-separated items to show instead of the top items")

	return &Command{
		Flags: a.fs,
		Usage: "tags [--show <items>] [flags] [path...]",
		Short: "Show per-item statistics",
		Long: `Print the chart, totals and top relations of each item. Items are tags,
heading words or body words depending on --use. Without --show the
most frequent items are listed; --max-tags 0 lists every item.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			an, err := s.analyze(ctx, o, a, args, nil)
			if err != nil || an == nil {
				return err
			}

			names := []string{}

			switch {
			case len(show) > 0:
				for _, raw := range show {
					if name := an.extractor.Normalize(raw); name != "" && !containsString(names, name) {
						names = append(names, name)
					}
				}
			default:
				for _, ic := range an.result.Frequencies.Ranked(an.cfg.MaxTags) {
					names = append(names, ic.Name)
				}
			}

			an.printItems(o, names)

			return nil
		},
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}
