package cli

import (
	"context"
	"strings"
)

// GroupsCmd returns the groups command.
func GroupsCmd(s *session) *Command {
	a := newAnalysisFlags("groups")

	var explicit []string

	a.fs.StringArrayVar(&explicit, "group", nil, "Comma-separated items forming one group (repeatable)")

	return &Command{
		Flags: a.fs,
		Usage: "groups [--group <items>]... [flags] [path...]",
		Short: "Show groups of related items",
		Long: `Print groups of items connected through their strongest relations.
Each item keeps edges to its --max-relations strongest neighbours and
groups are the connected components of that graph. --group replaces
the computed groups with explicit ones.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			var lists [][]string

			for _, g := range explicit {
				var items []string

				for part := range strings.SplitSeq(g, ",") {
					if item := strings.TrimSpace(part); item != "" {
						items = append(items, item)
					}
				}

				if len(items) == 0 {
					return ErrNoItems
				}

				lists = append(lists, items)
			}

			an, err := s.analyze(ctx, o, a, args, lists)
			if err != nil || an == nil {
				return err
			}

			// Groups are the whole output here, so 0 lists them all.
			if an.cfg.MaxGroups == 0 {
				an.cfg.MaxGroups = -1
			}

			an.printGroups(o)

			return nil
		},
	}
}
