package cli

import (
	"context"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, s)
		},
	}
}

func execPrintConfig(o *IO, s *session) error {
	cfg := s.cfg

	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("use=" + cfg.Use)
	o.Println("todo_keys=" + strings.Join(cfg.TodoKeys, ","))
	o.Println("done_keys=" + strings.Join(cfg.DoneKeys, ","))

	if cfg.MappingFile != "" {
		o.Println("mapping_file=" + cfg.MappingFile)
	}

	if len(cfg.Mapping) > 0 {
		o.Println("mapping=" + strconv.Itoa(len(cfg.Mapping)) + " entries")
	}

	if cfg.ExcludeFile != "" {
		o.Println("exclude_file=" + cfg.ExcludeFile)
	}

	if len(cfg.Exclude) > 0 {
		o.Println("exclude=" + strings.Join(cfg.Exclude, ","))
	}

	o.Printf("max_results=%d\n", cfg.MaxResults)
	o.Printf("max_tags=%d\n", cfg.MaxTags)
	o.Printf("max_relations=%d\n", cfg.MaxRelations)
	o.Printf("min_group_size=%d\n", cfg.MinGroupSize)
	o.Printf("max_groups=%d\n", cfg.MaxGroups)
	o.Printf("buckets=%d\n", cfg.Buckets)
	o.Println("category_property=" + cfg.CategoryProperty)
	o.Println("color=" + strconv.FormatBool(s.color))

	for _, f := range cfg.Filters {
		o.Println("filter=" + f.String())
	}

	for _, g := range cfg.Groups {
		o.Println("group=" + strings.Join(g, ","))
	}

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
