package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/taskstat/internal/config"
	"github.com/calvinalkan/taskstat/internal/filter"
	"github.com/calvinalkan/taskstat/internal/task"
)

// filterValue appends a filter.Spec to a shared list on every use, so the
// chain keeps the order the flags were given in.
type filterValue struct {
	kind  filter.Kind
	typ   string
	specs *[]filter.Spec
}

func (v *filterValue) Set(s string) error {
	if v.typ == "bool" {
		on, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}

		if on {
			*v.specs = append(*v.specs, filter.Spec{Kind: v.kind})
		}

		return nil
	}

	*v.specs = append(*v.specs, filter.Spec{Kind: v.kind, Value: s})

	return nil
}

func (v *filterValue) String() string { return "" }
func (v *filterValue) Type() string   { return v.typ }

var filterFlags = []struct {
	name  string
	short string
	kind  filter.Kind
	typ   string
	usage string
}{
	{"filter", "f", filter.KindPreset, "preset", "Difficulty preset: simple, regular, hard or all"},
	{"filter-gamify-exp-above", "", filter.KindDifficultyAbove, "int", "Keep tasks with gamify_exp > N (missing counts as 10)"},
	{"filter-gamify-exp-below", "", filter.KindDifficultyBelow, "int", "Keep tasks with gamify_exp < N (missing counts as 10)"},
	{"filter-repeats-above", "", filter.KindRepeatsAbove, "int", "Keep tasks with more than N occurrences"},
	{"filter-repeats-below", "", filter.KindRepeatsBelow, "int", "Keep tasks with fewer than N occurrences"},
	{"filter-date-from", "", filter.KindDateFrom, "date", "Keep occurrences on or after date (YYYY-MM-DD[THH:MM])"},
	{"filter-date-until", "", filter.KindDateUntil, "date", "Keep occurrences on or before date (YYYY-MM-DD[THH:MM])"},
	{"filter-property", "", filter.KindProperty, "key=value", "Keep tasks whose property equals value"},
	{"filter-tag", "", filter.KindTag, "regexp", "Keep tasks with a tag matching regexp"},
	{"filter-heading", "", filter.KindHeading, "regexp", "Keep tasks whose heading matches regexp"},
	{"filter-body", "", filter.KindBody, "regexp", "Keep tasks whose body matches regexp (multiline)"},
	{"filter-category", "", filter.KindCategory, "category", "Keep tasks of difficulty category: simple, regular or hard"},
	{"filter-completed", "", filter.KindCompleted, "bool", "Keep completed occurrences"},
	{"filter-not-completed", "", filter.KindNotCompleted, "bool", "Keep open occurrences and tasks without state"},
}

// analysisFlags are the flags shared by every command that analyzes tasks.
// Values only override the configuration when given.
type analysisFlags struct {
	fs *flag.FlagSet

	use              string
	todoKeys         string
	doneKeys         string
	mapping          string
	exclude          string
	maxResults       int
	maxTags          int
	maxRelations     int
	minGroupSize     int
	maxGroups        int
	buckets          int
	categoryProperty string

	filters []filter.Spec
}

func newAnalysisFlags(name string) *analysisFlags {
	a := &analysisFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	fs := a.fs

	fs.StringVar(&a.use, "use", "", "Items to analyze: tags, heading or body (default tags)")
	fs.StringVar(&a.todoKeys, "todo-keys", "", "Comma-separated open states (default TODO)")
	fs.StringVar(&a.doneKeys, "done-keys", "", "Comma-separated completed states (default DONE)")
	fs.StringVar(&a.mapping, "mapping", "", "Mapping file (.json, .yaml or .toml)")
	fs.StringVar(&a.exclude, "exclude", "", "File of items to exclude, one per line")
	fs.IntVarP(&a.maxResults, "max-results", "n", 0, "Maximum recent tasks to show (default 10)")
	fs.IntVar(&a.maxTags, "max-tags", 0, "Maximum items to show, 0 omits the section (default 5)")
	fs.IntVar(&a.maxRelations, "max-relations", 0, "Maximum relations per item (default 5)")
	fs.IntVar(&a.minGroupSize, "min-group-size", 0, "Minimum group size to show (default 2)")
	fs.IntVar(&a.maxGroups, "max-groups", 0, "Maximum groups to show, 0 omits the section (default 5)")
	fs.IntVar(&a.buckets, "buckets", 0, "Chart buckets and histogram width, at least 20 (default 50)")
	fs.StringVar(&a.categoryProperty, "category-property", "", "Property of the category histogram (default gamify_exp)")

	for _, ff := range filterFlags {
		v := &filterValue{kind: ff.kind, typ: ff.typ, specs: &a.filters}

		f := fs.VarPF(v, ff.name, ff.short, ff.usage)
		if ff.typ == "bool" {
			f.NoOptDefVal = "true"
		}
	}

	return a
}

// resolve applies the given flags on top of cfg and validates the result.
// Filters from the configuration run before command-line filters.
func (a *analysisFlags) resolve(cfg config.Config) (config.Config, error) {
	fs := a.fs

	if fs.Changed("use") {
		cfg.Use = a.use
	}

	for _, keys := range []struct {
		name string
		raw  string
		dst  *[]string
	}{
		{"todo-keys", a.todoKeys, &cfg.TodoKeys},
		{"done-keys", a.doneKeys, &cfg.DoneKeys},
	} {
		if !fs.Changed(keys.name) {
			continue
		}

		parsed, err := task.ParseKeys(keys.raw)
		if err != nil {
			return config.Config{}, fmt.Errorf("--%s: %w", keys.name, err)
		}

		*keys.dst = parsed
	}

	if fs.Changed("mapping") {
		cfg.MappingFile = absPath(cfg.EffectiveCwd, a.mapping)
	}

	if fs.Changed("exclude") {
		cfg.ExcludeFile = absPath(cfg.EffectiveCwd, a.exclude)
	}

	for _, n := range []struct {
		name string
		val  int
		dst  *int
	}{
		{"max-results", a.maxResults, &cfg.MaxResults},
		{"max-tags", a.maxTags, &cfg.MaxTags},
		{"max-relations", a.maxRelations, &cfg.MaxRelations},
		{"min-group-size", a.minGroupSize, &cfg.MinGroupSize},
		{"max-groups", a.maxGroups, &cfg.MaxGroups},
		{"buckets", a.buckets, &cfg.Buckets},
	} {
		if fs.Changed(n.name) {
			*n.dst = n.val
		}
	}

	if fs.Changed("category-property") {
		cfg.CategoryProperty = a.categoryProperty
	}

	cfg.Filters = append(append([]filter.Spec{}, cfg.Filters...), a.filters...)

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func absPath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
