package cli

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/calvinalkan/taskstat/internal/export"
)

// ExportCmd returns the export command.
func ExportCmd(s *session) *Command {
	a := newAnalysisFlags("export")

	var (
		format string
		output string
	)

	a.fs.StringVar(&format, "format", "", "Output format: json or sqlite (default from the file extension, else json)")
	a.fs.StringVarP(&output, "output", "o", "", "Output file (required)")

	return &Command{
		Flags: a.fs,
		Usage: "export -o <file> [--format json|sqlite] [flags] [path...]",
		Short: "Write the analysis to a file",
		Long: `Write totals, histograms, ranked items with relations and time ranges,
and groups to a JSON document or a SQLite database. The file is
replaced atomically.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if output == "" {
				return export.ErrNoOutput
			}

			f, err := export.ParseFormat(formatFor(format, output))
			if err != nil {
				return err
			}

			an, err := s.analyze(ctx, o, a, args, nil)
			if err != nil || an == nil {
				return err
			}

			report := export.NewReport(an.result, export.ReportOptions{
				Domain:       string(an.extractor.Domain),
				MaxRelations: an.cfg.MaxRelations,
				MinGroupSize: an.cfg.MinGroupSize,
				MaxGroups:    an.cfg.MaxGroups,
				Now:          time.Now(),
			})

			path := absPath(s.cfg.EffectiveCwd, output)

			if err := export.Write(ctx, path, f, report); err != nil {
				return err
			}

			s.logger.Debug("exported", "path", path, "format", f, "items", len(report.Items))
			o.Println(path)

			return nil
		},
	}
}

func formatFor(format, output string) string {
	if format != "" {
		return format
	}

	switch strings.ToLower(filepath.Ext(output)) {
	case ".db", ".sqlite", ".sqlite3":
		return string(export.FormatSQLite)
	default:
		return string(export.FormatJSON)
	}
}
