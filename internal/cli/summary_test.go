package cli_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/taskstat/internal/cli"
)

func Test_Summary_Prints_Every_Section_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("summary")

	// Overview
	cli.AssertContains(t, stdout, "┊████┊ 1 (2024-01-01)")
	cli.AssertContains(t, stdout, "Total tasks: 5")
	cli.AssertContains(t, stdout, "Average tasks per day: 1.00")
	cli.AssertContains(t, stdout, "Max tasks on a single day: 1")
	cli.AssertContains(t, stdout, "Max repeats of a single task: 2")

	// Histograms: bars are the share of the sum scaled to 50 cells.
	cli.AssertContains(t, stdout, "Task states:")
	cli.AssertContains(t, stdout, "  DONE     ┊"+strings.Repeat("█", 40)+" 4")
	cli.AssertContains(t, stdout, "  TODO     ┊"+strings.Repeat("█", 10)+" 1")
	cli.AssertContains(t, stdout, "Task categories:")
	cli.AssertContains(t, stdout, "  regular  ┊")
	cli.AssertContains(t, stdout, "Task occurrence by day of week:")
	cli.AssertContains(t, stdout, "  Monday   ┊"+strings.Repeat("█", 12)+" 1")
	cli.AssertContains(t, stdout, "  Sunday   ┊ 0")
	cli.AssertContains(t, stdout, "  unknown  ┊ 0")

	// Recent tasks, newest first; tasks without a date are left out.
	cli.AssertContains(t, stdout, "TASKS:\n  tasks.org: TODO Water plants\n  tasks.org: DONE Fix tests\n  tasks.org: DONE Write parser")
	cli.AssertNotContains(t, stdout, "Plan release")

	// Items and groups
	cli.AssertContains(t, stdout, "TAGS:")
	cli.AssertContains(t, stdout, "  cli\n    Total tasks: 2")
	cli.AssertContains(t, stdout, "    Top relations:\n      go (1)")
	cli.AssertContains(t, stdout, "GROUPS:")
	cli.AssertContains(t, stdout, "  cli, go, testing\n    Total tasks: 3")
}

func Test_Summary_No_Results_When_Everything_Is_Filtered(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("summary", "--filter-tag", "^nothing$")

	if got, want := stdout, "No results"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Summary_Reads_Org_And_Ticket_Files_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)
	writeFile(t, filepath.Join(c.Dir, "t-1.md"), ticketMd)
	writeFile(t, filepath.Join(c.Dir, "README.md"), "# Not a ticket\n")

	stdout := c.MustRun("summary", "--max-tags", "1")

	cli.AssertContains(t, stdout, "Total tasks: 6")
	cli.AssertContains(t, stdout, "TAGS:\n")
	cli.AssertContains(t, stdout, "  go\n    Total tasks: 3")
	cli.AssertContains(t, stdout, "t-1.md: DONE Document flags")
}

func Test_Summary_Warns_About_Unparsable_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)
	writeFile(t, filepath.Join(c.Dir, "notes.md"), "# No frontmatter\n")

	stdout, stderr, exitCode := c.Run("summary", "tasks.org", "notes.md")

	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stdout, "Total tasks: 5")
	cli.AssertContains(t, stderr, "warning: cannot parse")
	cli.AssertContains(t, stderr, "notes.md")

	// Once ahead of the report and once after it, nothing from the logger.
	if got, want := strings.Count(stderr, "notes.md"), 2; got != want {
		t.Errorf("notes.md mentioned %d times on stderr, want=%d\nstderr:\n%s", got, want, stderr)
	}

	cli.AssertNotContains(t, stderr, "parse failed")
}

func Test_Summary_Omits_Sections_With_Zero_Limits_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("summary", "--max-tags", "0", "--max-groups", "0")

	cli.AssertNotContains(t, stdout, "TAGS:")
	cli.AssertNotContains(t, stdout, "GROUPS:")
}

func Test_Summary_Uses_Heading_Words_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("summary", "--use", "heading")

	cli.AssertContains(t, stdout, "HEADING WORDS:")
	cli.AssertContains(t, stdout, "  plants\n")
	cli.AssertContains(t, stdout, "  water\n")
}

func Test_Summary_Verbose_Logs_To_Stderr_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	_, stderr, exitCode := c.Run("-v", "summary")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "level=DEBUG")
	cli.AssertContains(t, stderr, "msg=filtered")
}
