package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/taskstat/internal/cli"
)

func Test_Tasks_Prints_Overview_Only_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("tasks")

	cli.AssertContains(t, stdout, "Total tasks: 5")
	cli.AssertContains(t, stdout, "Task states:")
	cli.AssertNotContains(t, stdout, "TASKS:")
	cli.AssertNotContains(t, stdout, "TAGS:")
	cli.AssertNotContains(t, stdout, "GROUPS:")
}

func Test_Tasks_Applies_Filters_In_Command_Line_Order(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	// Water plants has two completions; the date filter then keeps one of them.
	stdout := c.MustRun("tasks", "--filter-repeats-above", "1", "--filter-date-from", "2024-01-04")
	cli.AssertContains(t, stdout, "Total tasks: 1")

	// The date filter leaves a single completion, which the repeat filter drops.
	stdout = c.MustRun("tasks", "--filter-date-from", "2024-01-04", "--filter-repeats-above", "1")
	if got, want := stdout, "No results"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Tasks_Completion_Filters_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("tasks", "--filter-completed")
	cli.AssertContains(t, stdout, "Total tasks: 4")
	cli.AssertContains(t, stdout, "TODO     ┊ 0")

	stdout = c.MustRun("tasks", "--filter-not-completed")
	cli.AssertContains(t, stdout, "Total tasks: 1")
}

func Test_Tasks_Date_Filters_Bound_The_Chart_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("tasks", "--filter-date-from", "2024-01-02", "--filter-date-until", "2024-01-03")

	cli.AssertContains(t, stdout, "2024-01-02")
	cli.AssertContains(t, stdout, "2024-01-03")
	cli.AssertContains(t, stdout, "Total tasks: 2")
	cli.AssertNotContains(t, stdout, "2024-01-04")
}

func Test_Tasks_Rejects_Invalid_Filter_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"--filter-date-from", "yesterday"}, want: "invalid filter"},
		{args: []string{"--filter-tag", "("}, want: "invalid filter"},
		{args: []string{"-f", "impossible"}, want: "invalid filter"},
		{args: []string{"--filter-property", "novalue"}, want: "invalid filter"},
		{args: []string{"--done-keys", "DO NE"}, want: "--done-keys"},
	}

	for _, tt := range tests {
		stderr := c.MustFail(append([]string{"tasks"}, tt.args...)...)
		cli.AssertContains(t, stderr, tt.want)
	}
}

func Test_Tasks_Config_Filters_Run_Before_Flags_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)
	writeFile(t, filepath.Join(c.Dir, ".taskstat.json"), `{"filters": [{"kind": "tag", "value": "^go$"}]}`)

	stdout := c.MustRun("tasks", "--filter-tag", "testing")
	cli.AssertContains(t, stdout, "Total tasks: 1")
}
