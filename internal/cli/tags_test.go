package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/taskstat/internal/cli"
)

func Test_Tags_Shows_Selected_Items_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("tags", "--show", "go,home")

	cli.AssertContains(t, stdout, "TAGS:")
	cli.AssertContains(t, stdout, "  go\n    Total tasks: 2")
	cli.AssertContains(t, stdout, "      cli (1)\n      testing (1)")
	cli.AssertContains(t, stdout, "  home\n    Total tasks: 2")
	cli.AssertNotContains(t, stdout, "  testing\n")
}

func Test_Tags_Applies_Mapping_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)
	writeFile(t, filepath.Join(c.Dir, "map.yaml"), "testing: go\n")

	stdout := c.MustRun("tags", "--mapping", "map.yaml", "--show", "go")

	// testing maps onto go, so the second task no longer relates go to anything new.
	cli.AssertContains(t, stdout, "  go\n    Total tasks: 2")
	cli.AssertNotContains(t, stdout, "testing (1)")
}

func Test_Tags_Hides_Excluded_Items_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)
	writeFile(t, filepath.Join(c.Dir, "exclude.txt"), "CLI\n")

	stdout := c.MustRun("tags", "--exclude", "exclude.txt", "--max-tags", "0")

	cli.AssertContains(t, stdout, "  go\n")
	cli.AssertContains(t, stdout, "  home\n")
	cli.AssertContains(t, stdout, "  testing\n")
	cli.AssertNotContains(t, stdout, "cli")
}

func Test_Tags_Unknown_Item_Has_No_Results_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "tasks.org"), tasksOrg)

	stdout := c.MustRun("tags", "--show", "rust")

	cli.AssertContains(t, stdout, "  rust\n    Total tasks: 0")
}
