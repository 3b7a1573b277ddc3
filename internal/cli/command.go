package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one taskstat subcommand: its flag set, help texts and body.
type Command struct {
	// Flags holds the analysis and command flags. Its name is ignored.
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "summary [flags] [path...]".
	Usage string

	// Short appears next to the command in the top-level listing.
	Short string

	// Long replaces Short in "taskstat <cmd> --help" when set.
	Long string

	// Exec receives the paths left after flag parsing.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the word "taskstat <name>" dispatches on.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine formats the command for the "Commands:" listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp writes usage, description and flag defaults to stdout.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: taskstat", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses args and calls Exec, returning the exit code.
// Flag errors print the message to stderr and the help to stdout.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)
		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
