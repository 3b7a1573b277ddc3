package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/calvinalkan/taskstat/internal/config"
)

const (
	consumedNone = 0
	consumedOne  = 1
	consumedTwo  = 2
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
// sigCh may be nil; a received signal cancels the running command.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < 2 {
		printUsage(out, nil)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, nil)

		return 1
	}

	cfg, err := config.LoadConfig(config.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if flags.color != nil {
		cfg.Color = flags.color
	}

	s := &session{
		cfg:    cfg,
		env:    env,
		logger: newLogger(errOut, flags.verbose),
		color:  useColor(cfg.Color, out, env),
	}

	commands := []*Command{
		SummaryCmd(s),
		TasksCmd(s),
		TagsCmd(s),
		GroupsCmd(s),
		ExportCmd(s),
		PrintConfigCmd(s),
	}

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out, commands)

		return 0
	}

	name := flags.remaining[0]

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	code := cmd.Run(ctx, o, flags.remaining[1:])

	// Finish handles warnings and exit code
	finish := o.Finish()
	if code != 0 {
		return code
	}

	return finish
}

// session is the state shared by every command of one invocation.
type session struct {
	cfg    config.Config
	env    map[string]string
	logger *slog.Logger
	color  bool
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// useColor resolves the colour setting: an explicit choice wins, then
// NO_COLOR, then terminal detection.
func useColor(choice *bool, out io.Writer, env map[string]string) bool {
	if choice != nil {
		return *choice
	}

	if env["NO_COLOR"] != "" {
		return false
	}

	return isTerminal(out)
}

type globalFlags struct {
	workDir    string
	configPath string
	color      *bool
	verbose    bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	switch arg {
	case "--color", "--no-color":
		on := arg == "--color"
		flags.color = &on

		return consumedOne, nil
	case "-v", "--verbose":
		flags.verbose = true

		return consumedOne, nil
	case "-h", helpFlag:
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `taskstat - statistics over org-mode and markdown task archives

Usage: taskstat [options] <command> [flags] [path...]

Options:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
      --color           Force coloured output
      --no-color        Disable coloured output
  -v, --verbose         Log progress to stderr
  -h, --help            Show help

Commands:`)

	if commands == nil {
		fprintln(w, "  summary, tasks, tags, groups, export, print-config")

		return
	}

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}
}
