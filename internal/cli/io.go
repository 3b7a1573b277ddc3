package cli

import (
	"fmt"
	"io"
)

// IO carries a command's report to stdout and its warnings to stderr.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	started  bool
}

// NewIO writes the report to out and warnings to errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn queues "issue: action" for stderr. Queued warnings appear before the
// first report line and again after the last one, and make Finish return 1.
// The report itself is still printed, so one unreadable archive file does
// not hide the statistics of the others.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Println writes one report line.
func (o *IO) Println(a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted report output.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarningsStart()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes an error line to stderr immediately.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats the warnings after the report and returns 1 if there were any.
func (o *IO) Finish() int {
	o.flushWarningsStart()

	if len(o.warnings) == 0 {
		return 0
	}

	o.printWarnings()

	return 1
}

// flushWarningsStart prints queued warnings once, ahead of the report.
func (o *IO) flushWarningsStart() {
	if o.started || len(o.warnings) == 0 {
		return
	}

	o.printWarnings()
	o.started = true
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
