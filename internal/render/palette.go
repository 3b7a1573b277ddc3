package render

import (
	"github.com/fatih/color"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Palette colours output. A disabled palette returns text unchanged.
type Palette struct {
	enabled bool

	header *color.Color
	number *color.Color
	dim    *color.Color
	bar    *color.Color
	done   *color.Color
	failed *color.Color
	other  *color.Color
	states task.States
}

// NewPalette returns a palette. States decide how state labels are coloured.
func NewPalette(enabled bool, states task.States) Palette {
	p := Palette{
		enabled: enabled,
		header:  color.New(color.FgWhite, color.Bold),
		number:  color.New(color.FgMagenta),
		dim:     color.New(color.FgWhite, color.Faint),
		bar:     color.New(color.FgGreen),
		done:    color.New(color.FgGreen),
		failed:  color.New(color.FgRed),
		other:   color.New(color.FgYellow),
		states:  states,
	}

	// color.NoColor is process-wide; each palette decides for itself.
	for _, c := range []*color.Color{p.header, p.number, p.dim, p.bar, p.done, p.failed, p.other} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Plain is a palette without colour.
func Plain() Palette {
	return NewPalette(false, task.States{})
}

// Enabled reports whether colour codes are emitted.
func (p Palette) Enabled() bool { return p.enabled }

func (p Palette) Header(s string) string { return p.paint(p.header, s) }
func (p Palette) Number(s string) string { return p.paint(p.number, s) }
func (p Palette) Dim(s string) string { return p.paint(p.dim, s) }
func (p Palette) Bar(s string) string { return p.paint(p.bar, s) }

// File colours a file name.
func (p Palette) File(s string) string { return p.paint(p.done, s) }

// State colours a state label: done states green, CANCELLED red,
// todo states and the none bucket dim, anything else yellow.
func (p Palette) State(state, s string) string {
	switch {
	case state == "CANCELLED":
		return p.paint(p.failed, s)
	case p.states.IsDone(state):
		return p.paint(p.done, s)
	case p.states.IsTodo(state), state == "none", state == "":
		return p.paint(p.dim, s)
	default:
		return p.paint(p.other, s)
	}
}

func (p Palette) paint(c *color.Color, s string) string {
	if !p.enabled || c == nil || s == "" {
		return s
	}

	return c.Sprint(s)
}
