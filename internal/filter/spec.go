package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Kind names a filter type.
type Kind string

// Filter kinds accepted by Build.
const (
	KindPreset          Kind = "preset"
	KindDifficultyAbove Kind = "gamify-exp-above"
	KindDifficultyBelow Kind = "gamify-exp-below"
	KindRepeatsAbove    Kind = "repeats-above"
	KindRepeatsBelow    Kind = "repeats-below"
	KindDateFrom        Kind = "date-from"
	KindDateUntil       Kind = "date-until"
	KindProperty        Kind = "property"
	KindTag             Kind = "tag"
	KindHeading         Kind = "heading"
	KindBody            Kind = "body"
	KindCompleted       Kind = "completed"
	KindNotCompleted    Kind = "not-completed"
	KindCategory        Kind = "category"
)

// Kinds lists every kind in help order.
var Kinds = []Kind{
	KindPreset, KindDifficultyAbove, KindDifficultyBelow, KindRepeatsAbove, KindRepeatsBelow,
	KindDateFrom, KindDateUntil, KindProperty, KindTag, KindHeading, KindBody,
	KindCompleted, KindNotCompleted, KindCategory,
}

// Presets.
const (
	PresetAll     = "all"
	PresetSimple  = task.CategorySimple
	PresetRegular = task.CategoryRegular
	PresetHard    = task.CategoryHard
)

// Spec is an unvalidated filter description, as read from flags or config.
type Spec struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
}

func (s Spec) String() string {
	if s.Value == "" {
		return string(s.Kind)
	}

	return string(s.Kind) + "=" + s.Value
}

// Build validates specs and returns the corresponding chain, preserving order.
// No filter is constructed unless every spec is valid.
func Build(specs []Spec, states task.States) (Chain, error) {
	chain := make(Chain, 0, len(specs))

	for _, spec := range specs {
		filters, err := build(spec, states)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidFilter, spec, err)
		}

		chain = append(chain, filters...)
	}

	return chain, nil
}

func build(spec Spec, states task.States) ([]Filter, error) {
	value := strings.TrimSpace(spec.Value)

	switch spec.Kind {
	case KindPreset:
		return Preset(value)
	case KindDifficultyAbove, KindDifficultyBelow, KindRepeatsAbove, KindRepeatsBelow:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, spec.Value)
		}

		return []Filter{threshold(spec.Kind, n)}, nil
	case KindDateFrom:
		t, _, err := ParseTime(value)
		if err != nil {
			return nil, err
		}

		return []Filter{DateFrom(t)}, nil
	case KindDateUntil:
		t, dateOnly, err := ParseTime(value)
		if err != nil {
			return nil, err
		}

		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}

		return []Filter{DateUntil(t)}, nil
	case KindProperty:
		key, val, ok := strings.Cut(spec.Value, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, spec.Value)
		}

		return []Filter{Property(strings.TrimSpace(key), val)}, nil
	case KindTag, KindHeading, KindBody:
		re, err := compile(spec.Kind, spec.Value)
		if err != nil {
			return nil, err
		}

		switch spec.Kind {
		case KindTag:
			return []Filter{Tag(re)}, nil
		case KindHeading:
			return []Filter{Heading(re)}, nil
		default:
			return []Filter{Body(re)}, nil
		}
	case KindCompleted:
		return []Filter{Completed(states)}, nil
	case KindNotCompleted:
		return []Filter{NotCompleted(states)}, nil
	case KindCategory:
		switch value {
		case task.CategorySimple, task.CategoryRegular, task.CategoryHard:
			return []Filter{Category(value)}, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, spec.Value)
		}
	default:
		return nil, ErrUnknownKind
	}
}

func threshold(kind Kind, n int) Filter {
	switch kind {
	case KindDifficultyAbove:
		return DifficultyAbove(n)
	case KindDifficultyBelow:
		return DifficultyBelow(n)
	case KindRepeatsAbove:
		return RepeatsAbove(n)
	default:
		return RepeatsBelow(n)
	}
}

func compile(kind Kind, expr string) (*regexp.Regexp, error) {
	if kind == KindBody {
		expr = "(?m)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegexp, err)
	}

	return re, nil
}

// Preset expands a named difficulty preset.
func Preset(name string) ([]Filter, error) {
	switch name {
	case PresetAll:
		return nil, nil
	case PresetSimple:
		return []Filter{DifficultyBelow(10)}, nil
	case PresetRegular:
		return []Filter{DifficultyAbove(9), DifficultyBelow(20)}, nil
	case PresetHard:
		return []Filter{DifficultyAbove(19)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTime parses a filter date. dateOnly reports whether the value had no time part.
func ParseTime(s string) (t time.Time, dateOnly bool, err error) {
	if d, err := time.Parse(task.DateLayout, s); err == nil {
		return d, true, nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, false, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}
