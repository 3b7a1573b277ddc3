package task

import (
	"fmt"
	"slices"
	"strings"
)

// Default state vocabularies.
var (
	DefaultTodoKeys = []string{"TODO"}
	DefaultDoneKeys = []string{"DONE"}
)

// States is the todo/done keyword vocabulary.
type States struct {
	Todo []string `json:"todo_keys"`
	Done []string `json:"done_keys"`
}

// DefaultStates returns the built-in vocabulary.
func DefaultStates() States {
	return States{Todo: slices.Clone(DefaultTodoKeys), Done: slices.Clone(DefaultDoneKeys)}
}

// IsDone reports whether state is a completed state.
func (s States) IsDone(state string) bool { return slices.Contains(s.Done, state) }

// IsTodo reports whether state is an open state.
func (s States) IsTodo(state string) bool { return slices.Contains(s.Todo, state) }

// Known reports whether state belongs to either vocabulary.
func (s States) Known(state string) bool { return s.IsDone(state) || s.IsTodo(state) }

// Merge returns the union of s and o, preserving first-seen order.
func (s States) Merge(o States) States {
	return States{Todo: union(s.Todo, o.Todo), Done: union(s.Done, o.Done)}
}

func union(a, b []string) []string {
	out := slices.Clone(a)

	for _, k := range b {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}

	return out
}

// ParseKeys parses a comma-separated keyword list such as "DONE,CANCELLED".
func ParseKeys(s string) ([]string, error) {
	var keys []string

	for part := range strings.SplitSeq(s, ",") {
		key := strings.TrimSpace(part)
		if key == "" {
			continue
		}

		if err := ValidateKey(key); err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, ErrNoStates
	}

	return keys, nil
}

// ValidateKey checks that key can be used as a todo keyword.
func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, "| \t") {
		return fmt.Errorf("%w: %q", ErrInvalidState, key)
	}

	return nil
}
