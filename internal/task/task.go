// Package task holds the task record produced by the document parsers,
// the lightweight view the filters derive from it, and the occurrence
// stream every statistic is computed from.
package task

import (
	"slices"
	"time"
)

// Task is a single heading parsed from an input document.
// Zero timestamps mean the timestamp is absent; an empty State means
// the heading carries no todo keyword.
//
// A Task is never mutated after the parser returns it.
type Task struct {
	File       string
	Line       int
	Heading    string
	Body       string
	Tags       []string
	Properties map[string]string
	State      string
	Closed     time.Time
	Scheduled  time.Time
	Deadline   time.Time
	Repeats    []Repeat
}

// Repeat is one recorded state transition of a recurring task.
type Repeat struct {
	// State is the state the task moved into.
	State string
	// From is the state the task moved out of, if recorded.
	From string
	// Time is the transition time; zero when the record had no timestamp.
	Time time.Time
}

// View is a read-only handle on a Task that may expose a subset of its repeats.
//
// Filters that split repeats return a View whose repeat list is restricted,
// while every other field is read from the original Task.
type View struct {
	task     *Task
	repeats  []Repeat
	override bool
}

// Of returns a View exposing t unchanged.
func Of(t *Task) View {
	return View{task: t}
}

// Views wraps every task in a View.
func Views(tasks []*Task) []View {
	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, Of(t))
	}

	return views
}

// Restrict returns a View over the same original task exposing only repeats.
// Restricting an already restricted view never nests.
func (v View) Restrict(repeats []Repeat) View {
	return View{task: v.task, repeats: repeats, override: true}
}

// Task returns the original, unrestricted task.
func (v View) Task() *Task { return v.task }

// Restricted reports whether v exposes a subset of the original repeats.
func (v View) Restricted() bool { return v.override }

func (v View) File() string { return v.task.File }
func (v View) Line() int { return v.task.Line }
func (v View) Heading() string { return v.task.Heading }
func (v View) Body() string { return v.task.Body }
func (v View) Tags() []string { return v.task.Tags }
func (v View) State() string { return v.task.State }
func (v View) Closed() time.Time { return v.task.Closed }
func (v View) Scheduled() time.Time { return v.task.Scheduled }
func (v View) Deadline() time.Time { return v.task.Deadline }
func (v View) HasTag(tag string) bool { return slices.Contains(v.task.Tags, tag) }

// Property returns the value of a property and whether it is set.
func (v View) Property(key string) (string, bool) {
	val, ok := v.task.Properties[key]

	return val, ok
}

// Repeats returns the exposed repeat records.
func (v View) Repeats() []Repeat {
	if v.override {
		return v.repeats
	}

	return v.task.Repeats
}

// RepeatCount is the number of occurrences the view contributes.
// A task without repeats counts once.
func (v View) RepeatCount() int {
	return max(1, len(v.Repeats()))
}
