package task

import "time"

// Occurrence is one countable instance of a task: either a repeat record
// or, for a task without repeats, the task itself.
type Occurrence struct {
	State    string
	Time     time.Time
	Date     Date
	Resolved bool
}

// ResolveTime returns the time an occurrence happened.
//
// Priority: the repeat's own time, then closed, scheduled and deadline of the task.
// r may be nil for a task without repeats.
func ResolveTime(v View, r *Repeat) (time.Time, bool) {
	if r != nil && !r.Time.IsZero() {
		return r.Time, true
	}

	for _, t := range [...]time.Time{v.Closed(), v.Scheduled(), v.Deadline()} {
		if !t.IsZero() {
			return t, true
		}
	}

	return time.Time{}, false
}

// Resolve is ResolveTime truncated to the calendar day.
func Resolve(v View, r *Repeat) (Date, bool) {
	t, ok := ResolveTime(v, r)
	if !ok {
		return Date{}, false
	}

	return DateOf(t), true
}

// Occurrences returns one occurrence per exposed repeat, or a single
// occurrence carrying the task's own state when there are none.
func Occurrences(v View) []Occurrence {
	repeats := v.Repeats()
	if len(repeats) == 0 {
		return []Occurrence{newOccurrence(v, nil, v.State())}
	}

	occs := make([]Occurrence, 0, len(repeats))
	for i := range repeats {
		occs = append(occs, newOccurrence(v, &repeats[i], repeats[i].State))
	}

	return occs
}

func newOccurrence(v View, r *Repeat, state string) Occurrence {
	occ := Occurrence{State: state}

	if t, ok := ResolveTime(v, r); ok {
		occ.Time = t
		occ.Date = DateOf(t)
		occ.Resolved = true
	}

	return occ
}

// MostRecent returns the latest resolved time over all occurrences of v.
func MostRecent(v View) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)

	for _, occ := range Occurrences(v) {
		if occ.Resolved && (!found || occ.Time.After(latest)) {
			latest = occ.Time
			found = true
		}
	}

	return latest, found
}
