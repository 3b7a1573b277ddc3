package filter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskstat/internal/filter"
	"github.com/calvinalkan/taskstat/internal/task"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}

	return t
}

func headings(views []task.View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Heading())
	}

	return out
}

func repeatDates(v task.View) []string {
	var out []string
	for _, r := range v.Repeats() {
		out = append(out, task.DateOf(r.Time).String())
	}

	return out
}

func exp(n string) map[string]string {
	return map[string]string{task.DifficultyProperty: n}
}

func collection() []task.View {
	return task.Views([]*task.Task{
		{Heading: "easy", Properties: exp("5"), Tags: []string{"home"}, State: "DONE", Closed: at("2024-01-10 10:00")},
		{Heading: "medium", Properties: exp("15"), Tags: []string{"work", "deep"}, State: "TODO"},
		{Heading: "missing", Tags: []string{"work"}, Body: "first line\ncall Bob"},
		{Heading: "hard", Properties: exp("(25 30)"), State: "CANCELLED", Scheduled: at("2024-02-01 10:00")},
		{
			Heading: "recurring",
			Tags:    []string{"home"},
			State:   "TODO",
			Repeats: []task.Repeat{
				{State: "DONE", Time: at("2024-01-01 08:00")},
				{State: "DONE", Time: at("2024-01-15 08:00")},
				{State: "CANCELLED", Time: at("2024-02-01 08:00")},
			},
		},
	})
}

func Test_Selecting_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec filter.Spec
		want []string
	}{
		{name: "DifficultyAboveDefaultsMissingToTen", spec: filter.Spec{Kind: filter.KindDifficultyAbove, Value: "9"}, want: []string{"medium", "missing", "hard", "recurring"}},
		{name: "DifficultyBelow", spec: filter.Spec{Kind: filter.KindDifficultyBelow, Value: "10"}, want: []string{"easy"}},
		{name: "RepeatsAbove", spec: filter.Spec{Kind: filter.KindRepeatsAbove, Value: "1"}, want: []string{"recurring"}},
		{name: "RepeatsBelowCountsPlainTaskAsOne", spec: filter.Spec{Kind: filter.KindRepeatsBelow, Value: "2"}, want: []string{"easy", "medium", "missing", "hard"}},
		{name: "PropertyExact", spec: filter.Spec{Kind: filter.KindProperty, Value: "gamify_exp=15"}, want: []string{"medium"}},
		{name: "PropertyMissingNeverMatches", spec: filter.Spec{Kind: filter.KindProperty, Value: "effort=1"}, want: []string{}},
		{name: "TagRegexp", spec: filter.Spec{Kind: filter.KindTag, Value: "^wo"}, want: []string{"medium", "missing"}},
		{name: "HeadingRegexp", spec: filter.Spec{Kind: filter.KindHeading, Value: "^(easy|hard)$"}, want: []string{"easy", "hard"}},
		{name: "BodyRegexpIsMultiline", spec: filter.Spec{Kind: filter.KindBody, Value: "^call"}, want: []string{"missing"}},
		{name: "PresetSimple", spec: filter.Spec{Kind: filter.KindPreset, Value: "simple"}, want: []string{"easy"}},
		{name: "PresetRegular", spec: filter.Spec{Kind: filter.KindPreset, Value: "regular"}, want: []string{"medium", "missing", "recurring"}},
		{name: "PresetHard", spec: filter.Spec{Kind: filter.KindPreset, Value: "hard"}, want: []string{"hard"}},
		{name: "PresetAll", spec: filter.Spec{Kind: filter.KindPreset, Value: "all"}, want: []string{"easy", "medium", "missing", "hard", "recurring"}},
		{name: "Category", spec: filter.Spec{Kind: filter.KindCategory, Value: "hard"}, want: []string{"hard"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			chain, err := filter.Build([]filter.Spec{testCase.spec}, task.DefaultStates())
			require.NoError(t, err)

			got := headings(chain.Apply(collection()))
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("headings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Date_Filter_Splits_Repeats(t *testing.T) {
	t.Parallel()

	chain, err := filter.Build([]filter.Spec{
		{Kind: filter.KindDateFrom, Value: "2024-01-05"},
		{Kind: filter.KindDateUntil, Value: "2024-01-31"},
	}, task.DefaultStates())
	require.NoError(t, err)

	got := chain.Apply(collection())
	require.Equal(t, []string{"easy", "recurring"}, headings(got))

	recurring := got[1]
	require.True(t, recurring.Restricted())
	require.Equal(t, []string{"2024-01-15"}, repeatDates(recurring))

	if got, want := len(recurring.Task().Repeats), 3; got != want {
		t.Errorf("original repeats=%d, want=%d", got, want)
	}
}

func Test_Date_Until_Without_Time_Includes_Whole_Day(t *testing.T) {
	t.Parallel()

	chain, err := filter.Build([]filter.Spec{{Kind: filter.KindDateUntil, Value: "2024-01-10"}}, task.DefaultStates())
	require.NoError(t, err)

	got := headings(chain.Apply(collection()))
	require.Equal(t, []string{"easy", "recurring"}, got)

	chain, err = filter.Build([]filter.Spec{{Kind: filter.KindDateUntil, Value: "2024-01-10T09:59"}}, task.DefaultStates())
	require.NoError(t, err)

	got = headings(chain.Apply(collection()))
	require.Equal(t, []string{"recurring"}, got)
}

func Test_Date_Filters_Compare_Wall_Clock_Of_Offset_Timestamps(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("+02:00", 2*60*60)
	views := task.Views([]*task.Task{
		{Heading: "early", State: "DONE", Closed: time.Date(2024, time.January, 2, 0, 30, 0, 0, plus2)},
		{Heading: "late", State: "DONE", Closed: time.Date(2024, time.January, 1, 23, 30, 0, 0, plus2)},
	})

	if got, want := task.DateOf(views[0].Closed()).String(), "2024-01-02"; got != want {
		t.Fatalf("date=%s, want=%s", got, want)
	}

	from, err := filter.Build([]filter.Spec{{Kind: filter.KindDateFrom, Value: "2024-01-02"}}, task.DefaultStates())
	require.NoError(t, err)
	require.Equal(t, []string{"early"}, headings(from.Apply(views)))

	until, err := filter.Build([]filter.Spec{{Kind: filter.KindDateUntil, Value: "2024-01-01"}}, task.DefaultStates())
	require.NoError(t, err)
	require.Equal(t, []string{"late"}, headings(until.Apply(views)))
}

func Test_Date_Filter_Keeps_Unchanged_View_When_All_Repeats_Match(t *testing.T) {
	t.Parallel()

	chain, err := filter.Build([]filter.Spec{{Kind: filter.KindDateFrom, Value: "2023-12-01"}}, task.DefaultStates())
	require.NoError(t, err)

	got := chain.Apply(collection())
	for _, v := range got {
		if v.Restricted() {
			t.Errorf("%s: must not be restricted", v.Heading())
		}
	}

	// Unresolved tasks never match a date filter.
	require.Equal(t, []string{"easy", "hard", "recurring"}, headings(got))
}

func Test_Date_Filter_Is_Idempotent(t *testing.T) {
	t.Parallel()

	chain, err := filter.Build([]filter.Spec{{Kind: filter.KindDateFrom, Value: "2024-01-05 00:00"}}, task.DefaultStates())
	require.NoError(t, err)

	once := chain.Apply(collection())
	twice := chain.Apply(once)

	require.Equal(t, headings(once), headings(twice))

	for i := range once {
		require.Equal(t, repeatDates(once[i]), repeatDates(twice[i]))
	}
}

func Test_Completed_Filters_Split_By_State(t *testing.T) {
	t.Parallel()

	states := task.States{Todo: []string{"TODO"}, Done: []string{"DONE"}}

	done, err := filter.Build([]filter.Spec{{Kind: filter.KindCompleted}}, states)
	require.NoError(t, err)

	got := done.Apply(collection())
	require.Equal(t, []string{"easy", "recurring"}, headings(got))
	require.Equal(t, []string{"2024-01-01", "2024-01-15"}, repeatDates(got[1]))

	open, err := filter.Build([]filter.Spec{{Kind: filter.KindNotCompleted}}, states)
	require.NoError(t, err)

	// The repeating task's own TODO state is irrelevant: its repeats are DONE or CANCELLED.
	// Tasks without any state count as not completed.
	require.Equal(t, []string{"medium", "missing"}, headings(open.Apply(collection())))
}

func Test_Filters_May_Produce_Empty_Collection(t *testing.T) {
	t.Parallel()

	chain, err := filter.Build([]filter.Spec{
		{Kind: filter.KindTag, Value: "home"},
		{Kind: filter.KindTag, Value: "work"},
	}, task.DefaultStates())
	require.NoError(t, err)

	got := chain.Apply(collection())
	require.Empty(t, got)
	require.Empty(t, chain.Apply(nil))
}

func Test_Build_Rejects_Malformed_Specs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec filter.Spec
		err  error
	}{
		{spec: filter.Spec{Kind: filter.KindDateFrom, Value: "yesterday"}, err: filter.ErrInvalidTime},
		{spec: filter.Spec{Kind: filter.KindTag, Value: "("}, err: filter.ErrInvalidRegexp},
		{spec: filter.Spec{Kind: filter.KindRepeatsAbove, Value: "x"}, err: filter.ErrInvalidNumber},
		{spec: filter.Spec{Kind: filter.KindProperty, Value: "novalue"}, err: filter.ErrInvalidPair},
		{spec: filter.Spec{Kind: filter.KindPreset, Value: "epic"}, err: filter.ErrUnknownPreset},
		{spec: filter.Spec{Kind: "nope"}, err: filter.ErrUnknownKind},
	}

	for _, testCase := range tests {
		t.Run(testCase.spec.String(), func(t *testing.T) {
			t.Parallel()

			chain, err := filter.Build([]filter.Spec{{Kind: filter.KindCompleted}, testCase.spec}, task.DefaultStates())
			if chain != nil {
				t.Error("chain must be nil on error")
			}

			if !errors.Is(err, filter.ErrInvalidFilter) || !errors.Is(err, testCase.err) {
				t.Errorf("err=%v, want %v", err, testCase.err)
			}
		})
	}
}
