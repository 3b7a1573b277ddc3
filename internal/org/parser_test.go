package org_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskstat/internal/org"
	"github.com/calvinalkan/taskstat/internal/task"
)

const sample = `#+TITLE: Sample
#+FILETAGS: :personal:
#+TODO: TODO NEXT | DONE CANCELLED(c@)

Preamble text is ignored.

* Projects                                                          :work:
** DONE [#A] Write parser                                  :go:parsing:
   CLOSED: [2024-01-05 Fri 18:30] SCHEDULED: <2024-01-04 Thu>
   :PROPERTIES:
   :gamify_exp: 15
   :EFFORT:   2h
   :END:
   Parsing org files, carefully.
** NEXT Review
   DEADLINE: <2024-02-01 Thu 24:00>
* TODO Water plants                                                 :home:
  SCHEDULED: <2024-01-08 Mon +1w>
  :LOGBOOK:
  - State "DONE"       from "TODO"       [2024-01-01 Mon 09:15]
  - State "CANCELLED"  from "TODO"       [2024-01-08 Mon 10:00]
  CLOCK: [2024-01-01 Mon 09:00]--[2024-01-01 Mon 09:15] =>  0:15
  :END:
  - State "DONE"       from              [2024-01-15 Mon]
  Remember the cactus.
* Notes
`

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}

	return t
}

func Test_Parse_Sample_Document(t *testing.T) {
	t.Parallel()

	doc, err := org.Parse(strings.NewReader(sample), "sample.org", org.Options{States: task.DefaultStates()})
	require.NoError(t, err)

	assert.Equal(t, []string{"TODO", "NEXT"}, doc.States.Todo)
	assert.Equal(t, []string{"DONE", "CANCELLED"}, doc.States.Done)
	assert.Equal(t, []string{"personal"}, doc.FileTags)

	want := []*task.Task{
		{File: "sample.org", Line: 7, Heading: "Projects", Tags: []string{"personal", "work"}},
		{
			File:       "sample.org",
			Line:       8,
			Heading:    "Write parser",
			State:      "DONE",
			Tags:       []string{"personal", "work", "go", "parsing"},
			Closed:     at("2024-01-05 18:30"),
			Scheduled:  at("2024-01-04 00:00"),
			Properties: map[string]string{"gamify_exp": "15", "EFFORT": "2h"},
			Body:       "Parsing org files, carefully.",
		},
		{
			File:     "sample.org",
			Line:     15,
			Heading:  "Review",
			State:    "NEXT",
			Tags:     []string{"personal", "work"},
			Deadline: at("2024-02-01 00:00"),
		},
		{
			File:      "sample.org",
			Line:      17,
			Heading:   "Water plants",
			State:     "TODO",
			Tags:      []string{"personal", "home"},
			Scheduled: at("2024-01-08 00:00"),
			Repeats: []task.Repeat{
				{State: "DONE", From: "TODO", Time: at("2024-01-01 09:15")},
				{State: "CANCELLED", From: "TODO", Time: at("2024-01-08 10:00")},
				{State: "DONE", Time: at("2024-01-15 00:00")},
			},
			Body: "Remember the cactus.",
		},
		{File: "sample.org", Line: 26, Heading: "Notes", Tags: []string{"personal"}},
	}

	if diff := cmp.Diff(want, doc.Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func Test_Parse_Unknown_Keyword_Is_Part_Of_Heading(t *testing.T) {
	t.Parallel()

	doc, err := org.Parse(strings.NewReader("* WAITING on reply\n* TODO\n"), "x.org", org.Options{States: task.DefaultStates()})
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 2)

	assert.Empty(t, doc.Tasks[0].State)
	assert.Equal(t, "WAITING on reply", doc.Tasks[0].Heading)
	assert.Equal(t, "TODO", doc.Tasks[1].State)
	assert.Empty(t, doc.Tasks[1].Heading)
}

func Test_Parse_Todo_Declaration_Without_Bar(t *testing.T) {
	t.Parallel()

	doc, err := org.Parse(strings.NewReader("#+SEQ_TODO: OPEN STARTED CLOSED\n* CLOSED thing\n"), "x.org", org.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"OPEN", "STARTED"}, doc.States.Todo)
	assert.Equal(t, []string{"CLOSED"}, doc.States.Done)
	assert.Equal(t, "CLOSED", doc.Tasks[0].State)
}

func Test_Parse_Reports_Bad_Timestamp_With_Location(t *testing.T) {
	t.Parallel()

	src := "* DONE broken\n  CLOSED: [2024-02-30 Fri 10:00]\n"

	_, err := org.Parse(strings.NewReader(src), "bad.org", org.Options{States: task.DefaultStates()})

	var perr *org.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.True(t, errors.Is(err, org.ErrInvalidTimestamp))
	assert.Contains(t, err.Error(), "bad.org:2")
}

func Test_Planning_Only_Directly_Below_Heading(t *testing.T) {
	t.Parallel()

	src := "* TODO late\n\n  SCHEDULED: <2024-01-01 Mon>\n"

	doc, err := org.Parse(strings.NewReader(src), "x.org", org.Options{States: task.DefaultStates()})
	require.NoError(t, err)

	assert.True(t, doc.Tasks[0].Scheduled.IsZero())
	assert.Equal(t, "SCHEDULED: <2024-01-01 Mon>", doc.Tasks[0].Body)
}

func Test_ParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "<2024-03-10 Sun>", want: at("2024-03-10 00:00")},
		{in: "[2024-03-10 Sun 07:05]", want: at("2024-03-10 07:05")},
		{in: "<2024-03-10 Sun 10:00-11:30 +1w>", want: at("2024-03-10 10:00")},
		{in: "<2024-03-10 nie 9:30>", want: at("2024-03-10 09:30")},
		{in: "<2024-03-10>", want: at("2024-03-10 00:00")},
		{in: "<2024-03-10 Sun 24:00>", want: at("2024-03-10 00:00")},
	}

	for _, testCase := range tests {
		got, err := org.ParseTimestamp(testCase.in)
		require.NoError(t, err, testCase.in)
		assert.True(t, got.Equal(testCase.want), "%s: got %s", testCase.in, got)
	}

	_, err := org.ParseTimestamp("2024-03-10")
	require.ErrorIs(t, err, org.ErrInvalidTimestamp)
}
