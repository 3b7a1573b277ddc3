package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/taskstat/internal/render"
	"github.com/calvinalkan/taskstat/internal/task"
)

func day(s string) task.Date { return task.MustParseDate(s) }

func Test_Glyph_Thresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value, max int
		want       rune
	}{
		{value: 0, max: 10, want: ' '},
		{value: 5, max: 0, want: ' '},
		{value: 8, max: 8, want: '█'},
		{value: 7, max: 8, want: '▇'},
		{value: 6, max: 8, want: '▆'},
		{value: 5, max: 8, want: '▅'},
		{value: 4, max: 8, want: '▄'},
		{value: 3, max: 8, want: '▃'},
		{value: 2, max: 8, want: '▂'},
		{value: 1, max: 8, want: '▁'},
		{value: 1, max: 100, want: '▁'},
	}

	for _, testCase := range tests {
		if got := render.Glyph(testCase.value, testCase.max); got != testCase.want {
			t.Errorf("Glyph(%d, %d)=%q, want=%q", testCase.value, testCase.max, got, testCase.want)
		}
	}
}

func Test_Bucket_Splits_Days_Evenly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		days []int
		n    int
		want []int
	}{
		{name: "TenDaysFiveBuckets", days: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, n: 5, want: []int{2, 2, 2, 2, 2}},
		{name: "UnevenSplit", days: []int{1, 2, 3, 4, 5, 6, 7}, n: 3, want: []int{6, 9, 13}},
		{name: "FewerDaysThanBuckets", days: []int{4, 0, 1}, n: 50, want: []int{4, 0, 1}},
		{name: "NoDays", days: nil, n: 5, want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render.Bucket(testCase.days, testCase.n)
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("buckets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Expand_Fills_Missing_Days(t *testing.T) {
	t.Parallel()

	timeline := map[task.Date]int{day("2024-02-27"): 2, day("2024-03-01"): 5}

	got := render.Expand(timeline, day("2024-02-27"), day("2024-03-01"))
	if diff := cmp.Diff([]int{2, 0, 0, 5}, got); diff != "" {
		t.Errorf("expand mismatch (-want +got):\n%s", diff)
	}
}

func Test_Activity_Uniform_Ten_Days(t *testing.T) {
	t.Parallel()

	timeline := map[task.Date]int{}
	for i := range 10 {
		timeline[day("2024-01-01").AddDays(i)] = 1
	}

	chart := render.Activity(timeline, day("2024-01-01"), day("2024-01-10"), 5, render.Plain())

	want := render.Chart{
		DateLine:  "2024-01-012024-01-10",
		ChartLine: "┊█████┊ 1 (2024-01-01)",
		Underline: "‾‾‾‾‾‾‾",
	}

	if diff := cmp.Diff(want, chart); diff != "" {
		t.Errorf("chart mismatch (-want +got):\n%s", diff)
	}
}

func Test_Activity_Pads_Date_Line_To_Chart_Width(t *testing.T) {
	t.Parallel()

	timeline := map[task.Date]int{day("2024-01-01"): 1, day("2024-01-30"): 4}

	chart := render.Activity(timeline, day("2024-01-01"), day("2024-01-30"), 30, render.Plain())

	if got, want := len([]rune(chart.ChartLine)), 32+len(" 4 (2024-01-30)"); got != want {
		t.Errorf("chart line width=%d, want=%d: %q", got, want, chart.ChartLine)
	}

	if got, want := len(chart.DateLine), 32; got != want {
		t.Errorf("date line width=%d, want=%d", got, want)
	}

	if !strings.HasPrefix(chart.ChartLine, "┊▂") || !strings.Contains(chart.ChartLine, "█┊") {
		t.Errorf("unexpected bars: %q", chart.ChartLine)
	}
}

func Test_Activity_All_Zero(t *testing.T) {
	t.Parallel()

	chart := render.Activity(map[task.Date]int{}, day("2024-01-01"), day("2024-01-03"), 10, render.Plain())

	if got, want := chart.ChartLine, "┊   ┊ 0"; got != want {
		t.Errorf("chart line=%q, want=%q", got, want)
	}
}

func Test_Histogram_Bars_Are_Share_Of_Sum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		h     map[string]int
		order []string
		want  []string
	}{
		{
			name: "EqualHalves",
			h:    map[string]int{"A": 50, "B": 50},
			want: []string{
				"A        ┊" + strings.Repeat("█", 10) + " 50",
				"B        ┊" + strings.Repeat("█", 10) + " 50",
			},
		},
		{
			name: "OnlyNonZeroIsFullWidth",
			h:    map[string]int{"DONE": 7, "TODO": 0},
			want: []string{
				"DONE     ┊" + strings.Repeat("█", 20) + " 7",
				"TODO     ┊ 0",
			},
		},
		{
			name:  "AllZeroWithOrder",
			h:     map[string]int{},
			order: []string{"Monday", "unknown"},
			want: []string{
				"Monday   ┊ 0",
				"unknown  ┊ 0",
			},
		},
		{
			name: "LongLabelTruncated",
			h:    map[string]int{"Wednesdays": 1, "x": 2},
			want: []string{
				"Wednesda…┊██████ 1",
				"x        ┊█████████████ 2",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := render.Histogram(testCase.h, render.HistogramOptions{Width: 20, Order: testCase.order, Palette: render.Plain()})
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("histogram mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Palette_Disabled_Is_Plain(t *testing.T) {
	t.Parallel()

	p := render.NewPalette(false, task.DefaultStates())
	if got := p.State("DONE", "DONE"); got != "DONE" {
		t.Errorf("state=%q", got)
	}

	colored := render.NewPalette(true, task.DefaultStates())
	if got := colored.Number("3"); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape codes, got %q", got)
	}
}
