// Package stats computes frequencies, relations, time ranges, groups and
// histograms over a filtered task collection.
//
// Every function is a pure computation over its arguments. Counting is per
// occurrence: a task with n repeats contributes n times.
package stats

import (
	"cmp"
	"slices"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/task"
)

// Frequency maps an item to the number of occurrences it appeared in.
type Frequency map[string]int

// Relations maps an item to its co-occurring items and their counts.
// It is symmetric and never holds an item as its own neighbour.
type Relations map[string]map[string]int

// ItemCount is a named count, used for ranked listings.
type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Count computes frequencies and relations in a single pass over views.
func Count(views []task.View, ex extract.Extractor) (Frequency, Relations) {
	freq := Frequency{}
	rel := Relations{}

	for _, v := range views {
		items := ex.Items(v)
		if len(items) == 0 {
			continue
		}

		n := v.RepeatCount()

		for i, a := range items {
			freq[a] += n

			for _, b := range items[i+1:] {
				rel.add(a, b, n)
			}
		}
	}

	return freq, rel
}

// ComputeFrequencies returns the frequency of every item.
func ComputeFrequencies(views []task.View, ex extract.Extractor) Frequency {
	freq, _ := Count(views, ex)

	return freq
}

// ComputeRelations returns the co-occurrence counts of every item pair.
func ComputeRelations(views []task.View, ex extract.Extractor) Relations {
	_, rel := Count(views, ex)

	return rel
}

func (r Relations) add(a, b string, n int) {
	if a == b {
		return
	}

	for _, pair := range [2][2]string{{a, b}, {b, a}} {
		neighbours, ok := r[pair[0]]
		if !ok {
			neighbours = map[string]int{}
			r[pair[0]] = neighbours
		}

		neighbours[pair[1]] += n
	}
}

// Top returns the k strongest neighbours of item, strongest first.
// Ties are broken by name. k <= 0 returns all neighbours.
func (r Relations) Top(item string, k int) []ItemCount {
	return rank(r[item], k)
}

// Ranked returns items by descending count, ties by name. k <= 0 returns all.
func (f Frequency) Ranked(k int) []ItemCount {
	return rank(f, k)
}

// Total returns the sum of all counts.
func (f Frequency) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}

	return total
}

func rank(counts map[string]int, k int) []ItemCount {
	out := make([]ItemCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ItemCount{Name: name, Count: n})
	}

	slices.SortFunc(out, func(a, b ItemCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}

	return out
}
