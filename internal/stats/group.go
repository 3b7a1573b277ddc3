package stats

import (
	"cmp"
	"maps"
	"slices"

	"github.com/calvinalkan/taskstat/internal/extract"
	"github.com/calvinalkan/taskstat/internal/task"
)

// Group is a connected set of related items.
type Group struct {
	Items     []string
	TimeRange TimeRange
	// Total is the number of occurrences of tasks holding at least one member.
	Total int
}

// ComputeGroups returns the connected components of the relation graph in
// which every item keeps an edge to each of its k strongest neighbours.
// An edge kept by either endpoint connects both. Items without relations
// belong to no group. With k <= 0 no edge is kept and every related item
// forms a group of its own.
//
// Groups are ordered by size, largest first, then by their first item.
func ComputeGroups(rel Relations, k int, ranges map[string]TimeRange) []Group {
	if len(rel) == 0 {
		return nil
	}

	items := slices.Sorted(maps.Keys(rel))
	uf := newUnionFind(items)

	if k > 0 {
		for _, item := range items {
			for _, n := range rel.Top(item, k) {
				uf.union(item, n.Name)
			}
		}
	}

	members := map[string][]string{}
	for _, item := range items {
		root := uf.find(item)
		members[root] = append(members[root], item)
	}

	groups := make([]Group, 0, len(members))

	for _, m := range members {
		groups = append(groups, Group{Items: m, TimeRange: mergeItems(ranges, m)})
	}

	sortGroups(groups)

	return groups
}

// CountGroupTotals fills Group.Total from views.
func CountGroupTotals(groups []Group, views []task.View, ex extract.Extractor) {
	index := map[string][]int{}

	for gi, g := range groups {
		for _, item := range g.Items {
			index[item] = append(index[item], gi)
		}
	}

	for _, v := range views {
		seen := map[int]bool{}

		for _, item := range ex.Items(v) {
			for _, gi := range index[item] {
				if !seen[gi] {
					seen[gi] = true
					groups[gi].Total += v.RepeatCount()
				}
			}
		}
	}
}

// ExplicitGroups builds groups from user supplied item lists. Items are
// normalized with ex. Items that occur nowhere in views are dropped and
// lists left without any occurrence are omitted.
func ExplicitGroups(lists [][]string, views []task.View, ex extract.Extractor, ranges map[string]TimeRange) []Group {
	freq := ComputeFrequencies(views, ex)
	groups := make([]Group, 0, len(lists))

	for _, list := range lists {
		var items []string

		for _, name := range list {
			item := ex.Normalize(name)
			if freq[item] > 0 && !slices.Contains(items, item) {
				items = append(items, item)
			}
		}

		if len(items) == 0 {
			continue
		}

		slices.Sort(items)
		groups = append(groups, Group{Items: items, TimeRange: mergeItems(ranges, items)})
	}

	CountGroupTotals(groups, views, ex)

	return groups
}

// FilterGroups returns groups with at least minSize items, at most limit of them.
// limit <= 0 means no limit.
func FilterGroups(groups []Group, minSize, limit int) []Group {
	out := make([]Group, 0, len(groups))

	for _, g := range groups {
		if len(g.Items) < minSize {
			continue
		}

		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out
}

func mergeItems(ranges map[string]TimeRange, items []string) TimeRange {
	parts := make([]TimeRange, 0, len(items))
	for _, item := range items {
		parts = append(parts, ranges[item])
	}

	return Merge(parts...)
}

func sortGroups(groups []Group) {
	slices.SortFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(len(b.Items), len(a.Items)); c != 0 {
			return c
		}

		return cmp.Compare(a.Items[0], b.Items[0])
	})
}

type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(items []string) *unionFind {
	uf := &unionFind{parent: make(map[string]string, len(items)), rank: make(map[string]int, len(items))}
	for _, item := range items {
		uf.parent[item] = item
	}

	return uf
}

func (uf *unionFind) find(x string) string {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}

	return x
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}

	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}
