package models

import (
	"sort"
	"strconv"
	"strings"
)

// Selection is the set of optional filter constraints supplied with a
// request. An empty set on a dimension imposes no restriction, including for
// records missing a value on that dimension. Selections carry no identity;
// the clear-all action is simply an all-empty Selection.
type Selection struct {
	Years         []int
	DegreeTypes   []string
	PrimaryFields []string
	Countries     []string
	Tiers         []int
}

// IsEmpty reports whether no constraint is set.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.DegreeTypes) == 0 && len(s.PrimaryFields) == 0 &&
		len(s.Countries) == 0 && len(s.Tiers) == 0
}

// CacheKey renders a canonical representation for cache key construction.
// Values are sorted so equivalent selections share an entry.
func (s Selection) CacheKey() string {
	parts := []string{
		joinInts(s.Years),
		joinStrings(s.DegreeTypes),
		joinStrings(s.PrimaryFields),
		joinStrings(s.Countries),
		joinInts(s.Tiers),
	}
	return strings.Join(parts, ";")
}

func joinInts(values []int) string {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	rendered := make([]string, len(sorted))
	for i, v := range sorted {
		rendered[i] = strconv.Itoa(v)
	}
	return strings.Join(rendered, ",")
}

func joinStrings(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
