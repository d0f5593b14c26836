package graph

import (
	"sort"
	"strings"
)

// Priorities maps well-known module names to small integers reflecting
// architectural layering: foundational modules first, leaf modules last.
// Names absent from the table sort after all prioritized names, among
// themselves lexicographically. The zero value (nil) is usable and degrades
// to plain lexicographic ordering.
type Priorities map[string]int

// DefaultPriorities returns the curated ordering table used when a project
// does not configure its own.
func DefaultPriorities() Priorities {
	return Priorities{
		"common":       1,
		"servercommon": 2,
		"comms":        3,
		"dataaccess":   4,
		"lookup":       5,
		"identity":     6,
		"search":       7,
		"service":      8,
		"admin":        9,
		"events":       10,
		"reports":      11,
		"engine":       12,
		"frontend":     13,
	}
}

// CompareNames is a strict total order over module names: both prioritized
// compares priorities ascending, a prioritized name sorts before an
// unprioritized one, otherwise lexicographic.
func (p Priorities) CompareNames(a, b string) int {
	pa, oka := p[a]
	pb, okb := p[b]
	switch {
	case oka && okb:
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		}
		return strings.Compare(a, b)
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}

// SortNames sorts module names in place using CompareNames.
func (p Priorities) SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return p.CompareNames(names[i], names[j]) < 0
	})
}

// CompareDependencies orders a root's dependency records for display: the
// root's self-entry first, then direct dependencies before transitive ones,
// direct dependencies among themselves by name priority, everything else by
// lexicographic module name. Equal only for identical module names.
func (p Priorities) CompareDependencies(a, b *Dependency) int {
	if a.Name == b.Name {
		return 0
	}
	switch {
	case a.IsRoot():
		return -1
	case b.IsRoot():
		return 1
	}
	switch {
	case a.IsDirect() && !b.IsDirect():
		return -1
	case !a.IsDirect() && b.IsDirect():
		return 1
	}
	if a.IsDirect() && b.IsDirect() {
		_, oka := p[a.Name]
		_, okb := p[b.Name]
		if oka || okb {
			return p.CompareNames(a.Name, b.Name)
		}
	}
	return strings.Compare(a.Name, b.Name)
}

// SortDependencies sorts a root's dependency records in place using
// CompareDependencies.
func (p Priorities) SortDependencies(deps []*Dependency) {
	sort.Slice(deps, func(i, j int) bool {
		return p.CompareDependencies(deps[i], deps[j]) < 0
	})
}
