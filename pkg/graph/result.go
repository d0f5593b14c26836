package graph

import "fmt"

// Result is the final artifact of resolution: for every root module, all of
// its reachable dependencies including the root's own self-entry.
type Result map[string][]*Dependency

// Roots returns the root module names ordered by the given priorities.
func (r Result) Roots(ord Priorities) []string {
	roots := make([]string, 0, len(r))
	for root := range r {
		roots = append(roots, root)
	}
	ord.SortNames(roots)
	return roots
}

// Dependency looks up one reachable module under a root.
func (r Result) Dependency(root, name string) (*Dependency, bool) {
	for _, dep := range r[root] {
		if dep.Name == name {
			return dep, true
		}
	}
	return nil, false
}

// PathsTo returns the dependency record explaining every route from root to
// target. Unknown roots and targets are descriptive errors for this single
// query; they never invalidate results for other roots.
func (r Result) PathsTo(root, target string) (*Dependency, error) {
	deps, ok := r[root]
	if !ok {
		return nil, fmt.Errorf("root module %q not found", root)
	}
	for _, dep := range deps {
		if dep.Name == target {
			return dep, nil
		}
	}
	return nil, fmt.Errorf("dependency %q not reachable from %q", target, root)
}
