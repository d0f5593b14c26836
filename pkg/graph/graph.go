package graph

import "sort"

// ModuleGraph maps module names to the set of module names they directly
// declare as dependencies. It is built once by a descriptor scanner and is
// read-only during resolution. A dependency name without a corresponding
// module entry is tolerated; traversal simply stops there.
type ModuleGraph struct {
	modules map[string]map[string]struct{}
}

// NewModuleGraph creates an empty module graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		modules: make(map[string]map[string]struct{}),
	}
}

// AddModule registers a module and its directly declared dependencies.
// Adding the same module twice merges the dependency sets.
func (g *ModuleGraph) AddModule(name string, deps ...string) {
	set, ok := g.modules[name]
	if !ok {
		set = make(map[string]struct{}, len(deps))
		g.modules[name] = set
	}
	for _, dep := range deps {
		set[dep] = struct{}{}
	}
}

// Has reports whether name was registered as a module.
func (g *ModuleGraph) Has(name string) bool {
	_, ok := g.modules[name]
	return ok
}

// Len returns the number of registered modules.
func (g *ModuleGraph) Len() int {
	return len(g.modules)
}

// Modules returns all registered module names in lexicographic order.
// Callers that want the curated ordering sort with Priorities instead.
func (g *ModuleGraph) Modules() []string {
	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DirectDependencies returns the directly declared dependencies of a module
// in lexicographic order, and whether the module is known to the graph.
func (g *ModuleGraph) DirectDependencies(name string) ([]string, bool) {
	set, ok := g.modules[name]
	if !ok {
		return nil, false
	}
	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps, true
}

// Edges returns a copy of the full adjacency mapping, suitable for
// serialization. Dependency lists are lexicographically ordered.
func (g *ModuleGraph) Edges() map[string][]string {
	edges := make(map[string][]string, len(g.modules))
	for name := range g.modules {
		deps, _ := g.DirectDependencies(name)
		edges[name] = deps
	}
	return edges
}

// FromEdges reconstructs a module graph from an adjacency mapping, the
// inverse of Edges.
func FromEdges(edges map[string][]string) *ModuleGraph {
	g := NewModuleGraph()
	for name, deps := range edges {
		g.AddModule(name, deps...)
	}
	return g
}
