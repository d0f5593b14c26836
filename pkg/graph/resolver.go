package graph

import (
	"github.com/sirupsen/logrus"
)

// Resolver computes, for each root module, every reachable dependency along
// with all distinct simple paths to it. The resolver never mutates the graph;
// all traversal state is local to a single Resolve call, so a Resolver is
// safe for concurrent use from multiple goroutines.
type Resolver struct {
	graph  *ModuleGraph
	logger *logrus.Logger
}

// NewResolver creates a resolver over an already constructed module graph.
func NewResolver(g *ModuleGraph, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{graph: g, logger: logger}
}

// ResolveAll runs one traversal per module in the graph and returns the
// aggregated result for every root. An empty graph yields an empty result.
func (r *Resolver) ResolveAll() Result {
	result := make(Result, r.graph.Len())
	for _, root := range r.graph.Modules() {
		result[root] = r.Resolve(root)
	}
	return result
}

// Resolve performs a breadth-first search from root over all simple paths and
// aggregates the discovered nodes into one Dependency per reachable module.
// The returned slice includes the root's own self-entry (empty path) and is
// in discovery order; callers sort it with Priorities for display.
func (r *Resolver) Resolve(root string) []*Dependency {
	nodes := r.search(root)
	return r.aggregate(nodes)
}

// search walks the graph breadth-first. The queue starts with a single
// unvisited node for the root; each iteration takes the first unvisited node,
// marks it, and appends its children. A cycle node or a node whose module is
// unknown contributes no children, which bounds the search: along any one
// path a module repeats at most once.
func (r *Resolver) search(root string) []*moduleNode {
	queue := []*moduleNode{{name: root}}
	for {
		var current *moduleNode
		for _, n := range queue {
			if !n.visited {
				current = n
				break
			}
		}
		if current == nil {
			return queue
		}
		current.visited = true
		queue = append(queue, r.children(current)...)
	}
}

// children expands a node into one child per direct dependency of its module.
func (r *Resolver) children(node *moduleNode) []*moduleNode {
	if node.isCycle() {
		return nil
	}
	deps, ok := r.graph.DirectDependencies(node.name)
	if !ok {
		// Recoverable: a declared dependency without its own descriptor
		// terminates the branch instead of failing the run.
		r.logger.WithField("module", node.name).Warn("dependency on undetected module")
		return nil
	}
	children := make([]*moduleNode, 0, len(deps))
	for _, dep := range deps {
		children = append(children, &moduleNode{name: dep, path: node.childPath()})
	}
	return children
}

// aggregate folds traversal nodes into one Dependency per distinct module
// name. A node's reported path drops the root (always the first hop) and
// appends the node's own name, so path length equals the number of hops from
// the root and the root's self-entry has length zero.
func (r *Resolver) aggregate(nodes []*moduleNode) []*Dependency {
	var deps []*Dependency
	index := make(map[string]*Dependency, len(nodes))
	for _, node := range nodes {
		path := dependencyPath(node)
		if existing, ok := index[node.name]; ok {
			existing.AddPath(path)
			continue
		}
		dep := NewDependency(node.name, path)
		index[node.name] = dep
		deps = append(deps, dep)
	}
	return deps
}

func dependencyPath(node *moduleNode) DependencyPath {
	if len(node.path) == 0 {
		return DependencyPath{}
	}
	path := make([]string, 0, len(node.path))
	path = append(path, node.path[1:]...)
	path = append(path, node.name)
	return DependencyPath{Path: path, Cycle: node.isCycle()}
}
