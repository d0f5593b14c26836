package graph

// moduleNode is a transient traversal record pairing a module name with the
// sequence of modules visited to reach it from the root. The root's own node
// has an empty path; a child's path is its parent's path with the parent's
// name appended. Nodes never outlive a single Resolve call.
type moduleNode struct {
	name    string
	path    []string
	visited bool
}

// isCycle reports whether the node's own module already occurs on its path.
// Cycle nodes are emitted (so the cycle can be reported) but never expanded.
func (n *moduleNode) isCycle() bool {
	for _, ancestor := range n.path {
		if ancestor == n.name {
			return true
		}
	}
	return false
}

// childPath builds the path for a child of this node: the node's own path
// with the node's name appended. The slice is copied so sibling nodes never
// share backing arrays.
func (n *moduleNode) childPath() []string {
	path := make([]string, 0, len(n.path)+1)
	path = append(path, n.path...)
	return append(path, n.name)
}
