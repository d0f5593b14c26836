package report

import (
	"fmt"

	"github.com/modscope/modscope/pkg/graph"
)

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains node data for Cytoscape.js.
type CytoscapeNodeData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "root", "direct" or "transitive"
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains edge data for Cytoscape.js.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// CytoscapeGraph is the complete graph in Cytoscape.js format.
type CytoscapeGraph struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// Cytoscape builds the Cytoscape.js view of everything reachable from root:
// one node per reachable module classified root/direct/transitive, and every
// declared edge between reachable modules.
func Cytoscape(g *graph.ModuleGraph, res graph.Result, ord graph.Priorities, root string) (CytoscapeGraph, error) {
	deps, ok := res[root]
	if !ok {
		return CytoscapeGraph{}, fmt.Errorf("root module %q not found", root)
	}

	sorted := make([]*graph.Dependency, len(deps))
	copy(sorted, deps)
	ord.SortDependencies(sorted)

	cyto := CytoscapeGraph{
		Nodes: make([]CytoscapeNode, 0, len(sorted)),
		Edges: make([]CytoscapeEdge, 0),
	}
	reachable := make(map[string]struct{}, len(sorted))
	for _, dep := range sorted {
		reachable[dep.Name] = struct{}{}
		cyto.Nodes = append(cyto.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:   dep.Name,
				Name: dep.Name,
				Type: classify(dep),
			},
		})
	}

	for _, dep := range sorted {
		declared, ok := g.DirectDependencies(dep.Name)
		if !ok {
			continue
		}
		for _, target := range declared {
			if _, ok := reachable[target]; !ok {
				continue
			}
			cyto.Edges = append(cyto.Edges, CytoscapeEdge{
				Data: CytoscapeEdgeData{
					ID:     dep.Name + "->" + target,
					Source: dep.Name,
					Target: target,
				},
			})
		}
	}
	return cyto, nil
}

func classify(dep *graph.Dependency) string {
	switch {
	case dep.IsRoot():
		return "root"
	case dep.IsDirect():
		return "direct"
	}
	return "transitive"
}
