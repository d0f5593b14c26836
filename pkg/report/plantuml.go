package report

import (
	"fmt"
	"io"

	"github.com/modscope/modscope/pkg/graph"
)

// MindMap writes modules with their direct dependencies as PlantUML mind map
// source (https://plantuml.com/mindmap-diagram). Useful as a quick check that
// every module and declaration was picked up by the scanner.
func MindMap(w io.Writer, g *graph.ModuleGraph, ord graph.Priorities) error {
	if _, err := fmt.Fprintln(w, "@startmindmap"); err != nil {
		return err
	}
	modules := g.Modules()
	ord.SortNames(modules)
	for _, module := range modules {
		if _, err := fmt.Fprintf(w, "* %s\n", module); err != nil {
			return err
		}
		deps, _ := g.DirectDependencies(module)
		ord.SortNames(deps)
		for _, dep := range deps {
			if _, err := fmt.Fprintf(w, "** %s\n", dep); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "@endmindmap")
	return err
}

// Diagram writes modules with their direct dependencies as PlantUML
// deployment diagram source (https://plantuml.com/deployment-diagram).
// Readable for small graphs; dense graphs render better interactively via
// the Cytoscape export.
func Diagram(w io.Writer, g *graph.ModuleGraph, ord graph.Priorities) error {
	if _, err := fmt.Fprintln(w, "@startuml"); err != nil {
		return err
	}
	// Orthogonal edges read better than the default curves on module graphs.
	if _, err := fmt.Fprintln(w, "skinparam linetype ortho"); err != nil {
		return err
	}

	nodes := allModules(g)
	ord.SortNames(nodes)
	for _, node := range nodes {
		if _, err := fmt.Fprintf(w, "node %q\n", node); err != nil {
			return err
		}
	}

	modules := g.Modules()
	ord.SortNames(modules)
	for _, module := range modules {
		deps, _ := g.DirectDependencies(module)
		ord.SortNames(deps)
		for _, dep := range deps {
			if _, err := fmt.Fprintf(w, "%q --> %q\n", module, dep); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "@enduml")
	return err
}

// allModules returns the union of registered modules and every name they
// declare, covering dependencies that have no descriptor of their own.
func allModules(g *graph.ModuleGraph) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, module := range g.Modules() {
		add(module)
		deps, _ := g.DirectDependencies(module)
		for _, dep := range deps {
			add(dep)
		}
	}
	return names
}
