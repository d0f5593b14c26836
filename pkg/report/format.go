// Package report renders resolution results as PlantUML diagrams, CSV
// tables, path listings and Cytoscape.js graphs.
package report

import (
	"fmt"
	"io"

	"github.com/modscope/modscope/pkg/graph"
)

// Format selects one of the supported report renderings.
type Format int

const (
	// FormatTable is the CSV matrix of direct/transitive markers (default).
	FormatTable Format = iota
	// FormatMindMap is a PlantUML mind map of direct dependencies.
	FormatMindMap
	// FormatDiagram is a PlantUML deployment diagram of direct dependencies.
	FormatDiagram
	// FormatPaths lists every distinct path for one root:target pair.
	FormatPaths
)

// String returns the selector name for the format.
func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatMindMap:
		return "mindmap"
	case FormatDiagram:
		return "diagram"
	case FormatPaths:
		return "paths"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a selector string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "table":
		return FormatTable, nil
	case "mindmap":
		return FormatMindMap, nil
	case "diagram":
		return FormatDiagram, nil
	case "paths":
		return FormatPaths, nil
	}
	return 0, fmt.Errorf("unknown output format %q (expected table, mindmap, diagram or paths)", s)
}

// Request carries everything a rendering needs. Root and Target are only
// consulted by FormatPaths.
type Request struct {
	Graph      *graph.ModuleGraph
	Result     graph.Result
	Priorities graph.Priorities
	Root       string
	Target     string
}

// Render writes the report for the requested format. The switch is
// exhaustive over the closed set of formats.
func Render(w io.Writer, format Format, req Request) error {
	switch format {
	case FormatTable:
		return Table(w, req.Graph, req.Result, req.Priorities)
	case FormatMindMap:
		return MindMap(w, req.Graph, req.Priorities)
	case FormatDiagram:
		return Diagram(w, req.Graph, req.Priorities)
	case FormatPaths:
		return Paths(w, req.Result, req.Root, req.Target)
	}
	return fmt.Errorf("unknown output format %v", format)
}
