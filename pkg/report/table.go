package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/modscope/modscope/pkg/graph"
)

// Table writes the dependency matrix as CSV. Rows answer: for this root
// module, which modules are direct ("x") or transitive ("t") dependencies.
// Columns answer: which modules pull this one in. The root's own cell and
// cells with no relation are blank.
func Table(w io.Writer, g *graph.ModuleGraph, res graph.Result, ord graph.Priorities) error {
	columns := allModules(g)
	ord.SortNames(columns)

	var b strings.Builder
	b.WriteString(",")
	for _, column := range columns {
		b.WriteString(column)
		b.WriteString(",")
	}
	b.WriteString("\n")

	for _, row := range columns {
		b.WriteString(row)
		b.WriteString(",")
		deps := res[row]
		for _, column := range columns {
			b.WriteString(marker(deps, column))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// marker renders one cell: blank for the root itself, modules with no
// resolution entry, and absent relations.
func marker(deps []*graph.Dependency, column string) string {
	for _, dep := range deps {
		if dep.Name != column {
			continue
		}
		switch {
		case dep.IsRoot():
			return ","
		case dep.IsDirect():
			return "x,"
		}
		return "t,"
	}
	return ","
}

// Paths writes every distinct route from root to target, one per line,
// prefixed with "--" and annotated with [cycle] where the route closes a
// cycle. Unknown roots or targets are reported as errors.
func Paths(w io.Writer, res graph.Result, root, target string) error {
	dep, err := res.PathsTo(root, target)
	if err != nil {
		return err
	}
	return writePaths(w, dep, "--")
}

func writePaths(w io.Writer, dep *graph.Dependency, prefix string) error {
	var b strings.Builder
	for _, p := range dep.Paths {
		if len(p.Path) > 0 {
			b.WriteString(prefix)
			b.WriteString(" ")
			b.WriteString(strings.Join(p.Path, ","))
		}
		if p.Cycle {
			b.WriteString(" [cycle]")
		}
		b.WriteString("\n")
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}
