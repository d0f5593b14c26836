package cli

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/modscope/modscope/pkg/config"
	"github.com/modscope/modscope/pkg/gradle"
	"github.com/modscope/modscope/pkg/graph"
)

// analyzeProject runs one scan-and-resolve pass over the project tree.
func analyzeProject(ctx context.Context, path string, logger *logrus.Logger) (*graph.ModuleGraph, graph.Result, *config.Project, error) {
	project, err := config.LoadProject(path)
	if err != nil {
		return nil, nil, nil, err
	}

	scanner := gradle.NewScanner(project.ScanOptions(), logger)
	g, err := scanner.Scan(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}

	res := graph.NewResolver(g, logger).ResolveAll()
	return g, res, project, nil
}

// priorityTable picks the configured table, falling back to the built-in one.
func priorityTable(project *config.Project) graph.Priorities {
	if table := project.PriorityTable(); len(table) > 0 {
		return table
	}
	return graph.DefaultPriorities()
}
