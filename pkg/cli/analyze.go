package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modscope/modscope/pkg/observability"
	"github.com/modscope/modscope/pkg/report"
)

func newAnalyzeCommand() *Command {
	cmd := &Command{
		Name:        "analyze",
		Description: "Scan a Gradle project and render a dependency report",
		Flags:       flag.NewFlagSet("analyze", flag.ExitOnError),
		Run: func(args []string) error {
			return runAnalyze(os.Stdout, args)
		},
	}

	cmd.Flags.String("path", "", "Project root directory (required)")
	cmd.Flags.String("format", "table", "Output format: table, mindmap, diagram, paths")
	cmd.Flags.String("target", "", "root:target pair for the paths format")
	cmd.Flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

func runAnalyze(w io.Writer, args []string) error {
	flags := flag.NewFlagSet("analyze", flag.ExitOnError)
	path := flags.String("path", "", "Project root directory (required)")
	formatName := flags.String("format", "table", "Output format: table, mindmap, diagram, paths")
	target := flags.String("target", "", "root:target pair for the paths format")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("--path is required")
	}

	format, err := report.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	var root, pathTarget string
	if format == report.FormatPaths {
		if *target == "" {
			return fmt.Errorf("--target root:target is required for the paths format")
		}
		parts := strings.SplitN(*target, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("malformed --target %q (expected root:target)", *target)
		}
		root, pathTarget = parts[0], parts[1]
	} else if *target != "" {
		return fmt.Errorf("--target is only valid with --format paths")
	}

	logger := observability.NewTextLogger(*logLevel, os.Stderr)
	g, res, project, err := analyzeProject(context.Background(), *path, logger)
	if err != nil {
		return err
	}

	return report.Render(w, format, report.Request{
		Graph:      g,
		Result:     res,
		Priorities: priorityTable(project),
		Root:       root,
		Target:     pathTarget,
	})
}
