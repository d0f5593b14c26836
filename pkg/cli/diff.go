package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/modscope/modscope/pkg/config"
	"github.com/modscope/modscope/pkg/observability"
	"github.com/modscope/modscope/pkg/storage"
)

func newDiffCommand() *Command {
	cmd := &Command{
		Name:        "diff",
		Description: "Compare a stored snapshot against another one or the working tree",
		Flags:       flag.NewFlagSet("diff", flag.ExitOnError),
		Run: func(args []string) error {
			return runDiff(os.Stdout, args)
		},
	}

	cmd.Flags.String("old", "", "Old snapshot ID (required)")
	cmd.Flags.String("new", "", "New snapshot ID (mutually exclusive with --path)")
	cmd.Flags.String("path", "", "Project root to scan as the new side")
	cmd.Flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

func runDiff(w io.Writer, args []string) error {
	flags := flag.NewFlagSet("diff", flag.ExitOnError)
	oldID := flags.String("old", "", "Old snapshot ID (required)")
	newID := flags.String("new", "", "New snapshot ID (mutually exclusive with --path)")
	path := flags.String("path", "", "Project root to scan as the new side")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *oldID == "" {
		return fmt.Errorf("--old is required")
	}
	if (*newID == "") == (*path == "") {
		return fmt.Errorf("exactly one of --new or --path is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return err
	}

	ctx := context.Background()
	oldSnap, err := store.GetSnapshot(ctx, *oldID)
	if err != nil {
		return err
	}

	var newSnap *storage.Snapshot
	if *newID != "" {
		newSnap, err = store.GetSnapshot(ctx, *newID)
		if err != nil {
			return err
		}
	} else {
		logger := observability.NewTextLogger(*logLevel, os.Stderr)
		g, res, _, err := analyzeProject(ctx, *path, logger)
		if err != nil {
			return err
		}
		newSnap = storage.NewSnapshot(*path, g, res)
	}

	return writeDiff(w, storage.Compare(oldSnap, newSnap))
}

func writeDiff(w io.Writer, d *storage.Diff) error {
	if d.Empty() {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, name := range d.AddedModules {
		fmt.Fprintf(w, "+ module %s\n", name)
	}
	for _, name := range d.RemovedModules {
		fmt.Fprintf(w, "- module %s\n", name)
	}
	for _, e := range d.AddedEdges {
		fmt.Fprintf(w, "+ %s -> %s\n", e.From, e.To)
	}
	for _, e := range d.RemovedEdges {
		fmt.Fprintf(w, "- %s -> %s\n", e.From, e.To)
	}
	for _, c := range d.StatsChanges {
		fmt.Fprintf(w, "~ %s direct %d -> %d, transitive %d -> %d, cycles %d -> %d\n",
			c.Root, c.Old.Direct, c.New.Direct, c.Old.Transitive, c.New.Transitive, c.Old.Cycles, c.New.Cycles)
	}
	return nil
}
