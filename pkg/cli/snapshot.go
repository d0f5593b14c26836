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

func newSnapshotCommand() *Command {
	cmd := &Command{
		Name:        "snapshot",
		Description: "Scan a project and persist the graph as a snapshot",
		Flags:       flag.NewFlagSet("snapshot", flag.ExitOnError),
		Run: func(args []string) error {
			return runSnapshot(os.Stdout, args)
		},
	}

	cmd.Flags.String("path", "", "Project root directory (required)")
	cmd.Flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	return cmd
}

func runSnapshot(w io.Writer, args []string) error {
	flags := flag.NewFlagSet("snapshot", flag.ExitOnError)
	path := flags.String("path", "", "Project root directory (required)")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("--path is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return err
	}

	logger := observability.NewTextLogger(*logLevel, os.Stderr)
	ctx := context.Background()

	g, res, _, err := analyzeProject(ctx, *path, logger)
	if err != nil {
		return err
	}

	snap := storage.NewSnapshot(*path, g, res)
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return err
	}

	fmt.Fprintf(w, "snapshot %s saved (%d modules)\n", snap.ID, len(snap.Modules))
	return nil
}
