// Package cli provides the modscope command-line interface.
//
// # Overview
//
// This package implements the `modscope` tool for analyzing inter-module
// dependencies of multi-module Gradle projects: one-shot reports, snapshot
// management, snapshot diffing, and a long-running HTTP server mode.
//
// # Commands
//
// analyze: Scan a project and render a report
//
//	modscope analyze \
//		--path ./my-project \
//		--format table
//
// Path listings need a root:target pair:
//
//	modscope analyze \
//		--path ./my-project \
//		--format paths \
//		--target admin:common
//
// snapshot: Persist the current graph for later comparison
//
//	modscope snapshot --path ./my-project
//
// diff: Compare a stored snapshot against another one or the working tree
//
//	modscope diff --old <snapshot-id> --path ./my-project
//	modscope diff --old <snapshot-id> --new <snapshot-id>
//
// serve: Run the HTTP server mode
//
//	modscope serve --path ./my-project
//
// # Configuration
//
// Storage and server settings come from MODSCOPE_* environment variables;
// per-project analysis settings come from .modscope.yaml in the project root.
//
// # Related Packages
//
//   - pkg/gradle: Scans the project tree
//   - pkg/graph: Resolves dependencies
//   - pkg/report: Renders the output formats
//   - pkg/api: Implements the server mode
package cli
