// Package api implements the HTTP server mode: live module graph queries,
// report rendering, snapshot management and rescan triggers.
//
// # Overview
//
// The server holds one scanned module graph and its resolution in memory.
// Read endpoints serve from that state; rescans (manual, scheduled via cron,
// or filesystem-triggered) replace it atomically and invalidate the report
// cache.
//
// # Endpoints
//
//	GET  /healthz                                  liveness probe
//	GET  /readyz                                   readiness probe
//	GET  /metrics                                  Prometheus metrics
//	GET  /api/v1/modules                           all modules with direct deps
//	GET  /api/v1/modules/{name}/dependencies       resolved dependencies of one root
//	GET  /api/v1/modules/{name}/paths/{target}     every path from root to target
//	GET  /api/v1/modules/{name}/graph              Cytoscape.js graph for one root
//	GET  /api/v1/reports/{format}                  rendered report (cached)
//	GET  /api/v1/snapshots                         stored snapshot listing
//	POST /api/v1/snapshots                         persist the current state
//	GET  /api/v1/snapshots/diff                    diff two snapshots
//	POST /api/v1/rescan                            force a rescan
//
// # Related Packages
//
//   - pkg/gradle: Scans the project tree and watches for changes
//   - pkg/graph: Resolves the dependency graph
//   - pkg/report: Renders the report formats
//   - pkg/storage: Persists snapshots
package api
