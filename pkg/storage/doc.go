// Package storage persists dependency-analysis snapshots so the effect of a
// graph simplification can be verified over time. Two backends are provided:
// a local filesystem store for interactive use and an S3 store for CI runs
// that share history across machines.
package storage
