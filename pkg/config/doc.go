// Package config provides application configuration from environment
// variables plus an optional per-project .modscope.yaml file.
//
// # Overview
//
// Environment variables configure the tool itself (server ports, storage
// backend, observability); the project file configures analysis of one
// particular codebase (module priorities, name translations, ignored
// directories).
//
// # Configuration Structure
//
// Server settings:
//
//	MODSCOPE_HOST="0.0.0.0"
//	MODSCOPE_PORT="8080"
//	MODSCOPE_READ_TIMEOUT="15s"
//	MODSCOPE_WRITE_TIMEOUT="15s"
//
// Storage settings:
//
//	MODSCOPE_STORAGE_TYPE="filesystem"  # filesystem, s3
//	MODSCOPE_FILESYSTEM_ROOT=".modscope/snapshots"
//	MODSCOPE_S3_BUCKET="modscope-snapshots"
//	MODSCOPE_S3_REGION="us-east-1"
//
// Observability settings:
//
//	MODSCOPE_LOG_LEVEL="info"  # debug, info, warn, error
//	MODSCOPE_METRICS_ENABLED="true"
//	MODSCOPE_OTEL_ENABLED="false"
//	MODSCOPE_OTEL_ENDPOINT="otel-collector:4317"
//
// # Project File
//
// A .modscope.yaml in the project root tunes the scanner and ordering:
//
//	descriptor: build.gradle
//	ignore:
//	  - build
//	  - .gradle
//	translations:
//	  Administration: admin
//	priorities:
//	  common: 1
//	  service: 2
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	project, err := config.LoadProject("/work/repo")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
//   - pkg/gradle: Uses project file scanner settings
package config
