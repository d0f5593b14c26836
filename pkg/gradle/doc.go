// Package gradle discovers per-module build.gradle descriptors under a
// project root and extracts the directly declared inter-module dependencies
// from them, producing the ModuleGraph consumed by pkg/graph.
package gradle
