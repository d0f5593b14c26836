package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/modscope/modscope/pkg/graph"
)

// Snapshot captures one analysis run: the raw direct-dependency edges plus a
// per-root summary of the resolution. Edges are enough to reconstruct the
// full resolution later; the stats make listings and diffs cheap.
type Snapshot struct {
	ID          string               `json:"id"`
	CreatedAt   time.Time            `json:"created_at"`
	ProjectRoot string               `json:"project_root"`
	Modules     map[string][]string  `json:"modules"`
	Stats       map[string]RootStats `json:"stats"`
}

// RootStats summarizes one root module's resolved dependencies.
type RootStats struct {
	Direct     int `json:"direct"`
	Transitive int `json:"transitive"`
	Cycles     int `json:"cycles"`
}

// SnapshotInfo is the listing view of a stored snapshot.
type SnapshotInfo struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ModuleCount int       `json:"module_count"`
}

// NewSnapshot builds a snapshot from a scanned graph and its resolution.
func NewSnapshot(projectRoot string, g *graph.ModuleGraph, res graph.Result) *Snapshot {
	stats := make(map[string]RootStats, len(res))
	for root, deps := range res {
		var s RootStats
		for _, dep := range deps {
			switch {
			case dep.IsRoot():
				// The self-entry is bookkeeping, not a dependency.
			case dep.IsDirect():
				s.Direct++
			default:
				s.Transitive++
			}
			if dep.HasCycle() {
				s.Cycles++
			}
		}
		stats[root] = s
	}
	return &Snapshot{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		ProjectRoot: projectRoot,
		Modules:     g.Edges(),
		Stats:       stats,
	}
}

// Graph reconstructs the module graph captured by the snapshot.
func (s *Snapshot) Graph() *graph.ModuleGraph {
	return graph.FromEdges(s.Modules)
}

// Info returns the listing view of the snapshot.
func (s *Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		ModuleCount: len(s.Modules),
	}
}
