package storage

import "sort"

// Edge is a single direct dependency, module -> dependency.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StatsChange records how one root's resolved-dependency summary moved
// between snapshots. Only roots present in both snapshots appear.
type StatsChange struct {
	Root string    `json:"root"`
	Old  RootStats `json:"old"`
	New  RootStats `json:"new"`
}

// Diff describes what changed between two snapshots.
type Diff struct {
	OldID          string        `json:"old_id"`
	NewID          string        `json:"new_id"`
	AddedModules   []string      `json:"added_modules"`
	RemovedModules []string      `json:"removed_modules"`
	AddedEdges     []Edge        `json:"added_edges"`
	RemovedEdges   []Edge        `json:"removed_edges"`
	StatsChanges   []StatsChange `json:"stats_changes"`
}

// Empty reports whether the two snapshots describe the same graph.
func (d *Diff) Empty() bool {
	return len(d.AddedModules) == 0 && len(d.RemovedModules) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0 &&
		len(d.StatsChanges) == 0
}

// Compare computes the module and edge changes from old to new. Slices are
// sorted so the diff is stable across runs.
func Compare(old, new *Snapshot) *Diff {
	d := &Diff{OldID: old.ID, NewID: new.ID}

	for name := range new.Modules {
		if _, ok := old.Modules[name]; !ok {
			d.AddedModules = append(d.AddedModules, name)
		}
	}
	for name := range old.Modules {
		if _, ok := new.Modules[name]; !ok {
			d.RemovedModules = append(d.RemovedModules, name)
		}
	}
	sort.Strings(d.AddedModules)
	sort.Strings(d.RemovedModules)

	oldEdges := edgeSet(old.Modules)
	newEdges := edgeSet(new.Modules)
	for e := range newEdges {
		if _, ok := oldEdges[e]; !ok {
			d.AddedEdges = append(d.AddedEdges, e)
		}
	}
	for e := range oldEdges {
		if _, ok := newEdges[e]; !ok {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}
	sortEdges(d.AddedEdges)
	sortEdges(d.RemovedEdges)

	for root, newStats := range new.Stats {
		oldStats, ok := old.Stats[root]
		if !ok || oldStats == newStats {
			continue
		}
		d.StatsChanges = append(d.StatsChanges, StatsChange{Root: root, Old: oldStats, New: newStats})
	}
	sort.Slice(d.StatsChanges, func(i, j int) bool {
		return d.StatsChanges[i].Root < d.StatsChanges[j].Root
	})

	return d
}

func edgeSet(modules map[string][]string) map[Edge]struct{} {
	set := make(map[Edge]struct{})
	for from, deps := range modules {
		for _, to := range deps {
			set[Edge{From: from, To: to}] = struct{}{}
		}
	}
	return set
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
}
