package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modscope/modscope/pkg/graph"
)

func testGraph() *graph.ModuleGraph {
	g := graph.NewModuleGraph()
	g.AddModule("admin", "common", "service")
	g.AddModule("service", "common")
	g.AddModule("common")
	return g
}

func TestNewSnapshotStats(t *testing.T) {
	g := testGraph()
	res := graph.NewResolver(g, nil).ResolveAll()

	snap := NewSnapshot("/work/project", g, res)

	require.NotEmpty(t, snap.ID)
	assert.Equal(t, "/work/project", snap.ProjectRoot)
	assert.Len(t, snap.Modules, 3)

	adminStats := snap.Stats["admin"]
	assert.Equal(t, 2, adminStats.Direct)
	// common is reached both directly and via service, so it stays direct.
	assert.Equal(t, 0, adminStats.Transitive)
	assert.Equal(t, 0, adminStats.Cycles)

	commonStats := snap.Stats["common"]
	assert.Equal(t, 0, commonStats.Direct)
	assert.Equal(t, 0, commonStats.Transitive)
}

func TestSnapshotGraphRoundTrip(t *testing.T) {
	g := testGraph()
	res := graph.NewResolver(g, nil).ResolveAll()
	snap := NewSnapshot("/work/project", g, res)

	rebuilt := snap.Graph()
	assert.Equal(t, g.Edges(), rebuilt.Edges())
}

func TestFileSystemStorageRoundTrip(t *testing.T) {
	store, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	g := testGraph()
	res := graph.NewResolver(g, nil).ResolveAll()
	snap := NewSnapshot("/work/project", g, res)

	require.NoError(t, store.SaveSnapshot(ctx, snap))

	got, err := store.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Modules, got.Modules)
	assert.Equal(t, snap.Stats, got.Stats)
}

func TestFileSystemStorageNotFound(t *testing.T) {
	store, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetSnapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))

	_, err = store.LatestSnapshot(context.Background())
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestFileSystemStorageListNewestFirst(t *testing.T) {
	store, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	g := testGraph()
	res := graph.NewResolver(g, nil).ResolveAll()

	first := NewSnapshot("/work/project", g, res)
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := NewSnapshot("/work/project", g, res)
	second.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveSnapshot(ctx, first))
	require.NoError(t, store.SaveSnapshot(ctx, second))

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, second.ID, infos[0].ID)
	assert.Equal(t, first.ID, infos[1].ID)

	latest, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestCompare(t *testing.T) {
	oldGraph := graph.NewModuleGraph()
	oldGraph.AddModule("admin", "common", "legacy")
	oldGraph.AddModule("legacy")
	oldGraph.AddModule("common")

	newGraph := graph.NewModuleGraph()
	newGraph.AddModule("admin", "common", "service")
	newGraph.AddModule("service", "common")
	newGraph.AddModule("common")

	oldRes := graph.NewResolver(oldGraph, nil).ResolveAll()
	newRes := graph.NewResolver(newGraph, nil).ResolveAll()
	oldSnap := NewSnapshot("/p", oldGraph, oldRes)
	newSnap := NewSnapshot("/p", newGraph, newRes)

	d := Compare(oldSnap, newSnap)
	assert.False(t, d.Empty())
	assert.Equal(t, []string{"service"}, d.AddedModules)
	assert.Equal(t, []string{"legacy"}, d.RemovedModules)
	assert.Equal(t, []Edge{
		{From: "admin", To: "service"},
		{From: "service", To: "common"},
	}, d.AddedEdges)
	assert.Equal(t, []Edge{{From: "admin", To: "legacy"}}, d.RemovedEdges)
}

func TestCompareStatsChanges(t *testing.T) {
	oldGraph := graph.NewModuleGraph()
	oldGraph.AddModule("admin", "common")
	oldGraph.AddModule("common")

	newGraph := graph.NewModuleGraph()
	newGraph.AddModule("admin", "common")
	newGraph.AddModule("common", "util")
	newGraph.AddModule("util")

	oldRes := graph.NewResolver(oldGraph, nil).ResolveAll()
	newRes := graph.NewResolver(newGraph, nil).ResolveAll()
	oldSnap := NewSnapshot("/p", oldGraph, oldRes)
	newSnap := NewSnapshot("/p", newGraph, newRes)

	d := Compare(oldSnap, newSnap)
	require.Len(t, d.StatsChanges, 2)

	admin := d.StatsChanges[0]
	assert.Equal(t, "admin", admin.Root)
	assert.Equal(t, 1, admin.Old.Direct)
	assert.Equal(t, 0, admin.Old.Transitive)
	assert.Equal(t, 1, admin.New.Direct)
	assert.Equal(t, 1, admin.New.Transitive)

	common := d.StatsChanges[1]
	assert.Equal(t, "common", common.Root)
	assert.Equal(t, 0, common.Old.Direct)
	assert.Equal(t, 1, common.New.Direct)
}

func TestCompareIdentical(t *testing.T) {
	g := testGraph()
	res := graph.NewResolver(g, nil).ResolveAll()
	a := NewSnapshot("/p", g, res)
	b := NewSnapshot("/p", g, res)

	d := Compare(a, b)
	assert.True(t, d.Empty())
}

func TestNewStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilesystemRoot = t.TempDir()
	store, err := NewStorage(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileSystemStorage{}, store)

	cfg.Type = "bogus"
	_, err = NewStorage(cfg)
	assert.Error(t, err)
}
