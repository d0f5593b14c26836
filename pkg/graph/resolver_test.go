package graph

import (
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func pathsOf(dep *Dependency) [][]string {
	paths := make([][]string, 0, len(dep.Paths))
	for _, p := range dep.Paths {
		paths = append(paths, p.Path)
	}
	return paths
}

func TestResolver_LinearChain(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "b")
	g.AddModule("b", "c")
	g.AddModule("c")

	deps := NewResolver(g, testLogger()).Resolve("a")

	if len(deps) != 3 {
		t.Fatalf("expected 3 dependencies, got %d", len(deps))
	}

	byName := make(map[string]*Dependency)
	for _, dep := range deps {
		byName[dep.Name] = dep
	}

	root := byName["a"]
	if root == nil || !root.IsRoot() {
		t.Error("expected 'a' to carry a root self-entry")
	}

	direct := byName["b"]
	if direct == nil || !direct.IsDirect() {
		t.Error("expected 'b' to be a direct dependency")
	}
	if want := [][]string{{"b"}}; !reflect.DeepEqual(pathsOf(direct), want) {
		t.Errorf("expected path [b], got %v", pathsOf(direct))
	}

	transitive := byName["c"]
	if transitive == nil || transitive.IsDirect() || transitive.IsRoot() {
		t.Error("expected 'c' to be transitive")
	}
	if want := [][]string{{"b", "c"}}; !reflect.DeepEqual(pathsOf(transitive), want) {
		t.Errorf("expected path [b c], got %v", pathsOf(transitive))
	}
}

func TestResolver_CycleTerminates(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "b")
	g.AddModule("b", "a")

	deps := NewResolver(g, testLogger()).Resolve("a")

	byName := make(map[string]*Dependency)
	for _, dep := range deps {
		byName[dep.Name] = dep
	}
	if len(byName) != 2 {
		t.Fatalf("expected 2 distinct dependencies, got %d", len(byName))
	}

	a := byName["a"]
	if !a.IsRoot() {
		t.Error("expected root self-entry for 'a'")
	}
	// The cycle re-entering the root is retained as a flagged extra path.
	var cyclePath *DependencyPath
	for i := range a.Paths {
		if a.Paths[i].Cycle {
			cyclePath = &a.Paths[i]
		}
	}
	if cyclePath == nil {
		t.Fatal("expected a cycle-flagged path back to 'a'")
	}
	if want := []string{"b", "a"}; !reflect.DeepEqual(cyclePath.Path, want) {
		t.Errorf("expected cycle path [b a], got %v", cyclePath.Path)
	}

	b := byName["b"]
	if !b.IsDirect() {
		t.Error("expected 'b' to remain a direct dependency")
	}
}

func TestResolver_DiamondKeepsAllPaths(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "b", "c")
	g.AddModule("b", "d")
	g.AddModule("c", "d")
	g.AddModule("d")

	deps := NewResolver(g, testLogger()).Resolve("a")

	var d *Dependency
	for _, dep := range deps {
		if dep.Name == "d" {
			d = dep
		}
	}
	if d == nil {
		t.Fatal("expected 'd' to be reachable")
	}
	if d.IsDirect() || d.IsRoot() {
		t.Error("expected 'd' to be purely transitive")
	}
	if len(d.Paths) != 2 {
		t.Fatalf("expected 2 distinct paths to 'd', got %d", len(d.Paths))
	}
	found := map[string]bool{}
	for _, p := range d.Paths {
		found[p.Path[0]] = true
	}
	if !found["b"] || !found["c"] {
		t.Errorf("expected routes through both 'b' and 'c', got %v", pathsOf(d))
	}
}

func TestResolver_UnknownModuleDeadEnds(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "x")

	deps := NewResolver(g, testLogger()).Resolve("a")

	byName := make(map[string]*Dependency)
	for _, dep := range deps {
		byName[dep.Name] = dep
	}
	if len(byName) != 2 {
		t.Fatalf("expected root plus the dangling dependency, got %d entries", len(byName))
	}
	x := byName["x"]
	if x == nil || !x.IsDirect() {
		t.Fatal("expected 'x' recorded as a direct dependency despite having no descriptor")
	}
	if len(x.Paths) != 1 || x.Paths[0].Cycle {
		t.Errorf("expected a single non-cycle path to 'x', got %v", x.Paths)
	}
}

func TestResolver_DirectStatusDominates(t *testing.T) {
	// b is both declared directly by a and reachable via c.
	g := NewModuleGraph()
	g.AddModule("a", "b", "c")
	g.AddModule("b")
	g.AddModule("c", "b")

	deps := NewResolver(g, testLogger()).Resolve("a")

	for _, dep := range deps {
		if dep.Name != "b" {
			continue
		}
		if !dep.IsDirect() {
			t.Error("expected direct status to dominate for 'b'")
		}
		if len(dep.Paths) != 2 {
			t.Errorf("expected both routes retained, got %v", pathsOf(dep))
		}
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "b")
	g.AddModule("b", "c")
	g.AddModule("c")

	resolver := NewResolver(g, testLogger())
	result := resolver.ResolveAll()

	if len(result) != 3 {
		t.Fatalf("expected one entry per module, got %d", len(result))
	}
	for _, root := range g.Modules() {
		roots := 0
		for _, dep := range result[root] {
			if dep.IsRoot() {
				roots++
				if dep.Name != root {
					t.Errorf("root entry under %q names %q", root, dep.Name)
				}
			}
		}
		if roots != 1 {
			t.Errorf("expected exactly one root entry for %q, got %d", root, roots)
		}
	}

	// Idempotence: a second run over the same graph yields identical results.
	again := resolver.ResolveAll()
	if !reflect.DeepEqual(result, again) {
		t.Error("re-running resolution changed the result")
	}
}

func TestResolver_EmptyGraph(t *testing.T) {
	result := NewResolver(NewModuleGraph(), testLogger()).ResolveAll()
	if len(result) != 0 {
		t.Errorf("expected empty result for empty graph, got %d entries", len(result))
	}
}

func TestResult_PathsTo(t *testing.T) {
	g := NewModuleGraph()
	g.AddModule("a", "b")
	g.AddModule("b")

	result := NewResolver(g, testLogger()).ResolveAll()

	if _, err := result.PathsTo("nope", "b"); err == nil {
		t.Error("expected error for unknown root")
	}
	if _, err := result.PathsTo("a", "nope"); err == nil {
		t.Error("expected error for unreachable target")
	}
	dep, err := result.PathsTo("a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dep.Name != "b" {
		t.Errorf("expected dependency 'b', got %q", dep.Name)
	}
}
