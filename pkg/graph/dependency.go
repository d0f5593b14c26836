package graph

import "strings"

// DependencyPath is one concrete route from a root module to a dependency:
// the ordered intermediate module names ending with the dependency itself.
// An empty path means the dependency is the root module ("root dependency").
// A path of length one is a direct, explicitly declared dependency. Cycle is
// set when the route ends by re-entering a module already on it.
type DependencyPath struct {
	Path  []string `json:"path"`
	Cycle bool     `json:"cycle,omitempty"`
}

// key returns a canonical identity for set semantics over paths.
func (p DependencyPath) key() string {
	k := strings.Join(p.Path, "\x00")
	if p.Cycle {
		k += "\x00[cycle]"
	}
	return k
}

// Dependency identifies one module reachable from a given root together with
// every distinct route discovered to it. A module reachable both directly and
// through intermediates carries all routes; direct status dominates for
// classification and ordering.
type Dependency struct {
	Name  string           `json:"name"`
	Paths []DependencyPath `json:"paths"`
}

// NewDependency creates a dependency with its first discovered path.
func NewDependency(name string, path DependencyPath) *Dependency {
	d := &Dependency{Name: name}
	d.AddPath(path)
	return d
}

// AddPath records another route to this dependency. Identical routes
// (same sequence, same cycle flag) collapse.
func (d *Dependency) AddPath(path DependencyPath) {
	key := path.key()
	for _, existing := range d.Paths {
		if existing.key() == key {
			return
		}
	}
	d.Paths = append(d.Paths, path)
}

// IsRoot reports whether this entry represents the root module itself,
// marked by a zero-length path.
func (d *Dependency) IsRoot() bool {
	for _, p := range d.Paths {
		if len(p.Path) == 0 {
			return true
		}
	}
	return false
}

// IsDirect reports whether the dependency is explicitly declared by the root
// module: at least one route of length one exists, regardless of how many
// longer routes were also found.
func (d *Dependency) IsDirect() bool {
	for _, p := range d.Paths {
		if len(p.Path) == 1 {
			return true
		}
	}
	return false
}

// HasCycle reports whether any route to this dependency closes a cycle.
func (d *Dependency) HasCycle() bool {
	for _, p := range d.Paths {
		if p.Cycle {
			return true
		}
	}
	return false
}
