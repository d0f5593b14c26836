// Package graph implements the module dependency resolution engine.
//
// # Overview
//
// Given a ModuleGraph (module name -> set of directly declared dependency
// names, typically extracted from build descriptors), the Resolver computes
// for every module the complete set of reachable dependencies, classifies
// each as root/direct/transitive, detects and flags cycles, and retains every
// distinct path by which a transitive dependency is reached.
//
// # Key Features
//
// Exhaustive Path Search: a breadth-first traversal that explores all simple
// (non-repeating) paths from a root, not just the shortest one
// Cycle Detection: a path that revisits a module is emitted once, flagged as a
// cycle, and never expanded further
// Aggregation: one Dependency per reachable module, carrying every distinct
// route to it
// Ordering: a curated-priority total order over module names and dependency
// records, so reports are deterministic and layered bottom-up
//
// # Usage Example
//
// Resolve everything:
//
//	g := graph.NewModuleGraph()
//	g.AddModule("service", "common", "dataaccess")
//	g.AddModule("dataaccess", "common")
//	g.AddModule("common")
//
//	resolver := graph.NewResolver(g, logger)
//	result := resolver.ResolveAll()
//
//	for _, dep := range result["service"] {
//		fmt.Printf("%s direct=%v paths=%d\n", dep.Name, dep.IsDirect(), len(dep.Paths))
//	}
//
// Explain a single transitive dependency:
//
//	dep, err := result.PathsTo("service", "common")
//	for _, p := range dep.Paths {
//		fmt.Println(strings.Join(p.Path, ","))
//	}
//
// # Related Packages
//
//   - pkg/gradle: builds the ModuleGraph from build.gradle descriptors
//   - pkg/report: renders a Result as tables, diagrams and path listings
package graph
