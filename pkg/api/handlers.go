package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/modscope/modscope/pkg/graph"
	"github.com/modscope/modscope/pkg/httputil"
	"github.com/modscope/modscope/pkg/report"
	"github.com/modscope/modscope/pkg/storage"
)

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// moduleView is the listing entry for one module.
type moduleView struct {
	Name   string   `json:"name"`
	Direct []string `json:"direct"`
}

// dependencyView is one resolved dependency of a root module.
type dependencyView struct {
	Name   string                 `json:"name"`
	Status string                 `json:"status"`
	Cycle  bool                   `json:"cycle,omitempty"`
	Paths  []graph.DependencyPath `json:"paths"`
}

func dependencyStatus(dep *graph.Dependency) string {
	switch {
	case dep.IsRoot():
		return "root"
	case dep.IsDirect():
		return "direct"
	default:
		return "transitive"
	}
}

// listModules handles GET /api/v1/modules
func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	g, _, lastScan := s.state()
	if g == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	names := g.Modules()
	s.opts.Priorities.SortNames(names)

	modules := make([]moduleView, 0, len(names))
	for _, name := range names {
		direct, _ := g.DirectDependencies(name)
		if direct == nil {
			direct = []string{}
		}
		modules = append(modules, moduleView{Name: name, Direct: direct})
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"modules":   modules,
		"count":     len(modules),
		"last_scan": lastScan.Format(time.RFC3339),
	})
}

// getDependencies handles GET /api/v1/modules/{name}/dependencies
func (s *Server) getDependencies(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	_, res, _ := s.state()
	if res == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	deps, found := res[name]
	if !found {
		httputil.WriteNotFoundError(w, "module "+name+" not found")
		return
	}

	ordered := make([]*graph.Dependency, len(deps))
	copy(ordered, deps)
	s.opts.Priorities.SortDependencies(ordered)

	views := make([]dependencyView, 0, len(ordered))
	for _, dep := range ordered {
		views = append(views, dependencyView{
			Name:   dep.Name,
			Status: dependencyStatus(dep),
			Cycle:  dep.HasCycle(),
			Paths:  dep.Paths,
		})
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"module":       name,
		"dependencies": views,
	})
}

// getPaths handles GET /api/v1/modules/{name}/paths/{target}
func (s *Server) getPaths(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}
	target, ok := httputil.ParsePathStringOrError(w, r, "target")
	if !ok {
		return
	}

	_, res, _ := s.state()
	if res == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	dep, err := res.PathsTo(name, target)
	if err != nil {
		httputil.WriteNotFoundError(w, err.Error())
		return
	}

	httputil.WriteSuccess(w, dependencyView{
		Name:   dep.Name,
		Status: dependencyStatus(dep),
		Cycle:  dep.HasCycle(),
		Paths:  dep.Paths,
	})
}

// getGraph handles GET /api/v1/modules/{name}/graph
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	g, res, _ := s.state()
	if g == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	cyto, err := report.Cytoscape(g, res, s.opts.Priorities, name)
	if err != nil {
		httputil.WriteNotFoundError(w, err.Error())
		return
	}
	httputil.WriteSuccess(w, cyto)
}

// getReport handles GET /api/v1/reports/{format}
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	formatName, ok := httputil.ParsePathStringOrError(w, r, "format")
	if !ok {
		return
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	root := httputil.ParseQueryString(r, "root", "")
	target := httputil.ParseQueryString(r, "target", "")
	if format == report.FormatPaths && (root == "" || target == "") {
		httputil.WriteBadRequest(w, "paths format requires root and target query parameters")
		return
	}

	g, res, _ := s.state()
	if g == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	cacheKey := formatName + "\x00" + root + "\x00" + target
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.CacheHitsTotal.WithLabelValues(formatName).Inc()
		writeReport(w, cached)
		return
	}
	s.metrics.CacheMissesTotal.WithLabelValues(formatName).Inc()

	var sb strings.Builder
	err = report.Render(&sb, format, report.Request{
		Graph:      g,
		Result:     res,
		Priorities: s.opts.Priorities,
		Root:       root,
		Target:     target,
	})
	if err != nil {
		httputil.WriteNotFoundError(w, err.Error())
		return
	}

	rendered := sb.String()
	s.cache.Add(cacheKey, rendered)
	writeReport(w, rendered)
}

func writeReport(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// listSnapshots handles GET /api/v1/snapshots
func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}
	infos, err := s.store.ListSnapshots(r.Context())
	if err != nil {
		s.metrics.SnapshotOperationsTotal.WithLabelValues("list", "error").Inc()
		httputil.WriteInternalError(w, err)
		return
	}
	s.metrics.SnapshotOperationsTotal.WithLabelValues("list", "success").Inc()
	httputil.WriteSuccess(w, map[string]interface{}{
		"snapshots": infos,
		"count":     len(infos),
	})
}

// createSnapshot handles POST /api/v1/snapshots
func (s *Server) createSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}

	g, res, _ := s.state()
	if g == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
		return
	}

	snap := storage.NewSnapshot(s.opts.ProjectRoot, g, res)
	if err := s.store.SaveSnapshot(r.Context(), snap); err != nil {
		s.metrics.SnapshotOperationsTotal.WithLabelValues("save", "error").Inc()
		httputil.WriteInternalError(w, err)
		return
	}
	s.metrics.SnapshotOperationsTotal.WithLabelValues("save", "success").Inc()
	httputil.WriteCreated(w, snap.Info())
}

// diffSnapshots handles GET /api/v1/snapshots/diff. With only old given the
// current in-memory state is the new side.
func (s *Server) diffSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "snapshot storage is not configured")
		return
	}

	oldID := httputil.ParseQueryString(r, "old", "")
	if oldID == "" {
		httputil.WriteBadRequest(w, "old query parameter is required")
		return
	}

	oldSnap, err := s.store.GetSnapshot(r.Context(), oldID)
	if err != nil {
		if err == storage.ErrSnapshotNotFound {
			httputil.WriteNotFoundError(w, "snapshot "+oldID+" not found")
			return
		}
		httputil.WriteInternalError(w, err)
		return
	}

	var newSnap *storage.Snapshot
	if newID := httputil.ParseQueryString(r, "new", ""); newID != "" {
		newSnap, err = s.store.GetSnapshot(r.Context(), newID)
		if err != nil {
			if err == storage.ErrSnapshotNotFound {
				httputil.WriteNotFoundError(w, "snapshot "+newID+" not found")
				return
			}
			httputil.WriteInternalError(w, err)
			return
		}
	} else {
		g, res, _ := s.state()
		if g == nil {
			httputil.WriteErrorMessage(w, http.StatusServiceUnavailable, "no completed scan yet")
			return
		}
		newSnap = storage.NewSnapshot(s.opts.ProjectRoot, g, res)
	}

	httputil.WriteSuccess(w, storage.Compare(oldSnap, newSnap))
}

// triggerRescan handles POST /api/v1/rescan
func (s *Server) triggerRescan(w http.ResponseWriter, r *http.Request) {
	if err := s.Rescan(r.Context(), "manual"); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	_, _, lastScan := s.state()
	httputil.WriteSuccess(w, map[string]interface{}{
		"status":    "rescanned",
		"last_scan": lastScan.Format(time.RFC3339),
	})
}
