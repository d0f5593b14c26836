package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/modscope/modscope/pkg/gradle"
	"github.com/modscope/modscope/pkg/graph"
	"github.com/modscope/modscope/pkg/httputil"
	"github.com/modscope/modscope/pkg/observability"
	"github.com/modscope/modscope/pkg/storage"
)

// Options configures the API server.
type Options struct {
	// ProjectRoot is the analyzed Gradle project tree.
	ProjectRoot string
	// Scan configures descriptor discovery.
	Scan gradle.Options
	// Priorities orders modules in reports and listings.
	Priorities graph.Priorities

	// CacheSize and CacheTTL bound the rendered-report cache.
	CacheSize int
	CacheTTL  time.Duration

	// RescanCron is an optional cron schedule for periodic rescans.
	RescanCron string
	// WatchEnabled rescans when a build descriptor changes on disk.
	WatchEnabled  bool
	WatchDebounce time.Duration

	// SnapshotOnRescan persists a snapshot after every successful rescan.
	SnapshotOnRescan bool
}

// Server represents the API server
type Server struct {
	opts    Options
	logger  *logrus.Logger
	metrics *observability.Metrics
	health  *observability.HealthChecker
	store   storage.Storage
	scanner *gradle.Scanner
	router  *mux.Router
	cache   *expirable.LRU[string, string]

	mu       sync.RWMutex
	graph    *graph.ModuleGraph
	result   graph.Result
	lastScan time.Time
}

// NewServer creates the API server. The returned server has no graph yet;
// call Rescan before serving traffic or let readiness gate on it.
func NewServer(opts Options, store storage.Storage, metrics *observability.Metrics, logger *logrus.Logger) (*Server, error) {
	if opts.ProjectRoot == "" {
		return nil, fmt.Errorf("project root is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Priorities == nil {
		opts.Priorities = graph.Priorities{}
	}

	s := &Server{
		opts:    opts,
		logger:  logger,
		metrics: metrics,
		health:  observability.NewHealthChecker(),
		store:   store,
		scanner: gradle.NewScanner(opts.Scan, logger),
		router:  mux.NewRouter(),
		cache:   expirable.NewLRU[string, string](opts.CacheSize, nil, opts.CacheTTL),
	}

	s.health.RegisterCheck("scan", func(ctx context.Context) error {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.graph == nil {
			return fmt.Errorf("no completed scan yet")
		}
		return nil
	})
	if store != nil {
		s.health.RegisterCheck("storage", func(ctx context.Context) error {
			_, err := store.ListSnapshots(ctx)
			return err
		})
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.Use(
		httputil.RequestIDMiddleware(),
		httputil.RecoveryMiddleware(s.logger),
		observability.HTTPMetricsMiddleware(s.metrics),
	)

	s.router.HandleFunc("/healthz", s.health.Liveness).Methods("GET")
	s.router.HandleFunc("/readyz", s.health.Readiness).Methods("GET")

	s.router.HandleFunc("/api/v1/modules", s.listModules).Methods("GET")
	s.router.HandleFunc("/api/v1/modules/{name}/dependencies", s.getDependencies).Methods("GET")
	s.router.HandleFunc("/api/v1/modules/{name}/paths/{target}", s.getPaths).Methods("GET")
	s.router.HandleFunc("/api/v1/modules/{name}/graph", s.getGraph).Methods("GET")

	s.router.HandleFunc("/api/v1/reports/{format}", s.getReport).Methods("GET")

	s.router.HandleFunc("/api/v1/snapshots", s.listSnapshots).Methods("GET")
	s.router.HandleFunc("/api/v1/snapshots", s.createSnapshot).Methods("POST")
	s.router.HandleFunc("/api/v1/snapshots/diff", s.diffSnapshots).Methods("GET")

	s.router.HandleFunc("/api/v1/rescan", s.triggerRescan).Methods("POST")
}

// Router exposes the mux router so the caller can mount extra handlers,
// /metrics in particular.
func (s *Server) Router() *mux.Router {
	return s.router
}

// state returns the current graph and resolution under the read lock.
func (s *Server) state() (*graph.ModuleGraph, graph.Result, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.result, s.lastScan
}

// Rescan scans the project tree, resolves the graph and swaps it in. The
// report cache is purged on success.
func (s *Server) Rescan(ctx context.Context, trigger string) error {
	s.metrics.RescansTotal.WithLabelValues(trigger).Inc()

	start := time.Now()
	g, err := s.scanner.Scan(ctx, s.opts.ProjectRoot)
	if err != nil {
		s.metrics.ScansTotal.WithLabelValues("error").Inc()
		s.metrics.ScanErrors.Inc()
		s.logger.WithError(err).WithField("trigger", trigger).Error("project scan failed")
		return err
	}
	s.metrics.ScansTotal.WithLabelValues("success").Inc()
	s.metrics.ScanDuration.Observe(time.Since(start).Seconds())

	resolveStart := time.Now()
	res := graph.NewResolver(g, s.logger).ResolveAll()
	s.metrics.ResolutionsTotal.Inc()
	s.metrics.ResolutionDuration.Observe(time.Since(resolveStart).Seconds())

	s.mu.Lock()
	s.graph = g
	s.result = res
	s.lastScan = time.Now()
	s.mu.Unlock()

	s.cache.Purge()
	s.updateGraphGauges(g, res)

	if s.opts.SnapshotOnRescan && s.store != nil {
		snap := storage.NewSnapshot(s.opts.ProjectRoot, g, res)
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			s.metrics.SnapshotOperationsTotal.WithLabelValues("save", "error").Inc()
			s.logger.WithError(err).Warn("rescan snapshot not persisted")
		} else {
			s.metrics.SnapshotOperationsTotal.WithLabelValues("save", "success").Inc()
		}
	}

	s.logger.WithFields(logrus.Fields{
		"trigger": trigger,
		"modules": g.Len(),
	}).Info("rescan complete")
	return nil
}

func (s *Server) updateGraphGauges(g *graph.ModuleGraph, res graph.Result) {
	edges := 0
	for _, deps := range g.Edges() {
		edges += len(deps)
	}
	cycles := 0
	for _, deps := range res {
		for _, dep := range deps {
			for _, p := range dep.Paths {
				if p.Cycle {
					cycles++
				}
			}
		}
	}
	s.metrics.ModulesTotal.Set(float64(g.Len()))
	s.metrics.EdgesTotal.Set(float64(edges))
	s.metrics.CyclesTotal.Set(float64(cycles))
}
