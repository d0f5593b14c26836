package gradle

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/modscope/modscope/pkg/graph"
)

// DefaultDescriptor is the file name of a Gradle module build descriptor.
const DefaultDescriptor = "build.gradle"

// Options configures the descriptor scan.
type Options struct {
	// Descriptor is the per-module build file name. Defaults to build.gradle.
	Descriptor string
	// IgnoreDirs lists directory names skipped entirely during the walk
	// (build output, VCS metadata and the like).
	IgnoreDirs []string
	// Translations maps a module's path-derived name to its canonical name,
	// for the rare module whose directory does not match its project name.
	Translations map[string]string
}

func (o Options) descriptor() string {
	if o.Descriptor == "" {
		return DefaultDescriptor
	}
	return o.Descriptor
}

// Scanner walks a Gradle project tree and assembles a module graph from the
// per-module build descriptors it finds.
type Scanner struct {
	opts   Options
	logger *logrus.Logger
}

// NewScanner creates a scanner with the given options.
func NewScanner(opts Options, logger *logrus.Logger) *Scanner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scanner{opts: opts, logger: logger}
}

// Scan discovers every module descriptor under root (skipping the project's
// own root descriptor) and extracts declared dependencies. Descriptors are
// parsed concurrently; a descriptor that cannot be read aborts the scan, since
// an unreadable build file signals an environment problem rather than a data
// condition.
func (s *Scanner) Scan(ctx context.Context, root string) (*graph.ModuleGraph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("failed to access project root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", absRoot)
	}

	descriptors, err := s.findDescriptors(absRoot)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"root":        absRoot,
		"descriptors": len(descriptors),
	}).Debug("discovered module descriptors")

	type moduleDeps struct {
		name string
		deps []string
	}

	var mu sync.Mutex
	parsed := make([]moduleDeps, 0, len(descriptors))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for _, descriptor := range descriptors {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name, err := s.moduleName(absRoot, descriptor)
			if err != nil {
				return err
			}
			f, err := os.Open(descriptor)
			if err != nil {
				return fmt.Errorf("failed to open descriptor %s: %w", descriptor, err)
			}
			defer f.Close()
			deps, err := ParseDependencies(f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", descriptor, err)
			}
			mu.Lock()
			parsed = append(parsed, moduleDeps{name: name, deps: deps})
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g := graph.NewModuleGraph()
	for _, m := range parsed {
		g.AddModule(m.name, m.deps...)
	}
	return g, nil
}

// findDescriptors walks the tree collecting per-module descriptor paths.
func (s *Scanner) findDescriptors(absRoot string) ([]string, error) {
	rootDescriptor := filepath.Join(absRoot, s.opts.descriptor())
	var descriptors []string
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.ignored(d.Name()) && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != s.opts.descriptor() || path == rootDescriptor {
			return nil
		}
		descriptors = append(descriptors, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project tree: %w", err)
	}
	return descriptors, nil
}

func (s *Scanner) ignored(dir string) bool {
	for _, name := range s.opts.IgnoreDirs {
		if dir == name {
			return true
		}
	}
	return false
}

// moduleName derives the module name from the descriptor's directory path
// relative to the project root, slash-separated for nested modules, with
// configured translations applied.
func (s *Scanner) moduleName(absRoot, descriptor string) (string, error) {
	rel, err := filepath.Rel(absRoot, filepath.Dir(descriptor))
	if err != nil {
		return "", fmt.Errorf("failed to derive module name for %s: %w", descriptor, err)
	}
	name := filepath.ToSlash(rel)
	if translated, ok := s.opts.Translations[name]; ok {
		return translated, nil
	}
	return name, nil
}
