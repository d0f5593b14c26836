package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/modscope/modscope/pkg/gradle"
	"github.com/modscope/modscope/pkg/graph"
)

// ProjectFileName is the per-project configuration file looked up in the
// project root.
const ProjectFileName = ".modscope.yaml"

// Project holds analysis settings for one scanned codebase.
type Project struct {
	// Descriptor is the module descriptor file name.
	Descriptor string `yaml:"descriptor"`

	// Ignore lists directory names the scanner skips entirely.
	Ignore []string `yaml:"ignore"`

	// Translations maps directory-derived module names to canonical names.
	Translations map[string]string `yaml:"translations"`

	// Priorities orders modules in reports; lower numbers sort first.
	Priorities map[string]int `yaml:"priorities"`
}

// DefaultProject returns the settings used when no project file exists.
func DefaultProject() *Project {
	return &Project{
		Descriptor: gradle.DefaultDescriptor,
	}
}

// LoadProject reads .modscope.yaml from the project root. A missing file is
// not an error; defaults are returned.
func LoadProject(root string) (*Project, error) {
	path := filepath.Join(root, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProject(), nil
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	project := DefaultProject()
	if err := yaml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}
	if project.Descriptor == "" {
		project.Descriptor = gradle.DefaultDescriptor
	}
	return project, nil
}

// ScanOptions converts the project settings into scanner options.
func (p *Project) ScanOptions() gradle.Options {
	return gradle.Options{
		Descriptor:   p.Descriptor,
		IgnoreDirs:   p.Ignore,
		Translations: p.Translations,
	}
}

// PriorityTable returns the report ordering table. Without configured
// priorities every module sorts lexicographically.
func (p *Project) PriorityTable() graph.Priorities {
	if len(p.Priorities) == 0 {
		return graph.Priorities{}
	}
	table := make(graph.Priorities, len(p.Priorities))
	for name, rank := range p.Priorities {
		table[name] = rank
	}
	return table
}
