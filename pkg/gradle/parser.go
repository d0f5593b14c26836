package gradle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
)

var (
	// compile project(':x') on a single line
	compileProjectPattern = regexp.MustCompile(`compile project\(['"]:(\S+)['"]\)`)
	// project(':x') reference inside a compile block
	projectPattern = regexp.MustCompile(`project\(['"]:(\S+)['"]\)`)
	// start of the dependencies { ... } section
	dependenciesPattern = regexp.MustCompile(`dependencies\W+\{`)
	// start of a grouped compile ( ... ) block
	compilePattern = regexp.MustCompile(`compile\W*\(`)
	// closing bracket line terminating a grouped compile block
	compileEndPattern = regexp.MustCompile(`^\W*\)\W*$`)
)

// ParseDependencies extracts directly declared module dependencies from a
// build descriptor. Two declaration styles are supported: one-line
// "compile project(':x')" entries anywhere in the file, and bare
// "project(':x')" references grouped inside a dependencies/compile block
// terminated by a closing bracket line.
func ParseDependencies(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var deps []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		deps = append(deps, name)
	}

	inDependencies := false
	inCompileBlock := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if !inDependencies {
			if dependenciesPattern.MatchString(line) {
				inDependencies = true
			}
		} else if !inCompileBlock {
			if compilePattern.MatchString(line) {
				inCompileBlock = true
			}
		}
		if inDependencies && inCompileBlock {
			if m := projectPattern.FindStringSubmatch(line); m != nil {
				add(m[1])
			}
			if compileEndPattern.MatchString(line) {
				inDependencies = false
				inCompileBlock = false
			}
		}

		if m := compileProjectPattern.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return deps, nil
}
