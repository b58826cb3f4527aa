package fetch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gammazero/toposort"
)

// Package describes one downloadable package: where its tarball lives and
// which other packages must be unpacked before it.
type Package struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	URL      string   `json:"url"`
	Requires []string `json:"requires,omitempty"`
}

// Dir returns the directory name the package unpacks into.
func (p Package) Dir() string {
	return p.Name + "-" + p.Version
}

// Manifest lists the packages a build needs.
type Manifest struct {
	Packages []Package `json:"packages"`
}

// ParseManifest decodes a JSON manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Order returns the manifest's packages in dependency order: every package
// appears after all packages it requires. Unknown requirements and
// dependency cycles are errors.
func Order(m *Manifest) ([]Package, error) {
	byName := make(map[string]Package, len(m.Packages))
	for _, pkg := range m.Packages {
		if _, dup := byName[pkg.Name]; dup {
			return nil, fmt.Errorf("duplicate package %q in manifest", pkg.Name)
		}
		byName[pkg.Name] = pkg
	}

	edges := make([]toposort.Edge, 0)
	for _, pkg := range m.Packages {
		for _, req := range pkg.Requires {
			if _, known := byName[req]; !known {
				return nil, fmt.Errorf("package %q requires unknown package %q", pkg.Name, req)
			}
			// Edge is [2]interface{} where element 0 comes before element 1,
			// so the requirement sorts ahead of its dependent.
			edges = append(edges, toposort.Edge{req, pkg.Name})
		}
	}

	sortedNames, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("circular dependency detected: %w", err)
	}

	ordered := make([]Package, 0, len(m.Packages))
	seen := make(map[string]bool, len(m.Packages))
	for _, nameInterface := range sortedNames {
		name, ok := nameInterface.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", nameInterface)
		}
		if pkg, exists := byName[name]; exists && !seen[name] {
			ordered = append(ordered, pkg)
			seen[name] = true
		}
	}

	// Packages that take part in no dependency edge keep manifest order.
	for _, pkg := range m.Packages {
		if !seen[pkg.Name] {
			ordered = append(ordered, pkg)
			seen[pkg.Name] = true
		}
	}

	return ordered, nil
}
