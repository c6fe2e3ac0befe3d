package graph

import "strings"

// ImportMap maps a module specifier to an ordered, duplicate free list of imported names.
// Specifier insertion order is preserved for deterministic output.
type ImportMap struct {
	paths []string
	names map[string][]string
}

// NewImportMap creates an empty import map
func NewImportMap() *ImportMap {
	return &ImportMap{names: map[string][]string{}}
}

// Add appends names for path, skipping names already present
func (m *ImportMap) Add(path string, names ...string) {
	if m.names == nil {
		m.names = map[string][]string{}
	}
	existing, ok := m.names[path]
	if !ok {
		m.paths = append(m.paths, path)
		existing = []string{}
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || contains(existing, name) {
			continue
		}
		existing = append(existing, name)
	}
	m.names[path] = existing
}

// Has returns true if path was added
func (m *ImportMap) Has(path string) bool {
	if m == nil {
		return false
	}
	_, ok := m.names[path]
	return ok
}

// Names returns names imported from path
func (m *ImportMap) Names(path string) []string {
	if m == nil {
		return nil
	}
	return m.names[path]
}

// Paths returns specifiers in insertion order
func (m *ImportMap) Paths() []string {
	if m == nil {
		return nil
	}
	return m.paths
}

// Len returns number of specifiers
func (m *ImportMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

// SameNames reports whether path imports exactly the given set of names
func (m *ImportMap) SameNames(path string, names []string) bool {
	existing := m.Names(path)
	if len(existing) != len(dedupe(names)) {
		return false
	}
	for _, name := range names {
		if !contains(existing, strings.TrimSpace(name)) {
			return false
		}
	}
	return true
}

func dedupe(names []string) []string {
	var result []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" && !contains(result, name) {
			result = append(result, name)
		}
	}
	return result
}

func contains(items []string, item string) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}
