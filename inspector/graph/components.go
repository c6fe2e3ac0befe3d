package graph

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// ComponentMap maps a relative, slash separated file path to classes carrying the IoC marker
type ComponentMap struct {
	files map[string][]*Class
}

// NewComponentMap creates an empty component map
func NewComponentMap() *ComponentMap {
	return &ComponentMap{files: map[string][]*Class{}}
}

// Set registers classes discovered in path, replacing previous entry
func (m *ComponentMap) Set(path string, classes []*Class) {
	if m.files == nil {
		m.files = map[string][]*Class{}
	}
	if classes == nil {
		classes = []*Class{}
	}
	m.files[path] = classes
}

// Lookup returns classes discovered in path
func (m *ComponentMap) Lookup(path string) ([]*Class, bool) {
	if m == nil {
		return nil, false
	}
	classes, ok := m.files[path]
	return classes, ok
}

// Paths returns sorted file paths
func (m *ComponentMap) Paths() []string {
	if m == nil {
		return nil
	}
	result := make([]string, 0, len(m.files))
	for path := range m.files {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

// Count returns total number of discovered classes
func (m *ComponentMap) Count() int {
	count := 0
	for _, path := range m.Paths() {
		count += len(m.files[path])
	}
	return count
}

// Names returns component names in path order
func (m *ComponentMap) Names() []string {
	var result []string
	for _, path := range m.Paths() {
		for _, class := range m.files[path] {
			result = append(result, class.Name)
		}
	}
	return result
}

// ImportMap derives imports for files contributing at least one component
func (m *ComponentMap) ImportMap() *ImportMap {
	result := NewImportMap()
	for _, path := range m.Paths() {
		classes := m.files[path]
		if len(classes) == 0 {
			continue
		}
		for _, class := range classes {
			result.Add(path, class.Name)
		}
	}
	return result
}

// MarshalYAML renders map as path keyed lists of classes
func (m *ComponentMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, path := range m.Paths() {
		value := &yaml.Node{}
		if err := value.Encode(m.files[path]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: path}, value)
	}
	return node, nil
}
