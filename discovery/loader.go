package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/asenabuild/inspector"
	"github.com/viant/asenabuild/inspector/graph"
)

// ErrSyntax indicates that a source file could not be parsed
var ErrSyntax = errors.New("syntax error")

// Export represents a value exported by a loaded source file
type Export struct {
	Name       string                 `json:"name"`                 // Runtime name used as textual identifier
	Export     string                 `json:"export,omitempty"`     // Export binding name
	Class      bool                   `json:"class"`                // Constructible value
	Default    bool                   `json:"default,omitempty"`    // Default export
	Decorators []string               `json:"decorators,omitempty"` // Decorators applied to a class
	Metadata   map[string]interface{} `json:"metadata,omitempty"`   // Metadata read by a runtime loader
	Error      string                 `json:"error,omitempty"`      // Metadata read failure
}

// Loader loads exported values of a source file
type Loader interface {
	Load(ctx context.Context, location string) ([]*Export, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, location string) ([]*Export, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, location string) ([]*Export, error) {
	return f(ctx, location)
}

// DefaultDecoratorScope is the package scope decorators must be imported from
const DefaultDecoratorScope = "@asenajs/"

// StaticLoader reads exported classes with their decorators without executing code.
// Only decorators imported from a module under Scope are reported; an empty Scope
// reports every decorator.
type StaticLoader struct {
	Scope string

	factory *inspector.Factory
	fs      afs.Service
}

// NewStaticLoader creates a static loader
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{Scope: DefaultDecoratorScope, factory: inspector.NewFactory(), fs: afs.New()}
}

// Load parses location and returns its exported classes
func (l *StaticLoader) Load(ctx context.Context, location string) ([]*Export, error) {
	content, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	file, err := l.factory.InspectSource(ctx, location, content)
	if err != nil {
		return nil, err
	}
	if file.Invalid {
		return nil, fmt.Errorf("failed to load %s: %w", location, ErrSyntax)
	}
	var imported map[string]bool
	if l.Scope != "" {
		imported = file.ImportedFrom(func(path string) bool {
			return strings.HasPrefix(path, l.Scope)
		})
	}
	var result []*Export
	for _, class := range file.Classes {
		result = append(result, &Export{
			Name:       class.Name,
			Export:     class.Name,
			Class:      true,
			Default:    class.Default,
			Decorators: scoped(class.Decorators, imported),
		})
	}
	return result, nil
}

// scoped keeps decorators bound by imported, all of them when imported is nil or holds
// a namespace import
func scoped(decorators []string, imported map[string]bool) []string {
	if imported == nil || imported[graph.NamespaceImport] {
		return decorators
	}
	var result []string
	for _, decorator := range decorators {
		if imported[decorator] {
			result = append(result, decorator)
		}
	}
	return result
}
