// Package imports merges discovered component imports into existing entry file code.
package imports

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/statement"
)

// ErrConflict indicates that an incoming import would overwrite a different existing import
var ErrConflict = errors.New("component already exists")

// DefaultInternalMarker marks generated framework files excluded from emitted imports
const DefaultInternalMarker = ".asena."

// ConflictError describes a conflicting import
type ConflictError struct {
	Path     string
	Existing []string
	Incoming []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s imports {%s}, requested {%s}", ErrConflict, e.Path,
		strings.Join(e.Existing, ","), strings.Join(e.Incoming, ","))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Option configures a Merger
type Option func(m *Merger)

// WithInternalMarker sets the specifier marker excluded from emitted imports
func WithInternalMarker(marker string) Option {
	return func(m *Merger) {
		m.marker = marker
	}
}

// Merger reconciles computed imports with imports already declared in code
type Merger struct {
	code       string
	style      graph.ImportStyle
	marker     string
	existing   *graph.ImportMap
	components []string
}

// New creates a merger collecting imports already declared in code
func New(code string, style graph.ImportStyle, opts ...Option) *Merger {
	m := &Merger{code: code, style: style, marker: DefaultInternalMarker}
	for _, opt := range opts {
		opt(m)
	}
	m.existing = statement.Collect(code, style)
	return m
}

// Components returns names of all merged imports, internal ones included, in merge order
func (m *Merger) Components() []string {
	return m.components
}

// Code returns current code
func (m *Merger) Code() string {
	return m.code
}

// Merge prepends import statements for incoming to the code. A specifier already imported
// with a different set of names fails with ErrConflict.
func (m *Merger) Merge(incoming *graph.ImportMap) (string, error) {
	builder := &strings.Builder{}
	for _, path := range incoming.Paths() {
		names := incoming.Names(path)
		if len(names) == 0 {
			continue
		}
		m.components = append(m.components, names...)
		if m.IsInternal(path) {
			continue
		}
		specifier := Specifier(path)
		if m.existing.Has(specifier) {
			if !m.existing.SameNames(specifier, names) {
				return "", &ConflictError{Path: specifier, Existing: m.existing.Names(specifier), Incoming: names}
			}
			continue
		}
		m.existing.Add(specifier, names...)
		builder.WriteString(Render(names, path, m.style))
	}
	m.code = builder.String() + m.code
	return m.code, nil
}

// IsInternal reports whether path denotes a generated framework file
func (m *Merger) IsInternal(path string) bool {
	return m.marker != "" && strings.Contains(path, m.marker)
}

// Specifier returns module specifier for a path: package references starting with @
// and explicit relative or absolute paths are kept, in project paths get a ./ prefix
func Specifier(path string) string {
	if strings.HasPrefix(path, "@") || strings.HasPrefix(path, ".") || strings.HasPrefix(path, "/") {
		return path
	}
	return "./" + path
}

// Render formats a single import statement
func Render(names []string, path string, style graph.ImportStyle) string {
	if style == graph.CommonJS {
		return fmt.Sprintf("const {%s} = require('%s');\n", strings.Join(names, ","), Specifier(path))
	}
	return fmt.Sprintf("import {%s} from '%s';\n", strings.Join(names, ","), Specifier(path))
}
