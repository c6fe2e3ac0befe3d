package inspector

import (
	"context"
	"path/filepath"

	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/script"
)

// Inspector provides an interface for inspecting script source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts imports and classes
	InspectSource(ctx context.Context, src []byte) (*graph.File, error)

	// InspectFile parses a source file and extracts imports and classes
	InspectFile(ctx context.Context, filename string) (*graph.File, error)
}

// Factory creates inspectors based on file extension
type Factory struct {
}

// NewFactory creates a new inspector factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetInspector returns an inspector with the grammar matching the file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	language, err := script.LanguageFor(filename)
	if err != nil {
		return nil, err
	}
	return script.NewInspector(language), nil
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, filename string) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, filename)
}

// InspectSource inspects src using the grammar matching filename
func (f *Factory) InspectSource(ctx context.Context, filename string, src []byte) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	file, err := inspector.InspectSource(ctx, src)
	if err != nil {
		return nil, err
	}
	file.Path = filename
	file.Name = filepath.Base(filename)
	return file, nil
}
