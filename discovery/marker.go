package discovery

import (
	"errors"
	"fmt"
)

// ErrNoMetadata indicates that a loader did not read metadata for an export
var ErrNoMetadata = errors.New("export has no metadata")

// Marker reads the IoC marker of an exported value. A value is a component when the read
// succeeds and returns a truthy value.
type Marker interface {
	Read(export *Export) (interface{}, error)
}

// DecoratorMarker treats classes annotated with one of the decorator names as marked
type DecoratorMarker struct {
	Names []string
}

// DefaultDecorators lists the framework decorators registering IoC components
var DefaultDecorators = []string{"Component", "Controller", "Service", "Middleware", "Config", "WebSocket", "Repository", "Schedule"}

// NewDecoratorMarker creates a decorator marker, defaults to DefaultDecorators
func NewDecoratorMarker(names ...string) *DecoratorMarker {
	if len(names) == 0 {
		names = DefaultDecorators
	}
	return &DecoratorMarker{Names: names}
}

// Read returns name of the first matching decorator or nil
func (m *DecoratorMarker) Read(export *Export) (interface{}, error) {
	if !export.Class {
		return nil, nil
	}
	for _, decorator := range export.Decorators {
		for _, name := range m.Names {
			if decorator == name {
				return decorator, nil
			}
		}
	}
	return nil, nil
}

// MetadataMarker reads metadata recorded by a runtime loader under Key
type MetadataMarker struct {
	Key string
}

// DefaultMetadataKey is the description of the framework IoC object symbol
const DefaultMetadataKey = "component:iocObject"

// Read returns metadata value recorded for Key
func (m *MetadataMarker) Read(export *Export) (interface{}, error) {
	if export.Error != "" {
		return nil, fmt.Errorf("failed to read metadata of %s: %s", export.Name, export.Error)
	}
	if export.Metadata == nil {
		return nil, ErrNoMetadata
	}
	value, ok := export.Metadata[m.Key]
	if !ok {
		return nil, ErrNoMetadata
	}
	return value, nil
}

// Truthy follows script truthiness for values decoded from JSON or produced by markers
func Truthy(value interface{}) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case bool:
		return actual
	case string:
		return actual != ""
	case float64:
		return actual != 0
	case int:
		return actual != 0
	}
	return true
}
