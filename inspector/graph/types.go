package graph

// Location represents a byte span in the source text
type Location struct {
	Start int    // Start offset (inclusive)
	End   int    // End offset (exclusive)
	Raw   string // Raw text covered by the span
}

// Span is an alias used by the locator and splicer for located constructs
type Span = Location

// NewLocation creates a location for text[start:end]
func NewLocation(text string, start, end int) *Location {
	return &Location{Start: start, End: end, Raw: text[start:end]}
}

// Len returns span length
func (l *Location) Len() int {
	if l == nil {
		return 0
	}
	return l.End - l.Start
}

// Class represents a discovered exported class reference. It is used purely as a
// textual identifier when emitting import and bootstrap code.
type Class struct {
	Name       string    `yaml:"name"`                 // Exported identifier
	Path       string    `yaml:"path,omitempty"`       // Relative file path the class was discovered in
	Decorators []string  `yaml:"decorators,omitempty"` // Decorator names applied to the class
	Default    bool      `yaml:"default,omitempty"`    // Whether the class is the default export
	Location   *Location `yaml:"-"`                    // Location of the class declaration in the source code
}

// HasDecorator reports whether class carries a decorator with the given name
func (c *Class) HasDecorator(name string) bool {
	for _, candidate := range c.Decorators {
		if candidate == name {
			return true
		}
	}
	return false
}
