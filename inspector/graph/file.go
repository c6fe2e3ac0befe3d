package graph

// ImportStyle represents module system used by a source file
type ImportStyle int

const (
	// ESModule uses import/export statements
	ESModule ImportStyle = iota
	// CommonJS uses require/module.exports
	CommonJS
)

// String returns style name
func (s ImportStyle) String() string {
	switch s {
	case ESModule:
		return "esm"
	case CommonJS:
		return "commonjs"
	}
	return "unknown"
}

// File represents an inspected script file with its imports and exported classes
type File struct {
	Name    string   // File name
	Path    string   // File path
	Imports []Import // Imports declared in this file
	Classes []*Class // Classes declared in this file
	Invalid bool     // Source contains syntax errors

	classMap map[string]int // Map of classes for quick lookup
}

// Import represents an import or require statement
type Import struct {
	Names     []string  // Local names bound by the statement (empty for side effect imports)
	Path      string    // Module specifier
	Namespace bool      // Statement binds a namespace object
	Location  *Location // Location of the statement
}

// NamespaceImport marks a namespace import in ImportedFrom results
const NamespaceImport = "*"

// AddClass adds a class to the file
func (f *File) AddClass(class *Class) {
	f.Classes = append(f.Classes, class)
	f.classMap = nil
}

// LookupClass retrieves a class by name from the file
func (f *File) LookupClass(name string) *Class {
	if len(f.classMap) == 0 {
		f.IndexClasses()
	}
	if idx, ok := f.classMap[name]; ok && idx < len(f.Classes) {
		return f.Classes[idx]
	}
	return nil
}

// IndexClasses rebuilds class lookup index
func (f *File) IndexClasses() {
	f.classMap = make(map[string]int)
	for i, class := range f.Classes {
		if class == nil {
			continue
		}
		if _, ok := f.classMap[class.Name]; !ok {
			f.classMap[class.Name] = i
		}
	}
}

// ImportedFrom returns local names bound by imports whose specifier satisfies match.
// A matching namespace import adds NamespaceImport.
func (f *File) ImportedFrom(match func(path string) bool) map[string]bool {
	result := map[string]bool{}
	for _, imp := range f.Imports {
		if !match(imp.Path) {
			continue
		}
		if imp.Namespace {
			result[NamespaceImport] = true
		}
		for _, name := range imp.Names {
			result[name] = true
		}
	}
	return result
}
