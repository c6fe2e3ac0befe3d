package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/asenabuild/inspector/graph"
)

// Inspector extracts imports and exported classes from TypeScript/JavaScript source
type Inspector struct {
	language *sitter.Language
}

// NewInspector creates an inspector for the given tree-sitter language, TypeScript by default
func NewInspector(language *sitter.Language) *Inspector {
	if language == nil {
		language = typescript.GetLanguage()
	}
	return &Inspector{language: language}
}

// LanguageFor returns tree-sitter grammar matching the file extension
func LanguageFor(filename string) (*sitter.Language, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".tsx"):
		return tsx.GetLanguage(), nil
	case strings.HasSuffix(name, ".ts"), strings.HasSuffix(name, ".mts"), strings.HasSuffix(name, ".cts"):
		return typescript.GetLanguage(), nil
	case strings.HasSuffix(name, ".jsx"):
		return tsx.GetLanguage(), nil
	case strings.HasSuffix(name, ".js"), strings.HasSuffix(name, ".mjs"), strings.HasSuffix(name, ".cjs"):
		return javascript.GetLanguage(), nil
	}
	return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
}

const defaultFilename = "source.ts"

// InspectSource parses source code from a byte slice
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*graph.File, error) {
	return i.inspect(ctx, src, defaultFilename)
}

// InspectFile parses a source file
func (i *Inspector) InspectFile(ctx context.Context, filename string) (*graph.File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspect(ctx, src, filename)
}

func (i *Inspector) inspect(ctx context.Context, src []byte, filename string) (*graph.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(i.language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()
	return processFile(tree.RootNode(), src, filename), nil
}

// processFile extracts imports and exported classes from the program node
func processFile(root *sitter.Node, src []byte, filename string) *graph.File {
	aFile := &graph.File{
		Name:    filepath.Base(filename),
		Path:    filename,
		Invalid: root.HasError(),
	}
	local := &graph.File{}
	for j := 0; j < int(root.NamedChildCount()); j++ {
		node := root.NamedChild(j)
		switch node.Type() {
		case "import_statement":
			aFile.Imports = append(aFile.Imports, parseImport(node, src))
		case "class_declaration", "abstract_class_declaration":
			if class := processClass(node, src, nil); class != nil {
				local.AddClass(class)
			}
		case "export_statement":
			processExport(aFile, node, src, local)
		}
	}
	return aFile
}

// parseImport extracts bound names and module specifier of an import statement
func parseImport(node *sitter.Node, src []byte) graph.Import {
	result := graph.Import{
		Location: location(node, src),
	}
	if source := node.ChildByFieldName("source"); source != nil {
		result.Path = strings.Trim(source.Content(src), `'"`)
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		clause := node.NamedChild(j)
		if clause.Type() != "import_clause" {
			continue
		}
		for k := 0; k < int(clause.NamedChildCount()); k++ {
			child := clause.NamedChild(k)
			switch child.Type() {
			case "identifier":
				result.Names = append(result.Names, child.Content(src))
			case "namespace_import":
				result.Namespace = true
				for l := 0; l < int(child.NamedChildCount()); l++ {
					if id := child.NamedChild(l); id.Type() == "identifier" {
						result.Names = append(result.Names, id.Content(src))
					}
				}
			case "named_imports":
				for l := 0; l < int(child.NamedChildCount()); l++ {
					specifier := child.NamedChild(l)
					if specifier.Type() != "import_specifier" {
						continue
					}
					name := specifier.ChildByFieldName("alias")
					if name == nil {
						name = specifier.ChildByFieldName("name")
					}
					if name != nil {
						result.Names = append(result.Names, name.Content(src))
					}
				}
			}
		}
	}
	return result
}

// processExport records classes exported by an export statement
func processExport(aFile *graph.File, node *sitter.Node, src []byte, local *graph.File) {
	decorators := decoratorNames(node, src)
	isDefault := hasToken(node, "default")
	if declaration := node.ChildByFieldName("declaration"); declaration != nil {
		switch declaration.Type() {
		case "class_declaration", "abstract_class_declaration", "class":
			if class := processClass(declaration, src, decorators); class != nil {
				class.Default = isDefault
				class.Location = location(node, src)
				aFile.AddClass(class)
			}
		}
		return
	}
	if value := node.ChildByFieldName("value"); value != nil {
		switch value.Type() {
		case "identifier":
			if class := local.LookupClass(value.Content(src)); class != nil {
				exported := *class
				exported.Default = true
				aFile.AddClass(&exported)
			}
		case "class":
			if class := processClass(value, src, decorators); class != nil {
				class.Default = true
				aFile.AddClass(class)
			}
		}
		return
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		clause := node.NamedChild(j)
		if clause.Type() != "export_clause" {
			continue
		}
		for k := 0; k < int(clause.NamedChildCount()); k++ {
			specifier := clause.NamedChild(k)
			if specifier.Type() != "export_specifier" {
				continue
			}
			nameNode := specifier.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			class := local.LookupClass(nameNode.Content(src))
			if class == nil {
				continue
			}
			exported := *class
			if alias := specifier.ChildByFieldName("alias"); alias != nil {
				exported.Name = alias.Content(src)
				exported.Default = exported.Name == "default"
			}
			aFile.AddClass(&exported)
		}
	}
}

// processClass extracts class name and decorators
func processClass(node *sitter.Node, src []byte, inherited []string) *graph.Class {
	name := "default"
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(src)
	}
	decorators := append(append([]string{}, inherited...), decoratorNames(node, src)...)
	class := &graph.Class{
		Name:       name,
		Decorators: decorators,
		Location:   location(node, src),
	}
	return class
}

// decoratorNames returns names of decorators directly attached to node
func decoratorNames(node *sitter.Node, src []byte) []string {
	var result []string
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() != "decorator" {
			continue
		}
		if name := decoratorName(child, src); name != "" {
			result = append(result, name)
		}
	}
	return result
}

func decoratorName(node *sitter.Node, src []byte) string {
	if node.NamedChildCount() == 0 {
		return ""
	}
	expr := node.NamedChild(0)
	if expr.Type() == "call_expression" {
		if fn := expr.ChildByFieldName("function"); fn != nil {
			expr = fn
		}
	}
	name := expr.Content(src)
	if idx := strings.LastIndex(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return strings.TrimSpace(name)
}

func hasToken(node *sitter.Node, token string) bool {
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

func location(node *sitter.Node, src []byte) *graph.Location {
	return &graph.Location{
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Raw:   string(src[node.StartByte():node.EndByte()]),
	}
}
