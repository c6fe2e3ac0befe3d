// Package statement recognizes import and require statements in script source text.
//
// Recognition is pattern based and best effort: statements that do not fit the supported
// shapes are skipped rather than reported.
package statement

import (
	"regexp"
	"strings"

	"github.com/viant/asenabuild/inspector/graph"
)

// Statement represents a recognized import or require statement
type Statement struct {
	Raw      string          // Whole statement text
	Names    []string        // Local names bound by the statement
	Path     string          // Module specifier
	Style    graph.ImportStyle
	Location *graph.Location // Location of the statement in the source text
}

var (
	importHeadExpr  = regexp.MustCompile(`\bimport\b`)
	importStmtExpr  = regexp.MustCompile(`^import(?:\s+type\b)?(?:\s*[^'"{}\n;()]*?(?:\{[^}]*\})?\s*\bfrom)?\s*['"][^'"\n]+['"][ \t]*;?`)
	requireLineExpr = regexp.MustCompile(`(?m)((?:\b(?:const|let|var)\s+(?:[\w$]+|\{[^}]*\})\s*=\s*)?\brequire\(\s*['"][^'"\n]+['"]\s*\)[ \t]*;?)`)

	importPathExpr  = regexp.MustCompile(`['"]([^'"\n]+)['"]`)
	requirePathExpr = regexp.MustCompile(`require\(\s*['"]([^'"\n]+)['"]\s*\)`)

	importClauseExpr  = regexp.MustCompile(`(?s)^import\s*(?:type\s+)?(.*?)\s*\bfrom\s*['"]`)
	requireBindExpr   = regexp.MustCompile(`(?s)^(?:const|let|var)\s+([\w$]+|\{[^}]*\})\s*=`)
	namespaceExpr     = regexp.MustCompile(`^\*\s*as\s+([\w$]+)$`)
	identifierExpr    = regexp.MustCompile(`^[\w$]+$`)
	typeQualifierExpr = regexp.MustCompile(`^type\s+`)
	commentExpr       = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// Lines returns whole statement substrings of the given style in source order
func Lines(src string, style graph.ImportStyle) []string {
	var result []string
	for _, loc := range lineIndexes(src, style) {
		result = append(result, src[loc[0]:loc[1]])
	}
	return result
}

// Extract returns recognized statements of the given style in source order
func Extract(src string, style graph.ImportStyle) []*Statement {
	var result []*Statement
	for _, loc := range lineIndexes(src, style) {
		raw := src[loc[0]:loc[1]]
		path := Path(raw, style)
		if path == "" {
			continue
		}
		result = append(result, &Statement{
			Raw:      raw,
			Names:    Names(raw, style),
			Path:     path,
			Style:    style,
			Location: graph.NewLocation(src, loc[0], loc[1]),
		})
	}
	return result
}

// Collect returns imports already declared in src as an ImportMap
func Collect(src string, style graph.ImportStyle) *graph.ImportMap {
	result := graph.NewImportMap()
	for _, stmt := range Extract(src, style) {
		result.Add(stmt.Path, stmt.Names...)
	}
	return result
}

func lineIndexes(src string, style graph.ImportStyle) [][]int {
	if style != graph.CommonJS {
		return importIndexes(src)
	}
	var result [][]int
	for _, match := range requireLineExpr.FindAllStringSubmatchIndex(src, -1) {
		result = append(result, []int{match[2], match[3]})
	}
	return result
}

// importIndexes matches statements at every `import` keyword that is not a member access,
// a dynamic import or part of a line comment
func importIndexes(src string) [][]int {
	var result [][]int
	end := 0
	for _, head := range importHeadExpr.FindAllStringIndex(src, -1) {
		start := head[0]
		if start < end || memberAccess(src, start) || lineComment(src, start) {
			continue
		}
		loc := importStmtExpr.FindStringIndex(src[start:])
		if loc == nil {
			continue
		}
		end = start + loc[1]
		result = append(result, []int{start, end})
	}
	return result
}

func memberAccess(src string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t':
			continue
		case '.', '$':
			return true
		}
		return false
	}
	return false
}

func lineComment(src string, offset int) bool {
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return strings.Contains(src[lineStart:offset], "//")
}

// Path returns the module specifier of a statement
func Path(stmt string, style graph.ImportStyle) string {
	if style == graph.CommonJS {
		if match := requirePathExpr.FindStringSubmatch(stmt); len(match) > 1 {
			return strings.TrimSpace(match[1])
		}
		return ""
	}
	if match := importPathExpr.FindStringSubmatch(stmt); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// Names returns local names bound by a statement
func Names(stmt string, style graph.ImportStyle) []string {
	stmt = strings.TrimSpace(stmt)
	if style == graph.CommonJS {
		return requireNames(stmt)
	}
	return importNames(stmt)
}

func importNames(stmt string) []string {
	match := importClauseExpr.FindStringSubmatch(stmt)
	if len(match) < 2 {
		return nil //side effect import
	}
	clause := strings.TrimSpace(match[1])
	var names []string
	named := ""
	if open := strings.Index(clause, "{"); open != -1 {
		end := strings.LastIndex(clause, "}")
		if end < open {
			return nil
		}
		named = clause[open+1 : end]
		clause = strings.TrimSpace(clause[:open])
	}
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case namespaceExpr.MatchString(part):
			names = append(names, namespaceExpr.FindStringSubmatch(part)[1])
		case identifierExpr.MatchString(part):
			names = append(names, part)
		}
	}
	return append(names, specifierNames(named, " as ")...)
}

func requireNames(stmt string) []string {
	match := requireBindExpr.FindStringSubmatch(stmt)
	if len(match) < 2 {
		return nil
	}
	binding := strings.TrimSpace(match[1])
	if strings.HasPrefix(binding, "{") {
		return specifierNames(strings.Trim(binding, "{}"), ":")
	}
	return []string{binding}
}

// specifierNames splits a named specifier list and returns the local name of each entry
func specifierNames(list string, alias string) []string {
	var names []string
	list = commentExpr.ReplaceAllString(list, "")
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		part = typeQualifierExpr.ReplaceAllString(part, "")
		if idx := strings.Index(part, alias); idx != -1 {
			part = strings.TrimSpace(part[idx+len(alias):])
		}
		if identifierExpr.MatchString(part) {
			names = append(names, part)
		}
	}
	return names
}
