package locator

import (
	"regexp"

	"github.com/viant/asenabuild/inspector/graph"
)

var (
	decoratorHead    = regexp.MustCompile(`@([\w$]+)\s*\(`)
	classDeclaration = regexp.MustCompile(`^(?:\s*@[\w$.]+\s*(?:\([^()]*\))?)*\s*export\s+(?:default\s+)?(?:abstract\s+)?class\s+([\w$]+)\b[^{;]*\{`)
)

// ClassBody returns the span of a decorated exported class body, braces included.
// The class is matched as `@Decorator(...) export class Name ... {`.
func ClassBody(text, decorator, className string) (*graph.Span, bool) {
	for _, loc := range decoratorHead.FindAllStringSubmatchIndex(text, -1) {
		if text[loc[2]:loc[3]] != decorator {
			continue
		}
		closing, ok := MatchParen(text, loc[1]-1)
		if !ok {
			continue
		}
		decl := classDeclaration.FindStringSubmatchIndex(text[closing+1:])
		if decl == nil || text[closing+1+decl[2]:closing+1+decl[3]] != className {
			continue
		}
		open := closing + 1 + decl[1] - 1
		end, ok := MatchBrace(text, open)
		if !ok {
			return nil, false
		}
		return graph.NewLocation(text, open, end+1), true
	}
	return nil, false
}

// ClassBodyEnd returns the offset of the closing brace of a decorated exported class
func ClassBodyEnd(text, decorator, className string) (int, bool) {
	span, ok := ClassBody(text, decorator, className)
	if !ok {
		return -1, false
	}
	return span.End - 1, true
}
