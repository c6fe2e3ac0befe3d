package locator

import (
	"regexp"

	"github.com/viant/asenabuild/inspector/graph"
)

// Shape identifies one of the supported bootstrap syntaxes
type Shape int

const (
	// Factory is `const server = await Factory.create({...}); await server.start();`
	Factory Shape = iota
	// LegacyChain is `await new Server(...).port(3000).start();`
	LegacyChain
)

func (s Shape) String() string {
	switch s {
	case Factory:
		return "factory"
	case LegacyChain:
		return "legacy"
	}
	return "unknown"
}

// Bootstrap represents the located bootstrap block of an entry file
type Bootstrap struct {
	Shape    Shape
	Span     *graph.Span // Whole block
	Call     *graph.Span // Factory create call or legacy server constructor call
	Options  *graph.Span // Factory options object literal, nil for legacy shape
	Variable string      // Server variable of the factory shape
}

var (
	identifierHead = regexp.MustCompile(`^\s*[\w$]+\s*\(`)
	startCallHead  = regexp.MustCompile(`\bawait\s+([\w$]+)\s*\.\s*start\s*\(`)
)

// FindBootstrap returns the bootstrap block. The factory shape is tried first and wins
// when both shapes are present.
func (l *Locator) FindBootstrap(text string) (*Bootstrap, bool) {
	if block, ok := l.findFactory(text); ok {
		return block, true
	}
	return l.findLegacy(text)
}

func (l *Locator) findFactory(text string) (*Bootstrap, bool) {
	for _, loc := range l.factoryHead.FindAllStringSubmatchIndex(text, -1) {
		variable := text[loc[2]:loc[3]]
		closing, ok := MatchParen(text, loc[1]-1)
		if !ok {
			continue
		}
		open := skipSpace(text, loc[1])
		if open >= closing || text[open] != '{' {
			continue
		}
		optionsEnd, ok := MatchBrace(text, open)
		if !ok || optionsEnd >= closing {
			continue
		}
		afterCreate := skipSemicolon(text, closing+1)
		startLoc := startCall(text[afterCreate:], variable)
		if startLoc == nil {
			continue
		}
		startClose, ok := MatchParen(text, afterCreate+startLoc[1]-1)
		if !ok {
			continue
		}
		end := skipSemicolon(text, startClose+1)
		createStart := loc[0] + l.createHead.FindStringIndex(text[loc[0]:loc[1]])[0]
		return &Bootstrap{
			Shape:    Factory,
			Span:     graph.NewLocation(text, loc[0], end),
			Call:     graph.NewLocation(text, createStart, closing+1),
			Options:  graph.NewLocation(text, open, optionsEnd+1),
			Variable: variable,
		}, true
	}
	return nil, false
}

func (l *Locator) findLegacy(text string) (*Bootstrap, bool) {
	for _, loc := range l.legacyHead.FindAllStringIndex(text, -1) {
		closing, ok := MatchParen(text, loc[1]-1)
		if !ok {
			continue
		}
		end, ok := chainEnd(text, closing+1)
		if !ok {
			continue
		}
		callStart := loc[0] + l.serverHead.FindStringIndex(text[loc[0]:loc[1]])[0]
		return &Bootstrap{
			Shape: LegacyChain,
			Span:  graph.NewLocation(text, loc[0], skipSemicolon(text, end)),
			Call:  graph.NewLocation(text, callStart, closing+1),
		}, true
	}
	return nil, false
}

// startCall returns the index pair of the first `await variable.start(` in text
func startCall(text, variable string) []int {
	for _, loc := range startCallHead.FindAllStringSubmatchIndex(text, -1) {
		if text[loc[2]:loc[3]] == variable {
			return loc[:2]
		}
	}
	return nil
}

// chainEnd consumes `.name(...)` calls starting at pos and returns the offset after the last one
func chainEnd(text string, pos int) (int, bool) {
	for {
		next := skipSpace(text, pos)
		if next >= len(text) || text[next] != '.' {
			return pos, true
		}
		head := identifierHead.FindStringIndex(text[next+1:])
		if head == nil {
			return pos, true
		}
		closing, ok := MatchParen(text, next+1+head[1]-1)
		if !ok {
			return -1, false
		}
		pos = closing + 1
	}
}

// Chain returns spans of `.name(...)` calls following the legacy server call
func (b *Bootstrap) Chain(text string) []*graph.Span {
	if b == nil || b.Shape != LegacyChain {
		return nil
	}
	var result []*graph.Span
	pos := b.Call.End
	for {
		next := skipSpace(text, pos)
		if next >= len(text) || text[next] != '.' {
			return result
		}
		head := identifierHead.FindStringIndex(text[next+1:])
		if head == nil {
			return result
		}
		closing, ok := MatchParen(text, next+1+head[1]-1)
		if !ok {
			return result
		}
		result = append(result, graph.NewLocation(text, next, closing+1))
		pos = closing + 1
	}
}
