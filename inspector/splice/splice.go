// Package splice edits source text at located spans. Every operation returns a new
// whole file string and leaves text outside the edited span unchanged.
package splice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/locator"
)

// Remove deletes span from text
func Remove(text string, span *graph.Span) string {
	if span == nil {
		return text
	}
	return text[:span.Start] + text[span.End:]
}

// Replace substitutes span with content
func Replace(text string, span *graph.Span, content string) string {
	if span == nil {
		return text
	}
	return text[:span.Start] + content + text[span.End:]
}

// Insert places content at offset
func Insert(text string, offset int, content string) (string, error) {
	if offset < 0 || offset > len(text) {
		return "", fmt.Errorf("invalid insert offset %d for text of length %d", offset, len(text))
	}
	return text[:offset] + content + text[offset:], nil
}

// Splicer applies bootstrap edits for a given locator
type Splicer struct {
	locator *locator.Locator
}

// New creates a splicer
func New(loc *locator.Locator) *Splicer {
	if loc == nil {
		loc = locator.Default()
	}
	return &Splicer{locator: loc}
}

var defaultSplicer = New(nil)

var (
	componentsKeyExpr   = regexp.MustCompile(`^(?:components|'components'|"components")\s*:`)
	componentsChainExpr = regexp.MustCompile(`^\.\s*components\s*\(`)
)

// RemoveBootstrap deletes the bootstrap block, returning text unchanged when none is found
func (s *Splicer) RemoveBootstrap(text string) string {
	block, ok := s.locator.FindBootstrap(text)
	if !ok {
		return text
	}
	return Remove(text, block.Span)
}

// RemoveComponentsField strips top level `components` fields of an object literal, or of an
// object body when text does not start with a brace, together with an adjacent comma.
// Fields of nested objects are kept.
func RemoveComponentsField(text string) string {
	for {
		start, end, ok := componentsField(text)
		if !ok {
			return text
		}
		text = text[:start] + text[end:]
	}
}

// componentsField returns the span of the first top level components field
func componentsField(text string) (int, int, bool) {
	fieldDepth := 0
	if strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{") {
		fieldDepth = 1
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		if depth == fieldDepth {
			if comma, ok := fieldStart(text, i); ok {
				if key := componentsKeyExpr.FindStringIndex(text[i:]); key != nil {
					start, end := fieldSpan(text, comma, i, i+key[1])
					return start, end, true
				}
			}
		}
		switch text[i] {
		case '\'', '"', '`':
			i = skipQuoted(text, i)
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		}
	}
	return 0, 0, false
}

// fieldStart reports whether a field key may start at offset, returning the offset of the
// preceding comma or -1
func fieldStart(text string, offset int) (int, bool) {
	i := offset - 1
	for i >= 0 && strings.IndexByte(" \t\r\n", text[i]) != -1 {
		i--
	}
	switch {
	case i < 0, text[i] == '{':
		return -1, true
	case text[i] == ',':
		return i, true
	}
	return -1, false
}

// fieldSpan returns the removable span of a field whose value starts at value
func fieldSpan(text string, comma, key, value int) (int, int) {
	depth := 0
	end := len(text)
scan:
	for i := value; i < len(text); i++ {
		switch text[i] {
		case '\'', '"', '`':
			i = skipQuoted(text, i)
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth == 0 {
				end = i
				break scan
			}
			depth--
		case ',':
			if depth == 0 {
				return key, i + 1
			}
		}
	}
	if comma >= 0 {
		return comma, len(strings.TrimRight(text[:end], " \t\r\n"))
	}
	return key, end
}

// skipQuoted returns the offset of the quote closing the one at open
func skipQuoted(text string, open int) int {
	quote := text[open]
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(text) - 1
}

// InjectOptions sets `components: [...]` as the last field of the factory options object.
// An existing components field is replaced.
func (s *Splicer) InjectOptions(text string, names []string) (string, error) {
	options, ok := s.locator.Locate(locator.KindOptionsObject, text)
	if !ok {
		return "", locator.NotFound(locator.KindOptionsObject.String())
	}
	text = Replace(text, options, RemoveComponentsField(options.Raw))

	end, ok := s.locator.OptionsEnd(text)
	if !ok {
		return "", locator.NotFound("factory options object end")
	}
	before := strings.TrimRight(text[:end], " \t\r\n")
	separator := ""
	if !strings.HasSuffix(before, ",") && !strings.HasSuffix(before, "{") {
		separator = ","
	}
	return before + separator + "\n  components: [" + strings.Join(names, ", ") + "]\n" + text[end:], nil
}

// AppendChain inserts `.components([...])` right after the legacy server constructor call.
// An existing components chain call is removed first.
func (s *Splicer) AppendChain(text string, names []string) (string, error) {
	if block, ok := s.locator.FindBootstrap(text); ok && block.Shape == locator.LegacyChain {
		chain := block.Chain(text)
		for i := len(chain) - 1; i >= 0; i-- {
			if componentsChainExpr.MatchString(chain[i].Raw) {
				text = Remove(text, chain[i])
			}
		}
	}
	end, ok := s.locator.ServerCallEnd(text)
	if !ok {
		return "", locator.NotFound(locator.KindLegacyServer.String())
	}
	return Insert(text, end, ".components(["+strings.Join(names, ",")+"])")
}

// RemoveBootstrap deletes the default bootstrap block
func RemoveBootstrap(text string) string {
	return defaultSplicer.RemoveBootstrap(text)
}

// InjectOptions sets the components field of the default factory options object
func InjectOptions(text string, names []string) (string, error) {
	return defaultSplicer.InjectOptions(text, names)
}

// AppendChain inserts a components chain call after the default legacy server call
func AppendChain(text string, names []string) (string, error) {
	return defaultSplicer.AppendChain(text, names)
}

// Balanced reports whether text has matching counts of braces, parentheses and brackets
func Balanced(text string) bool {
	return strings.Count(text, "{") == strings.Count(text, "}") &&
		strings.Count(text, "(") == strings.Count(text, ")") &&
		strings.Count(text, "[") == strings.Count(text, "]")
}
