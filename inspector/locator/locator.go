// Package locator finds byte spans of the constructs the build rewrites: the bootstrap
// block, the factory options object, legacy server call and decorated class bodies.
//
// Lookup combines regular expressions for construct heads with balanced delimiter
// counting for bodies and argument lists.
package locator

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/viant/asenabuild/inspector/graph"
)

// ErrNotFound indicates that a required construct could not be located
var ErrNotFound = errors.New("construct not found")

// NotFoundError describes which construct was searched for
type NotFoundError struct {
	Construct string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrNotFound, e.Construct)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotFound creates a NotFoundError
func NotFound(construct string) error {
	return &NotFoundError{Construct: construct}
}

// Kind identifies a locatable construct
type Kind int

const (
	// KindBootstrap is the whole bootstrap block of either shape
	KindBootstrap Kind = iota
	// KindFactoryCreate is the awaited factory create call
	KindFactoryCreate
	// KindOptionsObject is the factory create options object literal
	KindOptionsObject
	// KindLegacyServer is the legacy server constructor call
	KindLegacyServer
)

func (k Kind) String() string {
	switch k {
	case KindBootstrap:
		return "bootstrap block"
	case KindFactoryCreate:
		return "factory create call"
	case KindOptionsObject:
		return "factory options object"
	case KindLegacyServer:
		return "legacy server call"
	}
	return "unknown"
}

const (
	// DefaultFactory is the factory namespace of the current bootstrap syntax
	DefaultFactory = "AsenaServerFactory"
	// DefaultServer is the server class of the legacy bootstrap syntax
	DefaultServer = "AsenaServer"
)

// Locator finds constructs for a given factory namespace and legacy server class
type Locator struct {
	factory string
	server  string

	factoryHead *regexp.Regexp
	createHead  *regexp.Regexp
	legacyHead  *regexp.Regexp
	serverHead  *regexp.Regexp
}

var defaultLocator = New(DefaultFactory, DefaultServer)

// Default returns locator for the default framework names
func Default() *Locator {
	return defaultLocator
}

// New creates a locator
func New(factory, server string) *Locator {
	f := regexp.QuoteMeta(factory)
	s := regexp.QuoteMeta(server)
	return &Locator{
		factory:     factory,
		server:      server,
		factoryHead: regexp.MustCompile(`\b(?:const|let|var)\s+([\w$]+)\s*=\s*await\s+` + f + `\s*\.\s*create\s*\(`),
		createHead:  regexp.MustCompile(`\bawait\s+` + f + `\s*\.\s*create\s*\(`),
		legacyHead:  regexp.MustCompile(`\bawait\s+new\s+` + s + `\s*\(`),
		serverHead:  regexp.MustCompile(`\bnew\s+` + s + `\s*\(`),
	}
}

// Locate returns the span of the first construct of the given kind
func (l *Locator) Locate(kind Kind, text string) (*graph.Span, bool) {
	switch kind {
	case KindBootstrap:
		if block, ok := l.FindBootstrap(text); ok {
			return block.Span, true
		}
	case KindFactoryCreate:
		return l.factoryCreate(text)
	case KindOptionsObject:
		return l.optionsObject(text)
	case KindLegacyServer:
		return l.serverCall(text)
	}
	return nil, false
}

// OptionsEnd returns the absolute offset of the closing brace of the factory options object
func (l *Locator) OptionsEnd(text string) (int, bool) {
	span, ok := l.optionsObject(text)
	if !ok {
		return -1, false
	}
	return span.End - 1, true
}

// ServerCallEnd returns the offset right after the legacy server constructor call
func (l *Locator) ServerCallEnd(text string) (int, bool) {
	span, ok := l.serverCall(text)
	if !ok {
		return -1, false
	}
	return span.End, true
}

func (l *Locator) factoryCreate(text string) (*graph.Span, bool) {
	loc := l.createHead.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	closing, ok := MatchParen(text, loc[1]-1)
	if !ok {
		return nil, false
	}
	return graph.NewLocation(text, loc[0], closing+1), true
}

func (l *Locator) optionsObject(text string) (*graph.Span, bool) {
	loc := l.createHead.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	closing, ok := MatchParen(text, loc[1]-1)
	if !ok {
		return nil, false
	}
	open := skipSpace(text, loc[1])
	if open >= closing || text[open] != '{' {
		return nil, false
	}
	end, ok := MatchBrace(text, open)
	if !ok || end >= closing {
		return nil, false
	}
	return graph.NewLocation(text, open, end+1), true
}

func (l *Locator) serverCall(text string) (*graph.Span, bool) {
	loc := l.serverHead.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}
	closing, ok := MatchParen(text, loc[1]-1)
	if !ok {
		return nil, false
	}
	return graph.NewLocation(text, loc[0], closing+1), true
}

// Package level helpers using the default framework names

// Locate returns the span of the first construct of the given kind
func Locate(kind Kind, text string) (*graph.Span, bool) {
	return defaultLocator.Locate(kind, text)
}

// OptionsEnd returns the absolute offset of the factory options object closing brace
func OptionsEnd(text string) (int, bool) {
	return defaultLocator.OptionsEnd(text)
}

// ServerCallEnd returns the offset right after the legacy server constructor call
func ServerCallEnd(text string) (int, bool) {
	return defaultLocator.ServerCallEnd(text)
}

// FindBootstrap finds the bootstrap block using the default framework names
func FindBootstrap(text string) (*Bootstrap, bool) {
	return defaultLocator.FindBootstrap(text)
}
