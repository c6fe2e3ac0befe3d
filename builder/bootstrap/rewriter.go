// Package bootstrap injects discovered components into the framework bootstrap block.
package bootstrap

import (
	"github.com/viant/asenabuild/inspector/locator"
	"github.com/viant/asenabuild/inspector/splice"
)

// Rewriter injects component lists into bootstrap blocks of either shape
type Rewriter struct {
	locator *locator.Locator
	splicer *splice.Splicer
}

// New creates a rewriter, nil locator uses default framework names
func New(loc *locator.Locator) *Rewriter {
	if loc == nil {
		loc = locator.Default()
	}
	return &Rewriter{locator: loc, splicer: splice.New(loc)}
}

// Shape detects the bootstrap shape of text. A factory create call without a start call
// still counts as the factory shape.
func (r *Rewriter) Shape(text string) (locator.Shape, error) {
	if block, ok := r.locator.FindBootstrap(text); ok {
		return block.Shape, nil
	}
	if _, ok := r.locator.Locate(locator.KindFactoryCreate, text); ok {
		return locator.Factory, nil
	}
	if _, ok := r.locator.Locate(locator.KindLegacyServer, text); ok {
		return locator.LegacyChain, nil
	}
	return 0, locator.NotFound(locator.KindBootstrap.String())
}

// Inject sets the component list of the bootstrap in text. The factory shape gets a
// components field in its options object, the legacy shape a components chain call.
func (r *Rewriter) Inject(text string, names []string) (string, error) {
	shape, err := r.Shape(text)
	if err != nil {
		return "", err
	}
	switch shape {
	case locator.LegacyChain:
		return r.splicer.AppendChain(text, names)
	default:
		return r.splicer.InjectOptions(text, names)
	}
}

// Extract splits text into code without bootstrap block and the block itself
func (r *Rewriter) Extract(text string) (string, *locator.Bootstrap, error) {
	block, ok := r.locator.FindBootstrap(text)
	if !ok {
		return "", nil, locator.NotFound(locator.KindBootstrap.String())
	}
	return splice.Remove(text, block.Span), block, nil
}
