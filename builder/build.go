package builder

import (
	"context"
	"errors"
)

// Build generates the entry file, bundles it and removes it afterwards, failures included
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	result, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = g.Write(ctx, result); err != nil {
		return nil, errors.Join(err, g.RemoveEntry(ctx))
	}
	output, err := g.bundler.Bundle(ctx, g.EntryPath(), g.config)
	removeErr := g.RemoveEntry(ctx)
	if err != nil {
		return nil, errors.Join(err, removeErr)
	}
	if output != "" {
		g.logger.Debug("bundler output", "output", output)
	}
	return result, removeErr
}
