// Package commands implements the asena-build CLI commands.
package commands

import (
	"io"
	"log/slog"

	"github.com/viant/asenabuild/builder"
	"github.com/viant/asenabuild/config"
)

// Options holds flags shared by all commands.
type Options struct {
	ProjectDir string
	ConfigPath string
	Verbose    bool
}

// Logger returns a text logger writing to w.
func (o *Options) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Config loads project configuration.
func (o *Options) Config() (*config.Config, error) {
	return config.Load(o.ProjectDir, o.ConfigPath)
}

// Generator creates an entry file generator for the project.
func (o *Options) Generator(logger *slog.Logger, opts ...builder.Option) (*builder.Generator, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}

	return builder.New(cfg, append([]builder.Option{builder.WithLogger(logger)}, opts...)...)
}
