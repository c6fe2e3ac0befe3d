package builder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/viant/asenabuild/config"
)

// Bundler bundles the generated entry file
type Bundler interface {
	Bundle(ctx context.Context, entry string, cfg *config.Config) (string, error)
}

// BunBundler runs the bun bundler
type BunBundler struct {
	Runtime string
}

// NewBunBundler creates bundler running runtime, bun by default
func NewBunBundler(runtime string) *BunBundler {
	if runtime == "" {
		runtime = config.DefaultRuntime
	}
	return &BunBundler{Runtime: runtime}
}

// Bundle builds entry into configured outdir, or a standalone executable
func (b *BunBundler) Bundle(ctx context.Context, entry string, cfg *config.Config) (string, error) {
	cmd := exec.CommandContext(ctx, b.Runtime, BuildArgs(entry, cfg)...)
	cmd.Dir = cfg.ProjectDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// BuildArgs returns bun build arguments for entry
func BuildArgs(entry string, cfg *config.Config) []string {
	options := cfg.BuildOptions
	outdir := options.Outdir
	if outdir == "" {
		outdir = config.DefaultOutdir
	}
	if options.Executable {
		return []string{"build", entry, "--outfile", filepath.Join(outdir, "executable"), "--compile"}
	}
	args := []string{"build", entry, "--outdir", outdir, "--target", "bun"}
	if options.Minify {
		args = append(args, "--minify")
	}
	if options.Sourcemap != "" {
		args = append(args, "--sourcemap="+options.Sourcemap)
	}
	if options.Format != "" {
		args = append(args, "--format", options.Format)
	}
	for _, external := range options.External {
		args = append(args, "--external", external)
	}
	for _, drop := range options.Drop {
		args = append(args, "--drop="+drop)
	}
	return args
}
