package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/viant/afs"
	"github.com/viant/asenabuild/inspector/graph"
)

// Detector identifies script project root folders and provides project related information
type Detector struct {
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"package.json",  // Node/Bun projects
			".asenarc.json", // Build configuration
			"bunfig.toml",   // Bun projects
			".git",          // Generic VCS marker
		},
		fs: afs.New(),
	}
}

type packageManifest struct {
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type tsConfig struct {
	CompilerOptions struct {
		Module string `json:"module"`
	} `json:"compilerOptions"`
}

// esModules lists tsconfig module values emitting import statements
var esModules = map[string]bool{
	"es6": true, "es2015": true, "es2020": true, "es2022": true, "esnext": true,
	"node16": true, "node18": true, "nodenext": true, "preserve": true,
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	info := &Project{
		RootPath:    startDir,
		ImportStyle: graph.CommonJS,
	}
	if rootPath := d.findProjectRoot(startDir); rootPath != "" {
		info.RootPath = rootPath
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = filepath.Base(info.RootPath)

	if manifest, err := d.readManifest(ctx, info.RootPath); err == nil {
		if manifest.Name != "" {
			info.Name = manifest.Name
		}
		info.FrameworkVersion = manifest.Dependencies[FrameworkPackage]
		if info.FrameworkVersion == "" {
			info.FrameworkVersion = manifest.DevDependencies[FrameworkPackage]
		}
	}
	style, found, err := d.ImportStyle(ctx, info.RootPath)
	if err != nil {
		return nil, err
	}
	info.ImportStyle = style
	info.HasTSConfig = found
	return info, nil
}

// ImportStyle derives module system from tsconfig.json compilerOptions.module.
// A missing tsconfig.json yields CommonJS.
func (d *Detector) ImportStyle(ctx context.Context, rootPath string) (graph.ImportStyle, bool, error) {
	location := filepath.Join(rootPath, "tsconfig.json")
	if ok, _ := d.fs.Exists(ctx, location); !ok {
		return graph.CommonJS, false, nil
	}
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return graph.CommonJS, false, fmt.Errorf("failed to read %s: %w", location, err)
	}
	if data, err = hujson.Standardize(data); err != nil {
		return graph.CommonJS, true, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	config := &tsConfig{}
	if err = json.Unmarshal(data, config); err != nil {
		return graph.CommonJS, true, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	if esModules[strings.ToLower(config.CompilerOptions.Module)] {
		return graph.ESModule, true, nil
	}
	return graph.CommonJS, true, nil
}

func (d *Detector) readManifest(ctx context.Context, rootPath string) (*packageManifest, error) {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "package.json"))
	if err != nil {
		return nil, err
	}
	manifest := &packageManifest{}
	if err = json.Unmarshal(data, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) string {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
