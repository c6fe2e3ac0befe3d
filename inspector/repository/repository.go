package repository

import (
	"strings"

	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/locator"
	"golang.org/x/mod/semver"
)

// FrameworkPackage is the npm package providing the IoC decorators and server factory
const FrameworkPackage = "@asenajs/asena"

// factoryVersion is the first framework version with the factory bootstrap syntax
const factoryVersion = "v1.0.0"

// Project represents information about a detected script project
type Project struct {
	RootPath         string            // Absolute path to the project root directory
	Name             string            // Name of the project (package.json name or directory name)
	RelativePath     string            // Path from project root to the specified file
	FrameworkVersion string            // Declared framework version range, e.g. ^1.2.0
	ImportStyle      graph.ImportStyle // Module system derived from tsconfig.json
	HasTSConfig      bool
}

// Shape returns bootstrap syntax matching the declared framework version.
// Unknown versions default to the factory syntax.
func (p *Project) Shape() locator.Shape {
	version := CanonicalVersion(p.FrameworkVersion)
	if version == "" {
		return locator.Factory
	}
	if semver.Compare(version, factoryVersion) < 0 {
		return locator.LegacyChain
	}
	return locator.Factory
}

// CanonicalVersion converts npm version range like ^1.2.3 into semver v1.2.3, or "" when invalid
func CanonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimLeft(version, "^~>=< ")
	if idx := strings.IndexAny(version, " |"); idx != -1 {
		version = version[:idx]
	}
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	return semver.Canonical(version)
}
