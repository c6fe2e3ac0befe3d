package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/asenabuild/config"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.SourceFolder)
	assert.Equal(t, "src/index.ts", cfg.RootFile)
	assert.Equal(t, "out", cfg.BuildOptions.Outdir)
	assert.Equal(t, config.LoaderProcess, cfg.Discovery.Loader)
	assert.Equal(t, "bun", cfg.Discovery.Runtime)
	assert.Equal(t, "component:iocObject", cfg.Discovery.MetadataKey)
	assert.Equal(t, 8, cfg.Discovery.Concurrency)
	assert.Equal(t, ".asena.", cfg.InternalMarker)
	assert.Equal(t, []string{"node_modules", ".git"}, cfg.Discovery.Exclude)
	assert.Contains(t, cfg.Discovery.Decorators, "Controller")
	assert.Equal(t, []string{"node_modules", ".git", "out"}, cfg.ExcludedDirs())
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "sourceFolder": "app",
  "rootFile": "app/main.ts",
  "buildOptions": {"outdir": "./dist", "minify": true, "external": ["better-sqlite3"]},
  "discovery": {"loader": "static", "concurrency": 2}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".asenarc.json"), []byte(content), 0o644))

	cfg, err := config.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.SourceFolder)
	assert.Equal(t, "app/main.ts", cfg.RootFile)
	assert.Equal(t, "./dist", cfg.BuildOptions.Outdir)
	assert.True(t, cfg.BuildOptions.Minify)
	assert.Equal(t, []string{"better-sqlite3"}, cfg.BuildOptions.External)
	assert.Equal(t, config.LoaderStatic, cfg.Discovery.Loader)
	assert.Equal(t, 2, cfg.Discovery.Concurrency)
	assert.Equal(t, []string{"node_modules", ".git", "dist"}, cfg.ExcludedDirs())
	assert.Equal(t, filepath.Join(cfg.ProjectDir, "app/main.ts"), cfg.Path(cfg.RootFile))
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "asena.yaml")
	require.NoError(t, os.WriteFile(location, []byte("sourceFolder: lib\nrootFile: lib/index.js\n"), 0o644))

	cfg, err := config.Load(dir, location)
	require.NoError(t, err)
	assert.Equal(t, "lib", cfg.SourceFolder)
	assert.Equal(t, "lib/index.js", cfg.RootFile)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".asenarc.json"), []byte(`{"discovery": {"loader": "eval"}}`), 0o644))

	_, err := config.Load(dir, "")
	require.ErrorIs(t, err, config.ErrInvalidLoader)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		description string
		cfg         config.Config
		expected    error
	}{
		{
			description: "valid",
			cfg:         config.Config{SourceFolder: "src", RootFile: "src/index.ts", Discovery: config.DiscoveryConfig{Runtime: "bun"}},
		},
		{
			description: "missing source folder",
			cfg:         config.Config{RootFile: "src/index.ts"},
			expected:    config.ErrMissingSourceFolder,
		},
		{
			description: "missing root file",
			cfg:         config.Config{SourceFolder: "src"},
			expected:    config.ErrMissingRootFile,
		},
		{
			description: "process loader without runtime",
			cfg:         config.Config{SourceFolder: "src", RootFile: "src/index.ts", Discovery: config.DiscoveryConfig{}},
			expected:    config.ErrMissingRuntime,
		},
		{
			description: "negative concurrency",
			cfg:         config.Config{SourceFolder: "src", RootFile: "src/index.ts", Discovery: config.DiscoveryConfig{Loader: config.LoaderStatic, Concurrency: -1}},
			expected:    config.ErrInvalidConcurrency,
		},
		{
			description: "negative cache size",
			cfg:         config.Config{SourceFolder: "src", RootFile: "src/index.ts", Discovery: config.DiscoveryConfig{Loader: config.LoaderStatic, CacheSize: -1}},
			expected:    config.ErrInvalidCacheSize,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.cfg.Validate()
			if testCase.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.expected)
		})
	}
}
