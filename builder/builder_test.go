package builder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/asenabuild/config"
	"github.com/viant/asenabuild/discovery"
	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/locator"
)

const factoryRoot = `import { AsenaServerFactory } from '@asenajs/asena';
import { createHonoAdapter } from '@asenajs/hono-adapter';
import { logger } from './logger';

const [adapter, asenaLogger] = createHonoAdapter(logger);

const server = await AsenaServerFactory.create({
  adapter,
  logger: asenaLogger,
  port: 3000
});

await server.start();
`

const legacyRoot = `import { AsenaServer } from '@asenajs/asena';
import { DefaultLogger } from '@asenajs/asena/logger';

await new AsenaServer(new HonoAdapter(), new DefaultLogger()).port(3000).start();
`

type fakeBundler struct {
	err     error
	entries []string
	exists  []bool
}

func (b *fakeBundler) Bundle(ctx context.Context, entry string, cfg *config.Config) (string, error) {
	b.entries = append(b.entries, entry)
	_, err := os.Stat(entry)
	b.exists = append(b.exists, err == nil)
	return "bundled", b.err
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func decoratedLoader() discovery.Loader {
	exports := map[string][]*discovery.Export{
		"UserController.ts": {{Name: "UserController", Class: true, Decorators: []string{"Controller"}}},
		"UserService.ts":    {{Name: "UserService", Class: true, Decorators: []string{"Service"}}},
	}
	return discovery.LoaderFunc(func(ctx context.Context, location string) ([]*discovery.Export, error) {
		return exports[filepath.Base(location)], nil
	})
}

func newGenerator(t *testing.T, dir, rootFile string, opts ...Option) *Generator {
	t.Helper()
	cfg := &config.Config{
		SourceFolder:   "src",
		RootFile:       rootFile,
		ProjectDir:     dir,
		InternalMarker: config.DefaultInternalMarker,
		BuildOptions:   config.BuildOptions{Outdir: "out"},
	}
	discoverer := discovery.New(decoratedLoader(), discovery.NewDecoratorMarker(), discovery.WithProjectDir(dir))
	options := append([]Option{WithDiscoverer(discoverer), WithImportStyle(graph.ESModule)}, opts...)
	generator, err := New(cfg, options...)
	require.NoError(t, err)
	return generator
}

func TestGenerator_Generate(t *testing.T) {
	testCases := []struct {
		description string
		files       map[string]string
		rootFile    string
		style       graph.ImportStyle
		shape       locator.Shape
		contains    []string
		notContains []string
	}{
		{
			description: "factory shape with es module imports",
			rootFile:    "src/index.ts",
			files: map[string]string{
				"src/index.ts":                      factoryRoot,
				"src/logger.ts":                     "export const logger = {};",
				"src/controllers/UserController.ts": "controller",
				"src/services/UserService.ts":       "service",
			},
			style: graph.ESModule,
			shape: locator.Factory,
			contains: []string{
				"import {UserController} from './controllers/UserController.ts';\n",
				"import {UserService} from './services/UserService.ts';\n",
				"import { logger } from './logger';",
				"port: 3000,\n  components: [UserController, UserService]\n});",
				"await server.start();",
			},
		},
		{
			description: "legacy shape with commonjs imports",
			rootFile:    "src/index.ts",
			files: map[string]string{
				"src/index.ts":                      legacyRoot,
				"src/controllers/UserController.ts": "controller",
			},
			style: graph.CommonJS,
			shape: locator.LegacyChain,
			contains: []string{
				"const {UserController} = require('./controllers/UserController.ts');\n",
				"await new AsenaServer(new HonoAdapter(), new DefaultLogger()).components([UserController]).port(3000).start();",
			},
		},
		{
			description: "root file outside source folder",
			rootFile:    "src/app/main.ts",
			files: map[string]string{
				"src/app/main.ts":                   factoryRoot,
				"src/controllers/UserController.ts": "controller",
			},
			style: graph.ESModule,
			shape: locator.Factory,
			contains: []string{
				"import {UserController} from '../controllers/UserController.ts';\n",
			},
		},
		{
			description: "existing components field is replaced",
			rootFile:    "src/index.ts",
			files: map[string]string{
				"src/index.ts": `import { AsenaServerFactory } from '@asenajs/asena';
import {UserController} from './controllers/UserController.ts';

const server = await AsenaServerFactory.create({ adapter, components: [Old], port: 3000 });
await server.start();
`,
				"src/controllers/UserController.ts": "controller",
			},
			style: graph.ESModule,
			shape: locator.Factory,
			contains: []string{
				"components: [UserController]",
			},
			notContains: []string{
				"Old",
				"import {UserController} from './controllers/UserController.ts';\nimport {UserController}",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, testCase.files)
			generator := newGenerator(t, dir, testCase.rootFile, WithImportStyle(testCase.style))
			result, err := generator.Generate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, testCase.shape, result.Shape)
			for _, fragment := range testCase.contains {
				assert.Contains(t, result.Code, fragment)
			}
			for _, fragment := range testCase.notContains {
				assert.NotContains(t, result.Code, fragment)
			}
		})
	}
}

func TestGenerator_Generate_Errors(t *testing.T) {
	t.Run("no bootstrap", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"src/index.ts":                      "console.log('hello');\n",
			"src/controllers/UserController.ts": "controller",
		})
		_, err := newGenerator(t, dir, "src/index.ts").Generate(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoServer))
		assert.True(t, errors.Is(err, locator.ErrNotFound))
	})
	t.Run("no components", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"src/index.ts":      factoryRoot,
			"src/utils/Util.ts": "util",
		})
		_, err := newGenerator(t, dir, "src/index.ts").Generate(context.Background())
		assert.ErrorIs(t, err, ErrNoComponents)
	})
	t.Run("conflicting import", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"src/index.ts":                      "import { Other } from './controllers/UserController.ts';\n" + factoryRoot,
			"src/controllers/UserController.ts": "controller",
		})
		_, err := newGenerator(t, dir, "src/index.ts").Generate(context.Background())
		assert.Error(t, err)
	})
}

func TestGenerator_WriteAndBuild(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/index.ts":                      factoryRoot,
		"src/controllers/UserController.ts": "controller",
	})
	bundler := &fakeBundler{}
	generator := newGenerator(t, dir, "src/index.ts", WithBundler(bundler))
	assert.Equal(t, filepath.Join(dir, "src", "index.asena.ts"), generator.EntryPath())

	result, err := generator.Generate(context.Background())
	require.NoError(t, err)
	written, err := generator.Write(context.Background(), result)
	require.NoError(t, err)
	assert.True(t, written)
	written, err = generator.Write(context.Background(), result)
	require.NoError(t, err)
	assert.False(t, written)
	content, err := os.ReadFile(generator.EntryPath())
	require.NoError(t, err)
	assert.Equal(t, result.Code, string(content))

	_, err = generator.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{generator.EntryPath()}, bundler.entries)
	assert.Equal(t, []bool{true}, bundler.exists)
	_, err = os.Stat(generator.EntryPath())
	assert.True(t, os.IsNotExist(err))

	bundler.err = errors.New("bundle failed")
	_, err = generator.Build(context.Background())
	assert.Error(t, err)
	_, err = os.Stat(generator.EntryPath())
	assert.True(t, os.IsNotExist(err))
}

func TestDiff(t *testing.T) {
	actual := Diff("a\nb\nc\n", "a\nx\nc\n")
	assert.Equal(t, " a\n-b\n+x\n c\n", actual)
}

func TestBuildArgs(t *testing.T) {
	testCases := []struct {
		description string
		options     config.BuildOptions
		expected    []string
	}{
		{
			description: "default outdir",
			expected:    []string{"build", "entry.ts", "--outdir", "out", "--target", "bun"},
		},
		{
			description: "bundle options",
			options:     config.BuildOptions{Outdir: "dist", Minify: true, Sourcemap: "external", External: []string{"pg"}, Format: "esm", Drop: []string{"console"}},
			expected:    []string{"build", "entry.ts", "--outdir", "dist", "--target", "bun", "--minify", "--sourcemap=external", "--format", "esm", "--external", "pg", "--drop=console"},
		},
		{
			description: "executable",
			options:     config.BuildOptions{Outdir: "dist", Executable: true},
			expected:    []string{"build", "entry.ts", "--outfile", filepath.Join("dist", "executable"), "--compile"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg := &config.Config{BuildOptions: testCase.options}
			assert.Equal(t, testCase.expected, BuildArgs("entry.ts", cfg))
		})
	}
}
