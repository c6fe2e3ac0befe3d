package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// DefaultRuntime is the script runtime used to evaluate source files
const DefaultRuntime = "bun"

// DefaultFrameworkModule is the module exposing the IoC marker symbol
const DefaultFrameworkModule = "@asenajs/asena"

const loaderScript = `import { createRequire } from 'node:module';
import { pathToFileURL } from 'node:url';

const [target, projectDir, frameworkModule, metadataKey] = process.argv.slice(2);
const require = createRequire(projectDir + '/package.json');
const load = async (name) => {
  try {
    return await import(pathToFileURL(require.resolve(name)).href);
  } catch {
    return undefined;
  }
};
await load('reflect-metadata');
const framework = await load(frameworkModule);
const key = framework?.ComponentConstants?.IOCObjectKey;
const mod = await import(pathToFileURL(target).href);
const exports = [];
for (const [binding, value] of Object.entries(mod)) {
  const entry = { name: value?.name || binding, export: binding, class: typeof value === 'function', default: binding === 'default', metadata: {} };
  try {
    if (typeof Reflect.getMetadata === 'function' && key !== undefined) {
      entry.metadata[metadataKey] = !!Reflect.getMetadata(key, value);
    } else {
      entry.metadata[metadataKey] = false;
    }
  } catch (e) {
    entry.error = String(e);
  }
  exports.push(entry);
}
process.stdout.write(JSON.stringify({ exports }));
`

// ProcessLoader evaluates each source file in a script runtime subprocess and reads the IoC
// marker metadata of its exports
type ProcessLoader struct {
	Runtime         string   // Runtime executable
	Args            []string // Runtime arguments preceding the script
	ProjectDir      string   // Directory framework modules are resolved from
	FrameworkModule string   // Module exposing the marker symbol
	MetadataKey     string   // Key exports metadata is reported under
	EnvFile         string   // Optional dotenv file loaded into the subprocess environment

	once   sync.Once
	script string
	env    []string
	err    error
}

// NewProcessLoader creates a runtime loader resolving framework modules from projectDir
func NewProcessLoader(projectDir string) *ProcessLoader {
	return &ProcessLoader{
		Runtime:         DefaultRuntime,
		ProjectDir:      projectDir,
		FrameworkModule: DefaultFrameworkModule,
		MetadataKey:     DefaultMetadataKey,
	}
}

func (l *ProcessLoader) init() error {
	l.once.Do(func() {
		dir, err := os.MkdirTemp("", "asena-loader")
		if err != nil {
			l.err = err
			return
		}
		l.script = filepath.Join(dir, "loader.mjs")
		if l.err = os.WriteFile(l.script, []byte(loaderScript), 0o644); l.err != nil {
			return
		}
		l.env = os.Environ()
		if l.EnvFile == "" {
			return
		}
		values, err := godotenv.Read(l.EnvFile)
		if err != nil {
			l.err = fmt.Errorf("failed to read env file %s: %w", l.EnvFile, err)
			return
		}
		for k, v := range values {
			l.env = append(l.env, k+"="+v)
		}
	})
	return l.err
}

// Close removes the generated loader script
func (l *ProcessLoader) Close() error {
	if l.script == "" {
		return nil
	}
	return os.RemoveAll(filepath.Dir(l.script))
}

// Load evaluates location and returns its exports
func (l *ProcessLoader) Load(ctx context.Context, location string) ([]*Export, error) {
	if err := l.init(); err != nil {
		return nil, err
	}
	projectDir := l.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	if abs, err := filepath.Abs(projectDir); err == nil {
		projectDir = abs
	}
	target, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	args := append(append([]string{}, l.Args...), l.script, target, projectDir, l.FrameworkModule, l.MetadataKey)
	cmd := exec.CommandContext(ctx, l.Runtime, args...)
	cmd.Dir = projectDir
	cmd.Env = l.env
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err = cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %s", location, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return decodeExports(stdout.Bytes())
}

func decodeExports(data []byte) ([]*Export, error) {
	output := struct {
		Exports []*Export `json:"exports"`
	}{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &output); err != nil {
		return nil, fmt.Errorf("failed to decode loader output: %w", err)
	}
	return output.Exports, nil
}
