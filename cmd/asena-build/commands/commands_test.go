package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/asenabuild/cmd/asena-build/commands"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		location := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}

	return dir
}

func projectFiles() map[string]string {
	return map[string]string{
		"package.json":  `{"name": "api", "dependencies": {"@asenajs/asena": "^0.8.0"}}`,
		"tsconfig.json": `{"compilerOptions": {"module": "ESNext"}}`,
		".asenarc.json": `{"discovery": {"loader": "static"}}`,
		"src/index.ts": `import { AsenaServerFactory } from '@asenajs/asena';

const server = await AsenaServerFactory.create({ port: 3000 });
await server.start();
`,
		"src/controllers/UserController.ts": `import { Controller } from '@asenajs/asena/server';

@Controller('/users')
export class UserController {}
`,
		"src/utils/Format.ts": "export class Format {}\n",
	}
}

func TestDiscoverCommand(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, projectFiles())

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{name: "table", args: nil, contains: []string{"controllers/UserController.ts", "UserController"}},
		{name: "yaml", args: []string{"--format", "yaml"}, contains: []string{"controllers/UserController.ts:", "name: UserController", "utils/Format.ts: []"}},
		{name: "unknown format", args: []string{"--format", "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := commands.NewDiscoverCommand(&commands.Options{ProjectDir: dir})
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.ErrorIs(t, err, commands.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)

			for _, fragment := range tt.contains {
				assert.Contains(t, out.String(), fragment)
			}
		})
	}
}

func TestPreviewCommand(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, projectFiles())

	cmd := commands.NewPreviewCommand(&commands.Options{ProjectDir: dir})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--write"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "+import {UserController} from './controllers/UserController.ts';")
	assert.Contains(t, out.String(), "Entry file written")

	content, err := os.ReadFile(filepath.Join(dir, "src", "index.asena.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "components: [UserController]")
}

func TestBootstrapCommand(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, projectFiles())

	cmd := commands.NewBootstrapCommand(&commands.Options{ProjectDir: dir})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--port", "8080"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "await new AsenaServer(adapter, logger).port(8080).start();")
}
