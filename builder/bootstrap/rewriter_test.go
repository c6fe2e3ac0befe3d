package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/asenabuild/builder/bootstrap"
	"github.com/viant/asenabuild/inspector/locator"
)

func TestRewriter_Inject(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		names     []string
		want      string
		wantShape locator.Shape
	}{
		{
			name:      "factory",
			block:     "const server = await AsenaServerFactory.create({ port: 3000 });\nawait server.start();",
			names:     []string{"A", "B"},
			want:      "const server = await AsenaServerFactory.create({ port: 3000,\n  components: [A, B]\n});\nawait server.start();",
			wantShape: locator.Factory,
		},
		{
			name:      "factory create without start",
			block:     "const server = await AsenaServerFactory.create({});",
			names:     []string{"A"},
			want:      "const server = await AsenaServerFactory.create({\n  components: [A]\n});",
			wantShape: locator.Factory,
		},
		{
			name:      "legacy",
			block:     "await new AsenaServer(adapter).port(3000).start();",
			names:     []string{"A", "B"},
			want:      "await new AsenaServer(adapter).components([A,B]).port(3000).start();",
			wantShape: locator.LegacyChain,
		},
	}

	rewriter := bootstrap.New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := rewriter.Shape(tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)
			actual, err := rewriter.Inject(tt.block, tt.names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, actual)
		})
	}

	_, err := rewriter.Inject("console.log(1)", []string{"A"})
	assert.ErrorIs(t, err, locator.ErrNotFound)
}

func TestRewriter_Extract(t *testing.T) {
	source := "import x from 'y';\n\nconst server = await AsenaServerFactory.create({ port: 1 });\nawait server.start();\n"
	code, block, err := bootstrap.New(nil).Extract(source)
	require.NoError(t, err)
	assert.Equal(t, "import x from 'y';\n\n\n", code)
	assert.Equal(t, locator.Factory, block.Shape)
	assert.Equal(t, "{ port: 1 }", block.Options.Raw)

	_, _, err = bootstrap.New(nil).Extract("import x from 'y';")
	assert.ErrorIs(t, err, locator.ErrNotFound)
}

func TestEmpty(t *testing.T) {
	factory := bootstrap.Empty(bootstrap.Template{Adapter: "adapter", Logger: "logger"})
	block, ok := locator.FindBootstrap(factory)
	require.True(t, ok)
	assert.Equal(t, locator.Factory, block.Shape)
	assert.Contains(t, factory, "port: 3000")

	legacy := bootstrap.Empty(bootstrap.Template{Adapter: "adapter", Logger: "logger", Port: 8080, Shape: locator.LegacyChain})
	block, ok = locator.FindBootstrap(legacy)
	require.True(t, ok)
	assert.Equal(t, locator.LegacyChain, block.Shape)
	assert.Contains(t, legacy, ".port(8080)")
}
