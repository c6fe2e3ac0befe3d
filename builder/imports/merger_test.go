package imports_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/asenabuild/builder/imports"
	"github.com/viant/asenabuild/inspector/graph"
)

func importMap(entries ...[]string) *graph.ImportMap {
	result := graph.NewImportMap()
	for _, entry := range entries {
		result.Add(entry[0], entry[1:]...)
	}
	return result
}

func TestMerger_Merge(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		style          graph.ImportStyle
		incoming       *graph.ImportMap
		want           string
		wantComponents []string
		wantErr        error
	}{
		{
			name:     "es module",
			code:     "import { AsenaServerFactory } from '@asenajs/asena';\n",
			style:    graph.ESModule,
			incoming: importMap([]string{"controllers/A.ts", "A", "B"}, []string{"@scope/pkg", "C"}),
			want: "import {A,B} from './controllers/A.ts';\n" +
				"import {C} from '@scope/pkg';\n" +
				"import { AsenaServerFactory } from '@asenajs/asena';\n",
			wantComponents: []string{"A", "B", "C"},
		},
		{
			name:     "commonjs",
			code:     "const { AsenaServer } = require('@asenajs/asena');\n",
			style:    graph.CommonJS,
			incoming: importMap([]string{"services/S.js", "S"}),
			want: "const {S} = require('./services/S.js');\n" +
				"const { AsenaServer } = require('@asenajs/asena');\n",
			wantComponents: []string{"S"},
		},
		{
			name:           "same import already declared",
			code:           "import {A} from './controllers/A.ts';\n",
			style:          graph.ESModule,
			incoming:       importMap([]string{"controllers/A.ts", "A"}),
			want:           "import {A} from './controllers/A.ts';\n",
			wantComponents: []string{"A"},
		},
		{
			name:           "internal files are not imported",
			code:           "",
			style:          graph.ESModule,
			incoming:       importMap([]string{"index.asena.ts", "Generated"}, []string{"B.ts", "B"}),
			want:           "import {B} from './B.ts';\n",
			wantComponents: []string{"Generated", "B"},
		},
		{
			name:           "empty entries are skipped",
			code:           "",
			style:          graph.ESModule,
			incoming:       importMap([]string{"empty.ts"}, []string{"B.ts", "B"}),
			want:           "import {B} from './B.ts';\n",
			wantComponents: []string{"B"},
		},
		{
			name:     "conflict",
			code:     "import { X } from './controllers/A.ts';\n",
			style:    graph.ESModule,
			incoming: importMap([]string{"controllers/A.ts", "A"}),
			wantErr:  imports.ErrConflict,
		},
		{
			name:     "conflict with import sharing a line",
			code:     "import y from 'y'; import { B } from './controllers/A.ts';\n",
			style:    graph.ESModule,
			incoming: importMap([]string{"controllers/A.ts", "A"}),
			wantErr:  imports.ErrConflict,
		},
		{
			name:     "conflict with commented specifier list",
			code:     "import {\n  B, // main\n} from './controllers/A.ts';\n",
			style:    graph.ESModule,
			incoming: importMap([]string{"controllers/A.ts", "A"}),
			wantErr:  imports.ErrConflict,
		},
		{
			name:           "commented specifier list with same names",
			code:           "import {\n  A, // main\n} from './x';\n",
			style:          graph.ESModule,
			incoming:       importMap([]string{"x", "A"}),
			want:           "import {\n  A, // main\n} from './x';\n",
			wantComponents: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merger := imports.New(tt.code, tt.style)
			actual, err := merger.Merge(tt.incoming)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				var conflict *imports.ConflictError
				require.True(t, errors.As(err, &conflict))
				assert.Equal(t, "./controllers/A.ts", conflict.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, actual)
			assert.Equal(t, tt.wantComponents, merger.Components())
			assert.Equal(t, actual, merger.Code())
		})
	}
}

func TestSpecifier(t *testing.T) {
	assert.Equal(t, "./a/b.ts", imports.Specifier("a/b.ts"))
	assert.Equal(t, "@asenajs/asena", imports.Specifier("@asenajs/asena"))
	assert.Equal(t, "../a.ts", imports.Specifier("../a.ts"))
}

func TestWithInternalMarker(t *testing.T) {
	merger := imports.New("", graph.ESModule, imports.WithInternalMarker(".gen."))
	assert.True(t, merger.IsInternal("index.gen.ts"))
	assert.False(t, merger.IsInternal("index.asena.ts"))
}
