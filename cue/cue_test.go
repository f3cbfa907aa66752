package cue

import (
	"context"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
#Config: {
	strategy: "memory" | "native" | *"hybrid"
	search_path?: [...string]
	verbose: bool | *false
}
`

type testConfig struct {
	Strategy   string   `json:"strategy"`
	SearchPath []string `json:"search_path,omitempty"`
	Verbose    bool     `json:"verbose"`
}

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	mfs := billy.NewMemory()
	for name, content := range files {
		if i := strings.LastIndex(name, "/"); i > 0 {
			require.NoError(t, mfs.MkdirAll(name[:i], 0o755))
		}
		require.NoError(t, mfs.WriteFile(name, []byte(content), 0o644))
	}
	return NewLoader(mfs)
}

func TestLoader_LoadFile(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader(t, map[string]string{
		"/etc/loadpath.cue": `strategy: "memory"
verbose: true`,
		"/etc/broken.cue": `strategy: "memory`,
	})

	t.Run("valid", func(t *testing.T) {
		val, err := loader.LoadFile(ctx, "/etc/loadpath.cue")
		require.NoError(t, err)

		got, err := val.LookupPath(cue.ParsePath("strategy")).String()
		require.NoError(t, err)
		assert.Equal(t, "memory", got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := loader.LoadFile(ctx, "/etc/missing.cue")
		require.Error(t, err)
		assert.Equal(t, errors.CodeCUELoadFailed, errors.GetCode(err))
		var platformErr errors.PlatformError
		require.True(t, errors.As(err, &platformErr))
		assert.Equal(t, "/etc/missing.cue", platformErr.Context()["path"])
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := loader.LoadFile(ctx, "/etc/broken.cue")
		require.Error(t, err)
		assert.Equal(t, errors.CodeCUEBuildFailed, errors.GetCode(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.LoadFile(cancelled, "/etc/loadpath.cue")
		assert.Equal(t, errors.CodeCUELoadFailed, errors.GetCode(err))
	})
}

func TestLoader_LoadBytes(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader(t, nil)

	val, err := loader.LoadBytes(ctx, []byte(`x: 1 + 1`), "")
	require.NoError(t, err)
	n, err := val.LookupPath(cue.ParsePath("x")).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = loader.LoadBytes(ctx, []byte(`x: 1 & 2`), "conflict.cue")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCUEBuildFailed, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader(t, nil)
	schemaFile, err := loader.LoadBytes(ctx, []byte(testSchema), "schema.cue")
	require.NoError(t, err)
	schema := schemaFile.LookupPath(cue.ParsePath("#Config"))

	t.Run("valid with defaults", func(t *testing.T) {
		data, err := loader.LoadBytes(ctx, []byte(`search_path: ["/usr/lib/ruby"]`), "data.cue")
		require.NoError(t, err)
		require.NoError(t, Validate(ctx, schema, data))

		var cfg testConfig
		require.NoError(t, Decode(ctx, schema.Unify(data), &cfg))
		assert.Equal(t, testConfig{Strategy: "hybrid", SearchPath: []string{"/usr/lib/ruby"}}, cfg)
	})

	t.Run("invalid strategy", func(t *testing.T) {
		data, err := loader.LoadBytes(ctx, []byte(`strategy: "cloud"`), "data.cue")
		require.NoError(t, err)

		err = Validate(ctx, schema, data)
		require.Error(t, err)
		assert.Equal(t, errors.CodeCUEValidationFailed, errors.GetCode(err))

		issues := Issues(err)
		require.NotEmpty(t, issues)
		assert.Contains(t, issues[0].Path, "strategy")
	})

	t.Run("closed definition rejects unknown fields", func(t *testing.T) {
		data, err := loader.LoadBytes(ctx, []byte(`unknown: 1`), "data.cue")
		require.NoError(t, err)
		assert.Error(t, Validate(ctx, schema, data))
	})

	t.Run("issues of a foreign error", func(t *testing.T) {
		assert.Nil(t, Issues(errors.New(errors.CodeInternal, "x")))
		assert.Nil(t, Issues(nil))
	})
}

func TestDecode_InvalidTargets(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader(t, nil)
	val, err := loader.LoadBytes(ctx, []byte(`strategy: "memory"`), "")
	require.NoError(t, err)

	var cfg testConfig
	var nilCfg *testConfig
	var notStruct int

	tests := []struct {
		name   string
		target interface{}
	}{
		{"nil", nil},
		{"not a pointer", cfg},
		{"nil pointer", nilCfg},
		{"pointer to non-struct", &notStruct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(ctx, val, tt.target)
			require.Error(t, err)
			assert.Equal(t, errors.CodeCUEDecodeFailed, errors.GetCode(err))
		})
	}

	mismatch, err := loader.LoadBytes(ctx, []byte(`strategy: 42`), "")
	require.NoError(t, err)
	err = Decode(ctx, mismatch, &cfg)
	require.Error(t, err)
	assert.Equal(t, errors.CodeCUEDecodeFailed, errors.GetCode(err))
}

func TestEncode(t *testing.T) {
	ctx := context.Background()
	loader := newTestLoader(t, nil)

	val, err := loader.LoadBytes(ctx, []byte(`strategy: "memory", search_path: ["/a", "/b"]`), "")
	require.NoError(t, err)

	yamlOut, err := EncodeYAML(ctx, val)
	require.NoError(t, err)
	assert.Contains(t, string(yamlOut), "strategy: memory")
	assert.Contains(t, string(yamlOut), "- /a")

	jsonOut, err := EncodeJSON(ctx, val)
	require.NoError(t, err)
	assert.JSONEq(t, `{"strategy":"memory","search_path":["/a","/b"]}`, string(jsonOut))

	incomplete, err := loader.LoadBytes(ctx, []byte(`x: string`), "")
	require.NoError(t, err)
	_, err = EncodeYAML(ctx, incomplete.LookupPath(cue.ParsePath("x")))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCUEEncodeFailed, errors.GetCode(err))
}
