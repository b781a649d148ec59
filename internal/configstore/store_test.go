package configstore

import (
	"errors"
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *filesystem.MockFileSystem) {
	t.Helper()
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace")
	return New(fs), fs
}

func TestCodecFor(t *testing.T) {
	tests := []struct {
		path string
		want string
		err  bool
	}{
		{"ouroboros.yml", "yaml", false},
		{"env.YAML", "yaml", false},
		{"pyproject.toml", "toml", false},
		{"config.json", "", true},
		{"Makefile", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			codec, err := CodecFor(tt.path)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, codec.Name())
		})
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	doc, err := store.Load("/workspace/ouroboros.yml")
	require.NoError(t, err)
	require.Equal(t, 0, doc.Len())
}

func TestLoad_MalformedReturnsParseError(t *testing.T) {
	store, fs := newTestStore(t)
	fs.AddFile("/workspace/ouroboros.yml", []byte("name: [oops\n"))

	doc, err := store.Load("/workspace/ouroboros.yml")
	require.Error(t, err)
	require.NotNil(t, doc)
	require.Equal(t, 0, doc.Len())

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "/workspace/ouroboros.yml", perr.Path)
	require.Equal(t, "yaml", perr.Format)
}

func TestLoad_MalformedTOML(t *testing.T) {
	store, fs := newTestStore(t)
	fs.AddFile("/workspace/pyproject.toml", []byte("[project\n"))

	_, err := store.Load("/workspace/pyproject.toml")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "toml", perr.Format)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	doc := document.New()
	doc.Set("name", "")
	doc.Set("dependencies", []any{"python=3.10", "numpy"})
	doc.EnsureMap("nuitka").Set("output_name", "工具")

	require.NoError(t, store.Save(doc, "/workspace/ouroboros.yml"))

	back, err := store.Load("/workspace/ouroboros.yml")
	require.NoError(t, err)
	require.True(t, document.Equal(doc, back))
}

func TestSave_FailureKeepsPreviousFile(t *testing.T) {
	store, fs := newTestStore(t)
	fs.AddFile("/workspace/ouroboros.yml", []byte("name: keep\n"))
	fs.FailOn("rename", errors.New("permission denied"))

	doc := document.New()
	doc.Set("name", "replace")

	err := store.Save(doc, "/workspace/ouroboros.yml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "permission denied")

	data, err := fs.ReadFile("/workspace/ouroboros.yml")
	require.NoError(t, err)
	require.Equal(t, "name: keep\n", string(data))
}

func TestUpdate_PreservesUntouchedKeys(t *testing.T) {
	store, fs := newTestStore(t)
	fs.AddFile("/workspace/ouroboros.yml", []byte(`name: .venv
dependencies:
  - python=3.10
nuitka:
  entry: main.py
  plugins:
    - pyside6
`))

	err := store.Update("/workspace/ouroboros.yml", func(doc *document.Map) error {
		doc.Set("name", "env")
		doc.Set("dependencies", []any{"python=3.12"})
		return nil
	})
	require.NoError(t, err)

	back, err := store.Load("/workspace/ouroboros.yml")
	require.NoError(t, err)
	require.Equal(t, []string{"name", "dependencies", "nuitka"}, back.Keys())

	nuitka, ok := back.Map("nuitka")
	require.True(t, ok)
	entry, _ := nuitka.String("entry")
	require.Equal(t, "main.py", entry)
	plugins, _ := nuitka.Strings("plugins")
	require.Equal(t, []string{"pyside6"}, plugins)
}

func TestUpdate_RefusesToOverwriteMalformed(t *testing.T) {
	store, fs := newTestStore(t)
	fs.AddFile("/workspace/ouroboros.yml", []byte("name: [oops\n"))

	called := false
	err := store.Update("/workspace/ouroboros.yml", func(doc *document.Map) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)

	data, _ := fs.ReadFile("/workspace/ouroboros.yml")
	require.Equal(t, "name: [oops\n", string(data))
}
