package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementPatch(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.2.3", want: "1.2.4"},
		{in: "0.0.9", want: "0.0.10"},
		{in: "1.2", wantErr: true},
		{in: "1.2.x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := IncrementPatch(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[project]
name = "demo"
version = "0.4.1"
`), 0o644))

	old, next, err := Bump(path, `version = "(.*?)"`)
	require.NoError(t, err)
	assert.Equal(t, "0.4.1", old)
	assert.Equal(t, "0.4.2", next)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `version = "0.4.2"`)
	assert.NotContains(t, string(content), "0.4.1")
}

func TestBump_VersionNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"demo\"\n"), 0o644))

	_, _, err := Bump(path, `version = "(.*?)"`)
	assert.Error(t, err)
}

func TestBump_MissingFile(t *testing.T) {
	_, _, err := Bump(filepath.Join(t.TempDir(), "absent.toml"), `version = "(.*?)"`)
	assert.Error(t, err)
}
