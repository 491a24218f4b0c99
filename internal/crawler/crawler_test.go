package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge/internal/pysrc"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func scanNames(t *testing.T, c *Crawler, root string) map[string][]string {
	t.Helper()
	found := make(map[string][]string)
	err := c.Scan(root, func(relPath string, defs []pysrc.Definition) {
		for _, def := range defs {
			found[relPath] = append(found[relPath], def.Name)
		}
	})
	require.NoError(t, err)
	return found
}

func TestScan_CollectsPythonFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "def main():\n    pass\n")
	writeFile(t, root, "pkg/util.py", "def helper():\n    pass\n")
	writeFile(t, root, "README.md", "# not python\n")

	found := scanNames(t, New(nil), root)

	assert.Equal(t, []string{"main"}, found["app.py"])
	assert.Equal(t, []string{"helper"}, found[filepath.Join("pkg", "util.py")])
	assert.Len(t, found, 2)
}

func TestScan_IgnoredFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".venv/lib/site.py", "def venv_func():\n    pass\n")
	writeFile(t, root, ".mypy_cache/stub.py", "def cache_func():\n    pass\n")
	writeFile(t, root, "build/gen.py", "def generated():\n    pass\n")
	writeFile(t, root, "src/app.py", "def app():\n    pass\n")

	found := scanNames(t, New([]string{"build"}), root)

	require.Len(t, found, 1)
	assert.Equal(t, []string{"app"}, found[filepath.Join("src", "app.py")])
}

func TestScan_ParseFailureDoesNotAbortWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.py", "def broken(:\n    ???\n")
	writeFile(t, root, "good.py", "def good():\n    pass\n")

	found := scanNames(t, New(nil), root)

	assert.NotContains(t, found, "broken.py")
	assert.Equal(t, []string{"good"}, found["good.py"])
}

func TestScan_GitignoreRespected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated_*.py\n")
	writeFile(t, root, "generated_models.py", "def model():\n    pass\n")
	writeFile(t, root, "app.py", "def app():\n    pass\n")

	found := scanNames(t, New(nil), root)

	assert.NotContains(t, found, "generated_models.py")
	assert.Contains(t, found, "app.py")
}

func TestScan_MissingRootFails(t *testing.T) {
	err := New(nil).Scan(filepath.Join(t.TempDir(), "nope"), func(string, []pysrc.Definition) {})
	assert.Error(t, err)
}
