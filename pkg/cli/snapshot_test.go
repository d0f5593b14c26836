package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempStorage(t *testing.T) {
	t.Helper()
	os.Setenv("MODSCOPE_FILESYSTEM_ROOT", t.TempDir())
	t.Cleanup(func() { os.Unsetenv("MODSCOPE_FILESYSTEM_ROOT") })
}

func snapshotID(t *testing.T, out string) string {
	t.Helper()
	// Output format: "snapshot <id> saved (N modules)"
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 2)
	return fields[1]
}

func TestSnapshotCommand(t *testing.T) {
	useTempStorage(t)
	root := setupProject(t)

	var buf bytes.Buffer
	require.NoError(t, runSnapshot(&buf, []string{"-path", root}))
	assert.Contains(t, buf.String(), "saved (3 modules)")

	if err := runSnapshot(&bytes.Buffer{}, []string{}); err == nil {
		t.Error("expected error without --path")
	}
}

func TestDiffCommand(t *testing.T) {
	useTempStorage(t)
	root := setupProject(t)

	var buf bytes.Buffer
	require.NoError(t, runSnapshot(&buf, []string{"-path", root}))
	id := snapshotID(t, buf.String())

	t.Run("no changes against same tree", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runDiff(&out, []string{"-old", id, "-path", root}))
		assert.Equal(t, "no changes\n", out.String())
	})

	t.Run("detects added module", func(t *testing.T) {
		dir := filepath.Join(root, "reports")
		require.NoError(t, os.MkdirAll(dir, 0755))
		content := "dependencies {\n    compile project(':common')\n}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(content), 0644))

		var out bytes.Buffer
		require.NoError(t, runDiff(&out, []string{"-old", id, "-path", root}))
		assert.Contains(t, out.String(), "+ module reports")
		assert.Contains(t, out.String(), "+ reports -> common")
	})

	t.Run("diff two stored snapshots", func(t *testing.T) {
		var buf2 bytes.Buffer
		require.NoError(t, runSnapshot(&buf2, []string{"-path", root}))
		id2 := snapshotID(t, buf2.String())

		var out bytes.Buffer
		require.NoError(t, runDiff(&out, []string{"-old", id, "-new", id2}))
		assert.Contains(t, out.String(), "+ module reports")
	})

	t.Run("flag validation", func(t *testing.T) {
		err := runDiff(&bytes.Buffer{}, []string{"-path", root})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--old is required")

		err = runDiff(&bytes.Buffer{}, []string{"-old", id})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one of --new or --path")

		err = runDiff(&bytes.Buffer{}, []string{"-old", id, "-new", id, "-path", root})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one of --new or --path")
	})

	t.Run("unknown snapshot", func(t *testing.T) {
		err := runDiff(&bytes.Buffer{}, []string{"-old", "missing", "-path", root})
		assert.Error(t, err)
	})
}
