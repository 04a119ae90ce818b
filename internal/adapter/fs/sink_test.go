package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/diffsplit/internal/adapter/fs"
)

func TestNewDirSinkCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "out")

	sink, err := fs.NewDirSink(root)
	require.NoError(t, err)
	assert.Equal(t, root, sink.Root())

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteRecordCreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	sink, err := fs.NewDirSink(root)
	require.NoError(t, err)

	lines := []string{
		"diff --git a/pkg/util/helper.go b/pkg/util/helper.go\n",
		"--- a/pkg/util/helper.go\n",
		"+++ b/pkg/util/helper.go\n",
		"@@ -1 +1 @@\n",
		"-old\n",
		"+new",
	}
	require.NoError(t, sink.WriteRecord(context.Background(), "pkg/util/helper.go", lines))

	data, err := os.ReadFile(filepath.Join(root, "pkg", "util", "helper.go"))
	require.NoError(t, err)

	// Lines are written verbatim: terminators come from the input, and the
	// last line keeps its missing newline.
	expected := "diff --git a/pkg/util/helper.go b/pkg/util/helper.go\n" +
		"--- a/pkg/util/helper.go\n" +
		"+++ b/pkg/util/helper.go\n" +
		"@@ -1 +1 @@\n" +
		"-old\n" +
		"+new"
	assert.Equal(t, expected, string(data))
}

func TestWriteRecordOverwritesExisting(t *testing.T) {
	root := t.TempDir()
	sink, err := fs.NewDirSink(root)
	require.NoError(t, err)

	require.NoError(t, sink.WriteRecord(context.Background(), "f.txt", []string{"first\n"}))
	require.NoError(t, sink.WriteRecord(context.Background(), "f.txt", []string{"second\n"}))

	data, err := os.ReadFile(filepath.Join(root, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestWriteBinaryList(t *testing.T) {
	root := t.TempDir()
	sink, err := fs.NewDirSink(root)
	require.NoError(t, err)

	markers := []string{
		"Binary files a/img/logo.png and b/img/logo.png differ",
		"Binary files a/data.bin and b/data.bin differ",
	}
	require.NoError(t, sink.WriteBinaryList(context.Background(), markers))

	data, err := os.ReadFile(filepath.Join(root, fs.BinaryListFileName))
	require.NoError(t, err)
	assert.Equal(t,
		"Binary files a/img/logo.png and b/img/logo.png differ\n"+
			"Binary files a/data.bin and b/data.bin differ\n",
		string(data))
}
