package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSaveStoresImage(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDisk(dir, 1<<20)
	require.NoError(t, err)

	name, err := disk.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, disk.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, disk.Remove(name))
}

func TestSaveRejectsNonImage(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 1<<20)
	require.NoError(t, err)

	_, err = disk.Save(strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsLargeFile(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 16)
	require.NoError(t, err)

	_, err = disk.Save(bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestPathRejectsTraversal(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), 16)
	require.NoError(t, err)

	for _, name := range []string{"", "../etc/passwd", "a/b.png", ".env"} {
		_, err := disk.Path(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}
