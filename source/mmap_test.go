package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMmapFileReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	want := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	src, err := OpenMmapFile(path)
	require.NoError(t, err)
	defer src.Dismiss()

	require.Equal(t, path, src.Path())

	got, err := src.Read(4, 6)
	require.NoError(t, err)
	require.Equal(t, want[4:10], got)
}

func TestMmapFileReadOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o644))

	src, err := OpenMmapFile(path)
	require.NoError(t, err)
	defer src.Dismiss()

	_, err = src.Read(0, 1000)
	require.Error(t, err)
}

func TestMmapFileDismiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	src, err := OpenMmapFile(path)
	require.NoError(t, err)
	require.NoError(t, src.Dismiss())
}
