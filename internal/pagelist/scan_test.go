package pagelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0003.bin", "1", "2_page.dat", "10.bin", "cover.jpg", "0000.bin", "3.dat", "manifest.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "4"), 0755))

	pages, err := Scan(dir)
	require.NoError(t, err)

	var got []int
	for _, p := range pages {
		got = append(got, p.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 10}, got)
	assert.Equal(t, "0003.bin", pages[2].Name)
	assert.Equal(t, filepath.Join(dir, "0003.bin"), pages[2].Path)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanEmpty(t *testing.T) {
	pages, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, pages)
}
