package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// writeSentinel3Archive creates a minimal zipped .SEN3 product in dir.
func writeSentinel3Archive(t *testing.T, dir, stem string) string {
	t.Helper()
	path := filepath.Join(dir, stem+".zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range []string{"xfdumanifest.xml", "Oa01_reflectance.nc"} {
		w, err := zw.Create(stem + ".SEN3/" + name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<product/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
