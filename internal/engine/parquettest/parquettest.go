// Package parquettest reads tables written by the engine back from a local directory.
package parquettest

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

// ReadTable returns the records of every Parquet file under root/table, keyed by the
// partition directory relative to the table ("" when unpartitioned).
func ReadTable[R any](t testing.TB, root, table string) map[string][]R {
	t.Helper()

	base := filepath.Join(root, table)
	out := make(map[string][]R)
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".parquet") {
			return nil
		}
		rel, err := filepath.Rel(base, filepath.Dir(p))
		require.NoError(t, err)
		dir := filepath.ToSlash(rel)
		if dir == "." {
			dir = ""
		}
		out[dir] = append(out[dir], ReadFile[R](t, p)...)
		return nil
	})
	require.NoError(t, err)
	return out
}

// ReadFile returns every record of one Parquet file.
func ReadFile[R any](t testing.TB, path string) []R {
	t.Helper()

	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(R), 4)
	require.NoError(t, err)
	defer pr.ReadStop()

	rows := make([]R, int(pr.GetNumRows()))
	if len(rows) > 0 {
		require.NoError(t, pr.Read(&rows))
	}
	return rows
}

// Flatten merges every partition of a table read with ReadTable.
func Flatten[R any](parts map[string][]R) []R {
	var out []R
	for _, rows := range parts {
		out = append(out, rows...)
	}
	return out
}
