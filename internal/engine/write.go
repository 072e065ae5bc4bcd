package engine

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"sparkify_etl/internal/storage"
)

// SuccessMarker is written last, once every file of a table is in place.
const SuccessMarker = "_SUCCESS"

// Table describes how a dataset of T is persisted. R is the Parquet file record and must
// carry parquet struct tags; partition columns belong in the path, not in R.
type Table[T, R any] struct {
	Name string
	// PartitionBy returns the ordered partition columns of a row. Nil means unpartitioned.
	PartitionBy func(T) []Partition
	Record      func(T) R
}

// Write persists d under t.Name/ in store, replacing whatever was there. All files are
// staged locally first; the previous output is only removed once staging has succeeded.
func Write[T, R any](ctx context.Context, s *Session, store storage.Store, d Dataset[T], t Table[T, R]) error {
	logger := s.logger.WithField("table", t.Name)

	groups, dirs := groupByPartition(d, t)
	stage := filepath.Join(s.stagingDir, t.Name+"-"+uuid.NewString())
	defer func() {
		if err := os.RemoveAll(stage); err != nil {
			logger.WithError(err).Warn("Failed to remove staged files")
		}
	}()

	files := make([]string, len(dirs))
	err := s.forEach(ctx, len(dirs), func(_ context.Context, i int) error {
		name := path.Join(dirs[i], fmt.Sprintf("part-%05d-%s.snappy.parquet", i, uuid.NewString()))
		if err := writeParquetFile(filepath.Join(stage, filepath.FromSlash(name)), groups[dirs[i]]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		files[i] = name
		return nil
	})
	if err != nil {
		return &WriteError{Table: t.Name, Err: err}
	}
	logger.WithField("files", len(files)).Debug("Staged parquet files")

	prefix := t.Name + "/"
	if err := store.DeletePrefix(ctx, prefix); err != nil {
		return &WriteError{Table: t.Name, Err: err}
	}

	err = s.forEach(ctx, len(files), func(ctx context.Context, i int) error {
		f, err := os.Open(filepath.Join(stage, filepath.FromSlash(files[i])))
		if err != nil {
			return fmt.Errorf("failed to open staged file: %w", err)
		}
		defer f.Close()
		return store.Put(ctx, prefix+files[i], f)
	})
	if err != nil {
		return &WriteError{Table: t.Name, Err: err}
	}
	if err := store.Put(ctx, prefix+SuccessMarker, strings.NewReader("")); err != nil {
		return &WriteError{Table: t.Name, Err: err}
	}

	logger.WithFields(logrus.Fields{
		"rows":       d.Count(),
		"partitions": len(dirs),
		"dest":       store.String(),
	}).Info("Wrote table")
	return nil
}

// groupByPartition buckets file records by partition directory, in first-seen order. An
// unpartitioned table always gets exactly one (possibly empty) file.
func groupByPartition[T, R any](d Dataset[T], t Table[T, R]) (map[string][]R, []string) {
	groups := make(map[string][]R)
	var dirs []string
	if t.PartitionBy == nil {
		groups[""] = []R{}
		dirs = append(dirs, "")
	}
	for _, p := range d.parts {
		for _, row := range p {
			dir := ""
			if t.PartitionBy != nil {
				dir = PartitionPath(t.PartitionBy(row))
			}
			if _, ok := groups[dir]; !ok {
				dirs = append(dirs, dir)
			}
			groups[dir] = append(groups[dir], t.Record(row))
		}
	}
	return groups, dirs
}

func writeParquetFile[R any](localPath string, records []R) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	fw, err := local.NewLocalFileWriter(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(R), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i, rec := range records {
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("error in WriteStop: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("error closing file writer: %w", err)
	}
	return nil
}
