package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"sparkify_etl/internal/storage"
)

// Schema names a record type and the keys each of its JSON objects must carry. A key
// present with a null value satisfies the schema.
type Schema struct {
	Name     string
	Required []string
}

// ReadJSON loads every file in store matching pattern (path.Match syntax, "*" does not
// cross "/") into a dataset with one partition per file. Files may hold a single object,
// concatenated objects or newline-delimited objects.
func ReadJSON[T any](ctx context.Context, s *Session, store storage.Store, pattern string, schema Schema) (Dataset[T], error) {
	logger := s.logger.WithFields(logrus.Fields{"schema": schema.Name, "pattern": pattern})

	keys, err := store.List(ctx, staticPrefix(pattern))
	if err != nil {
		return Dataset[T]{}, err
	}
	var files []string
	for _, key := range keys {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return Dataset[T]{}, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			files = append(files, key)
		}
	}
	if len(files) == 0 {
		return Dataset[T]{}, &LoadError{Key: pattern, Err: fmt.Errorf("%w in %s", ErrNoInput, store)}
	}

	logger.WithField("files", len(files)).Info("Loading JSON files")

	parts := make([][]T, len(files))
	err = s.forEach(ctx, len(files), func(ctx context.Context, i int) error {
		rows, err := readJSONFile[T](ctx, store, files[i], schema)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"key": files[i], "rows": len(rows)}).Debug("Loaded file")
		parts[i] = rows
		return nil
	})
	if err != nil {
		return Dataset[T]{}, err
	}

	d := FromPartitions(parts...)
	logger.WithField("rows", d.Count()).Info("Loaded JSON dataset")
	return d, nil
}

func readJSONFile[T any](ctx context.Context, store storage.Store, key string, schema Schema) ([]T, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, &LoadError{Key: key, Err: err}
	}
	defer rc.Close()

	var rows []T
	dec := json.NewDecoder(rc)
	for n := 0; ; n++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Key: key, Err: fmt.Errorf("record %d: %w", n, err)}
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &LoadError{Key: key, Err: fmt.Errorf("record %d is not an object: %w", n, err)}
		}
		for _, f := range schema.Required {
			if _, ok := fields[f]; !ok {
				return nil, &SchemaError{Schema: schema.Name, Key: key, Record: n, Field: f}
			}
		}

		var row T
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, &LoadError{Key: key, Err: fmt.Errorf("record %d: %w", n, err)}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// staticPrefix is the part of pattern before the first path segment holding a wildcard.
func staticPrefix(pattern string) string {
	i := strings.IndexAny(pattern, `*?[\`)
	if i < 0 {
		return pattern
	}
	return pattern[:strings.LastIndex(pattern[:i], "/")+1]
}
