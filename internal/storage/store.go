// Package storage gives the engine a flat, slash-separated key space over either an S3
// bucket prefix or a local directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"

	"sparkify_etl/internal/config"
)

// ErrEmptyPrefix guards DeletePrefix against wiping a whole store root.
var ErrEmptyPrefix = errors.New("refusing to delete with an empty prefix")

// Store is a rooted object store. Keys are relative to the root and use "/" as separator.
type Store interface {
	// List returns every key beginning with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, body io.Reader) error
	// DeletePrefix removes every object under the directory-like prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	String() string
}

// Open returns the store for root. s3:// and s3a:// roots need a session.
func Open(root string, sess *session.Session) (Store, error) {
	if !config.IsS3(root) {
		return NewLocal(root)
	}
	if sess == nil {
		return nil, fmt.Errorf("no AWS session for %s", root)
	}
	bucket, prefix, err := SplitS3Root(root)
	if err != nil {
		return nil, err
	}
	return NewS3(sess, bucket, prefix), nil
}

// SplitS3Root splits s3://bucket/some/prefix into its bucket and a prefix that is either
// empty or ends with "/".
func SplitS3Root(root string) (bucket, prefix string, err error) {
	rest := root
	for _, scheme := range []string{"s3a://", "s3://"} {
		if strings.HasPrefix(root, scheme) {
			rest = strings.TrimPrefix(root, scheme)
			break
		}
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("no bucket in %q", root)
	}
	return bucket, dirPrefix(prefix), nil
}

func dirPrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
