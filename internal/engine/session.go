// Package engine is the in-process table engine the pipelines run on. It loads JSON trees
// into partitioned datasets, evaluates relational operations over them and persists them
// as Hive-partitioned Parquet.
package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Session is the engine handle shared by every pipeline stage of a run.
type Session struct {
	workers    int
	logger     logrus.FieldLogger
	stagingDir string
}

type Option func(*sessionOptions)

type sessionOptions struct {
	workers     int
	logger      logrus.FieldLogger
	stagingBase string
}

// WithWorkers bounds how many files are loaded or written concurrently.
func WithWorkers(n int) Option {
	return func(o *sessionOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// WithStagingBase sets the local directory below which Parquet files are staged before upload.
func WithStagingBase(dir string) Option {
	return func(o *sessionOptions) { o.stagingBase = dir }
}

func NewSession(opts ...Option) (*Session, error) {
	o := sessionOptions{
		workers: runtime.NumCPU() * 2,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	dir, err := os.MkdirTemp(o.stagingBase, "parquet_temp_")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"workers": o.workers,
		"staging": dir,
	}).Info("Engine session started")

	return &Session{
		workers:    o.workers,
		logger:     o.logger,
		stagingDir: dir,
	}, nil
}

func (s *Session) Logger() logrus.FieldLogger { return s.logger }

// Close removes the staging directory.
func (s *Session) Close() error {
	s.logger.WithField("staging", s.stagingDir).Debug("Cleaning up staging directory")
	if err := os.RemoveAll(s.stagingDir); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", s.stagingDir, err)
	}
	return nil
}

// forEach runs fn for i in [0, n) on at most s.workers goroutines. The first error cancels
// the remaining work and is returned.
func (s *Session) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	semaphore := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if ctx.Err() != nil {
				return
			}
			if err := fn(ctx, i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
