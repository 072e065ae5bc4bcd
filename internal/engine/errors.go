package engine

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when a load pattern matches no files.
var ErrNoInput = errors.New("no input files match")

// LoadError reports an input file that could not be read or decoded.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Key, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a JSON object that lacks a required field.
type SchemaError struct {
	Schema string
	Key    string
	Record int
	Field  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s record %d in %s is missing field %q", e.Schema, e.Record, e.Key, e.Field)
}

// WriteError reports a table that could not be staged, cleared or uploaded.
type WriteError struct {
	Table string
	Err   error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write table %s: %v", e.Table, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }
