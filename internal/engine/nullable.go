package engine

import (
	"bytes"
	"encoding/json"
)

// Nullable is an optional value that stays comparable, so rows holding it can be
// deduplicated by plain equality.
type Nullable[T comparable] struct {
	Value T
	Valid bool
}

func NullableOf[T comparable](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true}
}

// Ptr returns nil for a null value, the form optional Parquet columns expect.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = Nullable[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = NullableOf(v)
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
