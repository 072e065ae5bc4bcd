package engine

// Dataset is an immutable, partitioned collection of rows. Row order is only meaningful
// within a partition.
type Dataset[T any] struct {
	parts [][]T
}

func FromPartitions[T any](parts ...[]T) Dataset[T] {
	return Dataset[T]{parts: parts}
}

// FromRows wraps rows as a single-partition dataset.
func FromRows[T any](rows []T) Dataset[T] {
	return Dataset[T]{parts: [][]T{rows}}
}

func (d Dataset[T]) NumPartitions() int { return len(d.parts) }

func (d Dataset[T]) Partitions() [][]T { return d.parts }

func (d Dataset[T]) Count() int {
	n := 0
	for _, p := range d.parts {
		n += len(p)
	}
	return n
}

// Collect flattens every partition, in partition order.
func (d Dataset[T]) Collect() []T {
	out := make([]T, 0, d.Count())
	for _, p := range d.parts {
		out = append(out, p...)
	}
	return out
}

func Map[T, U any](d Dataset[T], fn func(T) U) Dataset[U] {
	parts := make([][]U, len(d.parts))
	for i, p := range d.parts {
		out := make([]U, len(p))
		for j, row := range p {
			out[j] = fn(row)
		}
		parts[i] = out
	}
	return Dataset[U]{parts: parts}
}

func Filter[T any](d Dataset[T], keep func(T) bool) Dataset[T] {
	parts := make([][]T, len(d.parts))
	for i, p := range d.parts {
		var out []T
		for _, row := range p {
			if keep(row) {
				out = append(out, row)
			}
		}
		parts[i] = out
	}
	return Dataset[T]{parts: parts}
}

// Distinct drops rows equal on every field to an earlier row. The first occurrence is
// kept in its original partition.
func Distinct[T comparable](d Dataset[T]) Dataset[T] {
	seen := make(map[T]struct{}, d.Count())
	parts := make([][]T, len(d.parts))
	for i, p := range d.parts {
		var out []T
		for _, row := range p {
			if _, dup := seen[row]; dup {
				continue
			}
			seen[row] = struct{}{}
			out = append(out, row)
		}
		parts[i] = out
	}
	return Dataset[T]{parts: parts}
}

// Coalesce merges adjacent partitions so that at most n remain.
func Coalesce[T any](d Dataset[T], n int) Dataset[T] {
	if n <= 0 || len(d.parts) <= n {
		return d
	}
	parts := make([][]T, n)
	for i := range parts {
		lo, hi := i*len(d.parts)/n, (i+1)*len(d.parts)/n
		for _, p := range d.parts[lo:hi] {
			parts[i] = append(parts[i], p...)
		}
	}
	return Dataset[T]{parts: parts}
}
