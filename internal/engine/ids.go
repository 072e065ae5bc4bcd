package engine

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// WithMonotonicID hands every row a synthetic id. Each partition draws from its own
// snowflake node, so ids are unique across partitions and strictly increasing within one.
// They are neither contiguous nor stable across runs. Datasets with more partitions than
// there are node numbers are coalesced first.
func WithMonotonicID[T, U any](d Dataset[T], assign func(row T, id int64) U) (Dataset[U], error) {
	d = Coalesce(d, 1<<snowflake.NodeBits)

	parts := make([][]U, len(d.parts))
	for i, p := range d.parts {
		node, err := snowflake.NewNode(int64(i))
		if err != nil {
			return Dataset[U]{}, fmt.Errorf("failed to create id generator for partition %d: %w", i, err)
		}
		out := make([]U, len(p))
		for j, row := range p {
			out[j] = assign(row, node.Generate().Int64())
		}
		parts[i] = out
	}
	return Dataset[U]{parts: parts}, nil
}
