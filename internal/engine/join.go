package engine

// LeftJoin is a hash left outer join. The right side is built into a dictionary and the left
// side is streamed, so the result keeps the left partitioning. A key function returning
// false marks a null key, which never matches. Every left row yields one output per
// matching right row, or a single output with a nil right row when nothing matches.
func LeftJoin[L, R any, K comparable, O any](
	left Dataset[L],
	right Dataset[R],
	leftKey func(L) (K, bool),
	rightKey func(R) (K, bool),
	combine func(L, *R) O,
) Dataset[O] {
	dict := make(map[K][]R)
	for _, p := range right.parts {
		for _, row := range p {
			if k, ok := rightKey(row); ok {
				dict[k] = append(dict[k], row)
			}
		}
	}

	parts := make([][]O, len(left.parts))
	for i, p := range left.parts {
		out := make([]O, 0, len(p))
		for _, l := range p {
			var matches []R
			if k, ok := leftKey(l); ok {
				matches = dict[k]
			}
			if len(matches) == 0 {
				out = append(out, combine(l, nil))
				continue
			}
			for j := range matches {
				out = append(out, combine(l, &matches[j]))
			}
		}
		parts[i] = out
	}
	return Dataset[O]{parts: parts}
}
