package engine

import (
	"fmt"
	"strings"
)

// DefaultPartitionName stands in for an empty or null partition value.
const DefaultPartitionName = "__HIVE_DEFAULT_PARTITION__"

// Partition is one column=value level of a Hive-style partition path.
type Partition struct {
	Column string
	Value  string
}

// PartitionPath renders partitions as "col=value/col=value" with values escaped.
func PartitionPath(parts []Partition) string {
	segs := make([]string, len(parts))
	for i, p := range parts {
		v := p.Value
		if v == "" {
			v = DefaultPartitionName
		} else {
			v = escapePartitionValue(v)
		}
		segs[i] = p.Column + "=" + v
	}
	return strings.Join(segs, "/")
}

func escapePartitionValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if needsEscape(c) {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEscape(c byte) bool {
	if c < 0x20 || c == 0x7f {
		return true
	}
	return strings.IndexByte("\"#%'*/:=?\\{[]^", c) >= 0
}
