package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type play struct {
	User  string
	Song  Nullable[string]
	Level string
}

func TestMapFilterCollect(t *testing.T) {
	d := FromPartitions(
		[]int{1, 2, 3},
		[]int{4, 5},
	)

	doubled := Map(d, func(i int) int { return i * 2 })
	even := Filter(doubled, func(i int) bool { return i%4 == 0 })

	assert.Equal(t, 2, even.NumPartitions())
	assert.Equal(t, []int{4, 8}, even.Collect())
	assert.Equal(t, 2, even.Count())
	assert.Equal(t, 5, d.Count())
}

func TestDistinct_FullRow(t *testing.T) {
	d := FromPartitions(
		[]play{
			{User: "15", Song: NullableOf("Fade"), Level: "free"},
			{User: "15", Song: NullableOf("Fade"), Level: "free"},
			{User: "15", Song: NullableOf("Fade"), Level: "paid"},
		},
		[]play{
			{User: "15", Song: NullableOf("Fade"), Level: "free"},
			{User: "15", Level: "free"},
			{User: "15", Level: "free"},
		},
	)

	out := Distinct(d)

	assert.Equal(t, [][]play{
		{
			{User: "15", Song: NullableOf("Fade"), Level: "free"},
			{User: "15", Song: NullableOf("Fade"), Level: "paid"},
		},
		{
			{User: "15", Level: "free"},
		},
	}, out.Partitions())
}

func TestDistinct_NullDiffersFromEmpty(t *testing.T) {
	d := FromRows([]Nullable[string]{{}, NullableOf(""), {}})
	assert.Len(t, Distinct(d).Collect(), 2)
}

func TestCoalesce(t *testing.T) {
	d := FromPartitions([]string{"a"}, []string{"b", "c"}, []string{"d"}, []string{"e"}, []string{"f"})

	two := Coalesce(d, 2)
	assert.Equal(t, 2, two.NumPartitions())
	assert.Equal(t, d.Collect(), two.Collect())

	same := Coalesce(d, 10)
	assert.Equal(t, 5, same.NumPartitions())

	var joined []string
	for _, p := range Coalesce(d, 3).Partitions() {
		joined = append(joined, strings.Join(p, ""))
	}
	assert.Equal(t, []string{"a", "bcd", "ef"}, joined)
}
