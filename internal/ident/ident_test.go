package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type entity struct{ id int }

func (e *entity) Identifier() int      { return e.id }
func (e *entity) SetIdentifier(id int) { e.id = id }

func entities(ids ...int) []*entity {
	out := make([]*entity, len(ids))
	for i, id := range ids {
		out[i] = &entity{id: id}
	}
	return out
}

func idsOf(items []*entity) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{name: "all missing", in: []int{0, 0}, want: []int{1, 2}},
		{name: "all present", in: []int{3, 4}, want: []int{3, 4}},
		{name: "missing before existing", in: []int{0, 6}, want: []int{7, 6}},
		{name: "missing around existing", in: []int{0, 3, 0}, want: []int{4, 3, 5}},
		{name: "empty", in: []int{}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := entities(tt.in...)
			Assign(items)
			assert.Equal(t, tt.want, idsOf(items))
		})
	}
}

func TestAssign_UniqueAndPositive(t *testing.T) {
	items := entities(0, 9, 0, 2, 0, 0, 5)
	Assign(items)

	seen := map[int]bool{}
	for i, it := range items {
		assert.Greater(t, it.id, 0)
		assert.False(t, seen[it.id], "duplicate id %d at %d", it.id, i)
		seen[it.id] = true
	}
	assert.Equal(t, 9, items[1].id)
	assert.Equal(t, 2, items[3].id)
	assert.Equal(t, 5, items[6].id)
}

func TestAssign_Deterministic(t *testing.T) {
	a := entities(0, 4, 0)
	b := entities(0, 4, 0)
	Assign(a)
	Assign(b)
	assert.Equal(t, idsOf(a), idsOf(b))
}

func TestDuplicates(t *testing.T) {
	assert.Empty(t, Duplicates(entities(0, 0, 1, 2)))
	assert.Equal(t, []int{2}, Duplicates(entities(2, 2, 2)))
	assert.Equal(t, []int{3, 1}, Duplicates(entities(1, 3, 3, 1)))
}
