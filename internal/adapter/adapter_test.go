package adapter

import (
	"RestoPos/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tables(pairs ...[2]int) []domain.Table {
	out := make([]domain.Table, 0, len(pairs))
	for _, s := range pairs {
		out = append(out, domain.Table{ID: s[0], Number: s[1], State: domain.TableFree})
	}
	return out
}

func TestListSubmit(t *testing.T) {
	l := NewList[domain.Table]()

	first := tables([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	ops := l.Submit(first)
	require.Len(t, ops, 3)
	for i, op := range ops {
		assert.Equal(t, Insert, op.Kind)
		assert.Equal(t, i, op.Index)
	}

	assert.Empty(t, l.Submit(first))

	changed := tables([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	changed[1].State = domain.TableOccupied
	ops = l.Submit(changed)
	assert.Equal(t, []Op[domain.Table]{{Kind: Change, Index: 1, Item: changed[1]}}, ops)

	assert.Equal(t, changed, l.Rows())
	assert.Equal(t, 3, l.Len())
}

func TestDiffReplaysToNext(t *testing.T) {
	cases := []struct {
		name      string
		old, next []domain.Table
	}{
		{"empty to empty", nil, nil},
		{"clear", tables([2]int{1, 1}, [2]int{2, 2}), nil},
		{"remove middle", tables([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}), tables([2]int{1, 1}, [2]int{3, 3})},
		{"reverse", tables([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}), tables([2]int{3, 3}, [2]int{2, 2}, [2]int{1, 1})},
		{"move and change", tables([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}), tables([2]int{3, 30}, [2]int{1, 1}, [2]int{4, 4})},
		{"interleave", tables([2]int{5, 5}, [2]int{6, 6}), tables([2]int{7, 7}, [2]int{5, 5}, [2]int{8, 8}, [2]int{6, 60})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops := Diff(tc.old, tc.next, func(v domain.Table) int { return v.Key() })
			got := Apply(tc.old, ops)
			if len(tc.next) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.next, got)
		})
	}
}

func TestDiffMoveOps(t *testing.T) {
	old := tables([2]int{1, 1}, [2]int{2, 2})
	next := tables([2]int{2, 2}, [2]int{1, 1})
	ops := Diff(old, next, func(v domain.Table) int { return v.Key() })
	assert.Equal(t, []Op[domain.Table]{{Kind: Move, Index: 0, From: 1}}, ops)
}

func products(ids ...int) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id})
	}
	return out
}

func TestGroupedToggle(t *testing.T) {
	g := NewGrouped[domain.Product]()
	g.Submit([]Group[domain.Product]{
		{Key: 1, Title: "Bebidas", Items: products(10, 11, 12)},
		{Key: 2, Title: "Postres", Items: products(20, 21)},
	})
	before := g.Rows()
	require.Len(t, before, 7)
	assert.True(t, g.Expanded(1))

	block, ok := g.Toggle(1)
	require.True(t, ok)
	assert.Equal(t, Block{Kind: Remove, Index: 1, Count: 3}, block)
	collapsed := g.Rows()
	require.Len(t, collapsed, 4)
	assert.Equal(t, before[0], collapsed[0])
	assert.Equal(t, before[4:], collapsed[1:])
	assert.False(t, g.Expanded(1))

	block, ok = g.Toggle(1)
	require.True(t, ok)
	assert.Equal(t, Block{Kind: Insert, Index: 1, Count: 3}, block)
	assert.Equal(t, before, g.Rows())

	block, ok = g.Toggle(2)
	require.True(t, ok)
	assert.Equal(t, Block{Kind: Remove, Index: 5, Count: 2}, block)
	assert.Len(t, g.Rows(), 5)

	_, ok = g.Toggle(99)
	assert.False(t, ok)
}

func TestGroupedSubmitKeepsCollapsed(t *testing.T) {
	g := NewGrouped[domain.Product]()
	g.Submit([]Group[domain.Product]{{Key: 1, Title: "Bebidas", Items: products(10)}})
	g.Toggle(1)

	ops := g.Submit([]Group[domain.Product]{
		{Key: 1, Title: "Bebidas", Items: products(10, 11)},
		{Key: 2, Title: "Postres", Items: products(20)},
	})
	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Header)
	assert.Equal(t, 2, rows[0].Count)
	assert.True(t, rows[1].Header)
	assert.Equal(t, 20, rows[2].Item.ID)

	assert.Equal(t, rows, Apply([]Row[domain.Product]{{Header: true, Group: 1, Title: "Bebidas", Count: 1}}, ops))
}

func TestEmptyGroupToggle(t *testing.T) {
	g := NewGrouped[domain.Product]()
	g.Submit([]Group[domain.Product]{{Key: 3, Title: "Vacío"}})
	block, ok := g.Toggle(3)
	require.True(t, ok)
	assert.Equal(t, Block{Kind: Remove, Index: 1, Count: 0}, block)
	assert.Len(t, g.Rows(), 1)
}
