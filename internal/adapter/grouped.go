package adapter

import "sync"

type Group[T any] struct {
	Key   int
	Title string
	Items []T
}

// Row is either a group header or one member of the group.
type Row[T any] struct {
	Header bool
	Group  int
	Title  string
	Count  int
	Item   T
}

type rowKey struct {
	header bool
	group  int
	item   int
}

// Block is a contiguous run of Count rows inserted or removed at Index.
type Block struct {
	Kind  OpKind
	Index int
	Count int
}

// Grouped keeps a header-and-members list where each group can be
// collapsed. Groups are expanded until toggled.
type Grouped[T Keyed] struct {
	mu        sync.Mutex
	groups    []Group[T]
	collapsed map[int]bool
	rows      []Row[T]
}

func NewGrouped[T Keyed]() *Grouped[T] {
	return &Grouped[T]{collapsed: map[int]bool{}}
}

// Submit replaces the groups and returns the row ops. Collapsed state
// survives for keys that are still present.
func (g *Grouped[T]) Submit(groups []Group[T]) []Op[Row[T]] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.groups = append([]Group[T](nil), groups...)
	next := g.flatten()
	ops := Diff(g.rows, next, keyOf[T])
	g.rows = next
	return ops
}

func (g *Grouped[T]) Rows() []Row[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Row[T](nil), g.rows...)
}

func (g *Grouped[T]) Expanded(key int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.collapsed[key]
}

// Toggle collapses or expands the group. The members leave or come back as
// one block right after the header. ok is false for an unknown key.
func (g *Grouped[T]) Toggle(key int) (Block, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	header := -1
	for i, r := range g.rows {
		if r.Header && r.Group == key {
			header = i
			break
		}
	}
	if header < 0 {
		return Block{}, false
	}

	var group Group[T]
	for _, gr := range g.groups {
		if gr.Key == key {
			group = gr
			break
		}
	}

	at := header + 1
	n := len(group.Items)
	if g.collapsed[key] {
		delete(g.collapsed, key)
		members := make([]Row[T], 0, n)
		for _, item := range group.Items {
			members = append(members, Row[T]{Group: key, Item: item})
		}
		rows := make([]Row[T], 0, len(g.rows)+n)
		rows = append(rows, g.rows[:at]...)
		rows = append(rows, members...)
		rows = append(rows, g.rows[at:]...)
		g.rows = rows
		return Block{Kind: Insert, Index: at, Count: n}, true
	}

	g.collapsed[key] = true
	g.rows = append(g.rows[:at], g.rows[at+n:]...)
	return Block{Kind: Remove, Index: at, Count: n}, true
}

func (g *Grouped[T]) flatten() []Row[T] {
	var rows []Row[T]
	for _, gr := range g.groups {
		rows = append(rows, Row[T]{Header: true, Group: gr.Key, Title: gr.Title, Count: len(gr.Items)})
		if g.collapsed[gr.Key] {
			continue
		}
		for _, item := range gr.Items {
			rows = append(rows, Row[T]{Group: gr.Key, Item: item})
		}
	}
	return rows
}

func keyOf[T Keyed](r Row[T]) rowKey {
	if r.Header {
		return rowKey{header: true, group: r.Group}
	}
	return rowKey{group: r.Group, item: r.Item.Key()}
}
