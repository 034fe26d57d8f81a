package adapter

import "reflect"

type OpKind int

const (
	Insert OpKind = iota
	Remove
	Change
	Move
)

func (k OpKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	case Change:
		return "change"
	case Move:
		return "move"
	default:
		return "unknown"
	}
}

// Op is one step of an update. Ops are meant to be applied in order:
// Index refers to the list as left by the previous op. Move takes the row
// at From and puts it at Index. Item is the new row for Insert and Change.
type Op[T any] struct {
	Kind  OpKind
	Index int
	From  int
	Item  T
}

// Diff returns the ops that turn old into next. Rows are matched by key and
// a matched row whose content differs yields a Change.
func Diff[T any, K comparable](old, next []T, key func(T) K) []Op[T] {
	var ops []Op[T]

	wanted := make(map[K]struct{}, len(next))
	for _, item := range next {
		wanted[key(item)] = struct{}{}
	}

	work := append([]T(nil), old...)
	for i := len(work) - 1; i >= 0; i-- {
		if _, ok := wanted[key(work[i])]; !ok {
			ops = append(ops, Op[T]{Kind: Remove, Index: i})
			work = append(work[:i], work[i+1:]...)
		}
	}

	for i, item := range next {
		k := key(item)
		if i < len(work) && key(work[i]) == k {
			if !reflect.DeepEqual(work[i], item) {
				ops = append(ops, Op[T]{Kind: Change, Index: i, Item: item})
				work[i] = item
			}
			continue
		}

		from := -1
		for j := i + 1; j < len(work); j++ {
			if key(work[j]) == k {
				from = j
				break
			}
		}
		if from < 0 {
			ops = append(ops, Op[T]{Kind: Insert, Index: i, Item: item})
			work = insertAt(work, i, item)
			continue
		}

		moved := work[from]
		work = append(work[:from], work[from+1:]...)
		work = insertAt(work, i, moved)
		ops = append(ops, Op[T]{Kind: Move, Index: i, From: from})
		if !reflect.DeepEqual(moved, item) {
			ops = append(ops, Op[T]{Kind: Change, Index: i, Item: item})
			work[i] = item
		}
	}
	return ops
}

// Apply replays ops on rows.
func Apply[T any](rows []T, ops []Op[T]) []T {
	out := append([]T(nil), rows...)
	for _, op := range ops {
		switch op.Kind {
		case Insert:
			out = insertAt(out, op.Index, op.Item)
		case Remove:
			out = append(out[:op.Index], out[op.Index+1:]...)
		case Change:
			out[op.Index] = op.Item
		case Move:
			moved := out[op.From]
			out = append(out[:op.From], out[op.From+1:]...)
			out = insertAt(out, op.Index, moved)
		}
	}
	return out
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
