package cssdoc

import (
	"fmt"

	"github.com/npillmayer/cssed/tree"
)

// Path is re-exported from package tree for convenience.
type Path = tree.Path

// OpKind enumerates the primitive edit operations.
type OpKind uint8

// Primitive operations. Wrap and unwrap are expressed as sequences of
// these.
const (
	OpInsert OpKind = iota + 1
	OpRemove
	OpMove
	OpSetText
	OpSetAttrs
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpSetText:
		return "set-text"
	case OpSetAttrs:
		return "set-attrs"
	}
	return "?"
}

// Op describes one applied primitive. Ops are self-contained: node
// snapshots are deep copies, so an op may be re-applied or inverted later.
type Op struct {
	Kind     OpKind
	Path     Path  // target path, valid before the edit
	To       Path  // for moves: position of the node after the move
	Node     *Node // for inserts and removes: snapshot of the sub-tree
	Text     string
	OldText  string
	Attrs    Attrs
	OldAttrs Attrs
}

func (op Op) String() string {
	switch op.Kind {
	case OpMove:
		return fmt.Sprintf("move %v → %v", op.Path, op.To)
	case OpSetText:
		return fmt.Sprintf("set-text %v %q", op.Path, op.Text)
	case OpSetAttrs:
		return fmt.Sprintf("set-attrs %v %+v", op.Path, op.Attrs)
	}
	return fmt.Sprintf("%s %v %v", op.Kind, op.Path, op.Node)
}

// Inverse returns the op which undoes op.
func (op Op) Inverse() Op {
	switch op.Kind {
	case OpInsert:
		return Op{Kind: OpRemove, Path: op.Path, Node: op.Node}
	case OpRemove:
		return Op{Kind: OpInsert, Path: op.Path, Node: op.Node}
	case OpMove:
		return Op{Kind: OpMove, Path: op.To, To: op.Path}
	case OpSetText:
		return Op{Kind: OpSetText, Path: op.Path, Text: op.OldText, OldText: op.Text}
	case OpSetAttrs:
		return Op{Kind: OpSetAttrs, Path: op.Path, Attrs: op.OldAttrs, OldAttrs: op.Attrs}
	}
	panic(fmt.Sprintf("cannot invert op of kind %d", op.Kind))
}

// TransformPath rebases path p over an applied op. It returns false if the
// node addressed by p has been removed by the op.
func TransformPath(p Path, op Op) (Path, bool) {
	switch op.Kind {
	case OpInsert:
		return shiftForInsert(p, op.Path), true
	case OpRemove:
		return shiftForRemove(p, op.Path)
	case OpMove:
		if op.Path.IsAncestorOrSelf(p) {
			moved := op.To.Copy()
			return append(moved, p[len(op.Path):]...), true
		}
		q, _ := shiftForRemove(p, op.Path)
		return shiftForInsert(q, op.To), true
	}
	return p, true
}

func shiftForInsert(p, at Path) Path {
	if len(at) == 0 || len(p) < len(at) {
		return p
	}
	level := len(at) - 1
	if !at[:level].Equal(p[:level]) || p[level] < at[level] {
		return p
	}
	q := p.Copy()
	q[level]++
	return q
}

func shiftForRemove(p, at Path) (Path, bool) {
	if at.IsAncestorOrSelf(p) {
		return p, false
	}
	if len(at) == 0 || len(p) < len(at) {
		return p, true
	}
	level := len(at) - 1
	if !at[:level].Equal(p[:level]) || p[level] < at[level] {
		return p, true
	}
	q := p.Copy()
	q[level]--
	return q, true
}
