package cssdoc

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/cssed/tree"
)

// Document is a stylesheet document. Its root node holds the top-level
// rules and at-rules.
//
// All structural edits are done with path-based primitives (Insert, Remove,
// Move, SetText, SetAttrs, Wrap, Unwrap). Paths given to a primitive have to
// be valid before the edit; after a structural edit, callers are
// responsible for re-resolving paths (see TransformPath).
//
// A Document is not safe for concurrent use.
type Document struct {
	root      *Node
	observers []func(Op)
	journal   *[]Op
}

// NewDocument creates a document from a list of rules and at-rules.
func NewDocument(entries ...*Node) *Document {
	return &Document{root: container(Root, entries)}
}

// Root returns the (invisible) root node of the document.
func (d *Document) Root() *Node {
	return d.root
}

// Entries returns the top-level rules and at-rules.
func (d *Document) Entries() []*Node {
	return d.root.ChildNodes()
}

// Clone creates an independent deep copy of a document. Observers and
// journals are not copied.
func (d *Document) Clone() *Document {
	return &Document{root: d.root.Clone()}
}

// Resolve returns the node addressed by p.
func (d *Document) Resolve(p Path) (*Node, bool) {
	n, ok := d.root.Descend(p)
	if !ok {
		return nil, false
	}
	return Of(n), true
}

// MustResolve returns the node addressed by p. It panics with ErrStalePath
// if p is stale.
func (d *Document) MustResolve(p Path) *Node {
	n, ok := d.Resolve(p)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrStalePath, p))
	}
	return n
}

// PathOf returns the path of a node of this document.
func (d *Document) PathOf(n *Node) Path {
	return n.Path()
}

// Observe registers a function which is called after each primitive
// operation. It returns a function to de-register the observer.
func (d *Document) Observe(f func(Op)) (cancel func()) {
	d.observers = append(d.observers, f)
	i := len(d.observers) - 1
	return func() {
		d.observers[i] = nil
	}
}

// Record starts journaling of primitive operations. Calling the returned
// function stops journaling and returns the ops applied in between.
// Recordings do not nest.
func (d *Document) Record() (stop func() []Op) {
	ops := make([]Op, 0, 8)
	d.journal = &ops
	return func() []Op {
		j := d.journal
		d.journal = nil
		if j == nil {
			return nil
		}
		return *j
	}
}

func (d *Document) emit(op Op) {
	tracer().Debugf("doc: %v", op)
	if d.journal != nil {
		*d.journal = append(*d.journal, op)
	}
	for _, f := range d.observers {
		if f != nil {
			f(op)
		}
	}
}

// --- Primitives ------------------------------------------------------------

// Insert inserts a detached node at path at. The parent of at must exist,
// and the last index of at may be at most the parent's child count.
func (d *Document) Insert(at Path, n *Node) {
	if len(at) == 0 {
		panic(fmt.Errorf("%w: cannot insert at root", ErrStalePath))
	}
	parent := d.MustResolve(at.Parent())
	if at.Last() > parent.ChildCount() {
		panic(fmt.Errorf("%w: insert position %v", ErrStalePath, at))
	}
	parent.InsertChildAt(at.Last(), &n.Node)
	d.emit(Op{Kind: OpInsert, Path: at.Copy(), Node: n.Clone()})
}

// Remove removes the node at path at and returns it.
func (d *Document) Remove(at Path) *Node {
	n := d.detach(at)
	d.emit(Op{Kind: OpRemove, Path: at.Copy(), Node: n.Clone()})
	return n
}

func (d *Document) detach(at Path) *Node {
	if len(at) == 0 {
		panic(fmt.Errorf("%w: cannot remove root", ErrStalePath))
	}
	n := d.MustResolve(at)
	n.ParentNode().RemoveChildAt(at.Last())
	return n
}

// Move moves the node at path from to path to. to is the position the node
// will occupy after the move, i.e. it is interpreted in the tree with the
// node already removed. Moving a node into its own sub-tree panics.
func (d *Document) Move(from, to Path) {
	if from.Equal(to) {
		return
	}
	if from.IsAncestorOf(to) {
		panic(fmt.Errorf("%w: cannot move %v into itself (%v)", ErrStalePath, from, to))
	}
	n := d.detach(from)
	parent, ok := d.Resolve(to.Parent())
	if !ok || to.Last() > parent.ChildCount() {
		// restore before failing loudly
		d.MustResolve(from.Parent()).InsertChildAt(from.Last(), &n.Node)
		panic(fmt.Errorf("%w: move target %v", ErrStalePath, to))
	}
	parent.InsertChildAt(to.Last(), &n.Node)
	d.emit(Op{Kind: OpMove, Path: from.Copy(), To: to.Copy()})
}

// SetText replaces the text of the leaf at path at.
func (d *Document) SetText(at Path, text string) {
	n := d.MustResolve(at)
	if !n.kind.IsLeaf() {
		panic(fmt.Errorf("cannot set text of %s node at %v", n.kind, at))
	}
	if n.text == text {
		return
	}
	old := n.text
	n.text = text
	d.emit(Op{Kind: OpSetText, Path: at.Copy(), Text: text, OldText: old})
}

// SetAttrs replaces the token attributes of the node at path at.
func (d *Document) SetAttrs(at Path, a Attrs) {
	n := d.MustResolve(at)
	if n.attrs == a {
		return
	}
	old := n.attrs
	n.attrs = a
	d.emit(Op{Kind: OpSetAttrs, Path: at.Copy(), Attrs: a, OldAttrs: old})
}

// Wrap inserts an empty container node wrapper at path at and moves the
// node previously at at into it.
func (d *Document) Wrap(at Path, wrapper *Node) {
	if wrapper.ChildCount() > 0 {
		panic("wrapper node has to be empty")
	}
	d.Insert(at, wrapper)
	d.Move(at.Next(), at.Child(0))
}

// Unwrap replaces the container node at path at by its children,
// preserving their order.
func (d *Document) Unwrap(at Path) {
	n := d.MustResolve(at)
	cnt := n.ChildCount()
	for i := 0; i < cnt; i++ {
		d.Move(at.Child(0), at.Parent().Child(at.Last()+1+i))
	}
	d.Remove(at)
}

// Apply re-applies a recorded op (e.g., for redo or undo). Node snapshots
// are cloned, so an op may be applied more than once.
func (d *Document) Apply(op Op) {
	switch op.Kind {
	case OpInsert:
		d.Insert(op.Path, op.Node.Clone())
	case OpRemove:
		d.Remove(op.Path)
	case OpMove:
		d.Move(op.Path, op.To)
	case OpSetText:
		d.SetText(op.Path, op.Text)
	case OpSetAttrs:
		d.SetAttrs(op.Path, op.Attrs)
	default:
		panic(fmt.Sprintf("cannot apply op of kind %d", op.Kind))
	}
}

// --- Queries ---------------------------------------------------------------

// NearestAbove finds the nearest ancestor-or-self of the node at p whose
// kind is in kinds. It returns false if there is none.
func (d *Document) NearestAbove(p Path, kinds KindSet) (Path, bool) {
	n, ok := d.Resolve(p)
	if !ok {
		return nil, false
	}
	match := func(test *tree.Node[*Node], _ *tree.Node[*Node]) (*tree.Node[*Node], error) {
		if kinds.Contains(Of(test).kind) {
			return test, nil
		}
		return nil, nil
	}
	found, err := tree.NewWalker(&n.Node).AncestorOrSelfWith(match).Promise()()
	if err != nil || len(found) == 0 {
		return nil, false
	}
	return found[0].Path(), true
}

// Leaves returns the paths of all leaves in document order.
func (d *Document) Leaves() []Path {
	return d.LeavesBelow(Path{})
}

// LeavesBelow returns the paths of all leaves of the sub-tree at p, in
// document order.
func (d *Document) LeavesBelow(p Path) []Path {
	n, ok := d.Resolve(p)
	if !ok {
		return nil
	}
	if n.kind.IsLeaf() {
		return []Path{p.Copy()}
	}
	leaves, _ := tree.NewWalker(&n.Node).DescendentsWith(tree.NodeIsLeaf[*Node]()).Promise()()
	paths := make([]Path, 0, len(leaves))
	for _, l := range leaves {
		if Of(l).kind.IsLeaf() {
			paths = append(paths, l.Path())
		}
	}
	return paths
}

// Start returns the point at the beginning of the first leaf below p.
func (d *Document) Start(p Path) (Point, bool) {
	leaves := d.LeavesBelow(p)
	if len(leaves) == 0 {
		return Point{}, false
	}
	return Point{Path: leaves[0]}, true
}

// End returns the point at the end of the last leaf below p.
func (d *Document) End(p Path) (Point, bool) {
	leaves := d.LeavesBelow(p)
	if len(leaves) == 0 {
		return Point{}, false
	}
	last := leaves[len(leaves)-1]
	return Point{Path: last, Offset: len(d.MustResolve(last).text)}, true
}

// Edges returns the selection spanning the complete sub-tree at p.
func (d *Document) Edges(p Path) (Selection, bool) {
	start, ok1 := d.Start(p)
	end, ok2 := d.End(p)
	if !ok1 || !ok2 {
		return Selection{}, false
	}
	return Selection{Anchor: start, Focus: end}, true
}

// Count returns the number of nodes in the document, including the root.
func (d *Document) Count() int {
	return d.root.Count()
}
