package cssdoc

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/cssed/tree"
)

// Attrs are the token attributes of Property and Value nodes.
//
// Committed is set once the text of a node has been validated as a known
// property name (for properties) or as a legal value of the owning property
// (for values). Owner is the committed property name a value belongs to.
// EditText holds the previously committed text after a token has been
// re-entered for editing; it is cleared when the token commits again.
type Attrs struct {
	Committed bool
	Owner     string
	EditText  string
}

// Node is a node of a stylesheet document.
type Node struct {
	tree.Node[*Node] // we build on top of general purpose tree
	id               uint64
	kind             Kind
	text             string
	attrs            Attrs
}

var lastID uint64

func newNode(kind Kind, text string) *Node {
	n := &Node{kind: kind, text: text}
	n.id = atomic.AddUint64(&lastID, 1)
	n.Payload = n // Payload will always reference the node itself
	return n
}

// Of gets the document node from a generic tree node.
func Of(n *tree.Node[*Node]) *Node {
	if n == nil {
		return nil
	}
	return n.Payload
}

// ID is a process-wide unique identifier of a node. It is stable across
// structural edits and survives undo.
func (n *Node) ID() uint64 {
	return n.id
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Text returns the raw text of a leaf. Container nodes have no text.
func (n *Node) Text() string {
	return n.text
}

// Attrs returns the token attributes.
func (n *Node) Attrs() Attrs {
	return n.attrs
}

// Committed is a shortcut for n.Attrs().Committed.
func (n *Node) Committed() bool {
	return n.attrs.Committed
}

// WithAttrs sets the attributes of a detached node. It is meant for
// constructing trees; nodes within a document are changed with
// Document.SetAttrs.
func (n *Node) WithAttrs(a Attrs) *Node {
	n.attrs = a
	return n
}

// ParentNode returns the parent document node or nil.
func (n *Node) ParentNode() *Node {
	return Of(n.Parent())
}

// ChildNode returns the i-th child, or nil.
func (n *Node) ChildNode(i int) *Node {
	ch, ok := n.Child(i)
	if !ok {
		return nil
	}
	return Of(ch)
}

// ChildNodes returns the children of n.
func (n *Node) ChildNodes() []*Node {
	children := n.Children()
	r := make([]*Node, len(children))
	for i, ch := range children {
		r[i] = Of(ch)
	}
	return r
}

// ChildOfKind returns the first child of a given kind.
func (n *Node) ChildOfKind(k Kind) (*Node, int) {
	for i, ch := range n.ChildNodes() {
		if ch.kind == k {
			return ch, i
		}
	}
	return nil, -1
}

// IsEmpty is true for leaves without text and for declarations with an
// empty, uncommitted property and value.
func (n *Node) IsEmpty() bool {
	if n.kind.IsLeaf() {
		return n.text == "" && !n.attrs.Committed
	}
	if n.kind == Declaration {
		for _, ch := range n.ChildNodes() {
			if !ch.IsEmpty() {
				return false
			}
		}
		return true
	}
	return n.ChildCount() == 0
}

// Clone returns a deep copy of n, detached from any parent. Node IDs are
// preserved, therefore a clone must not live in the same tree as its
// original.
func (n *Node) Clone() *Node {
	c := &Node{id: n.id, kind: n.kind, text: n.text, attrs: n.attrs}
	c.Payload = c
	for _, ch := range n.ChildNodes() {
		c.AddChild(&ch.Clone().Node)
	}
	return c
}

// Count returns the number of nodes of the sub-tree rooted at n.
func (n *Node) Count() int {
	nodes, _ := tree.NewWalker(&n.Node).BottomUp(tree.CountNodes[*Node]).Promise()()
	return len(nodes)
}

func (n *Node) String() string {
	if n.kind.IsLeaf() {
		s := fmt.Sprintf("%s %q", n.kind, n.text)
		if n.attrs.Committed {
			s += " ✓"
		}
		if n.attrs.Owner != "" {
			s += " owner=" + n.attrs.Owner
		}
		return s
	}
	return n.kind.String()
}

// --- Constructors ----------------------------------------------------------

// NewSelector creates a selector leaf.
func NewSelector(text string) *Node { return newNode(Selector, text) }

// NewPrelude creates an at-rule prelude leaf, e.g. "@media print".
func NewPrelude(text string) *Node { return newNode(Prelude, text) }

// NewProperty creates an uncommitted property leaf.
func NewProperty(text string) *Node { return newNode(Property, text) }

// NewValue creates an uncommitted value leaf without owner.
func NewValue(text string) *Node { return newNode(Value, text) }

// NewText creates a stray text node.
func NewText(text string) *Node { return newNode(Text, text) }

// NewDeclaration creates a declaration "prop: value".
func NewDeclaration(prop, value string) *Node {
	d := newNode(Declaration, "")
	d.AddChild(&NewProperty(prop).Node)
	d.AddChild(&NewValue(value).Node)
	return d
}

// NewBlock creates a block holding declarations. The block may be empty.
func NewBlock(decls ...*Node) *Node {
	return container(Block, decls)
}

// NewAtBlock creates an at-rule block holding rules. The block may be empty.
func NewAtBlock(rules ...*Node) *Node {
	return container(AtBlock, rules)
}

// NewRule creates a rule. Without declarations, the block receives an
// empty placeholder declaration.
func NewRule(selector string, decls ...*Node) *Node {
	if len(decls) == 0 {
		decls = []*Node{NewDeclaration("", "")}
	}
	r := newNode(Rule, "")
	r.AddChild(&NewSelector(selector).Node)
	r.AddChild(&NewBlock(decls...).Node)
	return r
}

// NewAtRule creates an at-rule. Without rules, the at-block receives an
// empty placeholder rule.
func NewAtRule(prelude string, rules ...*Node) *Node {
	if len(rules) == 0 {
		rules = []*Node{NewRule("")}
	}
	a := newNode(AtRule, "")
	a.AddChild(&NewPrelude(prelude).Node)
	a.AddChild(&NewAtBlock(rules...).Node)
	return a
}

// NewNode creates an empty node of any kind. Containers are created
// without children.
func NewNode(kind Kind) *Node {
	return newNode(kind, "")
}

func container(kind Kind, children []*Node) *Node {
	c := newNode(kind, "")
	for _, ch := range children {
		c.AddChild(&ch.Node)
	}
	return c
}
