package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

/*
We manage a tree of mutable nodes. Each nodes carries a payload of type parameter T.
Nodes maintain a slice of children.

Editing happens on a single goroutine, one user intent at a time. Therefore
nodes do not carry any locks. Clients needing concurrent access have to
synchronize on their own.
*/

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]   // parent node of this node
	children []*Node[T] // children nodes, never containing nil
	Payload  T          // nodes may carry a payload of arbitrary type
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", node.ChildCount(), node.Payload)
}

// AddChild appends a new child node.
// The newly inserted node is connected to this node as its parent.
// It returns the parent node to allow for chaining.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	if ch != nil {
		ch.Isolate()
		node.children = append(node.children, ch)
		ch.parent = node
	}
	return node
}

// InsertChildAt inserts a new child node into the tree.
// The newly inserted node is connected to this node as its parent.
// The child is set at a given position in relation to other children,
// shifting children at later positions. Positions beyond the end of the
// children slice append the child.
// It returns the parent node to allow for chaining.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) *Node[T] {
	if ch == nil {
		return node
	}
	ch.Isolate()
	if i < 0 {
		i = 0
	}
	if i >= len(node.children) {
		node.children = append(node.children, ch)
	} else {
		node.children = append(node.children, nil) // make room for one child
		copy(node.children[i+1:], node.children[i:])
		node.children[i] = ch
	}
	ch.parent = node
	return node
}

// RemoveChildAt removes the child at position i and returns it.
// If there is no such child, nil is returned.
func (node *Node[T]) RemoveChildAt(i int) *Node[T] {
	if i < 0 || i >= len(node.children) {
		return nil
	}
	ch := node.children[i]
	copy(node.children[i:], node.children[i+1:])
	node.children[len(node.children)-1] = nil
	node.children = node.children[:len(node.children)-1]
	ch.parent = nil
	return ch
}

// Parent returns the parent node or nil (for the root of the tree).
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// Isolate removes a node from its parent.
// Isolate returns the isolated node.
func (node *Node[T]) Isolate() *Node[T] {
	if node != nil && node.parent != nil {
		node.parent.RemoveChildAt(node.parent.IndexOfChild(node))
	}
	return node
}

// ChildCount returns the number of children-nodes for a node.
func (node *Node[T]) ChildCount() int {
	return len(node.children)
}

// Child returns the n-th child of a node.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	if n < 0 || len(node.children) <= n {
		return nil, false
	}
	return node.children[n], true
}

// Children returns a copy of the slice of children of a node.
func (node *Node[T]) Children() []*Node[T] {
	children := make([]*Node[T], len(node.children))
	copy(children, node.children)
	return children
}

// IndexOfChild returns the index of a child within the list of children
// of its parent. ch may not be nil.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	for i, child := range node.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// Root returns the topmost ancestor of node.
func (node *Node[T]) Root() *Node[T] {
	r := node
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the path of node, starting from the root of its tree.
// The root itself has the empty path.
func (node *Node[T]) Path() Path {
	var p Path
	for n := node; n.parent != nil; n = n.parent {
		p = append(p, n.parent.IndexOfChild(n))
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Descend follows path p downwards from node. It returns false if the path
// does not address a node.
func (node *Node[T]) Descend(p Path) (*Node[T], bool) {
	n := node
	for _, i := range p {
		ch, ok := n.Child(i)
		if !ok {
			return nil, false
		}
		n = ch
	}
	return n, true
}
