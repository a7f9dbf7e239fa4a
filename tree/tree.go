package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
)

// ErrInvalidFilter is thrown if a walker step is defunct.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrEmptyTree is thrown if a Walker is called with an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// Walker holds information for operating on trees: finding nodes and
// doing work on them. Clients usually create a Walker for a (sub-)tree
// to search for a selection of nodes matching certain criteria, and
// then perform some operation on this selection.
//
// A typical usage of a Walker looks like this ("FindNodesAndDoSomething()" is
// a placeholder for a sequence of function calls, see below):
//
//    w := NewWalker(node)
//    nodes, err := w.FindNodesAndDoSomething(...).Promise()()
//
// Every step operates synchronously on the selection of the previous
// step. Steps are applied in the order they are chained; after the first
// error subsequent steps are skipped and the error is reported by Promise.
//
// Actions must not restructure the tree while it is walked. Clients
// wanting to edit the tree collect nodes first and mutate afterwards.
type Walker[T comparable] struct {
	initial   *Node[T]   // initial node of (sub-)tree
	selection []*Node[T] // current selection
	err       error      // first error occured
}

// NewWalker creates a Walker for the initial node of a (sub-)tree.
// The first subsequent call to a node filter function will have this
// initial node as input.
//
// If initial is nil, NewWalker will return a nil-Walker, resulting
// in a NOP-chain of operations, resulting in an empty set of nodes
// and an error (ErrEmptyTree).
func NewWalker[T comparable](initial *Node[T]) *Walker[T] {
	if initial == nil {
		return nil
	}
	return &Walker[T]{initial: initial, selection: []*Node[T]{initial}}
}

// Promise returns a function delivering the final selection together with
// the first error that occured. The name is kept from the times when walks
// ran concurrently; today the result is available immediately.
func (w *Walker[T]) Promise() func() ([]*Node[T], error) {
	if w == nil {
		return func() ([]*Node[T], error) {
			return nil, ErrEmptyTree
		}
	}
	selection, err := w.selection, w.err
	return func() ([]*Node[T], error) {
		return selection, err
	}
}

// ----------------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree.
// Is is used as an argument for various Walker functions to
// collect a selection of nodes.
// test is the node under test, node is the input node.
type Predicate[T comparable] func(test *Node[T], node *Node[T]) (match *Node[T], err error)

// NodeIsLeaf is a predicate to match leafs of a tree.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(test *Node[T], node *Node[T]) (match *Node[T], err error) {
		if test.ChildCount() == 0 {
			return test, nil
		}
		return nil, nil
	}
}

// step replaces the selection by the concatenated outputs of f.
func (w *Walker[T]) step(f func(*Node[T]) ([]*Node[T], error)) *Walker[T] {
	if w == nil || w.err != nil {
		return w
	}
	var next []*Node[T]
	for _, n := range w.selection {
		out, err := f(n)
		if err != nil {
			tracer().Debugf("walker step stopped at %v: %v", n, err)
			w.err = err
			break
		}
		next = append(next, out...)
	}
	w.selection = next
	return w
}

// Parent selects the parents of all selected nodes.
// The root node does not produce a result.
//
// If w is nil, Parent will return nil.
func (w *Walker[T]) Parent() *Walker[T] {
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		if p := node.Parent(); p != nil {
			return []*Node[T]{p}, nil
		}
		return nil, nil
	})
}

// AncestorWith finds an ancestor matching the given predicate.
// The search does not include the start node.
//
// If w is nil, AncestorWith will return nil.
func (w *Walker[T]) AncestorWith(predicate Predicate[T]) *Walker[T] {
	if w != nil && predicate == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		for anc := node.Parent(); anc != nil; anc = anc.Parent() {
			match, err := predicate(anc, node)
			if err != nil {
				return nil, err
			}
			if match != nil {
				return []*Node[T]{match}, nil
			}
		}
		return nil, nil // no matching ancestor found, not an error
	})
}

// AncestorOrSelfWith is like AncestorWith, but tests the start node first.
func (w *Walker[T]) AncestorOrSelfWith(predicate Predicate[T]) *Walker[T] {
	if w != nil && predicate == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		for anc := node; anc != nil; anc = anc.Parent() {
			match, err := predicate(anc, node)
			if err != nil {
				return nil, err
			}
			if match != nil {
				return []*Node[T]{match}, nil
			}
		}
		return nil, nil
	})
}

// DescendentsWith finds descendents matching a predicate, in document
// order. The search does not include the start node.
//
// If w is nil, DescendentsWith will return nil.
func (w *Walker[T]) DescendentsWith(predicate Predicate[T]) *Walker[T] {
	if w != nil && predicate == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		var matches []*Node[T]
		var descend func(*Node[T]) error
		descend = func(n *Node[T]) error {
			for _, ch := range n.children {
				match, err := predicate(ch, node)
				if err != nil {
					return err
				}
				if match != nil {
					matches = append(matches, match)
				}
				if err = descend(ch); err != nil {
					return err
				}
			}
			return nil
		}
		err := descend(node)
		return matches, err
	})
}

// Action is a function type to operate on tree nodes.
// Resulting nodes will be part of the next selection, if
// no error occured.
type Action[T comparable] func(n *Node[T], parent *Node[T], position int) (*Node[T], error)

// TopDown traverses the sub-trees of the selection, starting at (and
// including) the selected nodes. The traversal guarantees that parents are
// always processed before their children.
//
// If the action function returns an error for a node,
// the walk is aborted.
//
// If w is nil, TopDown will return nil.
func (w *Walker[T]) TopDown(action Action[T]) *Walker[T] {
	if w != nil && action == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		var results []*Node[T]
		var visit func(n, parent *Node[T], position int) error
		visit = func(n, parent *Node[T], position int) error {
			r, err := action(n, parent, position)
			if err != nil {
				return err
			}
			if r != nil {
				results = append(results, r)
			}
			for i, ch := range n.children {
				if err := visit(ch, n, i); err != nil {
					return err
				}
			}
			return nil
		}
		err := visit(node, node.Parent(), positionOf(node))
		return results, err
	})
}

// BottomUp traverses the sub-trees of the selection in post-order,
// including the selected nodes. The traversal guarantees that parents are
// not processed before all of their children.
//
// If the action function returns an error for a node,
// the walk is aborted.
//
// If w is nil, BottomUp will return nil.
func (w *Walker[T]) BottomUp(action Action[T]) *Walker[T] {
	if w != nil && action == nil {
		w.err = ErrInvalidFilter
		return w
	}
	return w.step(func(node *Node[T]) ([]*Node[T], error) {
		var results []*Node[T]
		var visit func(n, parent *Node[T], position int) error
		visit = func(n, parent *Node[T], position int) error {
			for i, ch := range n.children {
				if err := visit(ch, n, i); err != nil {
					return err
				}
			}
			r, err := action(n, parent, position)
			if err != nil {
				return err
			}
			if r != nil {
				results = append(results, r)
			}
			return nil
		}
		err := visit(node, node.Parent(), positionOf(node))
		return results, err
	})
}

func positionOf[T comparable](node *Node[T]) int {
	if p := node.Parent(); p != nil {
		return p.IndexOfChild(node)
	}
	return 0
}

// CountNodes is an action for bottom-up processing which may be used to
// count the nodes of a tree: every node is selected.
func CountNodes[T comparable](n *Node[T], parent *Node[T], position int) (*Node[T], error) {
	return n, nil
}
