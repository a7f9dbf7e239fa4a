/*
Package tree implements an all-purpose tree type.

There are many tree implementations around. This one supports trees
of a fairly simple structure: every node carries a payload and an ordered
slice of children. Nodes may be addressed by a Path, i.e. the sequence of
child indices leading from the root to the node. Paths are the currency of
the editing layers built on top of this package, as they are explicit,
comparable and serializable.

Walkers

We support a set of search & filter functions on tree nodes. Clients will chain
these to perform tasks on nodes.
You may think of the set of operations to form a small
Domain Specific Language (DSL). This is similar in concept to JQuery, but
of course with a much smaller set of functions.

Navigation functions:

   Parent()                     // find parent for all selected nodes
   AncestorWith(predicate)      // find ancestor with a given predicate
   AncestorOrSelfWith(predicate)
   DescendentsWith(predicate)   // find descendets with a given predicate
   TopDown(action)              // traverse all nodes top down
   BottomUp(action)             // traverse all nodes in post-order

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.tree'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.tree")
}
