/*
Package cssdoc implements the document tree of a structured CSS stylesheet.

Overview

A document is an ordered forest of rules and at-rules, held below an
invisible root node:

   Root
    ├── Rule
    │    ├── Selector  "#main"
    │    └── Block
    │         └── Declaration
    │              ├── Property  "border"   {committed}
    │              └── Value     "1px solid black" {owner=border}
    └── AtRule
         ├── Prelude   "@media (min-width: 900px)"
         └── AtBlock
              └── Rule …

Nodes are addressed by paths (package tree), and every structural edit is
done through a small set of path-based primitives on type Document.
Each primitive reports an Op, which clients may observe (e.g., to rebase
cursor positions) or journal (e.g., for undo).

In a fully object oriented programming language we would subclass the
generic tree type, but in Go we resort to composition, thus including a
generic tree node in every document node. Node.Payload always points back
to the document node itself.

Status

The tree model does not enforce its structural invariants; this is the job
of package normalize. Primitives called with stale paths panic, as this is
a programming error of the caller.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssdoc

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.doc'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.doc")
}

// ErrStalePath is the panic value for primitives called with a path which
// does not address a node of the document.
var ErrStalePath = errors.New("path does not address a document node")
