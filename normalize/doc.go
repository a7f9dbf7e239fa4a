/*
Package normalize restores the structural invariants of a stylesheet
document after edits.

A normalized document satisfies:

  - the root holds rules and at-rules only
  - a rule has exactly a selector and a block, in this order
  - an at-rule has exactly a prelude and an at-block, in this order
  - a block holds declarations, an at-block holds rules, and neither is empty
  - a declaration has exactly a property and a value, in this order
  - leaves have no children and stray text nodes are gone

Normalization is an explicit fixed-point loop: find the first applicable
repair in a bottom-up scan, apply it, scan again. The normalizer never
fails. It only repairs or deletes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package normalize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.normalize'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.normalize")
}
