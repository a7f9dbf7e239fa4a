/*
Package command implements the cursor-aware command layer of the stylesheet
editor.

Hosts translate raw input events into intents (see KeyMap) and hand them to
Editor.Dispatch. The editor interprets each intent according to the node
the cursor is in, applies the resulting edit to the document, and
stabilizes the document afterwards: the normalizer restores structural
invariants, the selection is re-resolved, and the token engine promotes or
demotes tokens. Dispatch returns whether the intent has been consumed,
i.e. whether the host should suppress its default behaviour.

If suggestions are active for the focused property or value, the
suggestion controller is offered the intent first.

Editing is single-threaded: an Editor must not be used concurrently.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package command

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.command'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.command")
}
