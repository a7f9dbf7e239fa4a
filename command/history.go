package command

import "github.com/npillmayer/cssed/cssdoc"

// Batch is the unit of undo: the ops applied while handling one intent,
// together with the selections before and after.
type Batch struct {
	Intent IntentKind
	Ops    []cssdoc.Op
	Before cssdoc.Selection
	After  cssdoc.Selection
}

// History holds undoable and redoable batches. A depth ≤ 0 means unbounded.
type History struct {
	undo  []Batch
	redo  []Batch
	depth int
}

// NewHistory creates an empty history.
func NewHistory(depth int) *History {
	return &History{depth: depth}
}

// Push adds a batch and clears the redo stack.
func (h *History) Push(b Batch) {
	h.redo = h.redo[:0]
	h.push(b)
}

func (h *History) push(b Batch) {
	h.undo = append(h.undo, b)
	if h.depth > 0 && len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
}

// CanUndo is true if there is a batch to undo.
func (h *History) CanUndo() bool {
	return h != nil && len(h.undo) > 0
}

// CanRedo is true if there is a batch to redo.
func (h *History) CanRedo() bool {
	return h != nil && len(h.redo) > 0
}

// Len returns the number of undoable batches.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.undo)
}

// Clear drops all batches.
func (h *History) Clear() {
	if h != nil {
		h.undo, h.redo = nil, nil
	}
}

func (h *History) popUndo() (Batch, bool) {
	if !h.CanUndo() {
		return Batch{}, false
	}
	b := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, b)
	return b, true
}

func (h *History) popRedo() (Batch, bool) {
	if !h.CanRedo() {
		return Batch{}, false
	}
	b := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.push(b)
	return b, true
}
