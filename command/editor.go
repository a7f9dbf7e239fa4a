package command

import (
	"io"

	"github.com/npillmayer/cssed/codec"
	"github.com/npillmayer/cssed/config"
	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/normalize"
	"github.com/npillmayer/cssed/oracle"
	"github.com/npillmayer/cssed/suggest"
	"github.com/npillmayer/cssed/token"
)

// maxStabilizeRounds bounds the normalize/token cycle after an edit.
const maxStabilizeRounds = 4

// Editor is an editing session on a single stylesheet document.
type Editor struct {
	doc        *cssdoc.Document
	sel        cssdoc.Selection
	stale      [2]bool // anchor resp. focus lost their leaf during an edit
	focus      *suggest.Controller
	tokens     *token.Engine
	suggest    *suggest.Engine
	normalizer *normalize.Normalizer
	history    *History
	cancel     func()
}

// New creates an editor on the seed document. If conf is nil, the default
// configuration is used.
func New(o oracle.Oracle, conf *config.Config) *Editor {
	if conf == nil {
		conf = config.Default()
	}
	tokens := token.New(o)
	sugg := suggest.New(o, tokens)
	sugg.Limit = conf.Suggestions.Limit
	sugg.MinPropertyPrefix = conf.Suggestions.MinPropertyPrefix
	ed := &Editor{
		tokens:  tokens,
		suggest: sugg,
		normalizer: &normalize.Normalizer{
			AutoWrap:        conf.Normalizer.AutoWrap,
			IterationFactor: conf.Normalizer.IterationFactor,
		},
	}
	if conf.History.Enabled {
		ed.history = NewHistory(conf.History.Depth)
	}
	ed.Load(cssdoc.Seed())
	return ed
}

// Document returns the document being edited. Clients must not modify it
// directly.
func (ed *Editor) Document() *cssdoc.Document {
	return ed.doc
}

// Selection returns the current selection.
func (ed *Editor) Selection() cssdoc.Selection {
	return ed.sel
}

// Suggestions returns the suggestion controller of the focused property or
// value, or nil.
func (ed *Editor) Suggestions() *suggest.Controller {
	return ed.focus
}

// History returns the undo history, or nil if history is switched off.
func (ed *Editor) History() *History {
	return ed.history
}

// Load replaces the document wholesale. The history is cleared and the
// cursor is placed at the start of the document.
func (ed *Editor) Load(d *cssdoc.Document) {
	if ed.cancel != nil {
		ed.cancel()
	}
	ed.doc = d
	ed.cancel = d.Observe(ed.observe)
	ed.focus = nil
	ed.history.Clear()
	ed.normalizer.Normalize(d)
	start, _ := d.Start(cssdoc.Path{})
	ed.sel = cssdoc.Selection{Anchor: start, Focus: start}
	ed.stale = [2]bool{}
	ed.stabilize()
	tracer().Infof("editor: loaded document with %d nodes", d.Count())
}

// Import parses CSS source and replaces the document. On error the current
// document is left untouched.
func (ed *Editor) Import(src string) error {
	d, err := codec.Import(src)
	if err != nil {
		return err
	}
	ed.Load(d)
	return nil
}

// ImportHTML replaces the document by the style sheets of an HTML page.
func (ed *Editor) ImportHTML(r io.Reader) error {
	d, err := codec.ImportHTML(r)
	if err != nil {
		return err
	}
	ed.Load(d)
	return nil
}

// Export renders the document as CSS text.
func (ed *Editor) Export() string {
	return codec.Export(ed.doc)
}

// Levels returns the kinds of the nodes between the root and the leaf the
// selection focus is in, outermost first.
func (ed *Editor) Levels() []cssdoc.Kind {
	p := ed.sel.Focus.Path
	levels := make([]cssdoc.Kind, 0, len(p))
	for i := 1; i <= len(p); i++ {
		n, ok := ed.doc.Resolve(p[:i])
		if !ok {
			break
		}
		levels = append(levels, n.Kind())
	}
	return levels
}

// --- Dispatch --------------------------------------------------------------

// Dispatch handles an intent and reports whether it has been consumed. A
// consumed intent's default behaviour should be suppressed by the host.
func (ed *Editor) Dispatch(in Intent) bool {
	tracer().Debugf("editor: %v at %v", in, ed.sel)
	switch in.Kind {
	case Undo:
		return ed.Undo()
	case Redo:
		return ed.Redo()
	}
	fc := ed.focus
	return ed.run(in.Kind, func() bool {
		if consumed, handled := ed.offerSuggestions(fc, in); handled {
			return consumed
		}
		return ed.handle(in)
	})
}

func (ed *Editor) handle(in Intent) bool {
	switch in.Kind {
	case InsertText:
		return ed.insertText(in.Text)
	case Break:
		return ed.breakLine()
	case DeleteBackward:
		return ed.deleteBackward()
	case DeleteForward:
		return ed.deleteForward()
	case Tab:
		return ed.tab(1)
	case ShiftTab:
		return ed.tab(-1)
	case Up:
		return ed.vertical(-1)
	case Down:
		return ed.vertical(1)
	case MoveDeclUp:
		return ed.moveUnit(cssdoc.Kinds(cssdoc.Declaration), -1)
	case MoveDeclDown:
		return ed.moveUnit(cssdoc.Kinds(cssdoc.Declaration), 1)
	case MoveRuleUp:
		return ed.moveUnit(cssdoc.Kinds(cssdoc.Rule, cssdoc.AtRule), -1)
	case MoveRuleDown:
		return ed.moveUnit(cssdoc.Kinds(cssdoc.Rule, cssdoc.AtRule), 1)
	case RotatePrev:
		return ed.rotate(-1)
	case RotateNext:
		return ed.rotate(1)
	case PrevSelector:
		return ed.jumpSelector(-1)
	case NextSelector:
		return ed.jumpSelector(1)
	case InsertRule:
		return ed.insertRule()
	case InsertAtRule:
		return ed.insertAtRule()
	case DeleteUnit:
		return ed.deleteUnit()
	case UnwrapAtRule:
		return ed.unwrapAtRule()
	case Escape:
		return ed.escape()
	case SelectAll:
		return ed.selectAll()
	case EnterEdit:
		return ed.enterEdit()
	case Select:
		return ed.place(in.Selection)
	}
	return false
}

// offerSuggestions gives an active suggestion controller the first refusal
// of an intent. handled is false if the intent should fall through to the
// regular handlers.
func (ed *Editor) offerSuggestions(fc *suggest.Controller, in Intent) (consumed, handled bool) {
	if !fc.Active() {
		return false, false
	}
	switch in.Kind {
	case Break, Accept, Tab:
		i, _ := fc.Selected()
		return ed.commitSuggestion(fc, i), true
	case Pick:
		return ed.commitSuggestion(fc, in.Index), true
	case Up:
		if fc.Cycle(-1) {
			return true, true
		}
	case Down:
		if fc.Cycle(1) {
			return true, true
		}
	case Escape:
		return fc.Dismiss(), true
	}
	return false, false
}

func (ed *Editor) commitSuggestion(fc *suggest.Controller, i int) bool {
	p, _, ok := ed.caret()
	if !ok {
		return false
	}
	pt, ok := fc.Commit(ed.doc, p, i)
	if ok {
		ed.setCursor(pt.Path, pt.Offset)
	}
	return ok
}

// run executes a handler as one undoable batch and stabilizes the document
// afterwards.
func (ed *Editor) run(kind IntentKind, handler func() bool) bool {
	stop := ed.doc.Record()
	before := ed.sel
	consumed := handler()
	ed.stabilize()
	ops := stop()
	if len(ops) > 0 && ed.history != nil {
		ed.history.Push(Batch{Intent: kind, Ops: ops, Before: before, After: ed.sel})
	}
	return consumed
}

// Undo reverts the most recent batch. It returns false if there is nothing
// to undo.
func (ed *Editor) Undo() bool {
	b, ok := ed.history.popUndo()
	if !ok {
		return false
	}
	tracer().Debugf("editor: undo %s (%d ops)", b.Intent, len(b.Ops))
	for i := len(b.Ops) - 1; i >= 0; i-- {
		ed.doc.Apply(b.Ops[i].Inverse())
	}
	ed.restore(b.Before)
	return true
}

// Redo re-applies the most recently undone batch.
func (ed *Editor) Redo() bool {
	b, ok := ed.history.popRedo()
	if !ok {
		return false
	}
	tracer().Debugf("editor: redo %s (%d ops)", b.Intent, len(b.Ops))
	for _, op := range b.Ops {
		ed.doc.Apply(op)
	}
	ed.restore(b.After)
	return true
}

func (ed *Editor) restore(sel cssdoc.Selection) {
	ed.sel = sel
	ed.stale = [2]bool{}
	ed.stabilize()
}

// --- Stabilization ---------------------------------------------------------

// stabilize restores the document invariants after an edit: normalize,
// re-resolve the selection, update tokens. Repeats until nothing changes.
func (ed *Editor) stabilize() {
	for round := 0; round < maxStabilizeRounds; round++ {
		changed := ed.normalizer.Normalize(ed.doc)
		ed.fixSelection()
		if ed.tokens.Update(ed.doc, ed.focusPath()) {
			changed = true
		}
		if !changed {
			break
		}
	}
	ed.refreshFocus()
}

// observe keeps the selection in sync with primitive operations. Points
// whose leaf has been removed are frozen at the removed path and resolved
// by fixSelection.
func (ed *Editor) observe(op cssdoc.Op) {
	ed.sel.Anchor, ed.stale[0] = transformPoint(ed.sel.Anchor, ed.stale[0], op)
	ed.sel.Focus, ed.stale[1] = transformPoint(ed.sel.Focus, ed.stale[1], op)
}

func transformPoint(pt cssdoc.Point, stale bool, op cssdoc.Op) (cssdoc.Point, bool) {
	if stale {
		return pt, true
	}
	q, ok := pt.Transform(op)
	if !ok {
		return cssdoc.Point{Path: op.Path.Copy()}, true
	}
	return q, false
}

func (ed *Editor) fixSelection() {
	ed.sel.Anchor = ed.fixPoint(ed.sel.Anchor, ed.stale[0])
	ed.sel.Focus = ed.fixPoint(ed.sel.Focus, ed.stale[1])
	ed.stale = [2]bool{}
}

func (ed *Editor) fixPoint(pt cssdoc.Point, stale bool) cssdoc.Point {
	if !stale {
		if n, ok := ed.doc.Resolve(pt.Path); ok {
			if n.Kind().IsLeaf() {
				return cssdoc.Point{Path: pt.Path, Offset: clamp(pt.Offset, len(n.Text()))}
			}
			if start, ok := ed.doc.Start(pt.Path); ok {
				return start
			}
		}
	}
	return ed.nearestLeaf(pt.Path)
}

// nearestLeaf finds a replacement for a point whose leaf is gone: the
// first leaf at or after p within p's former parent, else the last leaf
// before p within that parent, else the nearest leaf in the document.
func (ed *Editor) nearestLeaf(p cssdoc.Path) cssdoc.Point {
	leaves := ed.doc.Leaves()
	if len(leaves) == 0 {
		return cssdoc.Point{}
	}
	parent := p.Parent()
	for _, l := range leaves {
		if parent.IsAncestorOf(l) && l.Compare(p) >= 0 {
			return cssdoc.Point{Path: l}
		}
	}
	for i := len(leaves) - 1; i >= 0; i-- {
		if parent.IsAncestorOf(leaves[i]) && leaves[i].Compare(p) < 0 {
			return ed.endOf(leaves[i])
		}
	}
	for _, l := range leaves {
		if l.Compare(p) >= 0 {
			return cssdoc.Point{Path: l}
		}
	}
	return ed.endOf(leaves[len(leaves)-1])
}

func (ed *Editor) refreshFocus() {
	_, n, ok := ed.caret()
	if !ok || !n.Kind().IsToken() {
		ed.focus = nil
		return
	}
	if ed.focus != nil && ed.focus.NodeID() == n.ID() {
		ed.focus.Refresh(n)
		return
	}
	ed.focus = ed.suggest.Focus(n)
}

// --- Selection helpers -----------------------------------------------------

// caret returns the leaf of a collapsed selection.
func (ed *Editor) caret() (cssdoc.Path, *cssdoc.Node, bool) {
	if ed.stale[1] || !ed.sel.IsCollapsed() {
		return nil, nil, false
	}
	n, ok := ed.doc.Resolve(ed.sel.Focus.Path)
	if !ok || !n.Kind().IsLeaf() {
		return nil, nil, false
	}
	return ed.sel.Focus.Path, n, true
}

// focusPath is the path of the leaf the token engine must not promote.
func (ed *Editor) focusPath() cssdoc.Path {
	p, _, ok := ed.caret()
	if !ok {
		return nil
	}
	return p
}

// above finds the nearest node of one of kinds at or above the selection
// focus.
func (ed *Editor) above(kinds ...cssdoc.Kind) (cssdoc.Path, bool) {
	return ed.doc.NearestAbove(ed.sel.Focus.Path, cssdoc.Kinds(kinds...))
}

func (ed *Editor) setCursor(p cssdoc.Path, offset int) {
	ed.sel = cssdoc.Cursor(p, offset)
	ed.stale = [2]bool{}
}

func (ed *Editor) endOf(p cssdoc.Path) cssdoc.Point {
	n := ed.doc.MustResolve(p)
	return cssdoc.Point{Path: p.Copy(), Offset: len(n.Text())}
}

// cursorToEnd places the cursor at the end of the first leaf below p.
func (ed *Editor) cursorToEnd(p cssdoc.Path) {
	leaves := ed.doc.LeavesBelow(p)
	if len(leaves) == 0 {
		return
	}
	pt := ed.endOf(leaves[0])
	ed.setCursor(pt.Path, pt.Offset)
}

// leafBefore returns the last leaf preceding the sub-tree at p.
func (ed *Editor) leafBefore(p cssdoc.Path) (cssdoc.Path, bool) {
	leaves := ed.doc.Leaves()
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Compare(p) < 0 && !p.IsAncestorOrSelf(leaves[i]) {
			return leaves[i], true
		}
	}
	return nil, false
}

func clamp(x, max int) int {
	if x < 0 {
		return 0
	}
	if x > max {
		return max
	}
	return x
}
