package command

import (
	"unicode/utf8"

	"github.com/npillmayer/cssed/cssdoc"
)

// --- Text entry ------------------------------------------------------------

func (ed *Editor) insertText(s string) bool {
	if !ed.sel.IsCollapsed() {
		ed.deleteSelection()
		ed.stabilize()
	}
	p, n, ok := ed.caret()
	if !ok {
		return false
	}
	if n.Committed() {
		tracer().Debugf("editor: refusing to type into committed %s", n.Kind())
		return true
	}
	off := clamp(ed.sel.Focus.Offset, len(n.Text()))
	t := n.Text()
	ed.doc.SetText(p, t[:off]+s+t[off:])
	ed.setCursor(p, off+len(s))
	return true
}

func (ed *Editor) deleteBackward() bool {
	if !ed.sel.IsCollapsed() {
		return ed.deleteSelection()
	}
	p, n, ok := ed.caret()
	if !ok {
		return false
	}
	if n.Committed() {
		if ed.tokens.EnterEdit(ed.doc, p) {
			ed.setCursor(p, len(n.Text()))
		}
		return true
	}
	off := clamp(ed.sel.Focus.Offset, len(n.Text()))
	if off > 0 {
		t := n.Text()
		_, size := utf8.DecodeLastRuneInString(t[:off])
		ed.doc.SetText(p, t[:off-size]+t[off:])
		ed.setCursor(p, off-size)
		return true
	}
	if n.Text() != "" {
		return true // never merge with the preceding leaf
	}
	var unit cssdoc.Path
	switch n.Kind() {
	case cssdoc.Selector, cssdoc.Prelude:
		unit, ok = ed.above(cssdoc.Rule, cssdoc.AtRule)
	case cssdoc.Property, cssdoc.Value:
		unit, ok = p.Parent(), true
	default:
		return true
	}
	if !ok {
		return true
	}
	ed.removeUnitBackward(unit)
	return true
}

// removeUnitBackward removes the sub-tree at p and moves the cursor to the
// end of the preceding leaf.
func (ed *Editor) removeUnitBackward(p cssdoc.Path) {
	prev, hasPrev := ed.leafBefore(p)
	ed.doc.Remove(p)
	if hasPrev {
		pt := ed.endOf(prev)
		ed.setCursor(pt.Path, pt.Offset)
	}
}

func (ed *Editor) deleteForward() bool {
	if !ed.sel.IsCollapsed() {
		return ed.deleteSelection()
	}
	p, n, ok := ed.caret()
	if !ok {
		return false
	}
	if n.Committed() {
		return true
	}
	off := clamp(ed.sel.Focus.Offset, len(n.Text()))
	t := n.Text()
	if off < len(t) {
		_, size := utf8.DecodeRuneInString(t[off:])
		ed.doc.SetText(p, t[:off]+t[off+size:])
		ed.setCursor(p, off)
	}
	return true
}

// deleteSelection deletes a range selection. Within a single leaf the
// selected text is deleted. If the selection spans the parts of a single
// declaration, rule or at-rule, that unit is deleted; if it spans several
// siblings, every unit it touches.
func (ed *Editor) deleteSelection() bool {
	start, end := ed.sel.Edges()
	if start.Path.Equal(end.Path) {
		n, ok := ed.doc.Resolve(start.Path)
		if !ok || !n.Kind().IsLeaf() || n.Committed() {
			return true
		}
		t := n.Text()
		from, to := clamp(start.Offset, len(t)), clamp(end.Offset, len(t))
		ed.doc.SetText(start.Path, t[:from]+t[to:])
		ed.setCursor(start.Path, from)
		return true
	}
	common := start.Path.Common(end.Path)
	ed.setCursor(start.Path, start.Offset)
	if n, ok := ed.doc.Resolve(common); ok && (n.Kind().IsEntry() || n.Kind() == cssdoc.Declaration) {
		tracer().Debugf("editor: delete selected %s %v", n.Kind(), common)
		ed.doc.Remove(common)
		return true
	}
	// common is a block, at-block or the root: remove the covered children
	depth := len(common)
	first, last := start.Path[depth], end.Path[depth]
	for i := last; i >= first; i-- {
		ed.doc.Remove(common.Child(i))
	}
	return true
}

// --- Structure -------------------------------------------------------------

// breakLine starts a new unit after the current one: a rule after a rule,
// an at-rule after an at-rule and a declaration after a declaration.
func (ed *Editor) breakLine() bool {
	p, n, ok := ed.caret()
	if !ok {
		return false
	}
	switch n.Kind() {
	case cssdoc.Selector:
		rule, ok := ed.above(cssdoc.Rule)
		if !ok {
			return false
		}
		ed.doc.Insert(rule.Next(), cssdoc.NewRule(""))
		ed.setCursor(rule.Next().Child(0), 0)
	case cssdoc.Prelude:
		at, ok := ed.above(cssdoc.AtRule)
		if !ok {
			return false
		}
		ed.doc.Insert(at.Next(), cssdoc.NewAtRule(""))
		ed.setCursor(at.Next().Child(0), 0)
	case cssdoc.Property, cssdoc.Value:
		decl := p.Parent()
		prop := ed.doc.MustResolve(decl.Child(0))
		if prop.Text() == "" {
			ed.setCursor(decl.Child(0), 0)
			return true
		}
		next := decl.Next()
		if sibling, ok := ed.doc.Resolve(next); !ok || !sibling.IsEmpty() {
			ed.doc.Insert(next, cssdoc.NewDeclaration("", ""))
		}
		ed.setCursor(next.Child(0), 0)
	default:
		return false
	}
	return true
}

func (ed *Editor) insertRule() bool {
	at := cssdoc.Path{0}
	if entry, ok := ed.above(cssdoc.Rule, cssdoc.AtRule); ok {
		at = entry.Next()
	}
	ed.doc.Insert(at, cssdoc.NewRule(""))
	ed.setCursor(at.Child(0), 0)
	return true
}

// insertAtRule inserts an at-rule after the top-level entry the cursor is
// in. At-rules do not nest.
func (ed *Editor) insertAtRule() bool {
	at := cssdoc.Path{0}
	if len(ed.sel.Focus.Path) > 0 {
		at = cssdoc.Path{ed.sel.Focus.Path[0] + 1}
	}
	if at.Last() > len(ed.doc.Entries()) {
		at = cssdoc.Path{len(ed.doc.Entries())}
	}
	ed.doc.Insert(at, cssdoc.NewAtRule(""))
	ed.setCursor(at.Child(0), 0)
	return true
}

// deleteUnit deletes the declaration the cursor is in, or else the rule or
// at-rule.
func (ed *Editor) deleteUnit() bool {
	unit, ok := ed.above(cssdoc.Declaration)
	if !ok {
		unit, ok = ed.above(cssdoc.Rule, cssdoc.AtRule)
	}
	if !ok {
		return false
	}
	tracer().Debugf("editor: delete unit %v", unit)
	ed.doc.Remove(unit)
	return true
}

// unwrapAtRule replaces the at-rule the cursor is in by its nested rules.
func (ed *Editor) unwrapAtRule() bool {
	at, ok := ed.above(cssdoc.AtRule)
	if !ok {
		return false
	}
	tracer().Debugf("editor: unwrap at-rule %v", at)
	ed.doc.Unwrap(at.Child(1))
	ed.doc.Remove(at.Child(0))
	ed.doc.Unwrap(at)
	return true
}

// moveUnit swaps the nearest unit of kinds with its previous (dir < 0) or
// next sibling. Moving beyond either end is a consumed no-op.
func (ed *Editor) moveUnit(kinds cssdoc.KindSet, dir int) bool {
	unit, ok := ed.doc.NearestAbove(ed.sel.Focus.Path, kinds)
	if !ok {
		return false
	}
	if dir < 0 {
		if unit.Last() > 0 {
			ed.doc.Move(unit, unit.Previous())
		}
		return true
	}
	parent := ed.doc.MustResolve(unit.Parent())
	if unit.Last() < parent.ChildCount()-1 {
		ed.doc.Move(unit, unit.Next())
	}
	return true
}

// --- Tokens ----------------------------------------------------------------

func (ed *Editor) rotate(dir int) bool {
	p, n, ok := ed.caret()
	if !ok || n.Kind() != cssdoc.Value {
		return false
	}
	if !ed.tokens.Rotate(ed.doc, p, dir) {
		return false
	}
	ed.setCursor(p, len(ed.doc.MustResolve(p).Text()))
	return true
}

func (ed *Editor) enterEdit() bool {
	p, n, ok := ed.caret()
	if !ok || !ed.tokens.EnterEdit(ed.doc, p) {
		return false
	}
	ed.setCursor(p, len(n.Text()))
	return true
}

// --- Navigation ------------------------------------------------------------

// tab moves to the end of the next (dir > 0) or previous editable leaf,
// skipping committed tokens.
func (ed *Editor) tab(dir int) bool {
	cur := ed.sel.Focus.Path
	leaves := ed.doc.Leaves()
	editable := func(p cssdoc.Path) bool {
		return ed.doc.MustResolve(p).Info().Editable
	}
	if dir > 0 {
		for _, l := range leaves {
			if l.Compare(cur) > 0 && editable(l) {
				ed.cursorToEnd(l)
				return true
			}
		}
		return false
	}
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Compare(cur) < 0 && editable(leaves[i]) {
			ed.cursorToEnd(leaves[i])
			return true
		}
	}
	return false
}

// vertical moves from a property or value to the same slot of the
// adjacent declaration. Elsewhere it is left to the host.
func (ed *Editor) vertical(dir int) bool {
	p, n, ok := ed.caret()
	if !ok || !n.Kind().IsToken() {
		return false
	}
	decl := p.Parent()
	target := decl.Next()
	if dir < 0 {
		if decl.Last() == 0 {
			return false
		}
		target = decl.Previous()
	}
	if _, ok := ed.doc.Resolve(target); !ok {
		return false
	}
	ed.cursorToEnd(target.Child(p.Last()))
	return true
}

// jumpSelector moves the cursor to the start of the previous or next
// selector or prelude.
func (ed *Editor) jumpSelector(dir int) bool {
	cur := ed.sel.Focus.Path
	var found cssdoc.Path
	for _, l := range ed.doc.Leaves() {
		k := ed.doc.MustResolve(l).Kind()
		if k != cssdoc.Selector && k != cssdoc.Prelude {
			continue
		}
		if dir > 0 && l.Compare(cur) > 0 {
			found = l
			break
		}
		if dir < 0 && l.Compare(cur) < 0 {
			found = l
		}
	}
	if found == nil {
		return false
	}
	ed.setCursor(found, 0)
	return true
}

// --- Selection -------------------------------------------------------------

// escape collapses a range selection to its anchor. Otherwise, inside a
// block it selects the selector or prelude the block belongs to.
func (ed *Editor) escape() bool {
	if !ed.sel.IsCollapsed() {
		ed.setCursor(ed.sel.Anchor.Path, ed.sel.Anchor.Offset)
		return true
	}
	block, ok := ed.above(cssdoc.Block, cssdoc.AtBlock)
	if !ok {
		return true
	}
	if sel, ok := ed.doc.Edges(block.Parent().Child(0)); ok {
		ed.sel = sel
	}
	return true
}

var selectAllLevels = cssdoc.Kinds(
	cssdoc.Property, cssdoc.Value, cssdoc.Declaration,
	cssdoc.Rule, cssdoc.Selector, cssdoc.AtRule, cssdoc.Prelude,
)

// selectAll grows the selection to the next enclosing unit, up to the
// whole document.
func (ed *Editor) selectAll() bool {
	start, end := ed.sel.Edges()
	p, ok := ed.doc.NearestAbove(start.Path.Common(end.Path), selectAllLevels)
	for ok {
		edges, found := ed.doc.Edges(p)
		if found && !sameRange(edges, ed.sel) {
			ed.sel = edges
			return true
		}
		p, ok = ed.doc.NearestAbove(p.Parent(), selectAllLevels)
	}
	if all, found := ed.doc.Edges(cssdoc.Path{}); found {
		ed.sel = all
	}
	return true
}

func sameRange(a, b cssdoc.Selection) bool {
	as, ae := a.Edges()
	bs, be := b.Edges()
	return as.Equal(bs) && ae.Equal(be)
}

// place sets the selection from a pointer event. Both points have to
// address leaves; offsets are clamped and moved back to the start of the
// rune they point into.
func (ed *Editor) place(sel cssdoc.Selection) bool {
	fix := func(pt cssdoc.Point) (cssdoc.Point, bool) {
		n, ok := ed.doc.Resolve(pt.Path)
		if !ok || !n.Kind().IsLeaf() {
			return pt, false
		}
		off := runeStart(n.Text(), clamp(pt.Offset, len(n.Text())))
		return cssdoc.Point{Path: pt.Path.Copy(), Offset: off}, true
	}
	anchor, ok1 := fix(sel.Anchor)
	focus, ok2 := fix(sel.Focus)
	if !ok1 || !ok2 {
		return false
	}
	ed.sel = cssdoc.Selection{Anchor: anchor, Focus: focus}
	ed.stale = [2]bool{}
	return true
}

// runeStart moves a byte offset into t back to the start of its rune.
func runeStart(t string, off int) int {
	for off > 0 && off < len(t) && !utf8.RuneStart(t[off]) {
		off--
	}
	return off
}
