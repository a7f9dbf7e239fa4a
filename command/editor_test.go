package command

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/cssed/codec"
	"github.com/npillmayer/cssed/config"
	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/oracle/cssdata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type P = cssdoc.Path

func editor(d *cssdoc.Document) *Editor {
	ed := New(cssdata.Default(), nil)
	if d != nil {
		ed.Load(d)
	}
	return ed
}

func run(t *testing.T, ed *Editor, intents ...Intent) {
	t.Helper()
	for _, in := range intents {
		if !ed.Dispatch(in) {
			t.Fatalf("expected %v to be consumed at %v", in, ed.Selection())
		}
	}
}

func text(ed *Editor, p cssdoc.Path) string {
	return ed.Document().MustResolve(p).Text()
}

func cursorAt(t *testing.T, ed *Editor, p cssdoc.Path, offset int) {
	t.Helper()
	if want := cssdoc.Cursor(p, offset); !ed.Selection().Equal(want) {
		t.Errorf("expected cursor at %v, is %v", want, ed.Selection())
	}
}

func TestTypePropertyAndValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("#main")))
	run(t, ed, Place(P{0, 1, 0, 0}, 0))
	for _, s := range []string{"b", "o", "r", "d", "e", "r"} {
		run(t, ed, Type(s))
	}
	prop := ed.Document().MustResolve(P{0, 1, 0, 0})
	assert.Equal(t, "border", prop.Text())
	assert.False(t, prop.Committed(), "property must not be committed while focused")
	require.True(t, ed.Suggestions().Active())
	assert.Contains(t, ed.Suggestions().Candidates(), "border")
	//
	run(t, ed, Place(P{0, 1, 0, 1}, 0))
	assert.True(t, ed.Document().MustResolve(P{0, 1, 0, 0}).Committed())
	assert.Equal(t, "border", ed.Document().MustResolve(P{0, 1, 0, 1}).Attrs().Owner)
	run(t, ed, Type("1px solid black"), Place(P{0, 0}, 0))
	assert.False(t, ed.Document().MustResolve(P{0, 1, 0, 1}).Committed())
	assert.Equal(t, "#main {\n  border: 1px solid black;\n}\n", ed.Export())
}

func TestBreakOnEmptyProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("a")))
	run(t, ed, Place(P{0, 1, 0, 0}, 0), Do(Break))
	assert.Equal(t, 1, ed.Document().MustResolve(P{0, 1}).ChildCount())
	cursorAt(t, ed, P{0, 1, 0, 0}, 0)
	//
	run(t, ed, Type("--main-color"))
	assert.False(t, ed.Suggestions().Active())
	run(t, ed, Do(Break))
	assert.Equal(t, 2, ed.Document().MustResolve(P{0, 1}).ChildCount())
	cursorAt(t, ed, P{0, 1, 1, 0}, 0)
	assert.False(t, ed.Document().MustResolve(P{0, 1, 0, 0}).Committed(), "custom properties stay text")
	// a second break on the fresh empty declaration does nothing
	run(t, ed, Do(Break))
	assert.Equal(t, 2, ed.Document().MustResolve(P{0, 1}).ChildCount())
}

func TestBreakAcceptsSuggestion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("a")))
	run(t, ed, Place(P{0, 1, 0, 0}, 0), Type("colo"))
	require.True(t, ed.Suggestions().Active())
	run(t, ed, Do(Break))
	assert.Equal(t, "color", text(ed, P{0, 1, 0, 0}))
	assert.True(t, ed.Document().MustResolve(P{0, 1, 0, 0}).Committed())
	assert.Equal(t, 1, ed.Document().MustResolve(P{0, 1}).ChildCount(), "accepting must not split")
	cursorAt(t, ed, P{0, 1, 0, 1}, 0)
}

func TestSuggestionCycleDismissPick(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("a")))
	run(t, ed, Place(P{0, 1, 0, 0}, 0), Type("bor"))
	c := ed.Suggestions()
	require.True(t, c.Active())
	run(t, ed, Do(Down))
	i, s := c.Selected()
	assert.Equal(t, 1, i)
	assert.Equal(t, "border-bottom", s)
	run(t, ed, Do(Up))
	i, _ = c.Selected()
	assert.Equal(t, 0, i)
	run(t, ed, Do(Escape))
	assert.False(t, ed.Suggestions().Active())
	run(t, ed, Type("d"))
	require.True(t, ed.Suggestions().Active(), "typing re-opens dismissed suggestions")
	cands := ed.Suggestions().Candidates()
	require.Equal(t, "border-collapse", cands[2])
	run(t, ed, Intent{Kind: Pick, Index: 2})
	assert.Equal(t, "border-collapse", text(ed, P{0, 1, 0, 0}))
	cursorAt(t, ed, P{0, 1, 0, 1}, 0)
	// the empty value now offers the legal values of its property
	require.True(t, ed.Suggestions().Active())
	assert.Equal(t, []string{"collapse", "separate"}, ed.Suggestions().Candidates())
	assert.False(t, ed.Dispatch(Intent{Kind: Pick, Index: 5}))
	run(t, ed, Intent{Kind: Pick, Index: 1})
	assert.Equal(t, "separate", text(ed, P{0, 1, 0, 1}))
	assert.True(t, ed.Document().MustResolve(P{0, 1, 0, 1}).Committed())
	cursorAt(t, ed, P{0, 1, 0, 1}, len("separate"))
}

func TestDeleteUnit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(
		cssdoc.NewRule("a",
			cssdoc.NewDeclaration("color", "red"),
			cssdoc.NewDeclaration("margin", "0"),
			cssdoc.NewDeclaration("width", "1px"),
		),
		cssdoc.NewRule("b", cssdoc.NewDeclaration("color", "blue")),
	))
	run(t, ed, Place(P{0, 1, 1, 1}, 0), Do(DeleteUnit))
	assert.Equal(t, "a {\n  color: red;\n  width: 1px;\n}\n\nb {\n  color: blue;\n}\n", ed.Export())
	cursorAt(t, ed, P{0, 1, 1, 0}, 0)
	//
	run(t, ed, Place(P{1, 1, 0, 1}, 2), Do(DeleteUnit))
	block := ed.Document().MustResolve(P{1, 1})
	require.Equal(t, 1, block.ChildCount())
	assert.True(t, block.ChildNode(0).IsEmpty(), "expected placeholder declaration")
	cursorAt(t, ed, P{1, 1, 0, 0}, 0)
	// on a selector the whole rule goes
	run(t, ed, Place(P{1, 0}, 0), Do(DeleteUnit))
	assert.Len(t, ed.Document().Entries(), 1)
}

func TestRotateDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("a", cssdoc.NewDeclaration("display", "flex"))))
	value := P{0, 1, 0, 1}
	require.True(t, ed.Document().MustResolve(value).Committed())
	run(t, ed, Place(value, 0), Do(RotateNext))
	assert.Equal(t, "flow-root", text(ed, value))
	cursorAt(t, ed, value, len("flow-root"))
	values, _ := cssdata.Default().LegalValues("display")
	for i := 1; i < len(values); i++ {
		run(t, ed, Do(RotateNext))
	}
	assert.Equal(t, "flow-root", text(ed, value), "rotation is cyclic")
	// wrap from first to last
	ed = editor(cssdoc.NewDocument(cssdoc.NewRule("a", cssdoc.NewDeclaration("display", "block"))))
	run(t, ed, Place(value, 0), Do(RotatePrev))
	assert.Equal(t, "table-row-group", text(ed, value))
	run(t, ed, Do(RotateNext))
	assert.Equal(t, "block", text(ed, value))
	assert.True(t, ed.Document().MustResolve(value).Committed())
	// free-form values do not rotate
	ed = editor(nil)
	run(t, ed, Place(P{1, 1, 0, 1}, 0))
	assert.False(t, ed.Dispatch(Do(RotateNext)))
}

func TestUndoRedo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{1, 0}, 4))
	assert.Equal(t, 0, ed.History().Len(), "cursor moves are not undoable")
	run(t, ed, Type("x"))
	assert.Equal(t, ".foox", text(ed, P{1, 0}))
	run(t, ed, Do(Undo))
	assert.Equal(t, ".foo", text(ed, P{1, 0}))
	cursorAt(t, ed, P{1, 0}, 4)
	run(t, ed, Do(Redo))
	assert.Equal(t, ".foox", text(ed, P{1, 0}))
	cursorAt(t, ed, P{1, 0}, 5)
	//
	run(t, ed, Do(Undo), Type("y"))
	assert.False(t, ed.Dispatch(Do(Redo)), "a new edit clears the redo stack")
	assert.Equal(t, ".fooy", text(ed, P{1, 0}))
}

func TestUndoStructuralEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	before := ed.Export()
	run(t, ed, Place(P{0, 1, 0, 0}, 0), Do(UnwrapAtRule))
	assert.Len(t, ed.Document().Entries(), 2)
	assert.Equal(t, cssdoc.Rule, ed.Document().Entries()[0].Kind())
	cursorAt(t, ed, P{0, 0}, 0)
	run(t, ed, Do(Undo))
	if diff := cmp.Diff(before, ed.Export()); diff != "" {
		t.Errorf("undo did not restore the document (-want +got):\n%s", diff)
	}
	cursorAt(t, ed, P{0, 1, 0, 0}, 0)
	assert.False(t, ed.Dispatch(Do(Undo)))
}

func TestHistoryDisabled(t *testing.T) {
	conf := config.Default()
	conf.History.Enabled = false
	ed := New(cssdata.Default(), conf)
	run(t, ed, Place(P{1, 0}, 0), Type("x"))
	assert.Nil(t, ed.History())
	assert.False(t, ed.Dispatch(Do(Undo)))
}

func TestEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 1, 0, 1}, 2), Do(Escape))
	want := cssdoc.Selection{
		Anchor: cssdoc.Point{Path: P{0, 1, 0, 0}},
		Focus:  cssdoc.Point{Path: P{0, 1, 0, 0}, Offset: 5},
	}
	assert.Equal(t, want, ed.Selection())
	run(t, ed, Do(Escape))
	cursorAt(t, ed, P{0, 1, 0, 0}, 0)
	// a rule inside an at-block walks out to the prelude
	run(t, ed, Do(Escape))
	start, end := ed.Selection().Edges()
	assert.Equal(t, cssdoc.Point{Path: P{0, 0}}, start)
	assert.Equal(t, cssdoc.Point{Path: P{0, 0}, Offset: 25}, end)
	run(t, ed, Do(Escape), Do(Escape))
	cursorAt(t, ed, P{0, 0}, 0)
}

func TestSelectAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 0}, 1))
	steps := []cssdoc.Selection{
		{Anchor: cssdoc.Point{Path: P{0, 1, 0, 0}}, Focus: cssdoc.Point{Path: P{0, 1, 0, 0}, Offset: 5}},
		{Anchor: cssdoc.Point{Path: P{0, 1, 0, 0}}, Focus: cssdoc.Point{Path: P{0, 1, 0, 1, 1, 1}, Offset: 3}},
		{Anchor: cssdoc.Point{Path: P{0, 0}}, Focus: cssdoc.Point{Path: P{0, 1, 0, 1, 1, 1}, Offset: 3}},
		{Anchor: cssdoc.Point{Path: P{0, 0}}, Focus: cssdoc.Point{Path: P{1, 1, 0, 1}, Offset: 15}},
		{Anchor: cssdoc.Point{Path: P{0, 0}}, Focus: cssdoc.Point{Path: P{1, 1, 0, 1}, Offset: 15}},
	}
	for i, want := range steps {
		run(t, ed, Do(SelectAll))
		if !ed.Selection().Equal(want) {
			t.Errorf("step %d: expected selection %v, is %v", i, want, ed.Selection())
		}
	}
	// deleting everything leaves a placeholder rule
	run(t, ed, Do(DeleteBackward))
	require.Len(t, ed.Document().Entries(), 1)
	assert.Equal(t, "", ed.Export())
	cursorAt(t, ed, P{0, 0}, 0)
}

func TestDeleteSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	sel := cssdoc.Selection{
		Anchor: cssdoc.Point{Path: P{0, 1, 0, 0}, Offset: 1},
		Focus:  cssdoc.Point{Path: P{0, 1, 0, 0}, Offset: 3},
	}
	run(t, ed, Intent{Kind: Select, Selection: sel}, Do(DeleteForward))
	assert.Equal(t, "#in", text(ed, P{0, 1, 0, 0}))
	cursorAt(t, ed, P{0, 1, 0, 0}, 1)
	// spanning two declarations of a block removes both
	sel = cssdoc.Selection{
		Anchor: cssdoc.Point{Path: P{0, 1, 0, 1, 0, 1}, Offset: 2},
		Focus:  cssdoc.Point{Path: P{0, 1, 0, 1, 1, 0}, Offset: 1},
	}
	run(t, ed, Intent{Kind: Select, Selection: sel}, Type("x"))
	block := ed.Document().MustResolve(P{0, 1, 0, 1})
	require.Equal(t, 1, block.ChildCount())
	assert.Equal(t, "x", block.ChildNode(0).ChildNode(0).Text())
	cursorAt(t, ed, P{0, 1, 0, 1, 0, 0}, 1)
}

func TestDeleteBackward(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	prop := P{1, 1, 0, 0}
	run(t, ed, Place(prop, 6), Do(DeleteBackward))
	n := ed.Document().MustResolve(prop)
	assert.False(t, n.Committed(), "backspace re-opens a committed token")
	assert.Equal(t, "border", n.Attrs().EditText)
	assert.Equal(t, "border", n.Text())
	run(t, ed, Do(DeleteBackward))
	assert.Equal(t, "borde", text(ed, prop))
	run(t, ed, Place(P{1, 0}, 0))
	assert.False(t, ed.Document().MustResolve(prop).Committed())
	assert.Equal(t, "", ed.Document().MustResolve(P{1, 1, 0, 1}).Attrs().Owner)
	// backspace at the start of a non-empty leaf does not merge
	run(t, ed, Do(DeleteBackward))
	assert.Equal(t, ".foo", text(ed, P{1, 0}))
	// an empty rule is removed, the cursor goes to the end of the previous leaf
	run(t, ed, Do(InsertRule))
	require.Len(t, ed.Document().Entries(), 3)
	cursorAt(t, ed, P{2, 0}, 0)
	run(t, ed, Do(DeleteBackward))
	assert.Len(t, ed.Document().Entries(), 2)
	cursorAt(t, ed, P{1, 1, 0, 1}, 15)
	// an empty property takes its declaration with it, whatever the value holds
	ed = editor(cssdoc.NewDocument(cssdoc.NewRule("a",
		cssdoc.NewDeclaration("color", "red"),
		cssdoc.NewDeclaration("", "10px"),
	)))
	run(t, ed, Place(P{0, 1, 1, 0}, 0), Do(DeleteBackward))
	assert.Equal(t, 1, ed.Document().MustResolve(P{0, 1}).ChildCount())
	assert.Equal(t, "color", text(ed, P{0, 1, 0, 0}))
	cursorAt(t, ed, P{0, 1, 0, 1}, 3)
}

func TestPlaceSnapsToRuneStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("aé")))
	run(t, ed, Place(P{0, 0}, 2))
	cursorAt(t, ed, P{0, 0}, 1)
	run(t, ed, Type("x"))
	assert.Equal(t, "axé", text(ed, P{0, 0}))
	assert.True(t, utf8.ValidString(text(ed, P{0, 0})))
	run(t, ed, Place(P{0, 0}, 99))
	cursorAt(t, ed, P{0, 0}, len("axé"))
}

func TestTypingIntoCommittedTokenIsRefused(t *testing.T) {
	ed := editor(nil)
	run(t, ed, Place(P{1, 1, 0, 0}, 0), Type("x"))
	assert.Equal(t, "border", text(ed, P{1, 1, 0, 0}))
	assert.Equal(t, 0, ed.History().Len())
}

func TestTab(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	cursorAt(t, ed, P{0, 0}, 0)
	run(t, ed, Do(Tab))
	cursorAt(t, ed, P{0, 1, 0, 0}, 5)
	run(t, ed, Do(Tab))
	cursorAt(t, ed, P{0, 1, 0, 1, 0, 1}, 15)
	run(t, ed, Do(ShiftTab))
	cursorAt(t, ed, P{0, 1, 0, 0}, 5)
	run(t, ed, Place(P{1, 1, 0, 1}, 0))
	assert.False(t, ed.Dispatch(Do(Tab)), "no editable leaf after the last value")
}

func TestMoveUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 1, 1, 1}, 1), Do(MoveDeclUp))
	assert.Equal(t, "color", text(ed, P{0, 1, 0, 1, 0, 0}))
	cursorAt(t, ed, P{0, 1, 0, 1, 0, 1}, 1)
	n := ed.History().Len()
	run(t, ed, Do(MoveDeclUp))
	assert.Equal(t, n, ed.History().Len(), "moving beyond the first position is a no-op")
	run(t, ed, Do(MoveDeclDown))
	assert.Equal(t, "border", text(ed, P{0, 1, 0, 1, 0, 0}))
	//
	run(t, ed, Place(P{1, 0}, 0), Do(MoveRuleUp))
	assert.Equal(t, cssdoc.Rule, ed.Document().Entries()[0].Kind())
	assert.Equal(t, ".foo", text(ed, P{0, 0}))
	cursorAt(t, ed, P{0, 0}, 0)
	run(t, ed, Do(MoveRuleDown))
	assert.Equal(t, ".foo", text(ed, P{1, 0}))
}

func TestVerticalMovement(t *testing.T) {
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 1, 0, 0}, 0), Do(Down))
	cursorAt(t, ed, P{0, 1, 0, 1, 1, 0}, 5)
	run(t, ed, Do(Up))
	cursorAt(t, ed, P{0, 1, 0, 1, 0, 0}, 6)
	assert.False(t, ed.Dispatch(Do(Up)))
}

func TestJumpSelectors(t *testing.T) {
	ed := editor(nil)
	run(t, ed, Place(P{1, 1, 0, 1}, 3), Do(PrevSelector))
	cursorAt(t, ed, P{1, 0}, 0)
	run(t, ed, Do(PrevSelector))
	cursorAt(t, ed, P{0, 1, 0, 0}, 0)
	run(t, ed, Do(PrevSelector))
	cursorAt(t, ed, P{0, 0}, 0)
	assert.False(t, ed.Dispatch(Do(PrevSelector)))
	run(t, ed, Do(NextSelector))
	cursorAt(t, ed, P{0, 1, 0, 0}, 0)
}

func TestInsertEntries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 0}, 0), Do(InsertRule))
	assert.Equal(t, 2, ed.Document().MustResolve(P{0, 1}).ChildCount(), "rule goes into the at-block")
	cursorAt(t, ed, P{0, 1, 1, 0}, 0)
	run(t, ed, Do(InsertAtRule))
	require.Len(t, ed.Document().Entries(), 3)
	assert.Equal(t, cssdoc.AtRule, ed.Document().Entries()[1].Kind())
	cursorAt(t, ed, P{1, 0}, 0)
	assert.Equal(t, []cssdoc.Kind{cssdoc.AtRule, cssdoc.Prelude}, ed.Levels())
	run(t, ed, Type("@media print"), Do(Break))
	require.Len(t, ed.Document().Entries(), 4)
	cursorAt(t, ed, P{2, 0}, 0)
}

func TestLevels(t *testing.T) {
	ed := editor(nil)
	run(t, ed, Place(P{0, 1, 0, 1, 0, 0}, 0))
	assert.Equal(t, []cssdoc.Kind{
		cssdoc.AtRule, cssdoc.AtBlock, cssdoc.Rule, cssdoc.Block, cssdoc.Declaration, cssdoc.Property,
	}, ed.Levels())
}

func TestImport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(nil)
	run(t, ed, Place(P{1, 0}, 0), Type("x"))
	before := ed.Export()
	err := ed.Import("@import url(x.css);")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrImport))
	assert.Equal(t, before, ed.Export(), "failed import must not touch the document")
	assert.Equal(t, 1, ed.History().Len())
	//
	require.NoError(t, ed.Import("h1 { display: block }"))
	assert.Equal(t, "h1 {\n  display: block;\n}\n", ed.Export())
	assert.Equal(t, 0, ed.History().Len())
	cursorAt(t, ed, P{0, 0}, 0)
	assert.True(t, ed.Document().MustResolve(P{0, 1, 0, 1}).Committed())
}

func TestEditReentryRecommits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.command")
	defer teardown()
	//
	ed := editor(cssdoc.NewDocument(cssdoc.NewRule("a", cssdoc.NewDeclaration("display", "block"))))
	prop, value := P{0, 1, 0, 0}, P{0, 1, 0, 1}
	before := ed.Document().MustResolve(value).Attrs()
	run(t, ed, Place(prop, 3), Do(EnterEdit))
	assert.False(t, ed.Document().MustResolve(prop).Committed())
	assert.Equal(t, "", ed.Document().MustResolve(value).Attrs().Owner)
	cursorAt(t, ed, prop, len("display"))
	run(t, ed, Place(P{0, 0}, 0))
	assert.True(t, ed.Document().MustResolve(prop).Committed())
	assert.Equal(t, before, ed.Document().MustResolve(value).Attrs())
	assert.False(t, ed.Dispatch(Do(EnterEdit)), "selectors are never committed")
}
