package token

import (
	"testing"

	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/oracle/cssdata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	prop  = cssdoc.Path{0, 1, 0, 0}
	value = cssdoc.Path{0, 1, 0, 1}
)

func doc(property, val string) *cssdoc.Document {
	return cssdoc.NewDocument(cssdoc.NewRule("#main", cssdoc.NewDeclaration(property, val)))
}

func TestCommitOnDefocus(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.token")
	defer teardown()
	//
	e := New(cssdata.Default())
	d := doc("border", "1px solid black")
	assert.False(t, e.Update(d, prop), "focused property must not commit")
	assert.False(t, d.MustResolve(prop).Committed())
	assert.True(t, e.Update(d, value))
	assert.True(t, d.MustResolve(prop).Committed())
	v := d.MustResolve(value)
	assert.Equal(t, "border", v.Attrs().Owner)
	assert.False(t, v.Committed(), "border has no enumerable values")
	assert.False(t, e.Update(d, nil), "second update changes nothing")
}

func TestValuePromotion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.token")
	defer teardown()
	//
	e := New(cssdata.Default())
	d := doc("display", "flex")
	e.Update(d, value)
	assert.Equal(t, "display", d.MustResolve(value).Attrs().Owner)
	assert.False(t, d.MustResolve(value).Committed(), "focused value must not commit")
	e.Update(d, nil)
	assert.True(t, d.MustResolve(value).Committed())
	// illegal text demotes a committed value, even under the cursor
	d.SetText(value, "flexy")
	e.Update(d, value)
	assert.False(t, d.MustResolve(value).Committed())
}

func TestDemoteUnknownProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.token")
	defer teardown()
	//
	e := New(cssdata.Default())
	d := doc("display", "none")
	e.Update(d, nil)
	require.True(t, d.MustResolve(value).Committed())
	d.SetText(prop, "displ")
	e.Update(d, prop)
	assert.False(t, d.MustResolve(prop).Committed())
	v := d.MustResolve(value)
	assert.Equal(t, "", v.Attrs().Owner)
	assert.False(t, v.Committed())
	assert.Equal(t, "none", v.Text(), "value text is kept")
}

func TestUnknownPropertyStaysText(t *testing.T) {
	e := New(cssdata.Default())
	d := doc("--main-color", "red")
	assert.False(t, e.Update(d, nil))
	assert.False(t, d.MustResolve(prop).Committed())
}

func TestRotationIsCyclic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.token")
	defer teardown()
	//
	o := cssdata.Default()
	e := New(o)
	d := doc("display", "flex")
	e.Update(d, nil)
	values, _ := o.LegalValues("display")
	for i := 0; i < len(values); i++ {
		require.True(t, e.Rotate(d, value, 1))
	}
	assert.Equal(t, "flex", d.MustResolve(value).Text())
	e.Rotate(d, value, 1)
	e.Rotate(d, value, -1)
	assert.Equal(t, "flex", d.MustResolve(value).Text())
	assert.True(t, d.MustResolve(value).Committed())
}

func TestRotationWraps(t *testing.T) {
	o := cssdata.Default()
	e := New(o)
	values, _ := o.LegalValues("display")
	last := values[len(values)-1]
	d := doc("display", last)
	e.Update(d, nil)
	require.True(t, e.Rotate(d, value, 1))
	assert.Equal(t, values[0], d.MustResolve(value).Text())
	require.True(t, e.Rotate(d, value, -1))
	assert.Equal(t, last, d.MustResolve(value).Text())
}

func TestRotationRefused(t *testing.T) {
	e := New(cssdata.Default())
	d := doc("border", "1px")
	e.Update(d, nil)
	assert.False(t, e.Rotate(d, value, 1), "border has no enumerable values")
	d = doc("position", "")
	e.Update(d, nil)
	assert.True(t, e.Rotate(d, value, -1), "empty values start at the end of the list")
	assert.Equal(t, "sticky", d.MustResolve(value).Text())
	assert.False(t, e.Rotate(d, prop, 1))
}

// noValues claims every property has enumerated values, but lists none.
type noValues struct {
	*cssdata.Table
}

func (noValues) LegalValues(string) ([]string, bool) {
	return []string{}, true
}

func TestRotationWithoutValues(t *testing.T) {
	e := New(noValues{cssdata.Default()})
	d := doc("display", "")
	e.Update(d, nil)
	require.Equal(t, "display", d.MustResolve(value).Attrs().Owner)
	assert.False(t, e.Rotate(d, value, 1))
	assert.Equal(t, "", d.MustResolve(value).Text())
}

func TestEditReentryRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssed.token")
	defer teardown()
	//
	e := New(cssdata.Default())
	d := doc("display", "block")
	e.Update(d, nil)
	pa, va := d.MustResolve(prop).Attrs(), d.MustResolve(value).Attrs()
	require.True(t, e.EnterEdit(d, prop))
	p := d.MustResolve(prop)
	assert.False(t, p.Committed())
	assert.Equal(t, "display", p.Attrs().EditText)
	assert.Equal(t, "display", p.Text())
	assert.Equal(t, "", d.MustResolve(value).Attrs().Owner)
	e.Update(d, prop)
	assert.False(t, d.MustResolve(prop).Committed(), "property stays open while focused")
	d.SetText(prop, "displa")
	e.Update(d, prop)
	d.SetText(prop, "display")
	e.Update(d, nil)
	assert.Equal(t, pa, d.MustResolve(prop).Attrs())
	assert.Equal(t, va, d.MustResolve(value).Attrs())
	assert.False(t, e.EnterEdit(d, cssdoc.Path{0, 0}), "selectors are no tokens")
}

func TestCommitFromSuggestion(t *testing.T) {
	e := New(cssdata.Default())
	d := doc("dis", "none")
	e.CommitProperty(d, prop, "display")
	assert.Equal(t, "display", d.MustResolve(prop).Text())
	assert.True(t, d.MustResolve(prop).Committed())
	v := d.MustResolve(value)
	assert.Equal(t, "display", v.Attrs().Owner)
	assert.True(t, v.Committed())
	e.CommitValue(d, value, "grid")
	assert.Equal(t, cssdoc.Attrs{Committed: true, Owner: "display"}, d.MustResolve(value).Attrs())
}
