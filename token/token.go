/*
Package token governs the transition between free text and committed tokens
for the properties and values of a stylesheet document.

A property is committed as soon as its text names a known property and the
cursor has left it. A value is committed if its text is one of the legal
values of its owning property. Tokens are demoted again if their text
becomes invalid. Committed values with an enumerable list of legal values
may be rotated through the list.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package token

import (
	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/oracle"
	"github.com/npillmayer/cssed/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.token'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.token")
}

// Engine promotes and demotes tokens, consulting an oracle.
type Engine struct {
	Oracle oracle.Oracle
}

// New creates a token engine for an oracle.
func New(o oracle.Oracle) *Engine {
	return &Engine{Oracle: o}
}

// Update enforces the token rules on every declaration of d. focus is the
// path of the leaf the cursor is in, or nil. Focused leaves are never
// promoted, as the user may still be typing. Update reports whether
// attributes have been changed.
func (e *Engine) Update(d *cssdoc.Document, focus cssdoc.Path) bool {
	changed := false
	for _, p := range declarations(d) {
		if e.updateDeclaration(d, p, focus) {
			changed = true
		}
	}
	return changed
}

func declarations(d *cssdoc.Document) []cssdoc.Path {
	isDecl := func(test, _ *tree.Node[*cssdoc.Node]) (*tree.Node[*cssdoc.Node], error) {
		if cssdoc.Of(test).Kind() == cssdoc.Declaration {
			return test, nil
		}
		return nil, nil
	}
	nodes, _ := tree.NewWalker(&d.Root().Node).DescendentsWith(isDecl).Promise()()
	paths := make([]cssdoc.Path, len(nodes))
	for i, n := range nodes {
		paths[i] = n.Path()
	}
	return paths
}

func (e *Engine) updateDeclaration(d *cssdoc.Document, decl cssdoc.Path, focus cssdoc.Path) bool {
	n, ok := d.Resolve(decl)
	if !ok || n.ChildCount() != 2 {
		return false
	}
	propPath, valuePath := decl.Child(0), decl.Child(1)
	prop, value := n.ChildNode(0), n.ChildNode(1)
	before := [2]cssdoc.Attrs{prop.Attrs(), value.Attrs()}
	pa := prop.Attrs()
	if pa.Committed && !e.Oracle.IsKnownProperty(prop.Text()) {
		tracer().Debugf("token: demote property %q", prop.Text())
		pa.Committed = false
	} else if !pa.Committed && !propPath.Equal(focus) && e.Oracle.IsKnownProperty(prop.Text()) {
		tracer().Debugf("token: commit property %q", prop.Text())
		pa.Committed = true
		pa.EditText = ""
	}
	d.SetAttrs(propPath, pa)
	va := value.Attrs()
	owner := ""
	if pa.Committed {
		owner = prop.Text()
	}
	if va.Owner != owner {
		va.Owner = owner
		va.Committed = false
	}
	legal := owner != "" && oracle.IsLegalValue(e.Oracle, owner, value.Text())
	if va.Committed && !legal {
		tracer().Debugf("token: demote value %q", value.Text())
		va.Committed = false
	} else if !va.Committed && legal && !valuePath.Equal(focus) {
		tracer().Debugf("token: commit value %q of %s", value.Text(), owner)
		va.Committed = true
		va.EditText = ""
	}
	d.SetAttrs(valuePath, va)
	return before != [2]cssdoc.Attrs{prop.Attrs(), value.Attrs()}
}

// Rotate replaces the text of the value at valuePath by its successor
// (dir > 0) or predecessor (dir < 0) in the list of legal values of its
// owner, wrapping around at either end. An empty value starts at the first
// (or last) legal value. The rotated value is committed.
//
// Rotate returns false if the value has no owner with enumerable values, or
// if its text is not a legal value.
func (e *Engine) Rotate(d *cssdoc.Document, valuePath cssdoc.Path, dir int) bool {
	v, ok := d.Resolve(valuePath)
	if !ok || v.Kind() != cssdoc.Value || dir == 0 {
		return false
	}
	values, ok := e.Oracle.LegalValues(v.Attrs().Owner)
	if !ok || len(values) == 0 || v.Attrs().Owner == "" {
		return false
	}
	N := len(values)
	i := oracle.IndexOf(values, v.Text())
	if i < 0 {
		if v.Text() != "" {
			return false
		}
		if dir < 0 {
			i = 0
		}
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	next := (i + dir + N) % N
	tracer().Debugf("token: rotate %q → %q", v.Text(), values[next])
	d.SetText(valuePath, values[next])
	d.SetAttrs(valuePath, cssdoc.Attrs{Committed: true, Owner: v.Attrs().Owner})
	return true
}

// EnterEdit re-opens a committed property or value for text editing. The
// previously committed text is kept as the node's text and remembered as
// its edit text. Re-entering a property also releases its value from the
// property.
func (e *Engine) EnterEdit(d *cssdoc.Document, p cssdoc.Path) bool {
	n, ok := d.Resolve(p)
	if !ok || !n.Kind().IsToken() || !n.Committed() {
		return false
	}
	tracer().Debugf("token: edit %s %q", n.Kind(), n.Text())
	a := n.Attrs()
	a.Committed = false
	a.EditText = n.Text()
	d.SetAttrs(p, a)
	if n.Kind() == cssdoc.Property {
		valuePath := p.Next()
		if v, ok := d.Resolve(valuePath); ok && v.Kind() == cssdoc.Value {
			va := v.Attrs()
			va.Owner, va.Committed = "", false
			d.SetAttrs(valuePath, va)
		}
	}
	return true
}

// CommitProperty sets the text of the property at p to a known property
// name and commits it. The sibling value is assigned to the property and
// promoted if its text is legal for it.
func (e *Engine) CommitProperty(d *cssdoc.Document, p cssdoc.Path, name string) {
	d.SetText(p, name)
	d.SetAttrs(p, cssdoc.Attrs{Committed: true})
	valuePath := p.Next()
	v, ok := d.Resolve(valuePath)
	if !ok || v.Kind() != cssdoc.Value {
		return
	}
	va := v.Attrs()
	if va.Owner != name {
		va.Owner, va.Committed = name, false
	}
	if !va.Committed && oracle.IsLegalValue(e.Oracle, name, v.Text()) {
		va.Committed, va.EditText = true, ""
	}
	d.SetAttrs(valuePath, va)
}

// CommitValue sets the text of the value at p and commits it.
func (e *Engine) CommitValue(d *cssdoc.Document, p cssdoc.Path, text string) {
	v := d.MustResolve(p)
	d.SetText(p, text)
	d.SetAttrs(p, cssdoc.Attrs{Committed: true, Owner: v.Attrs().Owner})
}
