/*
Package suggest computes completion candidates for the property or value
under the cursor.

A Controller lives for one focus session, i.e. as long as the cursor stays
within the same property or value node. The editor holds at most one
controller and hands it to its intent handlers explicitly. Dismissing a
controller suppresses its suggestions until the session ends, or until the
typed text changes and yields candidates again.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package suggest

import (
	"strings"

	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/oracle"
	"github.com/npillmayer/cssed/token"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.suggest'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.suggest")
}

// Defaults for suggestion engines.
const (
	DefaultLimit             = 8
	DefaultMinPropertyPrefix = 1
)

// Engine creates controllers for focus sessions.
type Engine struct {
	Oracle            oracle.Oracle
	Tokens            *token.Engine
	Limit             int // maximum number of candidates
	MinPropertyPrefix int // property names need this many typed characters
}

// New creates a suggestion engine with default settings.
func New(o oracle.Oracle, tokens *token.Engine) *Engine {
	return &Engine{
		Oracle:            o,
		Tokens:            tokens,
		Limit:             DefaultLimit,
		MinPropertyPrefix: DefaultMinPropertyPrefix,
	}
}

// Focus starts a focus session for the leaf n. It returns nil if n is
// neither a property nor a value.
func (e *Engine) Focus(n *cssdoc.Node) *Controller {
	if n == nil || !n.Kind().IsToken() {
		return nil
	}
	c := &Controller{engine: e, id: n.ID(), kind: n.Kind()}
	c.text = n.Text()
	c.compute(n)
	tracer().Debugf("suggest: focus %s #%d, %d candidates", c.kind, c.id, len(c.candidates))
	return c
}

func (e *Engine) candidatesFor(n *cssdoc.Node) []string {
	if n.Committed() {
		return nil
	}
	var list []string
	switch n.Kind() {
	case cssdoc.Property:
		if len(n.Text()) < e.MinPropertyPrefix {
			return nil
		}
		list = e.Oracle.CompletionsForProperty(n.Text())
	case cssdoc.Value:
		values, ok := e.Oracle.LegalValues(n.Attrs().Owner)
		if !ok || n.Attrs().Owner == "" {
			return nil
		}
		for _, v := range values {
			if strings.HasPrefix(v, n.Text()) {
				list = append(list, v)
			}
		}
	}
	if e.Limit > 0 && len(list) > e.Limit {
		list = list[:e.Limit]
	}
	return list
}

// Controller holds the suggestion state of a focus session.
type Controller struct {
	engine     *Engine
	id         uint64 // ID of the focused node
	kind       cssdoc.Kind
	text       string
	candidates []string
	selected   int
	dismissed  bool
}

// NodeID identifies the focus session.
func (c *Controller) NodeID() uint64 {
	return c.id
}

// Kind is the kind of the focused node.
func (c *Controller) Kind() cssdoc.Kind {
	return c.kind
}

// Active is true if suggestions are to be presented.
func (c *Controller) Active() bool {
	return c != nil && !c.dismissed && len(c.candidates) > 0
}

// Candidates returns the current candidates.
func (c *Controller) Candidates() []string {
	return c.candidates
}

// Selected returns the index of the selected candidate, and the candidate
// itself. If there are no candidates, it returns -1.
func (c *Controller) Selected() (int, string) {
	if len(c.candidates) == 0 {
		return -1, ""
	}
	return c.selected, c.candidates[c.selected]
}

// Cycle moves the selection by dir, wrapping around. It reports whether
// it consumed the request, which requires at least two candidates.
func (c *Controller) Cycle(dir int) bool {
	N := len(c.candidates)
	if !c.Active() || N < 2 {
		return false
	}
	if dir < 0 {
		dir = -1
	} else {
		dir = 1
	}
	c.selected = (c.selected + dir + N) % N
	return true
}

// Dismiss suppresses suggestions for the rest of the session.
func (c *Controller) Dismiss() bool {
	if !c.Active() {
		return false
	}
	c.dismissed = true
	return true
}

// Refresh recomputes the candidates after the focused node n has changed.
func (c *Controller) Refresh(n *cssdoc.Node) {
	if n == nil || n.ID() != c.id {
		return
	}
	changed := n.Text() != c.text
	c.text = n.Text()
	c.compute(n)
	if changed && len(c.candidates) > 0 {
		c.dismissed = false
	}
}

func (c *Controller) compute(n *cssdoc.Node) {
	c.candidates = c.engine.candidatesFor(n)
	if c.selected >= len(c.candidates) {
		c.selected = len(c.candidates) - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
}

// Commit writes candidate i into the focused node at path p and commits
// it. It returns the point the cursor should move to: the end of the value
// following a committed property, or the end of a committed value.
func (c *Controller) Commit(d *cssdoc.Document, p cssdoc.Path, i int) (cssdoc.Point, bool) {
	n, ok := d.Resolve(p)
	if !ok || n.ID() != c.id || i < 0 || i >= len(c.candidates) {
		return cssdoc.Point{}, false
	}
	cand := c.candidates[i]
	tracer().Debugf("suggest: commit %s %q", c.kind, cand)
	switch c.kind {
	case cssdoc.Property:
		c.engine.Tokens.CommitProperty(d, p, cand)
		valuePath := p.Next()
		if v, ok := d.Resolve(valuePath); ok {
			return cssdoc.Point{Path: valuePath, Offset: len(v.Text())}, true
		}
		return cssdoc.Point{Path: p, Offset: len(cand)}, true
	case cssdoc.Value:
		c.engine.Tokens.CommitValue(d, p, cand)
		return cssdoc.Point{Path: p, Offset: len(cand)}, true
	}
	return cssdoc.Point{}, false
}
