package normalize

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/tree"
)

// DefaultIterationFactor bounds the number of repairs per normalization
// run to factor × (node count + 1).
const DefaultIterationFactor = 8

// Normalizer repairs documents. The zero value is usable and does not
// auto-wrap stray text.
type Normalizer struct {
	// AutoWrap turns stray text into declarations (inside blocks) or rules
	// (inside at-blocks and at top level). Otherwise stray text is removed.
	AutoWrap bool
	// IterationFactor overrides DefaultIterationFactor if > 0.
	IterationFactor int
}

// New creates a normalizer with auto-wrapping switched on.
func New() *Normalizer {
	return &Normalizer{AutoWrap: true, IterationFactor: DefaultIterationFactor}
}

// Normalize normalizes d with a default normalizer.
func Normalize(d *cssdoc.Document) bool {
	return New().Normalize(d)
}

// repair is a single fix, found during a scan and applied afterwards.
type repair struct {
	name string
	at   cssdoc.Path
	fix  func(d *cssdoc.Document)
}

// errFound stops a scan as soon as a repair has been found.
var errFound = errors.New("repair found")

// Normalize repairs d until no repair applies. It reports whether d has
// been changed.
func (nz *Normalizer) Normalize(d *cssdoc.Document) bool {
	factor := nz.IterationFactor
	if factor <= 0 {
		factor = DefaultIterationFactor
	}
	bound := factor * (d.Count() + 1)
	changed := false
	for i := 0; ; i++ {
		r := nz.scan(d)
		if r == nil {
			break
		}
		if i >= bound {
			tracer().Errorf("normalizer exceeded %d repairs, giving up at %s %v", bound, r.name, r.at)
			break
		}
		tracer().Debugf("normalize: %s at %v", r.name, r.at)
		r.fix(d)
		changed = true
	}
	return changed
}

// scan walks d bottom-up and returns the first applicable repair, or nil.
func (nz *Normalizer) scan(d *cssdoc.Document) *repair {
	var found *repair
	check := func(n, parent *tree.Node[*cssdoc.Node], position int) (*tree.Node[*cssdoc.Node], error) {
		if r := nz.repairFor(cssdoc.Of(n)); r != nil {
			found = r
			return nil, errFound
		}
		return nil, nil
	}
	_, err := tree.NewWalker(&d.Root().Node).BottomUp(check).Promise()()
	if err != nil && err != errFound {
		tracer().Errorf("normalizer scan failed: %v", err)
		return nil
	}
	return found
}

// repairFor checks a single node. Children have been checked before their
// parents, therefore a node may rely on its children being in shape.
func (nz *Normalizer) repairFor(n *cssdoc.Node) *repair {
	p := n.Path()
	k := n.Kind()
	if k.IsLeaf() {
		if n.ChildCount() > 0 {
			return removal("leaf child", p.Child(0))
		}
		return nil
	}
	for i, ch := range n.ChildNodes() {
		if k.Accepts(ch.Kind()) {
			continue
		}
		if ch.Kind() == cssdoc.Text && nz.AutoWrap {
			if r := wrapText(k, p.Child(i), ch.Text()); r != nil {
				return r
			}
		}
		return removal("misplaced "+ch.Kind().String(), p.Child(i))
	}
	if slots := k.Slots(); slots != nil {
		return repairSlots(n, p, slots)
	}
	if n.ChildCount() == 0 {
		switch k {
		case cssdoc.Block:
			return insertion("placeholder declaration", p.Child(0), func() *cssdoc.Node {
				return cssdoc.NewDeclaration("", "")
			})
		case cssdoc.AtBlock, cssdoc.Root:
			return insertion("placeholder rule", p.Child(0), func() *cssdoc.Node {
				return cssdoc.NewRule("")
			})
		}
	}
	return nil
}

// repairSlots fixes nodes with a fixed child sequence: rules, at-rules and
// declarations. All children are known to be of one of the slot kinds.
func repairSlots(n *cssdoc.Node, p cssdoc.Path, slots []cssdoc.Kind) *repair {
	first, firstAt := n.ChildOfKind(slots[0])
	second, secondAt := n.ChildOfKind(slots[1])
	for i, ch := range n.ChildNodes() {
		if (ch.Kind() == slots[0] && i != firstAt) || (ch.Kind() == slots[1] && i != secondAt) {
			return removal("duplicate "+ch.Kind().String(), p.Child(i))
		}
	}
	if n.Kind() == cssdoc.Declaration {
		if first == nil {
			return removal("declaration without property", p)
		}
		if second == nil {
			owner := ""
			if first.Committed() {
				owner = first.Text()
			}
			return insertion("missing value", p.Child(1), func() *cssdoc.Node {
				return cssdoc.NewValue("").WithAttrs(cssdoc.Attrs{Owner: owner})
			})
		}
	}
	if first == nil {
		return insertion("missing "+slots[0].String(), p.Child(0), func() *cssdoc.Node {
			return cssdoc.NewNode(slots[0])
		})
	}
	if second == nil {
		return insertion("missing "+slots[1].String(), p.Child(n.ChildCount()), func() *cssdoc.Node {
			return cssdoc.NewNode(slots[1])
		})
	}
	if firstAt > secondAt {
		return &repair{name: "slot order", at: p, fix: func(d *cssdoc.Document) {
			d.Move(p.Child(firstAt), p.Child(0))
		}}
	}
	return nil
}

// wrapText replaces a stray text node by the skeleton its container
// expects. It returns nil if the text is blank.
func wrapText(container cssdoc.Kind, at cssdoc.Path, text string) *repair {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var build func() []*cssdoc.Node
	switch container {
	case cssdoc.Block:
		build = func() []*cssdoc.Node { return declarationsFrom(text) }
	case cssdoc.AtBlock, cssdoc.Root:
		build = func() []*cssdoc.Node { return []*cssdoc.Node{cssdoc.NewRule(text)} }
	default:
		return nil
	}
	return &repair{name: "wrap text", at: at, fix: func(d *cssdoc.Document) {
		nodes := build()
		for i, n := range nodes {
			d.Insert(at.Parent().Child(at.Last()+1+i), n)
		}
		d.Remove(at)
	}}
}

// declarationsFrom parses text as a list of declarations. If text does not
// contain any declaration, the raw text becomes the property of a single
// declaration.
func declarationsFrom(text string) []*cssdoc.Node {
	src := text
	if !strings.HasSuffix(src, ";") {
		src += ";"
	}
	var decls []*cssdoc.Node
	if parsed, err := parser.ParseDeclarations(src); err == nil {
		for _, decl := range parsed {
			if decl.Property == "" {
				continue
			}
			value := decl.Value
			if decl.Important {
				value += " !important"
			}
			decls = append(decls, cssdoc.NewDeclaration(decl.Property, value))
		}
	}
	if len(decls) == 0 {
		tracer().Debugf("normalize: cannot parse %q as declarations", text)
		decls = []*cssdoc.Node{cssdoc.NewDeclaration(text, "")}
	}
	return decls
}

func removal(name string, at cssdoc.Path) *repair {
	return &repair{name: name, at: at, fix: func(d *cssdoc.Document) {
		d.Remove(at)
	}}
}

func insertion(name string, at cssdoc.Path, node func() *cssdoc.Node) *repair {
	return &repair{name: name, at: at, fix: func(d *cssdoc.Document) {
		d.Insert(at, node())
	}}
}
