/*
Package codec converts between stylesheet documents and CSS source text.

Source text is parsed with douceur into a CSS AST, which is then mapped to
a document. For export, a document is mapped to a douceur AST and printed.
Rules, declarations and rule-embedding at-rules (e.g. @media, @supports)
are supported. At-rules with declaration blocks (e.g. @font-face),
statement at-rules (e.g. @import) and nested at-rules are rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/cssed/cssdoc"
	"github.com/npillmayer/cssed/normalize"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssed.codec'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.codec")
}

// ErrImport is the sentinel all import errors match with errors.Is.
var ErrImport = errors.New("cannot import stylesheet")

// ImportError is returned if source text cannot be converted to a
// document.
type ImportError struct {
	Msg   string
	Cause error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import: %s: %v", e.Msg, e.Cause)
	}
	return "import: " + e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Is makes every ImportError match ErrImport.
func (e *ImportError) Is(target error) bool {
	return target == ErrImport
}

const importantSuffix = "!important"

// Import parses CSS source text and converts it to a normalized document.
func Import(src string) (*cssdoc.Document, error) {
	sheet, err := parser.Parse(src)
	if err != nil {
		tracer().Infof("css parser rejected input: %v", err)
		return nil, &ImportError{Msg: "invalid CSS", Cause: err}
	}
	return FromStylesheet(sheet)
}

// FromStylesheet converts a douceur stylesheet to a normalized document.
func FromStylesheet(sheet *css.Stylesheet) (*cssdoc.Document, error) {
	entries := make([]*cssdoc.Node, 0, len(sheet.Rules))
	for _, r := range sheet.Rules {
		n, err := entryFrom(r, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, n)
	}
	d := cssdoc.NewDocument(entries...)
	normalize.Normalize(d)
	tracer().Debugf("imported %d entries", len(entries))
	return d, nil
}

func entryFrom(r *css.Rule, nested bool) (*cssdoc.Node, error) {
	if r.Kind == css.QualifiedRule {
		decls := make([]*cssdoc.Node, 0, len(r.Declarations))
		for _, decl := range r.Declarations {
			value := decl.Value
			if decl.Important {
				value = strings.TrimSpace(value + " " + importantSuffix)
			}
			decls = append(decls, cssdoc.NewDeclaration(decl.Property, value))
		}
		return cssdoc.NewRule(strings.TrimSpace(r.Prelude), decls...), nil
	}
	if nested {
		return nil, &ImportError{Msg: fmt.Sprintf("nested at-rule %s is not supported", r.Name)}
	}
	if !r.EmbedsRules() {
		return nil, &ImportError{Msg: fmt.Sprintf("at-rule %s is not supported", r.Name)}
	}
	rules := make([]*cssdoc.Node, 0, len(r.Rules))
	for _, sub := range r.Rules {
		n, err := entryFrom(sub, true)
		if err != nil {
			return nil, err
		}
		rules = append(rules, n)
	}
	prelude := strings.TrimSpace(r.Name + " " + r.Prelude)
	return cssdoc.NewAtRule(prelude, rules...), nil
}

// --- Export ----------------------------------------------------------------

// ToStylesheet converts a document to a douceur stylesheet.
// Placeholder declarations are skipped. Declarations without a property
// name and rules without a selector cannot be expressed in CSS and are
// skipped as well.
func ToStylesheet(d *cssdoc.Document) *css.Stylesheet {
	sheet := css.NewStylesheet()
	for _, e := range d.Entries() {
		if r := ruleFrom(e, 0); r != nil {
			sheet.Rules = append(sheet.Rules, r)
		}
	}
	return sheet
}

func ruleFrom(n *cssdoc.Node, level int) *css.Rule {
	switch n.Kind() {
	case cssdoc.Rule:
		r := css.NewRule(css.QualifiedRule)
		r.EmbedLevel = level
		sel, _ := n.ChildOfKind(cssdoc.Selector)
		if sel != nil {
			r.Prelude = sel.Text()
			for _, s := range strings.Split(sel.Text(), ",") {
				r.Selectors = append(r.Selectors, strings.TrimSpace(s))
			}
		}
		if block, _ := n.ChildOfKind(cssdoc.Block); block != nil {
			for _, decl := range block.ChildNodes() {
				if d := declarationFrom(decl); d != nil {
					r.Declarations = append(r.Declarations, d)
				}
			}
		}
		if strings.TrimSpace(r.Prelude) == "" {
			return nil
		}
		return r
	case cssdoc.AtRule:
		r := css.NewRule(css.AtRule)
		r.EmbedLevel = level
		if prelude, _ := n.ChildOfKind(cssdoc.Prelude); prelude != nil {
			fields := strings.SplitN(strings.TrimSpace(prelude.Text()), " ", 2)
			r.Name = fields[0]
			if r.Name != "" && !strings.HasPrefix(r.Name, "@") {
				r.Name = "@" + r.Name
			}
			if len(fields) > 1 {
				r.Prelude = strings.TrimSpace(fields[1])
			}
		}
		if r.Name == "" || r.Name == "@" {
			return nil
		}
		if block, _ := n.ChildOfKind(cssdoc.AtBlock); block != nil {
			for _, ch := range block.ChildNodes() {
				if sub := ruleFrom(ch, level+1); sub != nil {
					r.Rules = append(r.Rules, sub)
				}
			}
		}
		return r
	}
	return nil
}

func declarationFrom(n *cssdoc.Node) *css.Declaration {
	if n.Kind() != cssdoc.Declaration || n.IsEmpty() {
		return nil
	}
	prop, value := n.ChildNode(0), n.ChildNode(1)
	if prop == nil || strings.TrimSpace(prop.Text()) == "" {
		return nil
	}
	d := css.NewDeclaration()
	d.Property = strings.TrimSpace(prop.Text())
	if value != nil {
		d.Value = strings.TrimSpace(value.Text())
	}
	if strings.HasSuffix(d.Value, importantSuffix) {
		d.Important = true
		d.Value = strings.TrimSpace(strings.TrimSuffix(d.Value, importantSuffix))
	}
	return d
}

// Export converts a document to CSS source text, indenting with two
// spaces per level. Top-level entries are separated by empty lines.
func Export(d *cssdoc.Document) string {
	sheet := ToStylesheet(d)
	var b strings.Builder
	for i, r := range sheet.Rules {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRule(&b, r)
		b.WriteString("\n")
	}
	return b.String()
}

func writeRule(b *strings.Builder, r *css.Rule) {
	indent := strings.Repeat("  ", r.EmbedLevel)
	b.WriteString(indent)
	if r.Kind == css.AtRule {
		b.WriteString(r.Name)
		if r.Prelude != "" {
			b.WriteString(" " + r.Prelude)
		}
	} else {
		b.WriteString(r.Prelude)
	}
	b.WriteString(" {\n")
	if r.Kind == css.AtRule {
		for _, sub := range r.Rules {
			writeRule(b, sub)
			b.WriteString("\n")
		}
	} else {
		for _, decl := range r.Declarations {
			b.WriteString(indent + "  " + decl.Property + ": " + decl.Value)
			if decl.Important {
				b.WriteString(" " + importantSuffix)
			}
			b.WriteString(";\n")
		}
	}
	b.WriteString(indent + "}")
}
