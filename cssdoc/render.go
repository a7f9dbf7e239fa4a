package cssdoc

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/gorilla/css/scanner"
)

// RenderInfo is what a presentation layer needs to know about a node.
// This package does not dictate any visual styling.
type RenderInfo struct {
	ID        uint64
	Kind      Kind
	Text      string
	Committed bool
	Owner     string
	EditText  string
	Atomic    bool // committed token, to be shown as a non-editable unit
	Editable  bool // the cursor may type into this node
	Valid     bool // syntax hint for selectors and preludes
}

// Info collects rendering information for n.
func (n *Node) Info() RenderInfo {
	info := RenderInfo{
		ID:        n.id,
		Kind:      n.kind,
		Text:      n.text,
		Committed: n.attrs.Committed,
		Owner:     n.attrs.Owner,
		EditText:  n.attrs.EditText,
		Valid:     true,
	}
	info.Atomic = n.kind.IsToken() && n.attrs.Committed
	info.Editable = n.kind.IsLeaf() && !info.Atomic
	switch n.kind {
	case Selector:
		info.Valid = ValidSelector(n.text)
	case Prelude:
		info.Valid = ValidPrelude(n.text)
	}
	return info
}

// ValidSelector checks if s parses as a group of CSS selectors.
func ValidSelector(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := cascadia.ParseGroup(s)
	return err == nil
}

// ValidPrelude checks if s starts with an at-keyword and tokenizes without
// errors.
func ValidPrelude(s string) bool {
	sc := scanner.New(s)
	first := true
	for {
		tok := sc.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return !first
		case scanner.TokenError:
			return false
		case scanner.TokenS, scanner.TokenComment:
			continue
		}
		if first && tok.Type != scanner.TokenAtKeyword {
			return false
		}
		first = false
	}
}
