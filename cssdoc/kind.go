package cssdoc

// Kind is the closed set of node types of a stylesheet document.
type Kind uint8

// Node kinds. Text is raw text which has been dropped into a container
// (e.g., by pasting); it is never part of a normalized document.
const (
	NoKind Kind = iota
	Root
	Rule
	AtRule
	Selector
	Prelude
	Block
	AtBlock
	Declaration
	Property
	Value
	Text
)

var kindNames = [...]string{
	NoKind:      "none",
	Root:        "root",
	Rule:        "rule",
	AtRule:      "at-rule",
	Selector:    "selector",
	Prelude:     "prelude",
	Block:       "block",
	AtBlock:     "at-block",
	Declaration: "declaration",
	Property:    "property",
	Value:       "value",
	Text:        "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// IsLeaf is true for kinds which hold text instead of children.
func (k Kind) IsLeaf() bool {
	switch k {
	case Selector, Prelude, Property, Value, Text:
		return true
	}
	return false
}

// IsEntry is true for rules and at-rules.
func (k Kind) IsEntry() bool {
	return k == Rule || k == AtRule
}

// IsToken is true for the kinds which may be committed.
func (k Kind) IsToken() bool {
	return k == Property || k == Value
}

// Accepts reports whether a node of kind k may hold a child of kind ch.
func (k Kind) Accepts(ch Kind) bool {
	switch k {
	case Root:
		return ch == Rule || ch == AtRule
	case Rule:
		return ch == Selector || ch == Block
	case AtRule:
		return ch == Prelude || ch == AtBlock
	case Block:
		return ch == Declaration
	case AtBlock:
		return ch == Rule
	case Declaration:
		return ch == Property || ch == Value
	}
	return false
}

// Slots returns the fixed child sequence of kinds with exactly two
// children (rules, at-rules and declarations), or nil.
func (k Kind) Slots() []Kind {
	switch k {
	case Rule:
		return []Kind{Selector, Block}
	case AtRule:
		return []Kind{Prelude, AtBlock}
	case Declaration:
		return []Kind{Property, Value}
	}
	return nil
}

// KindSet is a small set of kinds, used for nearest-ancestor queries.
type KindSet uint16

// Kinds creates a set of kinds.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Contains checks set membership.
func (s KindSet) Contains(k Kind) bool {
	return s&(1<<k) != 0
}
