package tree

import (
	"fmt"
	"strings"
)

// Path addresses a node by the sequence of child indices leading from the
// root to it. The empty path denotes the root.
type Path []int

// Copy returns an independent copy of p.
func (p Path) Copy() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// Child returns the path of the i-th child of the node addressed by p.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Parent returns the path of the parent. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1].Copy()
}

// Last returns the index of the addressed node within its parent, or -1
// for the root.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Next returns the path of the following sibling.
func (p Path) Next() Path {
	if len(p) == 0 {
		return Path{}
	}
	n := p.Copy()
	n[len(n)-1]++
	return n
}

// Previous returns the path of the preceding sibling. For a first child
// it returns p unchanged.
func (p Path) Previous() Path {
	if len(p) == 0 || p[len(p)-1] == 0 {
		return p.Copy()
	}
	n := p.Copy()
	n[len(n)-1]--
	return n
}

// Equal is true if p and other address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare orders paths in document order (pre-order). An ancestor comes
// before its descendants.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		if p[i] < other[i] {
			return -1
		} else if p[i] > other[i] {
			return 1
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return 0
}

// IsAncestorOf is true if p is a proper prefix of other.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p) >= len(other) {
		return false
	}
	return p.Equal(other[:len(p)])
}

// IsAncestorOrSelf is true if p is a prefix of other.
func (p Path) IsAncestorOrSelf(other Path) bool {
	return p.Equal(other) || p.IsAncestorOf(other)
}

// Common returns the longest common prefix of p and other.
func (p Path) Common(other Path) Path {
	i := 0
	for i < len(p) && i < len(other) && p[i] == other[i] {
		i++
	}
	return p[:i].Copy()
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, x := range p {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
