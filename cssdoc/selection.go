package cssdoc

import "fmt"

// Point is a cursor position: a leaf path plus a character offset into the
// leaf's text. Offsets count bytes of the UTF-8 text and are clamped to
// the text length by the command layer.
type Point struct {
	Path   Path
	Offset int
}

func (pt Point) String() string {
	return fmt.Sprintf("%v:%d", pt.Path, pt.Offset)
}

// Equal compares two points.
func (pt Point) Equal(other Point) bool {
	return pt.Offset == other.Offset && pt.Path.Equal(other.Path)
}

// Compare orders points in document order.
func (pt Point) Compare(other Point) int {
	if c := pt.Path.Compare(other.Path); c != 0 {
		return c
	}
	switch {
	case pt.Offset < other.Offset:
		return -1
	case pt.Offset > other.Offset:
		return 1
	}
	return 0
}

// Transform rebases a point over an applied op. If the point's leaf has
// been removed, the point keeps the (now stale) path and false is
// returned; callers re-resolve such points after the edit.
func (pt Point) Transform(op Op) (Point, bool) {
	p, ok := TransformPath(pt.Path, op)
	if !ok {
		return pt, false
	}
	return Point{Path: p, Offset: pt.Offset}, true
}

// Selection is a range between an anchor and a focus point. A collapsed
// selection is a cursor.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Cursor creates a collapsed selection.
func Cursor(p Path, offset int) Selection {
	pt := Point{Path: p.Copy(), Offset: offset}
	return Selection{Anchor: pt, Focus: pt}
}

// IsCollapsed is true if anchor and focus coincide.
func (s Selection) IsCollapsed() bool {
	return s.Anchor.Equal(s.Focus)
}

// Edges returns the start and end points of the selection in document order.
func (s Selection) Edges() (start, end Point) {
	if s.Anchor.Compare(s.Focus) <= 0 {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// Equal compares two selections, including direction.
func (s Selection) Equal(other Selection) bool {
	return s.Anchor.Equal(other.Anchor) && s.Focus.Equal(other.Focus)
}

func (s Selection) String() string {
	if s.IsCollapsed() {
		return s.Focus.String()
	}
	return s.Anchor.String() + "…" + s.Focus.String()
}
