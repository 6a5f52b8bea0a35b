package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Range is an ordered pair of positions. Start must not sort after End
// in tree order; this package never reorders reversed input.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range from start and end positions.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s %s]", r.Start, r.End)
}

// IsZero returns true if either boundary is unset.
func (r Range) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// IsCollapsed returns true if start and end are the same position.
func (r Range) IsCollapsed() bool {
	return r.Start.Container == r.End.Container && r.Start.Offset == r.End.Offset
}

// IsValid returns true if start does not sort after end.
func (r Range) IsValid() bool {
	if r.IsZero() {
		return false
	}
	return r.Start.Compare(r.End) <= 0
}

// CommonAncestor returns the lowest node containing both boundaries.
func (r Range) CommonAncestor() *html.Node {
	return CommonAncestor(r.Start.Container, r.End.Container)
}

// CollapseToStart returns the range collapsed onto its start position.
func (r Range) CollapseToStart() Range {
	return Range{Start: r.Start, End: r.Start}
}

// CollapseToEnd returns the range collapsed onto its end position.
func (r Range) CollapseToEnd() Range {
	return Range{Start: r.End, End: r.End}
}

// CollapsedAt returns a collapsed range at p.
func CollapsedAt(p Position) Range {
	return Range{Start: p, End: p}
}
