package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// unbreakableSegment is the content between two soft wrap opportunities,
// which must be placed on the same line.
type unbreakableSegment struct {
	items []lineItem

	inlineSize   pr.Float
	maxBlockSize lineBlockSizes
	// trailingWhitespaceSize is the size of the collapsible
	// or hangable white space at the end of the segment, which
	// is ignored to decide if the segment fits.
	trailingWhitespaceSize pr.Float

	// inlineBoxHierarchyDepth is the depth of the inline box
	// containing the first item, or -1 for an empty segment.
	inlineBoxHierarchyDepth int

	hasContent bool
}

func newUnbreakableSegment() unbreakableSegment {
	return unbreakableSegment{inlineBoxHierarchyDepth: -1}
}

func (s *unbreakableSegment) pushLineItem(item lineItem, depth int) {
	if len(s.items) == 0 {
		s.inlineBoxHierarchyDepth = depth
	}
	s.items = append(s.items, item)
}

// reset prepares for a new segment. Items must have
// been moved to the line.
func (s *unbreakableSegment) reset() {
	if len(s.items) != 0 {
		panic("resetting a segment with remaining items")
	}
	*s = unbreakableSegment{items: s.items, inlineBoxHierarchyDepth: -1}
}

// trimLeadingWhitespace removes the collapsible white space at the start
// of the segment, for instance when it is moved to a new line.
func (s *unbreakableSegment) trimLeadingWhitespace() {
	var trimmed pr.Float
	for _, item := range s.items {
		if !item.trimWhitespaceAtStart(&trimmed) {
			break
		}
	}
	s.inlineSize -= trimmed
}
