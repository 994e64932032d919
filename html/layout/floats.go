package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/floats"
)

// placeLineAmongFloats returns the area available for a line of [size],
// relative to the containing block.
func (layout *inlineLayout) placeLineAmongFloats(size bo.Vec2) bo.Rect {
	state := layout.sequentialState
	offset := bo.Vec2{
		Inline: state.ContainingBlockInlineStart(),
		Block:  state.CurrentContainingBlockOffset(),
	}
	ceiling := layout.currentLine.lineBlockStartConsideringPlacementAmongFloats()
	placement := state.PlaceAmongFloats(ceiling+offset.Block, size)
	placement.Start = placement.Start.Sub(offset)
	return placement
}

// newPotentialLineSizeCausesLineBreak returns true if the current line
// can't grow to [size], and updates the placement of the
// line among the floats if needed.
func (layout *inlineLayout) newPotentialLineSizeCausesLineBreak(size bo.Vec2) bool {
	line := &layout.currentLine
	availableSpace := bo.Vec2{Inline: layout.containingBlock.InlineSize, Block: pr.Inf}
	if layout.sequentialState != nil {
		if line.placementAmongFloats == nil {
			line.replacePlacementAmongFloats(layout.placeLineAmongFloats(size))
		}
		availableSpace = line.placementAmongFloats.Size
	}

	inlineOverflows := size.Inline > availableSpace.Inline
	blockOverflows := size.Block > availableSpace.Block

	// the first content is always accepted : the line is
	// moved below the floats if needed
	if !line.hasContent {
		if layout.sequentialState != nil && (inlineOverflows || blockOverflows) {
			line.replacePlacementAmongFloats(layout.placeLineAmongFloats(size))
		}
		return false
	}

	// no placement can fit the line
	if size.Inline > layout.containingBlock.InlineSize {
		return true
	}

	// a taller line may have to move below floats : break if it
	// does not stay at the same block position
	if blockOverflows {
		newPlacement := layout.placeLineAmongFloats(size)
		if newPlacement.Start.Block != line.lineBlockStartConsideringPlacementAmongFloats() {
			return true
		}
		line.replacePlacementAmongFloats(newPlacement)
		return false
	}

	return inlineOverflows
}

// placeFloatLineItemForCommitToLine places a float found in a segment
// committed to the line, or delays it after the line if it does not fit.
func (layout *inlineLayout) placeFloatLineItemForCommitToLine(item *floatLineItem, lineInlineSizeWithoutTrailingWhitespace pr.Float) {
	line := &layout.currentLine
	marginBoxInlineSize := item.fragment.MarginRect().Size.Inline.Max(0)

	availableInlineSize := layout.containingBlock.InlineSize
	if line.placementAmongFloats != nil {
		availableInlineSize = line.placementAmongFloats.Size.Inline
	}
	availableInlineSize -= lineInlineSizeWithoutTrailingWhitespace

	hasContent := line.hasContent || layout.currentLineSegment.hasContent
	fits := !hasContent || marginBoxInlineSize <= availableInlineSize

	// floats are placed in order
	if line.hasFloatsWaitingToBePlaced || !fits {
		line.hasFloatsWaitingToBePlaced = true
	} else {
		layout.placeFloatFragment(item.fragment)
		item.needsPlacement = false
	}

	// the float may shrink the space of the line, and the
	// line may have grown since its last placement
	newPlacement := layout.placeLineAmongFloats(bo.Vec2{
		Inline: lineInlineSizeWithoutTrailingWhitespace,
		Block:  line.maxBlockSize.resolve(),
	})
	line.replacePlacementAmongFloats(newPlacement)
}

func (layout *inlineLayout) placeFloatFragment(fragment *bo.BoxFragment) {
	state := layout.sequentialState
	blockOffset := state.CurrentBlockPositionIncludingMargins() - state.CurrentContainingBlockOffset()
	state.PlaceFloatFragment(fragment, layout.containingBlock, floats.CollapsedMargin{}, blockOffset)
}

// placePendingFloats places the floats which did not fit
// on their line, once the line is finished.
func (layout *inlineLayout) placePendingFloats(items []lineItem) {
	for _, item := range items {
		if float, ok := item.(*floatLineItem); ok && float.needsPlacement {
			layout.placeFloatFragment(float.fragment)
			float.needsPlacement = false
		}
	}
}
