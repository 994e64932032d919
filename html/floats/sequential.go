package floats

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/logger"
)

// SequentialLayoutState is the state of a block formatting context
// containing floats, which must be laid out in document order.
// It is passed from one box to its next sibling, and is not safe
// for concurrent use.
type SequentialLayoutState struct {
	Floats *FloatContext

	// BFCRelativeBlockPosition is the position of the in-flow content
	// laid out so far, without the pending margins.
	BFCRelativeBlockPosition pr.Float
	// CurrentMargin are the margins which may still collapse with the
	// next content.
	CurrentMargin CollapsedMargin
}

// NewSequentialLayoutState returns the state of an empty
// block formatting context.
func NewSequentialLayoutState(maxInlineSize pr.Float) *SequentialLayoutState {
	return &SequentialLayoutState{Floats: NewFloatContext(maxInlineSize)}
}

// AdvanceBlockPosition moves the in-flow content position, which also
// is the ceiling for the next floats.
func (s *SequentialLayoutState) AdvanceBlockPosition(distance pr.Float) {
	s.BFCRelativeBlockPosition += distance
	s.Floats.CeilingFromNonFloats = s.BFCRelativeBlockPosition
}

// ReplaceContainingBlockInfo installs [info] and returns the previous value,
// to be restored once the containing block is laid out.
func (s *SequentialLayoutState) ReplaceContainingBlockInfo(info ContainingBlockInfo) ContainingBlockInfo {
	previous := s.Floats.ContainingBlockInfo
	s.Floats.ContainingBlockInfo = info
	return previous
}

// AdjoinMargin adds [margin] to the pending margins.
func (s *SequentialLayoutState) AdjoinMargin(margin CollapsedMargin) {
	s.CurrentMargin = s.CurrentMargin.Adjoin(margin)
}

// CollapseMargins advances the block position by the pending margins.
func (s *SequentialLayoutState) CollapseMargins() {
	s.AdvanceBlockPosition(s.CurrentMargin.Solve())
	s.CurrentMargin = CollapsedMargin{}
}

// CurrentBlockPositionIncludingMargins returns the position of the next in-flow content.
func (s *SequentialLayoutState) CurrentBlockPositionIncludingMargins() pr.Float {
	return s.BFCRelativeBlockPosition + s.CurrentMargin.Solve()
}

// CurrentContainingBlockOffset returns the block position of the
// current containing block.
func (s *SequentialLayoutState) CurrentContainingBlockOffset() pr.Float {
	return s.Floats.ContainingBlockInfo.BlockStart
}

// ContainingBlockInlineStart returns the inline position of the
// current containing block.
func (s *SequentialLayoutState) ContainingBlockInlineStart() pr.Float {
	return s.Floats.ContainingBlockInfo.InlineStart
}

func (s *SequentialLayoutState) positionWithoutClearance(margin CollapsedMargin) pr.Float {
	return s.BFCRelativeBlockPosition + s.CurrentMargin.Adjoin(margin).Solve()
}

func (s *SequentialLayoutState) positionWithZeroClearance(margin CollapsedMargin) pr.Float {
	return s.BFCRelativeBlockPosition + s.CurrentMargin.Solve() + margin.Solve()
}

// CalculateClearance returns the clearance of a box with the given 'clear'
// value and block start [margin], or false if the box has no clearance.
// Note that the clearance may be negative.
func (s *SequentialLayoutState) CalculateClearance(clear Clear, margin CollapsedMargin) (pr.Float, bool) {
	if clear == ClearNone {
		return 0, false
	}
	hypothetical := s.positionWithoutClearance(margin)
	var clearPosition pr.Float
	switch clear {
	case ClearInlineStart:
		clearPosition = s.Floats.ClearInlineStartPosition
	case ClearInlineEnd:
		clearPosition = s.Floats.ClearInlineEndPosition
	case ClearBoth:
		clearPosition = s.Floats.ClearInlineStartPosition.Max(s.Floats.ClearInlineEndPosition)
	}
	if hypothetical >= clearPosition {
		return 0, false
	}
	return clearPosition - s.positionWithZeroClearance(margin), true
}

// CalculateClearanceForStyle is a convenience wrapper around [CalculateClearance],
// for a box without block start margin.
func (s *SequentialLayoutState) CalculateClearanceForStyle(clear pr.Clear, dir pr.Direction) (pr.Float, bool) {
	return s.CalculateClearance(ClearFromStyle(clear, dir), CollapsedMargin{})
}

// PlaceFloatFragment adds the float [fragment], laid out in [cb], and
// updates its content position, relative to the containing block.
// [blockOffset] is the in-flow position of the float placeholder,
// relative to the top of the containing block.
func (s *SequentialLayoutState) PlaceFloatFragment(fragment *bo.BoxFragment, cb bo.ContainingBlock,
	marginsCollapsingWithParent CollapsedMargin, blockOffset pr.Float,
) {
	info := s.Floats.ContainingBlockInfo
	cbBlockStart := info.BlockStart + info.BlockStartMarginsNotCollapsed.Adjoin(marginsCollapsingWithParent).Solve()
	s.Floats.CeilingFromNonFloats = cbBlockStart + blockOffset

	side, ok := SideFromStyle(fragment.Style.Float, cb.Direction())
	if !ok {
		logger.WarningLogger.Printf("placing a box which is not floated (%s): using float: left", fragment.Tag)
		side = InlineStart
	}
	pbm := fragment.PaddingBorderMargin()
	marginBoxStart := s.Floats.AddFloat(PlacementInfo{
		Size:  fragment.Content.Size.Add(pbm.Sum()),
		Side:  side,
		Clear: ClearFromStyle(fragment.Style.Clear, cb.Direction()),
	})

	positionInBFC := marginBoxStart.Add(pbm.StartOffset())
	fragment.Content.Start = bo.Vec2{
		Inline: positionInBFC.Inline - info.InlineStart,
		Block:  positionInBFC.Block - cbBlockStart,
	}
}

// PlaceAmongFloats returns the area where an object of [size] may be put,
// at or below [ceiling]. Both the argument and the returned
// rectangle are relative to the block formatting context.
func (s *SequentialLayoutState) PlaceAmongFloats(ceiling pr.Float, size bo.Vec2) bo.Rect {
	return NewPlacementAmongFloats(s.Floats, ceiling, size, bo.LogicalSides{}).Place()
}
