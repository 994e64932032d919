package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/text"
)

type lineItemLayoutFlags uint8

const (
	hadInlineStartPBM lineItemLayoutFlags = 1 << iota
	hadInlineEndPBM
	hadAnyFloats
)

// lineItemLayoutState is the state of the root or of an inline
// box, while the items of a line are converted to fragments.
type lineItemLayoutState struct {
	box       *InlineBox // nil for the root
	fragments []bo.Fragment

	// inlineAdvance is the inline position of the next item,
	// relative to the content box of the inline box (or to the line).
	inlineAdvance pr.Float
	flags         lineItemLayoutFlags

	// parentOffset is the offset of the inline box content area
	// from the line, used to express fragments positions relatively
	// to their parent.
	parentOffset bo.Vec2
	// baselineOffset is the position of the baseline of the box,
	// relative to the line block start.
	baselineOffset pr.Float
}

// lineItemLayout converts the items of one line into fragments.
type lineItemLayout struct {
	layout *inlineLayout

	// lineBlockStart is the block position of the line in the containing block
	lineBlockStart pr.Float
	lineBlockSize  pr.Float
	// lineBaseline is the position of the line baseline, relative to its block start
	lineBaseline            pr.Float
	justificationAdjustment pr.Float

	current lineItemLayoutState
	stack   []lineItemLayoutState
}

// layoutLineItems returns the fragments of the line, positioned
// relatively to the line fragment.
func (layout *inlineLayout) layoutLineItems(items []lineItem, start bo.Vec2, blockSizes lineBlockSizes, justificationAdjustment pr.Float) []bo.Fragment {
	baseline := blockSizes.findBaselineOffset()
	lil := lineItemLayout{
		layout:                  layout,
		lineBlockStart:          start.Block,
		lineBlockSize:           blockSizes.resolve(),
		lineBaseline:            baseline,
		justificationAdjustment: justificationAdjustment,
		current: lineItemLayoutState{
			inlineAdvance:  start.Inline,
			baselineOffset: baseline,
		},
	}

	order := layout.visualOrder(items)
	// fragments are laid out in the inline direction
	if layout.containingBlock.Direction() == pr.RTL {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	for _, index := range order {
		item := items[index]
		lil.prepareLayoutForInlineBox(item.parentBox())

		switch item := item.(type) {
		case inlineStartBoxPBM:
			lil.current.flags |= hadInlineStartPBM
		case inlineEndBoxPBM:
			lil.current.flags |= hadInlineEndPBM
		case *textRunLineItem:
			lil.layoutTextRun(item)
		case *atomicLineItem:
			lil.layoutAtomic(item)
		case *absoluteLineItem:
			lil.layoutAbsolute(item)
		case *floatLineItem:
			lil.current.flags |= hadAnyFloats
			lil.layoutFloat(item)
		}
	}

	// close the remaining boxes
	lil.prepareLayoutForInlineBox(nil)

	return lil.current.fragments
}

// prepareLayoutForInlineBox ends and starts inline boxes so
// that [target] is the current box.
// The padding, border and margin items are laid out as children
// of their own box.
func (lil *lineItemLayout) prepareLayoutForInlineBox(target *InlineBox) {
	if lil.current.box == target {
		return
	}
	ends, starts := pathBetween(lil.current.box, target)
	for i := 0; i < ends; i++ {
		lil.endInlineBox()
	}
	for _, box := range starts {
		lil.startInlineBox(box)
	}
}

func (lil *lineItemLayout) startInlineBox(box *InlineBox) {
	boxState := lil.layout.boxStates[box]
	style := box.Style
	spaceAboveBaseline := boxState.spaceAboveBaseline()
	normalLineHeight := boxState.fontMetrics.NormalLineHeight

	var blockStart pr.Float
	switch style.VerticalAlign.Keyword {
	case pr.VATop:
		lineHeight := style.UsedLineHeight(normalLineHeight)
		blockStart = (lineHeight - normalLineHeight) / 2
	case pr.VABottom:
		lineHeight := style.UsedLineHeight(normalLineHeight)
		blockStart = lil.lineBlockSize - lineHeight + (lineHeight-normalLineHeight)/2
	default:
		blockStart = lil.lineBaseline + boxState.baselineOffset - spaceAboveBaseline
	}

	parent := lil.current
	lil.stack = append(lil.stack, parent)
	lil.current = lineItemLayoutState{
		box: box,
		parentOffset: bo.Vec2{
			Inline: parent.inlineAdvance + parent.parentOffset.Inline,
			Block:  blockStart,
		},
		baselineOffset: blockStart + spaceAboveBaseline,
	}
}

func (lil *lineItemLayout) endInlineBox() {
	inner := lil.current
	L := len(lil.stack)
	lil.current = lil.stack[L-1]
	lil.stack = lil.stack[:L-1]

	box := inner.box
	boxState := lil.layout.boxStates[box]

	hadStart := inner.flags&hadInlineStartPBM != 0
	hadEnd := inner.flags&hadInlineEndPBM != 0
	if box.Style.Direction != lil.layout.containingBlock.Direction() {
		hadStart, hadEnd = hadEnd, hadStart
	}

	dir := lil.layout.containingBlock.Direction()
	padding := bo.ToLogical(box.Style.Padding, dir)
	border := bo.ToLogical(box.Style.BorderWidth, dir)
	margin := bo.ToLogical(box.Style.Margin, dir)
	if !hadStart {
		padding.InlineStart, border.InlineStart, margin.InlineStart = 0, 0, 0
	}
	if !hadEnd {
		padding.InlineEnd, border.InlineEnd, margin.InlineEnd = 0, 0, 0
	}
	pbm := bo.LogicalSides{
		InlineStart: padding.InlineStart + border.InlineStart + margin.InlineStart,
		InlineEnd:   padding.InlineEnd + border.InlineEnd + margin.InlineEnd,
		BlockStart:  padding.BlockStart + border.BlockStart + margin.BlockStart,
		BlockEnd:    padding.BlockEnd + border.BlockEnd + margin.BlockEnd,
	}

	// empty boxes without edges are dropped
	if len(inner.fragments) == 0 && !hadStart && pbm.InlineSum() == 0 {
		return
	}

	content := bo.Rect{
		Start: bo.Vec2{
			Inline: lil.current.inlineAdvance + pbm.InlineStart,
			Block:  inner.parentOffset.Block - lil.current.parentOffset.Block,
		},
		Size: bo.Vec2{Inline: inner.inlineAdvance, Block: boxState.fontMetrics.NormalLineHeight},
	}

	// floats were positioned relatively to the margin box start
	if inner.flags&hadAnyFloats != 0 {
		for _, child := range inner.fragments {
			if f, ok := child.(*bo.BoxFragment); ok && f.Kind == bo.FloatKind {
				f.Translate(bo.Vec2{Inline: -pbm.InlineStart, Block: -pbm.BlockStart})
			}
		}
	}

	fragment := &bo.BoxFragment{
		Style:    box.Style,
		Kind:     bo.InlineBoxKind,
		Tag:      box.Tag,
		Content:  content,
		Padding:  padding,
		Border:   border,
		Margin:   margin,
		Children: inner.fragments,
	}
	lil.current.inlineAdvance += inner.inlineAdvance + pbm.InlineSum()
	lil.current.fragments = append(lil.current.fragments, fragment)
}

func (lil *lineItemLayout) layoutTextRun(item *textRunLineItem) {
	if len(item.runs) == 0 {
		return
	}

	var inlineAdvance pr.Float
	for _, run := range item.runs {
		inlineAdvance += run.TotalAdvance() + lil.justificationAdjustment*pr.Float(run.TotalWordSeparators())
	}

	metrics := item.font.Metrics
	rect := bo.Rect{
		Start: bo.Vec2{
			Inline: lil.current.inlineAdvance,
			Block:  lil.current.baselineOffset - metrics.Ascent - lil.current.parentOffset.Block,
		},
		Size: bo.Vec2{Inline: inlineAdvance, Block: metrics.NormalLineHeight},
	}
	lil.current.inlineAdvance += inlineAdvance

	lil.current.fragments = append(lil.current.fragments, &bo.TextFragment{
		Style:                   item.style,
		Rect:                    rect,
		Font:                    item.font,
		Glyphs:                  item.runs,
		Level:                   item.level,
		Decorations:             item.decorations,
		JustificationAdjustment: lil.justificationAdjustment,
	})
}

func (lil *lineItemLayout) layoutAtomic(item *atomicLineItem) {
	fragment := item.fragment
	pbm := fragment.PaddingBorderMargin()

	var blockStart pr.Float
	switch fragment.Style.VerticalAlign.Keyword {
	case pr.VATop:
		blockStart = 0
	case pr.VABottom:
		blockStart = lil.lineBlockSize - item.size.Block
	default:
		blockStart = lil.lineBaseline + item.baselineOffsetInParent - item.baselineOffsetInItem
	}

	fragment.Content.Start = bo.Vec2{
		Inline: lil.current.inlineAdvance + pbm.InlineStart,
		Block:  blockStart - lil.current.parentOffset.Block + pbm.BlockStart,
	}
	lil.current.inlineAdvance += item.size.Inline
	lil.current.fragments = append(lil.current.fragments, fragment)
}

func (lil *lineItemLayout) layoutAbsolute(item *absoluteLineItem) {
	// a box which was block level before being hoisted starts
	// on its own line, below the current one
	staticPosition := bo.Vec2{
		Inline: lil.current.inlineAdvance,
		Block:  -lil.current.parentOffset.Block,
	}
	if item.absolute.Style().DisplayBlock {
		staticPosition = bo.Vec2{
			Inline: -lil.current.parentOffset.Inline,
			Block:  lil.lineBlockSize - lil.current.parentOffset.Block,
		}
	}
	hoisted := &bo.HoistedFragment{Box: item.absolute, StaticPosition: staticPosition}
	lil.current.fragments = append(lil.current.fragments, hoisted)
	lil.layout.hoisted = append(lil.layout.hoisted, hoisted)
}

func (lil *lineItemLayout) layoutFloat(item *floatLineItem) {
	// floats are positioned relatively to the containing block :
	// make them relative to the parent
	item.fragment.Translate(bo.Vec2{
		Inline: -lil.current.parentOffset.Inline,
		Block:  -(lil.lineBlockStart + lil.current.parentOffset.Block),
	})
	lil.current.fragments = append(lil.current.fragments, item.fragment)
}

// lineItemLevels returns the bidi level of each item : items without
// their own level use the level of the previous one.
func (layout *inlineLayout) lineItemLevels(items []lineItem) []text.Level {
	levels := make([]text.Level, len(items))
	var last text.Level
	for i, item := range items {
		switch item := item.(type) {
		case *textRunLineItem:
			last = item.level
		case *atomicLineItem:
			last = item.level
		}
		levels[i] = last
	}
	return levels
}

// visualOrder returns the indices of [items], from left to right.
func (layout *inlineLayout) visualOrder(items []lineItem) []int {
	if !layout.ifc.Paragraph.HasRTL() {
		order := make([]int, len(items))
		for i := range order {
			order[i] = i
		}
		return order
	}
	return text.ReorderVisual(layout.lineItemLevels(items))
}
