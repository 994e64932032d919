// Package layout breaks the content of an inline formatting context
// into lines, and resolves each line into positioned fragments.
//
// The layout is done in one pass over the items, in logical order.
// Items are accumulated in an unbreakable segment, which is committed
// to the current line at each soft wrap opportunity, after
// closing the line if the segment does not fit.
// See https://drafts.csswg.org/css-inline-3 and https://drafts.csswg.org/css-text-3
package layout

import (
	"fmt"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/floats"
	"github.com/benoitkugler/inlinelayout/logger"
	"github.com/benoitkugler/inlinelayout/text"
	"github.com/benoitkugler/inlinelayout/utils/testutils/tracer"
)

const (
	// if true, print debug information into Stdout
	debugMode = false
	// if true, dump each line into the trace file
	traceMode = false
)

var traceLogger tracer.Tracer // used only when traceMode is true

func init() {
	if traceMode {
		traceLogger = tracer.NewTracerFile("trace_inline.txt")
	}
}

// SequentialState is the float state of the block formatting
// context, which is implemented by *floats.SequentialLayoutState.
type SequentialState interface {
	CollapseMargins()
	AdvanceBlockPosition(distance pr.Float)
	CurrentBlockPositionIncludingMargins() pr.Float
	CurrentContainingBlockOffset() pr.Float
	ContainingBlockInlineStart() pr.Float
	CalculateClearanceForStyle(clear pr.Clear, dir pr.Direction) (pr.Float, bool)
	PlaceFloatFragment(fragment *bo.BoxFragment, cb bo.ContainingBlock, marginsCollapsingWithParent floats.CollapsedMargin, blockOffset pr.Float)
	PlaceAmongFloats(ceiling pr.Float, size bo.Vec2) bo.Rect
}

var _ SequentialState = (*floats.SequentialLayoutState)(nil)

// LayoutResult is the output of the layout of an inline formatting context.
type LayoutResult struct {
	// Fragments are the *bo.LineFragment of the non empty lines,
	// relative to the containing block.
	Fragments []bo.Fragment
	// Hoisted are the absolutely positioned boxes found in the lines,
	// to be laid out by their containing block.
	Hoisted []*bo.HoistedFragment

	// Baselines are relative to the containing block.
	Baselines        bo.Baselines
	ContentBlockSize pr.Float
	// CollapsedThrough is true if the context has no in-flow
	// content and no block size, so that margins collapse through it.
	CollapsedThrough bool
	// DependsOnBlockConstraints is true if the layout used
	// the block size of the containing block.
	DependsOnBlockConstraints bool
}

// inlineLayout stores the state of the layout of one inline formatting context.
type inlineLayout struct {
	ifc             *InlineFormattingContext
	containingBlock bo.ContainingBlock
	sequentialState SequentialState // may be nil

	rootState *inlineContainerState
	// boxStack are the inline boxes currently opened
	boxStack []*inlineBoxContainerState
	// boxStates stores the state of every inline box
	// met so far, used to lay out the lines
	boxStates map[*InlineBox]*inlineBoxContainerState

	fragments []bo.Fragment
	hoisted   []*bo.HoistedFragment

	currentLine        lineUnderConstruction
	currentLineSegment unbreakableSegment

	// linebreakBeforeNewContent is true when a forced line break
	// is waiting for the end of the current inline boxes.
	linebreakBeforeNewContent bool
	// deferredBrClear is the 'clear' value of the last <br>, applied
	// after its line break.
	deferredBrClear pr.Clear
	// haveDeferredSoftWrapOpportunity is set after an atomic inline,
	// and honoured by the next text run.
	haveDeferredSoftWrapOpportunity bool
	hadInflowContent                bool
	dependsOnBlockConstraints       bool

	// the white-space value of the current nesting level
	whiteSpace pr.WhiteSpace

	baselines bo.Baselines
}

// Layout breaks the content of [ifc] into lines, for the containing block [cb].
//
// [state] is the float state of the block formatting context. It may
// be nil (note that a nil *floats.SequentialLayoutState is not a nil interface),
// in which case a private one is used if the context contains floats.
func (ifc *InlineFormattingContext) Layout(cb bo.ContainingBlock, state SequentialState) LayoutResult {
	if cb.Style == nil {
		cb.Style = ifc.Style
	}
	if state == nil && ifc.ContainsFloats {
		state = floats.NewSequentialLayoutState(cb.InlineSize)
	}

	var firstLineInlineStart pr.Float
	if ifc.HasFirstFormattedLine {
		firstLineInlineStart = cb.Style.TextIndent.Resolve(cb.InlineSize, cb.Style.FontSize)
	}

	var metrics text.FontMetrics
	if ifc.Font != nil {
		metrics = ifc.Font.Metrics
	} else {
		logger.WarningLogger.Println("no font for the inline formatting context: using empty metrics")
	}

	layout := inlineLayout{
		ifc:                ifc,
		containingBlock:    cb,
		sequentialState:    state,
		rootState:          newInlineContainerState(cb.Style, nil, metrics),
		boxStates:          make(map[*InlineBox]*inlineBoxContainerState),
		currentLine:        newLineUnderConstruction(bo.Vec2{Inline: firstLineInlineStart}),
		currentLineSegment: newUnbreakableSegment(),
		whiteSpace:         cb.Style.WhiteSpace,
	}

	// margins never collapse through inline formatting contexts
	if state != nil {
		state.CollapseMargins()
	}

	for _, item := range ifc.Items {
		// any new box flushes a pending forced line break
		if _, isEnd := item.(EndInlineBox); !isEnd {
			layout.possiblyFlushDeferredForcedLineBreak()
		}

		switch item := item.(type) {
		case StartInlineBox:
			layout.startInlineBox(item.Box)
		case EndInlineBox:
			layout.finishInlineBox()
		case *TextRun:
			layout.layoutTextRun(item)
		case Atomic:
			layout.layoutAtomic(item)
		case FloatBox:
			layout.layoutFloat(item)
		case AbsoluteBox:
			layout.pushLineItemToUnbreakableSegment(&absoluteLineItem{box: layout.currentInlineBox(), absolute: item.Box})
		default:
			panic(fmt.Sprintf("unexpected inline item %T", item))
		}
	}

	layout.finishLastLine()

	contentBlockSize := layout.currentLine.startPosition.Block
	return LayoutResult{
		Fragments:                 layout.fragments,
		Hoisted:                   layout.hoisted,
		Baselines:                 layout.baselines,
		ContentBlockSize:          contentBlockSize,
		CollapsedThrough:          !layout.hadInflowContent && contentBlockSize == 0,
		DependsOnBlockConstraints: layout.dependsOnBlockConstraints,
	}
}

// currentInlineContainerState returns the innermost opened container.
func (layout *inlineLayout) currentInlineContainerState() *inlineContainerState {
	if L := len(layout.boxStack); L != 0 {
		return layout.boxStack[L-1].inlineContainerState
	}
	return layout.rootState
}

// currentInlineBox returns the innermost opened inline box, or nil.
func (layout *inlineLayout) currentInlineBox() *InlineBox {
	if L := len(layout.boxStack); L != 0 {
		return layout.boxStack[L-1].box
	}
	return nil
}

func (layout *inlineLayout) processingBrElement() bool {
	box := layout.currentInlineBox()
	return box != nil && box.IsLineBreak
}

func (layout *inlineLayout) startInlineBox(box *InlineBox) {
	state := newInlineBoxContainerState(box, layout.containingBlock, layout.currentInlineContainerState())

	// a <br> is made of the element and of the pseudo-element holding the
	// line break : only the first 'clear' value is used
	if box.IsLineBreak && layout.deferredBrClear == pr.ClearNone {
		layout.deferredBrClear = box.Style.Clear
	}

	if box.IsFirstSplit {
		layout.currentLineSegment.inlineSize += state.pbm.InlineStart
		layout.currentLineSegment.pushLineItem(inlineStartBoxPBM{box: box}, len(layout.boxStack))
		if state.pbm.InlineStart != 0 {
			layout.currentLineSegment.hasContent = true
			layout.hadInflowContent = true
		}
	}

	layout.boxStates[box] = state
	layout.boxStack = append(layout.boxStack, state)
}

func (layout *inlineLayout) finishInlineBox() {
	L := len(layout.boxStack)
	if L == 0 { // at the root
		return
	}
	state := layout.boxStack[L-1]
	layout.boxStack = layout.boxStack[:L-1]

	layout.currentLineSegment.maxBlockSize = layout.currentLineSegment.maxBlockSize.max(state.nestedStrutBlockSizes)

	// text following the box uses the 'white-space' of the parent
	if state.hasContent {
		layout.propagateCurrentNestingLevelWhiteSpaceStyle()
	}

	if state.box.IsLastSplit {
		if state.pbm.InlineEnd != 0 {
			layout.currentLineSegment.inlineSize += state.pbm.InlineEnd
			layout.currentLineSegment.hasContent = true
			layout.hadInflowContent = true
		}
		layout.currentLineSegment.pushLineItem(inlineEndBoxPBM{box: state.box}, len(layout.boxStack))
	}
}

func (layout *inlineLayout) propagateCurrentNestingLevelWhiteSpaceStyle() {
	layout.whiteSpace = layout.currentInlineContainerState().style.WhiteSpace
}

func (layout *inlineLayout) pushLineItemToUnbreakableSegment(item lineItem) {
	layout.currentLineSegment.pushLineItem(item, len(layout.boxStack))
}

// segmentContentFlags describes white space content.
type segmentContentFlags uint8

const (
	collapsibleWhitespace segmentContentFlags = 1 << iota
	wrappableAndHangableWhitespace
)

func segmentContentFlagsFromStyle(ws pr.WhiteSpace) segmentContentFlags {
	var flags segmentContentFlags
	collapse := ws.Collapse()
	// preserved white space never collapses
	if collapse != pr.Preserve && collapse != pr.BreakSpaces {
		flags |= collapsibleWhitespace
	}
	// 'break-spaces' white space never hangs
	if ws.WrapMode() == pr.Wrap && collapse != pr.BreakSpaces {
		flags |= wrappableAndHangableWhitespace
	}
	return flags
}

// updateUnbreakableSegmentForNewContent accounts for new content of [inlineSize],
// whose contribution to the line block size is [blockSizes].
func (layout *inlineLayout) updateUnbreakableSegmentForNewContent(blockSizes lineBlockSizes, inlineSize pr.Float, flags segmentContentFlags) {
	segment := &layout.currentLineSegment
	if flags != 0 {
		segment.trailingWhitespaceSize = inlineSize
	} else {
		segment.trailingWhitespaceSize = 0
	}
	if flags&collapsibleWhitespace == 0 {
		segment.hasContent = true
		layout.hadInflowContent = true
	}

	container := layout.currentInlineContainerState()
	segment.maxBlockSize = segment.maxBlockSize.max(container.nestedStrutBlockSizes).max(blockSizes)
	segment.inlineSize += inlineSize

	container.hasContent = true
	layout.propagateCurrentNestingLevelWhiteSpaceStyle()
}

// currentLineMaxBlockSizeIncludingNestedContainers includes
// the struts of the opened inline boxes.
func (layout *inlineLayout) currentLineMaxBlockSizeIncludingNestedContainers() lineBlockSizes {
	return layout.currentInlineContainerState().nestedStrutBlockSizes.max(layout.currentLine.maxBlockSize)
}

func (layout *inlineLayout) potentialLineSizeWithSegment() bo.Vec2 {
	return bo.Vec2{
		Inline: layout.currentLine.inlinePosition + layout.currentLineSegment.inlineSize - layout.currentLineSegment.trailingWhitespaceSize,
		Block:  layout.currentLineMaxBlockSizeIncludingNestedContainers().max(layout.currentLineSegment.maxBlockSize).resolve(),
	}
}

func (layout *inlineLayout) unbreakableSegmentFitsOnLine() bool {
	return !layout.newPotentialLineSizeCausesLineBreak(layout.potentialLineSizeWithSegment())
}

// processSoftWrapOpportunity commits the current segment, starting a
// new line if it does not fit.
func (layout *inlineLayout) processSoftWrapOpportunity() {
	if len(layout.currentLineSegment.items) == 0 {
		return
	}
	if layout.whiteSpace.WrapMode() == pr.Nowrap {
		return
	}
	if layout.newPotentialLineSizeCausesLineBreak(layout.potentialLineSizeWithSegment()) {
		layout.finishCurrentLineAndReset(false)
	}
	layout.commitCurrentSegmentToLine()
}

// deferForcedLineBreak waits for the end of the inline boxes
// to actually break the line.
func (layout *inlineLayout) deferForcedLineBreak() {
	// the pending segment goes to a new line if it does not fit
	if !layout.unbreakableSegmentFitsOnLine() {
		layout.processLineBreak(false)
	}

	layout.linebreakBeforeNewContent = true

	// a <br> only adds its strut on an otherwise empty line
	lineIsEmpty := !layout.currentLineSegment.hasContent && !layout.currentLine.hasContent
	if !layout.processingBrElement() || lineIsEmpty {
		strut := layout.currentInlineContainerState().strutBlockSizes
		layout.updateUnbreakableSegmentForNewContent(strut, 0, 0)
	}
}

func (layout *inlineLayout) processLineBreak(forcedLineBreak bool) {
	layout.currentLineSegment.trimLeadingWhitespace()
	layout.finishCurrentLineAndReset(forcedLineBreak)
}

func (layout *inlineLayout) possiblyFlushDeferredForcedLineBreak() {
	if !layout.linebreakBeforeNewContent {
		return
	}
	layout.commitCurrentSegmentToLine()
	layout.processLineBreak(true)
	layout.linebreakBeforeNewContent = false
}

func (layout *inlineLayout) finishLastLine() {
	// the current segment goes to a new line if it does not fit
	layout.processSoftWrapOpportunity()
	// no soft wrap is processed with 'nowrap' : force the commit
	layout.commitCurrentSegmentToLine()
	layout.finishCurrentLineAndReset(true)
}

// commitCurrentSegmentToLine moves the content of the segment to the line.
func (layout *inlineLayout) commitCurrentSegmentToLine() {
	segment := &layout.currentLineSegment
	// a segment may have content but no items after a forced
	// line break on an empty line
	if len(segment.items) == 0 && !segment.hasContent {
		return
	}

	if !layout.currentLine.hasContent {
		segment.trimLeadingWhitespace()
	}

	layout.currentLine.inlinePosition += segment.inlineSize
	layout.currentLine.maxBlockSize = layout.currentLineMaxBlockSizeIncludingNestedContainers().max(segment.maxBlockSize)
	lineInlineSizeWithoutTrailingWhitespace := layout.currentLine.inlinePosition - segment.trailingWhitespaceSize

	items := segment.items
	segment.items = nil
	for _, item := range items {
		if float, ok := item.(*floatLineItem); ok {
			layout.placeFloatLineItemForCommitToLine(float, lineInlineSizeWithoutTrailingWhitespace)
		}
	}

	// the line is placed among floats once it has its first content;
	// this is never a line break
	if len(layout.currentLine.items) == 0 {
		willBreak := layout.newPotentialLineSizeCausesLineBreak(bo.Vec2{
			Inline: lineInlineSizeWithoutTrailingWhitespace,
			Block:  segment.maxBlockSize.resolve(),
		})
		if willBreak {
			panic("line break requested for the first content of a line")
		}
	}

	layout.currentLine.items = append(layout.currentLine.items, items...)
	layout.currentLine.hasContent = layout.currentLine.hasContent || segment.hasContent
	segment.reset()
}

// finishCurrentLineAndReset closes the current line, lays it out into
// a fragment, and starts a new one.
func (layout *inlineLayout) finishCurrentLineAndReset(lastLineOrForcedLineBreak bool) {
	whitespaceTrimmed := layout.currentLine.trimTrailingWhitespace()
	inlineStartPosition, justificationAdjustment := layout.currentLineInlineStartAndJustificationAdjustment(whitespaceTrimmed, lastLineOrForcedLineBreak)
	blockStartPosition := layout.currentLine.lineBlockStartConsideringPlacementAmongFloats()

	hadInlineAdvance := layout.currentLine.inlinePosition != layout.currentLine.startPosition.Inline
	var effectiveBlockAdvance lineBlockSizes
	if layout.currentLine.hasContent || hadInlineAdvance || layout.linebreakBeforeNewContent {
		effectiveBlockAdvance = layout.currentLineMaxBlockSizeIncludingNestedContainers()
	}

	blockEndPosition := blockStartPosition + effectiveBlockAdvance.resolve()
	if state := layout.sequentialState; state != nil {
		// include the space used to avoid floats
		state.AdvanceBlockPosition(blockEndPosition - layout.currentLine.startPosition.Block)

		// a <br> with clearance also makes room for the floats
		if clearance, ok := state.CalculateClearanceForStyle(layout.deferredBrClear, layout.containingBlock.Direction()); ok {
			state.AdvanceBlockPosition(clearance)
			blockEndPosition += clearance
		}
		layout.deferredBrClear = pr.ClearNone
	}

	lineToLayout := layout.currentLine
	layout.currentLine = newLineUnderConstruction(bo.Vec2{Block: blockEndPosition})

	if lineToLayout.hasFloatsWaitingToBePlaced {
		layout.placePendingFloats(lineToLayout.items)
	}

	baselineOffset := effectiveBlockAdvance.findBaselineOffset()
	startPosition := bo.Vec2{Inline: inlineStartPosition, Block: blockStartPosition}
	hoistedBefore := len(layout.hoisted)
	children := layout.layoutLineItems(lineToLayout.items, startPosition, effectiveBlockAdvance, justificationAdjustment)

	// lines without fragments are dropped
	if len(children) == 0 && len(layout.hoisted) == hoistedBefore {
		return
	}

	baseline := baselineOffset + blockStartPosition
	if layout.baselines.First == nil {
		layout.baselines.First = baseline
	}
	layout.baselines.Last = baseline

	// the inline start of the line is already taken into account
	// by its children
	line := &bo.LineFragment{
		Rect: bo.Rect{
			Start: bo.Vec2{Block: blockStartPosition},
			Size:  bo.Vec2{Inline: layout.containingBlock.InlineSize, Block: effectiveBlockAdvance.resolve()},
		},
		Baseline: baselineOffset,
		Children: children,
	}
	layout.fragments = append(layout.fragments, line)

	if traceMode {
		traceLogger.DumpLine(line)
	}
	if debugMode {
		fmt.Printf("line at %s: %d children, baseline %s\n", line.Rect, len(children), baselineOffset)
	}
}
