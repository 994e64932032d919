package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/logger"
	"github.com/benoitkugler/inlinelayout/text"
)

// segmentStartSoftWrapPolicy decides what to do with the
// soft wrap opportunity at the start of a text segment.
type segmentStartSoftWrapPolicy uint8

const (
	followLinebreaker segmentStartSoftWrapPolicy = iota
	force
	prevent
)

func (layout *inlineLayout) layoutTextRun(run *TextRun) {
	if run.Start >= run.End || len(run.Segments) == 0 {
		return
	}

	policy := followLinebreaker
	if layout.haveDeferredSoftWrapOpportunity {
		// the opportunity after an atomic inline is
		// suppressed by some characters
		if r, ok := layout.ifc.Paragraph.RuneAt(run.Start); ok && text.PreventsSoftWrapAroundAtomic(r) {
			policy = prevent
		} else {
			policy = force
		}
	}
	layout.haveDeferredSoftWrapOpportunity = false

	for _, segment := range run.Segments {
		if segment.BreakAtStart && policy == followLinebreaker {
			policy = force
		}

		for i, glyphs := range segment.Runs {
			layout.possiblyFlushDeferredForcedLineBreak()

			// preserved newlines are forced line breaks, which
			// wait for the end of the current inline boxes
			if glyphs.IsSingleNewline() {
				layout.deferForcedLineBreak()
				continue
			}

			// runs are separated by soft wrap opportunities
			if i != 0 || policy == force {
				layout.processSoftWrapOpportunity()
			}
			layout.pushGlyphRun(run, segment.Font, segment.Level, glyphs)
		}

		policy = followLinebreaker
	}
}

func (layout *inlineLayout) pushGlyphRun(run *TextRun, font *text.Font, level text.Level, glyphs *text.GlyphRun) {
	container := layout.currentInlineContainerState()
	inlineAdvance := glyphs.TotalAdvance()

	var flags segmentContentFlags
	if glyphs.IsWhitespace() {
		flags = segmentContentFlagsFromStyle(run.Style.WhiteSpace)
	}

	// a fallback font contributes its own metrics to the line
	var blockContribution lineBlockSizes
	if font.Metrics != container.fontMetrics {
		blockContribution = container.blockSizeContribution(effectiveVerticalAlign(container.style, layout.parentOfCurrentContainer()), font.Metrics)
		blockContribution.adjustForBaselineOffset(container.baselineOffset)
	}
	layout.updateUnbreakableSegmentForNewContent(blockContribution, inlineAdvance, flags)

	box := layout.currentInlineBox()
	if L := len(layout.currentLineSegment.items); L != 0 {
		if last, ok := layout.currentLineSegment.items[L-1].(*textRunLineItem); ok && last.canMerge(box, font, level) {
			last.runs = append(last.runs, glyphs)
			return
		}
	}

	layout.pushLineItemToUnbreakableSegment(&textRunLineItem{
		box:         box,
		style:       run.Style,
		font:        font,
		level:       level,
		decorations: container.decorations,
		runs:        []*text.GlyphRun{glyphs},
	})
}

// parentOfCurrentContainer returns nil at the root, so that
// 'vertical-align' is ignored.
func (layout *inlineLayout) parentOfCurrentContainer() *inlineContainerState {
	L := len(layout.boxStack)
	switch L {
	case 0:
		return nil
	case 1:
		return layout.rootState
	default:
		return layout.boxStack[L-2].inlineContainerState
	}
}

// layoutIndependentBox runs the layout of [box], replacing a
// missing fragment by an empty one.
func (layout *inlineLayout) layoutIndependentBox(box bo.IndependentBox, kind bo.BoxKind) *bo.BoxFragment {
	fragment := box.Layout(layout.containingBlock)
	if fragment == nil {
		logger.WarningLogger.Printf("no fragment for %s box: using an empty one", kind)
		fragment = &bo.BoxFragment{Style: box.Style()}
	}
	fragment.Kind = kind
	if fragment.DependsOnBlockConstraints {
		layout.dependsOnBlockConstraints = true
	}
	return fragment
}

func (layout *inlineLayout) layoutAtomic(atomic Atomic) {
	paragraph := layout.ifc.Paragraph
	offset := atomic.OffsetInText

	// soft wrap opportunity before the box
	if layout.whiteSpace.WrapMode() == pr.Wrap {
		r, ok := paragraph.RuneAt(offset - 1)
		if !ok || !text.PreventsSoftWrapAroundAtomic(r) {
			layout.processSoftWrapOpportunity()
		}
	}

	fragment := layout.layoutIndependentBox(atomic.Box, bo.AtomicKind)
	style := fragment.Style
	pbm := fragment.PaddingBorderMargin()
	size := fragment.Content.Size.Add(bo.Vec2{Inline: pbm.InlineSum(), Block: pbm.BlockSum()})

	// boxes without baseline use their margin box bottom edge
	baselineOffsetInItem := size.Block
	if fragment.Baselines.Last != nil {
		baselineOffsetInItem = pbm.BlockStart + fragment.Baselines.Last.V()
	}

	var blockSizes lineBlockSizes
	if !style.VerticalAlign.IsBaselineRelative() {
		blockSizes = lineBlockSizes{lineHeight: size.Block}
	} else {
		rel := baselineRelativeSize{ascent: baselineOffsetInItem, descent: size.Block - baselineOffsetInItem}
		blockSizes = lineBlockSizes{
			lineHeight:                           size.Block,
			baselineRelativeSizeForLineHeight:    rel,
			hasBaselineRelativeSizeForLineHeight: true,
			sizeForBaselinePositioning:           rel,
		}
	}

	baselineOffset := layout.currentInlineContainerState().cumulativeBaselineOffsetForChild(style.VerticalAlign, blockSizes)
	blockSizes.adjustForBaselineOffset(baselineOffset)

	layout.updateUnbreakableSegmentForNewContent(blockSizes, size.Inline, 0)

	layout.pushLineItemToUnbreakableSegment(&atomicLineItem{
		box:                    layout.currentInlineBox(),
		fragment:               fragment,
		size:                   size,
		baselineOffsetInParent: baselineOffset,
		baselineOffsetInItem:   baselineOffsetInItem,
		level:                  paragraph.LevelAt(offset),
	})

	// the opportunity after the box is handled by the next text run
	r, ok := paragraph.RuneAt(offset + 1)
	layout.haveDeferredSoftWrapOpportunity = !ok || !text.PreventsSoftWrapAroundAtomic(r)
}

func (layout *inlineLayout) layoutFloat(float FloatBox) {
	fragment := layout.layoutIndependentBox(float.Box, bo.FloatKind)
	layout.pushLineItemToUnbreakableSegment(&floatLineItem{
		box:            layout.currentInlineBox(),
		fragment:       fragment,
		needsPlacement: true,
	})
}
