package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/text"
)

// See https://www.w3.org/TR/css-inline-3/#valdef-baseline-shift-sub
const (
	fontSubscriptOffsetRatio   = 0.20
	fontSuperscriptOffsetRatio = 0.34
)

// inlineContainerState is the state of the block container or
// of an inline box, while its content is broken into lines.
type inlineContainerState struct {
	style       *pr.Style
	fontMetrics text.FontMetrics
	decorations pr.Decorations

	// strutBlockSizes is the contribution of the strut of the container, with
	// its baseline offset applied.
	strutBlockSizes lineBlockSizes
	// nestedStrutBlockSizes is the maximum of the struts of this container
	// and of all its ancestors.
	nestedStrutBlockSizes lineBlockSizes

	// baselineOffset is the offset of the baseline of the container
	// from the baseline of the line, positive downward.
	baselineOffset pr.Float

	// hasContent is set when content has been added to
	// the container.
	hasContent bool
}

// effectiveVerticalAlign ignores 'vertical-align' for the root.
func effectiveVerticalAlign(style *pr.Style, parent *inlineContainerState) pr.VerticalAlign {
	if parent == nil {
		return pr.VerticalAlign{Keyword: pr.VABaseline}
	}
	return style.VerticalAlign
}

func newInlineContainerState(style *pr.Style, parent *inlineContainerState, metrics text.FontMetrics) *inlineContainerState {
	out := &inlineContainerState{
		style:       style,
		fontMetrics: metrics,
		decorations: style.TextDecorationLine,
	}
	if parent != nil {
		out.decorations |= parent.decorations
	}
	lineHeight := style.UsedLineHeight(metrics.NormalLineHeight)
	out.strutBlockSizes = blockSizesWithStyle(effectiveVerticalAlign(style, parent), style, metrics.Ascent, metrics.Descent, metrics, lineHeight)
	if parent != nil {
		out.baselineOffset = parent.cumulativeBaselineOffsetForChild(style.VerticalAlign, out.strutBlockSizes)
		out.strutBlockSizes.adjustForBaselineOffset(out.baselineOffset)
		out.nestedStrutBlockSizes = parent.nestedStrutBlockSizes
	}
	out.nestedStrutBlockSizes = out.nestedStrutBlockSizes.max(out.strutBlockSizes)
	return out
}

// blockSizesWithStyle computes the block contribution of content with
// the given [ascent] and [descent], applying the half-leading model.
// [metrics] are the metrics of the first available font of the container.
func blockSizesWithStyle(va pr.VerticalAlign, style *pr.Style, ascent, descent pr.Float,
	metrics text.FontMetrics, lineHeight pr.Float,
) lineBlockSizes {
	if !va.IsBaselineRelative() {
		return lineBlockSizes{lineHeight: lineHeight}
	}
	if style.LineHeight.Normal {
		halfLineGap := (metrics.NormalLineHeight - (metrics.Ascent + metrics.Descent)) / 2
		ascent += halfLineGap
		descent += halfLineGap
	} else {
		halfLeading := (lineHeight - (ascent + descent)) / 2
		ascent += halfLeading
		descent = lineHeight - ascent
	}
	size := baselineRelativeSize{ascent: ascent, descent: descent}
	return lineBlockSizes{
		lineHeight:                           lineHeight,
		baselineRelativeSizeForLineHeight:    size,
		hasBaselineRelativeSizeForLineHeight: true,
		sizeForBaselinePositioning:           size,
	}
}

// blockSizeContribution returns the contribution of content using
// a font with [metrics], in this container.
func (s *inlineContainerState) blockSizeContribution(va pr.VerticalAlign, metrics text.FontMetrics) lineBlockSizes {
	return blockSizesWithStyle(va, s.style, metrics.Ascent, metrics.Descent, s.fontMetrics,
		s.style.UsedLineHeight(s.fontMetrics.NormalLineHeight))
}

// cumulativeBaselineOffsetForChild returns the baseline offset of a child with
// the given 'vertical-align' and block size, relative to the line baseline.
func (s *inlineContainerState) cumulativeBaselineOffsetForChild(childVerticalAlign pr.VerticalAlign, child lineBlockSizes) pr.Float {
	var offset pr.Float
	switch childVerticalAlign.Keyword {
	case pr.VASub:
		offset = s.blockSizeContribution(childVerticalAlign, s.fontMetrics).resolve() * fontSubscriptOffsetRatio
	case pr.VASuper:
		offset = -s.blockSizeContribution(childVerticalAlign, s.fontMetrics).resolve() * fontSuperscriptOffsetRatio
	case pr.VATextTop:
		offset = child.sizeForBaselinePositioning.ascent - s.fontMetrics.Ascent
	case pr.VAMiddle:
		// align the vertical midpoint of the box with the baseline
		// of the parent box plus half the x-height of the parent
		offset = (child.sizeForBaselinePositioning.ascent - child.sizeForBaselinePositioning.descent - s.fontMetrics.XHeight) / 2
	case pr.VATextBottom:
		offset = s.fontMetrics.Descent - child.sizeForBaselinePositioning.descent
	case pr.VALength:
		// positive values raise the box
		offset = -childVerticalAlign.Length.Resolve(child.lineHeight, s.style.FontSize)
	default: // baseline, and top and bottom which are handled at line layout
	}
	return s.baselineOffset + offset
}

// inlineBoxContainerState adds the box model of an inline box
// to its container state.
type inlineBoxContainerState struct {
	*inlineContainerState
	box *InlineBox
	pbm bo.LogicalSides
}

func newInlineBoxContainerState(box *InlineBox, cb bo.ContainingBlock, parent *inlineContainerState) *inlineBoxContainerState {
	metrics := parent.fontMetrics
	if box.Font != nil {
		metrics = box.Font.Metrics
	}
	pbm := box.Style.PaddingBorderMargin()
	return &inlineBoxContainerState{
		inlineContainerState: newInlineContainerState(box.Style, parent, metrics),
		box:                  box,
		pbm:                  bo.ToLogical(pbm, cb.Direction()),
	}
}

// spaceAboveBaseline returns the distance between the top of the content
// area and the baseline.
func (s *inlineBoxContainerState) spaceAboveBaseline() pr.Float {
	m := s.fontMetrics
	leading := m.NormalLineHeight - (m.Ascent + m.Descent)
	return leading/2 + m.Ascent
}
