package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// usedTextAlign resolves 'text-align' and 'text-align-last' to
// one of start, end, center or justify.
func usedTextAlign(style *pr.Style, lastLineOrForcedLineBreak bool) pr.TextAlign {
	align := style.TextAlign
	if lastLineOrForcedLineBreak {
		switch style.TextAlignLast {
		case pr.TAAuto:
			if align == pr.TAJustify {
				align = pr.TAStart
			}
		default:
			align = style.TextAlignLast
		}
	}

	ltr := style.Direction == pr.LTR
	switch align {
	case pr.TALeft:
		if ltr {
			return pr.TAStart
		}
		return pr.TAEnd
	case pr.TARight:
		if ltr {
			return pr.TAEnd
		}
		return pr.TAStart
	case pr.TAAuto:
		return pr.TAStart
	default:
		return align
	}
}

// currentLineInlineStartAndJustificationAdjustment returns the inline start
// of the content of the current line, and the space to add to each
// justification opportunity.
func (layout *inlineLayout) currentLineInlineStartAndJustificationAdjustment(whitespaceTrimmed pr.Float, lastLineOrForcedLineBreak bool) (inlineStart, adjustment pr.Float) {
	style := layout.containingBlock.Style
	line := &layout.currentLine

	align := usedTextAlign(style, lastLineOrForcedLineBreak)

	lineStart, availableSpace := pr.Float(0), layout.containingBlock.InlineSize
	if line.placementAmongFloats != nil {
		lineStart = line.placementAmongFloats.Start.Inline
		availableSpace = line.placementAmongFloats.Size.Inline
	}

	// the text indent is included in the inline position
	textIndent := line.startPosition.Inline
	lineLength := line.inlinePosition - whitespaceTrimmed - textIndent

	var offset pr.Float
	switch align {
	case pr.TAEnd:
		offset = pr.Maxs(availableSpace-lineLength, textIndent)
	case pr.TACenter:
		offset = pr.Maxs((availableSpace-lineLength+textIndent)/2, textIndent)
	default: // start and justify
		offset = textIndent
	}

	if align == pr.TAJustify && style.TextJustify != pr.TJNone {
		if n := line.countJustificationOpportunities(); n > 0 {
			adjustment = pr.Maxs(0, (availableSpace-textIndent-lineLength)/pr.Float(n))
		}
	}

	return lineStart + offset, adjustment
}
