package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// baselineRelativeSize is a block size split by a baseline.
type baselineRelativeSize struct {
	ascent, descent pr.Float
}

func (b baselineRelativeSize) max(other baselineRelativeSize) baselineRelativeSize {
	return baselineRelativeSize{ascent: b.ascent.Max(other.ascent), descent: b.descent.Max(other.descent)}
}

// adjustForNestedBaselineOffset moves the baseline down by [offset],
// which is relative to the line baseline.
func (b baselineRelativeSize) adjustForNestedBaselineOffset(offset pr.Float) baselineRelativeSize {
	return baselineRelativeSize{ascent: b.ascent - offset, descent: b.descent + offset}
}

// lineBlockSizes is the contribution of some content to the block
// size of a line.
type lineBlockSizes struct {
	lineHeight pr.Float
	// baselineRelativeSizeForLineHeight is not set for content
	// aligned with 'top' and 'bottom'.
	baselineRelativeSizeForLineHeight    baselineRelativeSize
	hasBaselineRelativeSizeForLineHeight bool
	// sizeForBaselinePositioning is used to resolve 'text-top', 'text-bottom'
	// and 'middle'.
	sizeForBaselinePositioning baselineRelativeSize
}

func (l lineBlockSizes) max(other lineBlockSizes) lineBlockSizes {
	out := lineBlockSizes{
		lineHeight:                 pr.Maxs(l.lineHeight, other.lineHeight),
		sizeForBaselinePositioning: l.sizeForBaselinePositioning.max(other.sizeForBaselinePositioning),
	}
	switch {
	case l.hasBaselineRelativeSizeForLineHeight && other.hasBaselineRelativeSizeForLineHeight:
		out.baselineRelativeSizeForLineHeight = l.baselineRelativeSizeForLineHeight.max(other.baselineRelativeSizeForLineHeight)
		out.hasBaselineRelativeSizeForLineHeight = true
	case l.hasBaselineRelativeSizeForLineHeight:
		out.baselineRelativeSizeForLineHeight = l.baselineRelativeSizeForLineHeight
		out.hasBaselineRelativeSizeForLineHeight = true
	case other.hasBaselineRelativeSizeForLineHeight:
		out.baselineRelativeSizeForLineHeight = other.baselineRelativeSizeForLineHeight
		out.hasBaselineRelativeSizeForLineHeight = true
	}
	return out
}

func (l *lineBlockSizes) adjustForBaselineOffset(offset pr.Float) {
	if l.hasBaselineRelativeSizeForLineHeight {
		l.baselineRelativeSizeForLineHeight = l.baselineRelativeSizeForLineHeight.adjustForNestedBaselineOffset(offset)
	}
	l.sizeForBaselinePositioning = l.sizeForBaselinePositioning.adjustForNestedBaselineOffset(offset)
}

// resolve returns the block size of the line.
func (l lineBlockSizes) resolve() pr.Float {
	var fromAscentAndDescent pr.Float
	if l.hasBaselineRelativeSizeForLineHeight {
		fromAscentAndDescent = (l.baselineRelativeSizeForLineHeight.ascent + l.baselineRelativeSizeForLineHeight.descent).Abs()
	}
	return pr.Maxs(l.lineHeight, fromAscentAndDescent)
}

// findBaselineOffset returns the position of the baseline,
// relative to the block start of the line.
func (l lineBlockSizes) findBaselineOffset() pr.Float {
	if l.hasBaselineRelativeSizeForLineHeight {
		return l.baselineRelativeSizeForLineHeight.ascent
	}
	// only 'top' and 'bottom' aligned content
	positioning := l.sizeForBaselinePositioning
	leading := l.resolve() - (positioning.ascent + positioning.descent)
	return leading/2 + positioning.ascent
}
