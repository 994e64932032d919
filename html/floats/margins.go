// Package floats implements the placement of floats in a block
// formatting context, following the rules of CSS 2 section 9.5.1,
// and the search of the space left by the floats for in-flow content.
//
// All positions are logical and relative to the block formatting context.
package floats

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// CollapsedMargin stores the biggest positive and the
// smallest negative margins of a set of adjoining margins.
type CollapsedMargin struct {
	MaxPositive, MinNegative pr.Float
}

// NewCollapsedMargin returns a set made of one margin.
func NewCollapsedMargin(margin pr.Float) CollapsedMargin {
	return CollapsedMargin{MaxPositive: margin.Max(0), MinNegative: margin.Min(0)}
}

// Adjoin returns the union of the two sets.
func (c CollapsedMargin) Adjoin(other CollapsedMargin) CollapsedMargin {
	return CollapsedMargin{
		MaxPositive: c.MaxPositive.Max(other.MaxPositive),
		MinNegative: c.MinNegative.Min(other.MinNegative),
	}
}

// Solve returns the resulting collapsed margin.
func (c CollapsedMargin) Solve() pr.Float { return c.MaxPositive + c.MinNegative }
