// Package boxes defines the boundary between the inline layout and
// the rest of a layout engine : the geometry types, the containing block,
// the fragments produced by the layout and the independent boxes
// (atomic inlines and floats) laid out by external code.
//
// Geometry is logical : the inline axis grows from the start of the line
// (the left edge for 'direction: ltr', the right edge for 'direction: rtl')
// and the block axis grows downward.
package boxes

import (
	"fmt"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// Vec2 is a logical vector or point.
type Vec2 struct {
	Inline, Block pr.Float
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{Inline: v.Inline + other.Inline, Block: v.Block + other.Block}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{Inline: v.Inline - other.Inline, Block: v.Block - other.Block}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%s, %s)", v.Inline, v.Block)
}

// Rect is a logical rectangle.
type Rect struct {
	Start Vec2
	Size  Vec2
}

// InlineEnd returns Start.Inline + Size.Inline
func (r Rect) InlineEnd() pr.Float { return r.Start.Inline + r.Size.Inline }

// BlockEnd returns Start.Block + Size.Block
func (r Rect) BlockEnd() pr.Float { return r.Start.Block + r.Size.Block }

func (r Rect) String() string {
	return fmt.Sprintf("[%s %s]", r.Start, r.Size)
}

// ContainingBlock is the block container establishing
// the inline formatting context.
type ContainingBlock struct {
	InlineSize pr.Float
	// BlockSize is [pr.Inf] when it is not definite.
	BlockSize pr.Float
	Style     *pr.Style
}

// Direction returns the inline base direction of the
// containing block.
func (cb ContainingBlock) Direction() pr.Direction { return cb.Style.Direction }

// LogicalSides is a set of values in logical order.
type LogicalSides struct {
	InlineStart, InlineEnd, BlockStart, BlockEnd pr.Float
}

// ToLogical maps the physical [sides] to logical ones, for
// the given inline base [dir]ection.
func ToLogical(sides pr.Sides, dir pr.Direction) LogicalSides {
	return LogicalSides{
		InlineStart: sides.InlineStart(dir),
		InlineEnd:   sides.InlineEnd(dir),
		BlockStart:  sides.Top,
		BlockEnd:    sides.Bottom,
	}
}

// InlineSum returns InlineStart + InlineEnd
func (s LogicalSides) InlineSum() pr.Float { return s.InlineStart + s.InlineEnd }

// BlockSum returns BlockStart + BlockEnd
func (s LogicalSides) BlockSum() pr.Float { return s.BlockStart + s.BlockEnd }

// StartOffset returns the offset from the outer start corner to the inner one.
func (s LogicalSides) StartOffset() Vec2 { return Vec2{Inline: s.InlineStart, Block: s.BlockStart} }

// Sum returns the total size added by the sides.
func (s LogicalSides) Sum() Vec2 { return Vec2{Inline: s.InlineSum(), Block: s.BlockSum()} }
