package floats

import (
	"fmt"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"golang.org/x/exp/slices"
)

// Side is the logical side a float sticks to.
type Side uint8

const (
	InlineStart Side = iota
	InlineEnd
)

func (s Side) String() string {
	if s == InlineEnd {
		return "inline-end"
	}
	return "inline-start"
}

// SideFromStyle maps the physical 'float' value to a logical side,
// using the direction of the containing block.
// It returns false for 'float: none'.
func SideFromStyle(float pr.FloatSide, dir pr.Direction) (Side, bool) {
	switch float {
	case pr.FloatLeft:
		if dir == pr.RTL {
			return InlineEnd, true
		}
		return InlineStart, true
	case pr.FloatRight:
		if dir == pr.RTL {
			return InlineStart, true
		}
		return InlineEnd, true
	default:
		return 0, false
	}
}

// Clear is the logical version of the 'clear' property.
type Clear uint8

const (
	ClearNone Clear = iota
	ClearInlineStart
	ClearInlineEnd
	ClearBoth
)

// ClearFromStyle maps the physical 'clear' value to a logical one,
// using the direction of the containing block.
func ClearFromStyle(clear pr.Clear, dir pr.Direction) Clear {
	switch clear {
	case pr.ClearLeft:
		if dir == pr.RTL {
			return ClearInlineEnd
		}
		return ClearInlineStart
	case pr.ClearRight:
		if dir == pr.RTL {
			return ClearInlineStart
		}
		return ClearInlineEnd
	case pr.ClearBoth:
		return ClearBoth
	default:
		return ClearNone
	}
}

// ContainingBlockInfo describes the containing block of the
// content being laid out, relative to the block formatting context.
type ContainingBlockInfo struct {
	// InlineStart and InlineEnd are the walls floats can't cross.
	InlineStart, InlineEnd pr.Float
	BlockStart             pr.Float
	// BlockStartMarginsNotCollapsed are the margins of the containing block
	// not yet collapsed into BlockStart.
	BlockStartMarginsNotCollapsed CollapsedMargin
}

// PlacementInfo describes a float (or any object) to place.
type PlacementInfo struct {
	// Size is the size of the margin box.
	Size  bo.Vec2
	Side  Side
	Clear Clear
}

type placedFloat struct {
	side                 Side
	blockStart, blockEnd pr.Float
	// extent is the inline-end edge of an inline-start float,
	// and the inline-start edge of an inline-end float.
	extent pr.Float
}

// band is the horizontal strip starting at [top] and
// ending at the next float edge. [left] and [right] are the
// extents of the floats crossing the strip, or -Inf and +Inf
// if there are none.
type band struct {
	top         pr.Float
	left, right pr.Float
}

func (b band) hasLeft() bool  { return b.left != -pr.Inf }
func (b band) hasRight() bool { return b.right != pr.Inf }

// objectFits implements the rules 3 and 7.
func (b band) objectFits(object PlacementInfo, walls ContainingBlockInfo) bool {
	switch object.Side {
	case InlineStart:
		candidate := b.left.Max(walls.InlineStart)
		// do not stick out past the inline-end edge (rule 7)
		if b.hasLeft() && candidate+object.Size.Inline > walls.InlineEnd {
			return false
		}
		// do not collide with an inline-end float (rule 3)
		return !b.hasRight() || object.Size.Inline <= b.right-candidate
	default:
		candidate := b.right.Min(walls.InlineEnd)
		if b.hasRight() && candidate-object.Size.Inline < walls.InlineStart {
			return false
		}
		return !b.hasLeft() || object.Size.Inline <= candidate-b.left
	}
}

// FloatContext stores the floats placed in a block formatting context.
type FloatContext struct {
	floats []placedFloat
	// edges are the sorted block positions where the bands change
	edges []pr.Float

	// CeilingFromFloats is the block position of the top of the last
	// placed float (rule 5).
	CeilingFromFloats pr.Float
	// CeilingFromNonFloats is the block position of the last in-flow
	// content (rule 6).
	CeilingFromNonFloats pr.Float

	ContainingBlockInfo ContainingBlockInfo

	ClearInlineStartPosition, ClearInlineEndPosition pr.Float
}

// NewFloatContext returns an empty context, for a block
// formatting context of the given inline size.
func NewFloatContext(maxInlineSize pr.Float) *FloatContext {
	return &FloatContext{ContainingBlockInfo: ContainingBlockInfo{InlineEnd: maxInlineSize}}
}

// Ceiling returns the minimum block position of the next float.
func (fc *FloatContext) Ceiling() pr.Float {
	return fc.CeilingFromFloats.Max(fc.CeilingFromNonFloats)
}

// Len returns the number of placed floats.
func (fc *FloatContext) Len() int { return len(fc.floats) }

// bandAt returns the band containing [y].
func (fc *FloatContext) bandAt(y pr.Float) band {
	out := band{top: y, left: -pr.Inf, right: pr.Inf}
	if y == pr.Inf {
		return out
	}
	for _, f := range fc.floats {
		if f.blockStart > y || y >= f.blockEnd {
			continue
		}
		if f.side == InlineStart {
			out.left = out.left.Max(f.extent)
		} else {
			out.right = out.right.Min(f.extent)
		}
	}
	return out
}

// nextBand returns the band starting after the one containing [y],
// which has an infinite top if there is no float after [y].
func (fc *FloatContext) nextBand(y pr.Float) band {
	i, _ := slices.BinarySearch(fc.edges, y)
	for ; i < len(fc.edges); i++ {
		if fc.edges[i] > y {
			return fc.bandAt(fc.edges[i])
		}
	}
	return fc.bandAt(pr.Inf)
}

// PlaceObject returns the start corner of the margin box of [object],
// as if it were a float at [ceiling], without adding it.
func (fc *FloatContext) PlaceObject(object PlacementInfo, ceiling pr.Float) bo.Vec2 {
	switch object.Clear {
	case ClearInlineStart:
		ceiling = ceiling.Max(fc.ClearInlineStartPosition)
	case ClearInlineEnd:
		ceiling = ceiling.Max(fc.ClearInlineEndPosition)
	case ClearBoth:
		ceiling = pr.Maxs(ceiling, fc.ClearInlineStartPosition, fc.ClearInlineEndPosition)
	}

	// the ceiling is below the top of every float, so that
	// the following bands have fewer floats : checking the first
	// band is enough
	current := fc.bandAt(ceiling)
	for !current.objectFits(object, fc.ContainingBlockInfo) {
		next := fc.nextBand(current.top)
		if next.top == pr.Inf {
			break
		}
		current = next
	}

	walls := fc.ContainingBlockInfo
	block := current.top.Max(ceiling)
	if object.Side == InlineStart {
		return bo.Vec2{Inline: current.left.Max(walls.InlineStart), Block: block}
	}
	return bo.Vec2{Inline: pr.Mins(current.right, walls.InlineEnd) - object.Size.Inline, Block: block}
}

// AddFloat places a new float and returns the start corner of its margin box.
func (fc *FloatContext) AddFloat(float PlacementInfo) bo.Vec2 {
	origin := fc.PlaceObject(float, fc.Ceiling())

	extent := origin.Inline
	if float.Side == InlineStart {
		extent += float.Size.Inline
	}
	blockEnd := origin.Block + float.Size.Block.Max(0)

	fc.CeilingFromFloats = fc.CeilingFromFloats.Max(origin.Block)
	if float.Side == InlineStart {
		fc.ClearInlineStartPosition = fc.ClearInlineStartPosition.Max(blockEnd)
	} else {
		fc.ClearInlineEndPosition = fc.ClearInlineEndPosition.Max(blockEnd)
	}

	if blockEnd > origin.Block {
		fc.floats = append(fc.floats, placedFloat{side: float.Side, blockStart: origin.Block, blockEnd: blockEnd, extent: extent})
		fc.edges = insertEdge(fc.edges, origin.Block)
		fc.edges = insertEdge(fc.edges, blockEnd)
	}
	return origin
}

func insertEdge(edges []pr.Float, v pr.Float) []pr.Float {
	i, found := slices.BinarySearch(edges, v)
	if found {
		return edges
	}
	return slices.Insert(edges, i, v)
}

func (fc *FloatContext) String() string {
	return fmt.Sprintf("FloatContext{%d floats, ceiling: %s, clear: (%s, %s)}",
		len(fc.floats), fc.Ceiling(), fc.ClearInlineStartPosition, fc.ClearInlineEndPosition)
}
