package floats

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
)

// PlacementAmongFloats searches the first area, below a ceiling,
// which is wide enough for an object (a line, or a box establishing
// a new formatting context) and tall enough to contain it.
type PlacementAmongFloats struct {
	context      *FloatContext
	currentBands []band
	nextBand     band
	objectSize   bo.Vec2
	ceiling      pr.Float

	minInlineStart, maxInlineEnd pr.Float
}

// NewPlacementAmongFloats prepares the search for an object of
// [objectSize], whose padding, border and margin are [pbm].
func NewPlacementAmongFloats(context *FloatContext, ceiling pr.Float, objectSize bo.Vec2, pbm bo.LogicalSides) *PlacementAmongFloats {
	out := &PlacementAmongFloats{context: context, objectSize: objectSize, ceiling: ceiling}
	ceilingBand := context.bandAt(ceiling)
	if ceiling == pr.Inf {
		out.nextBand = ceilingBand
	} else {
		out.currentBands = []band{ceilingBand}
		out.nextBand = context.nextBand(ceiling)
	}
	walls := context.ContainingBlockInfo
	out.minInlineStart = walls.InlineStart + pbm.InlineStart
	out.maxInlineEnd = (walls.InlineEnd - pbm.InlineEnd).Max(out.minInlineStart + objectSize.Inline)
	return out
}

func (p *PlacementAmongFloats) topOfCurrentBands() pr.Float { return p.currentBands[0].top }

func (p *PlacementAmongFloats) currentBandsHeight() pr.Float {
	if p.nextBand.top == pr.Inf {
		return pr.Inf
	}
	return p.nextBand.top - p.topOfCurrentBands()
}

func (p *PlacementAmongFloats) addOneBand() {
	if p.nextBand.top == pr.Inf {
		panic("no more bands to add")
	}
	p.currentBands = append(p.currentBands, p.nextBand)
	p.nextBand = p.context.nextBand(p.nextBand.top)
}

func (p *PlacementAmongFloats) accumulateEnoughBands() {
	for p.currentBandsHeight() < p.objectSize.Block {
		p.addOneBand()
	}
}

func (p *PlacementAmongFloats) inlineStartAndEnd() (pr.Float, pr.Float) {
	start, end := p.minInlineStart, p.maxInlineEnd
	for _, b := range p.currentBands {
		start = start.Max(b.left)
		end = end.Min(b.right)
	}
	return start, end
}

func (p *PlacementAmongFloats) tryPlaceOnce() (bo.Rect, bool) {
	p.accumulateEnoughBands()
	start, end := p.inlineStartAndEnd()
	available := end - start
	if available < p.objectSize.Inline {
		return bo.Rect{}, false
	}
	return bo.Rect{
		Start: bo.Vec2{Inline: start, Block: p.topOfCurrentBands()},
		Size:  bo.Vec2{Inline: available, Block: p.currentBandsHeight()},
	}, true
}

// Place runs the search and returns the area found, whose block size may be
// infinite if no float is below it.
func (p *PlacementAmongFloats) Place() bo.Rect {
	for len(p.currentBands) != 0 {
		if rect, ok := p.tryPlaceOnce(); ok {
			return rect
		}
		p.currentBands = p.currentBands[1:]
		if len(p.currentBands) == 0 && p.nextBand.top != pr.Inf {
			p.addOneBand()
		}
	}

	// the object is placed after all the floats
	return bo.Rect{
		Start: bo.Vec2{Inline: p.minInlineStart, Block: p.ceiling.Max(p.nextBand.top)},
		Size:  bo.Vec2{Inline: p.maxInlineEnd - p.minInlineStart, Block: pr.Inf},
	}
}
