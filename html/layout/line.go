package layout

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/text"
)

// lineItem is an element of a line, before its layout into fragments.
// It is one of inlineStartBoxPBM, inlineEndBoxPBM, *textRunLineItem,
// *atomicLineItem, *absoluteLineItem or *floatLineItem.
type lineItem interface {
	// parentBox returns the inline box containing the item,
	// or nil for the root. The padding, border and margin
	// items return their own box.
	parentBox() *InlineBox

	// trimWhitespaceAtStart removes leading white space,
	// adding its size to [trimmed]. It returns true if the
	// trimming should continue with the next item.
	trimWhitespaceAtStart(trimmed *pr.Float) bool
	// trimWhitespaceAtEnd removes trailing white space,
	// adding its size to [trimmed]. It returns true if the
	// trimming should continue with the previous item.
	trimWhitespaceAtEnd(trimmed *pr.Float) bool
}

var (
	_ lineItem = inlineStartBoxPBM{}
	_ lineItem = inlineEndBoxPBM{}
	_ lineItem = (*textRunLineItem)(nil)
	_ lineItem = (*atomicLineItem)(nil)
	_ lineItem = (*absoluteLineItem)(nil)
	_ lineItem = (*floatLineItem)(nil)
)

// inlineStartBoxPBM marks the start of an inline box, with its
// inline-start padding, border and margin.
type inlineStartBoxPBM struct{ box *InlineBox }

// inlineEndBoxPBM marks the end of an inline box, with its
// inline-end padding, border and margin.
type inlineEndBoxPBM struct{ box *InlineBox }

type textRunLineItem struct {
	box         *InlineBox
	style       *pr.Style
	font        *text.Font
	level       text.Level
	decorations pr.Decorations
	runs        []*text.GlyphRun
}

type atomicLineItem struct {
	box      *InlineBox
	fragment *bo.BoxFragment
	// size of the margin box
	size bo.Vec2
	// baselineOffsetInParent is the offset of the baseline of the
	// parent from the line baseline.
	baselineOffsetInParent pr.Float
	// baselineOffsetInItem is the offset of the baseline of the
	// item from its margin box block start.
	baselineOffsetInItem pr.Float
	level                text.Level
}

type absoluteLineItem struct {
	box      *InlineBox
	absolute bo.IndependentBox
}

type floatLineItem struct {
	box      *InlineBox
	fragment *bo.BoxFragment
	// needsPlacement is true for a float which did not fit on the line
	// it belongs to, and which will be placed below it.
	needsPlacement bool
}

func (it inlineStartBoxPBM) parentBox() *InlineBox { return it.box }
func (it inlineEndBoxPBM) parentBox() *InlineBox   { return it.box }
func (it *textRunLineItem) parentBox() *InlineBox  { return it.box }
func (it *atomicLineItem) parentBox() *InlineBox   { return it.box }
func (it *absoluteLineItem) parentBox() *InlineBox { return it.box }
func (it *floatLineItem) parentBox() *InlineBox    { return it.box }

func (inlineStartBoxPBM) trimWhitespaceAtStart(*pr.Float) bool { return true }
func (inlineStartBoxPBM) trimWhitespaceAtEnd(*pr.Float) bool   { return true }
func (inlineEndBoxPBM) trimWhitespaceAtStart(*pr.Float) bool   { return true }
func (inlineEndBoxPBM) trimWhitespaceAtEnd(*pr.Float) bool     { return true }
func (*atomicLineItem) trimWhitespaceAtStart(*pr.Float) bool   { return false }
func (*atomicLineItem) trimWhitespaceAtEnd(*pr.Float) bool     { return false }
func (*absoluteLineItem) trimWhitespaceAtStart(*pr.Float) bool { return true }
func (*absoluteLineItem) trimWhitespaceAtEnd(*pr.Float) bool   { return true }
func (*floatLineItem) trimWhitespaceAtStart(*pr.Float) bool    { return true }
func (*floatLineItem) trimWhitespaceAtEnd(*pr.Float) bool      { return true }

// preservesWhitespace returns true if the white space of the run
// is never trimmed.
func (it *textRunLineItem) preservesWhitespace() bool {
	c := it.style.WhiteSpace.Collapse()
	return c == pr.Preserve || c == pr.BreakSpaces
}

func (it *textRunLineItem) trimWhitespaceAtEnd(trimmed *pr.Float) bool {
	if it.preservesWhitespace() {
		return false
	}
	end := len(it.runs)
	for end > 0 && it.runs[end-1].IsWhitespace() {
		end--
	}
	for _, run := range it.runs[end:] {
		*trimmed += run.TotalAdvance()
	}
	it.runs = it.runs[:end]
	// only keep going if the item was made of white space
	return end == 0
}

func (it *textRunLineItem) trimWhitespaceAtStart(trimmed *pr.Float) bool {
	if it.preservesWhitespace() {
		return false
	}
	start := 0
	for start < len(it.runs) && it.runs[start].IsWhitespace() {
		*trimmed += it.runs[start].TotalAdvance()
		start++
	}
	it.runs = it.runs[start:]
	return len(it.runs) == 0
}

// canMerge returns true if a glyph run may be appended to the item.
func (it *textRunLineItem) canMerge(box *InlineBox, font *text.Font, level text.Level) bool {
	return it.box == box && it.font.Key == font.Key && it.level == level
}

func (it *textRunLineItem) wordSeparators() int {
	n := 0
	for _, run := range it.runs {
		n += run.TotalWordSeparators()
	}
	return n
}

// lineUnderConstruction stores the content of the line being filled.
type lineUnderConstruction struct {
	// startPosition is the position of the line, relative to the
	// containing block. Its inline component is the text indent.
	startPosition bo.Vec2
	// inlinePosition is the current inline position of the line,
	// including the text indent.
	inlinePosition pr.Float
	maxBlockSize   lineBlockSizes

	items []lineItem

	hasContent bool
	// hasFloatsWaitingToBePlaced is true if a float did not fit
	// on the line.
	hasFloatsWaitingToBePlaced bool

	// placementAmongFloats is the area available for the line,
	// computed on demand when the layout is float aware.
	placementAmongFloats *bo.Rect
}

func newLineUnderConstruction(start bo.Vec2) lineUnderConstruction {
	return lineUnderConstruction{startPosition: start, inlinePosition: start.Inline}
}

func (l *lineUnderConstruction) lineBlockStartConsideringPlacementAmongFloats() pr.Float {
	if l.placementAmongFloats != nil {
		return l.placementAmongFloats.Start.Block
	}
	return l.startPosition.Block
}

func (l *lineUnderConstruction) replacePlacementAmongFloats(placement bo.Rect) {
	l.placementAmongFloats = &placement
}

// trimTrailingWhitespace removes the trailing white space of the line
// and returns its size.
func (l *lineUnderConstruction) trimTrailingWhitespace() pr.Float {
	var trimmed pr.Float
	for i := len(l.items) - 1; i >= 0; i-- {
		if !l.items[i].trimWhitespaceAtEnd(&trimmed) {
			break
		}
	}
	return trimmed
}

func (l *lineUnderConstruction) countJustificationOpportunities() int {
	n := 0
	for _, item := range l.items {
		if run, ok := item.(*textRunLineItem); ok {
			n += run.wordSeparators()
		}
	}
	return n
}
