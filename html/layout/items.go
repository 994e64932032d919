package layout

import (
	"fmt"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/text"
)

// InlineItem is one element of the flat sequence of content of an
// inline formatting context. It is one of *TextRun, StartInlineBox,
// EndInlineBox, Atomic, FloatBox or AbsoluteBox.
type InlineItem interface {
	isInlineItem()
}

func (*TextRun) isInlineItem()      {}
func (StartInlineBox) isInlineItem() {}
func (EndInlineBox) isInlineItem()   {}
func (Atomic) isInlineItem()         {}
func (FloatBox) isInlineItem()       {}
func (AbsoluteBox) isInlineItem()    {}

// InlineBox is a non atomic inline box, like <span> or <br>.
// An element split by a block-level child is represented
// by several InlineBox values.
type InlineBox struct {
	Style *pr.Style
	// Tag is used in debug outputs.
	Tag string
	// Font is the first available font of the box, used for its
	// strut. If nil, the font of the parent is used.
	Font *text.Font

	// IsFirstSplit is true if the box has its inline-start edges
	// (padding, border and margin).
	IsFirstSplit bool
	// IsLastSplit is true if the box has its inline-end edges.
	IsLastSplit bool
	// IsLineBreak is true for <br> elements, whose 'clear' value
	// is applied after the forced line break.
	IsLineBreak bool

	parent *InlineBox // set by NewInlineFormattingContext
}

// NewInlineBox returns a box which is not split.
func NewInlineBox(style *pr.Style, tag string) *InlineBox {
	return &InlineBox{Style: style, Tag: tag, IsFirstSplit: true, IsLastSplit: true}
}

func (ib *InlineBox) String() string {
	if ib == nil {
		return "<root>"
	}
	return fmt.Sprintf("<%s>", ib.Tag)
}

// StartInlineBox opens an inline box. Following items
// are children of the box until the matching EndInlineBox.
type StartInlineBox struct {
	Box *InlineBox
}

// EndInlineBox closes the last opened inline box.
type EndInlineBox struct{}

// TextRun is a range of the paragraph text, sharing the same style,
// and already shaped.
type TextRun struct {
	// Style is the style of the parent box.
	Style *pr.Style
	// Start and End delimit the run in the paragraph text.
	Start, End int
	Segments   []text.Segment
}

// NewTextRun shapes the text between [start] and [end].
func NewTextRun(p *text.Paragraph, start, end int, style *pr.Style, font *text.Font, shaper text.Shaper) *TextRun {
	return &TextRun{
		Style:    style,
		Start:    start,
		End:      end,
		Segments: p.Segments(start, end, font, shaper, style.WhiteSpace, style.Lang),
	}
}

// Atomic is an atomic inline, like an image or an inline-block.
type Atomic struct {
	Box bo.IndependentBox
	// OffsetInText is the index of the U+FFFC character
	// representing the box in the paragraph text.
	OffsetInText int
}

// FloatBox is a floated box.
type FloatBox struct {
	Box bo.IndependentBox
}

// AbsoluteBox is an absolutely positioned box, which is laid out
// by its containing block, but whose static position depends
// on the inline layout.
type AbsoluteBox struct {
	Box bo.IndependentBox
}

// InlineFormattingContext is the content of a block container
// made of inline-level boxes.
type InlineFormattingContext struct {
	// Style is the style of the block container
	Style *pr.Style
	// Font is the first available font of the block container.
	Font *text.Font

	Paragraph *text.Paragraph
	Items     []InlineItem

	// HasFirstFormattedLine is true if 'text-indent' applies to the
	// first line.
	HasFirstFormattedLine bool
	// ContainsFloats is true if at least one item is a float.
	ContainsFloats bool
}

// NewInlineFormattingContext checks that the start and end markers
// of [items] are balanced, and panics if not.
func NewInlineFormattingContext(style *pr.Style, font *text.Font, paragraph *text.Paragraph, items []InlineItem) *InlineFormattingContext {
	out := &InlineFormattingContext{
		Style:                 style,
		Font:                  font,
		Paragraph:             paragraph,
		Items:                 items,
		HasFirstFormattedLine: true,
	}

	var stack []*InlineBox
	for _, item := range items {
		switch item := item.(type) {
		case StartInlineBox:
			if item.Box == nil {
				panic("nil inline box in StartInlineBox")
			}
			if len(stack) != 0 {
				item.Box.parent = stack[len(stack)-1]
			} else {
				item.Box.parent = nil
			}
			stack = append(stack, item.Box)
		case EndInlineBox:
			if len(stack) == 0 {
				panic("EndInlineBox without matching StartInlineBox")
			}
			stack = stack[:len(stack)-1]
		case FloatBox:
			out.ContainsFloats = true
		case *TextRun, Atomic, AbsoluteBox:
		default:
			panic(fmt.Sprintf("unexpected inline item %T", item))
		}
	}
	if len(stack) != 0 {
		panic(fmt.Sprintf("unclosed inline boxes: %v", stack))
	}
	return out
}

// pathBetween returns the number of inline boxes to end and the
// boxes to start to move from the box [from] to the box [to]
// (nil meaning the root).
func pathBetween(from, to *InlineBox) (ends int, starts []*InlineBox) {
	ancestors := map[*InlineBox]bool{}
	for b := to; b != nil; b = b.parent {
		ancestors[b] = true
	}
	common := from
	for common != nil && !ancestors[common] {
		ends++
		common = common.parent
	}
	for b := to; b != common; b = b.parent {
		starts = append(starts, b)
	}
	for i, j := 0, len(starts)-1; i < j; i, j = i+1, j-1 {
		starts[i], starts[j] = starts[j], starts[i]
	}
	return ends, starts
}
