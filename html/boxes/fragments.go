package boxes

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	"github.com/benoitkugler/inlinelayout/text"
)

// Fragment is the result of laying out (a part of) a box. It is one of
// *LineFragment, *BoxFragment, *TextFragment or *HoistedFragment.
// Positions are relative to the content rect of the parent fragment.
type Fragment interface {
	// ContentRect returns the position and size of the content area.
	ContentRect() Rect
	// Translate moves the fragment by [offset].
	Translate(offset Vec2)
}

var (
	_ Fragment = (*LineFragment)(nil)
	_ Fragment = (*BoxFragment)(nil)
	_ Fragment = (*TextFragment)(nil)
	_ Fragment = (*HoistedFragment)(nil)
)

// LineFragment is an anonymous container for the content
// of one line. Its inline size is the one of the containing block,
// and it starts at inline position 0.
type LineFragment struct {
	Rect Rect
	// Baseline is the offset of the baseline from the line block start.
	Baseline pr.Float
	Children []Fragment
}

func (l *LineFragment) ContentRect() Rect     { return l.Rect }
func (l *LineFragment) Translate(offset Vec2) { l.Rect.Start = l.Rect.Start.Add(offset) }

// BoxKind distinguishes the origin of a [BoxFragment].
type BoxKind uint8

const (
	// InlineBoxKind is a (part of a) non atomic inline box, like <span>
	InlineBoxKind BoxKind = iota
	// AtomicKind is an atomic inline, like an image or an inline-block
	AtomicKind
	// FloatKind is a floated box
	FloatKind
)

func (k BoxKind) String() string {
	switch k {
	case InlineBoxKind:
		return "InlineBox"
	case AtomicKind:
		return "Atomic"
	case FloatKind:
		return "Float"
	default:
		return "<invalid kind>"
	}
}

// Baselines stores the first and last baselines of a box, as
// offsets from the block start of its content rect.
type Baselines struct {
	First, Last pr.MaybeFloat
}

// BoxFragment is a fragment with a box model.
type BoxFragment struct {
	Style *pr.Style
	Kind  BoxKind
	// Tag is an optional name, used in debug outputs.
	Tag string

	Content Rect
	// Padding, Border and Margin are in logical order, relative
	// to the containing block direction.
	Padding, Border, Margin LogicalSides

	Baselines Baselines

	// DependsOnBlockConstraints is true if the layout of the box
	// used the block size of its containing block.
	DependsOnBlockConstraints bool

	Children []Fragment
}

func (b *BoxFragment) ContentRect() Rect { return b.Content }

func (b *BoxFragment) Translate(offset Vec2) { b.Content.Start = b.Content.Start.Add(offset) }

// PaddingBorderMargin returns the sum of padding, border and margin.
func (b *BoxFragment) PaddingBorderMargin() LogicalSides {
	return LogicalSides{
		InlineStart: b.Padding.InlineStart + b.Border.InlineStart + b.Margin.InlineStart,
		InlineEnd:   b.Padding.InlineEnd + b.Border.InlineEnd + b.Margin.InlineEnd,
		BlockStart:  b.Padding.BlockStart + b.Border.BlockStart + b.Margin.BlockStart,
		BlockEnd:    b.Padding.BlockEnd + b.Border.BlockEnd + b.Margin.BlockEnd,
	}
}

// MarginRect returns the margin box, in the same coordinates as the content rect.
func (b *BoxFragment) MarginRect() Rect {
	pbm := b.PaddingBorderMargin()
	return Rect{
		Start: b.Content.Start.Sub(pbm.StartOffset()),
		Size:  b.Content.Size.Add(pbm.Sum()),
	}
}

// TextFragment is a run of glyphs on one line, using the same
// font and bidi level.
type TextFragment struct {
	Style *pr.Style
	Rect  Rect

	Font        *text.Font
	Glyphs      []*text.GlyphRun
	Level       text.Level
	Decorations pr.Decorations
	// JustificationAdjustment is the space to add after each
	// word separator.
	JustificationAdjustment pr.Float
}

func (t *TextFragment) ContentRect() Rect     { return t.Rect }
func (t *TextFragment) Translate(offset Vec2) { t.Rect.Start = t.Rect.Start.Add(offset) }

// HoistedFragment is a placeholder for an absolutely positioned box,
// whose layout is done by its containing block, using
// the static position.
type HoistedFragment struct {
	Box IndependentBox
	// StaticPosition is the static position of the box, relative
	// to the parent fragment of the placeholder.
	StaticPosition Vec2
}

// ContentRect returns an empty rectangle : placeholders take no space.
func (h *HoistedFragment) ContentRect() Rect { return Rect{Start: h.StaticPosition} }

func (h *HoistedFragment) Translate(offset Vec2) {
	h.StaticPosition = h.StaticPosition.Add(offset)
}
