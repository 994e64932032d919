package boxes

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// IndependentBox is a box establishing an independent formatting context,
// whose content is laid out by external code : atomic inlines, floats
// and absolutely positioned boxes.
type IndependentBox interface {
	Style() *pr.Style
	// Layout lays out the box in [cb]. The returned fragment
	// has its box model sides resolved and its content
	// rectangle starting at the zero position (the caller is responsible
	// to move it).
	Layout(cb ContainingBlock) *BoxFragment
}

var _ IndependentBox = (*ReplacedBox)(nil)

// ReplacedBox is a replaced element with an intrinsic size, like an image.
type ReplacedBox struct {
	style *pr.Style
	// Tag is used for debugging.
	Tag string

	IntrinsicWidth, IntrinsicHeight pr.Float
	// Baseline is the offset of the baseline from the top of the content
	// box, or nil if the box has no baseline (as images), in which case
	// the bottom margin edge is used.
	Baseline pr.MaybeFloat
}

// NewReplacedBox returns a box with the given style and intrinsic size.
func NewReplacedBox(style *pr.Style, tag string, width, height pr.Float) *ReplacedBox {
	return &ReplacedBox{style: style, Tag: tag, IntrinsicWidth: width, IntrinsicHeight: height}
}

func (r *ReplacedBox) Style() *pr.Style { return r.style }

// Layout implements [IndependentBox]. 'width' and 'height' override the intrinsic
// size; when only one of them is given, the intrinsic ratio is preserved.
// Percentages of 'height' refer to the block size of the containing block, and
// are ignored if it is indefinite.
func (r *ReplacedBox) Layout(cb ContainingBlock) *BoxFragment {
	style := r.style
	dir := cb.Direction()
	out := &BoxFragment{
		Style:   style,
		Kind:    AtomicKind,
		Tag:     r.Tag,
		Padding: ToLogical(style.Padding, dir),
		Border:  ToLogical(style.BorderWidth, dir),
		Margin:  ToLogical(style.Margin, dir),
	}
	if style.Float != pr.FloatNone {
		out.Kind = FloatKind
	}

	width, hasWidth := pr.Float(0), !style.Width.IsAuto()
	if hasWidth {
		width = style.Width.Resolve(cb.InlineSize, style.FontSize)
	}
	height, hasHeight := pr.Float(0), !style.Height.IsAuto()
	if style.Height.IsPercentage() {
		out.DependsOnBlockConstraints = true
		hasHeight = cb.BlockSize != pr.Inf
	}
	if hasHeight {
		height = style.Height.Resolve(cb.BlockSize, style.FontSize)
	}

	switch {
	case hasWidth && hasHeight:
	case hasWidth:
		height = r.IntrinsicHeight
		if r.IntrinsicWidth != 0 {
			height = width * r.IntrinsicHeight / r.IntrinsicWidth
		}
	case hasHeight:
		width = r.IntrinsicWidth
		if r.IntrinsicHeight != 0 {
			width = height * r.IntrinsicWidth / r.IntrinsicHeight
		}
	default:
		width, height = r.IntrinsicWidth, r.IntrinsicHeight
	}
	out.Content.Size = Vec2{Inline: width.Max(0), Block: height.Max(0)}

	if r.Baseline != nil {
		bl := r.Baseline.V()
		out.Baselines = Baselines{First: bl, Last: bl}
	}
	return out
}
