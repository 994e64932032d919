package markup

import (
	"strconv"
	"strings"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/layout"
	"github.com/benoitkugler/inlinelayout/logger"
	"golang.org/x/net/html"
)

// newImage uses the 'width' and 'height' attributes of an <img>
// as its intrinsic size. There is no image loading.
func newImage(node *html.Node, style *pr.Style) *bo.ReplacedBox {
	width, height := intAttr(node, "width"), intAttr(node, "height")
	return bo.NewReplacedBox(style, node.Data, width, height)
}

func intAttr(node *html.Node, key string) pr.Float {
	s, ok := getAttr(node, key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 32)
	if err != nil || v < 0 {
		logger.WarningLogger.Printf("ignored invalid %s attribute %q in <%s>", key, s, node.Data)
		return 0
	}
	return pr.Float(v)
}

var _ bo.IndependentBox = (*blockBox)(nil)

// blockBox is an element establishing an independent formatting
// context made of inline content : inline-blocks, floats and
// absolutely positioned elements.
type blockBox struct {
	style *pr.Style
	tag   string
	ifc   *layout.InlineFormattingContext
}

func (b *blockBox) Style() *pr.Style { return b.style }

// Layout implements [bo.IndependentBox]. An 'auto' width fills the
// containing block; an 'auto' height is the height of the lines.
func (b *blockBox) Layout(cb bo.ContainingBlock) *bo.BoxFragment {
	style := b.style
	dir := cb.Direction()
	out := &bo.BoxFragment{
		Style:   style,
		Tag:     b.tag,
		Padding: bo.ToLogical(style.Padding, dir),
		Border:  bo.ToLogical(style.BorderWidth, dir),
		Margin:  bo.ToLogical(style.Margin, dir),
	}
	pbm := out.PaddingBorderMargin()

	var width pr.Float
	if style.Width.IsAuto() {
		width = (cb.InlineSize - pbm.InlineSum()).Max(0)
	} else {
		width = style.Width.Resolve(cb.InlineSize, style.FontSize).Max(0)
	}

	height := pr.Inf
	if style.Height.IsPercentage() {
		out.DependsOnBlockConstraints = true
		if cb.BlockSize != pr.Inf {
			height = style.Height.Resolve(cb.BlockSize, style.FontSize).Max(0)
		}
	} else if !style.Height.IsAuto() {
		height = style.Height.Resolve(0, style.FontSize).Max(0)
	}

	res := b.ifc.Layout(bo.ContainingBlock{InlineSize: width, BlockSize: height, Style: style}, nil)
	if height == pr.Inf {
		height = res.ContentBlockSize
	}

	out.Content.Size = bo.Vec2{Inline: width, Block: height}
	out.Baselines = res.Baselines
	out.DependsOnBlockConstraints = out.DependsOnBlockConstraints || res.DependsOnBlockConstraints
	// hoisted boxes are kept in the lines, as placeholders
	out.Children = res.Fragments
	return out
}
