// Package markup builds inline formatting contexts from HTML fragments,
// using the 'style' attribute of the elements as the only source of
// CSS declarations.
//
// It is a small box generator, mainly used by tests and the command line
// tool : there is no cascade, no selector matching and no support for
// block-level content split across lines.
package markup

import (
	"fmt"
	"io"
	"strings"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/layout"
	"github.com/benoitkugler/inlinelayout/logger"
	"github.com/benoitkugler/inlinelayout/text"
	"github.com/benoitkugler/textlayout/language"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options configures the box generation.
type Options struct {
	// Style is the style of the block container, used as parent of the
	// top level elements. It defaults to [pr.InitialStyle].
	Style *pr.Style
	// Shaper defaults to a [text.HarfbuzzShaper].
	Shaper text.Shaper
	// Font returns the font to use at the given size.
	// It defaults to [text.GoRegular].
	Font func(size pr.Float) *text.Font
}

func (opts *Options) setDefaults() {
	if opts.Style == nil {
		opts.Style = pr.InitialStyle()
	}
	if opts.Shaper == nil {
		opts.Shaper = text.NewHarfbuzzShaper()
	}
	if opts.Font == nil {
		opts.Font = text.GoRegular
	}
}

// Parse reads an HTML fragment and returns the inline formatting
// context of its content.
//
// If the fragment is made of a single <p> or <div> element, it is
// used as the block container : its attributes apply to the
// context. Otherwise, the top level nodes are the content of a block
// container styled by [opts.Style].
func Parse(r io.Reader, opts Options) (*layout.InlineFormattingContext, error) {
	opts.setDefaults()

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("invalid html input : %s", err)
	}

	b := newBuilder(&opts, make(map[pr.Float]*text.Font))
	style := opts.Style
	if container := singleContainer(nodes); container != nil {
		style, _ = b.computeStyle(container, style)
		nodes = children(container)
	}

	ifc := b.context(style, nodes)
	logger.ProgressLogger.Printf("Built inline formatting context: %d items, %d characters",
		len(ifc.Items), len(ifc.Paragraph.Text))
	return ifc, nil
}

// ParseString is a convenience wrapper for [Parse].
func ParseString(s string, opts Options) (*layout.InlineFormattingContext, error) {
	return Parse(strings.NewReader(s), opts)
}

// singleContainer returns the only <p> or <div> of [nodes],
// ignoring comments and white space, or nil.
func singleContainer(nodes []*html.Node) *html.Node {
	var container *html.Node
	for _, node := range nodes {
		switch node.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(node.Data) == "" {
				continue
			}
			return nil
		case html.ElementNode:
			if container != nil || (node.DataAtom != atom.P && node.DataAtom != atom.Div) {
				return nil
			}
			container = node
		default:
			return nil
		}
	}
	return container
}

func children(node *html.Node) []*html.Node {
	var out []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}

func getAttr(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// builder accumulates the text and the items of one
// inline formatting context.
type builder struct {
	opts  *Options
	fonts map[pr.Float]*text.Font // shared by nested contexts

	text  []rune
	items []layout.InlineItem
	// runs are shaped once the whole paragraph is known
	runs []pendingRun
	// afterSpace is true if the text ends with a collapsible space
	afterSpace bool
}

type pendingRun struct {
	run  *layout.TextRun
	font *text.Font
}

func newBuilder(opts *Options, fonts map[pr.Float]*text.Font) *builder {
	return &builder{opts: opts, fonts: fonts}
}

func (b *builder) font(style *pr.Style) *text.Font {
	font, ok := b.fonts[style.FontSize]
	if !ok {
		font = b.opts.Font(style.FontSize)
		b.fonts[style.FontSize] = font
	}
	return font
}

// context builds the inline formatting context of a block
// container with the given style and content
func (b *builder) context(style *pr.Style, nodes []*html.Node) *layout.InlineFormattingContext {
	for _, node := range nodes {
		b.node(node, style)
	}

	paragraph := text.NewParagraph(b.text, style.Direction)
	for _, pending := range b.runs {
		run := pending.run
		run.Segments = paragraph.Segments(run.Start, run.End, pending.font, b.opts.Shaper, run.Style.WhiteSpace, run.Style.Lang)
	}
	return layout.NewInlineFormattingContext(style, b.font(style), paragraph, b.items)
}

func (b *builder) node(node *html.Node, parent *pr.Style) {
	switch node.Type {
	case html.TextNode:
		b.addText(node.Data, parent)
	case html.ElementNode:
		b.element(node, parent)
	case html.CommentNode:
	default:
		logger.WarningLogger.Printf("ignored html node of type %d", node.Type)
	}
}

func (b *builder) addText(s string, style *pr.Style) {
	collapsed, afterSpace := text.CollapseWhiteSpace([]rune(s), style.WhiteSpace, b.afterSpace)
	b.afterSpace = afterSpace
	if len(collapsed) == 0 {
		return
	}
	start := len(b.text)
	b.text = append(b.text, collapsed...)
	run := &layout.TextRun{Style: style, Start: start, End: len(b.text)}
	b.items = append(b.items, run)
	b.runs = append(b.runs, pendingRun{run: run, font: b.font(style)})
}

// computeStyle returns the style of [node] and true if
// it is an inline-block.
func (b *builder) computeStyle(node *html.Node, parent *pr.Style) (*pr.Style, bool) {
	style := parent.Inherit()
	applyDefaults(node, style)

	for _, attr := range node.Attr {
		switch attr.Key {
		case "dir":
			switch strings.ToLower(attr.Val) {
			case "ltr":
				style.Direction = pr.LTR
			case "rtl":
				style.Direction = pr.RTL
			default:
				logger.WarningLogger.Printf("ignored dir attribute %q in <%s>", attr.Val, node.Data)
			}
		case "lang":
			style.Lang = language.NewLanguage(attr.Val)
		}
	}

	isInlineBlock := false
	css, _ := getAttr(node, "style")
	decls, errs := pr.ParseDeclarations(css)
	for _, err := range errs {
		logger.WarningLogger.Printf("invalid style attribute in <%s>: %s", node.Data, err)
	}
	for _, decl := range decls {
		if err := style.Apply(decl); err != nil {
			logger.WarningLogger.Printf("ignored declaration in <%s>: %s", node.Data, err)
			continue
		}
		if decl.Name == "display" {
			isInlineBlock = strings.EqualFold(decl.Value, "inline-block")
		}
	}
	return style, isInlineBlock
}

// applyDefaults sets the values of the user agent style sheet
// relevant for inline content.
func applyDefaults(node *html.Node, style *pr.Style) {
	switch node.DataAtom {
	case atom.P, atom.Div:
		style.DisplayBlock = true
	case atom.Pre:
		style.DisplayBlock = true
		style.WhiteSpace = pr.WPre
	case atom.Nobr:
		style.WhiteSpace = pr.WNowrap
	case atom.Sub:
		style.VerticalAlign = pr.VerticalAlign{Keyword: pr.VASub}
	case atom.Sup:
		style.VerticalAlign = pr.VerticalAlign{Keyword: pr.VASuper}
	case atom.U, atom.Ins:
		style.TextDecorationLine = pr.Underline
	case atom.S, atom.Strike, atom.Del:
		style.TextDecorationLine = pr.LineThrough
	case atom.Br:
		if clear, ok := getAttr(node, "clear"); ok {
			switch strings.ToLower(clear) {
			case "left":
				style.Clear = pr.ClearLeft
			case "right":
				style.Clear = pr.ClearRight
			case "all", "both":
				style.Clear = pr.ClearBoth
			}
		}
	}
}

func (b *builder) element(node *html.Node, parent *pr.Style) {
	style, isInlineBlock := b.computeStyle(node, parent)

	switch {
	case node.DataAtom == atom.Br:
		b.lineBreak(style)
	case node.DataAtom == atom.Img:
		b.independent(newImage(node, style), style, node.Data)
	case isInlineBlock || style.DisplayBlock || style.Float != pr.FloatNone || style.Position.IsOutOfFlow():
		nested := newBuilder(b.opts, b.fonts)
		box := &blockBox{style: style, tag: node.Data, ifc: nested.context(style, children(node))}
		b.independent(box, style, node.Data)
	default:
		box := layout.NewInlineBox(style, node.Data)
		box.Font = b.font(style)
		b.items = append(b.items, layout.StartInlineBox{Box: box})
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			b.node(child, style)
		}
		b.items = append(b.items, layout.EndInlineBox{})
	}
}

// lineBreak adds a <br> element, made of an inline box
// containing a preserved newline.
func (b *builder) lineBreak(style *pr.Style) {
	box := layout.NewInlineBox(style, "br")
	box.Font = b.font(style)
	box.IsLineBreak = true

	newline := style.Inherit()
	newline.WhiteSpace = pr.WPreLine

	b.items = append(b.items, layout.StartInlineBox{Box: box})
	b.addText("\n", newline)
	b.items = append(b.items, layout.EndInlineBox{})
}

// independent adds a box establishing its own formatting context.
// Absolutely positioned boxes are never floated.
func (b *builder) independent(box bo.IndependentBox, style *pr.Style, tag string) {
	switch {
	case style.Position.IsOutOfFlow():
		b.items = append(b.items, layout.AbsoluteBox{Box: box})
	case style.Float != pr.FloatNone:
		b.items = append(b.items, layout.FloatBox{Box: box})
	default:
		if style.DisplayBlock {
			logger.WarningLogger.Printf("block-level <%s> in inline content: laid out as an inline-block", tag)
		}
		b.items = append(b.items, layout.Atomic{Box: box, OffsetInText: len(b.text)})
		b.text = append(b.text, '\uFFFC')
		b.afterSpace = false
	}
}
