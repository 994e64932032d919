package layout

import (
	"io"
	"testing"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/floats"
	"github.com/benoitkugler/inlinelayout/logger"
	"github.com/benoitkugler/inlinelayout/text"
	tu "github.com/benoitkugler/inlinelayout/utils/testutils"
)

type fl = pr.Float

func init() {
	logger.ProgressLogger.SetOutput(io.Discard)
}

// glyphs are 10px wide, lines are 10px high with the baseline at 8px
var testMetrics = text.FontMetrics{Ascent: 8, Descent: 2, XHeight: 5, NormalLineHeight: 10}

func testFont() *text.Font { return text.NewSyntheticFont("test", 10, testMetrics) }

// ifcBuilder builds the items of an inline formatting context,
// tracking the text of the paragraph.
type ifcBuilder struct {
	style *pr.Style
	font  *text.Font
	text  []rune
	items []InlineItem
	boxes []*InlineBox
}

func newBuilder(style *pr.Style) *ifcBuilder {
	return &ifcBuilder{style: style, font: testFont()}
}

func (b *ifcBuilder) currentStyle() *pr.Style {
	if L := len(b.boxes); L != 0 {
		return b.boxes[L-1].Style
	}
	return b.style
}

func (b *ifcBuilder) addText(s string) *ifcBuilder {
	start := len(b.text)
	b.text = append(b.text, []rune(s)...)
	b.items = append(b.items, &TextRun{Style: b.currentStyle(), Start: start, End: len(b.text)})
	return b
}

func (b *ifcBuilder) start(box *InlineBox) *ifcBuilder {
	b.boxes = append(b.boxes, box)
	b.items = append(b.items, StartInlineBox{Box: box})
	return b
}

func (b *ifcBuilder) end() *ifcBuilder {
	b.boxes = b.boxes[:len(b.boxes)-1]
	b.items = append(b.items, EndInlineBox{})
	return b
}

func (b *ifcBuilder) atomic(box bo.IndependentBox) *ifcBuilder {
	b.items = append(b.items, Atomic{Box: box, OffsetInText: len(b.text)})
	b.text = append(b.text, '\uFFFC')
	return b
}

func (b *ifcBuilder) float(box bo.IndependentBox) *ifcBuilder {
	b.items = append(b.items, FloatBox{Box: box})
	return b
}

func (b *ifcBuilder) absolute(box bo.IndependentBox) *ifcBuilder {
	b.items = append(b.items, AbsoluteBox{Box: box})
	return b
}

func (b *ifcBuilder) build() *InlineFormattingContext {
	paragraph := text.NewParagraph(b.text, b.style.Direction)
	for _, item := range b.items {
		if run, ok := item.(*TextRun); ok {
			run.Segments = paragraph.Segments(run.Start, run.End, b.font, text.FixedShaper{}, run.Style.WhiteSpace, run.Style.Lang)
		}
	}
	return NewInlineFormattingContext(b.style, b.font, paragraph, b.items)
}

func containingBlock(inlineSize fl, style *pr.Style) bo.ContainingBlock {
	return bo.ContainingBlock{InlineSize: inlineSize, BlockSize: pr.Inf, Style: style}
}

func layoutText(t *testing.T, s string, inlineSize fl, style *pr.Style) LayoutResult {
	t.Helper()
	ifc := newBuilder(style).addText(s).build()
	return ifc.Layout(containingBlock(inlineSize, style), nil)
}

func lines(t *testing.T, res LayoutResult) []*bo.LineFragment {
	t.Helper()
	out := make([]*bo.LineFragment, len(res.Fragments))
	for i, f := range res.Fragments {
		line, ok := f.(*bo.LineFragment)
		tu.Assert(t, ok, "expected line fragments")
		out[i] = line
	}
	return out
}

// textFragments returns the text fragments directly in [line]
func textFragments(line *bo.LineFragment) []*bo.TextFragment {
	var out []*bo.TextFragment
	for _, child := range line.Children {
		if tf, ok := child.(*bo.TextFragment); ok {
			out = append(out, tf)
		}
	}
	return out
}

func TestHelloWorld(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	res := layoutText(t, "Hello world", 80, pr.InitialStyle())
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	tu.AssertEqual(t, ls[0].Rect, bo.Rect{Start: bo.Vec2{}, Size: bo.Vec2{Inline: 80, Block: 10}})
	tu.AssertEqual(t, ls[0].Baseline, fl(8))
	texts := textFragments(ls[0])
	tu.AssertEqual(t, len(texts), 1) // the trailing space is trimmed
	tu.AssertEqual(t, texts[0].Rect, bo.Rect{Start: bo.Vec2{}, Size: bo.Vec2{Inline: 50, Block: 10}})

	tu.AssertEqual(t, ls[1].Rect.Start, bo.Vec2{Block: 10})
	texts = textFragments(ls[1])
	tu.AssertEqual(t, len(texts), 1)
	tu.AssertEqual(t, texts[0].Glyphs[0].Start, 6)
	tu.AssertEqual(t, texts[0].Rect.Start, bo.Vec2{})

	tu.AssertEqual(t, res.ContentBlockSize, fl(20))
	tu.AssertEqual(t, res.Baselines, bo.Baselines{First: fl(8), Last: fl(18)})
	tu.Assert(t, !res.CollapsedThrough, "unexpected collapsed through")
}

func TestOneLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	res := layoutText(t, "Hello world", 200, pr.InitialStyle())
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)
	texts := textFragments(ls[0])
	tu.AssertEqual(t, len(texts), 3)
	tu.AssertEqual(t, texts[2].Rect.Start.Inline, fl(60))
}

func TestEmptyContext(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	res := newBuilder(style).build().Layout(containingBlock(100, style), nil)
	tu.AssertEqual(t, len(res.Fragments), 0)
	tu.AssertEqual(t, res.ContentBlockSize, fl(0))
	tu.Assert(t, res.CollapsedThrough, "expected collapsed through")
	tu.AssertEqual(t, res.Baselines, bo.Baselines{})

	// collapsible white space only
	res = layoutText(t, " ", 100, style)
	tu.AssertEqual(t, len(res.Fragments), 0)
	tu.AssertEqual(t, res.ContentBlockSize, fl(0))
	tu.Assert(t, res.CollapsedThrough, "expected collapsed through")
}

func TestWordLongerThanLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// the first content of a line is always accepted
	res := layoutText(t, "aaaaaaaa b", 50, pr.InitialStyle())
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Size.Inline, fl(80))
}

func TestNowrap(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.WhiteSpace = pr.WNowrap
	res := layoutText(t, "aa bb cc", 30, style)
	tu.AssertEqual(t, len(res.Fragments), 1)
}

func TestPreservedNewlines(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.WhiteSpace = pr.WPre
	res := layoutText(t, "a\nb", 100, style)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(10))

	// an empty line still takes its block size
	res = layoutText(t, "a\n\nb", 100, style)
	ls = lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(20))
	tu.AssertEqual(t, res.ContentBlockSize, fl(30))
}

func TestLineBreakElement(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	brStyle := style.Inherit()
	brStyle.WhiteSpace = pr.WPreLine
	br := NewInlineBox(brStyle, "br")
	br.IsLineBreak = true

	ifc := newBuilder(style).addText("a").start(br).addText("\n").end().addText("b").build()
	res := ifc.Layout(containingBlock(100, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, len(ls[0].Children), 2)
	box, ok := ls[0].Children[1].(*bo.BoxFragment)
	tu.Assert(t, ok, "expected a box fragment for <br>")
	tu.AssertEqual(t, box.Tag, "br")
	tu.AssertEqual(t, box.Kind, bo.InlineBoxKind)
	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(10))
	tu.AssertEqual(t, res.ContentBlockSize, fl(20))
}

func TestTextAlign(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		align pr.TextAlign
		dir   pr.Direction
		exp   fl
	}{
		{pr.TAStart, pr.LTR, 0},
		{pr.TALeft, pr.LTR, 0},
		{pr.TACenter, pr.LTR, 75},
		{pr.TAEnd, pr.LTR, 150},
		{pr.TARight, pr.LTR, 150},
		{pr.TALeft, pr.RTL, 150},
		{pr.TAJustify, pr.LTR, 0}, // last line
	} {
		style := pr.InitialStyle()
		style.TextAlign = test.align
		style.Direction = test.dir
		res := layoutText(t, "Hello", 200, style)
		ls := lines(t, res)
		tu.AssertEqual(t, len(ls), 1)
		tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Start.Inline, test.exp)
	}
}

func TestTextIndent(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.TextIndent = pr.Pixels(20)
	res := layoutText(t, "aa bb", 50, style)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Start.Inline, fl(20))
	// only the first line is indented
	tu.AssertEqual(t, textFragments(ls[1])[0].Rect.Start.Inline, fl(0))

	// the indent is kept with center alignment
	style.TextAlign = pr.TACenter
	res = layoutText(t, "aa", 100, style)
	ls = lines(t, res)
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Start.Inline, fl(50)) // (100 - 20 + 20) / 2
}

func TestJustify(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.TextAlign = pr.TAJustify
	res := layoutText(t, "aa bb cc", 70, style)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	texts := textFragments(ls[0])
	tu.AssertEqual(t, len(texts), 3)
	tu.AssertEqual(t, texts[1].Rect.Size.Inline, fl(30)) // 10 + one opportunity of 20
	tu.AssertEqual(t, texts[2].Rect.Start.Inline, fl(50))
	tu.AssertEqual(t, texts[2].JustificationAdjustment, fl(20))

	// the last line is not justified
	texts = textFragments(ls[1])
	tu.AssertEqual(t, texts[0].JustificationAdjustment, fl(0))

	// text-justify: none disables justification
	style.TextJustify = pr.TJNone
	res = layoutText(t, "aa bb cc", 70, style)
	texts = textFragments(lines(t, res)[0])
	tu.AssertEqual(t, texts[2].Rect.Start.Inline, fl(30))
}

func TestJustificationNeverNegative(t *testing.T) {
	style := pr.InitialStyle()
	style.TextAlign = pr.TAJustify
	p := text.NewParagraph([]rune("a b"), pr.LTR)
	segments := p.Segments(0, 3, testFont(), text.FixedShaper{}, style.WhiteSpace, style.Lang)

	layout := inlineLayout{containingBlock: containingBlock(20, style)}
	layout.currentLine = newLineUnderConstruction(bo.Vec2{})
	layout.currentLine.items = []lineItem{&textRunLineItem{style: style, font: testFont(), runs: segments[0].Runs}}
	layout.currentLine.inlinePosition = 30

	start, adjustment := layout.currentLineInlineStartAndJustificationAdjustment(0, false)
	tu.AssertEqual(t, start, fl(0))
	tu.AssertEqual(t, adjustment, fl(0))
}

func TestPreservedTrailingSpaces(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.WhiteSpace = pr.WPreWrap
	style.TextAlign = pr.TAEnd
	res := layoutText(t, "ab  ", 100, style)
	texts := textFragments(lines(t, res)[0])
	tu.AssertEqual(t, len(texts), 2)
	tu.AssertEqual(t, texts[0].Rect.Start.Inline, fl(60))
}

func TestTrimmingIdempotent(t *testing.T) {
	style := pr.InitialStyle()
	p := text.NewParagraph([]rune("ab  "), pr.LTR)
	segments := p.Segments(0, 4, testFont(), text.FixedShaper{}, style.WhiteSpace, style.Lang)
	line := newLineUnderConstruction(bo.Vec2{})
	line.items = []lineItem{&textRunLineItem{style: style, font: testFont(), runs: segments[0].Runs}}

	tu.AssertEqual(t, line.trimTrailingWhitespace(), fl(20))
	tu.AssertEqual(t, line.trimTrailingWhitespace(), fl(0))
	tu.AssertEqual(t, len(line.items[0].(*textRunLineItem).runs), 1)
}

func TestInlineBoxPadding(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	spanStyle := style.Inherit()
	spanStyle.Padding = pr.Sides{Top: 5, Right: 5, Bottom: 5, Left: 5}
	span := NewInlineBox(spanStyle, "span")

	ifc := newBuilder(style).start(span).addText("ab").end().addText("c").build()
	res := ifc.Layout(containingBlock(200, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)
	tu.AssertEqual(t, len(ls[0].Children), 2)

	box := ls[0].Children[0].(*bo.BoxFragment)
	tu.AssertEqual(t, box.Content, bo.Rect{Start: bo.Vec2{Inline: 5}, Size: bo.Vec2{Inline: 20, Block: 10}})
	tu.AssertEqual(t, box.Padding, bo.LogicalSides{InlineStart: 5, InlineEnd: 5, BlockStart: 5, BlockEnd: 5})
	tu.AssertEqual(t, len(box.Children), 1)
	tu.AssertEqual(t, box.Children[0].ContentRect().Start, bo.Vec2{})

	c := ls[0].Children[1].(*bo.TextFragment)
	tu.AssertEqual(t, c.Rect.Start.Inline, fl(30))
}

func TestSplitInlineBox(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	spanStyle := style.Inherit()
	spanStyle.Padding = pr.Sides{Left: 5, Right: 5}
	span := NewInlineBox(spanStyle, "span")

	// the box is laid out on two lines
	ifc := newBuilder(style).start(span).addText("aa bb").end().build()
	res := ifc.Layout(containingBlock(40, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	first := ls[0].Children[0].(*bo.BoxFragment)
	second := ls[1].Children[0].(*bo.BoxFragment)
	// start edges on the first line, end edges on the last line
	tu.AssertEqual(t, first.Padding, bo.LogicalSides{InlineStart: 5})
	tu.AssertEqual(t, second.Padding, bo.LogicalSides{InlineEnd: 5})
	tu.AssertEqual(t, first.Content.Start.Inline, fl(5))
	tu.AssertEqual(t, second.Content.Start.Inline, fl(0))
}

func TestAtomic(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	img := bo.NewReplacedBox(style.Inherit(), "img", 20, 30)
	ifc := newBuilder(style).addText("a").atomic(img).addText("b").build()
	res := ifc.Layout(containingBlock(200, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)

	// the image bottom edge is on the baseline
	line := ls[0]
	tu.AssertEqual(t, line.Rect.Size.Block, fl(32))
	tu.AssertEqual(t, line.Baseline, fl(30))
	tu.AssertEqual(t, len(line.Children), 3)

	a := line.Children[0].(*bo.TextFragment)
	tu.AssertEqual(t, a.Rect.Start, bo.Vec2{Block: 22})
	frag := line.Children[1].(*bo.BoxFragment)
	tu.AssertEqual(t, frag.Kind, bo.AtomicKind)
	tu.AssertEqual(t, frag.Content, bo.Rect{Start: bo.Vec2{Inline: 10}, Size: bo.Vec2{Inline: 20, Block: 30}})
	b := line.Children[2].(*bo.TextFragment)
	tu.AssertEqual(t, b.Rect.Start, bo.Vec2{Inline: 30, Block: 22})
}

func TestAtomicVerticalAlignTop(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	imgStyle := style.Inherit()
	imgStyle.VerticalAlign = pr.VerticalAlign{Keyword: pr.VATop}
	img := bo.NewReplacedBox(imgStyle, "img", 20, 30)
	ifc := newBuilder(style).addText("a").atomic(img).build()
	res := ifc.Layout(containingBlock(200, style), nil)
	line := lines(t, res)[0]

	tu.AssertEqual(t, line.Rect.Size.Block, fl(30))
	tu.AssertEqual(t, line.Baseline, fl(8))
	frag := line.Children[1].(*bo.BoxFragment)
	tu.AssertEqual(t, frag.Content.Start.Block, fl(0))
}

func TestMissingAtomicFragment(t *testing.T) {
	logs := tu.CaptureLogs()

	style := pr.InitialStyle()
	ifc := newBuilder(style).atomic(nilBox{style}).build()
	res := ifc.Layout(containingBlock(200, style), nil)
	tu.AssertEqual(t, len(res.Fragments), 1)

	logs.AssertLogs(t, 1)
}

type nilBox struct{ style *pr.Style }

func (b nilBox) Style() *pr.Style                          { return b.style }
func (nilBox) Layout(cb bo.ContainingBlock) *bo.BoxFragment { return nil }

func floatBox(side pr.FloatSide, width, height fl) *bo.ReplacedBox {
	style := pr.InitialStyle()
	style.Float = side
	return bo.NewReplacedBox(style, "float", width, height)
}

func TestFloatOnLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	ifc := newBuilder(style).addText("aa ").float(floatBox(pr.FloatLeft, 30, 30)).addText("bb").build()
	tu.Assert(t, ifc.ContainsFloats, "expected floats")

	res := ifc.Layout(containingBlock(100, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)

	line := ls[0]
	tu.AssertEqual(t, len(line.Children), 4)
	float := line.Children[2].(*bo.BoxFragment)
	tu.AssertEqual(t, float.Kind, bo.FloatKind)
	tu.AssertEqual(t, float.Content.Start, bo.Vec2{})

	// the line is shortened by the float
	tu.AssertEqual(t, line.Children[0].ContentRect().Start.Inline, fl(30))
	tu.AssertEqual(t, line.Children[3].ContentRect().Start.Inline, fl(60))
}

func TestFloatAfterLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	state := floats.NewSequentialLayoutState(100)
	ifc := newBuilder(style).addText("aaaaaaaa ").float(floatBox(pr.FloatLeft, 50, 50)).addText("bb").build()
	res := ifc.Layout(containingBlock(100, style), state)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	// the float does not fit and is placed below the first line
	var floatsCount int
	for _, line := range ls {
		for _, child := range line.Children {
			if f, ok := child.(*bo.BoxFragment); ok && f.Kind == bo.FloatKind {
				floatsCount++
				tu.AssertEqual(t, f.Content.Start, bo.Vec2{Block: 10})
			}
		}
	}
	tu.AssertEqual(t, floatsCount, 1)
	tu.AssertEqual(t, state.Floats.Len(), 1)

	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(10))
	tu.AssertEqual(t, ls[1].Children[0].ContentRect().Start.Inline, fl(50))
	tu.AssertEqual(t, state.BFCRelativeBlockPosition, fl(20))
}

func placedFloat(state *floats.SequentialLayoutState, side pr.FloatSide, width, height, blockOffset fl) {
	style := pr.InitialStyle()
	style.Float = side
	fragment := &bo.BoxFragment{Style: style, Kind: bo.FloatKind, Content: bo.Rect{Size: bo.Vec2{Inline: width, Block: height}}}
	state.PlaceFloatFragment(fragment, containingBlock(100, style), floats.CollapsedMargin{}, blockOffset)
}

func atomicOf(line *bo.LineFragment) *bo.BoxFragment {
	for _, child := range line.Children {
		if f, ok := child.(*bo.BoxFragment); ok && f.Kind == bo.AtomicKind {
			return f
		}
	}
	return nil
}

func TestTallerLineBesideFloat(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	state := floats.NewSequentialLayoutState(100)
	placedFloat(state, pr.FloatLeft, 50, 10, 0)

	// the line first fits in the 10px band beside the float, then grows
	// with the image : it is placed again, at the same block position
	img := bo.NewReplacedBox(style.Inherit(), "img", 10, 30)
	ifc := newBuilder(style).addText("aa ").atomic(img).build()
	res := ifc.Layout(containingBlock(100, style), state)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)

	line := ls[0]
	tu.AssertEqual(t, line.Rect.Start.Block, fl(0))
	tu.AssertEqual(t, line.Rect.Size.Block, fl(32))
	tu.AssertEqual(t, textFragments(line)[0].Rect.Start.Inline, fl(50))
	tu.AssertEqual(t, atomicOf(line).Content.Start, bo.Vec2{Inline: 80})
	tu.AssertEqual(t, state.BFCRelativeBlockPosition, fl(32))
}

func TestTallerLineBreaksBelowFloats(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	state := floats.NewSequentialLayoutState(100)
	placedFloat(state, pr.FloatLeft, 50, 10, 0)
	placedFloat(state, pr.FloatRight, 40, 10, 10)

	// the taller line would only fit below the first float, where
	// the line can't stay : the image goes to the next line
	img := bo.NewReplacedBox(style.Inherit(), "img", 10, 30)
	ifc := newBuilder(style).addText("aa ").atomic(img).build()
	res := ifc.Layout(containingBlock(100, style), state)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	tu.AssertEqual(t, ls[0].Rect.Start.Block, fl(0))
	tu.AssertEqual(t, ls[0].Rect.Size.Block, fl(10))
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Start.Inline, fl(50))
	tu.Assert(t, atomicOf(ls[0]) == nil, "unexpected image on the first line")

	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(10))
	tu.AssertEqual(t, ls[1].Rect.Size.Block, fl(32))
	tu.AssertEqual(t, atomicOf(ls[1]).Content.Start, bo.Vec2{})
	tu.AssertEqual(t, state.BFCRelativeBlockPosition, fl(42))
}

func TestSeveralFloats(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	state := floats.NewSequentialLayoutState(100)
	ifc := newBuilder(style).addText("aaaaaa ").
		float(floatBox(pr.FloatLeft, 30, 20)).
		float(floatBox(pr.FloatRight, 40, 20)).
		addText("bb").build()
	res := ifc.Layout(containingBlock(100, style), state)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)

	// the first float fits beside the text, the second waits
	// for the end of the line
	var placed []*bo.BoxFragment
	for _, line := range ls {
		for _, child := range line.Children {
			if f, ok := child.(*bo.BoxFragment); ok && f.Kind == bo.FloatKind {
				placed = append(placed, f)
			}
		}
	}
	tu.AssertEqual(t, len(placed), 2)
	tu.AssertEqual(t, placed[0].Content, bo.Rect{Size: bo.Vec2{Inline: 30, Block: 20}})
	tu.AssertEqual(t, placed[1].Content, bo.Rect{Start: bo.Vec2{Inline: 60, Block: 10}, Size: bo.Vec2{Inline: 40, Block: 20}})
	tu.AssertEqual(t, state.Floats.Len(), 2)

	// the first line is moved after the first float
	tu.AssertEqual(t, ls[0].Rect.Start.Block, fl(0))
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect.Start.Inline, fl(30))

	// the second line is between the two floats
	tu.AssertEqual(t, ls[1].Rect.Start.Block, fl(10))
	tu.AssertEqual(t, textFragments(ls[1])[0].Rect.Start.Inline, fl(30))
	tu.AssertEqual(t, state.BFCRelativeBlockPosition, fl(20))
}

func TestAbsolute(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	absStyle := style.Inherit()
	absStyle.Position = pr.Absolute
	abs := bo.NewReplacedBox(absStyle, "abs", 10, 10)

	ifc := newBuilder(style).addText("aa").absolute(abs).addText("bb").build()
	res := ifc.Layout(containingBlock(200, style), nil)
	tu.AssertEqual(t, len(res.Hoisted), 1)
	tu.AssertEqual(t, res.Hoisted[0].StaticPosition, bo.Vec2{Inline: 20})

	// block level boxes start below the line
	absStyle.DisplayBlock = true
	ifc = newBuilder(style).addText("aa").absolute(abs).build()
	res = ifc.Layout(containingBlock(200, style), nil)
	tu.AssertEqual(t, res.Hoisted[0].StaticPosition, bo.Vec2{Block: 10})

	// a line with only an absolute box is kept
	ifc = newBuilder(style).absolute(abs).build()
	res = ifc.Layout(containingBlock(200, style), nil)
	tu.AssertEqual(t, len(res.Fragments), 1)
	tu.Assert(t, res.CollapsedThrough, "expected collapsed through")
}

func TestBlockSizes(t *testing.T) {
	style := pr.InitialStyle()
	style.LineHeight = pr.LineHeight{Value: pr.Pixels(20)}
	sizes := blockSizesWithStyle(style.VerticalAlign, style, 8, 2, testMetrics, style.UsedLineHeight(10))
	tu.AssertEqual(t, sizes.resolve(), fl(20))
	tu.AssertEqual(t, sizes.findBaselineOffset(), fl(13))

	// normal line height uses the line gap of the font
	style = pr.InitialStyle()
	sizes = blockSizesWithStyle(style.VerticalAlign, style, 8, 2, text.FontMetrics{Ascent: 8, Descent: 2, NormalLineHeight: 12}, 12)
	tu.AssertEqual(t, sizes.baselineRelativeSizeForLineHeight, baselineRelativeSize{ascent: 9, descent: 3})

	// top and bottom aligned content
	top := lineBlockSizes{lineHeight: 30}
	tu.AssertEqual(t, top.resolve(), fl(30))
	tu.AssertEqual(t, top.findBaselineOffset(), fl(15))

	// nested baseline offsets
	sizes.adjustForBaselineOffset(4)
	tu.AssertEqual(t, sizes.baselineRelativeSizeForLineHeight, baselineRelativeSize{ascent: 5, descent: 7})
	tu.AssertEqual(t, sizes.resolve(), fl(12))
}

func TestVerticalAlignSub(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	subStyle := style.Inherit()
	subStyle.VerticalAlign = pr.VerticalAlign{Keyword: pr.VASub}
	sub := NewInlineBox(subStyle, "sub")

	ifc := newBuilder(style).addText("a").start(sub).addText("b").end().build()
	res := ifc.Layout(containingBlock(200, style), nil)
	line := lines(t, res)[0]

	// the baseline is lowered by 10 * 0.2 = 2px
	tu.AssertEqual(t, line.Rect.Size.Block, fl(12))
	tu.AssertEqual(t, line.Baseline, fl(8))
	box := line.Children[1].(*bo.BoxFragment)
	tu.AssertEqual(t, box.Content.Start.Block, fl(2))
}

func TestPathBetween(t *testing.T) {
	a, b, c, d := &InlineBox{Tag: "a"}, &InlineBox{Tag: "b"}, &InlineBox{Tag: "c"}, &InlineBox{Tag: "d"}
	b.parent, c.parent, d.parent = a, b, a

	ends, starts := pathBetween(nil, c)
	tu.AssertEqual(t, ends, 0)
	tu.AssertEqual(t, starts, []*InlineBox{a, b, c})

	ends, starts = pathBetween(c, d)
	tu.AssertEqual(t, ends, 2)
	tu.AssertEqual(t, starts, []*InlineBox{d})

	ends, starts = pathBetween(c, nil)
	tu.AssertEqual(t, ends, 3)
	tu.AssertEqual(t, len(starts), 0)

	ends, starts = pathBetween(b, c)
	tu.AssertEqual(t, ends, 0)
	tu.AssertEqual(t, starts, []*InlineBox{c})
}

func TestUnbalancedItems(t *testing.T) {
	style := pr.InitialStyle()
	for _, items := range [][]InlineItem{
		{EndInlineBox{}},
		{StartInlineBox{Box: NewInlineBox(style, "span")}},
		{StartInlineBox{}},
	} {
		func() {
			defer func() {
				tu.Assert(t, recover() != nil, "expected a panic")
			}()
			NewInlineFormattingContext(style, testFont(), text.NewParagraph(nil, pr.LTR), items)
		}()
	}
}

func TestVisualOrder(t *testing.T) {
	layout := inlineLayout{ifc: &InlineFormattingContext{Paragraph: text.NewParagraph([]rune("x"), pr.RTL)}}
	items := []lineItem{
		&textRunLineItem{level: 0},
		inlineStartBoxPBM{},
		&textRunLineItem{level: 1},
		&atomicLineItem{level: 1},
		&textRunLineItem{level: 0},
	}
	tu.AssertEqual(t, layout.lineItemLevels(items), []text.Level{0, 0, 1, 1, 0})
	tu.AssertEqual(t, layout.visualOrder(items), []int{0, 1, 3, 2, 4})

	layout.ifc.Paragraph = text.NewParagraph([]rune("x"), pr.LTR)
	tu.AssertEqual(t, layout.visualOrder(items), []int{0, 1, 2, 3, 4})
}

func TestUsedTextAlign(t *testing.T) {
	style := pr.InitialStyle()
	style.TextAlign = pr.TAJustify
	tu.AssertEqual(t, usedTextAlign(style, false), pr.TAJustify)
	tu.AssertEqual(t, usedTextAlign(style, true), pr.TAStart)

	style.TextAlignLast = pr.TACenter
	tu.AssertEqual(t, usedTextAlign(style, true), pr.TACenter)

	style.TextAlign = pr.TARight
	style.Direction = pr.RTL
	tu.AssertEqual(t, usedTextAlign(style, false), pr.TAStart)
}

func TestLayoutAll(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	var jobs []Job
	for _, s := range []string{"a", "aa bb", "aa bb cc"} {
		jobs = append(jobs, Job{IFC: newBuilder(style).addText(s).build(), ContainingBlock: containingBlock(30, style)})
	}
	results := LayoutAll(jobs)
	tu.AssertEqual(t, len(results), 3)
	for i, exp := range []int{1, 2, 3} {
		tu.AssertEqual(t, len(results[i].Fragments), exp)
	}
}

func TestForcedBreakBeforeEndOfBox(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.WhiteSpace = pr.WPre
	spanStyle := style.Inherit()
	spanStyle.Padding = pr.Sides{Right: 5}
	span := NewInlineBox(spanStyle, "span")

	// the break waits for the end of the box, whose closing
	// edge stays on the first line
	ifc := newBuilder(style).start(span).addText("a\n").end().addText("b").build()
	res := ifc.Layout(containingBlock(100, style), nil)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 2)
	tu.AssertEqual(t, len(ls[0].Children), 1)
	box := ls[0].Children[0].(*bo.BoxFragment)
	tu.AssertEqual(t, box.Padding, bo.LogicalSides{InlineEnd: 5})

	tu.AssertEqual(t, len(ls[1].Children), 1)
	_, isText := ls[1].Children[0].(*bo.TextFragment)
	tu.Assert(t, isText, "expected only text on the second line")
}

func TestCenteredLine(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.TextAlign = pr.TACenter
	res := layoutText(t, "aaaaaaaaaa", 300, style)
	ls := lines(t, res)
	tu.AssertEqual(t, len(ls), 1)
	tu.AssertEqual(t, textFragments(ls[0])[0].Rect, bo.Rect{Start: bo.Vec2{Inline: 100}, Size: bo.Vec2{Inline: 100, Block: 10}})
}
