package text

import (
	"testing"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	tu "github.com/benoitkugler/inlinelayout/utils/testutils"
)

type fl = pr.Float

func collapse(s string, ws pr.WhiteSpace) string {
	out, _ := CollapseWhiteSpace([]rune(s), ws, false)
	return string(out)
}

func TestCollapseWhiteSpace(t *testing.T) {
	tu.AssertEqual(t, collapse("Hello   world", pr.WNormal), "Hello world")
	tu.AssertEqual(t, collapse(" a \t\n  b ", pr.WNormal), " a b ")
	tu.AssertEqual(t, collapse("a \n b", pr.WNowrap), "a b")
	tu.AssertEqual(t, collapse("a  \n  b", pr.WPreLine), "a\nb")
	tu.AssertEqual(t, collapse("a  \r\n  b", pr.WPre), "a  \n  b")
	tu.AssertEqual(t, collapse("a  b", pr.WBreakSpaces), "a  b")

	// spaces are collapsed across elements
	out, after := CollapseWhiteSpace([]rune("a "), pr.WNormal, false)
	tu.AssertEqual(t, string(out), "a ")
	tu.Assert(t, after, "expected a trailing collapsible space")
	out, after = CollapseWhiteSpace([]rune("  b"), pr.WNormal, after)
	tu.AssertEqual(t, string(out), "b")
	tu.Assert(t, !after, "unexpected trailing space")
}

func TestLineBreaks(t *testing.T) {
	breaks := lineBreaks([]rune("Hello world"))
	tu.AssertEqual(t, len(breaks), 12)
	for i, b := range breaks {
		tu.AssertEqual(t, b, i == 6)
	}

	breaks = lineBreaks([]rune("a\nb"))
	tu.Assert(t, breaks[2], "expected a break after the newline")
	tu.Assert(t, !breaks[1], "unexpected break before the newline")

	tu.AssertEqual(t, len(lineBreaks(nil)), 1)
}

func TestPreventsSoftWrap(t *testing.T) {
	tu.Assert(t, PreventsSoftWrapAroundAtomic('\u2060'), "WORD JOINER is WJ")
	tu.Assert(t, PreventsSoftWrapAroundAtomic('\u200D'), "ZWJ")
	tu.Assert(t, PreventsSoftWrapAroundAtomic('\u202F'), "NARROW NO-BREAK SPACE is GL")
	tu.Assert(t, !PreventsSoftWrapAroundAtomic('\u00A0'), "NO-BREAK SPACE is an exception")
	tu.Assert(t, !PreventsSoftWrapAroundAtomic('a'), "letters do not prevent")
	tu.Assert(t, !PreventsSoftWrapAroundAtomic(' '), "spaces do not prevent")
}

func TestResolveLevels(t *testing.T) {
	levels := ResolveLevels([]rune("abc \u05D0\u05D1\u05D2 def"), pr.LTR)
	tu.AssertEqual(t, levels[:3], []Level{0, 0, 0})
	tu.AssertEqual(t, levels[4:7], []Level{1, 1, 1})
	tu.AssertEqual(t, levels[8:], []Level{0, 0, 0})

	levels = ResolveLevels([]rune("\u05D0\u05D1"), pr.RTL)
	tu.AssertEqual(t, levels, []Level{1, 1})

	// paragraph separators do not stop the analysis
	levels = ResolveLevels([]rune("ab\n\u05D0\u05D1"), pr.LTR)
	tu.AssertEqual(t, levels[3:], []Level{1, 1})

	// numbers inside right to left text are nested
	text := []rune("a \u0627\u0628 123 \u062C\u062F")
	levels = ResolveLevels(text, pr.LTR)
	tu.AssertEqual(t, levels, []Level{0, 0, 1, 1, 1, 2, 2, 2, 1, 1, 1})
	tu.AssertEqual(t, ReorderVisual(levels), []int{0, 1, 10, 9, 8, 5, 6, 7, 4, 3, 2})

	// numbers following left to right text are not
	levels = ResolveLevels([]rune("a 12 \u05D0"), pr.LTR)
	tu.AssertEqual(t, levels, []Level{0, 0, 0, 0, 0, 1})

	// the paragraph level is not guessed from the content
	levels = ResolveLevels([]rune("\u05D0 a"), pr.LTR)
	tu.AssertEqual(t, levels, []Level{1, 0, 0})

	p := NewParagraph([]rune("abc"), pr.LTR)
	tu.Assert(t, !p.HasRTL(), "unexpected RTL content")
	p = NewParagraph([]rune("abc"), pr.RTL)
	tu.Assert(t, p.HasRTL(), "RTL base direction")
}

func applyOrder(items []int, order []int) []int {
	out := make([]int, len(order))
	for i, index := range order {
		out[i] = items[index]
	}
	return out
}

func TestReorderVisual(t *testing.T) {
	tu.AssertEqual(t, ReorderVisual(nil), []int(nil))
	tu.AssertEqual(t, ReorderVisual([]Level{0, 0, 0}), []int{0, 1, 2})
	tu.AssertEqual(t, ReorderVisual([]Level{1, 1, 1}), []int{2, 1, 0})
	tu.AssertEqual(t, ReorderVisual([]Level{0, 1, 1, 0, 1}), []int{0, 2, 1, 3, 4})
	tu.AssertEqual(t, ReorderVisual([]Level{1, 2, 2, 1}), []int{3, 1, 2, 0})

	// with one reversal threshold, reordering is an involution
	for _, levels := range [][]Level{
		{0, 1, 1, 0, 1, 1, 1},
		{1, 1, 0, 1},
		{1, 0, 0, 0, 1},
	} {
		items := []int{0, 1, 2, 3, 4, 5, 6}[:len(levels)]
		order := ReorderVisual(levels)
		visual := applyOrder(items, order)
		tu.AssertEqual(t, applyOrder(visual, order), items)
	}

	// in general, the order is a permutation
	levels := []Level{2, 2, 1, 3, 3, 0, 1}
	order := ReorderVisual(levels)
	seen := map[int]bool{}
	for _, i := range order {
		seen[i] = true
	}
	tu.AssertEqual(t, len(seen), len(levels))
}

func TestSegmentsWhitespace(t *testing.T) {
	font := NewSyntheticFont("test", 10, FontMetrics{Ascent: 8, Descent: 2, NormalLineHeight: 12})
	text := []rune("Hello world")
	p := NewParagraph(text, pr.LTR)
	segs := p.Segments(0, len(text), font, FixedShaper{}, pr.WNormal, "")
	tu.AssertEqual(t, len(segs), 1)
	runs := segs[0].Runs
	tu.AssertEqual(t, len(runs), 3) // "Hello", " ", "world"
	tu.AssertEqual(t, runs[0].TotalAdvance(), fl(50))
	tu.Assert(t, runs[1].IsWhitespace(), "expected a whitespace run")
	tu.AssertEqual(t, runs[1].TotalWordSeparators(), 1)
	tu.AssertEqual(t, [2]int{runs[2].Start, runs[2].End}, [2]int{6, 11})
	tu.Assert(t, !segs[0].BreakAtStart, "no break at the start of a paragraph")

	segs = p.Segments(6, len(text), font, FixedShaper{}, pr.WNormal, "")
	tu.Assert(t, segs[0].BreakAtStart, "expected a break before 'world'")
}

func TestSegmentsBreakSpaces(t *testing.T) {
	font := NewSyntheticFont("test", 10, FontMetrics{Ascent: 8, Descent: 2, NormalLineHeight: 12})
	text := []rune("ab   c")
	p := NewParagraph(text, pr.LTR)
	runs := p.Segments(0, len(text), font, FixedShaper{}, pr.WBreakSpaces, "")[0].Runs
	// the first space stays with the word
	tu.AssertEqual(t, len(runs), 4)
	tu.AssertEqual(t, [2]int{runs[0].Start, runs[0].End}, [2]int{0, 3})
	tu.AssertEqual(t, [2]int{runs[1].Start, runs[1].End}, [2]int{3, 4})
	tu.AssertEqual(t, [2]int{runs[2].Start, runs[2].End}, [2]int{4, 5})
	tu.Assert(t, !runs[0].IsWhitespace(), "word with its first space")
}

func TestSegmentsNewline(t *testing.T) {
	font := NewSyntheticFont("test", 10, FontMetrics{Ascent: 8, Descent: 2, NormalLineHeight: 12})
	text := []rune("ab \nc")
	p := NewParagraph(text, pr.LTR)
	runs := p.Segments(0, len(text), font, FixedShaper{}, pr.WPre, "")[0].Runs
	tu.AssertEqual(t, len(runs), 4) // "ab", " ", "\n", "c"
	tu.Assert(t, runs[2].IsSingleNewline(), "expected an isolated newline")
	tu.AssertEqual(t, runs[2].TotalAdvance(), fl(0))
	tu.Assert(t, runs[1].IsWhitespace() && !runs[1].IsSingleNewline(), "expected a space run")
}

func TestSegmentsLevels(t *testing.T) {
	font := NewSyntheticFont("test", 10, FontMetrics{Ascent: 8, Descent: 2, NormalLineHeight: 12})
	text := []rune("ab \u05D0\u05D1")
	p := NewParagraph(text, pr.LTR)
	segs := p.Segments(0, len(text), font, FixedShaper{}, pr.WNormal, "")
	tu.AssertEqual(t, len(segs), 2)
	tu.AssertEqual(t, segs[0].Level, Level(0))
	tu.AssertEqual(t, segs[1].Level, Level(1))
	tu.Assert(t, p.HasRTL(), "expected RTL content")
}

func TestGoRegular(t *testing.T) {
	font := GoRegular(16)
	tu.Assert(t, font.Metrics.Ascent > 0 && font.Metrics.Descent > 0, "invalid metrics")
	tu.Assert(t, font.Metrics.NormalLineHeight >= font.Metrics.Ascent+font.Metrics.Descent, "invalid line height")
	tu.Assert(t, font.Metrics.XHeight > 0 && font.Metrics.XHeight < font.Metrics.Ascent, "invalid x-height")

	text := []rune("Hello world")
	glyphs := NewHarfbuzzShaper().Shape(text, 0, len(text), font, 0, "en")
	tu.AssertEqual(t, len(glyphs), len(text))
	run := NewGlyphRun(glyphs, text, 0)
	tu.Assert(t, run.TotalAdvance() > 0, "expected a positive advance")
	tu.AssertEqual(t, run.TotalWordSeparators(), 1)

	// synthetic fonts are supported by the Harfbuzz shaper
	synth := NewSyntheticFont("test", 10, FontMetrics{})
	glyphs = NewHarfbuzzShaper().Shape(text, 0, 5, synth, 0, "")
	tu.AssertEqual(t, NewGlyphRun(glyphs, text[:5], 0).TotalAdvance(), fl(50))
}
