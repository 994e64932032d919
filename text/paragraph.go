package text

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	tl "github.com/benoitkugler/textlayout/language"
)

// Paragraph stores the whole text content of an inline formatting
// context, with its line break opportunities and bidi levels.
// Atomic inlines are represented by U+FFFC OBJECT REPLACEMENT CHARACTER.
type Paragraph struct {
	Text   []rune
	Levels []Level
	Base   pr.Direction

	breaks []bool
	hasRTL bool
}

// NewParagraph analyses [text], which must already have been
// processed by [CollapseWhiteSpace].
func NewParagraph(text []rune, base pr.Direction) *Paragraph {
	p := &Paragraph{
		Text:   text,
		Base:   base,
		Levels: ResolveLevels(text, base),
		breaks: lineBreaks(text),
	}
	p.hasRTL = base == pr.RTL
	for _, l := range p.Levels {
		if l.IsRTL() {
			p.hasRTL = true
			break
		}
	}
	return p
}

// HasRTL returns true if the paragraph is right to left or contains
// right to left content, so that the lines must be reordered.
func (p *Paragraph) HasRTL() bool { return p != nil && p.hasRTL }

// BreakBefore returns true if there is a soft wrap opportunity
// before the rune at index [i].
func (p *Paragraph) BreakBefore(i int) bool {
	if i <= 0 || i >= len(p.breaks) {
		return false
	}
	return p.breaks[i]
}

// RuneAt returns the rune at [i] or false if [i] is out of bounds.
// It is safe to call on a nil paragraph.
func (p *Paragraph) RuneAt(i int) (rune, bool) {
	if p == nil || i < 0 || i >= len(p.Text) {
		return 0, false
	}
	return p.Text[i], true
}

// Segment is a part of a text run with the same font and bidi level.
type Segment struct {
	Font  *Font
	Level Level
	// Start and End delimit the segment in the paragraph text.
	Start, End int
	// BreakAtStart is true if the line breaker found a soft wrap opportunity
	// before the first rune of the segment.
	BreakAtStart bool
	// Runs are the unbreakable glyph runs of the segment,
	// separated by soft wrap opportunities.
	Runs []*GlyphRun
}

// Segments shapes the text between [start] and [end], splitting it by bidi level
// and soft wrap opportunities.
//
// Trailing white space of each unbreakable part is shaped in its own run, so that
// it can be trimmed at the end of lines. With 'white-space: break-spaces', the first
// space of a sequence stays with the preceding word (breaking is only allowed
// after a preserved space), and each following space gets its own run. A preserved
// newline is always isolated.
func (p *Paragraph) Segments(start, end int, font *Font, shaper Shaper, ws pr.WhiteSpace, lang tl.Language) []Segment {
	var out []Segment
	for start < end {
		level := p.Levels[start]
		segEnd := start + 1
		for segEnd < end && p.Levels[segEnd] == level {
			segEnd++
		}
		seg := Segment{Font: font, Level: level, Start: start, End: segEnd, BreakAtStart: p.BreakBefore(start)}
		wordStart := start
		for i := start + 1; i <= segEnd; i++ {
			if i == segEnd || p.BreakBefore(i) {
				seg.Runs = p.appendWord(seg.Runs, wordStart, i, font, shaper, ws, level, lang)
				wordStart = i
			}
		}
		out = append(out, seg)
		start = segEnd
	}
	return out
}

func (p *Paragraph) appendWord(runs []*GlyphRun, start, end int, font *Font, shaper Shaper, ws pr.WhiteSpace, level Level, lang tl.Language) []*GlyphRun {
	shape := func(a, b int) {
		glyphs := shaper.Shape(p.Text, a, b, font, level, lang)
		runs = append(runs, NewGlyphRun(glyphs, p.Text[a:b], a))
	}

	breakSpaces := ws.Collapse() == pr.BreakSpaces
	wsStart := end
	for wsStart > start && IsWhitespace(p.Text[wsStart-1]) {
		wsStart--
	}
	if wsStart < end && breakSpaces && p.Text[wsStart] != '\n' {
		wsStart++
	}
	if wsStart > start {
		shape(start, wsStart)
	}
	if wsStart == end {
		return runs
	}

	switch {
	case breakSpaces:
		for i := wsStart; i < end; i++ {
			shape(i, i+1)
		}
	case p.Text[end-1] == '\n' && end-wsStart > 1:
		// the line breaker breaks after every newline, so that
		// there is at most one, at the end
		shape(wsStart, end-1)
		shape(end-1, end)
	default:
		shape(wsStart, end)
	}
	return runs
}

// LevelAt returns the bidi level of the rune at [i], or the
// base level if [i] is out of bounds.
func (p *Paragraph) LevelAt(i int) Level {
	if p == nil {
		return 0
	}
	if i < 0 || i >= len(p.Levels) {
		return BaseLevel(p.Base)
	}
	return p.Levels[i]
}
