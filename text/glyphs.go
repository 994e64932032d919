package text

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// Glyph is one shaped glyph.
type Glyph struct {
	ID      uint32
	Advance pr.Float
	// Cluster is the index, in the paragraph text, of the first
	// rune mapped to this glyph.
	Cluster int
	// IsWordSeparator is true for the first glyph of a cluster
	// starting with a word separator, which is a justification opportunity.
	IsWordSeparator bool
}

// GlyphRun is a sequence of glyphs which can't be split
// by a soft wrap opportunity.
type GlyphRun struct {
	Glyphs []Glyph
	// Start and End delimit the text of the run in the paragraph.
	Start, End int

	advance        pr.Float
	wordSeparators int
	isWhitespace   bool
	isNewline      bool
}

// NewGlyphRun caches the properties of the glyphs, shaped
// from [text] which starts at [start] in the paragraph.
func NewGlyphRun(glyphs []Glyph, text []rune, start int) *GlyphRun {
	out := &GlyphRun{Glyphs: glyphs, Start: start, End: start + len(text)}
	out.isWhitespace = len(text) != 0
	for _, r := range text {
		if !IsWhitespace(r) {
			out.isWhitespace = false
			break
		}
	}
	// a newline is shaped like a space, but has no advance during layout
	out.isNewline = len(text) == 1 && text[0] == '\n'
	if out.isNewline {
		for i := range out.Glyphs {
			out.Glyphs[i].Advance = 0
		}
	}
	for _, g := range out.Glyphs {
		out.advance += g.Advance
		if g.IsWordSeparator {
			out.wordSeparators++
		}
	}
	return out
}

// TotalAdvance returns the sum of the glyphs advances.
func (g *GlyphRun) TotalAdvance() pr.Float { return g.advance }

// TotalWordSeparators returns the number of justification opportunities.
func (g *GlyphRun) TotalWordSeparators() int { return g.wordSeparators }

// IsWhitespace returns true if the run only contains white space.
func (g *GlyphRun) IsWhitespace() bool { return g.isWhitespace }

// IsSingleNewline returns true for a run made of one preserved newline,
// which triggers a forced line break.
func (g *GlyphRun) IsSingleNewline() bool { return g.isNewline }

// IsWhitespace returns true for the characters handled as white space by CSS.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// See https://drafts.csswg.org/css-text/#word-separator
func isWordSeparator(r rune) bool {
	switch r {
	case ' ', '\u00A0', '\u1361', '\U00010100', '\U00010101', '\U0001039F', '\U0001091F':
		return true
	default:
		return false
	}
}
