package text

import (
	"github.com/go-text/typesetting/segmenter"
	"github.com/go-text/typesetting/unicodedata"
)

// lineBreaks returns a slice of length len(text)+1, where
// breaks[i] is true if a soft wrap opportunity (or a mandatory break)
// exists before text[i]. breaks[0] is always false.
func lineBreaks(text []rune) []bool {
	breaks := make([]bool, len(text)+1)
	if len(text) == 0 {
		return breaks
	}
	var seg segmenter.Segmenter
	seg.Init(text)
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		if end := line.Offset + len(line.Text); end < len(breaks) {
			breaks[end] = true
		}
	}
	breaks[0] = false
	return breaks
}

// PreventsSoftWrapAroundAtomic returns true if the character
// suppresses the soft wrap opportunity usually found before and
// after atomic inlines, that is for the line breaking classes
// GL, WJ and ZWJ, with the exception of U+00A0.
//
// See https://drafts.csswg.org/css-text-3/#line-break-details
func PreventsSoftWrapAroundAtomic(r rune) bool {
	if r == '\u00A0' {
		return false
	}
	class := unicodedata.LookupLineBreakClass(r)
	return class == unicodedata.BreakGL || class == unicodedata.BreakWJ || class == unicodedata.BreakZWJ
}
