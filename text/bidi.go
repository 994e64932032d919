package text

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	"golang.org/x/text/unicode/bidi"
)

// Level is a bidi embedding level. Odd levels
// are right to left.
type Level uint8

// IsRTL returns true for odd levels.
func (l Level) IsRTL() bool { return l%2 == 1 }

// BaseLevel returns the paragraph level for the given direction.
func BaseLevel(dir pr.Direction) Level {
	if dir == pr.RTL {
		return 1
	}
	return 0
}

// ResolveLevels returns the embedding level of each rune in [text],
// using [base] as the paragraph direction.
// Paragraph separators are given the base level.
func ResolveLevels(text []rune, base pr.Direction) []Level {
	levels := make([]Level, len(text))
	baseLevel := BaseLevel(base)
	for i := range levels {
		levels[i] = baseLevel
	}

	// the bidi package stops at the first paragraph separator,
	// so that we have to split the text
	start := 0
	for i, r := range text {
		if props, _ := bidi.LookupRune(r); props.Class() == bidi.B {
			resolveParagraphLevels(text[start:i], base, levels[start:i])
			start = i + 1
		}
	}
	resolveParagraphLevels(text[start:], base, levels[start:])
	return levels
}

// resolveParagraphLevels uses the runs of the bidi package, which only
// report a direction, and resolves the implicit levels (rules I1 and I2)
// from it: numbers in a left to right run following right to left text
// are raised to the level 2.
func resolveParagraphLevels(text []rune, base pr.Direction, levels []Level) {
	if len(text) == 0 {
		return
	}
	// the bidi package picks the paragraph level from the first strong
	// character when asked for left to right : a leading LRM forces it.
	dir, prefix := bidi.LeftToRight, "\u200E"
	if base == pr.RTL {
		dir, prefix = bidi.RightToLeft, ""
	}
	shift := len([]rune(prefix))
	var p bidi.Paragraph
	if _, err := p.SetString(prefix+string(text), bidi.DefaultDirection(dir)); err != nil {
		return // keep the base level
	}
	order, err := p.Order()
	if err != nil {
		return
	}

	raised := raisedNumbers(text)
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		start, end := run.Pos() // end is inclusive
		for j := start - shift; j <= end-shift; j++ {
			if j < 0 || j >= len(levels) {
				continue
			}
			switch {
			case run.Direction() == bidi.RightToLeft:
				levels[j] = 1
			case base == pr.RTL || raised[j]:
				levels[j] = 2
			default:
				levels[j] = 0
			}
		}
	}
}

// raisedNumbers returns the positions of the numbers which are not resolved
// to left to right text (rule W7) : arabic numbers and european numbers
// following right to left text, with the separators and terminators
// attached to them (rules W4 and W5) and their non spacing marks.
func raisedNumbers(text []rune) []bool {
	classes := make([]bidi.Class, len(text))
	for i, r := range text {
		props, _ := bidi.LookupRune(r)
		classes[i] = props.Class()
	}
	out := make([]bool, len(text))
	lastStrong := bidi.L
	for i, c := range classes {
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			lastStrong = c
		case bidi.AN:
			out[i] = true
		case bidi.EN:
			out[i] = lastStrong != bidi.L
		}
	}
	isNumber := func(i int) bool { return i >= 0 && i < len(out) && out[i] }
	for i, c := range classes {
		switch c {
		case bidi.ES, bidi.CS:
			out[i] = isNumber(i-1) && isNumber(i+1) && classes[i-1] == classes[i+1] &&
				(c == bidi.CS || classes[i-1] == bidi.EN)
		case bidi.NSM, bidi.BN:
			out[i] = isNumber(i - 1)
		}
	}
	// terminators adjacent to european numbers
	for i, c := range classes {
		if c != bidi.ET || out[i] {
			continue
		}
		j := i
		for j < len(classes) && classes[j] == bidi.ET {
			j++
		}
		if (isNumber(i-1) && classes[i-1] == bidi.EN) || (isNumber(j) && classes[j] == bidi.EN) {
			for k := i; k < j; k++ {
				out[k] = true
			}
		}
	}
	return out
}

// ReorderVisual returns the visual order of items given their levels,
// as a slice of logical indices : the item displayed at position i
// (from left to right) is the item with logical index out[i].
//
// It implements the rule L2 of the Unicode Bidirectional Algorithm :
// from the highest level to the lowest odd level on the line, reverse any
// contiguous sequence of items that are at that level or higher.
func ReorderVisual(levels []Level) []int {
	if len(levels) == 0 {
		return nil
	}
	min, max := levels[0], levels[0]
	for _, l := range levels {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}
	out := make([]int, len(levels))
	for i := range out {
		out[i] = i
	}
	if min == max && !min.IsRTL() {
		return out
	}
	// lowest odd level
	if !min.IsRTL() {
		min++
	}
	for level := int(max); level >= int(min); level-- {
		for start := 0; start < len(levels); {
			if int(levels[start]) < level {
				start++
				continue
			}
			end := start + 1
			for end < len(levels) && int(levels[end]) >= level {
				end++
			}
			reverse(out[start:end])
			start = end
		}
	}
	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
