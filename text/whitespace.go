package text

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
)

// CollapseWhiteSpace applies the first phase of the white space
// processing rules, as described in
// https://drafts.csswg.org/css-text-3/#white-space-phase-1
//
// [afterCollapsibleSpace] tells if the previous text of the formatting context
// (possibly in an other element) ends with a collapsible space. The returned
// boolean is the value to use for the next text.
//
// Carriage returns are removed in all modes.
func CollapseWhiteSpace(text []rune, ws pr.WhiteSpace, afterCollapsibleSpace bool) ([]rune, bool) {
	out := make([]rune, 0, len(text))
	collapse := ws.Collapse()
	if collapse == pr.Preserve || collapse == pr.BreakSpaces {
		for _, r := range text {
			if r != '\r' {
				out = append(out, r)
			}
		}
		return out, false
	}

	// remove spaces and tabs around segment breaks
	var tmp []rune
	for i := 0; i < len(text); i++ {
		r := text[i]
		switch r {
		case '\r':
			continue
		case '\n':
			for len(tmp) != 0 && (tmp[len(tmp)-1] == ' ' || tmp[len(tmp)-1] == '\t') {
				tmp = tmp[:len(tmp)-1]
			}
			tmp = append(tmp, r)
			for i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				i++
			}
		default:
			tmp = append(tmp, r)
		}
	}

	prevSpace := afterCollapsibleSpace
	for _, r := range tmp {
		switch r {
		case '\n':
			if collapse == pr.PreserveBreaks {
				// the preceding collapsible spaces have been removed above
				out = append(out, r)
				prevSpace = false
				continue
			}
			r = ' ' // segment breaks are transformed to spaces
		case '\t':
			r = ' '
		}
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		out = append(out, r)
	}
	return out, prevSpace
}
