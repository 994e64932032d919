package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/benoitkugler/inlinelayout/utils"
)

var (
	numberRe    = regexp.MustCompile(`^[-+]?([0-9]*\.)?[0-9]+([eE][+-]?[0-9]+)?`)
	hexEscapeRe = regexp.MustCompile(`^([0-9A-Fa-f]{1,6})[ \n\t]?`)
)

type nestedBlock struct {
	tokens  *[]Token
	endChar byte
}

// TokenizeString is a convenience wrapper for [Tokenize].
func TokenizeString(css string, skipComments bool) []Token {
	return Tokenize([]byte(css), skipComments)
}

// Tokenize parses a list of component values.
// If [skipComments] is true, CSS comments are ignored :
// the returned tokens (and recursively the content of blocks and functions)
// do not contain any [Comment].
// Unclosed blocks and strings are implicitly closed at the end of the input.
func Tokenize(css []byte, skipComments bool) []Token {
	css = bytes.ReplaceAll(css, []byte("\u0000"), []byte("\uFFFD"))
	css = bytes.ReplaceAll(css, []byte("\r\n"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\r"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\f"), []byte("\n"))

	length := len(css)
	tokenStartPos, pos := 0, 0
	line, lastNewline := 1, -1
	var out []Token
	ts := &out       // current list of tokens
	var endChar byte // pop the stack when encountering this character
	var stack []nestedBlock

	push := func(content *[]Token, end byte) {
		stack = append(stack, nestedBlock{tokens: ts, endChar: endChar})
		ts, endChar = content, end
	}

	for pos < length {
		if newline := bytes.LastIndexByte(css[tokenStartPos:pos], '\n'); newline != -1 {
			newline += tokenStartPos
			line += 1 + bytes.Count(css[tokenStartPos:newline], []byte{'\n'})
			lastNewline = newline
		}
		tokenPos := Pos{Line: line, Column: pos - lastNewline}
		tokenStartPos = pos
		c := css[pos]

		if c == ' ' || c == '\n' || c == '\t' {
			for pos++; pos < length; pos++ {
				if u := css[pos]; !(u == ' ' || u == '\n' || u == '\t') {
					break
				}
			}
			*ts = append(*ts, Whitespace{pos: tokenPos, Value: string(css[tokenStartPos:pos])})
			continue
		}

		if isIdentStart(css, pos) {
			var value string
			value, pos = consumeIdent(css, pos)
			if !(pos < length && css[pos] == '(') {
				*ts = append(*ts, Ident{pos: tokenPos, Value: value})
				continue
			}
			pos++ // skip the "("
			fn := Function{pos: tokenPos, Name: value, Arguments: new([]Token)}
			*ts = append(*ts, fn)
			push(fn.Arguments, ')')
			continue
		}

		if match := numberRe.Find(css[pos:]); match != nil {
			repr := string(match)
			pos += len(match)
			value, _ := strconv.ParseFloat(repr, 32)
			if value == 0 {
				value = 0 // -0
			}
			_, err := strconv.ParseInt(repr, 10, 0)
			n := Numeric{pos: tokenPos, Representation: repr, Value: utils.Fl(value), IsInteger: err == nil}
			switch {
			case pos < length && isIdentStart(css, pos):
				var unit string
				unit, pos = consumeIdent(css, pos)
				*ts = append(*ts, Dimension{Numeric: n, Unit: unit})
			case pos < length && css[pos] == '%':
				pos++
				*ts = append(*ts, Percentage(n))
			default:
				*ts = append(*ts, Number(n))
			}
			continue
		}

		switch c {
		case '@':
			pos++
			if pos < length && isIdentStart(css, pos) {
				var ident string
				ident, pos = consumeIdent(css, pos)
				*ts = append(*ts, AtKeyword{pos: tokenPos, Value: ident})
			} else {
				*ts = append(*ts, Literal{pos: tokenPos, Value: "@"})
			}
		case '#':
			pos++
			if pos < length && isNameChar(css, pos) {
				isIdentifier := isIdentStart(css, pos)
				var ident string
				ident, pos = consumeIdent(css, pos)
				*ts = append(*ts, Hash{pos: tokenPos, Value: ident, IsIdentifier: isIdentifier})
			} else {
				*ts = append(*ts, Literal{pos: tokenPos, Value: "#"})
			}
		case '{':
			block := CurlyBracketsBlock{pos: tokenPos, Content: new([]Token)}
			*ts = append(*ts, block)
			push(block.Content, '}')
			pos++
		case '[':
			block := SquareBracketsBlock{pos: tokenPos, Content: new([]Token)}
			*ts = append(*ts, block)
			push(block.Content, ']')
			pos++
		case '(':
			block := ParenthesesBlock{pos: tokenPos, Content: new([]Token)}
			*ts = append(*ts, block)
			push(block.Content, ')')
			pos++
		case '}', ']', ')':
			if c == endChar { // the top level endChar is 0, so that the stack is not empty
				var block nestedBlock
				block, stack = stack[len(stack)-1], stack[:len(stack)-1]
				ts, endChar = block.tokens, block.endChar
			} else {
				*ts = append(*ts, ParseError{pos: tokenPos, Message: "unmatched " + string(rune(c))})
			}
			pos++
		case '\'', '"':
			var (
				value string
				ok    bool
			)
			value, pos, ok = consumeQuotedString(css, pos)
			if ok {
				*ts = append(*ts, String{pos: tokenPos, Value: value})
			} else {
				*ts = append(*ts, ParseError{pos: tokenPos, Message: "bad string"})
			}
		default:
			if bytes.HasPrefix(css[pos:], []byte("/*")) {
				index := bytes.Index(css[pos+2:], []byte("*/"))
				end := length
				if index != -1 {
					end = pos + 2 + index
				}
				if !skipComments {
					*ts = append(*ts, Comment{pos: tokenPos, Value: string(css[pos+2 : end])})
				}
				pos = end + 2
				continue
			}
			r, w := utf8.DecodeRune(css[pos:])
			pos += w
			*ts = append(*ts, Literal{pos: tokenPos, Value: string(r)})
		}
	}
	return out
}

// isNameStart returns true if the character at [pos] is a name-start code point.
func isNameStart(css []byte, pos int) bool {
	c, _ := utf8.DecodeRune(css[pos:])
	return c > 0x7F || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isValidEscape(css []byte, pos int) bool {
	return pos < len(css) && css[pos] == '\\' && !bytes.HasPrefix(css[pos:], []byte("\\\n"))
}

// isNameChar returns true if [pos] starts a name code point or a valid escape.
func isNameChar(css []byte, pos int) bool {
	c := css[pos]
	return isNameStart(css, pos) || '0' <= c && c <= '9' || c == '-' || isValidEscape(css, pos)
}

// isIdentStart returns true if the given position is the start of a CSS identifier.
func isIdentStart(css []byte, pos int) bool {
	switch {
	case isNameStart(css, pos):
		return true
	case css[pos] == '-':
		pos++
		return pos < len(css) && (isNameStart(css, pos) || css[pos] == '-' || isValidEscape(css, pos))
	default:
		return isValidEscape(css, pos)
	}
}

func consumeIdent(css []byte, pos int) (string, int) {
	var chunks strings.Builder
	startPos := pos
	for pos < len(css) {
		c, w := utf8.DecodeRune(css[pos:])
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_' || c > 0x7F {
			pos += w
		} else if isValidEscape(css, pos) {
			chunks.Write(css[startPos:pos])
			var s string
			s, pos = consumeEscape(css, pos+1)
			chunks.WriteString(s)
			startPos = pos
		} else {
			break
		}
	}
	chunks.Write(css[startPos:pos])
	return chunks.String(), pos
}

// consumeQuotedString returns the unescaped value of the string starting at [pos],
// which is assumed to be a quote. An unescaped newline makes a bad string.
func consumeQuotedString(css []byte, pos int) (string, int, bool) {
	quote := css[pos]
	pos++
	var chunks strings.Builder
	startPos := pos
	for pos < len(css) {
		c, w := utf8.DecodeRune(css[pos:])
		switch {
		case c == rune(quote):
			chunks.Write(css[startPos:pos])
			return chunks.String(), pos + w, true
		case c == '\\':
			chunks.Write(css[startPos:pos])
			pos += w
			if pos < len(css) {
				if css[pos] == '\n' { // escaped newlines are ignored
					pos++
				} else {
					var s string
					s, pos = consumeEscape(css, pos)
					chunks.WriteString(s)
				}
			}
			startPos = pos
		case c == '\n':
			return "", pos, false
		default:
			pos += w
		}
	}
	// EOF closes the string
	chunks.Write(css[startPos:pos])
	return chunks.String(), pos, true
}

// consumeEscape returns the unescaped character and the new position.
// [pos] is just after the '\'.
func consumeEscape(css []byte, pos int) (string, int) {
	if hexMatch := hexEscapeRe.FindSubmatch(css[pos:]); len(hexMatch) >= 2 {
		codepoint, _ := strconv.ParseInt(string(hexMatch[1]), 16, 0)
		char := "\uFFFD"
		if 0 < codepoint && codepoint <= unicode.MaxRune {
			char = string(rune(codepoint))
		}
		return char, pos + len(hexMatch[0])
	}
	if pos < len(css) {
		r, w := utf8.DecodeRune(css[pos:])
		return string(r), pos + w
	}
	return "\uFFFD", pos
}
