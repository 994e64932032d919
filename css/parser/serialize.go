package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type serializer struct {
	strings.Builder
	// commentsAsWhitespace replaces comments by a single space
	commentsAsWhitespace bool
}

// Serialize returns the CSS text of [tokens].
func Serialize(tokens []Token) string {
	var w serializer
	w.serializeList(tokens)
	return w.String()
}

// SerializeValue returns the CSS text of [tokens], with comments replaced
// by a space and leading and trailing whitespace removed, as expected
// by property values.
func SerializeValue(tokens []Token) string {
	w := serializer{commentsAsWhitespace: true}
	w.serializeList(tokens)
	return strings.TrimSpace(w.String())
}

func (w *serializer) serializeList(tokens []Token) {
	for _, token := range tokens {
		token.serializeTo(w)
	}
}

// serializeIdentifier returns a string which
// would parse as an [Ident] with the given value.
func serializeIdentifier(value string) string {
	if value == "-" {
		return `\-`
	}
	if strings.HasPrefix(value, "--") {
		return "--" + serializeName(value[2:])
	}
	var result string
	if value != "" && value[0] == '-' {
		result = "-"
		value = value[1:]
	}
	c, w := utf8.DecodeRuneInString(value)
	switch {
	case c == utf8.RuneError && w == 0:
		return result
	case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c > 0x7F:
		result += string(c)
	case '0' <= c && c <= '9':
		result += fmt.Sprintf("\\%X ", c)
	default:
		result += escapeRune(c)
	}
	return result + serializeName(value[w:])
}

func serializeName(value string) string {
	var chunks strings.Builder
	for _, c := range value {
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_' || c > 0x7F {
			chunks.WriteRune(c)
		} else {
			chunks.WriteString(escapeRune(c))
		}
	}
	return chunks.String()
}

func escapeRune(c rune) string {
	switch c {
	case '\n':
		return `\A `
	case '\r':
		return `\D `
	case '\f':
		return `\C `
	default:
		return "\\" + string(c)
	}
}

func serializeStringValue(value string) string {
	var chunks strings.Builder
	for _, c := range value {
		switch c {
		case '"', '\\', '\n', '\r', '\f':
			chunks.WriteString(escapeRune(c))
		default:
			chunks.WriteRune(c)
		}
	}
	return chunks.String()
}

func (t Whitespace) serializeTo(w *serializer) { w.WriteString(t.Value) }

func (t Comment) serializeTo(w *serializer) {
	if w.commentsAsWhitespace {
		w.WriteByte(' ')
		return
	}
	w.WriteString("/*")
	w.WriteString(t.Value)
	w.WriteString("*/")
}

func (t Ident) serializeTo(w *serializer) { w.WriteString(serializeIdentifier(t.Value)) }

func (t AtKeyword) serializeTo(w *serializer) {
	w.WriteByte('@')
	w.WriteString(serializeIdentifier(t.Value))
}

func (t Hash) serializeTo(w *serializer) {
	w.WriteByte('#')
	if t.IsIdentifier {
		w.WriteString(serializeIdentifier(t.Value))
	} else {
		w.WriteString(serializeName(t.Value))
	}
}

func (t String) serializeTo(w *serializer) {
	w.WriteByte('"')
	w.WriteString(serializeStringValue(t.Value))
	w.WriteByte('"')
}

func (t Number) serializeTo(w *serializer) { w.WriteString(t.Representation) }

func (t Percentage) serializeTo(w *serializer) {
	w.WriteString(t.Representation)
	w.WriteByte('%')
}

func (t Dimension) serializeTo(w *serializer) {
	w.WriteString(t.Representation)
	// disambiguate with scientific notation
	if t.Unit == "e" || t.Unit == "E" || strings.HasPrefix(t.Unit, "e-") || strings.HasPrefix(t.Unit, "E-") {
		w.WriteString(`\`)
		w.WriteString(t.Unit[:1])
		w.WriteString(serializeName(t.Unit[1:]))
	} else {
		w.WriteString(serializeIdentifier(t.Unit))
	}
}

func (t Function) serializeTo(w *serializer) {
	w.WriteString(serializeIdentifier(t.Name))
	w.WriteByte('(')
	w.serializeList(*t.Arguments)
	w.WriteByte(')')
}

func (t ParenthesesBlock) serializeTo(w *serializer) {
	w.WriteByte('(')
	w.serializeList(*t.Content)
	w.WriteByte(')')
}

func (t SquareBracketsBlock) serializeTo(w *serializer) {
	w.WriteByte('[')
	w.serializeList(*t.Content)
	w.WriteByte(']')
}

func (t CurlyBracketsBlock) serializeTo(w *serializer) {
	w.WriteByte('{')
	w.serializeList(*t.Content)
	w.WriteByte('}')
}

func (t Literal) serializeTo(w *serializer) { w.WriteString(t.Value) }

// ParseError tokens are dropped.
func (t ParseError) serializeTo(w *serializer) {}
