package parser

import (
	"fmt"
	"strings"
)

// Compound is an item of a declaration list :
// a [Declaration], an [AtRule] or a [ParseError].
type Compound interface {
	Pos() Pos
	isCompound()
}

type Declaration struct {
	Name      string
	Value     []Token
	pos       Pos
	Important bool
}

// AtRule is only returned so that callers may report it :
// at-rules are not valid in style attributes.
type AtRule struct {
	AtKeyword string
	Prelude   []Token
	Content   []Token
	pos       Pos
}

func (Declaration) isCompound() {}
func (AtRule) isCompound()      {}
func (ParseError) isCompound()  {}

func (t Declaration) Pos() Pos { return t.pos }
func (t AtRule) Pos() Pos      { return t.pos }

// parseDeclaration parses a declaration, by consuming [tokens]
// until the end of the declaration or the first error.
func parseDeclaration(firstToken Token, tokens *TokensIter) Compound {
	name, ok := firstToken.(Ident)
	if !ok {
		return ParseError{
			pos:     firstToken.Pos(),
			Message: fmt.Sprintf("expected <ident> for declaration name, got %s", firstToken.Kind()),
		}
	}
	colon := tokens.NextSignificant()
	if colon == nil {
		return ParseError{pos: name.pos, Message: "expected ':' after declaration name, got EOF"}
	}
	if lit, ok := colon.(Literal); !ok || lit.Value != ":" {
		return ParseError{
			pos:     colon.Pos(),
			Message: fmt.Sprintf("expected ':' after declaration name, got %s", colon.Kind()),
		}
	}

	const (
		sValue = iota
		sBang
		sImportant
	)
	var (
		value        []Token
		state        = sValue
		bangPosition int
	)
	for tokens.HasNext() {
		token := tokens.Next()
		switch token := token.(type) {
		case Literal:
			if state == sValue && token.Value == "!" {
				state = sBang
				bangPosition = len(value)
			} else {
				state = sValue
			}
		case Ident:
			if state == sBang && strings.EqualFold(token.Value, "important") {
				state = sImportant
			} else {
				state = sValue
			}
		default:
			if k := token.Kind(); k != KWhitespace && k != KComment {
				state = sValue
			}
		}
		value = append(value, token)
	}

	if state == sImportant {
		value = value[:bangPosition]
	}

	return Declaration{pos: name.pos, Name: name.Value, Value: value, Important: state == sImportant}
}

// consumeDeclarationInList is like [parseDeclaration], but stops at the first ';'.
func consumeDeclarationInList(firstToken Token, tokens *TokensIter) Compound {
	var declarationTokens []Token
	for tokens.HasNext() {
		token := tokens.Next()
		if lit, ok := token.(Literal); ok && lit.Value == ";" {
			break
		}
		declarationTokens = append(declarationTokens, token)
	}
	return parseDeclaration(firstToken, NewIter(declarationTokens))
}

// consumeAtRule consumes just enough of [tokens] for an at-rule.
func consumeAtRule(atKeyword AtKeyword, tokens *TokensIter) AtRule {
	out := AtRule{pos: atKeyword.pos, AtKeyword: atKeyword.Value}
	for tokens.HasNext() {
		token := tokens.Next()
		if curly, ok := token.(CurlyBracketsBlock); ok {
			out.Content = *curly.Content
			break
		}
		if lit, ok := token.(Literal); ok && lit.Value == ";" {
			break
		}
		out.Prelude = append(out.Prelude, token)
	}
	return out
}

// ParseDeclarationListString tokenizes [css] and calls [ParseDeclarationList].
func ParseDeclarationListString(css string, skipComments bool) []Compound {
	return ParseDeclarationList(TokenizeString(css, skipComments))
}

// ParseDeclarationList parses a declaration list, as found in
// the 'style' attribute of an HTML element.
// Whitespace and comments at the top level of the list are ignored, but are
// preserved in the values of the declarations.
func ParseDeclarationList(input []Token) []Compound {
	tokens := NewIter(input)
	var result []Compound
	for tokens.HasNext() {
		switch token := tokens.Next().(type) {
		case Whitespace, Comment:
		case AtKeyword:
			result = append(result, consumeAtRule(token, tokens))
		case Literal:
			if token.Value != ";" {
				result = append(result, consumeDeclarationInList(token, tokens))
			}
		default:
			result = append(result, consumeDeclarationInList(token, tokens))
		}
	}
	return result
}
