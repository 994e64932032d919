// Package parser implements the CSS Syntax Level 3 tokenizer,
// and the parsing of declaration lists, as found
// in HTML 'style' attributes.
package parser

import (
	"fmt"

	"github.com/benoitkugler/inlinelayout/utils"
)

// Pos is the position of a token in the input,
// starting at line 1, column 1.
type Pos struct {
	Line, Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Kind identifies the type of a [Token].
type Kind uint8

const (
	KWhitespace Kind = iota
	KComment
	KIdent
	KAtKeyword
	KHash
	KString
	KNumber
	KPercentage
	KDimension
	KFunction
	KParenthesesBlock
	KSquareBracketsBlock
	KCurlyBracketsBlock
	KLiteral
	KError
)

func (k Kind) String() string {
	switch k {
	case KWhitespace:
		return "whitespace"
	case KComment:
		return "comment"
	case KIdent:
		return "ident"
	case KAtKeyword:
		return "at-keyword"
	case KHash:
		return "hash"
	case KString:
		return "string"
	case KNumber:
		return "number"
	case KPercentage:
		return "percentage"
	case KDimension:
		return "dimension"
	case KFunction:
		return "function"
	case KParenthesesBlock:
		return "() block"
	case KSquareBracketsBlock:
		return "[] block"
	case KCurlyBracketsBlock:
		return "{} block"
	case KLiteral:
		return "literal"
	case KError:
		return "error"
	default:
		return "<invalid kind>"
	}
}

// Token is one component value : a preserved token,
// a function or a block.
type Token interface {
	Pos() Pos
	Kind() Kind
	serializeTo(w *serializer)
}

type Whitespace struct {
	pos   Pos
	Value string
}

type Comment struct {
	pos   Pos
	Value string
}

type Ident struct {
	pos   Pos
	Value string
}

type AtKeyword struct {
	pos   Pos
	Value string
}

type Hash struct {
	pos          Pos
	Value        string
	IsIdentifier bool
}

type String struct {
	pos   Pos
	Value string
}

// Numeric is the common content of numbers, percentages and dimensions.
type Numeric struct {
	pos            Pos
	Representation string
	Value          utils.Fl
	IsInteger      bool
}

type Number Numeric

// Percentage stores its value as written : 50% has a value of 50.
type Percentage Numeric

type Dimension struct {
	Numeric
	Unit string
}

type Function struct {
	pos       Pos
	Name      string
	Arguments *[]Token
}

type ParenthesesBlock struct {
	pos     Pos
	Content *[]Token
}

type SquareBracketsBlock struct {
	pos     Pos
	Content *[]Token
}

type CurlyBracketsBlock struct {
	pos     Pos
	Content *[]Token
}

// Literal is a delimiter, like ':' or ';'.
type Literal struct {
	pos   Pos
	Value string
}

// ParseError is returned for invalid input,
// either as a token or as a declaration list item.
type ParseError struct {
	pos     Pos
	Message string
}

func (t ParseError) Error() string { return fmt.Sprintf("%s: %s", t.pos, t.Message) }

func (t Whitespace) Pos() Pos          { return t.pos }
func (t Comment) Pos() Pos             { return t.pos }
func (t Ident) Pos() Pos               { return t.pos }
func (t AtKeyword) Pos() Pos           { return t.pos }
func (t Hash) Pos() Pos                { return t.pos }
func (t String) Pos() Pos              { return t.pos }
func (t Number) Pos() Pos              { return t.pos }
func (t Percentage) Pos() Pos          { return t.pos }
func (t Dimension) Pos() Pos           { return t.pos }
func (t Function) Pos() Pos            { return t.pos }
func (t ParenthesesBlock) Pos() Pos    { return t.pos }
func (t SquareBracketsBlock) Pos() Pos { return t.pos }
func (t CurlyBracketsBlock) Pos() Pos  { return t.pos }
func (t Literal) Pos() Pos             { return t.pos }
func (t ParseError) Pos() Pos          { return t.pos }

func (Whitespace) Kind() Kind          { return KWhitespace }
func (Comment) Kind() Kind             { return KComment }
func (Ident) Kind() Kind               { return KIdent }
func (AtKeyword) Kind() Kind           { return KAtKeyword }
func (Hash) Kind() Kind                { return KHash }
func (String) Kind() Kind              { return KString }
func (Number) Kind() Kind              { return KNumber }
func (Percentage) Kind() Kind          { return KPercentage }
func (Dimension) Kind() Kind           { return KDimension }
func (Function) Kind() Kind            { return KFunction }
func (ParenthesesBlock) Kind() Kind    { return KParenthesesBlock }
func (SquareBracketsBlock) Kind() Kind { return KSquareBracketsBlock }
func (CurlyBracketsBlock) Kind() Kind  { return KCurlyBracketsBlock }
func (Literal) Kind() Kind             { return KLiteral }
func (ParseError) Kind() Kind          { return KError }

// TokensIter walks through a list of tokens.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter { return &TokensIter{tokens: tokens} }

func (it TokensIter) HasNext() bool { return it.index < len(it.tokens) }

// Next returns the next token, or nil at the end of the input.
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return nil
	}
	t := it.tokens[it.index]
	it.index++
	return t
}

// NextSignificant returns the next token which is neither
// a whitespace nor a comment, or nil at the end of the input.
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		t := it.Next()
		if k := t.Kind(); k != KWhitespace && k != KComment {
			return t
		}
	}
	return nil
}
