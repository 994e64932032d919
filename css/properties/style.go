package properties

import (
	"github.com/benoitkugler/textlayout/language"
)

// WhiteSpace is the 'white-space' shorthand, which is
// the combination of 'white-space-collapse' and 'text-wrap-mode'.
type WhiteSpace uint8

const (
	WNormal WhiteSpace = iota
	WNowrap
	WPre
	WPreWrap
	WPreLine
	WBreakSpaces
)

// WhiteSpaceCollapse is the 'white-space-collapse' longhand.
type WhiteSpaceCollapse uint8

const (
	Collapse WhiteSpaceCollapse = iota
	Preserve
	PreserveBreaks
	BreakSpaces
)

// TextWrapMode is the 'text-wrap-mode' longhand.
type TextWrapMode uint8

const (
	Wrap TextWrapMode = iota
	Nowrap
)

// Collapse returns the 'white-space-collapse' part of the shorthand.
func (ws WhiteSpace) Collapse() WhiteSpaceCollapse {
	switch ws {
	case WPre, WPreWrap:
		return Preserve
	case WPreLine:
		return PreserveBreaks
	case WBreakSpaces:
		return BreakSpaces
	default:
		return Collapse
	}
}

// WrapMode returns the 'text-wrap-mode' part of the shorthand.
func (ws WhiteSpace) WrapMode() TextWrapMode {
	switch ws {
	case WNowrap, WPre:
		return Nowrap
	default:
		return Wrap
	}
}

// PreserveSpaces returns true if spaces and tabs are not collapsed.
func (ws WhiteSpace) PreserveSpaces() bool {
	c := ws.Collapse()
	return c == Preserve || c == BreakSpaces
}

// PreserveNewlines returns true if segment breaks are kept as forced line breaks.
func (ws WhiteSpace) PreserveNewlines() bool {
	return ws.Collapse() != Collapse
}

func (ws WhiteSpace) String() string {
	switch ws {
	case WNormal:
		return "normal"
	case WNowrap:
		return "nowrap"
	case WPre:
		return "pre"
	case WPreWrap:
		return "pre-wrap"
	case WPreLine:
		return "pre-line"
	case WBreakSpaces:
		return "break-spaces"
	default:
		return "<invalid white-space>"
	}
}

// NewWhiteSpace returns false for invalid keywords.
func NewWhiteSpace(s string) (WhiteSpace, bool) {
	switch s {
	case "normal":
		return WNormal, true
	case "nowrap":
		return WNowrap, true
	case "pre":
		return WPre, true
	case "pre-wrap":
		return WPreWrap, true
	case "pre-line":
		return WPreLine, true
	case "break-spaces":
		return WBreakSpaces, true
	default:
		return 0, false
	}
}

// TextAlign is the 'text-align' property (also used for 'text-align-last').
type TextAlign uint8

const (
	TAStart TextAlign = iota
	TAEnd
	TALeft
	TARight
	TACenter
	TAJustify
	// TAAuto is only valid for 'text-align-last'
	TAAuto
)

func NewTextAlign(s string) (TextAlign, bool) {
	switch s {
	case "start":
		return TAStart, true
	case "end":
		return TAEnd, true
	case "left":
		return TALeft, true
	case "right":
		return TARight, true
	case "center":
		return TACenter, true
	case "justify":
		return TAJustify, true
	case "auto":
		return TAAuto, true
	default:
		return 0, false
	}
}

func (ta TextAlign) String() string {
	switch ta {
	case TAStart:
		return "start"
	case TAEnd:
		return "end"
	case TALeft:
		return "left"
	case TARight:
		return "right"
	case TACenter:
		return "center"
	case TAJustify:
		return "justify"
	case TAAuto:
		return "auto"
	default:
		return "<invalid text-align>"
	}
}

// TextJustify is the 'text-justify' property.
type TextJustify uint8

const (
	TJAuto TextJustify = iota
	TJNone
	TJInterWord
	TJInterCharacter
)

func NewTextJustify(s string) (TextJustify, bool) {
	switch s {
	case "auto":
		return TJAuto, true
	case "none":
		return TJNone, true
	case "inter-word":
		return TJInterWord, true
	case "inter-character", "distribute":
		return TJInterCharacter, true
	default:
		return 0, false
	}
}

// VerticalAlignKeyword are the keywords accepted by 'vertical-align'.
// [VALength] is used for lengths and percentages.
type VerticalAlignKeyword uint8

const (
	VABaseline VerticalAlignKeyword = iota
	VASub
	VASuper
	VATextTop
	VATextBottom
	VAMiddle
	VATop
	VABottom
	VALength
)

// VerticalAlign is the 'vertical-align' property.
type VerticalAlign struct {
	Keyword VerticalAlignKeyword
	// Length is only valid when Keyword is [VALength].
	// Percentages refer to the 'line-height' of the element.
	Length Dimension
}

// IsBaselineRelative returns false for 'top' and 'bottom', which
// align the box relatively to the line box instead of the parent baseline.
func (va VerticalAlign) IsBaselineRelative() bool {
	return va.Keyword != VATop && va.Keyword != VABottom
}

func NewVerticalAlign(s string) (VerticalAlign, bool) {
	switch s {
	case "baseline":
		return VerticalAlign{Keyword: VABaseline}, true
	case "sub":
		return VerticalAlign{Keyword: VASub}, true
	case "super":
		return VerticalAlign{Keyword: VASuper}, true
	case "text-top":
		return VerticalAlign{Keyword: VATextTop}, true
	case "text-bottom":
		return VerticalAlign{Keyword: VATextBottom}, true
	case "middle":
		return VerticalAlign{Keyword: VAMiddle}, true
	case "top":
		return VerticalAlign{Keyword: VATop}, true
	case "bottom":
		return VerticalAlign{Keyword: VABottom}, true
	}
	if d, ok := ParseLength(s, true); ok {
		return VerticalAlign{Keyword: VALength, Length: d}, true
	}
	return VerticalAlign{}, false
}

// LineHeight is the 'line-height' property : 'normal',
// a number (with [Scalar] unit) or a length.
type LineHeight struct {
	Normal bool
	Value  Dimension
}

// Direction is the 'direction' property.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// FloatSide is the 'float' property.
type FloatSide uint8

const (
	FloatNone FloatSide = iota
	FloatLeft
	FloatRight
)

// Clear is the 'clear' property.
type Clear uint8

const (
	ClearNone Clear = iota
	ClearLeft
	ClearRight
	ClearBoth
)

// Position is the 'position' property.
type Position uint8

const (
	Static Position = iota
	Relative
	Absolute
	Fixed
)

// IsOutOfFlow returns true for absolutely positioned boxes.
func (p Position) IsOutOfFlow() bool { return p == Absolute || p == Fixed }

// Style stores the computed values needed to lay out inline content.
// Lengths of the box model are in pixels.
type Style struct {
	Lang language.Language

	FontSize   Float
	LineHeight LineHeight

	VerticalAlign VerticalAlign

	WhiteSpace    WhiteSpace
	TextAlign     TextAlign
	TextAlignLast TextAlign
	TextJustify   TextJustify
	TextIndent    Dimension

	Direction Direction

	TextDecorationLine Decorations

	Float    FloatSide
	Clear    Clear
	Position Position
	// DisplayBlock is true when the outer display type
	// of the box is 'block' (before being blockified or hoisted)
	DisplayBlock bool

	Padding     Sides
	BorderWidth Sides
	Margin      Sides

	Width, Height Dimension
}

// InitialStyle returns the initial values of the properties,
// with a 16px font size.
func InitialStyle() *Style {
	return &Style{
		FontSize:      16,
		LineHeight:    LineHeight{Normal: true},
		TextAlignLast: TAAuto,
		TextIndent:    ZeroPixels,
	}
}

// Inherit returns a new style for a child element :
// inherited properties are copied, the others are set
// to their initial value.
func (s *Style) Inherit() *Style {
	out := InitialStyle()
	out.Lang = s.Lang
	out.FontSize = s.FontSize
	out.LineHeight = s.LineHeight
	out.WhiteSpace = s.WhiteSpace
	out.TextAlign = s.TextAlign
	out.TextAlignLast = s.TextAlignLast
	out.TextJustify = s.TextJustify
	out.TextIndent = s.TextIndent
	out.Direction = s.Direction
	return out
}

// Copy returns a shallow copy of the style.
func (s *Style) Copy() *Style {
	out := *s
	return &out
}

// PaddingBorderMargin returns the sum of padding, border and margin.
func (s *Style) PaddingBorderMargin() Sides {
	return s.Padding.Add(s.BorderWidth).Add(s.Margin)
}

// UsedLineHeight returns the used value of 'line-height',
// given the normal line height of the first available font.
func (s *Style) UsedLineHeight(normal Float) Float {
	if s.LineHeight.Normal {
		return normal
	}
	return s.LineHeight.Value.Resolve(s.FontSize, s.FontSize)
}
