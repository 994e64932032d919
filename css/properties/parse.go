package properties

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/inlinelayout/css/parser"
	"github.com/benoitkugler/textlayout/language"
)

// Declaration is one 'name: value' pair of a style attribute.
type Declaration struct {
	Name, Value string
}

// ParseDeclarations parses a style attribute into its declarations,
// lower-casing the property names. Comments act as whitespace in values,
// and '!important' is ignored.
// Invalid declarations are skipped and reported as errors.
func ParseDeclarations(css string) ([]Declaration, []error) {
	var (
		out  []Declaration
		errs []error
	)
	for _, item := range parser.ParseDeclarationListString(css, false) {
		switch item := item.(type) {
		case parser.Declaration:
			value := parser.SerializeValue(item.Value)
			if value == "" {
				errs = append(errs, fmt.Errorf("%s: empty value for %s", item.Pos(), item.Name))
				continue
			}
			out = append(out, Declaration{Name: strings.ToLower(item.Name), Value: value})
		case parser.AtRule:
			errs = append(errs, fmt.Errorf("%s: unexpected @%s rule", item.Pos(), item.AtKeyword))
		case parser.ParseError:
			errs = append(errs, item)
		}
	}
	return out, errs
}

var units = map[string]Unit{
	"%":   Perc,
	"ex":  Ex,
	"em":  Em,
	"rem": Rem,
	"px":  Px,
	"pt":  Pt,
	"pc":  Pc,
	"in":  In,
	"cm":  Cm,
	"mm":  Mm,
	"q":   Q,
}

// ParseLength parses a CSS length, like "12px" or "1.5em".
// If [allowPercentage] is true, percentages are also accepted.
// A unitless 0 is accepted as 0px.
func ParseLength(s string, allowPercentage bool) (Dimension, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := len(s)
	for i > 0 && (s[i-1] == '%' || ('a' <= s[i-1] && s[i-1] <= 'z')) {
		i--
	}
	number, unit := s[:i], s[i:]
	v, err := strconv.ParseFloat(number, 32)
	if err != nil {
		return Dimension{}, false
	}
	if unit == "" {
		if v == 0 {
			return ZeroPixels, true
		}
		return Dimension{}, false
	}
	u, ok := units[unit]
	if !ok || (u == Perc && !allowPercentage) {
		return Dimension{}, false
	}
	return Dimension{Value: Float(v), Unit: u}, true
}

// parse a list of 1 to 4 lengths, following the usual CSS shorthand rules.
// font relative units are resolved against [fontSize]
func parseSides(value string, fontSize Float) (Sides, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 4 {
		return Sides{}, fmt.Errorf("invalid number of values in %q", value)
	}
	var vs [4]Float
	for i, f := range fields {
		d, ok := ParseLength(f, false)
		if !ok {
			return Sides{}, fmt.Errorf("invalid length %q", f)
		}
		vs[i] = d.Resolve(0, fontSize)
	}
	switch len(fields) {
	case 1:
		return Sides{vs[0], vs[0], vs[0], vs[0]}, nil
	case 2:
		return Sides{vs[0], vs[1], vs[0], vs[1]}, nil
	case 3:
		return Sides{vs[0], vs[1], vs[2], vs[1]}, nil
	default:
		return Sides{vs[0], vs[1], vs[2], vs[3]}, nil
	}
}

func setSide(sides *Sides, side string, value Float) bool {
	switch side {
	case "top":
		sides.Top = value
	case "right":
		sides.Right = value
	case "bottom":
		sides.Bottom = value
	case "left":
		sides.Left = value
	default:
		return false
	}
	return true
}

// parse the width of a border shorthand like "2px solid red",
// ignoring the style and color parts
func parseBorderWidth(value string, fontSize Float) (Float, error) {
	for _, f := range strings.Fields(value) {
		switch f {
		case "thin":
			return 1, nil
		case "medium":
			return 3, nil
		case "thick":
			return 5, nil
		case "none", "hidden":
			return 0, nil
		}
		if d, ok := ParseLength(f, false); ok {
			return d.Resolve(0, fontSize), nil
		}
	}
	return 0, fmt.Errorf("missing border width in %q", value)
}

func errInvalid(name, value string) error {
	return fmt.Errorf("invalid value %q for property %s", value, name)
}

// Apply updates [s] with the given declaration.
// It returns an error for unsupported properties or invalid values, leaving
// [s] unchanged.
func (s *Style) Apply(decl Declaration) error {
	name, value := decl.Name, strings.ToLower(decl.Value)
	switch name {
	case "font-size":
		d, ok := ParseLength(value, true)
		if !ok {
			return errInvalid(name, value)
		}
		// relative units refer to the parent font size, which is the current one
		s.FontSize = d.Resolve(s.FontSize, s.FontSize)
	case "line-height":
		if value == "normal" {
			s.LineHeight = LineHeight{Normal: true}
			return nil
		}
		if v, err := strconv.ParseFloat(value, 32); err == nil {
			s.LineHeight = LineHeight{Value: Dimension{Value: Float(v), Unit: Scalar}}
			return nil
		}
		d, ok := ParseLength(value, true)
		if !ok {
			return errInvalid(name, value)
		}
		if d.Unit != Perc {
			d = Pixels(d.Resolve(0, s.FontSize))
		}
		s.LineHeight = LineHeight{Value: d}
	case "vertical-align":
		va, ok := NewVerticalAlign(value)
		if !ok {
			return errInvalid(name, value)
		}
		if va.Keyword == VALength && va.Length.Unit != Perc {
			va.Length = Pixels(va.Length.Resolve(0, s.FontSize))
		}
		s.VerticalAlign = va
	case "white-space":
		ws, ok := NewWhiteSpace(value)
		if !ok {
			return errInvalid(name, value)
		}
		s.WhiteSpace = ws
	case "text-align":
		ta, ok := NewTextAlign(value)
		if !ok || ta == TAAuto {
			return errInvalid(name, value)
		}
		s.TextAlign = ta
	case "text-align-last":
		ta, ok := NewTextAlign(value)
		if !ok {
			return errInvalid(name, value)
		}
		s.TextAlignLast = ta
	case "text-justify":
		tj, ok := NewTextJustify(value)
		if !ok {
			return errInvalid(name, value)
		}
		s.TextJustify = tj
	case "text-indent":
		d, ok := ParseLength(value, true)
		if !ok {
			return errInvalid(name, value)
		}
		if d.Unit != Perc {
			d = Pixels(d.Resolve(0, s.FontSize))
		}
		s.TextIndent = d
	case "direction":
		switch value {
		case "ltr":
			s.Direction = LTR
		case "rtl":
			s.Direction = RTL
		default:
			return errInvalid(name, value)
		}
	case "text-decoration", "text-decoration-line":
		var dec Decorations
		for _, f := range strings.Fields(value) {
			switch f {
			case "none":
			case "underline":
				dec |= Underline
			case "overline":
				dec |= Overline
			case "line-through":
				dec |= LineThrough
			default:
				if name == "text-decoration-line" {
					return errInvalid(name, value)
				}
			}
		}
		s.TextDecorationLine = dec
	case "float":
		switch value {
		case "none":
			s.Float = FloatNone
		case "left", "inline-start":
			s.Float = FloatLeft
		case "right", "inline-end":
			s.Float = FloatRight
		default:
			return errInvalid(name, value)
		}
	case "clear":
		switch value {
		case "none":
			s.Clear = ClearNone
		case "left", "inline-start":
			s.Clear = ClearLeft
		case "right", "inline-end":
			s.Clear = ClearRight
		case "both":
			s.Clear = ClearBoth
		default:
			return errInvalid(name, value)
		}
	case "position":
		switch value {
		case "static":
			s.Position = Static
		case "relative":
			s.Position = Relative
		case "absolute":
			s.Position = Absolute
		case "fixed":
			s.Position = Fixed
		default:
			return errInvalid(name, value)
		}
	case "display":
		switch value {
		case "inline", "inline-block":
			s.DisplayBlock = false
		case "block":
			s.DisplayBlock = true
		default:
			return errInvalid(name, value)
		}
	case "width", "height":
		var d Dimension
		if value != "auto" {
			var ok bool
			d, ok = ParseLength(value, true)
			if !ok {
				return errInvalid(name, value)
			}
			if d.Unit != Perc {
				d = Pixels(d.Resolve(0, s.FontSize))
			}
		}
		if name == "width" {
			s.Width = d
		} else {
			s.Height = d
		}
	case "padding", "margin", "border-width":
		sides, err := parseSides(value, s.FontSize)
		if err != nil {
			return fmt.Errorf("property %s: %s", name, err)
		}
		switch name {
		case "padding":
			s.Padding = sides
		case "margin":
			s.Margin = sides
		default:
			s.BorderWidth = sides
		}
	case "border":
		w, err := parseBorderWidth(value, s.FontSize)
		if err != nil {
			return fmt.Errorf("property %s: %s", name, err)
		}
		s.BorderWidth = Sides{w, w, w, w}
	case "lang":
		s.Lang = language.NewLanguage(value)
	default:
		prefix, side, ok := strings.Cut(name, "-")
		if !ok {
			return fmt.Errorf("unsupported property %s", name)
		}
		var (
			target *Sides
			v      Float
		)
		switch prefix {
		case "padding", "margin":
			d, ok := ParseLength(value, false)
			if !ok {
				return errInvalid(name, value)
			}
			v = d.Resolve(0, s.FontSize)
			target = &s.Padding
			if prefix == "margin" {
				target = &s.Margin
			}
		case "border":
			side = strings.TrimSuffix(side, "-width")
			w, err := parseBorderWidth(value, s.FontSize)
			if err != nil {
				return fmt.Errorf("property %s: %s", name, err)
			}
			v, target = w, &s.BorderWidth
		default:
			return fmt.Errorf("unsupported property %s", name)
		}
		if !setSide(target, side, v) {
			return fmt.Errorf("unsupported property %s", name)
		}
	}
	return nil
}
