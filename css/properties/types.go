package properties

import "fmt"

type Unit uint8

const ( // zero field corresponds to 'auto'
	Scalar Unit = iota + 1 // means no unit, but a valid value
	Perc                   // percentage (%)
	Ex
	Em
	Rem
	Px
	Pt
	Pc
	In
	Cm
	Mm
	Q
)

func (u Unit) String() string {
	switch u {
	case 0:
		return "auto"
	case Scalar:
		return ""
	case Perc:
		return "%"
	case Ex:
		return "ex"
	case Em:
		return "em"
	case Rem:
		return "rem"
	case Px:
		return "px"
	case Pt:
		return "pt"
	case Pc:
		return "pc"
	case In:
		return "in"
	case Cm:
		return "cm"
	case Mm:
		return "mm"
	case Q:
		return "q"
	default:
		return "<invalid unit>"
	}
}

// How many CSS pixels is one <unit>?
// http://www.w3.org/TR/CSS21/syndata.html#length-units
var LengthsToPixels = map[Unit]Float{
	Px: 1,
	Pt: 1. / 0.75,
	Pc: 16.,             // LengthsToPixels["pt"] * 12
	In: 96.,             // LengthsToPixels["pt"] * 72
	Cm: 96. / 2.54,      // LengthsToPixels["in"] / 2.54
	Mm: 96. / 25.4,      // LengthsToPixels["in"] / 25.4
	Q:  96. / 25.4 / 4., // LengthsToPixels["mm"] / 4
}

// Dimension without unit is interpreted as float.
// The zero value means 'auto'.
type Dimension struct {
	Value Float
	Unit  Unit
}

func NewDim(v Float, u Unit) Dimension { return Dimension{v, u} }

// Pixels returns a dimension in pixels.
func Pixels(v Float) Dimension { return Dimension{v, Px} }

var (
	ZeroPixels = Dimension{Unit: Px}
	Auto       = Dimension{}
)

func (d Dimension) String() string {
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

func (d Dimension) IsAuto() bool { return d.Unit == 0 }

// IsPercentage returns true for percentages, whose value depends
// on a reference length.
func (d Dimension) IsPercentage() bool { return d.Unit == Perc }

// Resolve returns the used value, in pixels, of the dimension.
// Percentages refer to [reference], font relative units to
// [fontSize]. Scalar values are multiplied by [fontSize], which
// is what 'line-height' expects.
// 'auto' resolves to 0.
func (d Dimension) Resolve(reference, fontSize Float) Float {
	switch d.Unit {
	case 0:
		return 0
	case Perc:
		return d.Value * reference / 100
	case Scalar, Em, Rem:
		return d.Value * fontSize
	case Ex:
		// approximation used when the x-height is not known
		return d.Value * fontSize / 2
	default:
		return d.Value * LengthsToPixels[d.Unit]
	}
}

// Sides stores a value for each physical side of a box.
type Sides struct {
	Top, Right, Bottom, Left Float
}

// InlineStart returns the value of the side at the start
// of a line with the given [direction] (only horizontal writing modes are supported).
func (s Sides) InlineStart(dir Direction) Float {
	if dir == RTL {
		return s.Right
	}
	return s.Left
}

// InlineEnd returns the value of the side at the end
// of a line with the given [direction].
func (s Sides) InlineEnd(dir Direction) Float {
	if dir == RTL {
		return s.Left
	}
	return s.Right
}

// InlineSum returns Left + Right
func (s Sides) InlineSum() Float { return s.Left + s.Right }

// BlockSum returns Top + Bottom
func (s Sides) BlockSum() Float { return s.Top + s.Bottom }

// Add returns the side by side sum.
func (s Sides) Add(other Sides) Sides {
	return Sides{
		Top:    s.Top + other.Top,
		Right:  s.Right + other.Right,
		Bottom: s.Bottom + other.Bottom,
		Left:   s.Left + other.Left,
	}
}

// IsZero returns true if all the sides are 0.
func (s Sides) IsZero() bool { return s == Sides{} }

// Decorations is a bit mask of 'text-decoration-line' values.
type Decorations uint8

const (
	Underline Decorations = 1 << iota
	Overline
	LineThrough
)

func (d Decorations) String() string {
	var out string
	if d&Underline != 0 {
		out += "underline "
	}
	if d&Overline != 0 {
		out += "overline "
	}
	if d&LineThrough != 0 {
		out += "line-through "
	}
	if out == "" {
		return "none"
	}
	return out[:len(out)-1]
}
