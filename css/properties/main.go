// This package defines the computed values of the CSS properties
// used when laying out the content of an inline formatting context.
//
// Lengths are expressed in CSS pixels, as [Float] values. Percentages
// and font relative units are kept as [Dimension] and resolved at layout
// time, against the containing block or the font size.
package properties

import (
	"math"

	"github.com/benoitkugler/inlinelayout/utils"
)

type Fl = utils.Fl

type Float Fl

// Inf is used for unbounded sizes, like the block size
// of a line not constrained by floats.
const Inf Float = math.MaxFloat32

// MaybeFloat is either nil or a [Float].
type MaybeFloat interface {
	V() Float
}

func (f Float) V() Float { return f }

func (f Float) String() string { return utils.FormatFloat(Fl(f)) }

// Max returns the maximum of [f] and [other]
func (f Float) Max(other Float) Float { return Float(utils.MaxF(Fl(f), Fl(other))) }

// Min returns the minimum of [f] and [other]
func (f Float) Min(other Float) Float { return Float(utils.MinF(Fl(f), Fl(other))) }

func toFls(values []Float) []Fl {
	out := make([]Fl, len(values))
	for i, v := range values {
		out[i] = Fl(v)
	}
	return out
}

// Maxs returns the maximum of [values], which must not be empty.
func Maxs(values ...Float) Float { return Float(utils.Maxs(toFls(values)...)) }

// Mins returns the minimum of [values], which must not be empty.
func Mins(values ...Float) Float { return Float(utils.Mins(toFls(values)...)) }

// Abs returns the absolute value of [f].
func (f Float) Abs() Float {
	if f < 0 {
		return -f
	}
	return f
}
