package utils

import (
	"math"
	"strconv"
)

type Fl = float32

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Mins(values ...Fl) Fl {
	min := values[0]
	for _, w := range values {
		if w < min {
			min = w
		}
	}
	return min
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(float64(f)*n10) / n10)
}

// FormatFloat returns the shortest representation of [f],
// rounded to 2 digits, as used in debug outputs.
func FormatFloat(f Fl) string {
	if f >= math.MaxFloat32 {
		return "inf"
	}
	return strconv.FormatFloat(float64(RoundPrec(f, 2)), 'g', -1, 32)
}
