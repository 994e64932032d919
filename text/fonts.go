// Package text implements the text services needed by the inline
// layout : font metrics, shaping into glyph runs, line break opportunities,
// white space collapsing and bidi levels.
package text

import (
	"bytes"
	"fmt"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontMetrics are the metrics of a font at a given size,
// in CSS pixels.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the em box.
	Ascent pr.Float
	// Descent is the distance from the baseline to the bottom of the em box,
	// positive for usual fonts.
	Descent pr.Float
	XHeight pr.Float
	// NormalLineHeight is the used value of 'line-height: normal',
	// that is Ascent + Descent + the line gap of the font.
	NormalLineHeight pr.Float
}

// Font is a font face used at a given size.
type Font struct {
	// Key identifies the face and its size. Two text
	// runs using fonts with the same key may be merged.
	Key     string
	Size    pr.Float
	Metrics FontMetrics

	face *font.Face // nil for synthetic fonts
}

// NewSyntheticFont returns a font without glyph data, which
// is only usable with a [FixedShaper].
func NewSyntheticFont(key string, size pr.Float, metrics FontMetrics) *Font {
	return &Font{Key: key, Size: size, Metrics: metrics}
}

// LoadFont parses a TrueType or OpenType font file, and returns
// a font ready to be shaped at [size].
func LoadFont(name string, data []byte, size pr.Float) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %s", name, err)
	}
	return newFont(name, face, size), nil
}

// GoRegular returns the Go Regular font, embedded in the binary.
func GoRegular(size pr.Float) *Font {
	f, err := LoadFont("Go Regular", goregular.TTF, size)
	if err != nil { // the embedded font is valid
		panic(err)
	}
	return f
}

func newFont(name string, face *font.Face, size pr.Float) *Font {
	scale := size / pr.Float(face.Upem())
	var metrics FontMetrics
	if extents, ok := face.FontHExtents(); ok {
		metrics.Ascent = pr.Float(extents.Ascender) * scale
		metrics.Descent = -pr.Float(extents.Descender) * scale
		metrics.NormalLineHeight = metrics.Ascent + metrics.Descent + pr.Float(extents.LineGap)*scale
	} else { // use 'reasonnable' values
		metrics.Ascent, metrics.Descent = 0.8*size, 0.2*size
		metrics.NormalLineHeight = size
	}
	metrics.XHeight = pr.Float(face.LineMetric(font.XHeight)) * scale
	if metrics.XHeight <= 0 {
		metrics.XHeight = size / 2
	}
	return &Font{
		Key:     fmt.Sprintf("%s@%g", name, size),
		Size:    size,
		Metrics: metrics,
		face:    face,
	}
}
