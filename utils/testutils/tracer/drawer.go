package tracer

import (
	"fmt"
	"io"
	"os"
	"strings"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/utils"
	"github.com/fogleman/gg"
)

type fl = utils.Fl

// Canvas is the minimal drawing surface needed to
// render the outlines of fragments.
type Canvas interface {
	// OnNewStack saves the current graphic state,
	// executes the given closure and restores the state.
	OnNewStack(func())
	Translate(x, y fl)
	SetColorRgba(r, g, b, a fl)
	// StrokeRectangle draws the outline of the rectangle.
	StrokeRectangle(x, y, width, height fl)
}

var (
	_ Canvas = (*Drawer)(nil)
	_ Canvas = PNGCanvas{}
)

// Drawer implements a logging canvas, used for debugging.
type Drawer struct {
	out    io.Writer
	indent int
}

func NewDrawerNoOp() *Drawer { return &Drawer{out: io.Discard} }

// NewDrawer writes to [out].
func NewDrawer(out io.Writer) *Drawer { return &Drawer{out: out} }

// NewDrawerFile panics if an error occurs.
func NewDrawerFile(outFile string) *Drawer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return &Drawer{out: f}
}

func (dr Drawer) printf(f string, args ...interface{}) {
	fmt.Fprintf(dr.out, strings.Repeat("  ", dr.indent)+f+"\n", args...)
}

func (dr *Drawer) OnNewStack(f func()) {
	dr.printf("OnNewStack :")
	dr.indent++
	f()
	dr.indent--
}

func (dr Drawer) Translate(x, y fl) {
	dr.printf("Translate : %.2f %.2f", x, y)
}

func (dr Drawer) SetColorRgba(r, g, b, a fl) {
	dr.printf("SetColorRgba : %.2f %.2f %.2f %.2f", r, g, b, a)
}

func (dr Drawer) StrokeRectangle(x, y, width, height fl) {
	dr.printf("StrokeRectangle : %.2f %.2f %.2f %.2f", x, y, width, height)
}

// PNGCanvas draws into an image.
type PNGCanvas struct {
	dc *gg.Context
}

// NewPNGCanvas returns a white canvas of the given size, in pixels.
func NewPNGCanvas(width, height int) PNGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetLineWidth(1)
	return PNGCanvas{dc: dc}
}

func (c PNGCanvas) OnNewStack(f func()) {
	c.dc.Push()
	defer c.dc.Pop()
	f()
}

func (c PNGCanvas) Translate(x, y fl) { c.dc.Translate(float64(x), float64(y)) }

func (c PNGCanvas) SetColorRgba(r, g, b, a fl) {
	c.dc.SetRGBA(float64(r), float64(g), float64(b), float64(a))
}

func (c PNGCanvas) StrokeRectangle(x, y, width, height fl) {
	c.dc.DrawRectangle(float64(x), float64(y), float64(width), float64(height))
	c.dc.Stroke()
}

// EncodePNG writes the image to [w].
func (c PNGCanvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

type rgba struct{ r, g, b, a fl }

var kindColors = map[string]rgba{
	"line":     {0.6, 0.6, 0.6, 1},
	"text":     {0, 0, 0.8, 1},
	"inline":   {0, 0.6, 0, 1},
	"atomic":   {0.8, 0, 0, 1},
	"float":    {0.8, 0.5, 0, 1},
	"absolute": {0.6, 0, 0.6, 1},
}

func colorFor(fragment bo.Fragment) rgba {
	switch fragment := fragment.(type) {
	case *bo.LineFragment:
		return kindColors["line"]
	case *bo.TextFragment:
		return kindColors["text"]
	case *bo.HoistedFragment:
		return kindColors["absolute"]
	case *bo.BoxFragment:
		switch fragment.Kind {
		case bo.AtomicKind:
			return kindColors["atomic"]
		case bo.FloatKind:
			return kindColors["float"]
		}
	}
	return kindColors["inline"]
}

// DrawFragments draws the outlines of the fragments, laid out
// in a containing block of [inlineSize] and direction [dir].
// Logical coordinates are mapped to the horizontal-tb writing mode.
func DrawFragments(c Canvas, fragments []bo.Fragment, inlineSize pr.Float, dir pr.Direction) {
	for _, fragment := range fragments {
		drawFragment(c, fragment, inlineSize, dir)
	}
}

func drawFragment(c Canvas, fragment bo.Fragment, parentInlineSize pr.Float, dir pr.Direction) {
	rect := fragment.ContentRect()
	x := rect.Start.Inline
	if dir == pr.RTL {
		x = parentInlineSize - rect.Start.Inline - rect.Size.Inline
	}

	var children []bo.Fragment
	switch fragment := fragment.(type) {
	case *bo.LineFragment:
		children = fragment.Children
	case *bo.BoxFragment:
		children = fragment.Children
	}

	c.OnNewStack(func() {
		col := colorFor(fragment)
		c.SetColorRgba(col.r, col.g, col.b, col.a)
		if _, isHoisted := fragment.(*bo.HoistedFragment); isHoisted {
			// a small square at the static position
			c.StrokeRectangle(fl(x)-2, fl(rect.Start.Block)-2, 4, 4)
			return
		}
		c.StrokeRectangle(fl(x), fl(rect.Start.Block), fl(rect.Size.Inline), fl(rect.Size.Block))

		c.Translate(fl(x), fl(rect.Start.Block))
		for _, child := range children {
			drawFragment(c, child, rect.Size.Inline, dir)
		}
	})
}
