// Package tracer provides functions to dump the fragments produced by
// the layout, which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strings"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/utils"
)

type Tracer struct {
	out io.Writer
}

// NewTracer writes to [out].
func NewTracer(out io.Writer) Tracer { return Tracer{out: out} }

// NewTracerFile panics if an error occurs.
func NewTracerFile(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

func FormatMaybeFloat(v pr.MaybeFloat) string {
	if v, ok := v.(pr.Float); ok {
		return utils.FormatFloat(utils.Fl(v))
	}
	return fmt.Sprintf("%v", v)
}

func formatRect(r bo.Rect) string {
	return fmt.Sprintf("(%s, %s) %sx%s",
		FormatMaybeFloat(r.Start.Inline), FormatMaybeFloat(r.Start.Block),
		FormatMaybeFloat(r.Size.Inline), FormatMaybeFloat(r.Size.Block))
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

// DumpLine prints one line and its descendants.
func (t Tracer) DumpLine(line *bo.LineFragment) {
	t.DumpFragments([]bo.Fragment{line})
}

// DumpFragments prints the fragment trees, one fragment per line.
func (t Tracer) DumpFragments(fragments []bo.Fragment) {
	var printer func(fragment bo.Fragment, indent int)
	printer = func(fragment bo.Fragment, indent int) {
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		fmt.Fprintln(t.out, Describe(fragment))

		var children []bo.Fragment
		switch fragment := fragment.(type) {
		case *bo.LineFragment:
			children = fragment.Children
		case *bo.BoxFragment:
			children = fragment.Children
		}
		for _, child := range children {
			printer(child, indent+1)
		}
	}

	for _, fragment := range fragments {
		printer(fragment, 0)
	}
	fmt.Fprintln(t.out)
}

// Describe returns a one line summary of the fragment, without its children.
func Describe(fragment bo.Fragment) string {
	switch fragment := fragment.(type) {
	case *bo.LineFragment:
		return fmt.Sprintf("Line: %s baseline %s", formatRect(fragment.Rect), FormatMaybeFloat(fragment.Baseline))
	case *bo.BoxFragment:
		return fmt.Sprintf("%s <%s>: %s", fragment.Kind, fragment.Tag, formatRect(fragment.Content))
	case *bo.TextFragment:
		return fmt.Sprintf("Text: %s %d runs, level %d", formatRect(fragment.Rect), len(fragment.Glyphs), fragment.Level)
	case *bo.HoistedFragment:
		return fmt.Sprintf("Hoisted: static position (%s, %s)",
			FormatMaybeFloat(fragment.StaticPosition.Inline), FormatMaybeFloat(fragment.StaticPosition.Block))
	default:
		return fmt.Sprintf("%T", fragment)
	}
}
