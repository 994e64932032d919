package tracer

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
)

func sampleLine() *bo.LineFragment {
	span := &bo.BoxFragment{
		Style:   pr.InitialStyle(),
		Kind:    bo.InlineBoxKind,
		Tag:     "span",
		Content: bo.Rect{Start: bo.Vec2{Inline: 10}, Size: bo.Vec2{Inline: 20, Block: 10}},
		Children: []bo.Fragment{
			&bo.TextFragment{Rect: bo.Rect{Size: bo.Vec2{Inline: 20, Block: 10}}},
		},
	}
	return &bo.LineFragment{
		Rect:     bo.Rect{Size: bo.Vec2{Inline: 100, Block: 10}},
		Baseline: 8,
		Children: []bo.Fragment{span, &bo.HoistedFragment{StaticPosition: bo.Vec2{Inline: 30}}},
	}
}

func TestDescribe(t *testing.T) {
	line := sampleLine()
	if got := Describe(line); got != "Line: (0, 0) 100x10 baseline 8" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := Describe(line.Children[0]); got != "InlineBox <span>: (10, 0) 20x10" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := Describe(line.Children[1]); got != "Hoisted: static position (30, 0)" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestDumpFragments(t *testing.T) {
	var buf bytes.Buffer
	NewTracer(&buf).DumpLine(sampleLine())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "  Text:") {
		t.Fatalf("expected an indented text fragment, got %q", lines[2])
	}
}

func TestDrawFragments(t *testing.T) {
	var buf bytes.Buffer
	DrawFragments(NewDrawer(&buf), []bo.Fragment{sampleLine()}, 100, pr.LTR)
	if n := strings.Count(buf.String(), "StrokeRectangle"); n != 4 {
		t.Fatalf("expected 4 rectangles, got %d", n)
	}
	if !strings.Contains(buf.String(), "StrokeRectangle : 10.00 0.00 20.00 10.00") {
		t.Fatalf("unexpected output\n%s", buf.String())
	}

	// mirrored for right to left
	buf.Reset()
	DrawFragments(NewDrawer(&buf), []bo.Fragment{sampleLine()}, 100, pr.RTL)
	if !strings.Contains(buf.String(), "StrokeRectangle : 70.00 0.00 20.00 10.00") {
		t.Fatalf("unexpected output\n%s", buf.String())
	}
}

func TestPNGCanvas(t *testing.T) {
	canvas := NewPNGCanvas(101, 11)
	DrawFragments(canvas, []bo.Fragment{sampleLine()}, 100, pr.LTR)

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 101 || b.Dy() != 11 {
		t.Fatalf("unexpected image size %v", b)
	}
}
