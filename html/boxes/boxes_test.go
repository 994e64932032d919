package boxes

import (
	"testing"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	tu "github.com/benoitkugler/inlinelayout/utils/testutils"
)

type fl = pr.Float

func TestLogicalSides(t *testing.T) {
	sides := pr.Sides{Top: 1, Right: 2, Bottom: 3, Left: 4}
	ltr := ToLogical(sides, pr.LTR)
	tu.AssertEqual(t, ltr, LogicalSides{InlineStart: 4, InlineEnd: 2, BlockStart: 1, BlockEnd: 3})
	rtl := ToLogical(sides, pr.RTL)
	tu.AssertEqual(t, rtl, LogicalSides{InlineStart: 2, InlineEnd: 4, BlockStart: 1, BlockEnd: 3})
	tu.AssertEqual(t, ltr.Sum(), Vec2{6, 4})
	tu.AssertEqual(t, ltr.StartOffset(), Vec2{4, 1})
}

func TestMarginRect(t *testing.T) {
	frag := BoxFragment{
		Content: Rect{Start: Vec2{10, 10}, Size: Vec2{20, 30}},
		Padding: LogicalSides{1, 1, 1, 1},
		Border:  LogicalSides{InlineStart: 2},
		Margin:  LogicalSides{BlockEnd: 5},
	}
	tu.AssertEqual(t, frag.MarginRect(), Rect{Start: Vec2{7, 9}, Size: Vec2{24, 37}})

	frag.Translate(Vec2{1, -1})
	tu.AssertEqual(t, frag.Content.Start, Vec2{11, 9})
}

func TestReplacedLayout(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := pr.InitialStyle()
	style.Margin = pr.Sides{Left: 5}
	cb := ContainingBlock{InlineSize: 200, BlockSize: pr.Inf, Style: pr.InitialStyle()}

	img := NewReplacedBox(style, "img", 40, 20)
	frag := img.Layout(cb)
	tu.AssertEqual(t, frag.Content.Size, Vec2{40, 20})
	tu.AssertEqual(t, frag.Kind, AtomicKind)
	tu.AssertEqual(t, frag.MarginRect().Size, Vec2{45, 20})
	tu.Assert(t, frag.Baselines.First == nil, "images have no baseline")
	tu.Assert(t, !frag.DependsOnBlockConstraints, "unexpected dependency")

	// ratio is preserved
	style.Width = pr.NewDim(50, pr.Perc)
	frag = img.Layout(cb)
	tu.AssertEqual(t, frag.Content.Size, Vec2{100, 50})

	// indefinite percentage heights are ignored
	style.Width = pr.Auto
	style.Height = pr.NewDim(50, pr.Perc)
	frag = img.Layout(cb)
	tu.AssertEqual(t, frag.Content.Size, Vec2{40, 20})
	tu.Assert(t, frag.DependsOnBlockConstraints, "expected a dependency")

	cb.BlockSize = 100
	frag = img.Layout(cb)
	tu.AssertEqual(t, frag.Content.Size, Vec2{100, 50})

	img.Baseline = fl(15)
	frag = img.Layout(cb)
	tu.AssertEqual(t, frag.Baselines.Last, pr.MaybeFloat(fl(15)))

	style.Float = pr.FloatLeft
	tu.AssertEqual(t, img.Layout(cb).Kind, FloatKind)
}
