package text

import (
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	tl "github.com/benoitkugler/textlayout/language"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Shaper converts text to glyphs.
type Shaper interface {
	// Shape shapes text[start:end], the rest of [text] being
	// used as context. The returned glyphs use indices in [text]
	// for their [Glyph.Cluster] field.
	Shape(text []rune, start, end int, font *Font, level Level, lang tl.Language) []Glyph
}

var (
	_ Shaper = (*HarfbuzzShaper)(nil)
	_ Shaper = FixedShaper{}
)

// HarfbuzzShaper uses the go-text port of Harfbuzz.
// It is not safe for concurrent use.
type HarfbuzzShaper struct {
	shaper shaping.HarfbuzzShaper
}

func NewHarfbuzzShaper() *HarfbuzzShaper {
	out := HarfbuzzShaper{}
	out.shaper.SetFontCacheSize(64)
	return &out
}

// Shape implements [Shaper]. Fonts without glyph data are
// shaped with a [FixedShaper].
func (hs *HarfbuzzShaper) Shape(text []rune, start, end int, font *Font, level Level, lang tl.Language) []Glyph {
	if font.face == nil {
		return FixedShaper{}.Shape(text, start, end, font, level, lang)
	}
	if start >= end {
		return nil
	}
	dir := di.DirectionLTR
	if level.IsRTL() {
		dir = di.DirectionRTL
	}
	out := hs.shaper.Shape(shaping.Input{
		Text:      text,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      font.face,
		Size:      fixed.Int26_6(font.Size * 64),
		Script:    language.LookupScript(text[start]),
		Language:  language.NewLanguage(string(lang)),
	})

	glyphs := make([]Glyph, len(out.Glyphs))
	lastCluster := -1
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			ID:      uint32(g.GlyphID),
			Advance: pr.Float(g.XAdvance) / 64, // fixed to float
			Cluster: g.ClusterIndex,
		}
		if g.ClusterIndex != lastCluster && g.ClusterIndex < len(text) {
			glyphs[i].IsWordSeparator = isWordSeparator(text[g.ClusterIndex])
		}
		lastCluster = g.ClusterIndex
	}
	return glyphs
}

// FixedShaper maps each rune to one glyph, whose advance is
// read from [Advances] or defaults to [Default] (1 if zero), in em units.
// It is mainly useful for tests, where predictable widths are required.
type FixedShaper struct {
	Advances map[rune]pr.Float
	Default  pr.Float
}

// Shape implements [Shaper].
func (fs FixedShaper) Shape(text []rune, start, end int, font *Font, _ Level, _ tl.Language) []Glyph {
	def := fs.Default
	if def == 0 {
		def = 1
	}
	out := make([]Glyph, 0, end-start)
	for i := start; i < end; i++ {
		r := text[i]
		adv, ok := fs.Advances[r]
		if !ok {
			adv = def
		}
		out = append(out, Glyph{
			ID:              uint32(r),
			Advance:         adv * font.Size,
			Cluster:         i,
			IsWordSeparator: isWordSeparator(r),
		})
	}
	return out
}
