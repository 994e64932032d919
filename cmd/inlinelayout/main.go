// Command inlinelayout lays out an HTML fragment in a containing block
// and prints the resulting fragment tree.
//
// Usage:
//
//	inlinelayout [flags] [file.html]
//
// The fragment is read from stdin if no file is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	pr "github.com/benoitkugler/inlinelayout/css/properties"
	bo "github.com/benoitkugler/inlinelayout/html/boxes"
	"github.com/benoitkugler/inlinelayout/html/layout"
	"github.com/benoitkugler/inlinelayout/html/markup"
	"github.com/benoitkugler/inlinelayout/logger"
	"github.com/benoitkugler/inlinelayout/text"
	"github.com/benoitkugler/inlinelayout/utils"
	"github.com/benoitkugler/inlinelayout/utils/testutils/tracer"
	"golang.org/x/term"
)

var (
	configFile = flag.String("config", "", "TOML file describing the containing block")
	width      = flag.Float64("width", 600, "Inline size of the containing block, in pixels")
	fontSize   = flag.Float64("font-size", 16, "Font size of the containing block, in pixels")
	fontFile   = flag.String("font", "", "TrueType or OpenType font file (default to Go Regular)")
	lineHeight = flag.String("line-height", "", "'line-height' of the containing block")
	align      = flag.String("align", "", "'text-align' of the containing block")
	indent     = flag.String("indent", "", "'text-indent' of the containing block")
	dir        = flag.String("dir", "", "'direction' of the containing block (ltr or rtl)")
	pngFile    = flag.String("png", "", "Draw the outlines of the fragments in a PNG file")
	quiet      = flag.Bool("quiet", false, "Hide progress messages")
	version    = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\nUsage: inlinelayout [flags] [file.html]\n", utils.VersionString)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(utils.VersionString)
		return
	}
	if *quiet {
		logger.ProgressLogger.SetOutput(io.Discard)
	}

	cf, err := resolveConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cf, flag.Arg(0), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// resolveConfig merges the config file with the flags
// explicitly set on the command line.
func resolveConfig() (config, error) {
	cf := defaultConfig()
	if *configFile != "" {
		if err := loadConfig(*configFile, &cf); err != nil {
			return cf, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cf.Width = *width
		case "font-size":
			cf.FontSize = *fontSize
		case "font":
			cf.Font = *fontFile
		case "line-height":
			cf.Style["line-height"] = *lineHeight
		case "align":
			cf.Style["text-align"] = *align
		case "indent":
			cf.Style["text-indent"] = *indent
		case "dir":
			cf.Style["direction"] = *dir
		}
	})
	return cf, cf.validate()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("no input file: the fragment should be piped to stdin")
		}
		return os.Stdin, nil
	}
	return os.Open(path)
}

func loadFont(cf config) (func(size pr.Float) *text.Font, error) {
	if cf.Font == "" {
		return text.GoRegular, nil
	}
	data, err := os.ReadFile(cf.Font)
	if err != nil {
		return nil, err
	}
	// check the file once
	if _, err := text.LoadFont(cf.Font, data, pr.Float(cf.FontSize)); err != nil {
		return nil, err
	}
	logger.ProgressLogger.Printf("Loaded font %s", cf.Font)
	return func(size pr.Float) *text.Font {
		font, _ := text.LoadFont(cf.Font, data, size)
		return font
	}, nil
}

func run(cf config, input string, out io.Writer) error {
	style, err := cf.containerStyle()
	if err != nil {
		return err
	}
	font, err := loadFont(cf)
	if err != nil {
		return err
	}

	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()

	ifc, err := markup.Parse(in, markup.Options{Style: style, Font: font})
	if err != nil {
		return err
	}

	cb := bo.ContainingBlock{InlineSize: pr.Float(cf.Width), BlockSize: pr.Inf, Style: ifc.Style}
	res := ifc.Layout(cb, nil)
	logger.ProgressLogger.Printf("Laid out %d lines, block size %s", len(res.Fragments), res.ContentBlockSize)

	tr := tracer.NewTracer(out)
	tr.Dump(utils.VersionString)
	tr.DumpFragments(res.Fragments)
	printSummary(tr, res)

	if *pngFile != "" {
		return drawPNG(*pngFile, res, cb)
	}
	return nil
}

func printSummary(tr tracer.Tracer, res layout.LayoutResult) {
	tr.Dump(fmt.Sprintf("block size: %s", res.ContentBlockSize))
	tr.Dump(fmt.Sprintf("baselines: %s, %s",
		tracer.FormatMaybeFloat(res.Baselines.First), tracer.FormatMaybeFloat(res.Baselines.Last)))
	if res.CollapsedThrough {
		tr.Dump("collapsed through")
	}
	for _, hoisted := range res.Hoisted {
		tr.Dump(tracer.Describe(hoisted))
	}
}

func drawPNG(path string, res layout.LayoutResult, cb bo.ContainingBlock) error {
	w := int(math.Ceil(float64(cb.InlineSize))) + 1
	h := int(math.Ceil(float64(res.ContentBlockSize))) + 1
	canvas := tracer.NewPNGCanvas(w, h)
	tracer.DrawFragments(canvas, res.Fragments, cb.InlineSize, cb.Direction())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := canvas.EncodePNG(f); err != nil {
		return fmt.Errorf("writing %s: %s", path, err)
	}
	logger.ProgressLogger.Printf("Wrote %s", path)
	return nil
}
