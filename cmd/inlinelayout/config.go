package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	pr "github.com/benoitkugler/inlinelayout/css/properties"
	"github.com/benoitkugler/inlinelayout/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// config describes the containing block of the laid out fragment.
// It may be read from a TOML file, for instance
//
//	width = 300
//	font-size = 12
//	font = "fonts/DejaVuSans.ttf"
//
//	[style]
//	text-align = "justify"
//	line-height = "1.5"
type config struct {
	Width    float64 `toml:"width"`
	FontSize float64 `toml:"font-size"`
	// Font is the path of a TrueType or OpenType file.
	// The Go Regular font is used if empty.
	Font string `toml:"font"`
	// Style stores CSS declarations applied to the containing block.
	Style map[string]string `toml:"style"`
}

func defaultConfig() config {
	return config{Width: 600, FontSize: 16, Style: map[string]string{}}
}

func loadConfig(path string, cf *config) error {
	md, err := toml.DecodeFile(path, cf)
	if err != nil {
		return fmt.Errorf("reading config file: %s", err)
	}
	for _, key := range md.Undecoded() {
		logger.WarningLogger.Printf("unknown config key %s", key)
	}
	return nil
}

func (cf config) validate() error {
	if cf.Width <= 0 {
		return fmt.Errorf("invalid width %g", cf.Width)
	}
	if cf.FontSize <= 0 {
		return fmt.Errorf("invalid font size %g", cf.FontSize)
	}
	return nil
}

// containerStyle returns the style of the containing block.
func (cf config) containerStyle() (*pr.Style, error) {
	style := pr.InitialStyle()
	style.FontSize = pr.Float(cf.FontSize)
	names := maps.Keys(cf.Style)
	slices.Sort(names)
	for _, name := range names {
		value := cf.Style[name]
		if value == "" {
			continue
		}
		if err := style.Apply(pr.Declaration{Name: name, Value: value}); err != nil {
			return nil, err
		}
	}
	return style, nil
}
