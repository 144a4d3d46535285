package main

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	paletteRows = 4
	paletteCols = 8
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Game Boy Advance inspired base palette.
var basePalette = [paletteRows][paletteCols]color.RGBA{
	// grayscale
	{rgb(0, 0, 0), rgb(34, 32, 52), rgb(69, 40, 60), rgb(102, 57, 49), rgb(128, 128, 128), rgb(192, 192, 192), rgb(230, 230, 230), rgb(255, 255, 255)},
	// reds and oranges
	{rgb(120, 0, 0), rgb(188, 63, 63), rgb(255, 68, 68), rgb(255, 119, 119), rgb(255, 140, 0), rgb(255, 165, 0), rgb(255, 200, 100), rgb(255, 218, 185)},
	// yellows and greens
	{rgb(143, 86, 59), rgb(217, 160, 102), rgb(251, 242, 54), rgb(155, 188, 15), rgb(106, 190, 48), rgb(48, 98, 48), rgb(15, 56, 15), rgb(50, 60, 57)},
	// cyans, blues and purples
	{rgb(55, 148, 110), rgb(0, 200, 200), rgb(135, 206, 235), rgb(92, 92, 168), rgb(62, 62, 116), rgb(75, 0, 130), rgb(128, 0, 128), rgb(255, 105, 180)},
}

var defaultPaintColor = rgb(0, 121, 241)

// gba5To8 expands a 5-bit channel to 8 bits.
func gba5To8(c5 uint8) uint8 {
	return uint8(uint16(c5) * 255 / 31)
}

// extendedPalette walks the 15-bit color space in 7 steps per channel (343 colors).
func extendedPalette() []color.RGBA {
	steps := [7]uint8{0, 5, 10, 15, 20, 25, 31}
	colors := make([]color.RGBA, 0, len(steps)*len(steps)*len(steps))
	for _, g := range steps {
		for _, r := range steps {
			for _, b := range steps {
				colors = append(colors, rgb(gba5To8(r), gba5To8(g), gba5To8(b)))
			}
		}
	}
	return colors
}

func hexColor(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf.Hex()
}

func parseHexColor(s string) (color.RGBA, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return rgb(r, g, b), nil
}
