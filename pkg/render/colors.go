package render

import "image/color"

// Layer colors follow the KiCad classic theme so the preview looks like the
// board editor.
var layerColors = map[string]color.NRGBA{
	"F.Cu":      {R: 200, G: 52, B: 52, A: 255},
	"B.Cu":      {R: 77, G: 127, B: 196, A: 255},
	"F.SilkS":   {R: 242, G: 237, B: 161, A: 255},
	"F.Mask":    {R: 216, G: 100, B: 255, A: 102},
	"B.Mask":    {R: 2, G: 255, B: 238, A: 102},
	"Edge.Cuts": {R: 208, G: 210, B: 205, A: 255},
}

// ColorBackground is the canvas behind the board.
var ColorBackground = color.NRGBA{R: 0, G: 16, B: 35, A: 255}

// ColorSubstrate is the bare board material inside the outline.
var ColorSubstrate = color.NRGBA{R: 26, G: 80, B: 50, A: 255}

// ColorPort marks the feed point on the board edge.
var ColorPort = color.NRGBA{R: 255, G: 255, B: 0, A: 255}

// LayerColor returns the display color for a layer name.
func LayerColor(layer string) color.NRGBA {
	if c, ok := layerColors[layer]; ok {
		return c
	}
	return color.NRGBA{R: 194, G: 194, B: 194, A: 255}
}
