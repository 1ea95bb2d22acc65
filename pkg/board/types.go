// Package board builds a KiCad PCB from a computed patch antenna design and
// serializes it as a .kicad_pcb file. Only the writer-side subset of the
// board model is kept here: the layout is generated, never parsed back.
// All coordinates are millimeters in the KiCad convention (Y grows downward).
package board

// Position is a 2D board coordinate in mm.
type Position struct {
	X float64
	Y float64
}

// Layer is one entry of the board layer table.
type Layer struct {
	Number int    // KiCad ordinal (0 = F.Cu, 31 = B.Cu, ...)
	Name   string // Canonical name, e.g. "F.Cu"
	Kind   string // "signal" or "user"
}

// Canonical layer names used by the generated layout.
const (
	LayerFrontCopper = "F.Cu"
	LayerBackCopper  = "B.Cu"
	LayerFrontMask   = "F.Mask"
	LayerBackMask    = "B.Mask"
	LayerEdgeCuts    = "Edge.Cuts"
	LayerFrontSilk   = "F.SilkS"
)

// DefaultLayers returns the layer table for a two-layer antenna board.
func DefaultLayers() []Layer {
	return []Layer{
		{Number: 0, Name: LayerFrontCopper, Kind: "signal"},
		{Number: 31, Name: LayerBackCopper, Kind: "signal"},
		{Number: 37, Name: LayerFrontSilk, Kind: "user"},
		{Number: 38, Name: LayerBackMask, Kind: "user"},
		{Number: 39, Name: LayerFrontMask, Kind: "user"},
		{Number: 44, Name: LayerEdgeCuts, Kind: "user"},
	}
}

// Rect is an axis-aligned rectangle graphic on a single layer.
type Rect struct {
	Start         Position
	End           Position
	Layer         string
	Filled        bool
	StrokeWidthMM float64 // 0 means hairline-stroke for filled shapes
}

// Poly is a closed filled polygon on a single layer.
type Poly struct {
	Points []Position
	Layer  string
	Filled bool
}

// Text is a free text marker on a single layer.
type Text struct {
	Text   string
	At     Position
	Layer  string
	SizeMM float64
}

// Board is the complete generated layout.
type Board struct {
	Title       string
	ThicknessMM float64
	Layers      []Layer
	Rects       []Rect
	Polys       []Poly
	Texts       []Text

	// Port is the feed-line endpoint on the board edge where the connector
	// or simulation excitation attaches.
	Port Position
}

// BoundingBox returns the extent of the board edge, which for this layout is
// the ground-plane rectangle on Edge.Cuts.
func (b *Board) BoundingBox() (min, max Position) {
	first := true
	expand := func(p Position) {
		if first {
			min, max = p, p
			first = false
			return
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	for _, r := range b.Rects {
		expand(r.Start)
		expand(r.End)
	}
	for _, p := range b.Polys {
		for _, pt := range p.Points {
			expand(pt)
		}
	}
	return min, max
}
