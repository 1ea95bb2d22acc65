package board

import (
	"fmt"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

// BuildOptions places and decorates the generated layout.
type BuildOptions struct {
	// CenterX/CenterY position the patch center on the board sheet in mm.
	CenterX float64
	CenterY float64

	// MaskMarginMM widens the solder-mask cutouts beyond the copper so the
	// radiating surfaces stay unmasked even with registration error.
	MaskMarginMM float64

	// EdgeStrokeMM is the Edge.Cuts line width.
	EdgeStrokeMM float64

	Title string
}

// DefaultBuildOptions centers the antenna at (100, 100) on the sheet with a
// 1 mm mask margin, mirroring the original layout script.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		CenterX:      100,
		CenterY:      100,
		MaskMarginMM: 1.0,
		EdgeStrokeMM: 0.1,
		Title:        "Inset-fed patch antenna",
	}
}

// Build converts a computed design into board geometry:
//
//   - board outline on Edge.Cuts sized to the ground plane
//   - filled ground rectangle on B.Cu
//   - the 9-point patch polygon on F.Cu
//   - feed trace from the board edge into the inset notch on F.Cu
//   - solder-mask cutouts over patch and feed on F.Mask
//   - a port marker at the feed-line endpoint on the board edge
//
// The feed enters through the +Y (bottom) edge, so the patch width runs
// along X and the resonant length along Y.
func Build(d *microstrip.Design, opts BuildOptions) (*Board, error) {
	if d == nil {
		return nil, fmt.Errorf("nil design")
	}
	if opts.MaskMarginMM < 0 {
		return nil, fmt.Errorf("mask margin must be >= 0 mm, got %g", opts.MaskMarginMM)
	}
	if opts.EdgeStrokeMM <= 0 {
		opts.EdgeStrokeMM = 0.1
	}

	cx, cy := opts.CenterX, opts.CenterY
	halfGW := d.GroundPlaneWidthMM / 2
	halfGL := d.GroundPlaneLengthMM / 2
	halfPW := d.PatchWidthMM / 2
	halfPL := d.PatchLengthMM / 2

	b := &Board{
		Title:       opts.Title,
		ThicknessMM: d.Substrate.HeightMM,
		Layers:      DefaultLayers(),
	}

	// Board outline and ground plane share the same rectangle.
	b.Rects = append(b.Rects, Rect{
		Start:         Position{X: cx - halfGW, Y: cy - halfGL},
		End:           Position{X: cx + halfGW, Y: cy + halfGL},
		Layer:         LayerEdgeCuts,
		StrokeWidthMM: opts.EdgeStrokeMM,
	})
	b.Rects = append(b.Rects, Rect{
		Start:  Position{X: cx - halfGW, Y: cy - halfGL},
		End:    Position{X: cx + halfGW, Y: cy + halfGL},
		Layer:  LayerBackCopper,
		Filled: true,
	})

	// Patch polygon with the inset notch.
	outline := d.Outline(microstrip.Point{X: cx, Y: cy}, 1.0)
	pts := make([]Position, len(outline))
	for i, p := range outline {
		pts[i] = Position{X: p.X, Y: p.Y}
	}
	b.Polys = append(b.Polys, Poly{Points: pts, Layer: LayerFrontCopper, Filled: true})

	// Feed trace: from the board edge up into the notch, with the clearance
	// gap separating it from the patch copper.
	feedHalf := d.FeedLineWidthMM / 2
	feedTop := cy + halfPL - d.InsetDepthMM
	b.Rects = append(b.Rects, Rect{
		Start:  Position{X: cx - feedHalf, Y: cy + halfGL},
		End:    Position{X: cx + feedHalf, Y: feedTop},
		Layer:  LayerFrontCopper,
		Filled: true,
	})

	// Mask cutouts keep the radiating copper and the feed bare.
	m := opts.MaskMarginMM
	b.Rects = append(b.Rects, Rect{
		Start:  Position{X: cx - halfPW - m, Y: cy - halfPL - m},
		End:    Position{X: cx + halfPW + m, Y: cy + halfPL + m},
		Layer:  LayerFrontMask,
		Filled: true,
	})
	b.Rects = append(b.Rects, Rect{
		Start:  Position{X: cx - feedHalf - m, Y: cy + halfGL},
		End:    Position{X: cx + feedHalf + m, Y: feedTop},
		Layer:  LayerFrontMask,
		Filled: true,
	})

	// Port reference where the feed meets the board edge; the simulation
	// driver and any edge-launch connector footprint anchor here.
	b.Port = Position{X: cx, Y: cy + halfGL}
	b.Texts = append(b.Texts, Text{
		Text:   "P1",
		At:     Position{X: cx + feedHalf + 2*m, Y: cy + halfGL - 2},
		Layer:  LayerFrontSilk,
		SizeMM: 1.0,
	})

	return b, nil
}
