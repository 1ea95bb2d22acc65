package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/rflabs/patchcad/pkg/board"
)

// RenderBoard draws the whole layout: substrate, back copper, front copper,
// mask cutouts, outline, and the feed port marker, bottom to top.
func RenderBoard(gtx layout.Context, camera *Camera, b *board.Board) {
	renderBackground(gtx)
	renderSubstrate(gtx, camera, b)

	renderLayerRects(gtx, camera, b, board.LayerBackCopper)
	renderLayerPolys(gtx, camera, b, board.LayerBackCopper)
	renderLayerRects(gtx, camera, b, board.LayerFrontCopper)
	renderLayerPolys(gtx, camera, b, board.LayerFrontCopper)
	renderLayerRects(gtx, camera, b, board.LayerFrontMask)
	renderLayerRects(gtx, camera, b, board.LayerEdgeCuts)

	renderPort(gtx, camera, b)
}

func renderBackground(gtx layout.Context) {
	rect := clip.Rect{Max: gtx.Constraints.Max}.Op()
	paint.FillShape(gtx.Ops, ColorBackground, rect)
}

func renderSubstrate(gtx layout.Context, camera *Camera, b *board.Board) {
	min, max := b.BoundingBox()
	if max.X <= min.X || max.Y <= min.Y {
		return
	}
	renderFilledRect(gtx, camera, min, max, ColorSubstrate)
}

func renderLayerRects(gtx layout.Context, camera *Camera, b *board.Board, layer string) {
	for _, r := range b.Rects {
		if r.Layer != layer {
			continue
		}
		c := LayerColor(r.Layer)
		if r.Filled {
			renderFilledRect(gtx, camera, r.Start, r.End, c)
		} else {
			width := r.StrokeWidthMM * camera.Zoom
			if width < 1.0 {
				width = 1.0
			}
			renderRectOutline(gtx, camera, r.Start, r.End, width, c)
		}
	}
}

func renderLayerPolys(gtx layout.Context, camera *Camera, b *board.Board, layer string) {
	for _, p := range b.Polys {
		if p.Layer != layer || len(p.Points) < 3 {
			continue
		}

		var path clip.Path
		path.Begin(gtx.Ops)
		for i, pt := range p.Points {
			x, y := camera.WorldToScreen(pt)
			if i == 0 {
				path.MoveTo(f32.Pt(float32(x), float32(y)))
			} else {
				path.LineTo(f32.Pt(float32(x), float32(y)))
			}
		}
		path.Close()

		c := LayerColor(p.Layer)
		if p.Filled {
			paint.FillShape(gtx.Ops, c, clip.Outline{Path: path.End()}.Op())
		} else {
			stroke := clip.Stroke{Path: path.End(), Width: 1}.Op()
			paint.FillShape(gtx.Ops, c, stroke)
		}
	}
}

func renderPort(gtx layout.Context, camera *Camera, b *board.Board) {
	x, y := camera.WorldToScreen(b.Port)
	radius := 0.5 * camera.Zoom
	if radius < 3.0 {
		radius = 3.0
	}
	renderCircle(gtx, x, y, radius, ColorPort)
}

func renderFilledRect(gtx layout.Context, camera *Camera, start, end board.Position, c color.NRGBA) {
	x1, y1 := camera.WorldToScreen(start)
	x2, y2 := camera.WorldToScreen(end)

	rect := clip.Rect{
		Min: image.Pt(int(math.Min(x1, x2)), int(math.Min(y1, y2))),
		Max: image.Pt(int(math.Max(x1, x2)), int(math.Max(y1, y2))),
	}.Op()
	paint.FillShape(gtx.Ops, c, rect)
}

func renderRectOutline(gtx layout.Context, camera *Camera, start, end board.Position, width float64, c color.NRGBA) {
	x1, y1 := camera.WorldToScreen(start)
	x2, y2 := camera.WorldToScreen(end)

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))
	path.LineTo(f32.Pt(float32(x1), float32(y2)))
	path.Close()

	stroke := clip.Stroke{Path: path.End(), Width: float32(width)}.Op()
	paint.FillShape(gtx.Ops, c, stroke)
}

func renderCircle(gtx layout.Context, x, y, radius float64, c color.NRGBA) {
	rect := image.Rectangle{
		Min: image.Pt(int(x-radius), int(y-radius)),
		Max: image.Pt(int(x+radius), int(y+radius)),
	}
	paint.FillShape(gtx.Ops, c, clip.Ellipse(rect).Op(gtx.Ops))
}
