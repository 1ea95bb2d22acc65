package cmd

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/rflabs/patchcad/pkg/board"
	"github.com/rflabs/patchcad/pkg/render"
)

var previewFlags designFlags

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the generated board in an interactive viewer",
	Long: `Synthesizes the antenna and opens the layout in a Gio viewer.

Controls:
  Scroll Wheel      - Zoom in/out
  Space             - Fit board to window
  Q / Escape        - Quit`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewFlags.register(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	d, err := previewFlags.design()
	if err != nil {
		return err
	}
	b, err := board.Build(d, board.DefaultBuildOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Previewing %.2f x %.2f mm board, patch %.2f x %.2f mm\n",
		d.GroundPlaneWidthMM, d.GroundPlaneLengthMM, d.PatchWidthMM, d.PatchLengthMM)

	go func() {
		w := new(app.Window)
		w.Option(app.Title(fmt.Sprintf("patchcad - %.4g GHz patch", d.FrequencyHz/1e9)))
		w.Option(app.Size(unit.Dp(1000), unit.Dp(800)))

		if err := runPreviewWindow(w, b); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func runPreviewWindow(w *app.Window, b *board.Board) error {
	camera := render.NewCamera(1000, 800)
	min, max := b.BoundingBox()
	camera.Fit(min, max)

	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			camera.UpdateScreenSize(e.Size.X, e.Size.Y)

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					switch ke.Name {
					case key.NameEscape, "Q":
						return nil
					case key.NameSpace:
						camera.Fit(min, max)
					}
					w.Invalidate()
				}
			}

			for {
				ev, ok := gtx.Event(pointer.Filter{Kinds: pointer.Scroll})
				if !ok {
					break
				}
				if pe, ok := ev.(pointer.Event); ok && pe.Kind == pointer.Scroll {
					factor := 1.0 - float64(pe.Scroll.Y)*0.1
					camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
					w.Invalidate()
				}
			}

			render.RenderBoard(gtx, camera, b)

			e.Frame(&ops)
		}
	}
}
