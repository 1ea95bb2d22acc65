package board

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// FormatVersion is the kicad_pcb format revision the writer emits
// (KiCad 6.0.x file format).
const FormatVersion = 20221018

// Generator is the value written to the file header.
const Generator = "patchcad"

// WriteFile serializes the board to a .kicad_pcb file.
func WriteFile(b *Board, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create board file: %w", err)
	}
	defer f.Close()

	if err := Write(b, f); err != nil {
		return err
	}
	return f.Close()
}

// Write serializes the board as a kicad_pcb S-expression document.
func Write(b *Board, w io.Writer) error {
	root := newNode("kicad_pcb")
	root.Child("version").Int(FormatVersion)
	root.Child("generator").Sym(Generator)

	general := root.Child("general")
	general.Child("thickness").Num(b.ThicknessMM)

	root.Child("paper").Str("A4")
	if b.Title != "" {
		root.Child("title_block").Child("title").Str(b.Title)
	}

	layers := root.Child("layers")
	for _, l := range b.Layers {
		layers.Child(fmt.Sprintf("%d", l.Number)).Str(l.Name).Sym(l.Kind)
	}

	// The antenna copper is plain graphics, not routed nets, but the file
	// still needs the implicit empty net.
	root.Child("net").Int(0).Str("")

	for _, r := range b.Rects {
		root.Add(rectNode(r))
	}
	for _, p := range b.Polys {
		root.Add(polyNode(p))
	}
	for _, t := range b.Texts {
		root.Add(textNode(t))
	}

	return root.write(w, 0)
}

func rectNode(r Rect) *node {
	n := newNode("gr_rect")
	n.Child("start").Num(r.Start.X).Num(r.Start.Y)
	n.Child("end").Num(r.End.X).Num(r.End.Y)

	stroke := n.Child("stroke")
	stroke.Child("width").Num(r.StrokeWidthMM)
	stroke.Child("type").Sym("solid")

	if r.Filled {
		n.Child("fill").Sym("solid")
	} else {
		n.Child("fill").Sym("none")
	}
	n.Child("layer").Str(r.Layer)
	n.Child("tstamp").Sym(uuid.NewString())
	return n
}

func polyNode(p Poly) *node {
	n := newNode("gr_poly")
	pts := n.Child("pts")
	for _, pt := range p.Points {
		pts.Child("xy").Num(pt.X).Num(pt.Y)
	}

	stroke := n.Child("stroke")
	stroke.Child("width").Num(0)
	stroke.Child("type").Sym("solid")

	if p.Filled {
		n.Child("fill").Sym("solid")
	} else {
		n.Child("fill").Sym("none")
	}
	n.Child("layer").Str(p.Layer)
	n.Child("tstamp").Sym(uuid.NewString())
	return n
}

func textNode(t Text) *node {
	n := newNode("gr_text")
	n.Str(t.Text)
	n.Child("at").Num(t.At.X).Num(t.At.Y)
	n.Child("layer").Str(t.Layer)
	n.Child("tstamp").Sym(uuid.NewString())

	size := t.SizeMM
	if size <= 0 {
		size = 1.0
	}
	font := n.Child("effects").Child("font")
	font.Child("size").Num(size).Num(size)
	font.Child("thickness").Num(size * 0.15)
	return n
}
