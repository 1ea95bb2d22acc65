package sim

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/rflabs/patchcad/pkg/microstrip"
)

// Model is the openEMS simulation setup for one antenna design. Geometry is
// centered at the origin with the patch metal at z = substrate height; all
// coordinates are millimeters (DeltaUnit 1e-3).
type Model struct {
	Design *microstrip.Design
	Sweep  Sweep

	// AirMarginMM pads the simulation box beyond the board on every side.
	AirMarginMM float64
	// EndCriteria stops the time stepping once the residual energy has
	// decayed by this factor.
	EndCriteria float64
	// MaxTimesteps bounds the solve.
	MaxTimesteps int
}

// NewModel assembles a simulation model with the usual solver settings.
func NewModel(d *microstrip.Design, sweep Sweep) (*Model, error) {
	if d == nil {
		return nil, fmt.Errorf("nil design")
	}
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		Design:       d,
		Sweep:        sweep,
		AirMarginMM:  20,
		EndCriteria:  1e-5,
		MaxTimesteps: 300000,
	}, nil
}

// XML document layout for the openEMS input file.

type xmlDocument struct {
	XMLName xml.Name     `xml:"openEMS"`
	FDTD    xmlFDTD      `xml:"FDTD"`
	CSX     xmlStructure `xml:"ContinuousStructure"`
}

type xmlFDTD struct {
	NumberOfTimesteps int           `xml:"NumberOfTimesteps,attr"`
	EndCriteria       float64       `xml:"endCriteria,attr"`
	Excitation        xmlExcitation `xml:"Excitation"`
	Boundary          xmlBoundary   `xml:"BoundaryCond"`
}

type xmlExcitation struct {
	Type int     `xml:"Type,attr"` // 0 = gaussian pulse
	F0   float64 `xml:"f0,attr"`   // center frequency
	Fc   float64 `xml:"fc,attr"`   // 20 dB cutoff bandwidth
}

type xmlBoundary struct {
	Xmin string `xml:"xmin,attr"`
	Xmax string `xml:"xmax,attr"`
	Ymin string `xml:"ymin,attr"`
	Ymax string `xml:"ymax,attr"`
	Zmin string `xml:"zmin,attr"`
	Zmax string `xml:"zmax,attr"`
}

type xmlStructure struct {
	CoordSystem int           `xml:"CoordSystem,attr"`
	Properties  xmlProperties `xml:"Properties"`
	Grid        xmlGrid       `xml:"RectilinearGrid"`
}

type xmlProperties struct {
	Materials []xmlMaterial `xml:"Material"`
	Metals    []xmlMetal    `xml:"Metal"`
	Ports     []xmlPort     `xml:"LumpedPort"`
}

type xmlMaterial struct {
	Name    string   `xml:"Name,attr"`
	Epsilon float64  `xml:"Epsilon,attr"`
	Boxes   []xmlBox `xml:"Primitives>Box"`
}

type xmlMetal struct {
	Name     string       `xml:"Name,attr"`
	Boxes    []xmlBox     `xml:"Primitives>Box,omitempty"`
	Polygons []xmlLinPoly `xml:"Primitives>LinPoly,omitempty"`
}

type xmlPort struct {
	Name      string  `xml:"Name,attr"`
	Number    int     `xml:"Number,attr"`
	Impedance float64 `xml:"Impedance,attr"`
	Direction string  `xml:"Direction,attr"`
	Box       xmlBox  `xml:"Primitives>Box"`
}

type xmlBox struct {
	Priority int      `xml:"Priority,attr"`
	P1       xmlPoint `xml:"P1"`
	P2       xmlPoint `xml:"P2"`
}

type xmlPoint struct {
	X float64 `xml:"X,attr"`
	Y float64 `xml:"Y,attr"`
	Z float64 `xml:"Z,attr"`
}

type xmlLinPoly struct {
	Priority  int         `xml:"Priority,attr"`
	NormDir   int         `xml:"NormDir,attr"`
	Elevation float64     `xml:"Elevation,attr"`
	Length    float64     `xml:"Length,attr"`
	Vertices  []xmlVertex `xml:"Vertex"`
}

type xmlVertex struct {
	X1 float64 `xml:"X1,attr"`
	X2 float64 `xml:"X2,attr"`
}

type xmlGrid struct {
	DeltaUnit float64  `xml:"DeltaUnit,attr"`
	XLines    xmlLines `xml:"XLines"`
	YLines    xmlLines `xml:"YLines"`
	ZLines    xmlLines `xml:"ZLines"`
}

type xmlLines struct {
	Values string `xml:",chardata"`
}

// WriteXML serializes the model as an openEMS input document.
func (m *Model) WriteXML(w io.Writer) error {
	d := m.Design
	h := d.Substrate.HeightMM
	halfGW := d.GroundPlaneWidthMM / 2
	halfGL := d.GroundPlaneLengthMM / 2

	doc := xmlDocument{
		FDTD: xmlFDTD{
			NumberOfTimesteps: m.MaxTimesteps,
			EndCriteria:       m.EndCriteria,
			Excitation: xmlExcitation{
				Type: 0,
				F0:   m.Sweep.CenterHz(),
				Fc:   (m.Sweep.StopHz - m.Sweep.StartHz) / 2,
			},
			Boundary: xmlBoundary{
				Xmin: "MUR", Xmax: "MUR",
				Ymin: "MUR", Ymax: "MUR",
				Zmin: "MUR", Zmax: "MUR",
			},
		},
		CSX: xmlStructure{
			Properties: xmlProperties{
				Materials: []xmlMaterial{{
					Name:    "substrate",
					Epsilon: d.Substrate.EpsilonR,
					Boxes: []xmlBox{{
						Priority: 0,
						P1:       xmlPoint{X: -halfGW, Y: -halfGL, Z: 0},
						P2:       xmlPoint{X: halfGW, Y: halfGL, Z: h},
					}},
				}},
				Metals: m.metals(),
				Ports:  m.ports(),
			},
			Grid: m.grid(),
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode simulation model: %w", err)
	}
	return enc.Flush()
}

// WriteXMLFile writes the model document to a file.
func (m *Model) WriteXMLFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()

	if err := m.WriteXML(f); err != nil {
		return err
	}
	return f.Close()
}

func (m *Model) metals() []xmlMetal {
	d := m.Design
	h := d.Substrate.HeightMM
	halfGW := d.GroundPlaneWidthMM / 2
	halfGL := d.GroundPlaneLengthMM / 2

	// Patch polygon in the XY plane at the top copper elevation.
	outline := d.Outline(microstrip.Point{}, 1.0)
	verts := make([]xmlVertex, 0, len(outline)-1)
	for _, p := range outline[:len(outline)-1] {
		verts = append(verts, xmlVertex{X1: p.X, X2: p.Y})
	}

	feedHalf := d.FeedLineWidthMM / 2
	feedTop := d.PatchLengthMM/2 - d.InsetDepthMM

	return []xmlMetal{
		{
			Name: "gnd",
			Boxes: []xmlBox{{
				Priority: 10,
				P1:       xmlPoint{X: -halfGW, Y: -halfGL, Z: 0},
				P2:       xmlPoint{X: halfGW, Y: halfGL, Z: 0},
			}},
		},
		{
			Name: "patch",
			Polygons: []xmlLinPoly{{
				Priority:  10,
				NormDir:   2,
				Elevation: h,
				Length:    0,
				Vertices:  verts,
			}},
		},
		{
			Name: "feed",
			Boxes: []xmlBox{{
				Priority: 10,
				P1:       xmlPoint{X: -feedHalf, Y: halfGL, Z: h},
				P2:       xmlPoint{X: feedHalf, Y: feedTop, Z: h},
			}},
		},
	}
}

func (m *Model) ports() []xmlPort {
	d := m.Design
	h := d.Substrate.HeightMM
	halfGL := d.GroundPlaneLengthMM / 2
	feedHalf := d.FeedLineWidthMM / 2

	// Vertical lumped port between ground and the feed trace at the board
	// edge, matching the layout's port reference.
	return []xmlPort{{
		Name:      "port1",
		Number:    1,
		Impedance: d.Options.FeedImpedanceOhms,
		Direction: "z",
		Box: xmlBox{
			Priority: 20,
			P1:       xmlPoint{X: -feedHalf, Y: halfGL, Z: 0},
			P2:       xmlPoint{X: feedHalf, Y: halfGL, Z: h},
		},
	}}
}

// grid builds a rectilinear mesh: fixed lines on every metal edge, filled to
// roughly a twentieth of the guided wavelength. openEMS does the real mesh
// smoothing; this only has to be dense enough to resolve the geometry.
func (m *Model) grid() xmlGrid {
	d := m.Design
	h := d.Substrate.HeightMM
	halfGW := d.GroundPlaneWidthMM / 2
	halfGL := d.GroundPlaneLengthMM / 2
	halfPW := d.PatchWidthMM / 2
	halfPL := d.PatchLengthMM / 2
	notchHalf := d.NotchWidthMM() / 2
	feedHalf := d.FeedLineWidthMM / 2
	air := m.AirMarginMM

	lambdaMM := microstrip.SpeedOfLight / m.Sweep.StopHz * 1000
	step := lambdaMM / (20 * math.Sqrt(d.Substrate.EpsilonR))

	xs := fillLines([]float64{
		-halfGW - air, -halfGW, -halfPW, -notchHalf, -feedHalf,
		feedHalf, notchHalf, halfPW, halfGW, halfGW + air,
	}, step)
	ys := fillLines([]float64{
		-halfGL - air, -halfGL, -halfPL, halfPL - d.InsetDepthMM,
		halfPL, halfGL, halfGL + air,
	}, step)
	zs := fillLines([]float64{-air, 0, h / 2, h, h + air}, step)

	return xmlGrid{
		DeltaUnit: 1e-3,
		XLines:    xmlLines{Values: joinLines(xs)},
		YLines:    xmlLines{Values: joinLines(ys)},
		ZLines:    xmlLines{Values: joinLines(zs)},
	}
}

// fillLines sorts the fixed lines and inserts evenly spaced lines so no gap
// exceeds maxStep.
func fillLines(fixed []float64, maxStep float64) []float64 {
	sort.Float64s(fixed)
	out := []float64{fixed[0]}
	for i := 1; i < len(fixed); i++ {
		gap := fixed[i] - fixed[i-1]
		if gap <= 0 {
			continue
		}
		n := int(math.Ceil(gap / maxStep))
		for k := 1; k < n; k++ {
			out = append(out, fixed[i-1]+gap*float64(k)/float64(n))
		}
		out = append(out, fixed[i])
	}
	return out
}

func joinLines(lines []float64) string {
	s := ""
	for i, v := range lines {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%g", v)
	}
	return s
}
