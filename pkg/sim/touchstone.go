package sim

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"
)

// TouchstoneFormat selects how complex S-parameters are written in a
// touchstone (.s1p) file.
type TouchstoneFormat string

const (
	// FormatRI writes real/imaginary pairs.
	FormatRI TouchstoneFormat = "RI"
	// FormatMA writes magnitude/angle-in-degrees pairs.
	FormatMA TouchstoneFormat = "MA"
	// FormatDB writes dB-magnitude/angle-in-degrees pairs.
	FormatDB TouchstoneFormat = "DB"
)

// WriteTouchstone writes the result as a one-port touchstone file with
// frequencies in Hz.
func (r *Result) WriteTouchstone(w io.Writer, format TouchstoneFormat) error {
	switch format {
	case FormatRI, FormatMA, FormatDB:
	default:
		return fmt.Errorf("unsupported touchstone format %q", format)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "! 1-port S-parameter data\n")
	fmt.Fprintf(bw, "# Hz S %s R %g\n", format, r.ReferenceOhms)

	for _, p := range r.Points {
		a, b := touchstonePair(p.Reflection, format)
		fmt.Fprintf(bw, "%.6e %.9e %.9e\n", p.FrequencyHz, a, b)
	}
	return bw.Flush()
}

// WriteTouchstoneFile writes the result to a .s1p file.
func (r *Result) WriteTouchstoneFile(path string, format TouchstoneFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create touchstone file: %w", err)
	}
	defer f.Close()

	if err := r.WriteTouchstone(f, format); err != nil {
		return err
	}
	return f.Close()
}

func touchstonePair(s complex128, format TouchstoneFormat) (float64, float64) {
	switch format {
	case FormatMA:
		return cmplx.Abs(s), cmplx.Phase(s) * 180 / math.Pi
	case FormatDB:
		return 20 * math.Log10(cmplx.Abs(s)), cmplx.Phase(s) * 180 / math.Pi
	default:
		return real(s), imag(s)
	}
}

// ReadTouchstone parses a one-port touchstone file. Frequencies are
// converted to Hz regardless of the unit in the option line.
func ReadTouchstone(rd io.Reader) (*Result, error) {
	res := &Result{ReferenceOhms: 50}
	format := FormatMA // touchstone default
	unitScale := 1e9   // touchstone default is GHz

	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if idx := strings.Index(text, "!"); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "#") {
			var err error
			format, unitScale, res.ReferenceOhms, err = parseOptionLine(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected frequency and S11 pair, got %q", line, text)
		}
		vals := make([]float64, 3)
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad number %q: %w", line, fields[k], err)
			}
			vals[k] = v
		}

		res.Points = append(res.Points, FrequencyPoint{
			FrequencyHz: vals[0] * unitScale,
			Reflection:  fromTouchstonePair(vals[1], vals[2], format),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(res.Points) == 0 {
		return nil, fmt.Errorf("touchstone file has no data lines")
	}

	z0c := complex(res.ReferenceOhms, 0)
	for k := range res.Points {
		g := res.Points[k].Reflection
		res.Points[k].Impedance = z0c * (1 + g) / (1 - g)
	}
	return res, nil
}

// ReadTouchstoneFile parses a .s1p file from disk.
func ReadTouchstoneFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTouchstone(f)
}

func parseOptionLine(text string) (TouchstoneFormat, float64, float64, error) {
	format := FormatMA
	unitScale := 1e9
	z0 := 50.0

	fields := strings.Fields(strings.TrimPrefix(text, "#"))
	for k := 0; k < len(fields); k++ {
		switch strings.ToUpper(fields[k]) {
		case "HZ":
			unitScale = 1
		case "KHZ":
			unitScale = 1e3
		case "MHZ":
			unitScale = 1e6
		case "GHZ":
			unitScale = 1e9
		case "S":
			// one-port scattering data, the only kind supported
		case "RI":
			format = FormatRI
		case "MA":
			format = FormatMA
		case "DB":
			format = FormatDB
		case "R":
			if k+1 >= len(fields) {
				return format, unitScale, z0, fmt.Errorf("option line %q: R without impedance", text)
			}
			v, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return format, unitScale, z0, fmt.Errorf("bad reference impedance %q: %w", fields[k+1], err)
			}
			z0 = v
			k++
		default:
			return format, unitScale, z0, fmt.Errorf("unknown touchstone option %q", fields[k])
		}
	}
	return format, unitScale, z0, nil
}

func fromTouchstonePair(a, b float64, format TouchstoneFormat) complex128 {
	switch format {
	case FormatMA:
		return cmplx.Rect(a, b*math.Pi/180)
	case FormatDB:
		return cmplx.Rect(math.Pow(10, a/20), b*math.Pi/180)
	default:
		return complex(a, b)
	}
}
