package sim

import (
	"bufio"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// TimeSeries is one sampled port signal as recorded by the solver: a column
// of sample times in seconds and a column of values.
type TimeSeries struct {
	Time  []float64
	Value []float64
}

// LoadTimeSeries parses a solver probe dump: whitespace separated
// time/value pairs, with % and # comment lines.
func LoadTimeSeries(path string) (*TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ts := &TimeSeries{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected time and value, got %q", path, line, text)
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad time %q: %w", path, line, fields[0], err)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad value %q: %w", path, line, fields[1], err)
		}
		ts.Time = append(ts.Time, t)
		ts.Value = append(ts.Value, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(ts.Time) < 2 {
		return nil, fmt.Errorf("%s: too few samples (%d)", path, len(ts.Time))
	}
	return ts, nil
}

// DFT evaluates the single-frequency discrete Fourier transform of the
// series, normalized by the sample spacing so amplitudes are comparable
// across run lengths.
func (ts *TimeSeries) DFT(freqHz float64) complex128 {
	dt := (ts.Time[len(ts.Time)-1] - ts.Time[0]) / float64(len(ts.Time)-1)
	var sum complex128
	for k, t := range ts.Time {
		phase := -2 * math.Pi * freqHz * t
		sum += complex(ts.Value[k], 0) * cmplx.Exp(complex(0, phase))
	}
	return sum * complex(dt, 0)
}

// PortSignals are the voltage and current recordings at the feed port.
type PortSignals struct {
	Voltage *TimeSeries
	Current *TimeSeries
}

// FrequencyPoint is the port behavior at one sweep frequency.
type FrequencyPoint struct {
	FrequencyHz float64
	// Reflection is the complex reflection coefficient S11.
	Reflection complex128
	// Impedance is the complex input impedance in ohms.
	Impedance complex128
}

// ReturnLossDB is 20*log10(|S11|), negative for a matched antenna.
func (p FrequencyPoint) ReturnLossDB() float64 {
	return 20 * math.Log10(cmplx.Abs(p.Reflection))
}

// VSWR is the voltage standing wave ratio; +Inf when |S11| >= 1.
func (p FrequencyPoint) VSWR() float64 {
	mag := cmplx.Abs(p.Reflection)
	if mag >= 1 {
		return math.Inf(1)
	}
	return (1 + mag) / (1 - mag)
}

// SmithCoords returns the reflection coefficient as Smith-chart x/y
// coordinates on the unit disc.
func (p FrequencyPoint) SmithCoords() (x, y float64) {
	return real(p.Reflection), imag(p.Reflection)
}

// Result is the frequency-domain view of a simulation run.
type Result struct {
	ReferenceOhms float64
	Points        []FrequencyPoint
}

// Analyze transforms the recorded port signals into S11 and input impedance
// at every sweep frequency. The incident and reflected waves are separated
// with the reference impedance z0: a = (u + z0*i)/2, b = (u - z0*i)/2.
func (s *PortSignals) Analyze(sweep Sweep, z0 float64) (*Result, error) {
	freqs, err := sweep.Frequencies()
	if err != nil {
		return nil, err
	}
	if z0 <= 0 {
		return nil, fmt.Errorf("reference impedance must be > 0 ohm, got %g", z0)
	}
	if s.Voltage == nil || s.Current == nil {
		return nil, fmt.Errorf("missing port recordings")
	}

	res := &Result{
		ReferenceOhms: z0,
		Points:        make([]FrequencyPoint, len(freqs)),
	}
	for k, f := range freqs {
		u := s.Voltage.DFT(f)
		i := s.Current.DFT(f)
		z0c := complex(z0, 0)

		incident := (u + z0c*i) / 2
		reflected := (u - z0c*i) / 2
		gamma := reflected / incident

		res.Points[k] = FrequencyPoint{
			FrequencyHz: f,
			Reflection:  gamma,
			Impedance:   z0c * (1 + gamma) / (1 - gamma),
		}
	}
	return res, nil
}

// Resonance returns the sweep point with the deepest return loss.
func (r *Result) Resonance() FrequencyPoint {
	rl := make([]float64, len(r.Points))
	for k, p := range r.Points {
		rl[k] = p.ReturnLossDB()
	}
	return r.Points[floats.MinIdx(rl)]
}

// Bandwidth returns the frequency span around the resonance where the
// return loss stays at or below thresholdDB (commonly -10 dB). It returns
// 0 when the resonance itself never crosses the threshold.
func (r *Result) Bandwidth(thresholdDB float64) float64 {
	rl := make([]float64, len(r.Points))
	for k, p := range r.Points {
		rl[k] = p.ReturnLossDB()
	}
	min := floats.MinIdx(rl)
	if rl[min] > thresholdDB {
		return 0
	}

	lo := min
	for lo > 0 && rl[lo-1] <= thresholdDB {
		lo--
	}
	hi := min
	for hi < len(rl)-1 && rl[hi+1] <= thresholdDB {
		hi++
	}
	return r.Points[hi].FrequencyHz - r.Points[lo].FrequencyHz
}
