package optical

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate"

	"github.com/calderastro/dustopac/dust"
	"github.com/calderastro/dustopac/photometry"
)

// syntheticGrid builds an in-memory grid with an analytic value function so
// interpolation results have a closed form to compare against.
func syntheticGrid() *Grid {
	g := &Grid{
		Composition: MgSiO3,
		Structure:   Crystalline,
		Wavelength:  []float64{0.4, 0.5, 0.6, 0.8, 1.0},
		Radius:      []float64{0.1, 0.5, 1.0, 2.0},
		Sigma:       []float64{1.5, 2.0, 3.0},
	}
	g.Values = make([]float64, len(g.Wavelength)*len(g.Radius)*len(g.Sigma))
	for i, w := range g.Wavelength {
		for j, r := range g.Radius {
			for k, s := range g.Sigma {
				// Linear in all three coordinates, so piecewise-linear and
				// bilinear interpolation are exact.
				g.Values[g.idx(i, j, k)] = 2*w + 3*r + 0.5*s
			}
		}
	}
	return g
}

func flatCurve() photometry.TransmissionCurve {
	return photometry.TransmissionCurve{
		Wavelength: []float64{0.45, 0.5, 0.55, 0.6, 0.65},
		Throughput: []float64{0.2, 0.8, 1.0, 0.8, 0.2},
	}
}

func TestFilterTableReproducesGridNodes(t *testing.T) {
	g := syntheticGrid()
	curve := flatCurve()

	table, err := g.FilterTable(curve)
	if err != nil {
		t.Fatalf("FilterTable failed: %v", err)
	}

	// Expected folded value at a node: throughput-weighted mean of the
	// (linear) wavelength dependence plus the node's own contribution.
	weighted := make([]float64, len(curve.Wavelength))
	for i, w := range curve.Wavelength {
		weighted[i] = curve.Throughput[i] * 2 * w
	}
	foldedWavelengthTerm := integrate.Trapezoidal(curve.Wavelength, weighted) /
		integrate.Trapezoidal(curve.Wavelength, curve.Throughput)

	for _, r := range g.Radius {
		for _, s := range g.Sigma {
			want := foldedWavelengthTerm + 3*r + 0.5*s
			got, err := table.Eval(r, s)
			if err != nil {
				t.Fatalf("Eval(%g, %g) failed: %v", r, s, err)
			}
			if rel := math.Abs(got-want) / want; rel > 1e-6 {
				t.Errorf("Eval(%g, %g) = %g, want %g (rel err %g)", r, s, got, want, rel)
			}
		}
	}
}

func TestFilterTableBilinearInterior(t *testing.T) {
	g := syntheticGrid()
	table, err := g.FilterTable(flatCurve())
	if err != nil {
		t.Fatalf("FilterTable failed: %v", err)
	}

	// The synthetic surface is linear in radius and sigma, so bilinear
	// interpolation anywhere inside must be exact: compare an interior
	// point against the node-anchored closed form.
	atNode, err := table.Eval(0.5, 2.0)
	if err != nil {
		t.Fatalf("Eval at node failed: %v", err)
	}
	interior, err := table.Eval(0.75, 2.5)
	if err != nil {
		t.Fatalf("Eval interior failed: %v", err)
	}
	want := atNode + 3*(0.75-0.5) + 0.5*(2.5-2.0)
	if math.Abs(interior-want) > 1e-9 {
		t.Errorf("interior Eval = %g, want %g", interior, want)
	}
}

func TestFilterTableOutOfRangeFilter(t *testing.T) {
	g := syntheticGrid()
	curve := photometry.TransmissionCurve{
		Wavelength: []float64{0.9, 1.0, 1.1}, // extends past the grid's 1.0 um edge
		Throughput: []float64{0.5, 1.0, 0.5},
	}
	_, err := g.FilterTable(curve)
	if !errors.Is(err, dust.ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestSizeTableEvalOutOfBounds(t *testing.T) {
	g := syntheticGrid()
	table, err := g.FilterTable(flatCurve())
	if err != nil {
		t.Fatalf("FilterTable failed: %v", err)
	}

	for _, pt := range [][2]float64{{0.05, 2}, {3, 2}, {0.5, 1.4}, {0.5, 3.5}} {
		if _, err := table.Eval(pt[0], pt[1]); !errors.Is(err, dust.ErrOutOfBounds) {
			t.Errorf("Eval(%g, %g): got %v, want ErrOutOfBounds", pt[0], pt[1], err)
		}
	}

	// Axis endpoints remain evaluable.
	if _, err := table.Eval(0.1, 1.5); err != nil {
		t.Errorf("Eval at lower corner failed: %v", err)
	}
	if _, err := table.Eval(2.0, 3.0); err != nil {
		t.Errorf("Eval at upper corner failed: %v", err)
	}
}

func TestSpectrumTablePerChannel(t *testing.T) {
	g := syntheticGrid()
	channels := []float64{0.45, 0.55, 0.9}

	st, err := g.SpectrumTable(channels)
	if err != nil {
		t.Fatalf("SpectrumTable failed: %v", err)
	}
	if len(st.Channels) != len(channels) {
		t.Fatalf("got %d channel tables, want %d", len(st.Channels), len(channels))
	}

	for c, w := range channels {
		got, err := st.Channels[c].Eval(1.0, 2.0)
		if err != nil {
			t.Fatalf("channel %d Eval failed: %v", c, err)
		}
		want := 2*w + 3*1.0 + 0.5*2.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("channel %d (%g um): Eval = %g, want %g", c, w, got, want)
		}
	}
}

func TestSpectrumTableOutOfRange(t *testing.T) {
	g := syntheticGrid()
	if _, err := g.SpectrumTable([]float64{0.5, 1.2}); !errors.Is(err, dust.ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if _, err := g.SpectrumTable(nil); !errors.Is(err, dust.ErrDataUnavailable) {
		t.Fatalf("empty channel list: got %v, want ErrDataUnavailable", err)
	}
}
