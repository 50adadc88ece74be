package optical

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/interp"

	"github.com/calderastro/dustopac/dust"
	"github.com/calderastro/dustopac/photometry"
)

// SizeTable is a 2-D cross-section interpolant over the grid's
// (radius_g, sigma_g) axes, with the wavelength axis already collapsed.
// Evaluation is bilinear; lookups outside the axis ranges fail instead of
// extrapolating.
type SizeTable struct {
	Radius []float64
	Sigma  []float64
	// Values is row-major [radius][sigma] (µm²).
	Values []float64
}

// FilterTable is the cross-section table of one photometric filter,
// obtained by folding the grid through the filter's transmission curve.
type FilterTable = SizeTable

// SpectrumTable holds one 2-D interpolant per spectral channel.
type SpectrumTable struct {
	// WavelengthUm is the channel wavelength axis the table was built for.
	WavelengthUm []float64
	Channels     []*SizeTable
}

// Eval returns the bilinearly interpolated cross section at
// (radiusG, sigmaG). Points outside the tabulated axes fail with
// dust.ErrOutOfBounds.
func (t *SizeTable) Eval(radiusG, sigmaG float64) (float64, error) {
	j, fj, err := locate(t.Radius, radiusG, "radius_g")
	if err != nil {
		return 0, err
	}
	k, fk, err := locate(t.Sigma, sigmaG, "sigma_g")
	if err != nil {
		return 0, err
	}

	ns := len(t.Sigma)
	v00 := t.Values[j*ns+k]
	v01 := t.Values[j*ns+k+1]
	v10 := t.Values[(j+1)*ns+k]
	v11 := t.Values[(j+1)*ns+k+1]

	return v00*(1-fj)*(1-fk) + v01*(1-fj)*fk + v10*fj*(1-fk) + v11*fj*fk, nil
}

// locate finds the axis interval containing v and the fractional position
// within it. The last axis value maps onto the final interval with
// fraction 1 so both endpoints are evaluable.
func locate(axis []float64, v float64, name string) (int, float64, error) {
	last := len(axis) - 1
	if v < axis[0] || v > axis[last] {
		return 0, 0, fmt.Errorf("%w: %s=%g outside grid [%g, %g]",
			dust.ErrOutOfBounds, name, v, axis[0], axis[last])
	}
	i := sort.SearchFloat64s(axis, v)
	if i > 0 {
		i--
	}
	if i == last {
		i--
	}
	frac := (v - axis[i]) / (axis[i+1] - axis[i])
	return i, frac, nil
}

// FilterTable folds the grid through a filter transmission curve: for every
// (radius_g, sigma_g) node the cross-section curve is linearly interpolated
// onto the filter's wavelength support and averaged with trapezoidal
// throughput weighting. The filter support must lie within the grid's
// wavelength range; the tabulations are not trustworthy outside it, so the
// fold fails rather than extrapolate.
func (g *Grid) FilterTable(curve photometry.TransmissionCurve) (*FilterTable, error) {
	if len(curve.Wavelength) < 2 {
		return nil, fmt.Errorf("%w: transmission curve has %d samples", dust.ErrDataUnavailable, len(curve.Wavelength))
	}
	if err := g.checkWavelengthSupport(curve.Wavelength); err != nil {
		return nil, err
	}

	nr, ns := len(g.Radius), len(g.Sigma)
	table := &FilterTable{
		Radius: g.Radius,
		Sigma:  g.Sigma,
		Values: make([]float64, nr*ns),
	}

	den := integrate.Trapezoidal(curve.Wavelength, curve.Throughput)

	column := make([]float64, len(g.Wavelength))
	onFilter := make([]float64, len(curve.Wavelength))
	var pl interp.PiecewiseLinear
	for j := 0; j < nr; j++ {
		for k := 0; k < ns; k++ {
			column = g.wavelengthColumn(j, k, column)
			if err := pl.Fit(g.Wavelength, column); err != nil {
				return nil, fmt.Errorf("wavelength interpolant fit failed: %w", err)
			}
			for i, w := range curve.Wavelength {
				onFilter[i] = curve.Throughput[i] * pl.Predict(w)
			}
			num := integrate.Trapezoidal(curve.Wavelength, onFilter)
			table.Values[j*ns+k] = num / den
		}
	}
	return table, nil
}

// SpectrumTable interpolates the grid onto each spectral channel's
// wavelength, without a throughput fold, yielding one 2-D interpolant per
// channel. Same out-of-bounds policy as FilterTable.
func (g *Grid) SpectrumTable(wavelengthsUm []float64) (*SpectrumTable, error) {
	if len(wavelengthsUm) == 0 {
		return nil, fmt.Errorf("%w: spectrum has no channels", dust.ErrDataUnavailable)
	}
	if err := g.checkWavelengthSupport(wavelengthsUm); err != nil {
		return nil, err
	}

	nr, ns := len(g.Radius), len(g.Sigma)
	st := &SpectrumTable{
		WavelengthUm: wavelengthsUm,
		Channels:     make([]*SizeTable, len(wavelengthsUm)),
	}
	for c := range st.Channels {
		st.Channels[c] = &SizeTable{
			Radius: g.Radius,
			Sigma:  g.Sigma,
			Values: make([]float64, nr*ns),
		}
	}

	column := make([]float64, len(g.Wavelength))
	var pl interp.PiecewiseLinear
	for j := 0; j < nr; j++ {
		for k := 0; k < ns; k++ {
			column = g.wavelengthColumn(j, k, column)
			if err := pl.Fit(g.Wavelength, column); err != nil {
				return nil, fmt.Errorf("wavelength interpolant fit failed: %w", err)
			}
			for c, w := range wavelengthsUm {
				st.Channels[c].Values[j*ns+k] = pl.Predict(w)
			}
		}
	}
	return st, nil
}

// checkWavelengthSupport verifies every wavelength lies within the grid's
// tabulated wavelength axis.
func (g *Grid) checkWavelengthSupport(wavelengthsUm []float64) error {
	lo, hi := g.Wavelength[0], g.Wavelength[len(g.Wavelength)-1]
	for _, w := range wavelengthsUm {
		if w < lo || w > hi {
			return fmt.Errorf("%w: wavelength %g um outside grid [%g, %g]", dust.ErrOutOfBounds, w, lo, hi)
		}
	}
	return nil
}
