package dust

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kind identifies the functional form of a size distribution.
type Kind int

const (
	// KindLogNormal is the log-normal form of Ackerman & Marley (2001), Eq. 9.
	KindLogNormal Kind = iota
	// KindPowerLaw is dn/dr ∝ r^exponent between fixed radius bounds.
	KindPowerLaw
)

// String returns the distribution kind name.
func (k Kind) String() string {
	switch k {
	case KindLogNormal:
		return "log-normal"
	case KindPowerLaw:
		return "power-law"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SizeDistribution holds a binned grain size distribution. The three slices
// are parallel: Radii are bin-center grain radii (µm) and are strictly
// increasing, Widths are the positive bin widths (µm), and Counts is the
// number of grains per radius bin. A distribution is immutable once
// generated.
type SizeDistribution struct {
	Kind   Kind
	Radii  []float64
	Widths []float64
	Counts []float64
}

// NumGrains returns the width-weighted total grain count. For power-law
// distributions this is 1 by construction; for log-normal distributions it
// is close to, but not exactly, 1 (see LogNormal).
func (d *SizeDistribution) NumGrains() float64 {
	var total float64
	for i := range d.Counts {
		total += d.Counts[i] * d.Widths[i]
	}
	return total
}

// PeakRadius returns the bin-center radius with the highest grain count.
func (d *SizeDistribution) PeakRadius() float64 {
	peak := 0
	for i := range d.Counts {
		if d.Counts[i] > d.Counts[peak] {
			peak = i
		}
	}
	return d.Radii[peak]
}

// logNormalDensity evaluates the un-normalized log-normal dn/dr at radius r.
func logNormalDensity(r, radiusG, lnSigmaG float64) float64 {
	lr := math.Log(r / radiusG)
	return math.Exp(-lr*lr/(2*lnSigmaG*lnSigmaG)) / (r * math.Sqrt(2*math.Pi) * lnSigmaG)
}

// LogNormal returns a log-normal size distribution with geometric mean
// radius radiusG (µm) and geometric standard deviation sigmaG.
//
// The generator scans 1000 log-spaced radii across 40 decades, keeps the
// sub-range where the analytic density exceeds 0.1% of its peak, and places
// nBins log-spaced bins over exactly that sub-range. The density is sampled
// at bin centers and is NOT renormalized to a unit grain count: the
// width-weighted sum comes out close to 1 only because the retained
// sub-range captures nearly all of the analytic distribution. Callers that
// need an exact single-grain normalization must divide by NumGrains. This
// asymmetry with PowerLaw is intentional and mirrors the tabulations the
// persisted grids were produced from.
func LogNormal(radiusG, sigmaG float64, nBins int) (*SizeDistribution, error) {
	if !(radiusG > 0) || math.IsInf(radiusG, 0) {
		return nil, fmt.Errorf("%w: radius_g must be positive, got %g", ErrInvalidParameter, radiusG)
	}
	if !(sigmaG > 1) || math.IsInf(sigmaG, 0) {
		return nil, fmt.Errorf("%w: sigma_g must be greater than 1, got %g", ErrInvalidParameter, sigmaG)
	}
	if nBins <= 0 {
		return nil, fmt.Errorf("%w: n_bins must be positive, got %d", ErrInvalidParameter, nBins)
	}

	lnSigmaG := math.Log(sigmaG)

	// Coarse scan across a deliberately huge radius range so the full
	// distribution is captured for any radius_g.
	rTest := make([]float64, 1000)
	floats.LogSpan(rTest, 1e-20, 1e20)

	dens := make([]float64, len(rTest))
	peak := 0.0
	for i, r := range rTest {
		dens[i] = logNormalDensity(r, radiusG, lnSigmaG)
		if dens[i] > peak {
			peak = dens[i]
		}
	}

	// Keep the radii where dn/dr exceeds 0.1% of the peak.
	first, last := -1, -1
	for i := range dens {
		if dens[i] > 1e-3*peak {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || first == last {
		return nil, fmt.Errorf("%w: degenerate log-normal support for radius_g=%g sigma_g=%g",
			ErrInvalidParameter, radiusG, sigmaG)
	}

	edges := make([]float64, nBins+1)
	floats.LogSpan(edges, rTest[first], rTest[last])

	radii, widths := binCenters(edges)

	counts := make([]float64, nBins)
	for i, r := range radii {
		counts[i] = logNormalDensity(r, radiusG, lnSigmaG)
	}

	return &SizeDistribution{Kind: KindLogNormal, Radii: radii, Widths: widths, Counts: counts}, nil
}

// PowerLaw returns a power-law size distribution dn/dr ∝ r^exponent with
// nBins log-spaced bins between radiusMin and radiusMax (µm). The counts
// are renormalized so the width-weighted sum equals exactly one grain.
func PowerLaw(exponent, radiusMin, radiusMax float64, nBins int) (*SizeDistribution, error) {
	if !(radiusMin > 0) {
		return nil, fmt.Errorf("%w: radius_min must be positive, got %g", ErrInvalidParameter, radiusMin)
	}
	if radiusMax <= radiusMin || math.IsInf(radiusMax, 0) {
		return nil, fmt.Errorf("%w: radius_max must exceed radius_min, got [%g, %g]",
			ErrInvalidParameter, radiusMin, radiusMax)
	}
	if nBins <= 0 {
		return nil, fmt.Errorf("%w: n_bins must be positive, got %d", ErrInvalidParameter, nBins)
	}
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("%w: exponent must be finite, got %g", ErrInvalidParameter, exponent)
	}

	edges := make([]float64, nBins+1)
	floats.LogSpan(edges, radiusMin, radiusMax)

	radii, widths := binCenters(edges)

	counts := make([]float64, nBins)
	var total float64
	for i, r := range radii {
		counts[i] = math.Pow(r, exponent)
		total += counts[i] * widths[i]
	}
	for i := range counts {
		counts[i] /= total
	}

	return &SizeDistribution{Kind: KindPowerLaw, Radii: radii, Widths: widths, Counts: counts}, nil
}

// binCenters converts bin edges into bin-center radii and bin widths.
func binCenters(edges []float64) (radii, widths []float64) {
	n := len(edges) - 1
	radii = make([]float64, n)
	widths = make([]float64, n)
	for i := 0; i < n; i++ {
		radii[i] = (edges[i] + edges[i+1]) / 2
		widths[i] = edges[i+1] - edges[i]
	}
	return radii, widths
}
