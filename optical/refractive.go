package optical

import (
	"fmt"
	"math"

	"github.com/calderastro/dustopac/dust"
)

// IndexRecord is one tabulated complex refractive index sample.
type IndexRecord struct {
	WavelengthUm float64
	N            float64
	K            float64
}

// IndexTable is a wavelength-ordered refractive index table for one
// material (or one crystal axis of it).
type IndexTable []IndexRecord

// Nearest returns the record whose tabulated wavelength is closest to
// wavelengthUm. This mirrors how the reference tabulations are consumed:
// a band-mean wavelength snaps onto the coarse laboratory grid.
func (t IndexTable) Nearest(wavelengthUm float64) IndexRecord {
	best := 0
	bestDist := math.Abs(t[0].WavelengthUm - wavelengthUm)
	for i := 1; i < len(t); i++ {
		if d := math.Abs(t[i].WavelengthUm - wavelengthUm); d < bestDist {
			best, bestDist = i, d
		}
	}
	return t[best]
}

// At linearly interpolates (n, k) at wavelengthUm. Wavelengths outside the
// tabulated range fail with dust.ErrOutOfBounds.
func (t IndexTable) At(wavelengthUm float64) (n, k float64, err error) {
	if len(t) < 2 {
		return 0, 0, fmt.Errorf("%w: refractive index table has %d records", dust.ErrDataUnavailable, len(t))
	}
	first, last := t[0].WavelengthUm, t[len(t)-1].WavelengthUm
	// A relative tolerance at the endpoints absorbs round-off from
	// log-spaced axis construction.
	const eps = 1e-9
	if wavelengthUm < first*(1-eps) || wavelengthUm > last*(1+eps) {
		return 0, 0, fmt.Errorf("%w: wavelength %g um outside index table [%g, %g]",
			dust.ErrOutOfBounds, wavelengthUm, first, last)
	}
	if wavelengthUm < first {
		wavelengthUm = first
	} else if wavelengthUm > last {
		wavelengthUm = last
	}
	hi := 1
	for hi < len(t)-1 && t[hi].WavelengthUm < wavelengthUm {
		hi++
	}
	lo := hi - 1
	frac := (wavelengthUm - t[lo].WavelengthUm) / (t[hi].WavelengthUm - t[lo].WavelengthUm)
	n = t[lo].N + frac*(t[hi].N-t[lo].N)
	k = t[lo].K + frac*(t[hi].K-t[lo].K)
	return n, k, nil
}

// IndexSource supplies refractive index tables per composition and
// structure. Crystalline MgSiO3 yields three tables, one per crystal axis;
// downstream code averages the cross sections of the axes. Every other
// combination yields a single table. A missing combination fails with
// dust.ErrDataUnavailable naming the key.
type IndexSource interface {
	Tables(c Composition, s Structure) ([]IndexTable, error)
}

// BuiltinIndices serves the embedded laboratory tables for the supported
// compositions, covering 0.2-10 um.
type BuiltinIndices struct{}

// Tables returns the embedded tables for the combination.
func (BuiltinIndices) Tables(c Composition, s Structure) ([]IndexTable, error) {
	switch {
	case c == MgSiO3 && s == Crystalline:
		return mgsio3CrystallineAxes[:], nil
	case c == MgSiO3 && s == Amorphous:
		return []IndexTable{mgsio3Amorphous}, nil
	case c == Fe && s == Crystalline:
		return []IndexTable{feCrystalline}, nil
	case c == Fe && s == Amorphous:
		return []IndexTable{feAmorphous}, nil
	}
	return nil, fmt.Errorf("%w: refractive index for %s/%s", dust.ErrDataUnavailable, c, s)
}
