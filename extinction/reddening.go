package extinction

import (
	"context"
	"fmt"
	"log"

	"github.com/calderastro/dustopac/dust"
	"github.com/calderastro/dustopac/optical"
	"github.com/calderastro/dustopac/photometry"
)

// magPerOpticalDepth converts an optical depth into magnitudes of
// extinction: 2.5 log10(e).
const magPerOpticalDepth = 1.0857362047581294

// reddeningSigmaG is the geometric standard deviation of the log-normal
// grain population assumed by Reddening (Ackerman & Marley 2001).
const reddeningSigmaG = 2.0

// reddeningSizeBins is the distribution resolution used by Reddening.
const reddeningSizeBins = 100

// vBandFilter is always included in InterpolateDust table sets: the
// downstream sampler converts fitted V-band extinction into the other
// bands, so its table must exist.
const vBandFilter = "Generic/Bessell.V"

// Calculator derives per-filter extinction from dust grain populations. It
// combines the filter service, the refractive-index source, and the cached
// cross-section grids.
type Calculator struct {
	Filters photometry.FilterSource
	Indices optical.IndexSource
	Builder *optical.GridBuilder
}

// Reddening converts a fitted extinction in one filter into the extinction
// of a filter pair, assuming a single log-normal grain population with
// sigma_g = 2 and geometric mean radius radiusG (µm) produces the
// extinction in all bands. The grain column density implied by
// (refFilter, refMag) is N = A_ref / (2.5 log10(e) σ_ref); each requested
// band then gets A_i = 2.5 log10(e) σ_i N. This is a deliberate
// single-population simplification, not a radiative-transfer solution.
func (c *Calculator) Reddening(pair [2]string, refFilter string, refMag float64, comp optical.Composition, structure optical.Structure, radiusG float64) (magA, magB float64, err error) {
	dist, err := dust.LogNormal(radiusG, reddeningSigmaG, reddeningSizeBins)
	if err != nil {
		return 0, 0, err
	}

	tables, err := c.Indices.Tables(comp, structure)
	if err != nil {
		return 0, 0, err
	}

	crossSections := make(map[string]float64, 3)
	for _, name := range []string{refFilter, pair[0], pair[1]} {
		if _, ok := crossSections[name]; ok {
			continue
		}
		curve, err := c.Filters.Filter(name)
		if err != nil {
			return 0, 0, err
		}
		meanWavel := curve.MeanWavelength()

		// Snap to the nearest tabulated index record and average the cross
		// section over the crystal-axis tables.
		var sigma float64
		for _, table := range tables {
			rec := table.Nearest(meanWavel)
			cExt, err := dust.EnsembleCrossSection(dist, rec.WavelengthUm, rec.N, rec.K)
			if err != nil {
				return 0, 0, err
			}
			sigma += cExt / float64(len(tables))
		}
		crossSections[name] = sigma
	}

	refSigma := crossSections[refFilter]
	if refSigma <= 0 {
		return 0, 0, fmt.Errorf("%w: zero reference cross section for %s", dust.ErrComputation, refFilter)
	}
	column := refMag / (magPerOpticalDepth * refSigma)

	return magPerOpticalDepth * crossSections[pair[0]] * column,
		magPerOpticalDepth * crossSections[pair[1]] * column,
		nil
}

// DustTables is the batch interpolation product consumed by the posterior
// samplers: one folded table per filter, one per-channel table set per
// spectrum, and the grid's size-distribution axes.
type DustTables struct {
	Filters map[string]*optical.FilterTable
	Spectra map[string]*optical.SpectrumTable
	// Radius and Sigma are the grid's size-parameter axes (µm, unitless).
	Radius []float64
	Sigma  []float64
}

// InterpolateDust builds cross-section interpolants for each filter and
// spectrum over the shared MgSiO3/crystalline grid. The V-band filter is
// always included. Spectrum names must have wavelength data in specData.
func (c *Calculator) InterpolateDust(ctx context.Context, filters, spectra []string, specData map[string]photometry.Spectrum) (*DustTables, error) {
	grid, err := c.Builder.EnsureGrid(ctx, optical.MgSiO3, optical.Crystalline)
	if err != nil {
		return nil, err
	}

	log.Printf("[InterpolateDust] grid boundaries: wavelength %.2f - %.2f um, radius %.2e - %.2e um, sigma %.2f - %.2f",
		grid.Wavelength[0], grid.Wavelength[len(grid.Wavelength)-1],
		grid.Radius[0], grid.Radius[len(grid.Radius)-1],
		grid.Sigma[0], grid.Sigma[len(grid.Sigma)-1])

	names := filters
	if !containsString(names, vBandFilter) {
		names = append(append([]string{}, filters...), vBandFilter)
	}

	out := &DustTables{
		Filters: make(map[string]*optical.FilterTable, len(names)),
		Spectra: make(map[string]*optical.SpectrumTable, len(spectra)),
		Radius:  grid.Radius,
		Sigma:   grid.Sigma,
	}

	for _, name := range names {
		curve, err := c.Filters.Filter(name)
		if err != nil {
			return nil, err
		}
		table, err := grid.FilterTable(curve)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", name, err)
		}
		out.Filters[name] = table
	}

	for _, name := range spectra {
		spec, ok := specData[name]
		if !ok {
			return nil, fmt.Errorf("%w: spectrum %q has no wavelength data", dust.ErrDataUnavailable, name)
		}
		table, err := grid.SpectrumTable(spec.Wavelength)
		if err != nil {
			return nil, fmt.Errorf("spectrum %s: %w", name, err)
		}
		out.Spectra[name] = table
	}

	return out, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
