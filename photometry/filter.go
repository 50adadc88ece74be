// Package photometry holds the filter and spectrum collaborator surfaces of
// the opacity core, plus built-in generic Bessell transmission curves so the
// library works without a remote filter service.
package photometry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/calderastro/dustopac/dust"
)

// TransmissionCurve is a filter transmission profile. Wavelength (µm) is
// strictly increasing; Throughput is the unitless transmission at each
// sample.
type TransmissionCurve struct {
	Wavelength []float64
	Throughput []float64
}

// MeanWavelength returns the throughput-weighted mean wavelength (µm) of
// the curve, using trapezoidal integration for both moments.
func (c TransmissionCurve) MeanWavelength() float64 {
	weighted := make([]float64, len(c.Wavelength))
	for i := range weighted {
		weighted[i] = c.Wavelength[i] * c.Throughput[i]
	}
	num := integrate.Trapezoidal(c.Wavelength, weighted)
	den := integrate.Trapezoidal(c.Wavelength, c.Throughput)
	return num / den
}

// FilterSource resolves a filter identifier into its transmission curve.
// Unknown identifiers fail with dust.ErrDataUnavailable naming the filter.
type FilterSource interface {
	Filter(name string) (TransmissionCurve, error)
}

// BuiltinFilters serves the embedded generic Bessell curves.
type BuiltinFilters struct{}

// Filter returns the transmission curve for name, e.g. "Generic/Bessell.V".
func (BuiltinFilters) Filter(name string) (TransmissionCurve, error) {
	curve, ok := bessellCurves[name]
	if !ok {
		return TransmissionCurve{}, fmt.Errorf("%w: filter %q", dust.ErrDataUnavailable, name)
	}
	return curve, nil
}

// Names returns the sorted identifiers of the embedded filters.
func (BuiltinFilters) Names() []string {
	names := make([]string, 0, len(bessellCurves))
	for name := range bessellCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
