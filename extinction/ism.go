// Package extinction turns dust cross sections and empirical laws into
// magnitudes of extinction and reddening for filters and spectra.
package extinction

import (
	"fmt"
	"math"

	"github.com/calderastro/dustopac/dust"
)

// ISM evaluates the Cardelli, Clayton & Mathis (1989) optical/IR extinction
// law at each wavelength (µm), returning A(λ) in magnitudes for a V-band
// extinction avMag and total-to-selective ratio rv = A_V / E(B-V).
//
// For 1/λ ≥ 1.1 (optical/NIR) the seventh-order polynomial pair in
// y = 1/λ − 1.82 applies; for 1/λ < 1.1 (IR) the 0.574 x^1.61 power-law
// pair applies. Pure function, no I/O.
func ISM(avMag, rv float64, wavelengthsUm []float64) ([]float64, error) {
	if rv == 0 || math.IsNaN(rv) {
		return nil, fmt.Errorf("%w: R_V must be non-zero, got %g", dust.ErrInvalidParameter, rv)
	}
	if len(wavelengthsUm) == 0 {
		return nil, fmt.Errorf("%w: no wavelengths supplied", dust.ErrInvalidParameter)
	}

	out := make([]float64, len(wavelengthsUm))
	for i, w := range wavelengthsUm {
		if !(w > 0) {
			return nil, fmt.Errorf("%w: wavelength must be positive, got %g", dust.ErrInvalidParameter, w)
		}
		x := 1 / w

		var a, b float64
		if x < 1.1 {
			p := math.Pow(x, 1.61)
			a = 0.574 * p
			b = -0.527 * p
		} else {
			y := x - 1.82
			a = 1 + y*(0.17699+y*(-0.50447+y*(-0.02427+y*(0.72085+y*(0.01979+y*(-0.77530+y*0.32999))))))
			b = y * (1.41338 + y*(2.28305+y*(1.07233+y*(-5.38434+y*(-0.62251+y*(5.30260+y*-2.09002))))))
		}
		out[i] = avMag * (a + b/rv)
	}
	return out, nil
}
