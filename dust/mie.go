package dust

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Efficiency result keys produced by MieEfficiencies.
const (
	KeyQext      = "Qext"
	KeyQsca      = "Qsca"
	KeyQabs      = "Qabs"
	KeyQback     = "Qback"
	KeyAsymmetry = "g"
)

// MieEfficiencies computes the Mie efficiencies of a homogeneous sphere with
// complex refractive index m = n + ik. Wavelength and diameter are both in
// nanometers; the efficiencies are unitless. The result always carries Qext,
// Qsca, Qabs, Qback and the asymmetry parameter g for a physical size
// parameter; for a degenerate one (zero wavelength or diameter) the returned
// map is empty and the caller decides how to fail.
//
// The series is the Bohren & Huffman (1983) solution: the logarithmic
// derivative D_n by downward recurrence, the Riccati-Bessel functions by
// upward recurrence, truncated at nmax = round(2 + x + 4 x^(1/3)).
func MieEfficiencies(m complex128, wavelengthNm, diameterNm float64) map[string]float64 {
	res := make(map[string]float64, 5)

	if wavelengthNm <= 0 || diameterNm <= 0 {
		return res
	}
	x := math.Pi * diameterNm / wavelengthNm
	if x <= 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return res
	}

	nmax := int(math.Round(2 + x + 4*math.Cbrt(x)))
	mx := m * complex(x, 0)
	nmx := int(math.Round(math.Max(float64(nmax), cmplx.Abs(mx)) + 16))

	// Logarithmic derivative D_n(mx) by downward recurrence, seeded at zero
	// well above the truncation order.
	d := make([]complex128, nmx+1)
	for i := nmx; i >= 1; i-- {
		ci := complex(float64(i), 0)
		d[i-1] = ci/mx - 1/(d[i]+ci/mx)
	}

	an := make([]complex128, nmax+1)
	bn := make([]complex128, nmax+1)

	// Riccati-Bessel seeds: psi_{-1}, psi_0 and chi_{-1}, chi_0.
	psi0, psi1 := math.Cos(x), math.Sin(x)
	chi0, chi1 := -math.Sin(x), math.Cos(x)

	for n := 1; n <= nmax; n++ {
		fn := float64(n)
		psi := (2*fn-1)/x*psi1 - psi0
		chi := (2*fn-1)/x*chi1 - chi0

		xi := complex(psi, -chi)
		xi1 := complex(psi1, -chi1)

		da := d[n]/m + complex(fn/x, 0)
		db := d[n]*m + complex(fn/x, 0)

		an[n] = (da*complex(psi, 0) - complex(psi1, 0)) / (da*xi - xi1)
		bn[n] = (db*complex(psi, 0) - complex(psi1, 0)) / (db*xi - xi1)

		psi0, psi1 = psi1, psi
		chi0, chi1 = chi1, chi
	}

	var qext, qsca, gSum float64
	var back complex128
	sign := 1.0
	for n := 1; n <= nmax; n++ {
		fn := float64(n)
		w := 2*fn + 1
		qext += w * real(an[n]+bn[n])
		qsca += w * (real(an[n])*real(an[n]) + imag(an[n])*imag(an[n]) +
			real(bn[n])*real(bn[n]) + imag(bn[n])*imag(bn[n]))
		sign = -sign
		back += complex(w*sign, 0) * (an[n] - bn[n])

		gSum += w / (fn * (fn + 1)) * real(an[n]*cmplx.Conj(bn[n]))
		if n < nmax {
			gSum += fn * (fn + 2) / (fn + 1) *
				real(an[n]*cmplx.Conj(an[n+1])+bn[n]*cmplx.Conj(bn[n+1]))
		}
	}

	x2 := x * x
	qext *= 2 / x2
	qsca *= 2 / x2

	res[KeyQext] = qext
	res[KeyQsca] = qsca
	res[KeyQabs] = qext - qsca
	ab := cmplx.Abs(back)
	res[KeyQback] = ab * ab / x2
	if qsca != 0 {
		res[KeyAsymmetry] = 4 / (x2 * qsca) * gSum
	} else {
		res[KeyAsymmetry] = 0
	}
	return res
}

// SingleGrainEfficiency returns the extinction efficiency Qext of one grain.
// Radius and wavelength are in micron; they are converted to the solver's
// nanometer/diameter convention internally. A solver result without Qext is
// a fatal computation error, never defaulted.
func SingleGrainEfficiency(radiusUm, wavelengthUm, n, k float64) (float64, error) {
	res := MieEfficiencies(complex(n, k), wavelengthUm*1e3, 2*radiusUm*1e3)
	qext, ok := res[KeyQext]
	if !ok {
		return 0, fmt.Errorf("%w: Qext missing for radius=%g um wavelength=%g um",
			ErrComputation, radiusUm, wavelengthUm)
	}
	return qext, nil
}

// EnsembleCrossSection integrates π r² Qext over a size distribution,
// returning the ensemble-averaged extinction cross section (µm²) of the
// grain population at one wavelength. The quadrature is a plain per-bin
// weighted sum; the distribution's bin count is the accuracy knob.
func EnsembleCrossSection(dist *SizeDistribution, wavelengthUm, n, k float64) (float64, error) {
	var cExt float64
	for i, r := range dist.Radii {
		qext, err := SingleGrainEfficiency(r, wavelengthUm, n, k)
		if err != nil {
			return 0, err
		}
		cExt += math.Pi * r * r * qext * dist.Counts[i] * dist.Widths[i]
	}
	return cExt, nil
}
