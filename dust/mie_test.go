package dust

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMieEfficienciesNonAbsorbingSphere(t *testing.T) {
	// With k = 0 no energy is absorbed: Qext must equal Qsca.
	for _, x := range []float64{0.1, 1, 5, 20} {
		diameter := 1000.0
		wavelength := math.Pi * diameter / x
		res := MieEfficiencies(complex(1.5, 0), wavelength, diameter)

		require.Contains(t, res, KeyQext, "x=%g", x)
		assert.InDelta(t, res[KeyQext], res[KeyQsca], 1e-9*math.Abs(res[KeyQext])+1e-12,
			"Qext != Qsca for non-absorbing sphere at x=%g", x)
		assert.GreaterOrEqual(t, res[KeyQext], 0.0, "x=%g", x)
	}
}

func TestMieEfficienciesAbsorbingSphere(t *testing.T) {
	res := MieEfficiencies(complex(1.7, 0.5), 550, 800)
	require.Contains(t, res, KeyQext)

	assert.Greater(t, res[KeyQabs], 0.0, "absorbing sphere must have Qabs > 0")
	assert.Greater(t, res[KeyQext], res[KeyQsca])
	assert.InDelta(t, res[KeyQext]-res[KeyQsca], res[KeyQabs], 1e-12)
	// Forward-scattering spheres of this size have positive asymmetry.
	assert.Greater(t, res[KeyAsymmetry], 0.0)
	assert.Less(t, res[KeyAsymmetry], 1.0)
}

func TestMieGeometricOpticsLimit(t *testing.T) {
	// For x >> 1 the extinction efficiency approaches 2 (extinction paradox).
	diameter := 40000.0 // nm
	wavelength := 550.0
	res := MieEfficiencies(complex(1.5, 0.01), wavelength, diameter)
	require.Contains(t, res, KeyQext)
	assert.InDelta(t, 2.0, res[KeyQext], 0.3, "Qext far from 2 in geometric limit")
}

func TestMieRayleighScaling(t *testing.T) {
	// Deep in the Rayleigh regime Qsca scales as x^4.
	m := complex(1.5, 0)
	q1 := MieEfficiencies(m, math.Pi*100/0.01, 100)[KeyQsca]
	q2 := MieEfficiencies(m, math.Pi*100/0.02, 100)[KeyQsca]
	ratio := q2 / q1
	assert.InDelta(t, 16, ratio, 0.5, "Qsca(2x)/Qsca(x) should be ~16 in Rayleigh regime")
}

func TestMieDegenerateInputs(t *testing.T) {
	if res := MieEfficiencies(complex(1.5, 0), 550, 0); len(res) != 0 {
		t.Errorf("zero diameter should yield empty result, got %v", res)
	}
	if res := MieEfficiencies(complex(1.5, 0), 0, 100); len(res) != 0 {
		t.Errorf("zero wavelength should yield empty result, got %v", res)
	}
}

func TestSingleGrainEfficiencyRequiresQext(t *testing.T) {
	_, err := SingleGrainEfficiency(0, 0.55, 1.5, 0)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("got %v, want ErrComputation for degenerate grain", err)
	}

	q, err := SingleGrainEfficiency(0.5, 0.55, 1.5, 0.01)
	if err != nil {
		t.Fatalf("SingleGrainEfficiency failed: %v", err)
	}
	if q <= 0 {
		t.Errorf("Qext = %g, want positive", q)
	}
}

func TestEnsembleCrossSectionNonNegative(t *testing.T) {
	dist, err := LogNormal(0.3, 2, 50)
	if err != nil {
		t.Fatalf("LogNormal failed: %v", err)
	}

	for _, nk := range [][2]float64{{1, 0}, {1.5, 0}, {1.6, 0.001}, {2.5, 1.5}, {3, 5}} {
		c, err := EnsembleCrossSection(dist, 0.55, nk[0], nk[1])
		if err != nil {
			t.Fatalf("EnsembleCrossSection(n=%g, k=%g) failed: %v", nk[0], nk[1], err)
		}
		if c < 0 {
			t.Errorf("cross section negative for n=%g k=%g: %g", nk[0], nk[1], c)
		}
	}
}

func TestEnsembleCrossSectionScalesWithGrainArea(t *testing.T) {
	// Two populations of large grains: quadrupling the radius should raise
	// the ensemble cross section by roughly the area ratio, since Qext ~ 2
	// for both.
	small, err := PowerLaw(0, 2, 2.2, 20)
	require.NoError(t, err)
	large, err := PowerLaw(0, 8, 8.8, 20)
	require.NoError(t, err)

	cSmall, err := EnsembleCrossSection(small, 0.55, 1.5, 0.1)
	require.NoError(t, err)
	cLarge, err := EnsembleCrossSection(large, 0.55, 1.5, 0.1)
	require.NoError(t, err)

	assert.InDelta(t, 16, cLarge/cSmall, 3, "cross section should scale with grain area")
}
