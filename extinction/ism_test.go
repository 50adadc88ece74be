package extinction

import (
	"errors"
	"math"
	"testing"

	"github.com/calderastro/dustopac/dust"
)

func TestISMZeroExtinction(t *testing.T) {
	wavelengths := []float64{0.3, 0.55, 1.0, 2.2, 5.0}
	got, err := ISM(0, 3.1, wavelengths)
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	for i, a := range got {
		if a != 0 {
			t.Errorf("A(%g um) = %g for A_V = 0, want 0", wavelengths[i], a)
		}
	}
}

func TestISMVBandAnchor(t *testing.T) {
	// At 0.55 um, y = 1/0.55 - 1.82 is nearly zero, so a ~ 1 and b ~ 0:
	// the law must return approximately A_V itself.
	got, err := ISM(1.0, 3.1, []float64{0.55})
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	if math.Abs(got[0]-1.0) > 0.05 {
		t.Errorf("A(0.55 um) = %g, want ~1.0", got[0])
	}
}

func TestISMBlueExceedsRed(t *testing.T) {
	got, err := ISM(1.0, 3.1, []float64{0.44, 0.55, 0.80, 2.2})
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i] >= got[i-1] {
			t.Errorf("extinction not decreasing toward the red: A[%d]=%g >= A[%d]=%g", i, got[i], i-1, got[i-1])
		}
	}
}

func TestISMBranchContinuity(t *testing.T) {
	// The optical/NIR polynomial and the IR power law meet at 1/lambda = 1.1.
	left, err := ISM(1.0, 3.1, []float64{1/1.1 + 1e-6})
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	right, err := ISM(1.0, 3.1, []float64{1/1.1 - 1e-6})
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	if diff := math.Abs(left[0] - right[0]); diff > 0.02 {
		t.Errorf("branch discontinuity at 1/lambda = 1.1: |%g - %g| = %g", left[0], right[0], diff)
	}
}

func TestISMScalesLinearlyWithAV(t *testing.T) {
	wavelengths := []float64{0.44, 1.25}
	one, err := ISM(1.0, 3.1, wavelengths)
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	three, err := ISM(3.0, 3.1, wavelengths)
	if err != nil {
		t.Fatalf("ISM failed: %v", err)
	}
	for i := range wavelengths {
		if math.Abs(three[i]-3*one[i]) > 1e-12 {
			t.Errorf("A(lambda) not linear in A_V at %g um", wavelengths[i])
		}
	}
}

func TestISMInvalidInputs(t *testing.T) {
	if _, err := ISM(1, 0, []float64{0.55}); !errors.Is(err, dust.ErrInvalidParameter) {
		t.Errorf("R_V = 0: got %v, want ErrInvalidParameter", err)
	}
	if _, err := ISM(1, 3.1, nil); !errors.Is(err, dust.ErrInvalidParameter) {
		t.Errorf("no wavelengths: got %v, want ErrInvalidParameter", err)
	}
	if _, err := ISM(1, 3.1, []float64{-0.5}); !errors.Is(err, dust.ErrInvalidParameter) {
		t.Errorf("negative wavelength: got %v, want ErrInvalidParameter", err)
	}
}
