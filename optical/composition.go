package optical

import (
	"fmt"
	"strings"

	"github.com/calderastro/dustopac/dust"
)

// Composition is the grain material. The set is closed: unsupported
// material names are rejected when parsed, not at grid-build time.
type Composition int

const (
	MgSiO3 Composition = iota
	Fe
)

// String returns the canonical material name.
func (c Composition) String() string {
	switch c {
	case MgSiO3:
		return "MgSiO3"
	case Fe:
		return "Fe"
	}
	return fmt.Sprintf("Composition(%d)", int(c))
}

// storeKey is the lowercase dataset-path segment for the material.
func (c Composition) storeKey() string { return strings.ToLower(c.String()) }

// ParseComposition resolves a material name, case-insensitively.
func ParseComposition(s string) (Composition, error) {
	switch strings.ToLower(s) {
	case "mgsio3":
		return MgSiO3, nil
	case "fe":
		return Fe, nil
	}
	return 0, fmt.Errorf("%w: unsupported composition %q (want MgSiO3 or Fe)", dust.ErrInvalidParameter, s)
}

// Structure is the grain lattice structure.
type Structure int

const (
	Crystalline Structure = iota
	Amorphous
)

// String returns the structure name.
func (s Structure) String() string {
	switch s {
	case Crystalline:
		return "crystalline"
	case Amorphous:
		return "amorphous"
	}
	return fmt.Sprintf("Structure(%d)", int(s))
}

// ParseStructure resolves a structure name, case-insensitively.
func ParseStructure(s string) (Structure, error) {
	switch strings.ToLower(s) {
	case "crystalline":
		return Crystalline, nil
	case "amorphous":
		return Amorphous, nil
	}
	return 0, fmt.Errorf("%w: unsupported structure %q (want crystalline or amorphous)", dust.ErrInvalidParameter, s)
}
