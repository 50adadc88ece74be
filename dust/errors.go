package dust

import "errors"

// Sentinel errors shared across the opacity core. Callers match them with
// errors.Is after unwrapping.
var (
	// ErrInvalidParameter marks malformed distribution or grid parameters.
	// Caller error, never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrComputation marks an incomplete scattering solver result. Fatal for
	// the affected grid cell.
	ErrComputation = errors.New("incomplete scattering result")

	// ErrDataUnavailable marks missing external refractive-index or filter
	// data. Fatal for the affected composition or filter, not retried.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrOutOfBounds marks a lookup outside a tabulated grid range. Never
	// silently clamped or extrapolated.
	ErrOutOfBounds = errors.New("outside tabulated range")
)
