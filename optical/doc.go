// Package optical builds and serves dust extinction cross-section grids.
//
// A GridBuilder evaluates the Mie ensemble cross section over a fixed
// wavelength × geometric-radius × geometric-sigma lattice for one grain
// composition and structure, persisting the result through the grid store
// with read-through cache semantics. A loaded Grid produces filter- and
// spectrum-specific 2-D interpolants over the two size-distribution axes;
// lookups outside the tabulated ranges fail rather than extrapolate.
package optical
