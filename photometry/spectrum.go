package photometry

// Spectrum is one named object's calibrated spectrum as supplied by the
// spectral database collaborator. The dust interpolation layer consumes
// only the wavelength axis; flux and error ride along for downstream
// fitting code.
type Spectrum struct {
	// Wavelength per channel (µm), strictly increasing.
	Wavelength []float64
	// Flux per channel (W m-2 µm-1).
	Flux []float64
	// Error is the 1-sigma flux uncertainty per channel; may be nil.
	Error []float64
	// Resolution is the mean spectral resolution lambda/delta-lambda.
	Resolution float64
}
