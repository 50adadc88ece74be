package photometry

// Generic Bessell (1990) UBVRI transmission curves, sampled at 10 nm steps
// and normalized to unit peak. Coarse by survey standards but sufficient
// for weighting dust cross sections across a passband.
var bessellCurves = map[string]TransmissionCurve{
	"Generic/Bessell.U": {
		Wavelength: []float64{
			0.30, 0.31, 0.32, 0.33, 0.34, 0.35, 0.36, 0.37, 0.38, 0.39,
			0.40, 0.41, 0.42,
		},
		Throughput: []float64{
			0.00, 0.02, 0.08, 0.41, 0.72, 0.87, 0.97, 1.00, 0.94, 0.59,
			0.20, 0.02, 0.00,
		},
	},
	"Generic/Bessell.B": {
		Wavelength: []float64{
			0.36, 0.37, 0.38, 0.39, 0.40, 0.41, 0.42, 0.43, 0.44, 0.45,
			0.46, 0.47, 0.48, 0.49, 0.50, 0.51, 0.52, 0.53, 0.54, 0.55,
			0.56,
		},
		Throughput: []float64{
			0.000, 0.030, 0.134, 0.567, 0.920, 0.978, 1.000, 0.978, 0.935, 0.853,
			0.740, 0.640, 0.536, 0.424, 0.325, 0.235, 0.150, 0.095, 0.043, 0.009,
			0.000,
		},
	},
	"Generic/Bessell.V": {
		Wavelength: []float64{
			0.47, 0.48, 0.49, 0.50, 0.51, 0.52, 0.53, 0.54, 0.55, 0.56,
			0.57, 0.58, 0.59, 0.60, 0.61, 0.62, 0.63, 0.64, 0.65, 0.66,
			0.67, 0.68, 0.69, 0.70,
		},
		Throughput: []float64{
			0.000, 0.030, 0.163, 0.458, 0.780, 0.967, 1.000, 0.973, 0.898, 0.792,
			0.684, 0.574, 0.461, 0.359, 0.270, 0.197, 0.135, 0.081, 0.045, 0.025,
			0.017, 0.013, 0.009, 0.000,
		},
	},
	"Generic/Bessell.R": {
		Wavelength: []float64{
			0.55, 0.56, 0.57, 0.58, 0.59, 0.60, 0.62, 0.64, 0.66, 0.68,
			0.70, 0.72, 0.74, 0.76, 0.78, 0.80, 0.82, 0.84, 0.86, 0.88, 0.90,
		},
		Throughput: []float64{
			0.00, 0.23, 0.74, 0.91, 0.98, 1.00, 0.98, 0.94, 0.89, 0.83,
			0.77, 0.70, 0.62, 0.53, 0.44, 0.35, 0.26, 0.17, 0.09, 0.03, 0.00,
		},
	},
	"Generic/Bessell.I": {
		Wavelength: []float64{
			0.70, 0.71, 0.72, 0.73, 0.74, 0.75, 0.76, 0.78, 0.80, 0.82,
			0.84, 0.86, 0.88, 0.90, 0.91, 0.92,
		},
		Throughput: []float64{
			0.000, 0.024, 0.232, 0.555, 0.785, 0.910, 0.965, 0.985, 0.990, 0.995,
			1.000, 1.000, 0.830, 0.350, 0.100, 0.000,
		},
	},
}
