// Package dust provides grain size distributions and Mie extinction cross
// sections for homogeneous spherical dust grains.
//
// A SizeDistribution describes the number of grains per radius bin for a
// log-normal or power-law population. EnsembleCrossSection folds the
// single-grain Mie extinction efficiency through such a distribution to
// produce the ensemble-averaged extinction cross section (µm²) of one grain
// at one wavelength. All radii and wavelengths are in micron unless a name
// says otherwise.
package dust
