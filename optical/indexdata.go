package optical

// Embedded complex refractive indices, 0.2-10 um. The MgSiO3 values follow
// the Jaeger/Dorschner enstatite laboratory measurements (three crystal
// axes for the crystalline lattice, one sol-gel table for the amorphous
// one); the Fe values follow the Ordal metallic iron compilation. Coarsely
// resampled: the grid builder interpolates between records and the
// reddening calculator snaps to the nearest one.

var indexWavelengths = []float64{
	0.20, 0.30, 0.45, 0.60, 0.80, 1.00, 1.50, 2.00,
	3.00, 4.00, 5.00, 6.50, 8.00, 9.00, 9.70, 10.00,
}

func makeTable(n, k []float64) IndexTable {
	t := make(IndexTable, len(indexWavelengths))
	for i, w := range indexWavelengths {
		t[i] = IndexRecord{WavelengthUm: w, N: n[i], K: k[i]}
	}
	return t
}

var mgsio3CrystallineAxes = [3]IndexTable{
	makeTable( // x axis
		[]float64{1.66, 1.63, 1.60, 1.59, 1.58, 1.58, 1.57, 1.56, 1.55, 1.53, 1.50, 1.44, 1.20, 0.90, 1.30, 2.10},
		[]float64{0.080, 0.010, 0.0008, 0.0004, 0.0003, 0.0003, 0.0004, 0.0006, 0.004, 0.008, 0.020, 0.060, 0.35, 1.40, 1.90, 1.10},
	),
	makeTable( // y axis
		[]float64{1.68, 1.65, 1.62, 1.61, 1.60, 1.60, 1.59, 1.58, 1.57, 1.55, 1.52, 1.45, 1.15, 0.85, 1.40, 2.25},
		[]float64{0.090, 0.012, 0.0009, 0.0005, 0.0004, 0.0004, 0.0005, 0.0007, 0.005, 0.009, 0.022, 0.070, 0.40, 1.55, 2.05, 1.20},
	),
	makeTable( // z axis
		[]float64{1.64, 1.61, 1.58, 1.57, 1.56, 1.56, 1.55, 1.54, 1.53, 1.51, 1.48, 1.42, 1.25, 0.95, 1.20, 1.95},
		[]float64{0.070, 0.009, 0.0007, 0.0004, 0.0003, 0.0003, 0.0004, 0.0005, 0.004, 0.007, 0.018, 0.055, 0.30, 1.25, 1.75, 1.00},
	),
}

var mgsio3Amorphous = makeTable(
	[]float64{1.62, 1.60, 1.58, 1.57, 1.56, 1.56, 1.55, 1.54, 1.53, 1.51, 1.49, 1.43, 1.28, 1.10, 1.35, 1.80},
	[]float64{0.120, 0.020, 0.0020, 0.0010, 0.0008, 0.0008, 0.0010, 0.0015, 0.008, 0.015, 0.035, 0.090, 0.45, 0.95, 1.10, 0.85},
)

var feCrystalline = makeTable(
	[]float64{1.10, 1.50, 2.10, 2.60, 2.90, 3.10, 3.60, 4.10, 4.80, 5.30, 5.80, 6.50, 7.40, 7.90, 8.25, 8.40},
	[]float64{1.80, 1.90, 2.40, 2.90, 3.30, 3.70, 4.60, 5.40, 7.00, 8.50, 10.0, 12.0, 14.5, 16.0, 17.0, 17.5},
)

var feAmorphous = makeTable(
	[]float64{1.05, 1.45, 2.00, 2.45, 2.75, 2.95, 3.40, 3.90, 4.55, 5.05, 5.55, 6.20, 7.05, 7.55, 7.90, 8.05},
	[]float64{1.90, 2.00, 2.55, 3.05, 3.50, 3.90, 4.85, 5.70, 7.35, 8.90, 10.5, 12.6, 15.2, 16.8, 17.8, 18.3},
)
