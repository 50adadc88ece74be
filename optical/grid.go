package optical

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/calderastro/dustopac/dust"
	"github.com/calderastro/dustopac/internal/store"
)

// gridCategory is the top-level dataset key segment in the grid store.
const gridCategory = "dust"

// GridAxes defines the tabulation lattice of a cross-section grid. The
// defaults are composition-independent.
type GridAxes struct {
	// Wavelength axis (µm), strictly increasing.
	Wavelength []float64
	// Radius is the geometric mean radius axis (µm) of the log-normal
	// distributions the grid tabulates.
	Radius []float64
	// Sigma is the geometric standard deviation axis.
	Sigma []float64
}

// DefaultGridAxes returns the lattice every grid is built on: wavelength
// 0.2-10 µm log-spaced, radius_g 0.001-10 µm log-spaced, sigma_g 1.1-10
// linear.
func DefaultGridAxes() GridAxes {
	axes := GridAxes{
		Wavelength: make([]float64, 60),
		Radius:     make([]float64, 40),
		Sigma:      make([]float64, 20),
	}
	floats.LogSpan(axes.Wavelength, 0.2, 10)
	floats.LogSpan(axes.Radius, 0.001, 10)
	floats.Span(axes.Sigma, 1.1, 10)
	return axes
}

// Grid is a loaded cross-section dataset for one composition/structure.
// Values is row-major [wavelength][radius][sigma] (µm²) and is read-only
// once loaded; interpolation tables derived from it never mutate it.
type Grid struct {
	Composition Composition
	Structure   Structure

	Wavelength []float64
	Radius     []float64
	Sigma      []float64
	Values     []float64
}

// idx flattens (wavelength i, radius j, sigma k) into Values.
func (g *Grid) idx(i, j, k int) int {
	return (i*len(g.Radius)+j)*len(g.Sigma) + k
}

// At returns the tabulated cross section at a lattice node.
func (g *Grid) At(i, j, k int) float64 { return g.Values[g.idx(i, j, k)] }

// wavelengthColumn copies the cross-section curve over the wavelength axis
// for a fixed (radius, sigma) node.
func (g *Grid) wavelengthColumn(j, k int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(g.Wavelength))
	}
	for i := range g.Wavelength {
		dst[i] = g.Values[g.idx(i, j, k)]
	}
	return dst
}

// MieFunc computes a single-grain extinction efficiency. The grid builder
// takes it as a seam so tests can count or stub solver invocations.
type MieFunc func(radiusUm, wavelengthUm, n, k float64) (float64, error)

// GridBuilder builds and caches cross-section grids in a persistent store.
// Safe for concurrent EnsureGrid calls: first-time construction per key is
// serialized through the store's single-writer commit.
type GridBuilder struct {
	store   *store.Store
	indices IndexSource

	// Axes is the tabulation lattice used for new grids.
	Axes GridAxes
	// Workers is the number of parallel build goroutines.
	Workers int
	// SizeBins is the number of radius bins per log-normal distribution.
	SizeBins int

	mie MieFunc

	mu    sync.Mutex
	cache map[string]*Grid
}

// NewGridBuilder opens the grid store at storePath and returns a builder
// reading refractive indices from src.
func NewGridBuilder(storePath string, src IndexSource) (*GridBuilder, error) {
	st, err := store.Open(storePath)
	if err != nil {
		return nil, err
	}
	return &GridBuilder{
		store:    st,
		indices:  src,
		Axes:     DefaultGridAxes(),
		Workers:  4,
		SizeBins: 100,
		mie:      dust.SingleGrainEfficiency,
		cache:    make(map[string]*Grid),
	}, nil
}

// Close releases the underlying store.
func (b *GridBuilder) Close() error { return b.store.Close() }

// DropGrid removes the committed dataset for (composition, structure) so the
// next EnsureGrid rebuilds it.
func (b *GridBuilder) DropGrid(c Composition, s Structure) error {
	b.mu.Lock()
	delete(b.cache, c.storeKey()+"/"+s.String())
	b.mu.Unlock()
	return b.store.DeleteGrid(gridCategory, c.storeKey(), s.String())
}

// EnsureGrid returns the cross-section grid for (composition, structure),
// building and committing it on first use. A dataset already present is
// never rebuilt; if a concurrent writer commits the same key first, its
// dataset wins and is returned.
func (b *GridBuilder) EnsureGrid(ctx context.Context, c Composition, s Structure) (*Grid, error) {
	key := c.storeKey() + "/" + s.String()

	b.mu.Lock()
	if g, ok := b.cache[key]; ok {
		b.mu.Unlock()
		return g, nil
	}
	b.mu.Unlock()

	if g, err := b.loadGrid(c, s); err != nil || g != nil {
		return g, err
	}

	data, err := b.buildGrid(ctx, c, s)
	if err != nil {
		return nil, err
	}

	buildID := uuid.NewString()
	stored, err := b.store.PutGrid(gridCategory, c.storeKey(), s.String(), buildID, data)
	if err != nil {
		return nil, err
	}
	if !stored {
		// Another writer committed first; theirs is the dataset of record.
		log.Printf("[EnsureGrid] dataset %s/%s already committed concurrently, using stored copy", gridCategory, key)
		return b.loadGrid(c, s)
	}
	log.Printf("[EnsureGrid] committed dataset %s/%s build_id=%s", gridCategory, key, buildID)

	g := b.newGrid(c, s, data)
	b.mu.Lock()
	b.cache[key] = g
	b.mu.Unlock()
	return g, nil
}

// loadGrid reads a committed dataset, returning (nil, nil) when absent.
func (b *GridBuilder) loadGrid(c Composition, s Structure) (*Grid, error) {
	data, _, err := b.store.GetGrid(gridCategory, c.storeKey(), s.String())
	if err != nil || data == nil {
		return nil, err
	}
	g := b.newGrid(c, s, data)
	b.mu.Lock()
	b.cache[c.storeKey()+"/"+s.String()] = g
	b.mu.Unlock()
	return g, nil
}

func (b *GridBuilder) newGrid(c Composition, s Structure, data *store.GridData) *Grid {
	return &Grid{
		Composition: c,
		Structure:   s,
		Wavelength:  data.Wavelength,
		Radius:      data.Radius,
		Sigma:       data.Sigma,
		Values:      data.Values,
	}
}

// buildGrid evaluates the ensemble cross section over the full lattice.
// Wavelength slabs are independent, so they are fanned out over Workers
// goroutines writing disjoint regions of the value array; the commit
// happens after all workers finish, keeping the persisted dataset
// all-or-nothing.
func (b *GridBuilder) buildGrid(ctx context.Context, c Composition, s Structure) (*store.GridData, error) {
	tables, err := b.indices.Tables(c, s)
	if err != nil {
		return nil, err
	}

	axes := b.Axes
	nw, nr, ns := len(axes.Wavelength), len(axes.Radius), len(axes.Sigma)

	log.Printf("[EnsureGrid] building dataset %s/%s/%s: %dx%dx%d nodes, %d workers",
		gridCategory, c.storeKey(), s.String(), nw, nr, ns, b.Workers)
	start := time.Now()

	// Distributions depend only on (radius_g, sigma_g); compute them once.
	dists := make([]*dust.SizeDistribution, nr*ns)
	for j, radiusG := range axes.Radius {
		for k, sigmaG := range axes.Sigma {
			d, err := dust.LogNormal(radiusG, sigmaG, b.SizeBins)
			if err != nil {
				return nil, err
			}
			dists[j*ns+k] = d
		}
	}

	values := make([]float64, nw*nr*ns)

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	slabs := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range slabs {
				if err := b.buildSlab(axes, tables, dists, values, i); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	var sendErr error
feed:
	for i := 0; i < nw; i++ {
		if err := ctx.Err(); err != nil {
			sendErr = err
			break feed
		}
		select {
		case slabs <- i:
		case <-ctx.Done():
			sendErr = ctx.Err()
			break feed
		case err := <-errs:
			sendErr = err
			break feed
		}
	}
	close(slabs)
	wg.Wait()

	if sendErr == nil {
		select {
		case sendErr = <-errs:
		default:
		}
	}
	if sendErr != nil {
		return nil, fmt.Errorf("grid build for %s/%s failed: %w", c, s, sendErr)
	}

	log.Printf("[EnsureGrid] built %s/%s/%s in %s", gridCategory, c.storeKey(), s.String(),
		time.Since(start).Round(time.Millisecond))

	return &store.GridData{
		Wavelength: axes.Wavelength,
		Radius:     axes.Radius,
		Sigma:      axes.Sigma,
		Values:     values,
	}, nil
}

// buildSlab fills the value slab of one wavelength index. The cross section
// per node is the mean over the material's index tables (three crystal axes
// for crystalline MgSiO3, one table otherwise).
func (b *GridBuilder) buildSlab(axes GridAxes, tables []IndexTable, dists []*dust.SizeDistribution, values []float64, i int) error {
	wavelength := axes.Wavelength[i]
	nr, ns := len(axes.Radius), len(axes.Sigma)

	for _, table := range tables {
		n, k, err := table.At(wavelength)
		if err != nil {
			return err
		}
		for j := 0; j < nr; j++ {
			for kk := 0; kk < ns; kk++ {
				cExt, err := b.ensemble(dists[j*ns+kk], wavelength, n, k)
				if err != nil {
					return err
				}
				values[(i*nr+j)*ns+kk] += cExt / float64(len(tables))
			}
		}
	}
	return nil
}

// ensemble is EnsembleCrossSection routed through the builder's MieFunc.
func (b *GridBuilder) ensemble(dist *dust.SizeDistribution, wavelengthUm, n, k float64) (float64, error) {
	var cExt float64
	for i, r := range dist.Radii {
		qext, err := b.mie(r, wavelengthUm, n, k)
		if err != nil {
			return 0, err
		}
		cExt += math.Pi * r * r * qext * dist.Counts[i] * dist.Widths[i]
	}
	return cExt, nil
}
