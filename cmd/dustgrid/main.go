// Command dustgrid pre-computes dust cross-section grids so that later
// lookups hit the cache instead of paying the Mie solve.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/calderastro/dustopac/internal/config"
	"github.com/calderastro/dustopac/optical"
)

func main() {
	var storePath string
	var configPath string
	var compositionStr string
	var structureStr string
	var workers int
	var sizeBins int
	var force bool

	flag.StringVar(&storePath, "store", "", "path to sqlite grid store (overrides config)")
	flag.StringVar(&configPath, "config", "", "path to JSON config file")
	flag.StringVar(&compositionStr, "composition", "MgSiO3", "grain composition (MgSiO3 or Fe)")
	flag.StringVar(&structureStr, "structure", "crystalline", "grain structure (crystalline or amorphous)")
	flag.IntVar(&workers, "workers", 0, "concurrent wavelength workers (overrides config)")
	flag.IntVar(&sizeBins, "bins", 0, "radius bins per size distribution (overrides config)")
	flag.BoolVar(&force, "force", false, "drop any cached grid and rebuild")
	flag.Parse()

	cfg := config.EmptyConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if storePath == "" {
		storePath = cfg.GetStorePath()
	}
	if workers <= 0 {
		workers = cfg.GetGridWorkers()
	}
	if sizeBins <= 0 {
		sizeBins = cfg.GetSizeBins()
	}

	composition, err := optical.ParseComposition(compositionStr)
	if err != nil {
		log.Fatalf("invalid composition: %v", err)
	}
	structure, err := optical.ParseStructure(structureStr)
	if err != nil {
		log.Fatalf("invalid structure: %v", err)
	}

	builder, err := optical.NewGridBuilder(storePath, optical.BuiltinIndices{})
	if err != nil {
		log.Fatalf("open grid store: %v", err)
	}
	defer builder.Close()
	builder.Workers = workers
	builder.SizeBins = sizeBins

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if force {
		if err := builder.DropGrid(composition, structure); err != nil {
			log.Fatalf("drop cached grid: %v", err)
		}
		log.Printf("[dustgrid] dropped cached %s/%s grid", composition, structure)
	}

	log.Printf("[dustgrid] building %s/%s grid into %s (%d workers, %d bins)",
		composition, structure, storePath, workers, sizeBins)

	start := time.Now()
	grid, err := builder.EnsureGrid(ctx, composition, structure)
	if err != nil {
		log.Fatalf("build grid: %v", err)
	}

	fmt.Printf("grid ready in %s: %d wavelengths [%g, %g] um, %d radii [%g, %g] um, %d sigmas [%g, %g]\n",
		time.Since(start).Round(time.Millisecond),
		len(grid.Wavelength), grid.Wavelength[0], grid.Wavelength[len(grid.Wavelength)-1],
		len(grid.Radius), grid.Radius[0], grid.Radius[len(grid.Radius)-1],
		len(grid.Sigma), grid.Sigma[0], grid.Sigma[len(grid.Sigma)-1])
}
