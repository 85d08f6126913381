package synth

import "github.com/spectrum-art/terra-incognita/internal/grid"

// Per-class spectral and hypsometric targets. The Hurst base is the
// pre-ageing value; the orchestrator subtracts the surface-age term.
var classHBase = map[grid.TerrainClass]float64{
	grid.Alpine:       0.85,
	grid.FluvialHumid: 0.80,
	grid.FluvialArid:  0.72,
	grid.Cratonic:     0.65,
	grid.Coastal:      0.60,
}

// Relief envelope in metres before the mountain-height and uplift scales.
var classElevRange = map[grid.TerrainClass]float64{
	grid.Alpine:       6000,
	grid.FluvialHumid: 3500,
	grid.FluvialArid:  3000,
	grid.Cratonic:     1500,
	grid.Coastal:      1200,
}

// Target hypsometric integral per class.
var classTargetHI = map[grid.TerrainClass]float64{
	grid.Alpine:       0.50,
	grid.FluvialHumid: 0.42,
	grid.FluvialArid:  0.48,
	grid.Cratonic:     0.35,
	grid.Coastal:      0.30,
}

// HBaseFor returns the class Hurst base.
func HBaseFor(c grid.TerrainClass) float64 { return classHBase[c] }

// ElevRangeFor returns the class relief envelope in metres.
func ElevRangeFor(c grid.TerrainClass) float64 { return classElevRange[c] }

// TargetHIFor returns the class hypsometric-integral target.
func TargetHIFor(c grid.TerrainClass) float64 { return classTargetHI[c] }
