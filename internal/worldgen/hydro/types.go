// Package hydro shapes the raw elevation field with flow routing,
// stream-power erosion, mass wasting and glacial carving, then extracts
// the drainage basins.
package hydro

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// FlowField is the D8 routing state on a depression-filled surface.
// Dir codes: 0 = sink/flat, 1 = N, 2 = NE, 3 = E, 4 = SE, 5 = S, 6 = SW,
// 7 = W, 8 = NW.
type FlowField struct {
	Dir     []uint8
	Acc     []uint32
	FilledZ []float64
}

// StreamNetwork marks channel cells and their Strahler orders.
type StreamNetwork struct {
	StreamMask []bool
	Order      []uint16
}

// Basin is one delineated drainage basin with its morphometrics.
type Basin struct {
	ID                  int
	OutletCell          int
	AreaCells           int
	HypsometricIntegral float64
	ElongationRatio     float64
	Circularity         float64
	MeanSlope           float64
}

// Result bundles the hydraulic outputs; the height field itself is mutated
// in place.
type Result struct {
	Flow    *FlowField
	Network *StreamNetwork
	Basins  []Basin
}

// Params configures the hydraulic stage.
type Params struct {
	Class        grid.TerrainClass
	Erodibility  []float64 // nil means uniform 0.5
	ErosionScale float64
	Glacial      grid.GlacialClass
	GlacialMask  []grid.GlacialClass // required when Glacial != GlacialNone
}

// classParams is the authoritative per-class contract.
type classParamSet struct {
	aMin         uint32
	erosionIters int
	reposeDeg    float64
}

var classParams = map[grid.TerrainClass]classParamSet{
	grid.Alpine:       {aMin: 200, erosionIters: 20, reposeDeg: 35},
	grid.FluvialHumid: {aMin: 100, erosionIters: 15, reposeDeg: 25},
	grid.FluvialArid:  {aMin: 300, erosionIters: 12, reposeDeg: 30},
	grid.Cratonic:     {aMin: 500, erosionIters: 6, reposeDeg: 20},
	grid.Coastal:      {aMin: 400, erosionIters: 8, reposeDeg: 22},
}

// AMinFor exposes the channel-initiation threshold for a class.
func AMinFor(c grid.TerrainClass) uint32 { return classParams[c].aMin }

// D8 neighbour tables indexed by direction code 1..8 (N, NE, E, SE, S, SW, W, NW).
var (
	dirDR   = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}
	dirDC   = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	dirDist = [9]float64{0, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}
)

// oppositeDir returns the code of the reversed direction.
func oppositeDir(code uint8) uint8 {
	return uint8((int(code)-1+4)%8) + 1
}

func isBorder(r, c, w, h int) bool {
	return r == 0 || c == 0 || r == h-1 || c == w-1
}
