package realism

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// Jasiewicz-Stepinski landform classes, in reference-fraction order.
const (
	gmFlat = iota
	gmPeak
	gmRidge
	gmShoulder
	gmSpur
	gmSlope
	gmHollow
	gmFootslope
	gmValley
	gmPit
)

// geomorphonLookupL is the line-of-sight length in cells.
const geomorphonLookupL = 10

// geomorphonLUT maps (plus count, minus count) to a landform class, where a
// plus means the horizon in that direction sits above the cell. Rows index
// the plus count; entries beyond plus+minus = 8 are never consulted.
var geomorphonLUT = [9][9]int{
	{gmFlat, gmFlat, gmFlat, gmShoulder, gmShoulder, gmRidge, gmRidge, gmRidge, gmPeak},
	{gmFlat, gmFlat, gmShoulder, gmShoulder, gmShoulder, gmRidge, gmRidge, gmRidge, 0},
	{gmFlat, gmFootslope, gmSlope, gmSlope, gmSpur, gmSpur, gmRidge, 0, 0},
	{gmFootslope, gmFootslope, gmSlope, gmSlope, gmSlope, gmSpur, 0, 0, 0},
	{gmFootslope, gmFootslope, gmSlope, gmSlope, gmSlope, 0, 0, 0, 0},
	{gmValley, gmValley, gmHollow, gmSlope, 0, 0, 0, 0, 0},
	{gmValley, gmValley, gmValley, 0, 0, 0, 0, 0, 0},
	{gmValley, gmValley, 0, 0, 0, 0, 0, 0, 0},
	{gmPit, 0, 0, 0, 0, 0, 0, 0, 0},
}

// flatThresholdRad auto-scales the flat angle with cell size at tile scale
// and pins it at planetary scale, where per-pixel relief angles collapse.
func flatThresholdRad(cellsizeM float64) float64 {
	if cellsizeM > 1000 {
		return 0.012 * math.Pi / 180
	}
	t := math.Atan(1.57 / cellsizeM) * 180 / math.Pi
	if t < 0.001 {
		t = 0.001
	}
	if t > 2 {
		t = 2
	}
	return t * math.Pi / 180
}

// geomorphonClass classifies one cell from its 8-direction horizon angles.
func geomorphonClass(h *grid.HeightField, r, c int, flatT, cellsize float64) int {
	// D8 direction offsets: N, NE, E, SE, S, SW, W, NW.
	var dirs = [8][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	z0 := h.At(r, c)

	plus, minus := 0, 0
	for _, d := range dirs {
		dist := cellsize
		if d[0] != 0 && d[1] != 0 {
			dist *= math.Sqrt2
		}
		maxAngle := math.Inf(-1)
		for k := 1; k <= geomorphonLookupL; k++ {
			nr, nc := r+d[0]*k, c+d[1]*k
			if nr < 0 || nr >= h.Height || nc < 0 || nc >= h.Width {
				break
			}
			angle := math.Atan((h.At(nr, nc) - z0) / (float64(k) * dist))
			if angle > maxAngle {
				maxAngle = angle
			}
		}
		if math.IsInf(maxAngle, -1) {
			continue
		}
		switch {
		case maxAngle > flatT:
			plus++
		case maxAngle < -flatT:
			minus++
		}
	}
	return geomorphonLUT[plus][minus]
}

// computeGeomorphonFractions classifies every cell and returns the 10-class
// composition.
func computeGeomorphonFractions(h *grid.HeightField) [10]float64 {
	flatT := flatThresholdRad(h.CellsizeM())
	cellsize := h.CellsizeM()

	counts := make([][10]int, h.Height)
	grid.ParallelRows(h.Height, func(r int) {
		for c := 0; c < h.Width; c++ {
			counts[r][geomorphonClass(h, r, c, flatT, cellsize)]++
		}
	})

	var out [10]float64
	total := 0
	for _, row := range counts {
		for cls, n := range row {
			out[cls] += float64(n)
			total += n
		}
	}
	for cls := range out {
		out[cls] /= float64(total)
	}
	return out
}

// GeomorphonL1 is the L1 distance between generated and reference landform
// compositions.
func GeomorphonL1(gen, ref [10]float64) float64 {
	sum := 0.0
	for i := range gen {
		sum += math.Abs(gen[i] - ref[i])
	}
	return sum
}

// drainageDensity uses valley and hollow geomorphons as the channel proxy:
// channel cells * pixel_km / tile_area_km2.
func drainageDensity(c *Context) float64 {
	f := c.GeomorphonFractions()
	pixelKm := c.CellsizeM() / 1000
	channelFraction := f[gmValley] + f[gmHollow]
	// cells * pixel / (W*H*pixel^2) reduces to fraction / pixel.
	return channelFraction / pixelKm
}
