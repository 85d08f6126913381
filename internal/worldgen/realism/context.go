package realism

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/hydro"
)

// Context carries everything a metric may consult, with lazy caches for the
// expensive shared fields.
type Context struct {
	Height  *grid.HeightField
	Class   grid.TerrainClass
	Flow    *hydro.FlowField
	Network *hydro.StreamNetwork
	Basins  []hydro.Basin

	slopes       []float64
	geomorphonF  *[10]float64
	geomorphonOK bool
}

// CellsizeM is the grid cell size in metres.
func (c *Context) CellsizeM() float64 { return c.Height.CellsizeM() }

// PlanetaryScale reports whether short-lag metrics are incomparable to the
// 90 m reference (cellsize above 1 km).
func (c *Context) PlanetaryScale() bool { return c.CellsizeM() > 1000 }

// Slopes returns the cached Horn slope field.
func (c *Context) Slopes() []float64 {
	if c.slopes != nil {
		return c.slopes
	}
	h := c.Height
	s := make([]float64, h.Width*h.Height)
	grid.ParallelRows(h.Height, func(r int) {
		for cc := 0; cc < h.Width; cc++ {
			s[r*h.Width+cc] = h.HornSlope(r, cc)
		}
	})
	c.slopes = s
	return s
}

// GeomorphonFractions returns the cached 10-class landform composition.
func (c *Context) GeomorphonFractions() [10]float64 {
	if c.geomorphonOK {
		return *c.geomorphonF
	}
	f := computeGeomorphonFractions(c.Height)
	c.geomorphonF = &f
	c.geomorphonOK = true
	return f
}

// detrended returns elevations with per-box mean planes removed; used when
// coarse grids would let continental relief drown the short-lag variogram.
func detrended(h *grid.HeightField, box int) []float64 {
	out := make([]float64, len(h.Data))
	for r0 := 0; r0 < h.Height; r0 += box {
		for c0 := 0; c0 < h.Width; c0 += box {
			r1 := minInt(r0+box, h.Height)
			c1 := minInt(c0+box, h.Width)
			sum, n := 0.0, 0
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					sum += h.Data[r*h.Width+c]
					n++
				}
			}
			mean := sum / float64(n)
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					out[r*h.Width+c] = h.Data[r*h.Width+c] - mean
				}
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func meanOf(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func stddevOf(v []float64) float64 {
	m := meanOf(v)
	s := 0.0
	for _, x := range v {
		d := x - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(v)))
}
