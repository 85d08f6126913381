package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin generates single-octave 2D Perlin noise in [-1, 1].
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates a generator with a seed.
func NewPerlin(seed int64) *Perlin {
	// alpha, beta, n (iterations)
	// alpha: weight when sum is formed (default 2)
	// beta: harmonic scaling/lacunarity (default 2)
	// n: 1 so octave composition stays under FBM control
	p := perlin.NewPerlin(2, 2, 1, seed)
	return &Perlin{p: p}
}

// Noise2D returns a value between -1 and 1
func (g *Perlin) Noise2D(x, y float64) float64 {
	return g.p.Noise2D(x, y)
}
