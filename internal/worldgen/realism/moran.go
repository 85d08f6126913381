package realism

import (
	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// moranBlock is the sub-basin window edge in pixels.
const moranBlock = 64

// moranI computes queen-contiguity spatial autocorrelation of per-window
// hypsometric integrals over 64x64-pixel sub-basins.
func moranI(h *grid.HeightField) float64 {
	bw := h.Width / moranBlock
	bh := h.Height / moranBlock
	if bw < 2 && bh < 2 {
		return 0
	}
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}

	values := make([]float64, bw*bh)
	for br := 0; br < bh; br++ {
		for bc := 0; bc < bw; bc++ {
			values[br*bw+bc] = windowHI(h, br*moranBlock, bc*moranBlock)
		}
	}

	n := float64(len(values))
	mean := meanOf(values)

	num, den, wSum := 0.0, 0.0, 0.0
	for br := 0; br < bh; br++ {
		for bc := 0; bc < bw; bc++ {
			vi := values[br*bw+bc] - mean
			den += vi * vi
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := br+dr, bc+dc
					if nr < 0 || nr >= bh || nc < 0 || nc >= bw {
						continue
					}
					num += vi * (values[nr*bw+nc] - mean)
					wSum++
				}
			}
		}
	}
	if den == 0 || wSum == 0 {
		return 0
	}
	return (n / wSum) * (num / den)
}

// windowHI is the hypsometric integral of one block.
func windowHI(h *grid.HeightField, r0, c0 int) float64 {
	r1 := minInt(r0+moranBlock, h.Height)
	c1 := minInt(c0+moranBlock, h.Width)

	zMin, zMax, sum, n := h.At(r0, c0), h.At(r0, c0), 0.0, 0
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			z := h.At(r, c)
			if z < zMin {
				zMin = z
			}
			if z > zMax {
				zMax = z
			}
			sum += z
			n++
		}
	}
	if zMax <= zMin {
		return 0.5
	}
	return (sum/float64(n) - zMin) / (zMax - zMin)
}
