package realism

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// hurstLags are the pixel lags of the second-order structure function.
var hurstLags = []int{2, 3, 4, 5, 6, 7, 8}

// structureFunction computes D_q(h) = mean |z(x+h) - z(x)|^q over horizontal
// and vertical pairs at lag h.
func structureFunction(data []float64, w, h, lag int, q float64) float64 {
	sum, n := 0.0, 0
	for r := 0; r < h; r++ {
		for c := 0; c+lag < w; c++ {
			d := math.Abs(data[r*w+c+lag] - data[r*w+c])
			if d < 1e-9 {
				d = 1e-9
			}
			sum += math.Pow(d, q)
			n++
		}
	}
	for r := 0; r+lag < h; r++ {
		for c := 0; c < w; c++ {
			d := math.Abs(data[(r+lag)*w+c] - data[r*w+c])
			if d < 1e-9 {
				d = 1e-9
			}
			sum += math.Pow(d, q)
			n++
		}
	}
	return sum / float64(n)
}

// hurstExponent regresses log D(h) against log h on lags 2..8.
// D(h) ~ h^(2H) so H is half the fitted slope. Coarse grids are
// box-detrended first so regional relief does not bias the short lags.
func hurstExponent(h *grid.HeightField) float64 {
	data := h.Data
	if h.CellsizeM() > 1000 {
		data = detrended(h, 32)
	}

	logH := make([]float64, len(hurstLags))
	logD := make([]float64, len(hurstLags))
	for i, lag := range hurstLags {
		logH[i] = math.Log(float64(lag))
		logD[i] = math.Log(structureFunction(data, h.Width, h.Height, lag, 2))
	}
	_, slope := stat.LinearRegression(logH, logD, nil, false)
	return slope / 2
}

// multifractalWidth spreads the scaling exponents zeta(q)/q over q in
// [-2, 2]. q = -2 is dropped when its moment diverges on Gaussian-like
// increments.
func multifractalWidth(h *grid.HeightField) float64 {
	data := h.Data
	if h.CellsizeM() > 1000 {
		data = detrended(h, 32)
	}

	qs := []float64{-2, -1.5, -1, -0.5, 0.5, 1, 1.5, 2}
	minAlpha, maxAlpha := math.Inf(1), math.Inf(-1)

	logH := make([]float64, len(hurstLags))
	logS := make([]float64, len(hurstLags))
	for _, q := range qs {
		ok := true
		for i, lag := range hurstLags {
			s := structureFunction(data, h.Width, h.Height, lag, q)
			if !(s > 0) || math.IsInf(s, 0) {
				ok = false
				break
			}
			logH[i] = math.Log(float64(lag))
			logS[i] = math.Log(s)
		}
		if !ok {
			// Singular negative moment: skip this q.
			continue
		}
		_, slope := stat.LinearRegression(logH, logS, nil, false)
		alpha := slope / q
		if alpha < minAlpha {
			minAlpha = alpha
		}
		if alpha > maxAlpha {
			maxAlpha = alpha
		}
	}
	if math.IsInf(minAlpha, 0) || math.IsInf(maxAlpha, 0) {
		return 0
	}
	return maxAlpha - minAlpha
}

// roughnessElevation is the Pearson correlation of local roughness (3x3
// standard deviation) with elevation.
func roughnessElevation(h *grid.HeightField) float64 {
	w, hh := h.Width, h.Height
	rough := make([]float64, 0, w*hh)
	elev := make([]float64, 0, w*hh)
	for r := 1; r < hh-1; r++ {
		for c := 1; c < w-1; c++ {
			var window [9]float64
			k := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					window[k] = h.At(r+dr, c+dc)
					k++
				}
			}
			rough = append(rough, stddevOf(window[:]))
			elev = append(elev, h.At(r, c))
		}
	}
	return stat.Correlation(rough, elev, nil)
}

// aspectCircularVariance is 1 minus the mean resultant length of unit aspect
// vectors. Flat cells are skipped.
func aspectCircularVariance(h *grid.HeightField) float64 {
	sumX, sumY, n := 0.0, 0.0, 0
	for r := 0; r < h.Height; r++ {
		for c := 0; c < h.Width; c++ {
			gx, gy := h.HornGradient(r, c)
			mag := math.Hypot(gx, gy)
			if mag < 1e-12 {
				continue
			}
			sumX += gx / mag
			sumY += gy / mag
			n++
		}
	}
	if n == 0 {
		return 0
	}
	resultant := math.Hypot(sumX, sumY) / float64(n)
	return 1 - resultant
}

// tpiField computes the topographic position index at the given radius; radii of
// 10 cells or more subsample the disk with step 4.
func tpiField(h *grid.HeightField, radius int) []float64 {
	step := 1
	if radius >= 10 {
		step = 4
	}
	out := make([]float64, h.Width*h.Height)
	grid.ParallelRows(h.Height, func(r int) {
		for c := 0; c < h.Width; c++ {
			sum, n := 0.0, 0
			for dr := -radius; dr <= radius; dr += step {
				for dc := -radius; dc <= radius; dc += step {
					if dr == 0 && dc == 0 {
						continue
					}
					if dr*dr+dc*dc > radius*radius {
						continue
					}
					nr, nc := r+dr, c+dc
					if nr < 0 || nr >= h.Height || nc < 0 || nc >= h.Width {
						continue
					}
					sum += h.At(nr, nc)
					n++
				}
			}
			if n > 0 {
				out[r*h.Width+c] = h.At(r, c) - sum/float64(n)
			}
		}
	})
	return out
}

// tpiRatio compares broad-scale to fine-scale topographic position variance.
func tpiRatio(h *grid.HeightField) float64 {
	small := tpiField(h, 3)
	large := tpiField(h, 15)
	sd := stddevOf(small)
	if sd == 0 {
		return 0
	}
	return stddevOf(large) / sd
}

// hypsometricIntegral is (mean - min) / (max - min).
func hypsometricIntegral(h *grid.HeightField) float64 {
	min, max := h.MinMax()
	if max <= min {
		return 0.5
	}
	return (meanOf(h.Data) - min) / (max - min)
}

// slopeModeDeg returns the centre of the most populated slope histogram bin.
func slopeModeDeg(slopes []float64) float64 {
	const binDeg = 0.25
	counts := map[int]int{}
	for _, s := range slopes {
		deg := math.Atan(s) * 180 / math.Pi
		counts[int(deg/binDeg)]++
	}
	bestBin, bestCount := 0, -1
	for b, n := range counts {
		if n > bestCount || (n == bestCount && b < bestBin) {
			bestBin, bestCount = b, n
		}
	}
	return (float64(bestBin) + 0.5) * binDeg
}
