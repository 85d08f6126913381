package hydro

import (
	"math"
	"sort"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/spatial"
)

// dzClampM bounds a single stream-power iteration's incision per cell.
const dzClampM = 10.0

// streamPowerErosion runs the detachment-limited incision law
// dz = -K * A^0.5 * S (Howard 1994, m = 0.5, n = 1). Flow is recomputed on a
// depression-free surface every iteration; skipping that for small dz would
// break routing.
func streamPowerErosion(hf *grid.HeightField, p Params) *FlowField {
	iters := classParams[p.Class].erosionIters
	cellsize := hf.CellsizeM()
	w, h := hf.Width, hf.Height

	var flow *FlowField
	dz := make([]float64, w*h)
	for it := 0; it < iters; it++ {
		flow = ComputeFlow(hf)

		grid.ParallelRows(h, func(r int) {
			for c := 0; c < w; c++ {
				i := r*w + c
				recv := receiver(flow.Dir, i, w, h)
				if recv < 0 {
					dz[i] = 0
					continue
				}
				slope := (flow.FilledZ[i] - flow.FilledZ[recv]) / (dirDist[flow.Dir[i]] * cellsize)
				erod := 0.5
				if p.Erodibility != nil {
					erod = p.Erodibility[i]
				}
				k := 0.5 * (1 + erod*p.ErosionScale)
				d := -k * math.Sqrt(float64(flow.Acc[i])) * slope
				if d < -dzClampM {
					d = -dzClampM
				}
				dz[i] = d
			}
		})

		for i := range dz {
			hf.Data[i] += dz[i]
		}
	}
	if flow == nil {
		flow = ComputeFlow(hf)
	}
	return flow
}

// massWasting relaxes slopes above the class angle of repose, moving material
// to the steepest downslope neighbour. Cells shed in high-to-low order;
// border cells only receive.
func massWasting(hf *grid.HeightField, p Params) {
	w, h := hf.Width, hf.Height
	cellsize := hf.CellsizeM()
	tanRepose := math.Tan(spatial.DegToRad(classParams[p.Class].reposeDeg))

	order := make([]int, 0, (w-2)*(h-2))
	for r := 1; r < h-1; r++ {
		for c := 1; c < w-1; c++ {
			order = append(order, r*w+c)
		}
	}
	sort.Slice(order, func(a, b int) bool { return hf.Data[order[a]] > hf.Data[order[b]] })

	for _, i := range order {
		r, c := i/w, i%w
		if hf.HornSlope(r, c) <= tanRepose {
			continue
		}

		// Steepest D8 downslope neighbour on the raw surface.
		best := -1
		bestDrop := 0.0
		for code := 1; code <= 8; code++ {
			ni := (r+dirDR[code])*w + (c + dirDC[code])
			drop := (hf.Data[i] - hf.Data[ni]) / dirDist[code]
			if drop > bestDrop {
				bestDrop = drop
				best = code
			}
		}
		if best < 0 {
			continue
		}
		ni := (r+dirDR[best])*w + (c + dirDC[best])
		d := dirDist[best] * cellsize
		transfer := ((hf.Data[i] - hf.Data[ni]) - tanRepose*d) / 2
		if transfer <= 0 {
			continue
		}
		hf.Data[i] -= transfer
		hf.Data[ni] += transfer
	}
}
