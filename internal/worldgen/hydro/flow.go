package hydro

import (
	"sort"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// ComputeFlow runs pit fill, D8 direction assignment and accumulation.
func ComputeFlow(hf *grid.HeightField) *FlowField {
	filled := PriorityFlood(hf)
	flow := &FlowField{
		Dir:     assignD8(filled, hf.Width, hf.Height),
		FilledZ: filled,
	}
	flow.Acc = accumulate(filled, flow.Dir, hf.Width, hf.Height)
	return flow
}

// assignD8 picks the steepest distance-weighted drop among the 8 neighbours.
// Ties keep the first direction in N, NE, E, SE, S, SW, W, NW order; cells
// with no lower neighbour on the filled surface stay 0.
func assignD8(filled []float64, w, h int) []uint8 {
	dir := make([]uint8, w*h)
	grid.ParallelRows(h, func(r int) {
		for c := 0; c < w; c++ {
			i := r*w + c
			bestDrop := 0.0
			best := uint8(0)
			for code := 1; code <= 8; code++ {
				nr, nc := r+dirDR[code], c+dirDC[code]
				if nr < 0 || nr >= h || nc < 0 || nc >= w {
					continue
				}
				drop := (filled[i] - filled[nr*w+nc]) / dirDist[code]
				if drop > bestDrop {
					bestDrop = drop
					best = uint8(code)
				}
			}
			dir[i] = best
		}
	})
	return dir
}

// receiver returns the flat index the cell drains to, or -1 for sinks.
func receiver(dir []uint8, i, w, h int) int {
	code := dir[i]
	if code == 0 {
		return -1
	}
	r, c := i/w, i%w
	nr, nc := r+dirDR[code], c+dirDC[code]
	if nr < 0 || nr >= h || nc < 0 || nc >= w {
		return -1
	}
	return nr*w + nc
}

// accumulate sums donor areas in descending filled-elevation order. Every
// cell contributes itself, so acc >= 1 everywhere.
func accumulate(filled []float64, dir []uint8, w, h int) []uint32 {
	n := w * h
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return filled[order[a]] > filled[order[b]] })

	acc := make([]uint32, n)
	for i := range acc {
		acc[i] = 1
	}
	for _, i := range order {
		if recv := receiver(dir, i, w, h); recv >= 0 {
			acc[recv] += acc[i]
		}
	}
	return acc
}

// ExtractStreams thresholds accumulation at the class a_min and assigns
// Strahler orders: heads are order 1; a confluence where two or more donors
// share the maximum order increments it.
func ExtractStreams(flow *FlowField, class grid.TerrainClass, w, h int) *StreamNetwork {
	aMin := classParams[class].aMin
	n := w * h
	net := &StreamNetwork{
		StreamMask: make([]bool, n),
		Order:      make([]uint16, n),
	}
	var streamCells []int
	for i := 0; i < n; i++ {
		if flow.Acc[i] >= aMin {
			net.StreamMask[i] = true
			streamCells = append(streamCells, i)
		}
	}

	// Ascending accumulation guarantees donors resolve before receivers.
	sort.Slice(streamCells, func(a, b int) bool {
		return flow.Acc[streamCells[a]] < flow.Acc[streamCells[b]]
	})

	for _, i := range streamCells {
		maxOrder := uint16(0)
		maxCount := 0
		for code := 1; code <= 8; code++ {
			r, c := i/w, i%w
			nr, nc := r+dirDR[code], c+dirDC[code]
			if nr < 0 || nr >= h || nc < 0 || nc >= w {
				continue
			}
			ni := nr*w + nc
			if !net.StreamMask[ni] || receiver(flow.Dir, ni, w, h) != i {
				continue
			}
			switch {
			case net.Order[ni] > maxOrder:
				maxOrder = net.Order[ni]
				maxCount = 1
			case net.Order[ni] == maxOrder:
				maxCount++
			}
		}
		switch {
		case maxOrder == 0:
			net.Order[i] = 1
		case maxCount >= 2:
			net.Order[i] = maxOrder + 1
		default:
			net.Order[i] = maxOrder
		}
	}
	return net
}
