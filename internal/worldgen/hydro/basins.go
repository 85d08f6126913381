package hydro

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// DelineateBasins labels every cell with the basin of the outlet it drains
// to. Outlets are stream cells whose receiver sits on the border (and border
// stream cells themselves); cells draining nowhere become single-cell basins.
func DelineateBasins(hf *grid.HeightField, flow *FlowField, net *StreamNetwork) []Basin {
	w, h := hf.Width, hf.Height
	n := w * h
	label := make([]int, n)
	for i := range label {
		label[i] = -1
	}

	var outlets []int
	for i := 0; i < n; i++ {
		if !net.StreamMask[i] {
			continue
		}
		r, c := i/w, i%w
		recv := receiver(flow.Dir, i, w, h)
		if isBorder(r, c, w, h) || (recv >= 0 && isBorder(recv/w, recv%w, w, h)) {
			outlets = append(outlets, i)
		}
	}

	// BFS upstream through the reverse donor graph from each outlet.
	for id, outlet := range outlets {
		if label[outlet] != -1 {
			continue
		}
		label[outlet] = id
		queue := []int{outlet}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			r, c := cur/w, cur%w
			for code := 1; code <= 8; code++ {
				nr, nc := r+dirDR[code], c+dirDC[code]
				if nr < 0 || nr >= h || nc < 0 || nc >= w {
					continue
				}
				ni := nr*w + nc
				if label[ni] == -1 && receiver(flow.Dir, ni, w, h) == cur {
					label[ni] = id
					queue = append(queue, ni)
				}
			}
		}
	}

	// Isolated interior sinks and unrouted cells form single-cell basins.
	nextID := len(outlets)
	for i := 0; i < n; i++ {
		if label[i] == -1 {
			label[i] = nextID
			outlets = append(outlets, i)
			nextID++
		}
	}

	basins := make([]Basin, len(outlets))
	members := make([][]int, len(outlets))
	for i := 0; i < n; i++ {
		members[label[i]] = append(members[label[i]], i)
	}
	for id := range basins {
		basins[id] = measureBasin(hf, label, outlets[id], id, members[id])
	}
	return basins
}

// measureBasin computes area, hypsometric integral, elongation ratio,
// circularity and mean slope for one basin.
func measureBasin(hf *grid.HeightField, label []int, outlet, id int, cells []int) Basin {
	w := hf.Width
	area := float64(len(cells))

	zMin, zMax := math.Inf(1), math.Inf(-1)
	zSum := 0.0
	slopeSum := 0.0
	maxDist := 0.0
	or, oc := outlet/w, outlet%w

	perimeter := 0
	for _, i := range cells {
		z := hf.Data[i]
		zSum += z
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
		r, c := i/w, i%w
		slopeSum += hf.HornSlope(r, c)

		dr, dc := float64(r-or), float64(c-oc)
		if d := math.Sqrt(dr*dr + dc*dc); d > maxDist {
			maxDist = d
		}

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nr, nc := r+d[0], c+d[1]
			if nr < 0 || nr >= hf.Height || nc < 0 || nc >= w || label[nr*w+nc] != id {
				perimeter++
			}
		}
	}

	hi := 0.5
	if zMax > zMin {
		hi = (zSum/area - zMin) / (zMax - zMin)
	}
	elongation := 1.0
	if maxDist > 0 {
		elongation = 2 * math.Sqrt(area/math.Pi) / maxDist
	}
	circularity := 1.0
	if perimeter > 0 {
		circularity = 4 * math.Pi * area / float64(perimeter*perimeter)
	}

	return Basin{
		ID:                  id,
		OutletCell:          outlet,
		AreaCells:           len(cells),
		HypsometricIntegral: hi,
		ElongationRatio:     elongation,
		Circularity:         circularity,
		MeanSlope:           slopeSum / area,
	}
}
