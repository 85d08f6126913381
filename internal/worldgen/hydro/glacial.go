package hydro

import (
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

const (
	uValleyHalfWidth = 8
	cirqueRadius     = 5
	cirqueDepthFrac  = 0.05
	overdeepenFrac   = 0.02
)

// glacialCarving reshapes glaciated stream valleys into parabolic U-sections,
// overdeepens glacial sinks and carves cirque bowls at glacial heads.
func glacialCarving(hf *grid.HeightField, flow *FlowField, net *StreamNetwork, mask []grid.GlacialClass) {
	w, h := hf.Width, hf.Height
	zMin, zMax := hf.MinMax()
	zRange := zMax - zMin
	if zRange <= 0 {
		return
	}

	// U-valley cross sections, swept east-west of each glacial stream cell.
	carved := hf.Clone()
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i := r*w + c
			if !net.StreamMask[i] || mask[i] == grid.GlacialNone {
				continue
			}
			floor := hf.Data[i]

			wallL := floor
			if c-uValleyHalfWidth >= 0 {
				wallL = hf.Data[i-uValleyHalfWidth]
			}
			wallR := floor
			if c+uValleyHalfWidth < w {
				wallR = hf.Data[i+uValleyHalfWidth]
			}
			k := ((wallL+wallR)/2 - floor) / float64(uValleyHalfWidth*uValleyHalfWidth)
			if k <= 0 {
				continue
			}
			for dx := -uValleyHalfWidth; dx <= uValleyHalfWidth; dx++ {
				cc := c + dx
				if cc < 0 || cc >= w {
					continue
				}
				parab := floor + k*float64(dx*dx)
				if carved.Data[r*w+cc] < parab {
					carved.Data[r*w+cc] = parab
				}
			}
		}
	}
	copy(hf.Data, carved.Data)

	// Overdeepen closed sinks inside the glacial mask. Local minima are read
	// off the raw surface; the filled surface has none by construction.
	for r := 1; r < h-1; r++ {
		for c := 1; c < w-1; c++ {
			i := r*w + c
			if mask[i] == grid.GlacialNone {
				continue
			}
			z := hf.Data[i]
			localMin := true
			for code := 1; code <= 8; code++ {
				if hf.Data[(r+dirDR[code])*w+(c+dirDC[code])] < z {
					localMin = false
					break
				}
			}
			if localMin {
				hf.Data[i] -= overdeepenFrac * zRange
			}
		}
	}

	// Cirques: hemispherical bowls at high glacial heads.
	headCutoff := zMin + 0.8*zRange
	depth := cirqueDepthFrac * zRange
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i := r*w + c
			if !net.StreamMask[i] || mask[i] == grid.GlacialNone {
				continue
			}
			if hf.Data[i] < headCutoff || !isGlacialHead(flow, net, mask, i, w, h) {
				continue
			}
			carveCirque(hf, r, c, depth)
		}
	}
}

// isGlacialHead reports whether the cell starts a glacial stream: either no
// glacial stream donor at all, or a single straight-through donor entering
// opposite to the outflow direction.
func isGlacialHead(flow *FlowField, net *StreamNetwork, mask []grid.GlacialClass, i, w, h int) bool {
	out := flow.Dir[i]
	donors := 0
	aligned := true
	r, c := i/w, i%w
	for code := 1; code <= 8; code++ {
		nr, nc := r+dirDR[code], c+dirDC[code]
		if nr < 0 || nr >= h || nc < 0 || nc >= w {
			continue
		}
		ni := nr*w + nc
		if !net.StreamMask[ni] || mask[ni] == grid.GlacialNone {
			continue
		}
		if receiver(flow.Dir, ni, w, h) != i {
			continue
		}
		donors++
		// The donor flows along code's opposite into this cell.
		if out == 0 || flow.Dir[ni] != oppositeDir(out) {
			aligned = false
		}
	}
	if donors == 0 {
		return true
	}
	return donors == 1 && aligned
}

// carveCirque lowers a hemispherical bowl centred on the head cell.
func carveCirque(hf *grid.HeightField, r, c int, depth float64) {
	center := hf.Data[r*hf.Width+c]
	for dr := -cirqueRadius; dr <= cirqueRadius; dr++ {
		for dc := -cirqueRadius; dc <= cirqueRadius; dc++ {
			nr, nc := r+dr, c+dc
			if nr < 0 || nr >= hf.Height || nc < 0 || nc >= hf.Width {
				continue
			}
			d2 := float64(dr*dr + dc*dc)
			rr := float64(cirqueRadius * cirqueRadius)
			if d2 > rr {
				continue
			}
			bowl := center - depth*math.Sqrt(1-d2/rr)
			if hf.Data[nr*hf.Width+nc] > bowl {
				hf.Data[nr*hf.Width+nc] = bowl
			}
		}
	}
}
