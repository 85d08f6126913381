package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// southSlope builds a plane dipping south so every cell drains to row+1.
func southSlope(t *testing.T, w, h int) *grid.HeightField {
	hf := planeField(t, w, h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			hf.Set(r, c, float64(h-r)*10)
		}
	}
	return hf
}

func TestComputeFlow_SouthSlope(t *testing.T) {
	hf := southSlope(t, 8, 8)
	flow := ComputeFlow(hf)

	// Interior cells all drain due south (code 5).
	for r := 0; r < 7; r++ {
		for c := 1; c < 7; c++ {
			assert.Equal(t, uint8(5), flow.Dir[r*8+c], "cell (%d,%d)", r, c)
		}
	}
	// Accumulation grows downslope: bottom interior rows carry their column.
	assert.Equal(t, uint32(7), flow.Acc[6*8+3])
}

func TestComputeFlow_AccumulationConservation(t *testing.T) {
	hf := planeField(t, 24, 24)
	for r := 0; r < 24; r++ {
		for c := 0; c < 24; c++ {
			hf.Set(r, c, float64((r*31+c*17)%13)+float64(24-r))
		}
	}
	flow := ComputeFlow(hf)

	w, h := 24, 24
	for i := range flow.Acc {
		require.GreaterOrEqual(t, flow.Acc[i], uint32(1), "cell %d", i)
		donorSum := uint32(0)
		r, c := i/w, i%w
		for code := 1; code <= 8; code++ {
			nr, nc := r+dirDR[code], c+dirDC[code]
			if nr < 0 || nr >= h || nc < 0 || nc >= w {
				continue
			}
			ni := nr*w + nc
			if receiver(flow.Dir, ni, w, h) == i {
				donorSum += flow.Acc[ni]
			}
		}
		require.Equal(t, donorSum+1, flow.Acc[i], "cell %d accumulation mismatch", i)
	}
}

func TestAssignD8_TieBreaksInFixedOrder(t *testing.T) {
	// Centre cell with two equally low neighbours: N and E. N comes first.
	filled := []float64{
		5, 1, 5,
		5, 5, 1,
		5, 5, 5,
	}
	dir := assignD8(filled, 3, 3)
	assert.Equal(t, uint8(1), dir[4])
}

// vValley funnels a south-dipping plane into a central channel so the
// channel accumulates enough support to clear the stream threshold.
func vValley(t *testing.T, w, h int) *grid.HeightField {
	hf := planeField(t, w, h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			dx := c - w/2
			if dx < 0 {
				dx = -dx
			}
			hf.Set(r, c, float64(h-r)*10+float64(dx)*5)
		}
	}
	return hf
}

func TestExtractStreams_StrahlerRules(t *testing.T) {
	hf := vValley(t, 24, 24)
	flow := ComputeFlow(hf)
	net := ExtractStreams(flow, grid.FluvialHumid, 24, 24)

	streams := 0
	for _, s := range net.StreamMask {
		if s {
			streams++
		}
	}
	require.Greater(t, streams, 0, "channel must clear the stream threshold")

	w, h := 24, 24
	for i, isStream := range net.StreamMask {
		if !isStream {
			require.Zero(t, net.Order[i])
			continue
		}
		require.GreaterOrEqual(t, net.Order[i], uint16(1))

		// Recompute the Horton rule from stream donors.
		var maxOrder uint16
		maxCount := 0
		r, c := i/w, i%w
		for code := 1; code <= 8; code++ {
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
				maxOrder, maxCount = net.Order[ni], 1
			case net.Order[ni] == maxOrder:
				maxCount++
			}
		}
		want := uint16(1)
		if maxOrder > 0 {
			want = maxOrder
			if maxCount >= 2 {
				want++
			}
		}
		require.Equal(t, want, net.Order[i], "cell %d", i)
	}
}

func TestExtractStreams_ThresholdRespectsClass(t *testing.T) {
	hf := southSlope(t, 16, 16)
	flow := ComputeFlow(hf)

	// Cratonic demands 500 cells of support; a 16x16 tile cannot reach it.
	net := ExtractStreams(flow, grid.Cratonic, 16, 16)
	for i, s := range net.StreamMask {
		assert.False(t, s, "cell %d", i)
	}
}
