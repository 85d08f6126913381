package hydro

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// Apply runs the full hydraulic stage in place on hf: routing, stream-power
// erosion, mass wasting, glacial carving and basin delineation.
func Apply(p Params, hf *grid.HeightField) (*Result, error) {
	if hf.Width < 3 || hf.Height < 3 {
		return nil, grid.ErrInvalidGrid
	}
	if p.Glacial != grid.GlacialNone && p.GlacialMask == nil {
		return nil, fmt.Errorf("hydro: glacial class %s requires a glacial mask", p.Glacial)
	}
	start := time.Now()

	flow := streamPowerErosion(hf, p)
	net := ExtractStreams(flow, p.Class, hf.Width, hf.Height)

	massWasting(hf, p)

	if p.Glacial != grid.GlacialNone {
		glacialCarving(hf, flow, net, p.GlacialMask)
	}

	// Final routing on the settled surface; basins are read off this pass.
	flow = ComputeFlow(hf)
	net = ExtractStreams(flow, p.Class, hf.Width, hf.Height)
	basins := DelineateBasins(hf, flow, net)

	if err := hf.CheckFinite(); err != nil {
		return nil, err
	}

	streamCells := 0
	for _, s := range net.StreamMask {
		if s {
			streamCells++
		}
	}
	log.Info().
		Str("class", p.Class.String()).
		Int("stream_cells", streamCells).
		Int("basins", len(basins)).
		Dur("duration", time.Since(start)).
		Msg("Hydraulic shaping complete")

	return &Result{Flow: flow, Network: net, Basins: basins}, nil
}
