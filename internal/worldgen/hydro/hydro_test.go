package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// tileBounds give metre-scale cells so slope thresholds engage.
var tileBounds = grid.Bounds{LatMin: 0, LatMax: 0.01, LonMin: 0, LonMax: 0.01}

func tileField(t *testing.T, w, h int) *grid.HeightField {
	t.Helper()
	hf, err := grid.NewHeightField(w, h, tileBounds)
	require.NoError(t, err)
	return hf
}

func TestApply_RejectsTinyGrid(t *testing.T) {
	hf := &grid.HeightField{Width: 2, Height: 2, Data: make([]float64, 4), Bounds: tileBounds}
	_, err := Apply(Params{Class: grid.FluvialHumid}, hf)
	assert.ErrorIs(t, err, grid.ErrInvalidGrid)
}

func TestApply_GlacialRequiresMask(t *testing.T) {
	hf := tileField(t, 8, 8)
	_, err := Apply(Params{Class: grid.Alpine, Glacial: grid.GlacialActive}, hf)
	assert.Error(t, err)
}

func TestMassWasting_RelaxesCliff(t *testing.T) {
	hf := tileField(t, 10, 10)
	// Sheer scarp between columns 4 and 5, far beyond any angle of repose.
	total := 0.0
	for r := 0; r < 10; r++ {
		for c := 0; c < 5; c++ {
			hf.Set(r, c, 4000)
			total += 4000
		}
	}

	massWasting(hf, Params{Class: grid.FluvialHumid})

	// The scarp edge sheds material into the low side.
	assert.Less(t, hf.At(5, 4), 4000.0, "cliff edge must shed material")
	gained := false
	for r := 1; r < 9; r++ {
		if hf.At(r, 5) > 0 {
			gained = true
			break
		}
	}
	assert.True(t, gained, "low side must receive material")

	// Mass is conserved: transfers only move material.
	after := 0.0
	for _, z := range hf.Data {
		after += z
	}
	assert.InDelta(t, total, after, 1e-6)
}

func TestMassWasting_BordersOnlyReceive(t *testing.T) {
	hf := tileField(t, 8, 8)
	for c := 0; c < 8; c++ {
		hf.Set(0, c, 4000)
	}
	before := make([]float64, len(hf.Data))
	copy(before, hf.Data)

	massWasting(hf, Params{Class: grid.Coastal})

	for c := 0; c < 8; c++ {
		assert.GreaterOrEqual(t, hf.At(0, c), before[0*8+c]-1e-9, "border cell %d lost material", c)
	}
}

func TestStreamPowerErosion_LowersChannels(t *testing.T) {
	hf := vValleyTile(t, 24, 24)
	before := hf.At(20, 12)

	flow := streamPowerErosion(hf, Params{Class: grid.FluvialHumid, ErosionScale: 1})
	require.NotNil(t, flow)

	assert.Less(t, hf.At(20, 12), before, "channel floor must incise")
	assert.NoError(t, hf.CheckFinite())
}

func vValleyTile(t *testing.T, w, h int) *grid.HeightField {
	hf := tileField(t, w, h)
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

func TestDelineateBasins_CoversEveryCell(t *testing.T) {
	hf := vValleyTile(t, 24, 24)
	flow := ComputeFlow(hf)
	net := ExtractStreams(flow, grid.FluvialHumid, 24, 24)

	basins := DelineateBasins(hf, flow, net)
	require.NotEmpty(t, basins)

	covered := 0
	for _, b := range basins {
		assert.Greater(t, b.AreaCells, 0)
		assert.GreaterOrEqual(t, b.HypsometricIntegral, 0.0)
		assert.LessOrEqual(t, b.HypsometricIntegral, 1.0)
		covered += b.AreaCells
	}
	assert.Equal(t, 24*24, covered, "every cell belongs to exactly one basin")
}

func TestApply_FullPipelineOnTile(t *testing.T) {
	hf := vValleyTile(t, 32, 32)
	res, err := Apply(Params{Class: grid.FluvialHumid, ErosionScale: 1}, hf)
	require.NoError(t, err)

	assert.NoError(t, hf.CheckFinite())
	require.NotNil(t, res.Flow)
	require.NotNil(t, res.Network)
	require.NotEmpty(t, res.Basins)

	// Post-condition: routing exists for every interior cell.
	for r := 1; r < 31; r++ {
		for c := 1; c < 31; c++ {
			require.NotZero(t, res.Flow.Dir[r*32+c], "cell (%d,%d)", r, c)
		}
	}
}

func TestGlacialCarving_WidensValley(t *testing.T) {
	// Box canyon: flat floor dipping gently to the centre line, sheer walls
	// from seven cells out. The parabolic section sits above the floor corners.
	hf := tileField(t, 32, 32)
	for r := 0; r < 32; r++ {
		for c := 0; c < 32; c++ {
			dx := c - 16
			if dx < 0 {
				dx = -dx
			}
			z := float64(32-r)*10 + 0.1*float64(dx)
			if dx > 6 {
				z += 300
			}
			hf.Set(r, c, z)
		}
	}
	flow := ComputeFlow(hf)
	net := ExtractStreams(flow, grid.FluvialHumid, 32, 32)

	mask := make([]grid.GlacialClass, 32*32)
	for i := range mask {
		mask[i] = grid.GlacialActive
	}

	before := hf.Clone()
	glacialCarving(hf, flow, net, mask)

	assert.NoError(t, hf.CheckFinite())

	// U-valley fill must raise at least one inner-wall cell toward the
	// parabola.
	raised := false
	for i := range hf.Data {
		if hf.Data[i] > before.Data[i]+1e-9 {
			raised = true
			break
		}
	}
	assert.True(t, raised, "parabolic section should fill the V floor")
}

func TestOppositeDir(t *testing.T) {
	assert.Equal(t, uint8(5), oppositeDir(1)) // N -> S
	assert.Equal(t, uint8(1), oppositeDir(5)) // S -> N
	assert.Equal(t, uint8(6), oppositeDir(2)) // NE -> SW
	assert.Equal(t, uint8(4), oppositeDir(8)) // NW -> SE
}
