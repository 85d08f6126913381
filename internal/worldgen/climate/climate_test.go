package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/plates"
)

func testSim(t *testing.T, seed uint32, w, h int) *plates.Simulation {
	t.Helper()
	sim, err := plates.Simulate(plates.Params{
		Seed:                     seed,
		ContinentalFragmentation: 0.5,
		Width:                    w,
		Height:                   h,
		Bounds:                   grid.PlanetBounds,
	})
	require.NoError(t, err)
	return sim
}

func TestLatitudinalMAP_Shape(t *testing.T) {
	// The ITCZ out-rains the arid belts, which out-rain nothing: the arid
	// dip must undercut the adjacent temperate peak.
	itcz := LatitudinalMAP(0, 0.5)
	arid := LatitudinalMAP(28, 0.5)
	temperate := LatitudinalMAP(50, 0.5)
	polar := LatitudinalMAP(88, 0.5)

	assert.Greater(t, itcz, temperate)
	assert.Less(t, arid, temperate)
	assert.Less(t, polar, temperate)
	assert.Greater(t, polar, 0.0)
}

func TestLatitudinalMAP_ScalesWithWater(t *testing.T) {
	assert.Greater(t, LatitudinalMAP(0, 0.9), LatitudinalMAP(0, 0.2))
}

func TestGenerate_WetCellsHaveLowSeasonality(t *testing.T) {
	for _, seed := range []uint32{42, 7, 99, 1, 100000} {
		sim := testSim(t, seed, 128, 64)
		layer := Generate(Params{Seed: seed, WaterAbundance: 0.9, ClimateDiversity: 0.5, Glaciation: 0.3}, sim)
		for i, m := range layer.MAP {
			if m > 2500 {
				require.LessOrEqual(t, layer.Seasonality[i], 0.20, "seed %d cell %d", seed, i)
			}
		}
	}
}

func TestGenerate_ZeroDiversityLeavesZonalProfile(t *testing.T) {
	sim := testSim(t, 42, 64, 32)
	// With cd = 0 the noise multiplier is exactly 1, so two different seeds
	// produce identical MAP fields on the same plate simulation.
	a := Generate(Params{Seed: 1, WaterAbundance: 0.5, ClimateDiversity: 0}, sim)
	b := Generate(Params{Seed: 2, WaterAbundance: 0.5, ClimateDiversity: 0}, sim)
	assert.Equal(t, a.MAP, b.MAP)
}

func TestGenerate_GlacialLatitudeThresholds(t *testing.T) {
	sim := testSim(t, 42, 128, 64)
	hf := grid.HeightField{Width: 128, Height: 64, Bounds: grid.PlanetBounds}

	// Scenario: glaciation 0.05 puts the Active threshold at 87 degrees;
	// nothing between -80 and +80 may be Active.
	layer := Generate(Params{Seed: 42, WaterAbundance: 0.5, Glaciation: 0.05}, sim)
	for r := 0; r < 64; r++ {
		lat, _ := hf.LatLon(r, 0)
		if lat > -80 && lat < 80 {
			for c := 0; c < 128; c++ {
				require.NotEqual(t, grid.GlacialActive, layer.GlacialMask[r*128+c], "lat %.1f", lat)
			}
		}
	}

	// Zero glaciation leaves the planet ice free.
	none := Generate(Params{Seed: 42, WaterAbundance: 0.5, Glaciation: 0}, sim)
	for i, g := range none.GlacialMask {
		require.Equal(t, grid.GlacialNone, g, "cell %d", i)
	}
}

func TestGenerate_MAPStaysNonNegative(t *testing.T) {
	sim := testSim(t, 99, 64, 32)
	layer := Generate(Params{Seed: 99, WaterAbundance: 0.1, ClimateDiversity: 1}, sim)
	for i, m := range layer.MAP {
		require.GreaterOrEqual(t, m, 0.0, "cell %d", i)
	}
}

func TestGenerate_OrographicContrast(t *testing.T) {
	sim := testSim(t, 42, 128, 64)
	hasBelt := false
	for _, r := range sim.RegimeField {
		if r == grid.ActiveCompressional {
			hasBelt = true
			break
		}
	}
	if !hasBelt {
		t.Skip("no compressional belt for this seed")
	}
	wet := Generate(Params{Seed: 42, WaterAbundance: 0.5}, sim)

	// Somewhere the correction must push MAP above the pure zonal value.
	hf := grid.HeightField{Width: 128, Height: 64, Bounds: grid.PlanetBounds}
	boosted := false
	for r := 0; r < 64 && !boosted; r++ {
		lat, _ := hf.LatLon(r, 0)
		zonal := LatitudinalMAP(lat, 0.5)
		for c := 0; c < 128; c++ {
			if wet.MAP[r*128+c] > zonal*1.3 {
				boosted = true
				break
			}
		}
	}
	assert.True(t, boosted, "orographic correction should create windward wet zones")
}
