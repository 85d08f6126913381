package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

func tileField(t *testing.T, size int) *grid.HeightField {
	t.Helper()
	hf, err := grid.NewHeightField(size, size, grid.Bounds{LatMin: 0, LatMax: 0.2, LonMin: 0, LonMax: 0.2})
	require.NoError(t, err)
	return hf
}

func TestPercentileRank(t *testing.T) {
	rank := percentileRank([]float64{30, 10, 20})
	assert.Equal(t, []float64{1, 0, 0.5}, rank)
}

func TestSolveGamma_HitsTargetMean(t *testing.T) {
	ranks := make([]float64, 4096)
	for i := range ranks {
		ranks[i] = float64(i) / float64(len(ranks)-1)
	}
	for _, target := range []float64{0.30, 0.42, 0.50} {
		g := solveGamma(ranks, target)
		mean := 0.0
		for _, p := range ranks {
			mean += math.Pow(p, g)
		}
		mean /= float64(len(ranks))
		assert.InDelta(t, target, mean, 1e-4, "target %v", target)
	}
}

func TestGenerate_HypsometricTarget(t *testing.T) {
	for _, class := range grid.TerrainClasses {
		hf := tileField(t, 128)
		err := Generate(Params{
			Seed:                42,
			Class:               class,
			HBase:               HBaseFor(class),
			HVariance:           0.15,
			MountainHeightScale: 1,
			UpliftScale:         1,
		}, hf)
		require.NoError(t, err)

		min, max := hf.MinMax()
		mean := 0.0
		for _, z := range hf.Data {
			mean += z
		}
		mean /= float64(len(hf.Data))
		hi := (mean - min) / (max - min)
		assert.InDelta(t, TargetHIFor(class), hi, 0.005, "class %s", class)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	run := func() *grid.HeightField {
		hf := tileField(t, 64)
		require.NoError(t, Generate(Params{
			Seed: 7, Class: grid.FluvialHumid, HBase: 0.75, HVariance: 0.15,
			MountainHeightScale: 1, UpliftScale: 1,
		}, hf))
		return hf
	}
	assert.Equal(t, run().Data, run().Data)
}

func TestGenerate_SeedChangesField(t *testing.T) {
	gen := func(seed uint32) *grid.HeightField {
		hf := tileField(t, 64)
		require.NoError(t, Generate(Params{
			Seed: seed, Class: grid.FluvialHumid, HBase: 0.75, HVariance: 0.15,
			MountainHeightScale: 1, UpliftScale: 1,
		}, hf))
		return hf
	}
	assert.NotEqual(t, gen(1).Data, gen(2).Data)
}

func TestGenerate_FiniteEverywhere(t *testing.T) {
	hf := tileField(t, 96)
	angles := make([]float64, 96*96)
	intensity := make([]float64, 96*96)
	for i := range intensity {
		angles[i] = 0.7
		intensity[i] = 0.8
	}
	require.NoError(t, Generate(Params{
		Seed: 99, Class: grid.Alpine, HBase: 0.9, HVariance: 0.25,
		GrainAngle: angles, GrainIntensity: intensity, GrainIntensityScale: 1.2,
		MountainHeightScale: 1.3, UpliftScale: 2,
	}, hf))
	assert.NoError(t, hf.CheckFinite())
}

func TestClassTables_CoverEveryClass(t *testing.T) {
	for _, class := range grid.TerrainClasses {
		assert.Greater(t, HBaseFor(class), 0.0)
		assert.Greater(t, ElevRangeFor(class), 0.0)
		assert.Greater(t, TargetHIFor(class), 0.0)
		assert.Less(t, TargetHIFor(class), 1.0)
	}
}
