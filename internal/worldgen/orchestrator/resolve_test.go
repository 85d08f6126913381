package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

func defaultParams() GlobalParams {
	return GlobalParams{
		Seed:                     42,
		TectonicActivity:         0.5,
		WaterAbundance:           0.55,
		SurfaceAge:               0.5,
		ClimateDiversity:         0.5,
		Glaciation:               0.30,
		ContinentalFragmentation: 0.5,
		MountainPrevalence:       0.5,
	}
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	p := defaultParams()
	p.Glaciation = 1.2
	assert.ErrorIs(t, p.Validate(), ErrInvalidParam)

	p = defaultParams()
	p.TectonicActivity = -0.1
	assert.ErrorIs(t, p.Validate(), ErrInvalidParam)

	assert.NoError(t, defaultParams().Validate())
}

func TestResolveClass_Table(t *testing.T) {
	tests := []struct {
		name       string
		wa, mp, sa float64
		want       grid.TerrainClass
	}{
		{"dry planets are arid regardless of mountains", 0.2, 0.9, 0.5, grid.FluvialArid},
		{"mountainous wet planets are alpine", 0.5, 0.8, 0.5, grid.Alpine},
		{"very wet planets are coastal", 0.8, 0.5, 0.5, grid.Coastal},
		{"old flat planets are cratonic", 0.5, 0.1, 0.9, grid.Cratonic},
		{"defaults are fluvial humid", 0.55, 0.5, 0.5, grid.FluvialHumid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			p.WaterAbundance, p.MountainPrevalence, p.SurfaceAge = tt.wa, tt.mp, tt.sa
			assert.Equal(t, tt.want, resolveClass(p))
		})
	}
}

func TestResolve_DerivedFormulas(t *testing.T) {
	p := defaultParams()
	p.TectonicActivity = 0
	p.SurfaceAge = 0
	p.WaterAbundance = 0.55
	p.ClimateDiversity = 0.4
	p.MountainPrevalence = 0.5

	d, err := Resolve(p)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, d.GrainIntensityScale, 1e-12)
	assert.InDelta(t, 0.5, d.UpliftScale, 1e-12)
	assert.InDelta(t, 1.0, d.MountainHeightScale, 1e-12)
	assert.InDelta(t, (0.3+0.55*1.4)*0.3, d.ErosionScale, 1e-12)
	assert.InDelta(t, 0.16, d.HVariance, 1e-12)
	assert.InDelta(t, 0.80, d.HBase, 1e-12) // fluvial humid base, zero ageing
	assert.InDelta(t, 0.5, d.Fragmentation, 1e-12)
	assert.Equal(t, grid.GlacialFormer, d.Glacial)
}

func TestResolve_SurfaceAgeLowersHurstBase(t *testing.T) {
	young := defaultParams()
	young.SurfaceAge = 0
	old := defaultParams()
	old.SurfaceAge = 1

	dy, err := Resolve(young)
	require.NoError(t, err)
	do, err := Resolve(old)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, dy.HBase-do.HBase, 1e-12)
}

func TestResolve_IsPure(t *testing.T) {
	a, err := Resolve(defaultParams())
	require.NoError(t, err)
	b, err := Resolve(defaultParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
