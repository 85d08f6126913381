package orchestrator

import (
	"fmt"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/synth"
)

// Validate rejects sliders outside [0, 1].
func (p GlobalParams) Validate() error {
	sliders := map[string]float64{
		"tectonic_activity":         p.TectonicActivity,
		"water_abundance":           p.WaterAbundance,
		"surface_age":               p.SurfaceAge,
		"climate_diversity":         p.ClimateDiversity,
		"glaciation":                p.Glaciation,
		"continental_fragmentation": p.ContinentalFragmentation,
		"mountain_prevalence":       p.MountainPrevalence,
	}
	for name, v := range sliders {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParam, name, v)
		}
	}
	return nil
}

// resolveClass maps the water and mountain sliders to a terrain class.
// Arid and alpine dominate; coastal and cratonic fall through before the
// humid default.
func resolveClass(p GlobalParams) grid.TerrainClass {
	switch {
	case p.WaterAbundance < 0.30:
		return grid.FluvialArid
	case p.MountainPrevalence > 0.7:
		return grid.Alpine
	case p.WaterAbundance > 0.75:
		return grid.Coastal
	case p.MountainPrevalence < 0.2 && p.SurfaceAge > 0.7:
		return grid.Cratonic
	default:
		return grid.FluvialHumid
	}
}

// Resolve derives every per-stage parameter from the sliders. Pure: no
// simulation runs and no randomness is drawn.
func Resolve(p GlobalParams) (DebugParams, error) {
	if err := p.Validate(); err != nil {
		return DebugParams{}, err
	}
	class := resolveClass(p)
	glacial := grid.GlacialClassFromSlider(p.Glaciation)

	d := DebugParams{
		Class:               class,
		ClassName:           class.String(),
		Glacial:             glacial,
		GlacialName:         glacial.String(),
		GrainIntensityScale: (0.3 + p.TectonicActivity*1.4) * (1 - p.SurfaceAge*0.40),
		UpliftScale:         0.5 + p.TectonicActivity*1.5,
		MountainHeightScale: 0.7 + p.MountainPrevalence*0.6,
		ErosionScale:        (0.3 + p.WaterAbundance*1.4) * (0.3 + p.SurfaceAge*1.4),
		HVariance:           0.10 + p.ClimateDiversity*0.15,
		HBase:               synth.HBaseFor(class) - p.SurfaceAge*0.10,
		Fragmentation:       p.ContinentalFragmentation,
	}
	return d, nil
}
