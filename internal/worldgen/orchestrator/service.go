// Package orchestrator resolves the eight global sliders into per-stage
// parameters and runs the pipeline: plates, climate, noise synthesis,
// hydraulic shaping, realism scoring.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/metrics"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/climate"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/hydro"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/plates"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/realism"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/synth"
)

// GeneratorService runs planet generation calls.
type GeneratorService struct {
	// ReferenceDir optionally overrides the embedded realism bands.
	ReferenceDir string
}

// NewGeneratorService creates a generator with the embedded reference data.
func NewGeneratorService() *GeneratorService {
	return &GeneratorService{}
}

// Generate runs the full pipeline. The context is checked between stages
// only; a generation call is the smallest interruption granularity.
func (s *GeneratorService) Generate(ctx context.Context, p GlobalParams) (*PlanetResult, error) {
	start := time.Now()

	resolved, err := Resolve(p)
	if err != nil {
		metrics.RecordGeneration("invalid_param")
		return nil, err
	}

	width, height := p.Width, p.Height
	if width == 0 || height == 0 {
		width, height = 512, 256
	}
	hf, err := grid.NewHeightField(width, height, grid.PlanetBounds)
	if err != nil {
		metrics.RecordGeneration("invalid_grid")
		return nil, err
	}

	log.Info().
		Uint32("seed", p.Seed).
		Str("class", resolved.ClassName).
		Int("width", width).
		Int("height", height).
		Msg("Starting planet generation")

	// 1. Plates.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart := time.Now()
	sim, err := plates.Simulate(plates.Params{
		Seed:                     p.Seed,
		ContinentalFragmentation: resolved.Fragmentation,
		Width:                    width,
		Height:                   height,
		Bounds:                   grid.PlanetBounds,
	})
	if err != nil {
		metrics.RecordGeneration("error")
		return nil, fmt.Errorf("plate simulation: %w", err)
	}
	metrics.RecordStage("plates", time.Since(stageStart))

	// 2. Climate (needs the regime field).
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	clim := climate.Generate(climate.Params{
		Seed:             p.Seed,
		WaterAbundance:   p.WaterAbundance,
		ClimateDiversity: p.ClimateDiversity,
		Glaciation:       p.Glaciation,
	}, sim)
	metrics.RecordStage("climate", time.Since(stageStart))

	// 3. Noise synthesis (needs grain and the resolved spectral params).
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	err = synth.Generate(synth.Params{
		Seed:                p.Seed,
		Class:               resolved.Class,
		HBase:               resolved.HBase,
		HVariance:           resolved.HVariance,
		GrainAngle:          sim.GrainAngle,
		GrainIntensity:      sim.GrainIntensity,
		GrainIntensityScale: resolved.GrainIntensityScale,
		MountainHeightScale: resolved.MountainHeightScale,
		UpliftScale:         resolved.UpliftScale,
	}, hf)
	if err != nil {
		metrics.RecordGeneration("error")
		return nil, fmt.Errorf("noise synthesis: %w", err)
	}
	metrics.RecordStage("synth", time.Since(stageStart))

	// 4. Hydraulic shaping (mutates the height field it now owns).
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	var mask []grid.GlacialClass
	if resolved.Glacial != grid.GlacialNone {
		mask = clim.GlacialMask
	}
	hydroRes, err := hydro.Apply(hydro.Params{
		Class:        resolved.Class,
		Erodibility:  sim.Erodibility,
		ErosionScale: resolved.ErosionScale,
		Glacial:      resolved.Glacial,
		GlacialMask:  mask,
	}, hf)
	if err != nil {
		metrics.RecordGeneration("error")
		return nil, fmt.Errorf("hydraulic shaping: %w", err)
	}
	metrics.RecordStage("hydro", time.Since(stageStart))

	// 5. Realism battery.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stageStart = time.Now()
	bands, err := s.loadBands(resolved.Class)
	if err != nil {
		// Partial scoring: every metric is flagged missing.
		log.Warn().Err(err).Msg("Reference bands unavailable; scoring partially")
		bands = realism.Bands{}
	}
	score := realism.Evaluate(&realism.Context{
		Height:  hf,
		Class:   resolved.Class,
		Flow:    hydroRes.Flow,
		Network: hydroRes.Network,
		Basins:  hydroRes.Basins,
	}, bands)
	metrics.RecordStage("realism", time.Since(stageStart))

	result := &PlanetResult{
		RunID:            uuid.New(),
		Seed:             p.Seed,
		Width:            width,
		Height:           height,
		Heights:          toFloat32(hf.Data),
		Regimes:          regimeOrdinals(sim.RegimeField),
		Score:            score,
		GenerationTimeMS: float64(time.Since(start).Microseconds()) / 1000,
	}

	metrics.RecordGeneration("ok")
	metrics.RecordScore(score.Total)
	log.Info().
		Str("run_id", result.RunID.String()).
		Float64("score", score.Total).
		Float64("duration_ms", result.GenerationTimeMS).
		Msg("Planet generation complete")
	return result, nil
}

func (s *GeneratorService) loadBands(class grid.TerrainClass) (realism.Bands, error) {
	if s.ReferenceDir != "" {
		if b, err := realism.LoadBandsFile(s.ReferenceDir, class); err == nil {
			return b, nil
		} else if !errors.Is(err, realism.ErrMissingReferenceData) {
			return nil, err
		}
	}
	return realism.LoadEmbeddedBands(class)
}

func toFloat32(data []float64) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v)
	}
	return out
}

func regimeOrdinals(regimes []grid.TectonicRegime) []uint8 {
	out := make([]uint8, len(regimes))
	for i, r := range regimes {
		out[i] = uint8(r)
	}
	return out
}
