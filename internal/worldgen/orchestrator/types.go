package orchestrator

import (
	"errors"

	"github.com/google/uuid"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/realism"
)

// ErrInvalidParam is returned when a slider leaves [0, 1].
var ErrInvalidParam = errors.New("orchestrator: slider out of [0, 1]")

// GlobalParams is the full external input: eight sliders plus a seed.
// Width and Height default to the canonical 512x256 planet when zero.
type GlobalParams struct {
	Seed uint32 `json:"seed"`

	TectonicActivity         float64 `json:"tectonic_activity"`
	WaterAbundance           float64 `json:"water_abundance"`
	SurfaceAge               float64 `json:"surface_age"`
	ClimateDiversity         float64 `json:"climate_diversity"`
	Glaciation               float64 `json:"glaciation"`
	ContinentalFragmentation float64 `json:"continental_fragmentation"`
	MountainPrevalence       float64 `json:"mountain_prevalence"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// DebugParams are the per-stage inputs the sliders resolve to.
type DebugParams struct {
	Class               grid.TerrainClass  `json:"-"`
	ClassName           string             `json:"terrain_class"`
	Glacial             grid.GlacialClass  `json:"-"`
	GlacialName         string             `json:"glacial_class"`
	GrainIntensityScale float64            `json:"grain_intensity_scale"`
	UpliftScale         float64            `json:"uplift_scale"`
	MountainHeightScale float64            `json:"mountain_height_scale"`
	ErosionScale        float64            `json:"erosion_scale"`
	HVariance           float64            `json:"h_variance"`
	HBase               float64            `json:"h_base"`
	Fragmentation       float64            `json:"fragmentation"`
}

// PlanetResult is the assembled output of one generation call.
type PlanetResult struct {
	RunID            uuid.UUID      `json:"run_id"`
	Seed             uint32         `json:"seed"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Heights          []float32      `json:"-"`
	Regimes          []uint8        `json:"-"`
	Score            *realism.Score `json:"score"`
	GenerationTimeMS float64        `json:"generation_time_ms"`
}

// GenerationMetadata mirrors the result identity for logging sinks.
type GenerationMetadata struct {
	RunID uuid.UUID
	Seed  uint32
}
