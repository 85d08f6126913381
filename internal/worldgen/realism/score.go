package realism

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Subsystem tags attribute each metric to the stage it validates.
const (
	SubsystemNoise     = "noise"
	SubsystemHydraulic = "hydraulic"
	SubsystemBoth      = "both"
)

// Metric is one entry of the scoring catalogue.
type Metric struct {
	Name      string
	Weight    float64
	Subsystem string
	// NeutralAtPlanetaryScale marks short-lag metrics whose 90 m reference
	// bands are incomparable above 1 km/px; they score 0.5 with raw reported.
	NeutralAtPlanetaryScale bool
	Compute                 func(*Context) float64
}

// Catalogue lists the ten metrics with their score weights (summing to 1).
var Catalogue = []Metric{
	{Name: "hurst", Weight: 0.10, Subsystem: SubsystemNoise, NeutralAtPlanetaryScale: true,
		Compute: func(c *Context) float64 { return hurstExponent(c.Height) }},
	{Name: "roughness_elevation", Weight: 0.10, Subsystem: SubsystemNoise,
		Compute: func(c *Context) float64 { return roughnessElevation(c.Height) }},
	{Name: "multifractal_width", Weight: 0.08, Subsystem: SubsystemNoise,
		Compute: func(c *Context) float64 { return multifractalWidth(c.Height) }},
	{Name: "slope_mode", Weight: 0.08, Subsystem: SubsystemHydraulic,
		Compute: func(c *Context) float64 { return slopeModeDeg(c.Slopes()) }},
	{Name: "aspect_cv", Weight: 0.10, Subsystem: SubsystemNoise,
		Compute: func(c *Context) float64 { return aspectCircularVariance(c.Height) }},
	{Name: "tpi_ratio", Weight: 0.08, Subsystem: SubsystemNoise,
		Compute: func(c *Context) float64 { return tpiRatio(c.Height) }},
	{Name: "hypsometric_integral", Weight: 0.12, Subsystem: SubsystemBoth,
		Compute: func(c *Context) float64 { return hypsometricIntegral(c.Height) }},
	{Name: "geomorphon_l1", Weight: 0.14, Subsystem: SubsystemHydraulic, NeutralAtPlanetaryScale: true,
		Compute: func(c *Context) float64 {
			return GeomorphonL1(c.GeomorphonFractions(), referenceGeomorphonFractions[c.Class])
		}},
	{Name: "drainage_density", Weight: 0.10, Subsystem: SubsystemHydraulic,
		Compute: drainageDensity},
	{Name: "moran_i", Weight: 0.10, Subsystem: SubsystemHydraulic,
		Compute: func(c *Context) float64 { return moranI(c.Height) }},
}

// MetricResult is one scored metric.
type MetricResult struct {
	Name      string  `json:"name"`
	Raw       float64 `json:"raw"`
	Score01   float64 `json:"score01"`
	Passed    bool    `json:"passed"`
	Subsystem string  `json:"subsystem"`
	Missing   bool    `json:"missing,omitempty"`
}

// Score is the weighted realism verdict for one generated field.
type Score struct {
	Total     float64        `json:"total"`
	PerMetric []MetricResult `json:"per_metric"`
}

// Evaluate runs the whole battery against the class reference bands. Metrics
// without a band are flagged missing and score neutrally; the total is
// always defined.
func Evaluate(ctx *Context, bands Bands) *Score {
	start := time.Now()
	planetary := ctx.PlanetaryScale()

	score := &Score{PerMetric: make([]MetricResult, 0, len(Catalogue))}
	for _, m := range Catalogue {
		raw := m.Compute(ctx)
		res := MetricResult{Name: m.Name, Raw: raw, Subsystem: m.Subsystem}

		band, ok := bands[m.Name]
		switch {
		case m.NeutralAtPlanetaryScale && planetary:
			res.Score01 = 0.5
		case !ok:
			res.Score01 = 0.5
			res.Missing = true
		default:
			res.Score01 = BandScore(raw, band.P10, band.P90)
			res.Passed = raw >= band.P10 && raw <= band.P90
		}

		score.Total += m.Weight * res.Score01
		score.PerMetric = append(score.PerMetric, res)
	}
	score.Total *= 100

	log.Info().
		Float64("total", score.Total).
		Dur("duration", time.Since(start)).
		Msg("Realism battery complete")
	return score
}
