package realism

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// ErrMissingReferenceData flags metrics that have no empirical band to score
// against; the battery still returns a partial score.
var ErrMissingReferenceData = errors.New("realism: missing reference data")

// Band is one metric's empirical envelope sampled from reference terrain.
type Band struct {
	P10      float64 `json:"p10"`
	P90      float64 `json:"p90"`
	Mean     float64 `json:"mean"`
	NWindows int     `json:"n_windows"`
}

// Bands maps metric name to its band for one terrain class.
type Bands map[string]Band

//go:embed reference/*.json
var referenceFS embed.FS

// LoadEmbeddedBands returns the reference bands shipped with the module.
func LoadEmbeddedBands(class grid.TerrainClass) (Bands, error) {
	data, err := referenceFS.ReadFile("reference/" + class.String() + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingReferenceData, class)
	}
	var b Bands
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("realism: decode reference for %s: %w", class, err)
	}
	return b, nil
}

// LoadBandsFile reads an external reference file, overriding the embedded set.
func LoadBandsFile(dir string, class grid.TerrainClass) (Bands, error) {
	data, err := os.ReadFile(filepath.Join(dir, class.String()+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingReferenceData, err)
	}
	var b Bands
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("realism: decode reference for %s: %w", class, err)
	}
	return b, nil
}

// BandScore is 1 inside [p10, p90] and degrades linearly to 0 over one
// band-width on either side.
func BandScore(raw, p10, p90 float64) float64 {
	width := p90 - p10
	if width <= 0 {
		if raw == p10 {
			return 1
		}
		return 0
	}
	switch {
	case raw >= p10 && raw <= p90:
		return 1
	case raw < p10:
		s := 1 - (p10-raw)/width
		if s < 0 {
			return 0
		}
		return s
	default:
		s := 1 - (raw-p90)/width
		if s < 0 {
			return 0
		}
		return s
	}
}

// referenceGeomorphonFractions holds the 10-class landform composition of the
// reference terrain per class, in catalogue order: flat, peak, ridge,
// shoulder, spur, slope, hollow, footslope, valley, pit.
var referenceGeomorphonFractions = map[grid.TerrainClass][10]float64{
	grid.Alpine:       {0.04, 0.02, 0.16, 0.03, 0.14, 0.26, 0.13, 0.03, 0.17, 0.02},
	grid.FluvialHumid: {0.10, 0.01, 0.13, 0.04, 0.12, 0.26, 0.12, 0.04, 0.17, 0.01},
	grid.FluvialArid:  {0.14, 0.01, 0.12, 0.04, 0.11, 0.22, 0.11, 0.05, 0.19, 0.01},
	grid.Cratonic:     {0.28, 0.01, 0.09, 0.05, 0.08, 0.16, 0.08, 0.06, 0.18, 0.01},
	grid.Coastal:      {0.22, 0.01, 0.10, 0.05, 0.09, 0.18, 0.09, 0.06, 0.19, 0.01},
}
