package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/spectrum-art/terra-incognita/internal/worldgen/orchestrator"
)

// Config is the TOML file schema; flags override file values.
type Config struct {
	Seed                     uint32  `toml:"seed"`
	TectonicActivity         float64 `toml:"tectonic_activity"`
	WaterAbundance           float64 `toml:"water_abundance"`
	SurfaceAge               float64 `toml:"surface_age"`
	ClimateDiversity         float64 `toml:"climate_diversity"`
	Glaciation               float64 `toml:"glaciation"`
	ContinentalFragmentation float64 `toml:"continental_fragmentation"`
	MountainPrevalence       float64 `toml:"mountain_prevalence"`

	Width  int `toml:"width"`
	Height int `toml:"height"`

	Output       string `toml:"output"`
	ReferenceDir string `toml:"reference_dir"`
	MetricsAddr  string `toml:"metrics_addr"`
}

// defaultConfig matches the UI's default slider positions.
func defaultConfig() Config {
	return Config{
		Seed:                     42,
		TectonicActivity:         0.5,
		WaterAbundance:           0.55,
		SurfaceAge:               0.5,
		ClimateDiversity:         0.5,
		Glaciation:               0.30,
		ContinentalFragmentation: 0.5,
		MountainPrevalence:       0.5,
		Width:                    512,
		Height:                   256,
	}
}

// addSliderFlags registers the shared parameter flags on a command.
func addSliderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Uint32("seed", 42, "master seed")
	f.Float64("tectonic-activity", 0.5, "tectonic activity [0,1]")
	f.Float64("water-abundance", 0.55, "water abundance [0,1]")
	f.Float64("surface-age", 0.5, "surface age [0,1]")
	f.Float64("climate-diversity", 0.5, "climate diversity [0,1]")
	f.Float64("glaciation", 0.30, "glaciation [0,1]")
	f.Float64("fragmentation", 0.5, "continental fragmentation [0,1]")
	f.Float64("mountain-prevalence", 0.5, "mountain prevalence [0,1]")
	f.Int("width", 512, "grid width")
	f.Int("height", 256, "grid height")
}

// loadConfig merges the optional TOML file with any explicitly set flags.
func loadConfig(cmd *cobra.Command) (Config, error) {
	cfg := defaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint32("seed")
	}
	if f.Changed("tectonic-activity") {
		cfg.TectonicActivity, _ = f.GetFloat64("tectonic-activity")
	}
	if f.Changed("water-abundance") {
		cfg.WaterAbundance, _ = f.GetFloat64("water-abundance")
	}
	if f.Changed("surface-age") {
		cfg.SurfaceAge, _ = f.GetFloat64("surface-age")
	}
	if f.Changed("climate-diversity") {
		cfg.ClimateDiversity, _ = f.GetFloat64("climate-diversity")
	}
	if f.Changed("glaciation") {
		cfg.Glaciation, _ = f.GetFloat64("glaciation")
	}
	if f.Changed("fragmentation") {
		cfg.ContinentalFragmentation, _ = f.GetFloat64("fragmentation")
	}
	if f.Changed("mountain-prevalence") {
		cfg.MountainPrevalence, _ = f.GetFloat64("mountain-prevalence")
	}
	if f.Changed("width") {
		cfg.Width, _ = f.GetInt("width")
	}
	if f.Changed("height") {
		cfg.Height, _ = f.GetInt("height")
	}
	return cfg, nil
}

// globalParams converts the merged config into the orchestrator input.
func (c Config) globalParams() orchestrator.GlobalParams {
	return orchestrator.GlobalParams{
		Seed:                     c.Seed,
		TectonicActivity:         c.TectonicActivity,
		WaterAbundance:           c.WaterAbundance,
		SurfaceAge:               c.SurfaceAge,
		ClimateDiversity:         c.ClimateDiversity,
		Glaciation:               c.Glaciation,
		ContinentalFragmentation: c.ContinentalFragmentation,
		MountainPrevalence:       c.MountainPrevalence,
		Width:                    c.Width,
		Height:                   c.Height,
	}
}
