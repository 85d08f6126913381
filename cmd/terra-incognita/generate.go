package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spectrum-art/terra-incognita/internal/logging"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/orchestrator"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a planet and print its realism score",
		RunE:  runGenerate,
	}
	addSliderFlags(cmd)
	cmd.Flags().String("out", "", "write raw little-endian float32 heights to this file")
	cmd.Flags().String("reference-dir", "", "directory of reference band JSON files (overrides embedded)")
	cmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.Output = v
	}
	if v, _ := cmd.Flags().GetString("reference-dir"); v != "" {
		cfg.ReferenceDir = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}

	if cfg.MetricsAddr != "" {
		r := chi.NewRouter()
		r.Use(logging.Middleware)
		r.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("Serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, r); err != nil {
				log.Error().Err(err).Msg("Metrics listener stopped")
			}
		}()
	}

	svc := orchestrator.NewGeneratorService()
	svc.ReferenceDir = cfg.ReferenceDir

	result, err := svc.Generate(context.Background(), cfg.globalParams())
	if err != nil {
		return err
	}

	printScore(result)

	if cfg.Output != "" {
		if err := writeHeights(cfg.Output, result); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output).Msg("Wrote height buffer")
	}
	return nil
}

func printScore(result *orchestrator.PlanetResult) {
	fmt.Printf("planet %dx%d  seed %d  run %s\n", result.Width, result.Height, result.Seed, result.RunID)
	fmt.Printf("generated in %.1f ms\n\n", result.GenerationTimeMS)
	fmt.Printf("%-22s %12s %8s  %s\n", "metric", "raw", "score", "subsystem")
	for _, m := range result.Score.PerMetric {
		note := ""
		if m.Missing {
			note = " (missing reference)"
		}
		fmt.Printf("%-22s %12.5f %8.2f  %s%s\n", m.Name, m.Raw, m.Score01, m.Subsystem, note)
	}
	fmt.Printf("\ntotal realism score: %.1f / 100\n", result.Score.Total)
}

// writeHeights dumps the float32 buffer little-endian, row-major, then writes
// a small JSON sidecar (path + ".json") next to it describing the grid.
func writeHeights(path string, result *orchestrator.PlanetResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binary.Write(f, binary.LittleEndian, result.Heights); err != nil {
		return fmt.Errorf("write heights: %w", err)
	}

	meta := map[string]any{
		"width":  result.Width,
		"height": result.Height,
		"seed":   result.Seed,
		"run_id": result.RunID,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path+".json", data, 0o644)
}
