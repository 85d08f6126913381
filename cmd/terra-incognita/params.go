package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spectrum-art/terra-incognita/internal/worldgen/orchestrator"
)

func paramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Resolve sliders to per-stage parameters without generating",
		RunE:  runParams,
	}
	addSliderFlags(cmd)
	return cmd
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resolved, err := orchestrator.Resolve(cfg.globalParams())
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
