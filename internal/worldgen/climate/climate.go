// Package climate produces the precipitation, seasonality and glaciation
// fields consumed by the noise-synthesis and hydraulic stages.
package climate

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spectrum-art/terra-incognita/internal/grid"
	"github.com/spectrum-art/terra-incognita/internal/noise"
	"github.com/spectrum-art/terra-incognita/internal/worldgen/plates"
)

// Params configures the climate stage.
type Params struct {
	Seed             uint32
	WaterAbundance   float64
	ClimateDiversity float64
	Glaciation       float64
}

// Layer is the climate output. MAP is mean annual precipitation in mm/yr.
type Layer struct {
	Width       int
	Height      int
	MAP         []float64
	Seasonality []float64
	GlacialMask []grid.GlacialClass
}

const (
	itczAmp, itczSigma           = 2200.0, 8.0
	temperateAmp, temperateSigma = 900.0, 11.0
	temperateLat                 = 50.0
	aridAmp, aridSigma           = -700.0, 7.0
	aridLat                      = 28.0
	polarFloor                   = 150.0
)

func gaussian(lat, center, sigma float64) float64 {
	d := (lat - center) / sigma
	return math.Exp(-d * d / 2)
}

// LatitudinalMAP is the zonal precipitation profile before noise and
// orographic correction: ITCZ peak, arid belts, temperate peaks, polar floor.
func LatitudinalMAP(lat, waterAbundance float64) float64 {
	m := itczAmp * gaussian(lat, 0, itczSigma)
	m += temperateAmp * (gaussian(lat, temperateLat, temperateSigma) + gaussian(lat, -temperateLat, temperateSigma))
	m += aridAmp * (gaussian(lat, aridLat, aridSigma) + gaussian(lat, -aridLat, aridSigma))
	if m < polarFloor {
		m = polarFloor
	}
	return m * (0.25 + 1.5*waterAbundance)
}

// Generate builds the climate layer on the plate simulation's grid.
func Generate(p Params, sim *plates.Simulation) *Layer {
	start := time.Now()
	w, h := sim.Width, sim.Height
	n := w * h
	layer := &Layer{
		Width:       w,
		Height:      h,
		MAP:         make([]float64, n),
		Seasonality: make([]float64, n),
		GlacialMask: make([]grid.GlacialClass, n),
	}

	hf := grid.HeightField{Width: w, Height: h, Bounds: sim.Bounds}
	fbm := noise.NewFBM(noise.SubSeed(p.Seed, noise.StageClimate), 3, 2/float64(w), 2)

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i := hf.Idx(r, c)
			lat, _ := hf.LatLon(r, c)
			m := LatitudinalMAP(lat, p.WaterAbundance)

			// cd = 0 leaves the zonal profile untouched.
			n01 := (fbm.Eval(float64(c), float64(r), math.Pow(2, -0.8)) + 1) / 2
			m *= 1 + p.ClimateDiversity*0.4*(n01-0.5)*2
			if m < 0 {
				m = 0
			}
			layer.MAP[i] = m
		}
	}

	layer.applyOrographicCorrection(sim, &hf)

	activeLat := 90 - p.Glaciation*60
	formerLat := activeLat - p.Glaciation*30

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i := hf.Idx(r, c)
			lat, _ := hf.LatLon(r, c)

			wet := layer.MAP[i] / 2500
			if wet > 1 {
				wet = 1
			}
			layer.Seasonality[i] = math.Pow(math.Abs(lat)/90, 0.7) * (1 - 0.8*wet)

			absLat := math.Abs(lat)
			switch {
			case absLat >= activeLat:
				layer.GlacialMask[i] = grid.GlacialActive
			case absLat >= formerLat:
				layer.GlacialMask[i] = grid.GlacialFormer
			}
		}
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Climate layer complete")
	return layer
}

// applyOrographicCorrection wets the windward and dries the leeward flanks of
// compressional mountain belts, using the latitude-dependent prevailing wind.
func (l *Layer) applyOrographicCorrection(sim *plates.Simulation, hf *grid.HeightField) {
	radius := l.Width / 8
	if radius < 4 {
		radius = 4
	}

	mult := make([]float64, len(l.MAP))
	for i := range mult {
		mult[i] = 1
	}

	for r := 0; r < l.Height; r++ {
		lat, _ := hf.LatLon(r, 0)

		// Trade winds blow westward below 30 degrees; westerlies and polar
		// easterlies blow eastward above.
		windFromEast := math.Abs(lat) < 30

		c := 0
		for c < l.Width {
			i := hf.Idx(r, c)
			if sim.RegimeField[i] != grid.ActiveCompressional {
				c++
				continue
			}
			// Measure the contiguous belt run.
			start := c
			for c < l.Width && sim.RegimeField[hf.Idx(r, c)] == grid.ActiveCompressional {
				c++
			}
			end := c - 1

			bw := float64(end - start + 1)
			if bw > 8 {
				bw = 8
			}
			frac := (bw - 1) / 7
			mw := 1.5 + frac*1.5
			ml := 0.7 - frac*0.4

			eastMult, westMult := mw, ml
			if !windFromEast {
				eastMult, westMult = ml, mw
			}
			for d := 1; d <= radius; d++ {
				if ec := end + d; ec < l.Width {
					mult[hf.Idx(r, ec)] *= eastMult
				}
				if wc := start - d; wc >= 0 {
					mult[hf.Idx(r, wc)] *= westMult
				}
			}
		}
	}

	for i := range l.MAP {
		m := mult[i]
		if m > 3.5 {
			m = 3.5
		}
		if m < 0.2 {
			m = 0.2
		}
		l.MAP[i] *= m
	}
}
