package grid

import (
	"math"
	"runtime"
	"sync"
)

// HornGradient estimates (dz/dx, dz/dy) at (row, col) with the 3x3
// weighted-central-difference kernel. Units are metres of rise per metre
// of run. Border cells clamp their stencil to the grid.
func (h *HeightField) HornGradient(r, c int) (gx, gy float64) {
	cs := h.CellsizeM()
	clampR := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= h.Height {
			return h.Height - 1
		}
		return v
	}
	clampC := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= h.Width {
			return h.Width - 1
		}
		return v
	}
	z := func(dr, dc int) float64 {
		return h.At(clampR(r+dr), clampC(c+dc))
	}

	// Horn 1981 kernel. x grows east (increasing col), y grows north (decreasing row).
	gx = ((z(-1, 1) + 2*z(0, 1) + z(1, 1)) - (z(-1, -1) + 2*z(0, -1) + z(1, -1))) / (8 * cs)
	gy = ((z(-1, -1) + 2*z(-1, 0) + z(-1, 1)) - (z(1, -1) + 2*z(1, 0) + z(1, 1))) / (8 * cs)
	return gx, gy
}

// HornSlope returns the gradient magnitude at (row, col).
func (h *HeightField) HornSlope(r, c int) float64 {
	gx, gy := h.HornGradient(r, c)
	return math.Sqrt(gx*gx + gy*gy)
}

// ParallelRows runs fn over every row using one goroutine per CPU.
// Falls back to a plain loop on single-CPU targets (the WASM case).
func ParallelRows(height int, fn func(r int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers <= 1 || height < workers*2 {
		for r := 0; r < height; r++ {
			fn(r)
		}
		return
	}

	var wg sync.WaitGroup
	rows := make(chan int, height)
	for r := 0; r < height; r++ {
		rows <- r
	}
	close(rows)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rows {
				fn(r)
			}
		}()
	}
	wg.Wait()
}
