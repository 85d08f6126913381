package hydro

import (
	"container/heap"
	"math"

	"github.com/spectrum-art/terra-incognita/internal/grid"
)

// flatEpsilon nudges raised cells above their spill elevation so flats drain.
// Small enough to stay invisible at metre scale even across a 512-cell chain.
const flatEpsilon = 1e-4

// floodItem orders cells by elevation with an index tie-break. The float is
// bit-reinterpreted into a totally ordered integer so NaN-free comparison is
// branchless and exact.
type floodItem struct {
	key uint64
	idx int
}

func floatKey(f float64) uint64 {
	b := math.Float64bits(f)
	if b&(1<<63) != 0 {
		return ^b
	}
	return b | (1 << 63)
}

type floodHeap []floodItem

func (h floodHeap) Len() int { return len(h) }
func (h floodHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].idx < h[j].idx
}
func (h floodHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *floodHeap) Push(x any)        { *h = append(*h, x.(floodItem)) }
func (h *floodHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PriorityFlood fills interior depressions (Barnes 2014). Border cells seed a
// min-heap at their own elevation; popping outward raises every landlocked
// cell to its lowest spill path. Every cell is visited exactly once, and
// re-running on an already-filled surface is a no-op.
func PriorityFlood(hf *grid.HeightField) []float64 {
	w, h := hf.Width, hf.Height
	filled := make([]float64, w*h)
	copy(filled, hf.Data)
	visited := make([]bool, w*h)

	fh := make(floodHeap, 0, 2*(w+h))
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if isBorder(r, c, w, h) {
				i := r*w + c
				visited[i] = true
				fh = append(fh, floodItem{key: floatKey(filled[i]), idx: i})
			}
		}
	}
	heap.Init(&fh)

	for fh.Len() > 0 {
		cur := heap.Pop(&fh).(floodItem)
		r, c := cur.idx/w, cur.idx%w
		spill := filled[cur.idx]

		for code := 1; code <= 8; code++ {
			nr, nc := r+dirDR[code], c+dirDC[code]
			if nr < 0 || nr >= h || nc < 0 || nc >= w {
				continue
			}
			ni := nr*w + nc
			if visited[ni] {
				continue
			}
			visited[ni] = true
			if filled[ni] < spill+flatEpsilon {
				filled[ni] = spill + flatEpsilon
			}
			heap.Push(&fh, floodItem{key: floatKey(filled[ni]), idx: ni})
		}
	}
	return filled
}
