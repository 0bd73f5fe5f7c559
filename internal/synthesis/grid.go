package synthesis

import (
	"fmt"
	"math"

	"gifcrop/internal/region"
	"gifcrop/internal/types"

	"github.com/samber/lo"
)

// Grid tiles the frame row-major into percent cells. Counts below one are
// raised to one; there is no upper bound.
func (e *Engine) Grid(params types.GridParams, existing []types.GifConfig) []types.GifConfig {
	rows := max(params.Rows, types.MinGridCells)
	columns := max(params.Columns, types.MinGridCells)

	return lo.Times(rows*columns, func(k int) types.GifConfig {
		row, col := k/columns, k%columns
		x, width := cell(col, columns)
		y, height := cell(row, rows)
		crop := region.CropRegion{
			X:      x,
			Y:      y,
			Width:  width,
			Height: height,
			Unit:   region.Percent,
		}
		return e.slot(existing, k, fmt.Sprintf("grid_%d_%d.gif", row, col), crop)
	})
}

// cell returns the start and size of cell i of n along a 0..100 axis.
// Neighbouring cells share an edge and start+size never passes 100.
func cell(i, n int) (start, size float64) {
	start = gridEdge(i, n)
	size = gridEdge(i+1, n) - start
	for start+size > 100 {
		size = math.Nextafter(size, 0)
	}
	return start, size
}

func gridEdge(i, n int) float64 {
	if i >= n {
		return 100
	}
	return float64(i) * 100 / float64(n)
}
