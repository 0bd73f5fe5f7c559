package synthesis

import (
	"fmt"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"

	"github.com/samber/lo"
)

// Lines cuts the frame into (h+1)*(v+1) percent bands, row-major over the
// horizontal bands. Only line positions matter here; spans are visual.
// Coincident lines yield zero-size bands, which are kept so slot indices
// stay aligned with the line counts.
func (e *Engine) Lines(frame geometry.VideoFrame, params types.LineParams, existing []types.GifConfig) []types.GifConfig {
	rowEdges := region.BandEdges(params.Horizontal, params.Unit, frame)
	colEdges := region.BandEdges(params.Vertical, params.Unit, frame)
	rows, columns := len(rowEdges)-1, len(colEdges)-1

	return lo.Times(rows*columns, func(k int) types.GifConfig {
		h, v := k/columns, k%columns
		crop := region.CropRegion{
			X:      colEdges[v],
			Y:      rowEdges[h],
			Width:  colEdges[v+1] - colEdges[v],
			Height: rowEdges[h+1] - rowEdges[h],
			Unit:   region.Percent,
		}
		return e.slot(existing, k, fmt.Sprintf("line_%d_%d.gif", h, v), crop)
	})
}
