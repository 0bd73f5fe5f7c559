package synthesis

import (
	"fmt"

	"gifcrop/internal/region"
	"gifcrop/internal/types"
)

// Drag emits one pixel config per rectangle, in creation order. A slot whose
// stored crop already matches the rounded rectangle is reused untouched.
func (e *Engine) Drag(regions []region.CropRegion, existing []types.GifConfig) []types.GifConfig {
	out := make([]types.GifConfig, 0, len(regions))
	for i, r := range regions {
		crop := r.Rounded()
		crop.Unit = region.Pixels
		if i < len(existing) && existing[i].Crop.SameBounds(crop) {
			out = append(out, types.CloneConfigs(existing[i : i+1])[0])
			continue
		}
		out = append(out, e.slot(existing, i, fmt.Sprintf("drag_%d.gif", i+1), crop))
	}
	return out
}
