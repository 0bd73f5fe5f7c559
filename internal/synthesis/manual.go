package synthesis

import (
	"fmt"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"

	"github.com/samber/lo"
)

// AddManual appends a full-frame pixel config.
func (e *Engine) AddManual(frame geometry.VideoFrame, existing []types.GifConfig) ([]types.GifConfig, error) {
	if !frame.Known() {
		return existing, errors.ErrFrameUnknown
	}
	out := types.CloneConfigs(existing)
	return append(out, e.newConfig(fmt.Sprintf("manual_%d.gif", len(existing)+1), region.FullFrame(frame))), nil
}

func RemoveManual(existing []types.GifConfig, index int) ([]types.GifConfig, error) {
	if index < 0 || index >= len(existing) {
		return existing, errors.ErrRegionNotFound
	}
	return lo.Filter(existing, func(_ types.GifConfig, i int) bool {
		return i != index
	}), nil
}

// ConvertManualUnit switches one config's crop unit, rescaling its values.
func ConvertManualUnit(frame geometry.VideoFrame, existing []types.GifConfig, index int, unit region.Unit) ([]types.GifConfig, error) {
	if index < 0 || index >= len(existing) {
		return existing, errors.ErrRegionNotFound
	}
	if !frame.Known() {
		return existing, errors.ErrFrameUnknown
	}
	out := types.CloneConfigs(existing)
	out[index].Crop = out[index].Crop.ToUnit(unit, frame)
	return out, nil
}
