// Package synthesis derives the GifConfig list from the edited geometry.
// Only the crop of each config is owned by geometry; every other field is
// user data and survives re-synthesis in its slot.
package synthesis

import (
	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"
)

type Engine struct {
	defaults types.ClipDefaults
}

func NewEngine(defaults types.ClipDefaults) *Engine {
	return &Engine{defaults: defaults}
}

func (e *Engine) Defaults() types.ClipDefaults {
	return e.defaults
}

func (e *Engine) newConfig(filename string, crop region.CropRegion) types.GifConfig {
	return types.GifConfig{
		Filename:  filename,
		StartTime: e.defaults.StartTime,
		Duration:  e.defaults.Duration,
		Fps:       e.defaults.Fps,
		Scale:     nil,
		Crop:      crop,
	}
}

// slot keeps the user fields of existing[k] and replaces its crop, or builds
// a default config when the slot does not exist yet.
func (e *Engine) slot(existing []types.GifConfig, k int, filename string, crop region.CropRegion) types.GifConfig {
	if k < len(existing) {
		c := types.CloneConfigs(existing[k : k+1])[0]
		c.Crop = crop
		return c
	}
	return e.newConfig(filename, crop)
}

// Synthesize recomputes the config list for the current method. Before the
// frame is known it returns existing unchanged together with ErrFrameUnknown.
func (e *Engine) Synthesize(frame geometry.VideoFrame, params types.MethodParams, existing []types.GifConfig) ([]types.GifConfig, error) {
	if !frame.Known() {
		return existing, errors.ErrFrameUnknown
	}
	switch params.Method {
	case types.MethodGrid:
		return e.Grid(params.Grid, existing), nil
	case types.MethodLines:
		return e.Lines(frame, params.Lines, existing), nil
	case types.MethodDrag:
		return e.Drag(params.DragRegions, existing), nil
	case types.MethodManual:
		return types.CloneConfigs(existing), nil
	default:
		return existing, errors.WrapWithDetail(errors.CodeInvalidMethod, errors.ErrInvalidMethod.Message, string(params.Method), nil)
	}
}
