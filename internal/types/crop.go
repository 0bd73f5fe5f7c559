package types

import (
	"strings"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/pkg/errors"
)

type CropMethod string

const (
	MethodGrid   CropMethod = "grid"
	MethodLines  CropMethod = "lines"
	MethodDrag   CropMethod = "drag"
	MethodManual CropMethod = "manual"
)

func ParseCropMethod(raw string) (CropMethod, error) {
	switch m := CropMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case MethodGrid, MethodLines, MethodDrag, MethodManual:
		return m, nil
	default:
		return "", errors.WrapWithDetail(errors.CodeInvalidMethod, errors.ErrInvalidMethod.Message, raw, nil)
	}
}

// GifConfig is one output clip handed to the render backend.
type GifConfig struct {
	Filename  string            `json:"filename"`
	StartTime float64           `json:"start_time"`
	Duration  float64           `json:"duration"`
	Fps       int               `json:"fps"`
	Scale     *int              `json:"scale"`
	Crop      region.CropRegion `json:"crop"`
}

type ClipDefaults struct {
	StartTime float64
	Duration  float64
	Fps       int
}

const MinGridCells = 1

type GridParams struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// LineParams stores lines in Unit, in insertion order.
type LineParams struct {
	Horizontal []region.SplitLine `json:"horizontal_lines"`
	Vertical   []region.SplitLine `json:"vertical_lines"`
	Unit       region.Unit        `json:"line_unit"`
}

// Lines returns the slice for axis.
func (p *LineParams) Lines(axis region.Axis) []region.SplitLine {
	if axis == region.Horizontal {
		return p.Horizontal
	}
	return p.Vertical
}

// Ref returns a pointer to the slice for axis so callers can append or edit in place.
func (p *LineParams) Ref(axis region.Axis) *[]region.SplitLine {
	if axis == region.Horizontal {
		return &p.Horizontal
	}
	return &p.Vertical
}

// ResolveSpans widens lines stored before the frame was known, which carry an
// empty 0..0 span, to the full extent of frame.
func (p *LineParams) ResolveSpans(frame geometry.VideoFrame) {
	if !frame.Known() {
		return
	}
	for _, lines := range []*[]region.SplitLine{&p.Horizontal, &p.Vertical} {
		for i, l := range *lines {
			if l.SpanStart == 0 && l.SpanEnd == 0 {
				(*lines)[i] = region.FullSpan(l.Axis, l.Position, p.Unit, frame)
			}
		}
	}
}

type MethodParams struct {
	Method      CropMethod          `json:"method"`
	Grid        GridParams          `json:"grid"`
	Lines       LineParams          `json:"lines"`
	DragRegions []region.CropRegion `json:"drag_regions"`
}

func DefaultMethodParams(method CropMethod) MethodParams {
	return MethodParams{
		Method: method,
		Grid:   GridParams{Rows: 2, Columns: 2},
		Lines:  LineParams{Unit: region.Pixels},
	}
}

// Clone deep-copies the slices so snapshots survive later in-place edits.
func (p MethodParams) Clone() MethodParams {
	out := p
	out.Lines.Horizontal = append([]region.SplitLine(nil), p.Lines.Horizontal...)
	out.Lines.Vertical = append([]region.SplitLine(nil), p.Lines.Vertical...)
	out.DragRegions = append([]region.CropRegion(nil), p.DragRegions...)
	return out
}

func CloneConfigs(configs []GifConfig) []GifConfig {
	out := make([]GifConfig, len(configs))
	for i, c := range configs {
		out[i] = c
		if c.Scale != nil {
			scale := *c.Scale
			out[i].Scale = &scale
		}
	}
	return out
}
