package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
)

type CreateSessionReq struct {
	Method  string `json:"method"`
	VideoId string `json:"video_id"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type SetVideoReq struct {
	VideoId string `json:"video_id" binding:"required"`
}

type SetVideoFrameReq struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// ResizeReq carries the container rect and, when measured, the rendered
// video rect in client coordinates.
type ResizeReq struct {
	Container geometry.Rect  `json:"container"`
	Rendered  *geometry.Rect `json:"rendered"`
}

type SetMethodReq struct {
	Method string `json:"method" binding:"required"`
}

type SetGridReq struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type AddLineReq struct {
	Axis     string  `json:"axis" binding:"required"`
	Position float64 `json:"position"`
}

type SetLinesReq struct {
	HorizontalLines []LineInput `json:"horizontal_lines"`
	VerticalLines   []LineInput `json:"vertical_lines"`
	LineUnit        string      `json:"line_unit"`
}

type UnitReq struct {
	Unit string `json:"unit" binding:"required"`
}

type EditFieldReq struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type ListJobsReq struct {
	SessionId string `form:"session_id"`
	Limit     int    `form:"limit"`
}

type ExportRes struct {
	Path string `json:"path"`
}

// LineInput accepts either a bare position number or a full line object.
type LineInput struct {
	Position  float64  `json:"position"`
	SpanStart *float64 `json:"span_start,omitempty"`
	SpanEnd   *float64 `json:"span_end,omitempty"`
}

func (l *LineInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var position float64
		if err := json.Unmarshal(data, &position); err != nil {
			return fmt.Errorf("line must be a number or an object: %w", err)
		}
		*l = LineInput{Position: position}
		return nil
	}
	type plain LineInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = LineInput(p)
	return nil
}

// SplitLine resolves the input in unit; a missing span covers the full frame.
func (l LineInput) SplitLine(axis region.Axis, unit region.Unit, frame geometry.VideoFrame) region.SplitLine {
	line := region.FullSpan(axis, l.Position, unit, frame)
	if l.SpanStart != nil {
		line.SpanStart = *l.SpanStart
	}
	if l.SpanEnd != nil {
		line.SpanEnd = *l.SpanEnd
	}
	return line.Normalized()
}
