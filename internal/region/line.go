package region

import (
	"sort"
	"strings"

	"gifcrop/internal/geometry"
	"gifcrop/pkg/errors"

	"github.com/samber/lo"
)

type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

func ParseAxis(raw string) (Axis, error) {
	switch Axis(strings.ToLower(strings.TrimSpace(raw))) {
	case Horizontal:
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", errors.WrapWithDetail(errors.CodeInvalidParams, "分割线方向无效 Invalid line axis", raw, nil)
	}
}

// SplitLine is a segment across the video. A horizontal line sits at
// Position on the y axis and spans [SpanStart, SpanEnd] on the x axis;
// a vertical line is the transpose.
type SplitLine struct {
	Axis      Axis    `json:"axis"`
	Position  float64 `json:"position"`
	SpanStart float64 `json:"span_start"`
	SpanEnd   float64 `json:"span_end"`
}

// Extents returns the extent along the position axis and along the span axis.
func Extents(axis Axis, unit Unit, frame geometry.VideoFrame) (across, along float64) {
	if unit.OrDefault() == Percent {
		return 100, 100
	}
	if axis == Horizontal {
		return frame.H(), frame.W()
	}
	return frame.W(), frame.H()
}

// FullSpan is the normalized form of a legacy bare-number line.
func FullSpan(axis Axis, position float64, unit Unit, frame geometry.VideoFrame) SplitLine {
	_, along := Extents(axis, unit, frame)
	return SplitLine{Axis: axis, Position: position, SpanStart: 0, SpanEnd: along}
}

func (l SplitLine) Normalized() SplitLine {
	if l.SpanStart > l.SpanEnd {
		l.SpanStart, l.SpanEnd = l.SpanEnd, l.SpanStart
	}
	return l
}

func (l SplitLine) Length() float64 {
	n := l.Normalized()
	return n.SpanEnd - n.SpanStart
}

func (l SplitLine) ToUnit(from, to Unit, frame geometry.VideoFrame) SplitLine {
	from, to = from.OrDefault(), to.OrDefault()
	if from == to || !frame.Known() {
		return l
	}
	across, along := Extents(l.Axis, Pixels, frame)
	return SplitLine{
		Axis:      l.Axis,
		Position:  Convert(l.Position, from, to, across),
		SpanStart: Convert(l.SpanStart, from, to, along),
		SpanEnd:   Convert(l.SpanEnd, from, to, along),
	}
}

// Endpoints returns the start and end of the segment in the line's own unit.
func (l SplitLine) Endpoints() (geometry.Point, geometry.Point) {
	if l.Axis == Horizontal {
		return geometry.Point{X: l.SpanStart, Y: l.Position}, geometry.Point{X: l.SpanEnd, Y: l.Position}
	}
	return geometry.Point{X: l.Position, Y: l.SpanStart}, geometry.Point{X: l.Position, Y: l.SpanEnd}
}

// BandEdges converts line positions to percent, clamps them into [0,100],
// sorts them and brackets them with 0 and 100.
func BandEdges(lines []SplitLine, unit Unit, frame geometry.VideoFrame) []float64 {
	edges := lo.Map(lines, func(l SplitLine, _ int) float64 {
		across, _ := Extents(l.Axis, Pixels, frame)
		return lo.Clamp(Convert(l.Position, unit, Percent, across), 0, 100)
	})
	sort.Float64s(edges)
	out := make([]float64, 0, len(edges)+2)
	out = append(out, 0)
	out = append(out, edges...)
	return append(out, 100)
}
