package interaction

import (
	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"
)

type State int

const (
	Idle State = iota
	CreatingRectangle
	DraggingLineEndpoint
	DraggingLineBody
	CreatingLine
)

func (s State) String() string {
	switch s {
	case CreatingRectangle:
		return "creating_rectangle"
	case DraggingLineEndpoint:
		return "dragging_line_endpoint"
	case DraggingLineBody:
		return "dragging_line_body"
	case CreatingLine:
		return "creating_line"
	default:
		return "idle"
	}
}

type Part int

const (
	PartNone Part = iota
	PartStart
	PartEnd
	PartBody
)

type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

type PointerEvent struct {
	Client geometry.Point `json:"client"`
	Button Button         `json:"button"`
}

// Config holds hit radii in screen pixels and gesture thresholds in video pixels.
type Config struct {
	EndpointHitRadius     float64
	LineHitRadius         float64
	LineCreationThreshold float64
	MinLineLength         float64
	MinRegionSize         float64
	CancelOnLeave         bool
}

func DefaultConfig() Config {
	return Config{
		EndpointHitRadius:     12,
		LineHitRadius:         10,
		LineCreationThreshold: 20,
		MinLineLength:         10,
		MinRegionSize:         10,
	}
}

type DeltaKind string

const (
	DeltaNone          DeltaKind = "none"
	DeltaLineMoved     DeltaKind = "line_moved"
	DeltaLineCreated   DeltaKind = "line_created"
	DeltaRegionCreated DeltaKind = "region_created"
	DeltaRegionRemoved DeltaKind = "region_removed"
)

// Delta describes the model mutation a pointer event produced. Line values
// are in the session's line unit; regions are in pixels.
type Delta struct {
	Kind   DeltaKind          `json:"kind"`
	Axis   region.Axis        `json:"axis,omitempty"`
	Index  int                `json:"index"`
	Line   *region.SplitLine  `json:"line,omitempty"`
	Region *region.CropRegion `json:"region,omitempty"`
}

func (d Delta) Changed() bool {
	return d.Kind != DeltaNone && d.Kind != ""
}

// Preview is the in-progress shape in video pixels.
type Preview struct {
	Line *region.SplitLine  `json:"line,omitempty"`
	Rect *region.CropRegion `json:"rect,omitempty"`
}

type Result struct {
	Delta   Delta   `json:"delta"`
	Preview Preview `json:"preview"`
	State   State   `json:"-"`
}

// Context is what a gesture reads and writes. Params is mutated in place.
type Context struct {
	Viewport *geometry.Viewport
	Params   *types.MethodParams
}
