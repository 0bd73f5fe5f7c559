// Package overlay projects model geometry onto the container, in screen
// pixels relative to the container origin. Everything here is a pure function
// of the viewport and the model; nothing is cached between calls.
package overlay

import (
	"gifcrop/internal/geometry"
	"gifcrop/internal/interaction"
	"gifcrop/internal/region"
	"gifcrop/internal/types"
)

const MarkerRadius = 6

type Marker struct {
	Center geometry.Point `json:"center"`
	Radius float64        `json:"radius"`
}

type Line struct {
	Axis        region.Axis    `json:"axis"`
	Index       int            `json:"index"`
	Start       geometry.Point `json:"start"`
	End         geometry.Point `json:"end"`
	StartMarker Marker         `json:"start_marker"`
	EndMarker   Marker         `json:"end_marker"`
}

type Box struct {
	Index int           `json:"index"`
	Rect  geometry.Rect `json:"rect"`
	Label string        `json:"label,omitempty"`
}

type Preview struct {
	Line *Line          `json:"line,omitempty"`
	Rect *geometry.Rect `json:"rect,omitempty"`
}

type Scene struct {
	Surface geometry.Rect `json:"surface"`
	Lines   []Line        `json:"lines"`
	Boxes   []Box         `json:"boxes"`
	Preview *Preview      `json:"preview,omitempty"`
}

// Point maps a video pixel into container space.
func Point(bounds geometry.ViewportBounds, p geometry.Point) geometry.Point {
	return geometry.Point{
		X: bounds.X + p.X*bounds.ScaleX,
		Y: bounds.Y + p.Y*bounds.ScaleY,
	}
}

// Rect maps a crop in either unit into container space.
func Rect(bounds geometry.ViewportBounds, frame geometry.VideoFrame, crop region.CropRegion) geometry.Rect {
	px := crop.ToUnit(region.Pixels, frame)
	origin := Point(bounds, geometry.Point{X: px.X, Y: px.Y})
	return geometry.Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  px.Width * bounds.ScaleX,
		Height: px.Height * bounds.ScaleY,
	}
}

// ProjectLine maps a line stored in unit into container space.
func ProjectLine(bounds geometry.ViewportBounds, frame geometry.VideoFrame, l region.SplitLine, unit region.Unit, index int) Line {
	start, end := l.ToUnit(unit, region.Pixels, frame).Endpoints()
	s, e := Point(bounds, start), Point(bounds, end)
	return Line{
		Axis:        l.Axis,
		Index:       index,
		Start:       s,
		End:         e,
		StartMarker: Marker{Center: s, Radius: MarkerRadius},
		EndMarker:   Marker{Center: e, Radius: MarkerRadius},
	}
}

// Project builds the whole scene for a session.
func Project(vp geometry.Viewport, params types.MethodParams, configs []types.GifConfig, preview interaction.Preview) Scene {
	scene := Scene{Lines: []Line{}, Boxes: []Box{}}
	if !vp.Ready() {
		return scene
	}
	b := vp.Bounds
	scene.Surface = geometry.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}

	if params.Method == types.MethodLines {
		for _, axis := range []region.Axis{region.Horizontal, region.Vertical} {
			for i, l := range params.Lines.Lines(axis) {
				scene.Lines = append(scene.Lines, ProjectLine(b, vp.Frame, l, params.Lines.Unit, i))
			}
		}
	}

	if params.Method == types.MethodDrag {
		for i, r := range params.DragRegions {
			box := Box{Index: i, Rect: Rect(b, vp.Frame, r)}
			if i < len(configs) {
				box.Label = configs[i].Filename
			}
			scene.Boxes = append(scene.Boxes, box)
		}
	} else {
		for i, c := range configs {
			scene.Boxes = append(scene.Boxes, Box{Index: i, Rect: Rect(b, vp.Frame, c.Crop), Label: c.Filename})
		}
	}

	switch {
	case preview.Line != nil:
		l := ProjectLine(b, vp.Frame, *preview.Line, region.Pixels, -1)
		scene.Preview = &Preview{Line: &l}
	case preview.Rect != nil:
		r := Rect(b, vp.Frame, *preview.Rect)
		scene.Preview = &Preview{Rect: &r}
	}
	return scene
}
