package region

import (
	"gifcrop/internal/geometry"

	"github.com/samber/lo"
)

type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// FullFrame covers the whole video in pixels.
func FullFrame(frame geometry.VideoFrame) CropRegion {
	return CropRegion{Width: frame.W(), Height: frame.H(), Unit: Pixels}
}

// FromCorners builds the normalized pixel rectangle spanned by two points.
func FromCorners(a, b geometry.Point) CropRegion {
	return CropRegion{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  max(a.X, b.X) - min(a.X, b.X),
		Height: max(a.Y, b.Y) - min(a.Y, b.Y),
		Unit:   Pixels,
	}
}

func (c CropRegion) Degenerate() bool {
	return c.Width <= 0 || c.Height <= 0
}

func (c CropRegion) Rounded() CropRegion {
	return CropRegion{
		X:      Round(c.X),
		Y:      Round(c.Y),
		Width:  Round(c.Width),
		Height: Round(c.Height),
		Unit:   c.Unit.OrDefault(),
	}
}

// ToUnit converts linearly against the frame; the result keeps the same
// fractional position in the frame.
func (c CropRegion) ToUnit(to Unit, frame geometry.VideoFrame) CropRegion {
	from := c.Unit.OrDefault()
	to = to.OrDefault()
	if from == to || !frame.Known() {
		c.Unit = from
		return c
	}
	return CropRegion{
		X:      Convert(c.X, from, to, frame.W()),
		Y:      Convert(c.Y, from, to, frame.H()),
		Width:  Convert(c.Width, from, to, frame.W()),
		Height: Convert(c.Height, from, to, frame.H()),
		Unit:   to,
	}
}

// ClampTo keeps the region inside the frame in its own unit.
func (c CropRegion) ClampTo(frame geometry.VideoFrame) CropRegion {
	maxW, maxH := frame.W(), frame.H()
	if c.Unit.OrDefault() == Percent {
		maxW, maxH = 100, 100
	}
	c.X = lo.Clamp(c.X, 0, maxW)
	c.Y = lo.Clamp(c.Y, 0, maxH)
	c.Width = lo.Clamp(c.Width, 0, maxW-c.X)
	c.Height = lo.Clamp(c.Height, 0, maxH-c.Y)
	return c
}

// Contains tests a video-pixel point against the region.
func (c CropRegion) Contains(p geometry.Point, frame geometry.VideoFrame) bool {
	px := c.ToUnit(Pixels, frame)
	return p.X >= px.X && p.X <= px.X+px.Width && p.Y >= px.Y && p.Y <= px.Y+px.Height
}

func (c CropRegion) SameBounds(other CropRegion) bool {
	a, b := c.Rounded(), other.Rounded()
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height && a.Unit == b.Unit
}

func (c CropRegion) Rect() geometry.Rect {
	return geometry.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}
