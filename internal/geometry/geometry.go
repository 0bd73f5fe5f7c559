// Package geometry maps between native video pixels and the letterboxed
// on-screen rendering of the video inside its container.
package geometry

import "github.com/samber/lo"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// VideoFrame is the native pixel size of the loaded video.
type VideoFrame struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (f VideoFrame) Known() bool {
	return f.Width > 0 && f.Height > 0
}

func (f VideoFrame) W() float64 { return float64(f.Width) }
func (f VideoFrame) H() float64 { return float64(f.Height) }

// ViewportBounds is the rendered video box relative to the container origin.
type ViewportBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scale_x"`
	ScaleY float64 `json:"scale_y"`
}

func (b ViewportBounds) Valid() bool {
	return b.Width > 0 && b.Height > 0 && b.ScaleX > 0 && b.ScaleY > 0
}

// ComputeBounds prefers the measured rendered rect (client coordinates) and
// falls back to analytic letterboxing of the frame inside the container.
func ComputeBounds(frame VideoFrame, container Rect, rendered *Rect) ViewportBounds {
	if !frame.Known() {
		return ViewportBounds{}
	}

	var x, y, width, height float64
	if rendered != nil && !rendered.Empty() {
		x = rendered.X - container.X
		y = rendered.Y - container.Y
		width = rendered.Width
		height = rendered.Height
	} else {
		if container.Empty() {
			return ViewportBounds{}
		}
		videoAspect := frame.W() / frame.H()
		containerAspect := container.Width / container.Height
		if videoAspect > containerAspect {
			width = container.Width
			height = width / videoAspect
			x = 0
			y = (container.Height - height) / 2
		} else {
			height = container.Height
			width = height * videoAspect
			x = (container.Width - width) / 2
			y = 0
		}
	}

	return ViewportBounds{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		ScaleX: width / frame.W(),
		ScaleY: height / frame.H(),
	}
}

// ScreenToVideo converts a client point into video pixels, clamped to the frame.
func ScreenToVideo(client Point, containerOrigin Point, bounds ViewportBounds, frame VideoFrame) Point {
	if !bounds.Valid() {
		return Point{}
	}
	x := (client.X - containerOrigin.X - bounds.X) / bounds.ScaleX
	y := (client.Y - containerOrigin.Y - bounds.Y) / bounds.ScaleY
	return Point{
		X: lo.Clamp(x, 0, frame.W()),
		Y: lo.Clamp(y, 0, frame.H()),
	}
}

// VideoToScreen converts video pixels into client coordinates.
func VideoToScreen(video Point, containerOrigin Point, bounds ViewportBounds) Point {
	return Point{
		X: containerOrigin.X + bounds.X + video.X*bounds.ScaleX,
		Y: containerOrigin.Y + bounds.Y + video.Y*bounds.ScaleY,
	}
}
