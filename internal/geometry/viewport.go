package geometry

// Viewport carries the frame, container layout and derived bounds of one
// editing session. Bounds are only ever recomputed, never edited.
type Viewport struct {
	Frame     VideoFrame     `json:"frame"`
	Container Rect           `json:"container"`
	Rendered  *Rect          `json:"rendered,omitempty"`
	Bounds    ViewportBounds `json:"bounds"`
}

func (v *Viewport) SetFrame(frame VideoFrame) {
	v.Frame = frame
	v.recompute()
}

// Resize records a new container layout. rendered may be nil when the
// rendered video element has not been measured.
func (v *Viewport) Resize(container Rect, rendered *Rect) {
	v.Container = container
	if rendered != nil {
		r := *rendered
		v.Rendered = &r
	} else {
		v.Rendered = nil
	}
	v.recompute()
}

func (v *Viewport) recompute() {
	v.Bounds = ComputeBounds(v.Frame, v.Container, v.Rendered)
}

// Ready reports whether pointer input can be mapped.
func (v *Viewport) Ready() bool {
	return v.Frame.Known() && v.Bounds.Valid()
}

func (v *Viewport) ScreenToVideo(client Point) Point {
	return ScreenToVideo(client, v.Container.Origin(), v.Bounds, v.Frame)
}

func (v *Viewport) VideoToScreen(video Point) Point {
	return VideoToScreen(video, v.Container.Origin(), v.Bounds)
}

// ClientToSurface maps a client point into the video box, unclamped, in
// screen pixels.
func (v *Viewport) ClientToSurface(client Point) Point {
	return Point{
		X: client.X - v.Container.X - v.Bounds.X,
		Y: client.Y - v.Container.Y - v.Bounds.Y,
	}
}

// VideoToSurface scales video pixels into the video box, in screen pixels.
func (v *Viewport) VideoToSurface(video Point) Point {
	return Point{
		X: video.X * v.Bounds.ScaleX,
		Y: video.Y * v.Bounds.ScaleY,
	}
}
