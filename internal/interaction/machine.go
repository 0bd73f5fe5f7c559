// Package interaction turns pointer events over the video into line and
// rectangle edits. One Machine serves one editing session.
package interaction

import (
	"math"

	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/types"

	"github.com/samber/lo"
)

type Machine struct {
	cfg   Config
	state State

	anchor  geometry.Point
	current geometry.Point

	// target line for drags, classified axis while creating
	axis     region.Axis
	index    int
	part     Part
	snapshot region.SplitLine
	preview  *region.SplitLine
}

func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) SetConfig(cfg Config) {
	m.cfg = cfg
}

// Reset drops the active gesture without touching the model.
func (m *Machine) Reset() {
	*m = Machine{cfg: m.cfg}
}

func (m *Machine) Preview() Preview {
	switch m.state {
	case CreatingLine:
		if m.preview != nil {
			l := *m.preview
			return Preview{Line: &l}
		}
	case CreatingRectangle:
		r := region.FromCorners(m.anchor, m.current)
		return Preview{Rect: &r}
	}
	return Preview{}
}

func (m *Machine) result(d Delta) Result {
	if d.Kind == "" {
		d.Kind = DeltaNone
	}
	return Result{Delta: d, Preview: m.Preview(), State: m.state}
}

func (m *Machine) Down(ctx Context, ev PointerEvent) Result {
	var abandoned Delta
	if m.state != Idle {
		// a gesture that never saw its up is abandoned first
		abandoned = m.Cancel(ctx).Delta
	}
	if ctx.Viewport == nil || ctx.Params == nil || !ctx.Viewport.Ready() {
		return m.result(abandoned)
	}

	switch ev.Button {
	case ButtonSecondary:
		if d := m.removeRegionAt(ctx, ev.Client); d.Changed() {
			return m.result(d)
		}
		return m.result(abandoned)
	case ButtonPrimary:
	default:
		return m.result(abandoned)
	}

	switch ctx.Params.Method {
	case types.MethodLines:
		if axis, index, part, ok := m.hitTest(ctx, ev.Client); ok {
			m.axis, m.index, m.part = axis, index, part
			m.snapshot = ctx.Params.Lines.Lines(axis)[index]
			if part == PartBody {
				m.state = DraggingLineBody
			} else {
				m.state = DraggingLineEndpoint
			}
			return m.result(abandoned)
		}
		m.state = CreatingLine
		m.anchor = ctx.Viewport.ScreenToVideo(ev.Client)
		m.current = m.anchor
		m.axis = ""
		m.preview = nil
	case types.MethodDrag:
		m.state = CreatingRectangle
		m.anchor = ctx.Viewport.ScreenToVideo(ev.Client)
		m.current = m.anchor
	}
	return m.result(abandoned)
}

// hitTest checks endpoints then body for each line, horizontal lines first,
// in screen pixels relative to the rendered video box.
func (m *Machine) hitTest(ctx Context, client geometry.Point) (region.Axis, int, Part, bool) {
	vp := ctx.Viewport
	click := vp.ClientToSurface(client)
	unit := ctx.Params.Lines.Unit

	for _, axis := range []region.Axis{region.Horizontal, region.Vertical} {
		for i, l := range ctx.Params.Lines.Lines(axis) {
			px := l.ToUnit(unit, region.Pixels, vp.Frame)
			start, end := px.Endpoints()
			s, e := vp.VideoToSurface(start), vp.VideoToSurface(end)

			if near(click, s, m.cfg.EndpointHitRadius) {
				return axis, i, PartStart, true
			}
			if near(click, e, m.cfg.EndpointHitRadius) {
				return axis, i, PartEnd, true
			}
			if axis == region.Horizontal {
				if math.Abs(click.Y-s.Y) < m.cfg.LineHitRadius && within(click.X, s.X, e.X) {
					return axis, i, PartBody, true
				}
			} else if math.Abs(click.X-s.X) < m.cfg.LineHitRadius && within(click.Y, s.Y, e.Y) {
				return axis, i, PartBody, true
			}
		}
	}
	return "", 0, PartNone, false
}

func near(a, b geometry.Point, radius float64) bool {
	return math.Abs(a.X-b.X) < radius && math.Abs(a.Y-b.Y) < radius
}

func within(v, a, b float64) bool {
	return v >= min(a, b) && v <= max(a, b)
}

func (m *Machine) removeRegionAt(ctx Context, client geometry.Point) Delta {
	if m.state != Idle || ctx.Params.Method != types.MethodDrag {
		return Delta{}
	}
	p := ctx.Viewport.ScreenToVideo(client)
	regions := ctx.Params.DragRegions
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Contains(p, ctx.Viewport.Frame) {
			removed := regions[i]
			ctx.Params.DragRegions = append(regions[:i:i], regions[i+1:]...)
			return Delta{Kind: DeltaRegionRemoved, Index: i, Region: &removed}
		}
	}
	return Delta{}
}

func (m *Machine) Move(ctx Context, ev PointerEvent) Result {
	if m.state == Idle || ctx.Viewport == nil || ctx.Params == nil || !ctx.Viewport.Ready() {
		return m.result(Delta{})
	}
	p := ctx.Viewport.ScreenToVideo(ev.Client)
	m.current = p

	switch m.state {
	case DraggingLineBody, DraggingLineEndpoint:
		return m.result(m.dragLine(ctx, p))
	case CreatingLine:
		m.classify()
	}
	return m.result(Delta{})
}

func (m *Machine) dragLine(ctx Context, p geometry.Point) Delta {
	lines := ctx.Params.Lines.Ref(m.axis)
	if m.index < 0 || m.index >= len(*lines) {
		m.Reset()
		return Delta{}
	}
	frame := ctx.Viewport.Frame
	unit := ctx.Params.Lines.Unit
	across, along := region.Extents(m.axis, region.Pixels, frame)

	perp, para := p.Y, p.X
	if m.axis == region.Vertical {
		perp, para = p.X, p.Y
	}

	line := (*lines)[m.index]
	switch m.part {
	case PartBody:
		line.Position = region.Convert(lo.Clamp(perp, 0, across), region.Pixels, unit, across)
	case PartStart:
		line.SpanStart = region.Convert(lo.Clamp(para, 0, along), region.Pixels, unit, along)
	case PartEnd:
		line.SpanEnd = region.Convert(lo.Clamp(para, 0, along), region.Pixels, unit, along)
	}
	(*lines)[m.index] = line
	return Delta{Kind: DeltaLineMoved, Axis: m.axis, Index: m.index, Line: &line}
}

// classify picks the dominant axis once either delta passes the threshold.
// Falling back under the threshold clears the classification.
func (m *Machine) classify() {
	dx := math.Abs(m.current.X - m.anchor.X)
	dy := math.Abs(m.current.Y - m.anchor.Y)
	if dx <= m.cfg.LineCreationThreshold && dy <= m.cfg.LineCreationThreshold {
		m.axis = ""
		m.preview = nil
		return
	}
	if dx > dy {
		m.axis = region.Horizontal
		m.preview = &region.SplitLine{
			Axis:      region.Horizontal,
			Position:  m.anchor.Y,
			SpanStart: min(m.anchor.X, m.current.X),
			SpanEnd:   max(m.anchor.X, m.current.X),
		}
		return
	}
	m.axis = region.Vertical
	m.preview = &region.SplitLine{
		Axis:      region.Vertical,
		Position:  m.anchor.X,
		SpanStart: min(m.anchor.Y, m.current.Y),
		SpanEnd:   max(m.anchor.Y, m.current.Y),
	}
}

func (m *Machine) Up(ctx Context) Result {
	defer m.Reset()
	if ctx.Params == nil || ctx.Viewport == nil {
		return Result{Delta: Delta{Kind: DeltaNone}}
	}

	switch m.state {
	case DraggingLineBody, DraggingLineEndpoint:
		lines := ctx.Params.Lines.Ref(m.axis)
		if m.index < 0 || m.index >= len(*lines) {
			break
		}
		line := (*lines)[m.index].Normalized()
		(*lines)[m.index] = line
		return Result{Delta: Delta{Kind: DeltaLineMoved, Axis: m.axis, Index: m.index, Line: &line}}

	case CreatingLine:
		if m.preview == nil || m.preview.Length() < m.cfg.MinLineLength {
			break
		}
		frame := ctx.Viewport.Frame
		line := m.preview.Normalized().ToUnit(region.Pixels, ctx.Params.Lines.Unit, frame)
		lines := ctx.Params.Lines.Ref(line.Axis)
		*lines = append(*lines, line)
		return Result{Delta: Delta{Kind: DeltaLineCreated, Axis: line.Axis, Index: len(*lines) - 1, Line: &line}}

	case CreatingRectangle:
		r := region.FromCorners(m.anchor, m.current).Rounded()
		if r.Width <= m.cfg.MinRegionSize || r.Height <= m.cfg.MinRegionSize {
			break
		}
		ctx.Params.DragRegions = append(ctx.Params.DragRegions, r)
		return Result{Delta: Delta{Kind: DeltaRegionCreated, Index: len(ctx.Params.DragRegions) - 1, Region: &r}}
	}
	return Result{Delta: Delta{Kind: DeltaNone}}
}

// Leave ends the gesture as an up, or as a cancel when configured.
func (m *Machine) Leave(ctx Context) Result {
	if m.cfg.CancelOnLeave {
		return m.Cancel(ctx)
	}
	return m.Up(ctx)
}

// Cancel abandons the gesture; a dragged line goes back to its pointer-down state.
func (m *Machine) Cancel(ctx Context) Result {
	defer m.Reset()
	if m.state != DraggingLineBody && m.state != DraggingLineEndpoint || ctx.Params == nil {
		return Result{Delta: Delta{Kind: DeltaNone}}
	}
	lines := ctx.Params.Lines.Ref(m.axis)
	if m.index < 0 || m.index >= len(*lines) {
		return Result{Delta: Delta{Kind: DeltaNone}}
	}
	line := m.snapshot
	(*lines)[m.index] = line
	return Result{Delta: Delta{Kind: DeltaLineMoved, Axis: m.axis, Index: m.index, Line: &line}}
}
