// Package editor owns one crop-editing session: the viewport, the method
// parameters, the active gesture and the derived config list. All access is
// serialized by the session mutex.
package editor

import (
	"sync"
	"time"

	"gifcrop/internal/geometry"
	"gifcrop/internal/interaction"
	"gifcrop/internal/overlay"
	"gifcrop/internal/region"
	"gifcrop/internal/synthesis"
	"gifcrop/internal/types"
	"gifcrop/pkg/errors"
)

type Options struct {
	Interaction interaction.Config
	Defaults    types.ClipDefaults
}

type Session struct {
	mu sync.Mutex

	id        string
	videoID   string
	createdAt time.Time
	touchedAt time.Time

	viewport geometry.Viewport
	params   types.MethodParams
	configs  []types.GifConfig

	machine *interaction.Machine
	engine  *synthesis.Engine
	now     func() time.Time
}

// Snapshot is a copy of the session state safe to hand out.
type Snapshot struct {
	ID        string                  `json:"session_id"`
	VideoID   string                  `json:"video_id"`
	Method    types.CropMethod        `json:"method"`
	Frame     geometry.VideoFrame     `json:"frame"`
	Bounds    geometry.ViewportBounds `json:"bounds"`
	Params    types.MethodParams      `json:"params"`
	Configs   []types.GifConfig       `json:"gif_configs"`
	Gesture   string                  `json:"gesture"`
	Scene     overlay.Scene           `json:"scene"`
	CreatedAt time.Time               `json:"created_at"`
}

// PointerUpdate is the result of one pointer event.
type PointerUpdate struct {
	Delta   interaction.Delta `json:"delta"`
	Gesture string            `json:"gesture"`
	Scene   overlay.Scene     `json:"scene"`
	Configs []types.GifConfig `json:"gif_configs,omitempty"`
}

func New(id string, method types.CropMethod, opts Options) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		createdAt: now,
		touchedAt: now,
		params:    types.DefaultMethodParams(method),
		configs:   []types.GifConfig{},
		machine:   interaction.NewMachine(opts.Interaction),
		engine:    synthesis.NewEngine(opts.Defaults),
		now:       time.Now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

func (s *Session) touch() {
	s.touchedAt = s.now()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        s.id,
		VideoID:   s.videoID,
		Method:    s.params.Method,
		Frame:     s.viewport.Frame,
		Bounds:    s.viewport.Bounds,
		Params:    s.params.Clone(),
		Configs:   types.CloneConfigs(s.configs),
		Gesture:   s.machine.State().String(),
		Scene:     s.sceneLocked(),
		CreatedAt: s.createdAt,
	}
}

func (s *Session) sceneLocked() overlay.Scene {
	return overlay.Project(s.viewport, s.params, s.configs, s.machine.Preview())
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Configs() []types.GifConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.CloneConfigs(s.configs)
}

// resyncLocked re-derives the config list. Before the frame is known the
// list stays as it is and ErrFrameUnknown is returned.
func (s *Session) resyncLocked() error {
	configs, err := s.engine.Synthesize(s.viewport.Frame, s.params, s.configs)
	if err != nil {
		return err
	}
	s.configs = configs
	return nil
}

// mutate runs a parameter edit: the active gesture is dropped, the edit is
// applied and configs are re-derived. Edits made before the frame is known
// are kept and take effect once SetVideoFrame runs.
func (s *Session) mutate(edit func() error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.machine.Reset()
	if err := edit(); err != nil {
		return s.snapshotLocked(), err
	}
	if err := s.resyncLocked(); err != nil && !errors.Is(err, errors.CodeFrameUnknown) {
		return s.snapshotLocked(), err
	}
	return s.snapshotLocked(), nil
}

func (s *Session) SetVideo(videoID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.videoID = videoID
	return s.snapshotLocked()
}

// SetVideoFrame records the native frame size once metadata is known.
func (s *Session) SetVideoFrame(frame geometry.VideoFrame) (Snapshot, error) {
	if !frame.Known() {
		return s.Snapshot(), errors.WrapWithDetail(errors.CodeInvalidParams, errors.ErrInvalidParams.Message, "video frame must be positive", nil)
	}
	return s.mutate(func() error {
		s.viewport.SetFrame(frame)
		s.params.Lines.ResolveSpans(frame)
		return nil
	})
}

// Resize recomputes bounds; an active gesture keeps going with its anchor in
// video pixels.
func (s *Session) Resize(container geometry.Rect, rendered *geometry.Rect) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.viewport.Resize(container, rendered)
	return s.snapshotLocked()
}

// SetMethod clears the configs; drag regions survive only into drag.
func (s *Session) SetMethod(method types.CropMethod) (Snapshot, error) {
	return s.mutate(func() error {
		s.params.Method = method
		s.configs = []types.GifConfig{}
		if method != types.MethodDrag {
			s.params.DragRegions = nil
		}
		return nil
	})
}

func (s *Session) SetGrid(rows, columns int) (Snapshot, error) {
	return s.mutate(func() error {
		s.params.Grid = types.GridParams{Rows: rows, Columns: columns}
		return nil
	})
}

// SetLines replaces both line sets, already normalized to unit.
func (s *Session) SetLines(horizontal, vertical []region.SplitLine, unit region.Unit) (Snapshot, error) {
	return s.mutate(func() error {
		s.params.Lines = types.LineParams{
			Horizontal: append([]region.SplitLine{}, horizontal...),
			Vertical:   append([]region.SplitLine{}, vertical...),
			Unit:       unit.OrDefault(),
		}
		return nil
	})
}

// AddLine adds a full-span line; non-positive positions are ignored.
func (s *Session) AddLine(axis region.Axis, position float64) (Snapshot, error) {
	return s.mutate(func() error {
		if position <= 0 {
			return nil
		}
		line := region.FullSpan(axis, position, s.params.Lines.Unit, s.viewport.Frame)
		lines := s.params.Lines.Ref(axis)
		*lines = append(*lines, line)
		return nil
	})
}

func (s *Session) RemoveLine(axis region.Axis, index int) (Snapshot, error) {
	return s.mutate(func() error {
		lines := s.params.Lines.Ref(axis)
		if index < 0 || index >= len(*lines) {
			return errors.ErrLineNotFound
		}
		*lines = append((*lines)[:index:index], (*lines)[index+1:]...)
		return nil
	})
}

// SetLineUnit converts every stored line, position and span, to unit.
func (s *Session) SetLineUnit(unit region.Unit) (Snapshot, error) {
	return s.mutate(func() error {
		lp := &s.params.Lines
		from := lp.Unit.OrDefault()
		if from == unit {
			return nil
		}
		if len(lp.Horizontal)+len(lp.Vertical) > 0 && !s.viewport.Frame.Known() {
			return errors.ErrFrameUnknown
		}
		for _, lines := range []*[]region.SplitLine{&lp.Horizontal, &lp.Vertical} {
			for i, l := range *lines {
				(*lines)[i] = l.ToUnit(from, unit, s.viewport.Frame)
			}
		}
		lp.Unit = unit
		return nil
	})
}

func (s *Session) RemoveRegion(index int) (Snapshot, error) {
	return s.mutate(func() error {
		if index < 0 || index >= len(s.params.DragRegions) {
			return errors.ErrRegionNotFound
		}
		s.params.DragRegions = append(s.params.DragRegions[:index:index], s.params.DragRegions[index+1:]...)
		return nil
	})
}

func (s *Session) AddManualRegion() (Snapshot, error) {
	return s.mutate(func() error {
		if s.params.Method != types.MethodManual {
			return errors.WrapWithDetail(errors.CodeInvalidMethod, errors.ErrInvalidMethod.Message, "manual regions need the manual method", nil)
		}
		configs, err := s.engine.AddManual(s.viewport.Frame, s.configs)
		if err != nil {
			return err
		}
		s.configs = configs
		return nil
	})
}

func (s *Session) RemoveManualRegion(index int) (Snapshot, error) {
	return s.mutate(func() error {
		configs, err := synthesis.RemoveManual(s.configs, index)
		if err != nil {
			return err
		}
		s.configs = configs
		return nil
	})
}

func (s *Session) ConvertManualUnit(index int, unit region.Unit) (Snapshot, error) {
	return s.mutate(func() error {
		configs, err := synthesis.ConvertManualUnit(s.viewport.Frame, s.configs, index, unit)
		if err != nil {
			return err
		}
		s.configs = configs
		return nil
	})
}

// EditField changes a user field of one config. No re-synthesis happens, so
// the edit is what later geometry changes preserve.
func (s *Session) EditField(index int, field, raw string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	configs, err := synthesis.EditField(s.viewport.Frame, s.configs, index, field, raw)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.configs = configs
	return s.snapshotLocked(), nil
}
