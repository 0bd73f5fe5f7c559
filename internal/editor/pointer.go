package editor

import (
	"gifcrop/internal/interaction"
	"gifcrop/internal/types"
)

func (s *Session) ctxLocked() interaction.Context {
	return interaction.Context{Viewport: &s.viewport, Params: &s.params}
}

func (s *Session) pointer(apply func(ctx interaction.Context) interaction.Result) PointerUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	res := apply(s.ctxLocked())
	update := PointerUpdate{Delta: res.Delta}
	if res.Delta.Changed() {
		_ = s.resyncLocked()
		update.Configs = s.configsCopyLocked()
	}
	update.Gesture = s.machine.State().String()
	update.Scene = s.sceneLocked()
	return update
}

func (s *Session) configsCopyLocked() []types.GifConfig {
	return types.CloneConfigs(s.configs)
}

func (s *Session) PointerDown(ev interaction.PointerEvent) PointerUpdate {
	return s.pointer(func(ctx interaction.Context) interaction.Result {
		return s.machine.Down(ctx, ev)
	})
}

func (s *Session) PointerMove(ev interaction.PointerEvent) PointerUpdate {
	return s.pointer(func(ctx interaction.Context) interaction.Result {
		return s.machine.Move(ctx, ev)
	})
}

func (s *Session) PointerUp() PointerUpdate {
	return s.pointer(s.machine.Up)
}

func (s *Session) PointerLeave() PointerUpdate {
	return s.pointer(s.machine.Leave)
}

func (s *Session) CancelGesture() PointerUpdate {
	return s.pointer(s.machine.Cancel)
}
