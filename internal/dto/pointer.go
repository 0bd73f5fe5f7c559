package dto

import (
	"gifcrop/internal/geometry"
	"gifcrop/internal/interaction"
)

const (
	PointerDown   = "down"
	PointerMove   = "move"
	PointerUp     = "up"
	PointerLeave  = "leave"
	PointerCancel = "cancel"
)

// PointerReq is one pointer event from the surface, over HTTP or the stream.
type PointerReq struct {
	Type   string  `json:"type" binding:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
}

func (p PointerReq) Event() interaction.PointerEvent {
	return interaction.PointerEvent{
		Client: geometry.Point{X: p.X, Y: p.Y},
		Button: interaction.Button(p.Button),
	}
}
