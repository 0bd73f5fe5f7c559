package handler

import (
	"gifcrop/internal/dto"
	"gifcrop/internal/geometry"
	"gifcrop/internal/region"
	"gifcrop/internal/response"
	"gifcrop/internal/types"

	"github.com/gin-gonic/gin"
)

func (h Handler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionReq
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	sess, err := h.Service.Sessions.Create(req.Method)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	if req.VideoId != "" {
		sess.SetVideo(req.VideoId)
	}
	if req.Width > 0 && req.Height > 0 {
		if _, err := sess.SetVideoFrame(geometry.VideoFrame{Width: req.Width, Height: req.Height}); err != nil {
			response.ErrorResponse(c, err)
			return
		}
	}
	response.Success(c, sess.Snapshot())
}

func (h Handler) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, sess.Snapshot())
}

func (h Handler) DeleteSession(c *gin.Context) {
	if err := h.Service.Sessions.Delete(c.Param("id")); err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, nil)
}

func (h Handler) SetVideo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.SetVideoReq
	if !bind(c, &req) {
		return
	}
	response.Success(c, sess.SetVideo(req.VideoId))
}

func (h Handler) SetVideoFrame(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.SetVideoFrameReq
	if !bind(c, &req) {
		return
	}
	snap, err := sess.SetVideoFrame(geometry.VideoFrame{Width: req.Width, Height: req.Height})
	snapshot(c, snap, err)
}

func (h Handler) Resize(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.ResizeReq
	if !bind(c, &req) {
		return
	}
	response.Success(c, sess.Resize(req.Container, req.Rendered))
}

func (h Handler) SetMethod(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.SetMethodReq
	if !bind(c, &req) {
		return
	}
	method, err := types.ParseCropMethod(req.Method)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	snap, err := sess.SetMethod(method)
	snapshot(c, snap, err)
}

func (h Handler) SetGrid(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.SetGridReq
	if !bind(c, &req) {
		return
	}
	snap, err := sess.SetGrid(req.Rows, req.Columns)
	snapshot(c, snap, err)
}

func (h Handler) AddLine(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.AddLineReq
	if !bind(c, &req) {
		return
	}
	axis, err := region.ParseAxis(req.Axis)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	snap, err := sess.AddLine(axis, req.Position)
	snapshot(c, snap, err)
}

func (h Handler) RemoveLine(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	axis, err := region.ParseAxis(c.Param("axis"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	idx, ok := indexParam(c, "index")
	if !ok {
		return
	}
	snap, err := sess.RemoveLine(axis, idx)
	snapshot(c, snap, err)
}

func (h Handler) SetLines(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.SetLinesReq
	if !bind(c, &req) {
		return
	}
	unit, err := region.ParseUnit(req.LineUnit)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}

	frame := sess.Snapshot().Frame
	toLines := func(in []dto.LineInput, axis region.Axis) []region.SplitLine {
		out := make([]region.SplitLine, 0, len(in))
		for _, l := range in {
			out = append(out, l.SplitLine(axis, unit, frame))
		}
		return out
	}
	snap, err := sess.SetLines(toLines(req.HorizontalLines, region.Horizontal), toLines(req.VerticalLines, region.Vertical), unit)
	snapshot(c, snap, err)
}

func (h Handler) SetLineUnit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.UnitReq
	if !bind(c, &req) {
		return
	}
	unit, err := region.ParseUnit(req.Unit)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	snap, err := sess.SetLineUnit(unit)
	snapshot(c, snap, err)
}

func (h Handler) RemoveRegion(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "index")
	if !ok {
		return
	}
	snap, err := sess.RemoveRegion(idx)
	snapshot(c, snap, err)
}

func (h Handler) AddManualRegion(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := sess.AddManualRegion()
	snapshot(c, snap, err)
}

func (h Handler) RemoveManualRegion(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "index")
	if !ok {
		return
	}
	snap, err := sess.RemoveManualRegion(idx)
	snapshot(c, snap, err)
}

func (h Handler) ConvertManualUnit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var req dto.UnitReq
	if !bind(c, &req) {
		return
	}
	unit, err := region.ParseUnit(req.Unit)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	snap, err := sess.ConvertManualUnit(idx, unit)
	snapshot(c, snap, err)
}

func (h Handler) EditConfigField(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	idx, ok := indexParam(c, "index")
	if !ok {
		return
	}
	var req dto.EditFieldReq
	if !bind(c, &req) {
		return
	}
	snap, err := sess.EditField(idx, req.Field, req.Value)
	snapshot(c, snap, err)
}
