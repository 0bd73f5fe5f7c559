package handler

import (
	"net/http"

	"gifcrop/internal/dto"
	"gifcrop/internal/editor"
	"gifcrop/internal/response"
	"gifcrop/log"
	apperrors "gifcrop/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func applyPointer(sess *editor.Session, req dto.PointerReq) (editor.PointerUpdate, error) {
	switch req.Type {
	case dto.PointerDown:
		return sess.PointerDown(req.Event()), nil
	case dto.PointerMove:
		return sess.PointerMove(req.Event()), nil
	case dto.PointerUp:
		return sess.PointerUp(), nil
	case dto.PointerLeave:
		return sess.PointerLeave(), nil
	case dto.PointerCancel:
		return sess.CancelGesture(), nil
	default:
		return editor.PointerUpdate{}, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, apperrors.ErrInvalidParams.Message, "unknown pointer event "+req.Type, nil)
	}
}

func (h Handler) Pointer(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.PointerReq
	if !bind(c, &req) {
		return
	}
	update, err := applyPointer(sess, req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, update)
}

// PointerStream upgrades to a websocket carrying one PointerReq per message
// in and one response envelope per message out. Closing the stream mid-gesture
// counts as the pointer leaving the surface.
func (h Handler) PointerStream(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	logger := log.ForSession(sess.ID())
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("pointer stream upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	defer sess.PointerLeave()

	logger.Debug("pointer stream opened")
	for {
		var req dto.PointerReq
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("pointer stream read failed", zap.Error(err))
			}
			return
		}

		var out response.Response
		update, err := applyPointer(sess, req)
		if err != nil {
			out = response.FromError(err)
		} else {
			out = response.FromError(nil)
			out.Data = update
		}
		if err := conn.WriteJSON(out); err != nil {
			logger.Warn("pointer stream write failed", zap.Error(err))
			return
		}
	}
}
