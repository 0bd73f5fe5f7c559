package handler

import (
	"strconv"

	"gifcrop/internal/editor"
	"gifcrop/internal/response"
	"gifcrop/internal/service"
	"gifcrop/log"
	apperrors "gifcrop/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Service *service.Service
}

func NewHandler(svc *service.Service) Handler {
	return Handler{Service: svc}
}

// session loads the session named by the :id path param, writing the error
// response when it is missing.
func (h Handler) session(c *gin.Context) (*editor.Session, bool) {
	sess, err := h.Service.Sessions.Get(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, err)
		return nil, false
	}
	return sess, true
}

// bind decodes the JSON body into req, writing the error response on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.GetLogger().Warn("bind request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.ErrorResponse(c, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, apperrors.ErrInvalidParams.Message, err.Error(), err))
		return false
	}
	return true
}

func indexParam(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.ErrorResponse(c, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, apperrors.ErrInvalidParams.Message, name+" must be an integer", err))
		return 0, false
	}
	return idx, true
}

// snapshot answers a session mutation; on error the current state still
// travels with the envelope.
func snapshot(c *gin.Context, snap editor.Snapshot, err error) {
	if err != nil {
		response.ErrorWithData(c, err, snap)
		return
	}
	response.Success(c, snap)
}
