package handler

import (
	"gifcrop/internal/dto"
	"gifcrop/internal/response"
	apperrors "gifcrop/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h Handler) Process(c *gin.Context) {
	job, err := h.Service.Process(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, job)
}

func (h Handler) ExportConfigs(c *gin.Context) {
	path, err := h.Service.ExportConfigs(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, dto.ExportRes{Path: path})
}

func (h Handler) ListJobs(c *gin.Context) {
	var req dto.ListJobsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, apperrors.ErrInvalidParams.Message, err))
		return
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	jobs, err := h.Service.ListJobs(req.SessionId, req.Limit)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, jobs)
}

func (h Handler) GetJob(c *gin.Context) {
	job, err := h.Service.GetJob(c.Param("jobId"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, job)
}
