package service

import (
	"context"
	"encoding/json"

	"gifcrop/internal/storage"
	"gifcrop/internal/types"
	"gifcrop/log"
	"gifcrop/pkg/errors"
	"gifcrop/pkg/renderer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// marshalResult encodes the renderer reply stored on the job record.
var marshalResult = json.Marshal

// Process builds the render request for a session, records it and hands it
// to the dispatcher. The job comes back pending; the worker settles it.
func (s *Service) Process(sessionID string) (*types.RenderJob, error) {
	if s.Dispatcher == nil {
		return nil, errors.ErrDispatchStopped
	}
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	export, err := sess.Process()
	if err != nil {
		return nil, err
	}

	payload := types.RenderPayload{
		JobID:     uuid.New().String(),
		SessionID: sessionID,
		Endpoint:  export.Endpoint,
		Request:   export.Request,
	}
	raw, err := json.Marshal(payload.Request)
	if err != nil {
		return nil, errors.Wrap(errors.CodeRenderSubmit, errors.ErrRenderSubmit.Message, err)
	}
	job := &types.RenderJob{
		JobId:       payload.JobID,
		SessionId:   sessionID,
		VideoId:     export.Request.VideoID,
		Method:      string(export.Method),
		Endpoint:    export.Endpoint,
		ConfigCount: len(export.Request.GifConfigs),
		Payload:     string(raw),
		Status:      types.RenderJobPending,
	}
	if storage.DB != nil {
		if err := storage.SaveJob(job); err != nil {
			return nil, dbError(err)
		}
	}

	if err := s.Dispatcher.Dispatch(payload); err != nil {
		log.ForSession(sessionID).Error("render dispatch failed", zap.String("job_id", job.JobId), zap.Error(err))
		s.settle(job.JobId, types.RenderJobFailed, err.Error(), "")
		return nil, err
	}

	log.ForSession(sessionID).Info("render job queued",
		zap.String("job_id", job.JobId),
		zap.String("endpoint", job.Endpoint),
		zap.Int("configs", job.ConfigCount))
	return job, nil
}

// ExecuteRender is the dispatcher handler: it submits the payload to the
// render service and settles the job record.
func (s *Service) ExecuteRender(ctx context.Context, payload types.RenderPayload) error {
	result, err := s.Renderer.Submit(ctx, payload.Endpoint, payload.Request)
	if err != nil {
		log.ForSession(payload.SessionID).Error("render submit failed", zap.String("job_id", payload.JobID), zap.Error(err))
		s.settle(payload.JobID, types.RenderJobFailed, err.Error(), "")
		return err
	}

	if result == nil {
		result = &renderer.Result{}
	}
	response, err := marshalResult(result)
	if err != nil {
		log.ForSession(payload.SessionID).Warn("encode render result failed", zap.String("job_id", payload.JobID), zap.Error(err))
		response = nil
	}
	s.settle(payload.JobID, types.RenderJobSubmitted, "", string(response))
	log.ForSession(payload.SessionID).Info("render job submitted", zap.String("job_id", payload.JobID), zap.String("status", result.Status))
	return nil
}

func (s *Service) settle(jobID string, status types.RenderJobStatus, failReason, response string) {
	if storage.DB == nil {
		return
	}
	if err := storage.UpdateJobStatus(jobID, status, failReason, response); err != nil {
		log.GetLogger().Warn("update render job failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (s *Service) GetJob(jobID string) (*types.RenderJob, error) {
	job, err := storage.GetJob(jobID)
	if err != nil {
		return nil, dbError(err)
	}
	return job, nil
}

func (s *Service) ListJobs(sessionID string, limit int) ([]types.RenderJob, error) {
	jobs, err := storage.ListJobs(sessionID, limit)
	if err != nil {
		return nil, dbError(err)
	}
	return jobs, nil
}

// dbError keeps application errors and wraps driver errors as CodeDBError.
func dbError(err error) error {
	if errors.GetCode(err) != errors.CodeUnknown {
		return err
	}
	return errors.Wrap(errors.CodeDBError, errors.ErrDBError.Message, err)
}
