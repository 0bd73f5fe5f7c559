package storage

import (
	"errors"

	"gifcrop/internal/types"
	apperrors "gifcrop/pkg/errors"

	"gorm.io/gorm"
)

var errDBNotInitialized = errors.New("database not initialized")

func SaveJob(job *types.RenderJob) error {
	if DB == nil {
		return errDBNotInitialized
	}
	// JobId is the natural key; Id is only the row key
	var existing types.RenderJob
	result := DB.Where("job_id = ?", job.JobId).First(&existing)

	if result.Error == nil {
		job.Id = existing.Id
		job.CreatedAt = existing.CreatedAt
		return DB.Save(job).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(job).Error
	}
	return result.Error
}

func GetJob(jobID string) (*types.RenderJob, error) {
	if DB == nil {
		return nil, errDBNotInitialized
	}
	var job types.RenderJob
	if err := DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ListJobs returns the newest jobs first; an empty sessionID lists all sessions.
func ListJobs(sessionID string, limit int) ([]types.RenderJob, error) {
	if DB == nil {
		return nil, errDBNotInitialized
	}
	query := DB.Order("created_at desc, id desc")
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var jobs []types.RenderJob
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func UpdateJobStatus(jobID string, status types.RenderJobStatus, failReason, response string) error {
	if DB == nil {
		return errDBNotInitialized
	}
	result := DB.Model(&types.RenderJob{}).
		Where("job_id = ?", jobID).
		Updates(map[string]interface{}{
			"status":      status,
			"fail_reason": failReason,
			"response":    response,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkStaleJobs fails every job still pending, used on startup since the
// in-memory dispatcher does not survive a restart.
func MarkStaleJobs() (int64, error) {
	if DB == nil {
		return 0, errDBNotInitialized
	}
	result := DB.Model(&types.RenderJob{}).
		Where("status = ?", types.RenderJobPending).
		Updates(map[string]interface{}{
			"status":      types.RenderJobFailed,
			"fail_reason": "服务重启，任务被中断 Job interrupted by server restart",
		})
	return result.RowsAffected, result.Error
}
