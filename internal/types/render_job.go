package types

import (
	"time"

	"gifcrop/pkg/renderer"
)

type RenderJobStatus string

const (
	RenderJobPending   RenderJobStatus = "pending"
	RenderJobSubmitted RenderJobStatus = "submitted"
	RenderJobFailed    RenderJobStatus = "failed"
)

// RenderJob records one config batch handed to the render backend.
type RenderJob struct {
	Id          uint            `gorm:"primaryKey" json:"-"`
	JobId       string          `gorm:"uniqueIndex;size:64" json:"job_id"`
	SessionId   string          `gorm:"index;size:64" json:"session_id"`
	VideoId     string          `json:"video_id"`
	Method      string          `json:"method"`
	Endpoint    string          `json:"endpoint"`
	ConfigCount int             `json:"config_count"`
	Payload     string          `json:"-"`
	Status      RenderJobStatus `gorm:"index;size:16" json:"status"`
	FailReason  string          `json:"fail_reason,omitempty"`
	Response    string          `json:"response,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RenderPayload is what the dispatchers carry between Process and the submit worker.
type RenderPayload struct {
	JobID     string           `json:"job_id"`
	SessionID string           `json:"session_id"`
	Endpoint  string           `json:"endpoint"`
	Request   renderer.Request `json:"request"`
}
