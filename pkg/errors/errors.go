// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002

	// Editor errors (1100-1199)
	CodeFrameUnknown    = 1100
	CodeNoConfigs       = 1101
	CodeSessionNotFound = 1102
	CodeInvalidMethod   = 1103
	CodeRegionNotFound  = 1104
	CodeUnsupportedUnit = 1105
	CodeLineNotFound    = 1106

	// Render handoff errors (1200-1299)
	CodeRenderSubmit    = 1200
	CodeQueueFull       = 1201
	CodeDispatchStopped = 1202

	// Storage errors (1500-1599)
	CodeDBError = 1500
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "参数错误 Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "资源不存在 Resource not found")

	// Editor
	ErrFrameUnknown    = New(CodeFrameUnknown, "视频尺寸未知 Video frame dimensions unknown")
	ErrNoConfigs       = New(CodeNoConfigs, "请至少配置一个GIF Please configure at least one GIF")
	ErrSessionNotFound = New(CodeSessionNotFound, "会话不存在 Session not found")
	ErrInvalidMethod   = New(CodeInvalidMethod, "裁剪方式无效 Invalid crop method")
	ErrRegionNotFound  = New(CodeRegionNotFound, "区域不存在 Region not found")
	ErrUnsupportedUnit = New(CodeUnsupportedUnit, "单位无效 Unsupported unit")
	ErrLineNotFound    = New(CodeLineNotFound, "分割线不存在 Line not found")

	// Render handoff
	ErrRenderSubmit    = New(CodeRenderSubmit, "提交渲染失败 Render submission failed")
	ErrQueueFull       = New(CodeQueueFull, "任务队列已满 Task queue is full")
	ErrDispatchStopped = New(CodeDispatchStopped, "任务调度已停止 Dispatcher stopped")

	// Storage
	ErrDBError = New(CodeDBError, "数据库错误 Database error")
)
