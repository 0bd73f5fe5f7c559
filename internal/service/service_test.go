package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gifcrop/internal/editor"
	"gifcrop/internal/geometry"
	"gifcrop/internal/interaction"
	"gifcrop/internal/mocks"
	"gifcrop/internal/storage"
	"gifcrop/internal/types"
	apperrors "gifcrop/pkg/errors"
	"gifcrop/pkg/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(submitter renderer.Submitter, dispatcher Dispatcher) *Service {
	opts := editor.Options{
		Interaction: interaction.DefaultConfig(),
		Defaults:    types.ClipDefaults{Duration: 5, Fps: 15},
	}
	return &Service{
		Sessions:   NewSessionStore(types.MethodGrid, opts),
		Renderer:   submitter,
		Dispatcher: dispatcher,
	}
}

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, storage.Open(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { _ = storage.Close() })
}

// readySession returns a grid session with a known frame and a video id.
func readySession(t *testing.T, svc *Service) *editor.Session {
	t.Helper()
	sess, err := svc.Sessions.Create("grid")
	require.NoError(t, err)
	_, err = sess.SetVideoFrame(geometry.VideoFrame{Width: 1280, Height: 720})
	require.NoError(t, err)
	sess.SetVideo("vid-42")
	return sess
}

func TestSessionStoreLifecycle(t *testing.T) {
	svc := newTestService(nil, nil)

	sess, err := svc.Sessions.Create("")
	require.NoError(t, err)
	assert.Equal(t, types.MethodGrid, sess.Snapshot().Method)
	assert.Equal(t, 1, svc.Sessions.Len())

	got, err := svc.Sessions.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, svc.Sessions.Delete(sess.ID()))
	_, err = svc.Sessions.Get(sess.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodeSessionNotFound))
	assert.True(t, apperrors.Is(svc.Sessions.Delete(sess.ID()), apperrors.CodeSessionNotFound))
}

func TestSessionStoreRejectsUnknownMethod(t *testing.T) {
	svc := newTestService(nil, nil)
	_, err := svc.Sessions.Create("spiral")
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidMethod))
}

func TestEvictIdle(t *testing.T) {
	svc := newTestService(nil, nil)
	_, err := svc.Sessions.Create("grid")
	require.NoError(t, err)

	assert.Equal(t, 0, svc.Sessions.EvictIdle(time.Now(), time.Hour))
	assert.Equal(t, 1, svc.Sessions.EvictIdle(time.Now().Add(2*time.Hour), time.Hour))
	assert.Equal(t, 0, svc.Sessions.Len())
}

func TestProcessDispatchesAndRecords(t *testing.T) {
	openTestDB(t)
	dispatcher := new(mocks.MockDispatcher)
	svc := newTestService(nil, dispatcher)
	sess := readySession(t, svc)

	dispatcher.On("Dispatch", mock.MatchedBy(func(p types.RenderPayload) bool {
		return p.SessionID == sess.ID() && p.Endpoint == renderer.EndpointGridCrop && len(p.Request.GifConfigs) == 4
	})).Return(nil).Once()

	job, err := svc.Process(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, types.RenderJobPending, job.Status)
	assert.Equal(t, "vid-42", job.VideoId)
	assert.Equal(t, 4, job.ConfigCount)
	dispatcher.AssertExpectations(t)

	stored, err := svc.GetJob(job.JobId)
	require.NoError(t, err)
	assert.Equal(t, types.RenderJobPending, stored.Status)
	assert.Contains(t, stored.Payload, `"rows":2`)
}

func TestProcessDispatchFailureMarksJobFailed(t *testing.T) {
	openTestDB(t)
	dispatcher := new(mocks.MockDispatcher)
	svc := newTestService(nil, dispatcher)
	sess := readySession(t, svc)

	dispatcher.On("Dispatch", mock.Anything).Return(apperrors.ErrQueueFull)

	_, err := svc.Process(sess.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodeQueueFull))

	jobs, err := svc.ListJobs(sess.ID(), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, types.RenderJobFailed, jobs[0].Status)
}

func TestProcessErrors(t *testing.T) {
	svc := newTestService(nil, new(mocks.MockDispatcher))

	_, err := svc.Process("missing")
	assert.True(t, apperrors.Is(err, apperrors.CodeSessionNotFound))

	sess, err := svc.Sessions.Create("drag")
	require.NoError(t, err)
	_, err = sess.SetVideoFrame(geometry.VideoFrame{Width: 1280, Height: 720})
	require.NoError(t, err)
	sess.SetVideo("vid")
	_, err = svc.Process(sess.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodeNoConfigs))
}

func TestProcessWithoutStorage(t *testing.T) {
	dispatcher := new(mocks.MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything).Return(nil)
	svc := newTestService(nil, dispatcher)
	sess := readySession(t, svc)

	job, err := svc.Process(sess.ID())
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobId)
}

func TestExecuteRender(t *testing.T) {
	openTestDB(t)
	submitter := new(mocks.MockSubmitter)
	svc := newTestService(submitter, nil)

	payload := types.RenderPayload{
		JobID:     "job-1",
		SessionID: "sess-1",
		Endpoint:  renderer.EndpointProcessGifs,
		Request:   renderer.Request{VideoID: "vid", GifConfigs: []renderer.GifConfig{{Filename: "drag_1.gif"}}},
	}
	require.NoError(t, storage.SaveJob(&types.RenderJob{JobId: "job-1", SessionId: "sess-1", Status: types.RenderJobPending}))

	submitter.On("Submit", mock.Anything, renderer.EndpointProcessGifs, payload.Request).
		Return(&renderer.Result{Status: "success", Message: "Processing started"}, nil).Once()

	require.NoError(t, svc.ExecuteRender(context.Background(), payload))
	job, err := svc.GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, types.RenderJobSubmitted, job.Status)
	assert.Contains(t, job.Response, "Processing started")
	submitter.AssertExpectations(t)
}

func TestExecuteRenderFailure(t *testing.T) {
	openTestDB(t)
	submitter := new(mocks.MockSubmitter)
	svc := newTestService(submitter, nil)
	require.NoError(t, storage.SaveJob(&types.RenderJob{JobId: "job-2", Status: types.RenderJobPending}))

	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	err := svc.ExecuteRender(context.Background(), types.RenderPayload{JobID: "job-2", Endpoint: renderer.EndpointGridCrop})
	require.Error(t, err)

	job, err := svc.GetJob("job-2")
	require.NoError(t, err)
	assert.Equal(t, types.RenderJobFailed, job.Status)
	assert.Contains(t, job.FailReason, "connection refused")
}

func TestProcessWithoutDispatcherStoresNothing(t *testing.T) {
	openTestDB(t)
	svc := newTestService(nil, nil)
	sess := readySession(t, svc)

	_, err := svc.Process(sess.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodeDispatchStopped))

	jobs, err := svc.ListJobs(sess.ID(), 10)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestExecuteRenderResultEncodeFailure(t *testing.T) {
	openTestDB(t)
	oldMarshal := marshalResult
	marshalResult = func(any) ([]byte, error) { return nil, errors.New("encode failed") }
	t.Cleanup(func() { marshalResult = oldMarshal })

	submitter := new(mocks.MockSubmitter)
	svc := newTestService(submitter, nil)
	require.NoError(t, storage.SaveJob(&types.RenderJob{JobId: "job-3", Status: types.RenderJobPending}))
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(&renderer.Result{Status: "success"}, nil)

	require.NoError(t, svc.ExecuteRender(context.Background(), types.RenderPayload{JobID: "job-3", Endpoint: renderer.EndpointGridCrop}))

	job, err := svc.GetJob("job-3")
	require.NoError(t, err)
	assert.Equal(t, types.RenderJobSubmitted, job.Status)
	assert.Empty(t, job.Response)
}

func TestGetJobWithoutStorage(t *testing.T) {
	svc := newTestService(nil, nil)
	_, err := svc.GetJob("x")
	assert.True(t, apperrors.Is(err, apperrors.CodeDBError))
}
