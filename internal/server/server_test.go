package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type countingEvicter struct {
	calls atomic.Int32
}

func (c *countingEvicter) EvictIdle(time.Time, time.Duration) int {
	c.calls.Add(1)
	return 0
}

func TestSweepSessionsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ev := &countingEvicter{}

	go func() {
		sweepSessions(ctx, ev, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweepSessions did not return after cancel")
	}
	assert.Equal(t, int32(0), ev.calls.Load())
}

func TestSweepSessionsDisabled(t *testing.T) {
	ev := &countingEvicter{}
	sweepSessions(context.Background(), ev, 0)
	assert.Equal(t, int32(0), ev.calls.Load())
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTeapot, w.Code)
}
