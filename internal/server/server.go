package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gifcrop/config"
	"gifcrop/internal/queue"
	"gifcrop/internal/router"
	"gifcrop/internal/service"
	"gifcrop/internal/taskrunner"
	"gifcrop/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// StartBackend serves the API until SIGINT/SIGTERM or a component fails.
func StartBackend() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

func Run(ctx context.Context) error {
	svc := service.NewService()
	g, ctx := errgroup.WithContext(ctx)

	switch config.Conf.Queue.Provider {
	case config.QueueProviderRedis:
		q := queue.NewQueue(queue.QueueConfig{
			RedisAddr:   config.Conf.Queue.RedisAddr,
			Concurrency: config.Conf.Queue.Workers,
			MaxRetry:    config.Conf.Queue.MaxRetry,
		})
		defer q.Close()
		svc.Dispatcher = q
		g.Go(func() error {
			return queue.StartWorker(ctx, q, svc.ExecuteRender)
		})
	default:
		runner := taskrunner.New(svc.ExecuteRender, taskrunner.Config{
			QueueSize:   config.Conf.Queue.Capacity,
			Concurrency: config.Conf.Queue.Workers,
		})
		defer runner.Close()
		svc.Dispatcher = runner
	}
	log.GetLogger().Info("render dispatcher ready", zap.String("provider", config.Conf.Queue.Provider))

	g.Go(func() error {
		sweepSessions(ctx, svc.Sessions, time.Duration(config.Conf.App.SessionIdleMinutes)*time.Minute)
		return nil
	})

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	router.SetupRouter(engine, svc)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	g.Go(func() error {
		log.GetLogger().Info("服务启动 Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.GetLogger().Info("服务关闭 Server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type idleEvicter interface {
	EvictIdle(now time.Time, maxIdle time.Duration) int
}

func sweepSessions(ctx context.Context, sessions idleEvicter, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions.EvictIdle(now, maxIdle)
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.GetLogger().Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
