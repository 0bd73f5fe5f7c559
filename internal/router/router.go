package router

import (
	"net/http"

	"gifcrop/internal/handler"
	"gifcrop/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(r *gin.Engine, svc *service.Service) {
	api := r.Group("/api")

	hdl := handler.NewHandler(svc)
	{
		api.POST("/sessions", hdl.CreateSession)
		api.GET("/sessions/:id", hdl.GetSession)
		api.DELETE("/sessions/:id", hdl.DeleteSession)
		api.PUT("/sessions/:id/video", hdl.SetVideo)
		api.PUT("/sessions/:id/frame", hdl.SetVideoFrame)
		api.PUT("/sessions/:id/viewport", hdl.Resize)
		api.PUT("/sessions/:id/method", hdl.SetMethod)
		// Method parameters
		api.PUT("/sessions/:id/grid", hdl.SetGrid)
		api.PUT("/sessions/:id/lines", hdl.SetLines)
		api.POST("/sessions/:id/lines", hdl.AddLine)
		api.DELETE("/sessions/:id/lines/:axis/:index", hdl.RemoveLine)
		api.PUT("/sessions/:id/lines/unit", hdl.SetLineUnit)
		api.DELETE("/sessions/:id/regions/:index", hdl.RemoveRegion)
		api.POST("/sessions/:id/manual", hdl.AddManualRegion)
		api.DELETE("/sessions/:id/manual/:index", hdl.RemoveManualRegion)
		api.PUT("/sessions/:id/manual/:index/unit", hdl.ConvertManualUnit)
		api.PATCH("/sessions/:id/configs/:index", hdl.EditConfigField)
		// Pointer input
		api.POST("/sessions/:id/pointer", hdl.Pointer)
		api.GET("/sessions/:id/pointer/stream", hdl.PointerStream)
		// Render handoff
		api.POST("/sessions/:id/process", hdl.Process)
		api.POST("/sessions/:id/export", hdl.ExportConfigs)
		api.GET("/jobs", hdl.ListJobs)
		api.GET("/jobs/:jobId", hdl.GetJob)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}
