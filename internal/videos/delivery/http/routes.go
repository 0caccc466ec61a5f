package http

import (
	"github.com/labstack/echo/v4"

	"github.com/contextly-dev/contextly/internal/middleware"
	"github.com/contextly-dev/contextly/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handler, mw *middleware.MiddlewareManager) {
	videoGroup.Use(mw.AuthSessionMiddleware)
	videoGroup.POST("/download", h.Download())
	videoGroup.GET("/list", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.GET("/:video_id/status", h.GetStatus())
	videoGroup.DELETE("/:video_id", h.DeleteVideo())
}
