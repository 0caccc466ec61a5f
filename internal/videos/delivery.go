package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	Download() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	GetStatus() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
}
