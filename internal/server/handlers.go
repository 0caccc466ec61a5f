package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	authHttp "github.com/contextly-dev/contextly/internal/auth/delivery/http"
	authRepository "github.com/contextly-dev/contextly/internal/auth/repository"
	authUsecase "github.com/contextly-dev/contextly/internal/auth/usecase"
	"github.com/contextly-dev/contextly/internal/jobs"
	"github.com/contextly-dev/contextly/internal/middleware"
	"github.com/contextly-dev/contextly/internal/pipeline"
	videoHttp "github.com/contextly-dev/contextly/internal/videos/delivery/http"
	videoRepository "github.com/contextly-dev/contextly/internal/videos/repository"
	videoUsecase "github.com/contextly-dev/contextly/internal/videos/usecase"
	"github.com/contextly-dev/contextly/pkg/executor"
	"github.com/contextly-dev/contextly/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	aRepo := authRepository.NewAuthRepo(s.db)
	vRepo := videoRepository.NewVideoRepo(s.db)
	vRedisRepo := videoRepository.NewVideoRedisRepo(s.redisClient, s.cfg.Redis.StatusPrefix)

	exec := executor.New()
	modelStore := pipeline.NewS3ModelStore(s.s3Client, s.cfg)
	orchestrator := pipeline.NewOrchestrator(s.cfg, vRepo, vRedisRepo, modelStore, exec, s.logger)

	s.dispatcher = jobs.NewDispatcher(s.cfg, orchestrator, s.logger)
	s.dispatcher.Start(context.Background())

	authUC := authUsecase.NewAuthUseCase(s.cfg, aRepo, s.logger)
	videoUC := videoUsecase.NewVideoUseCase(s.cfg, vRepo, vRedisRepo, s.dispatcher, s.logger)

	authHandlers := authHttp.NewAuthHandler(s.cfg, authUC, s.logger)
	videoHandlers := videoHttp.NewVideoHandler(videoUC)

	mw := middleware.NewMiddlewareManager(authUC, s.cfg, []string{"*"}, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	authGroup := v1.Group("/auth")
	videoGroup := v1.Group("/video")

	authHttp.MapAuthRoutes(authGroup, authHandlers, mw)
	videoHttp.MapVideoRoutes(videoGroup, videoHandlers, mw)

	// Fetched thumbnails and media are served straight from the jobs root.
	e.Static("/downloads", s.cfg.Jobs.Root)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
