package middleware

import (
	"github.com/contextly-dev/contextly/internal/auth"
	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/pkg/logger"
)

type MiddlewareManager struct {
	authUC  auth.UseCase
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

func NewMiddlewareManager(authUC auth.UseCase, cfg *config.Config, origins []string, log logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{
		authUC:  authUC,
		cfg:     cfg,
		origins: origins,
		logger:  log,
	}
}
