package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/contextly-dev/contextly/pkg/utils"
)

func (mw *MiddlewareManager) AuthSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(mw.cfg.Cookie.Name)
		if err != nil {
			mw.logger.Errorf("AuthSessionMiddleware: RequestID: %s, Error: %s", utils.GetRequestID(c), err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized access"})
		}

		claims, err := utils.ValidateToken(cookie.Value, mw.cfg.Server.JwtSecretKey)
		if err != nil {
			mw.logger.Errorf("AuthSessionMiddleware: RequestID: %s, Error: %s", utils.GetRequestID(c), err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized access"})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			mw.logger.Errorf("AuthSessionMiddleware: RequestID: %s, Error: %s", utils.GetRequestID(c), err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized access"})
		}

		user, err := mw.authUC.GetByID(c.Request().Context(), userID)
		if err != nil {
			mw.logger.Errorf("AuthSessionMiddleware: RequestID: %s, Error: %s", utils.GetRequestID(c), err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized access"})
		}

		c.Set("user", user)
		ctx := context.WithValue(c.Request().Context(), utils.UserCtxKey{}, user)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
