// Package middleware provides HTTP middleware for the incident query API.
//
// Import Path: incidentlens.io/lens/internal/api/middleware
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error as
// the contract's Error body. Errors that are not AppErrors become a generic
// 500. Lookup misses are routine and logged at debug level.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		rid := GetRequestID(c.Request.Context())

		appErr, ok := apperrors.As(err)
		if !ok {
			logger.Error("Unhandled request error", zap.String("request_id", rid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, apperrors.Internal())
			return
		}

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Int("status", appErr.HTTPStatus),
		}
		if appErr.Err != nil {
			fields = append(fields, zap.Error(appErr.Err))
		}
		if apperrors.IsNotFound(appErr) {
			logger.Debug("Lookup miss", fields...)
		} else {
			logger.Warn("Request error", fields...)
		}
		c.JSON(appErr.HTTPStatus, appErr)
	}
}

// Recovery converts a panic in a later handler into a 500 response in the
// same shape as ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered",
			zap.String("request_id", GetRequestID(c.Request.Context())),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal())
	})
}
