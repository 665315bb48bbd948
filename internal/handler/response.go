package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	"github.com/JohirU-coder/landlord-property-service/internal/middleware"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
	"github.com/JohirU-coder/landlord-property-service/internal/validation"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// respondError maps err onto a status code and error body. Anything that
// is neither an AppError nor a validation failure becomes a 500.
func respondError(c *gin.Context, err error) {
	var (
		appErr *service.AppError
		verrs  validation.Errors
	)
	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error:   service.ErrCodeValidation,
			Message: "request validation failed",
			Details: verrs,
		})
		return
	case errors.As(err, &appErr):
		if appErr.StatusCode >= http.StatusInternalServerError {
			logError(c, appErr.Message, appErr.Err)
		}
		c.AbortWithStatusJSON(appErr.StatusCode, ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	logError(c, "unexpected error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   service.ErrCodeInternal,
		Message: "an unexpected error occurred",
	})
}

func logError(c *gin.Context, msg string, err error) {
	entry := logger.Log.WithFields(logrus.Fields{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(middleware.RequestIDKey),
	})
	if err != nil {
		entry = entry.WithError(err)
		_ = c.Error(err)
	}
	entry.Error(msg)
}

func badRequest(c *gin.Context, code, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: code, Message: msg})
}

// pathID parses the :id parameter as a positive integer, answering 400
// when it is not one.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, service.ErrCodeInvalidID, "property id must be a positive integer")
		return 0, false
	}
	return id, true
}
