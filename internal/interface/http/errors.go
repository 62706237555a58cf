package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/interface/middleware"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
	"github.com/oksasatya/complaint-desk/pkg/response"
	"github.com/oksasatya/complaint-desk/pkg/validation"
)

// bindError carries a request binding failure. It classifies as
// apperror.ErrValidation.
type bindError struct{ err error }

func (e *bindError) Error() string { return "invalid payload: " + e.err.Error() }
func (e *bindError) Unwrap() error { return apperror.ErrValidation }

func invalidPayload(err error) error { return &bindError{err: err} }

// fail hands err to ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error pushed onto the gin context. It must
// be registered before any middleware or handler that calls c.Error.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, message, details := classify(last.Err)
		if status == http.StatusInternalServerError {
			helpers.LogError(logger, "request failed", last.Err, logrus.Fields{
				"request_id": c.GetString(middleware.KeyRequestID),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
			})
		}
		response.Error(c, status, message, details)
	}
}

func classify(err error) (int, string, any) {
	var be *bindError
	switch {
	case errors.As(err, &be):
		return http.StatusBadRequest, "invalid payload", validation.ToDetails(be.err)
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, err.Error(), nil
	case errors.Is(err, apperror.ErrDuplicateUser):
		return http.StatusBadRequest, "User already exists", nil
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid Credentials", nil
	case errors.Is(err, apperror.ErrInvalidStatus):
		return http.StatusBadRequest, "Invalid status value", nil
	case errors.Is(err, apperror.ErrUnauthenticated):
		return http.StatusUnauthorized, "No token, authorization denied", nil
	case errors.Is(err, apperror.ErrInvalidToken):
		return http.StatusUnauthorized, "Token is not valid", nil
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, "Access denied: Admin required", nil
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, notFoundMessage(err), nil
	case errors.Is(err, apperror.ErrInvalidTransition):
		return http.StatusConflict, "Resolved complaints cannot be reopened", nil
	case errors.Is(err, apperror.ErrUnavailable):
		return http.StatusServiceUnavailable, "Service unavailable", nil
	default:
		return http.StatusInternalServerError, "Server error", nil
	}
}

// withEntity names the missing entity in a NotFound error.
func withEntity(what string, err error) error {
	var me *apperror.MissingError
	if errors.Is(err, apperror.ErrNotFound) && !errors.As(err, &me) {
		return apperror.NotFound(what)
	}
	return err
}

func notFoundMessage(err error) string {
	var me *apperror.MissingError
	if errors.As(err, &me) {
		return me.Error()
	}
	return "Not found"
}
