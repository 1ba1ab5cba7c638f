package web

import (
	"cmp"
	"errors"
	"github.com/explore-flights/flight-aggregator/web/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func errorResponse(err error) (int, ErrorResponse, error) {
	var validationErr *model.ValidationError
	var httpErr *HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		res := ErrorResponse{Error: validationErr.Message}
		if len(validationErr.Details) > 0 {
			res.Details = validationErr.Details
		}

		return http.StatusBadRequest, res, nil

	case errors.As(err, &httpErr):
		return httpErr.code, ErrorResponse{Error: httpErr.message, Details: httpErr.details}, httpErr.cause

	case errors.As(err, &echoErr):
		msg := http.StatusText(echoErr.Code)
		if s, ok := echoErr.Message.(string); ok {
			msg = s
		}

		return echoErr.Code, ErrorResponse{Error: msg}, echoErr.Internal

	default:
		return http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, err
	}
}

// ErrorHandler renders every error as {error, details?}. Server errors are logged with their cause.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, res, cause := errorResponse(err)
		if status >= http.StatusInternalServerError {
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Int("status", status),
				zap.Error(cmp.Or(cause, err)),
			}

			if res.Details != nil {
				fields = append(fields, zap.Any("details", res.Details))
			}

			log.Error(res.Error, fields...)
		}

		noCache(c)

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, res)
		}

		if writeErr != nil {
			log.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}
