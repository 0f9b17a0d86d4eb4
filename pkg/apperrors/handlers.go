package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure body: {message} or {message, errors}.
type ErrorResponse struct {
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// GinErrorHandler writes AppErrors as JSON. With Debug off the message of
// any 5xx error is replaced by a generic one.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	resp := ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error",
			slog.String("code", string(appErr.Code)),
			slog.String("domain", appErr.Domain),
			slog.Any("error", appErr.Unwrap()),
			slog.String("path", c.Request.URL.Path),
		)
		if !h.Debug {
			resp.Message = "Internal server error"
			resp.Errors = nil
		} else if appErr.Err != nil {
			resp.Message = appErr.Message + ": " + appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, resp)
}

// HandleError writes err using the handler stored on the context by
// ErrorHandlerMiddleware, or a non-debug handler when none is present.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{}
	if v, ok := c.Get(handlerKey); ok {
		if h, ok := v.(*GinErrorHandler); ok {
			handler = h
		}
	}
	handler.HandleGinError(c, err)
}

const handlerKey = "apperrors.handler"

// ErrorHandlerMiddleware installs the error writer for the request.
func ErrorHandlerMiddleware(debug bool) gin.HandlerFunc {
	handler := &GinErrorHandler{Debug: debug}
	return func(c *gin.Context) {
		c.Set(handlerKey, handler)
		c.Next()
	}
}
