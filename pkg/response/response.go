// Package response writes the uniform envelope every endpoint answers with.
package response

import (
	"errors"
	"net/http"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const internalMessage = "internal server error"

type CommonResp struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, CommonResp{
		Success: true,
		Code:    apperr.CodeOK,
		Data:    data,
	})
}

// Fail converts err into a failure envelope. Errors without a known kind are
// logged in full and reported with a generic message.
func Fail(c *gin.Context, log *logger.Logger, err error) {
	code := apperr.CodeOf(err)
	message := err.Error()
	if code == apperr.CodeInternal {
		if log != nil {
			log.Error("%s %s: %+v", c.Request.Method, c.Request.URL.Path, err)
		}
		message = internalMessage
	}

	c.AbortWithStatusJSON(StatusFor(err), CommonResp{
		Success: false,
		Code:    code,
		Message: message,
	})
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, CommonResp{
		Success: false,
		Code:    apperr.CodeValidation,
		Message: err.Error(),
	})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidCredential),
		errors.Is(err, apperr.ErrTokenExpired),
		errors.Is(err, apperr.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrInsufficientBalance),
		errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrRemoteCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
