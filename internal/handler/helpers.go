package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/ai"
	"github.com/docbrief/docbrief/internal/middleware"
	"github.com/docbrief/docbrief/internal/pkg/errcode"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
	"github.com/docbrief/docbrief/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrRefIntegrity):
		response.Error(c, errcode.ErrConflict, "document no longer exists")
	case errors.Is(err, appErr.ErrStorageUnavailable):
		response.Error(c, errcode.ErrStorageUnavailable, "storage temporarily unavailable")
	case errors.Is(err, ai.ErrNotConfigured):
		response.Error(c, errcode.ErrAINotConfigured, "no ai provider configured")
	case errors.Is(err, ai.ErrEmptyResponse):
		response.Error(c, errcode.ErrAIEmptyResult, "model returned an empty result")
	case errors.Is(err, ai.ErrUnavailable):
		response.Error(c, errcode.ErrAIUnavailable, "model service unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
