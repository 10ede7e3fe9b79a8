package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/pkg/errcode"
	"github.com/docbrief/docbrief/internal/pkg/response"
	"github.com/docbrief/docbrief/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type openSessionRequest struct {
	UserID string `json:"user_id"`
}

// OpenSession mints a token for the supplied identity, or a fresh guest
// identity when the body names none.
func (h *AuthHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, errcode.ErrInvalid, "invalid request")
			return
		}
	}
	userID, token, err := h.auth.OpenSession(c.Request.Context(), req.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user_id": userID,
		"token":   token,
	})
}
