package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/pkg/errcode"
	"github.com/docbrief/docbrief/internal/pkg/response"
	"github.com/docbrief/docbrief/internal/service"
)

type AIHandler struct {
	documents *service.DocumentService
}

func NewAIHandler(documents *service.DocumentService) *AIHandler {
	return &AIHandler{documents: documents}
}

type summarizeRequest struct {
	Length string `json:"length"`
}

type askRequest struct {
	Question string `json:"question"`
}

// Summarize generates a summary of the document at the requested length.
// Length is free-form; anything unrecognized gets the medium treatment.
func (h *AIHandler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, errcode.ErrInvalid, "invalid request")
			return
		}
	}
	summary, err := h.documents.Summarize(c.Request.Context(), getUserID(c), c.Param("id"), req.Length)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"summary": summary})
}

func (h *AIHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	qa, err := h.documents.Ask(c.Request.Context(), getUserID(c), c.Param("id"), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toQAView(qa))
}
