package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/service"
)

type FileHandler struct {
	documents *service.DocumentService
}

func NewFileHandler(documents *service.DocumentService) *FileHandler {
	return &FileHandler{documents: documents}
}

// Download streams the stored original PDF back to its owner.
func (h *FileHandler) Download(c *gin.Context) {
	doc, rc, err := h.documents.OpenFile(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	defer rc.Close()
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
