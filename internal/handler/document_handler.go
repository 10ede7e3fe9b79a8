package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/model"
	"github.com/docbrief/docbrief/internal/pkg/errcode"
	"github.com/docbrief/docbrief/internal/pkg/response"
	"github.com/docbrief/docbrief/internal/pkg/textkit"
	"github.com/docbrief/docbrief/internal/service"
)

const (
	maxUploadBytes = 20 << 20
	previewChars   = 200
	maxKeywords    = 5
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type documentView struct {
	ID        string   `json:"id"`
	Filename  string   `json:"filename"`
	Summary   string   `json:"summary,omitempty"`
	Preview   string   `json:"preview"`
	Keywords  []string `json:"keywords"`
	WordCount int      `json:"word_count"`
	FileSize  int64    `json:"file_size"`
	SizeText  string   `json:"size_text"`
	Ctime     int64    `json:"ctime"`
}

func toDocumentView(doc *model.Document) documentView {
	return documentView{
		ID:        doc.ID,
		Filename:  doc.Filename,
		Summary:   doc.Summary,
		Preview:   textkit.Truncate(doc.Content, previewChars),
		Keywords:  textkit.Keywords(doc.Content, maxKeywords),
		WordCount: textkit.CountWords(doc.Content),
		FileSize:  doc.FileSize,
		SizeText:  textkit.FormatSize(doc.FileSize),
		Ctime:     doc.Ctime,
	}
}

type qaView struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Ctime    int64  `json:"ctime"`
}

func toQAView(qa *model.QAInteraction) qaView {
	return qaView{
		ID:       qa.ID,
		Question: qa.Question,
		Answer:   qa.Answer,
		Ctime:    qa.Ctime,
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if file.Size > maxUploadBytes {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(io.LimitReader(opened, maxUploadBytes+1))
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}
	if len(data) > maxUploadBytes {
		response.Error(c, errcode.ErrInvalidFile, "file too large")
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), getUserID(c), file.Filename, data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toDocumentView(doc))
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	views := make([]documentView, 0, len(docs))
	for i := range docs {
		views = append(views, toDocumentView(&docs[i]))
	}
	response.Success(c, gin.H{"documents": views})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toDocumentView(doc))
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	deleted, err := h.documents.Delete(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if !deleted {
		response.Error(c, errcode.ErrNotFound, "not found")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *DocumentHandler) History(c *gin.Context) {
	items, err := h.documents.History(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	views := make([]qaView, 0, len(items))
	for i := range items {
		views = append(views, toQAView(&items[i]))
	}
	response.Success(c, gin.H{"history": views})
}

func (h *DocumentHandler) Stats(c *gin.Context) {
	stats, err := h.documents.Stats(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, stats)
}
