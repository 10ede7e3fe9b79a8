package model

// QAInteraction is a single question/answer exchange bound to a document.
// Rows are never updated; they disappear only when their document is deleted.
type QAInteraction struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Ctime      int64  `json:"ctime"`
}
