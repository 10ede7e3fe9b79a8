package model

// Document is one uploaded file's extracted text plus its derived summary.
// Content is write-once: rows are created and deleted, never edited, with the
// single exception of attaching a summary after a failed creation-time
// summarization.
type Document struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Summary  string `json:"summary"`
	FileKey  string `json:"file_key"`
	FileSize int64  `json:"file_size"`
	Ctime    int64  `json:"ctime"`
}
