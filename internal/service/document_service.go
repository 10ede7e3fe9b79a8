package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/extract"
	"github.com/docbrief/docbrief/internal/filestore"
	"github.com/docbrief/docbrief/internal/model"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
	"github.com/docbrief/docbrief/internal/pkg/timeutil"
	"github.com/docbrief/docbrief/internal/repo"
)

const defaultSummaryLength = "medium"

type UserStats struct {
	Documents int `json:"documents"`
	Questions int `json:"questions"`
}

// DocumentService owns the document lifecycle: ingest a PDF, keep its
// extracted text, generate summaries and answers over it, and tear
// everything down on delete.
type DocumentService struct {
	docs  *repo.DocumentRepo
	qas   *repo.QARepo
	ai    *AIService
	store filestore.Store
}

func NewDocumentService(docs *repo.DocumentRepo, qas *repo.QARepo, ai *AIService, store filestore.Store) *DocumentService {
	return &DocumentService{
		docs:  docs,
		qas:   qas,
		ai:    ai,
		store: store,
	}
}

type byteReadSeekCloser struct {
	*bytes.Reader
}

func (byteReadSeekCloser) Close() error {
	return nil
}

// Upload ingests one PDF: extract and clean its text, park the original in
// the file store, and create the document row. Summarization is attempted
// inline but is best effort; when the upstream model is down the document is
// still created and the backfill job attaches the summary later.
func (s *DocumentService) Upload(ctx context.Context, userID string, filename string, data []byte) (*model.Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", appErr.ErrInvalid)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", appErr.ErrInvalid)
	}
	if !extract.IsPDF(data) {
		return nil, fmt.Errorf("%w: only pdf files are supported", appErr.ErrInvalid)
	}
	res, err := extract.FromPDF(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("%w: no extractable text in pdf", appErr.ErrInvalid)
	}

	id := newID()
	key := id + ".pdf"
	if err := s.store.Save(ctx, key, byteReadSeekCloser{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return nil, fmt.Errorf("save original file: %w", err)
	}

	summary := ""
	if out, err := s.ai.Summarize(ctx, res.Text, defaultSummaryLength); err != nil {
		logutil.GetLogger(ctx).Warn("inline summarization failed, leaving it to backfill",
			zap.String("document_id", id), zap.Error(err))
	} else {
		summary = out
	}

	doc := &model.Document{
		ID:       id,
		UserID:   userID,
		Filename: sanitizeFilename(filename),
		Content:  res.Text,
		Summary:  summary,
		FileKey:  key,
		FileSize: int64(len(data)),
		Ctime:    timeutil.NowUnix(),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, userID string, docID string) (*model.Document, error) {
	return s.docs.GetByID(ctx, userID, docID)
}

func (s *DocumentService) List(ctx context.Context, userID string) ([]model.Document, error) {
	return s.docs.List(ctx, userID)
}

// Delete removes a document and, through the schema cascade, its question
// history. The bool mirrors the repo: false means nothing was removed,
// without revealing whether the id exists under another owner.
func (s *DocumentService) Delete(ctx context.Context, userID string, docID string) (bool, error) {
	return s.docs.Delete(ctx, docID, userID)
}

// Summarize generates a summary at the requested length. A document that is
// still missing its stored summary picks this one up.
func (s *DocumentService) Summarize(ctx context.Context, userID string, docID string, length string) (string, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	summary, err := s.ai.Summarize(ctx, doc.Content, length)
	if err != nil {
		return "", err
	}
	if doc.Summary == "" {
		if err := s.docs.AttachSummary(ctx, docID, summary); err != nil {
			logutil.GetLogger(ctx).Warn("attach summary failed", zap.String("document_id", docID), zap.Error(err))
		}
	}
	return summary, nil
}

// Ask answers a question against the document text and records the exchange.
func (s *DocumentService) Ask(ctx context.Context, userID string, docID string, question string) (*model.QAInteraction, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	answer, err := s.ai.Answer(ctx, doc.Content, question)
	if err != nil {
		return nil, err
	}
	qa := &model.QAInteraction{
		ID:         newID(),
		DocumentID: doc.ID,
		Question:   question,
		Answer:     answer,
		Ctime:      timeutil.NowUnix(),
	}
	if err := s.qas.Create(ctx, qa); err != nil {
		return nil, err
	}
	return qa, nil
}

func (s *DocumentService) History(ctx context.Context, userID string, docID string) ([]model.QAInteraction, error) {
	if _, err := s.docs.GetByID(ctx, userID, docID); err != nil {
		return nil, err
	}
	return s.qas.ListByDocument(ctx, docID)
}

func (s *DocumentService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	docCount, err := s.docs.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	qaCount, err := s.qas.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{Documents: docCount, Questions: qaCount}, nil
}

// OpenFile hands back the stored original for download, after the usual
// ownership check.
func (s *DocumentService) OpenFile(ctx context.Context, userID string, docID string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.docs.GetByID(ctx, userID, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// ProcessPendingSummaries attaches summaries to documents whose inline
// summarization failed at upload time. Only documents older than maxCtime
// are picked up so fresh uploads are not raced. Returns how many documents
// got a summary.
func (s *DocumentService) ProcessPendingSummaries(ctx context.Context, limit int, maxCtime int64) (int, error) {
	docs, err := s.docs.ListPendingSummaries(ctx, limit, maxCtime)
	if err != nil {
		return 0, err
	}
	logger := logutil.GetLogger(ctx)
	done := 0
	for i := range docs {
		doc := &docs[i]
		summary, err := s.ai.Summarize(ctx, doc.Content, defaultSummaryLength)
		if err != nil {
			logger.Warn("backfill summarization failed", zap.String("document_id", doc.ID), zap.Error(err))
			continue
		}
		if err := s.docs.AttachSummary(ctx, doc.ID, summary); err != nil {
			logger.Error("attach backfill summary failed", zap.String("document_id", doc.ID), zap.Error(err))
			continue
		}
		done++
	}
	return done, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w.\- ]+`)

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" {
		name = "document.pdf"
	}
	return name
}
