package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/ai"
	"github.com/docbrief/docbrief/internal/repo"
)

func newTestDocumentService(t *testing.T, gen ai.IGenerator) (*DocumentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gw := ai.NewGateway(gen, ai.WithMaxAttempts(1), ai.WithBaseDelay(0))
	aiSvc := NewAIService(NewSummarizer(gw, WithChunkDelay(0)), NewQAPipeline(gw), 0)
	svc := NewDocumentService(repo.NewDocumentRepo(db), repo.NewQARepo(db), aiSvc, nil)
	return svc, mock
}

func documentRow(summary interface{}) *sqlmock.Rows {
	cols := []string{"id", "user_id", "filename", "content", "summary", "file_key", "file_size", "ctime"}
	return sqlmock.NewRows(cols).
		AddRow("doc-1", "user-1", "report.pdf", "hello world content", summary, "doc-1.pdf", int64(64), int64(1700000000))
}

func TestDocumentServiceSummarizeAttachesMissingSummary(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "generated summary", nil
		},
	}
	svc, mock := newTestDocumentService(t, gen)

	mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(documentRow(nil))
	mock.ExpectExec("UPDATE documents SET summary").
		WillReturnResult(sqlmock.NewResult(0, 1))

	out, err := svc.Summarize(context.Background(), "user-1", "doc-1", "short")
	require.NoError(t, err)
	assert.Equal(t, "generated summary", out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentServiceSummarizeKeepsStoredSummary(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "fresh summary", nil
		},
	}
	svc, mock := newTestDocumentService(t, gen)

	// Stored summary present, so no attach statement is issued.
	mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(documentRow("existing summary"))

	out, err := svc.Summarize(context.Background(), "user-1", "doc-1", "long")
	require.NoError(t, err)
	assert.Equal(t, "fresh summary", out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentServiceAskRecordsInteraction(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "the answer", nil
		},
	}
	svc, mock := newTestDocumentService(t, gen)

	mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(documentRow("s"))
	mock.ExpectExec("INSERT INTO qa_interactions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	qa, err := svc.Ask(context.Background(), "user-1", "doc-1", "what is it?")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", qa.DocumentID)
	assert.Equal(t, "what is it?", qa.Question)
	assert.Equal(t, "the answer", qa.Answer)
	assert.NotEmpty(t, qa.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentServiceProcessPendingSummaries(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "backfilled", nil
		},
	}
	svc, mock := newTestDocumentService(t, gen)

	mock.ExpectQuery(`FROM documents\s+WHERE summary IS NULL`).WillReturnRows(documentRow(nil))
	mock.ExpectExec("UPDATE documents SET summary").
		WillReturnResult(sqlmock.NewResult(0, 1))

	done, err := svc.ProcessPendingSummaries(context.Background(), 10, 1800000000)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.NoError(t, mock.ExpectationsWereMet())
}
