package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/model"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

func TestDocumentRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewDocumentRepo(db)
	err = r.Create(context.Background(), &model.Document{
		ID:       "doc-1",
		UserID:   "user-1",
		Filename: "report.pdf",
		Content:  "hello world",
		FileKey:  "doc-1.pdf",
		FileSize: 1024,
		Ctime:    1700000000,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepoCreateRetriesTransient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO documents").WillReturnError(&pq.Error{Code: "08006"})
	mock.ExpectExec("INSERT INTO documents").WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewDocumentRepo(db)
	err = r.Create(context.Background(), &model.Document{ID: "doc-1", UserID: "user-1", Ctime: 1})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepoCreateStorageUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < storageMaxAttempts; i++ {
		mock.ExpectExec("INSERT INTO documents").WillReturnError(&pq.Error{Code: "08006"})
	}

	r := NewDocumentRepo(db)
	err = r.Create(context.Background(), &model.Document{ID: "doc-1", UserID: "user-1", Ctime: 1})
	assert.ErrorIs(t, err, appErr.ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM documents").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	r := NewDocumentRepo(db)
	_, err = r.GetByID(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestDocumentRepoGetByIDNullSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(documentColumns).
		AddRow("doc-1", "user-1", "report.pdf", "hello", nil, "doc-1.pdf", int64(1024), int64(1700000000))
	mock.ExpectQuery("SELECT .+ FROM documents").WillReturnRows(rows)

	r := NewDocumentRepo(db)
	doc, err := r.GetByID(context.Background(), "user-1", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "", doc.Summary)
}

func TestDocumentRepoDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "owned", affected: 1, want: true},
		{name: "missing or not owned", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("DELETE FROM documents").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			r := NewDocumentRepo(db)
			deleted, err := r.Delete(context.Background(), "doc-1", "user-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, deleted)
		})
	}
}

func TestDocumentRepoAttachSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE documents SET summary").
		WithArgs("a short summary", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewDocumentRepo(db)
	err = r.AttachSummary(context.Background(), "doc-1", "a short summary")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
