package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/docbrief/docbrief/internal/model"
	"github.com/docbrief/docbrief/internal/pkg/dbutil"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

var documentColumns = []string{"id", "user_id", "filename", "content", "summary", "file_key", "file_size", "ctime"}

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create inserts the document in a single statement; a summary may be absent
// at creation time and is stored as NULL until attached.
func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	var summary interface{}
	if doc.Summary != "" {
		summary = doc.Summary
	}
	data := map[string]interface{}{
		"id":        doc.ID,
		"user_id":   doc.UserID,
		"filename":  doc.Filename,
		"content":   doc.Content,
		"summary":   summary,
		"file_key":  doc.FileKey,
		"file_size": doc.FileSize,
		"ctime":     doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, sqlStr, args...)
		return err
	})
}

func (r *DocumentRepo) GetByID(ctx context.Context, userID, docID string) (*model.Document, error) {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	var doc *model.Document
	err = withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		if !rows.Next() {
			return appErr.ErrNotFound
		}
		doc, err = scanDocument(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns the owner's documents, most recently created first.
func (r *DocumentRepo) List(ctx context.Context, userID string) ([]model.Document, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	var docs []model.Document
	err = withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		docs = docs[:0]
		for rows.Next() {
			doc, err := scanDocument(rows)
			if err != nil {
				return err
			}
			docs = append(docs, *doc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}

// Delete removes the document only when owner matches; the qa_interactions
// cascade rides on the foreign key. It reports false for both a missing id
// and a mismatched owner so callers cannot probe for existence.
func (r *DocumentRepo) Delete(ctx context.Context, docID, userID string) (bool, error) {
	where := map[string]interface{}{
		"id":      docID,
		"user_id": userID,
	}
	sqlStr, args, err := builder.BuildDelete("documents", where)
	if err != nil {
		return false, err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	var deleted bool
	err = withRetry(ctx, func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AttachSummary fills in a summary for a document created without one. The
// summary IS NULL guard keeps content rows effectively write-once.
func (r *DocumentRepo) AttachSummary(ctx context.Context, docID, summary string) error {
	const query = `UPDATE documents SET summary = $1 WHERE id = $2 AND summary IS NULL`
	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, summary, docID)
		return err
	})
}

// ListPendingSummaries returns documents still lacking a summary, oldest
// first, skipping anything created after the cutoff so fresh uploads get a
// chance to finish their inline summarization.
func (r *DocumentRepo) ListPendingSummaries(ctx context.Context, limit int, maxCtime int64) ([]model.Document, error) {
	const query = `
		SELECT id, user_id, filename, content, summary, file_key, file_size, ctime
		FROM documents
		WHERE summary IS NULL AND ctime < $1
		ORDER BY ctime ASC
		LIMIT $2
	`
	var docs []model.Document
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, maxCtime, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		docs = docs[:0]
		for rows.Next() {
			doc, err := scanDocument(rows)
			if err != nil {
				return err
			}
			docs = append(docs, *doc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	var count int
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanDocument(rows *sql.Rows) (*model.Document, error) {
	var doc model.Document
	var summary sql.NullString
	if err := rows.Scan(&doc.ID, &doc.UserID, &doc.Filename, &doc.Content, &summary, &doc.FileKey, &doc.FileSize, &doc.Ctime); err != nil {
		return nil, err
	}
	doc.Summary = summary.String
	return &doc, nil
}
