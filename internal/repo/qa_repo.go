package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"

	"github.com/docbrief/docbrief/internal/model"
	"github.com/docbrief/docbrief/internal/pkg/dbutil"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

var qaColumns = []string{"id", "document_id", "question", "answer", "ctime"}

type QARepo struct {
	db *sql.DB
}

func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db}
}

// Create records one question/answer exchange. Inserting against a document
// that no longer exists trips the foreign key and surfaces as
// ErrRefIntegrity rather than a bare driver error.
func (r *QARepo) Create(ctx context.Context, qa *model.QAInteraction) error {
	data := map[string]interface{}{
		"id":          qa.ID,
		"document_id": qa.DocumentID,
		"question":    qa.Question,
		"answer":      qa.Answer,
		"ctime":       qa.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("qa_interactions", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	err = withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: document %s", appErr.ErrRefIntegrity, qa.DocumentID)
		}
		return err
	}
	return nil
}

// ListByDocument returns the exchanges for one document, newest first.
func (r *QARepo) ListByDocument(ctx context.Context, docID string) ([]model.QAInteraction, error) {
	where := map[string]interface{}{
		"document_id": docID,
		"_orderby":    "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("qa_interactions", where, qaColumns)
	if err != nil {
		return nil, err
	}
	sqlStr = dbutil.Rebind(sqlStr)
	var items []model.QAInteraction
	err = withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		items = items[:0]
		for rows.Next() {
			var qa model.QAInteraction
			if err := rows.Scan(&qa.ID, &qa.DocumentID, &qa.Question, &qa.Answer, &qa.Ctime); err != nil {
				return err
			}
			items = append(items, qa)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.QAInteraction{}
	}
	return items, nil
}

// CountByUser counts exchanges across all of the user's documents.
func (r *QARepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM qa_interactions q
		JOIN documents d ON d.id = q.document_id
		WHERE d.user_id = $1
	`
	var count int
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
