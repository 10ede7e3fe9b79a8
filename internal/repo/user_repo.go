package repo

import (
	"context"
	"database/sql"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Touch records a session open, creating the user row on first sight and
// bumping last_login afterwards.
func (r *UserRepo) Touch(ctx context.Context, userID string, now int64) error {
	const query = `
		INSERT INTO users (user_id, ctime, last_login)
		VALUES ($1, $2, $2)
		ON CONFLICT (user_id) DO UPDATE SET last_login = EXCLUDED.last_login
	`
	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, userID, now)
		return err
	})
}
