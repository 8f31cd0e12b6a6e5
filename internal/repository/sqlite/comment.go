package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/interview-room/internal/domain"
)

type commentRepo struct {
	db *sql.DB
}

// Create appends a comment. The creation time is taken here, never from the caller.
func (r *commentRepo) Create(ctx context.Context, c *domain.Comment) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (interview_id, interviewer_id, content, rating, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.InterviewID, c.InterviewerID, c.Content, c.Rating, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get comment id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return nil
}

func (r *commentRepo) ListByInterview(ctx context.Context, interviewID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, interview_id, interviewer_id, content, rating, created_at
		 FROM comments WHERE interview_id = ? ORDER BY created_at ASC, id ASC`, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.InterviewID, &c.InterviewerID, &c.Content, &c.Rating, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
