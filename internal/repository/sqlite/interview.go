package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/interview-room/internal/domain"
)

type interviewRepo struct {
	db *sql.DB
}

func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO interviews (title, description, candidate_id, call_id, status, start_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		iv.Title, iv.Description, iv.CandidateID, iv.CallID, iv.Status, iv.StartTime.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get interview id: %w", err)
	}
	iv.ID = id
	iv.CreatedAt = now
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	iv := &domain.Interview{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, candidate_id, call_id, status, start_time, created_at
		 FROM interviews WHERE id = ?`, id,
	).Scan(&iv.ID, &iv.Title, &iv.Description, &iv.CandidateID, &iv.CallID, &iv.Status, &iv.StartTime, &iv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

func (r *interviewRepo) List(ctx context.Context) ([]domain.Interview, error) {
	return r.list(ctx,
		`SELECT id, title, description, candidate_id, call_id, status, start_time, created_at
		 FROM interviews ORDER BY start_time DESC, id DESC`)
}

func (r *interviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	return r.list(ctx,
		`SELECT id, title, description, candidate_id, call_id, status, start_time, created_at
		 FROM interviews WHERE candidate_id = ? ORDER BY start_time DESC, id DESC`, candidateID)
}

func (r *interviewRepo) list(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(&iv.ID, &iv.Title, &iv.Description, &iv.CandidateID, &iv.CallID, &iv.Status, &iv.StartTime, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}
