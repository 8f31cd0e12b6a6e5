package domain

import (
	"context"
	"time"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Comment is one interviewer's feedback on an interview. Comments are
// append-only; CreatedAt is assigned by the store.
type Comment struct {
	ID            int64
	InterviewID   int64
	InterviewerID string
	Content       string
	Rating        int
	CreatedAt     time.Time
}

// CommentRepository appends and lists comments. List returns comments in
// creation order, oldest first.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByInterview(ctx context.Context, interviewID int64) ([]Comment, error)
}
