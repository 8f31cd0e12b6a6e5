package domain

import (
	"context"
	"time"
)

type InterviewStatus string

const (
	InterviewStatusUpcoming  InterviewStatus = "upcoming"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusSucceeded InterviewStatus = "succeeded"
	InterviewStatusFailed    InterviewStatus = "failed"
)

// Interview is a scheduled session between a candidate and interviewers.
// CallID names the real-time call the participants join.
type Interview struct {
	ID          int64
	Title       string
	Description string
	CandidateID string
	CallID      string
	Status      InterviewStatus
	StartTime   time.Time
	CreatedAt   time.Time
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	List(ctx context.Context) ([]Interview, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Interview, error)
}
