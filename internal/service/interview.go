package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/interview-room/internal/domain"
)

// InterviewService schedules interviews and controls who may see them.
type InterviewService struct {
	interviews domain.InterviewRepository
	users      domain.UserRepository
}

func NewInterviewService(interviews domain.InterviewRepository, users domain.UserRepository) *InterviewService {
	return &InterviewService{interviews: interviews, users: users}
}

// Schedule creates an interview for a candidate. Only interviewers and
// admins may schedule.
func (s *InterviewService) Schedule(ctx context.Context, identity *domain.Identity, title, description, candidateID string, startTime time.Time) (*domain.Interview, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if identity.Role == domain.RoleCandidate {
		return nil, domain.ErrUnauthorized
	}

	title = strings.TrimSpace(title)
	if title == "" || candidateID == "" {
		return nil, fmt.Errorf("%w: title and candidate are required", domain.ErrInvalidInput)
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("%w: title must be 200 characters or fewer", domain.ErrInvalidInput)
	}
	if startTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", domain.ErrInvalidInput)
	}

	candidate, err := s.users.GetByExternalID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown candidate", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate.Role != domain.RoleCandidate {
		return nil, fmt.Errorf("%w: %s is not a candidate", domain.ErrInvalidInput, candidate.DisplayName)
	}

	iv := &domain.Interview{
		Title:       title,
		Description: strings.TrimSpace(description),
		CandidateID: candidateID,
		CallID:      uuid.NewString(),
		Status:      domain.InterviewStatusUpcoming,
		StartTime:   startTime,
	}
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	return iv, nil
}

// List returns the interviews visible to the identity: candidates see their
// own, everyone else sees all.
func (s *InterviewService) List(ctx context.Context, identity *domain.Identity) ([]domain.Interview, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if identity.Role == domain.RoleCandidate {
		return s.interviews.ListByCandidate(ctx, identity.ID)
	}
	return s.interviews.List(ctx)
}

// Get returns one interview if the identity may see it.
func (s *InterviewService) Get(ctx context.Context, identity *domain.Identity, id int64) (*domain.Interview, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role == domain.RoleCandidate && iv.CandidateID != identity.ID {
		return nil, domain.ErrUnauthorized
	}
	return iv, nil
}
