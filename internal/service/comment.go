package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/live"
)

const maxCommentLength = 5000

// CommentService appends and lists interview feedback and serves live
// queries over it.
type CommentService struct {
	comments   domain.CommentRepository
	interviews domain.InterviewRepository
	notifier   live.Notifier
	validate   *validator.Validate
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments domain.CommentRepository, interviews domain.InterviewRepository, notifier live.Notifier) *CommentService {
	return &CommentService{
		comments:   comments,
		interviews: interviews,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

type commentInput struct {
	InterviewID   int64  `validate:"gt=0"`
	InterviewerID string `validate:"required"`
	Content       string `validate:"required,max=5000"`
	Rating        int    `validate:"gte=1,lte=5"`
}

// Add appends a comment by the identity. Content is trimmed and must not be
// empty; rating must be within 1..5. Every call appends a new record.
func (s *CommentService) Add(ctx context.Context, identity *domain.Identity, interviewID int64, content string, rating int) (*domain.Comment, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	in := commentInput{
		InterviewID:   interviewID,
		InterviewerID: identity.ID,
		Content:       strings.TrimSpace(content),
		Rating:        rating,
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	if _, err := s.interviews.GetByID(ctx, interviewID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		InterviewID:   in.InterviewID,
		InterviewerID: in.InterviewerID,
		Content:       in.Content,
		Rating:        in.Rating,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.notifier.Publish(ctx, interviewID); err != nil {
		// The append is durable; live viewers catch up on their next change.
		slog.Warn("publish comment change", "interview_id", interviewID, "error", err)
	}

	return comment, nil
}

// List returns every comment of the interview, oldest first.
func (s *CommentService) List(ctx context.Context, interviewID int64) ([]domain.Comment, error) {
	comments, err := s.comments.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// CommentSubscription is a live query over one interview's comments. C
// yields the current list on subscribe and a fresh list after each change.
// Intermediate lists may be skipped if the reader falls behind; the latest
// one is always delivered.
type CommentSubscription struct {
	C      <-chan []domain.Comment
	cancel context.CancelFunc
	done   chan struct{}
}

// Close stops the subscription and waits for its goroutine to exit.
func (s *CommentSubscription) Close() {
	s.cancel()
	<-s.done
}

// Subscribe opens a live query. It ends when ctx is cancelled or Close is
// called; C is closed afterwards.
func (s *CommentService) Subscribe(ctx context.Context, interviewID int64) (*CommentSubscription, error) {
	if _, err := s.interviews.GetByID(ctx, interviewID); err != nil {
		return nil, err
	}

	// Subscribe before the first read so no append slips between them.
	sub, err := s.notifier.Subscribe(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("subscribe to comments: %w", err)
	}

	initial, err := s.List(ctx, interviewID)
	if err != nil {
		sub.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	out := make(chan []domain.Comment, 1)
	out <- initial
	cs := &CommentSubscription{C: out, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(cs.done)
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.C():
			}

			comments, err := s.List(ctx, interviewID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("reload live comments", "interview_id", interviewID, "error", err)
				continue
			}

			// Replace an unread list rather than queue behind it.
			select {
			case <-out:
			default:
			}
			out <- comments
		}
	}()

	return cs, nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	switch f := fieldErrs[0]; f.Field() {
	case "Content":
		if f.Tag() == "max" {
			return fmt.Sprintf("comment must be %d characters or fewer", maxCommentLength)
		}
		return "comment is required"
	case "Rating":
		return fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	case "InterviewID":
		return "interview is required"
	default:
		return strings.ToLower(f.Field()) + " is invalid"
	}
}
