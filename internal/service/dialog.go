package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/msomdec/interview-room/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DialogState is the state of a CommentDialog. Idle and Submitting are the
// two open states.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogIdle
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogClosed:
		return "closed"
	case DialogIdle:
		return "idle"
	case DialogSubmitting:
		return "submitting"
	}
	return "unknown"
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is the toast shown to the user after a submit attempt.
type Notice struct {
	Kind    NoticeKind
	Message string
}

const (
	msgSubmitted     = "Comment submitted"
	msgEmptyComment  = "Please enter comment"
	msgSubmitFailed  = "Failed to submit comment"
	msgDialogNotOpen = "Comment dialog is not open"
)

// CommentStore is the part of CommentService the dialog needs.
type CommentStore interface {
	Add(ctx context.Context, identity *domain.Identity, interviewID int64, content string, rating int) (*domain.Comment, error)
	List(ctx context.Context, interviewID int64) ([]domain.Comment, error)
}

// UserLister is the part of DirectoryService the dialog needs.
type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

// DialogData is the combined result of the dialog's two loads.
type DialogData struct {
	Comments []domain.Comment
	Users    []domain.User
}

// Author resolves the display info of a comment's author.
func (d DialogData) Author(c domain.Comment) DisplayInfo {
	return Resolve(d.Users, c.InterviewerID)
}

// CommentDialog drives the add-comment flow for one interview and one
// reviewer. It is not safe for concurrent use; overlapping submissions are
// sequential user actions.
type CommentDialog struct {
	store       CommentStore
	users       UserLister
	identity    *domain.Identity
	interviewID int64

	state  DialogState
	draft  string
	rating int
	data   *DialogData
}

// NewCommentDialog returns a closed dialog with an empty draft and the
// default rating.
func NewCommentDialog(store CommentStore, users UserLister, identity *domain.Identity, interviewID int64) *CommentDialog {
	return &CommentDialog{
		store:       store,
		users:       users,
		identity:    identity,
		interviewID: interviewID,
		state:       DialogClosed,
		rating:      domain.DefaultRating,
	}
}

// Open opens the dialog and loads comments and users concurrently. The
// dialog is ready only once both loads succeed; on error it stays open but
// not ready.
func (d *CommentDialog) Open(ctx context.Context) error {
	d.Begin()

	var data DialogData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := d.store.List(gctx, d.interviewID)
		if err != nil {
			return fmt.Errorf("load comments: %w", err)
		}
		data.Comments = comments
		return nil
	})
	g.Go(func() error {
		users, err := d.users.List(gctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		data.Users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d.data = &data
	return nil
}

// Begin opens the dialog without loading, for callers that already display
// the data.
func (d *CommentDialog) Begin() {
	if d.state == DialogClosed {
		d.state = DialogIdle
	}
	d.data = nil
}

// Ready returns the loaded data once both loads have resolved.
func (d *CommentDialog) Ready() (DialogData, bool) {
	if d.data == nil {
		return DialogData{}, false
	}
	return *d.data, true
}

func (d *CommentDialog) State() DialogState { return d.state }
func (d *CommentDialog) Draft() string      { return d.draft }
func (d *CommentDialog) Rating() int        { return d.rating }

func (d *CommentDialog) SetDraft(text string) { d.draft = text }

// SetRating parses a rating selection. Values other than "1".."5" are
// rejected and the current rating is kept.
func (d *CommentDialog) SetRating(value string) error {
	rating, err := ParseRating(value)
	if err != nil {
		return err
	}
	d.rating = rating
	return nil
}

// Submit sends the draft. An empty draft is rejected locally with a warning
// and no store call. A store failure keeps the draft and rating for retry.
// Success clears the draft, resets the rating and closes the dialog.
func (d *CommentDialog) Submit(ctx context.Context) Notice {
	if d.state != DialogIdle {
		return Notice{Kind: NoticeWarning, Message: msgDialogNotOpen}
	}

	content := strings.TrimSpace(d.draft)
	if content == "" {
		return Notice{Kind: NoticeWarning, Message: msgEmptyComment}
	}

	d.state = DialogSubmitting
	if _, err := d.store.Add(ctx, d.identity, d.interviewID, content, d.rating); err != nil {
		slog.Error("submit comment", "interview_id", d.interviewID, "error", err)
		d.state = DialogIdle
		return Notice{Kind: NoticeError, Message: msgSubmitFailed}
	}

	d.draft = ""
	d.rating = domain.DefaultRating
	d.state = DialogClosed
	d.data = nil
	return Notice{Kind: NoticeSuccess, Message: msgSubmitted}
}

// Cancel closes the dialog without submitting. The draft is kept.
func (d *CommentDialog) Cancel() {
	d.state = DialogClosed
	d.data = nil
}

// ParseRating converts a rating selection into 1..5.
func ParseRating(value string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: rating %q is not a number", domain.ErrInvalidInput, value)
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return 0, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	return rating, nil
}
