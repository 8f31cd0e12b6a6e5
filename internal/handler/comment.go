package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/metrics"
	"github.com/msomdec/interview-room/internal/service"
	"github.com/msomdec/interview-room/internal/view"
)

// CommentHandler serves interview feedback: the JSON API, the comment
// dialog and the live comment stream.
type CommentHandler struct {
	comments   *service.CommentService
	directory  *service.DirectoryService
	interviews *service.InterviewService
	metrics    metrics.Recorder
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService, directory *service.DirectoryService, interviews *service.InterviewService, rec metrics.Recorder) *CommentHandler {
	return &CommentHandler{comments: comments, directory: directory, interviews: interviews, metrics: rec}
}

// reviewerInterview resolves the {id} interview for a reviewer. It writes the
// error response and returns false when the caller may not review it.
func (h *CommentHandler) reviewerInterview(w http.ResponseWriter, r *http.Request) (*domain.Identity, int64, bool) {
	identity := IdentityFromContext(r)
	if identity == nil {
		writeServiceError(w, domain.ErrUnauthenticated, "")
		return nil, 0, false
	}
	if identity.Role == domain.RoleCandidate {
		writeServiceError(w, domain.ErrUnauthorized, "")
		return nil, 0, false
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid interview id.")
		return nil, 0, false
	}
	if _, err := h.interviews.Get(r.Context(), identity, id); err != nil {
		writeServiceError(w, err, "get interview")
		return nil, 0, false
	}
	return identity, id, true
}

// HandleList returns every comment of an interview, oldest first.
// GET /api/interviews/{id}/comments
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.reviewerInterview(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.List(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "list comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": toCommentDTOs(comments)})
}

// HandleCreate appends a comment.
// POST /api/interviews/{id}/comments
// Request:  {"content":"...","rating":4}
// Response: {"comment": {...}}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.reviewerInterview(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	comment, err := h.comments.Add(r.Context(), identity, id, req.Content, req.Rating)
	if err != nil {
		h.metrics.RecordCommentRejected(rejectReason(err))
		writeServiceError(w, err, "add comment")
		return
	}
	h.metrics.RecordCommentSubmitted(comment.Rating)

	writeJSON(w, http.StatusCreated, map[string]any{"comment": toCommentDTO(comment)})
}

// HandleOpenDialog opens the comment dialog: it loads comments and users and
// patches the rendered dialog once both have resolved. A draft and rating
// left in the client signals by an earlier cancel are carried over.
// GET /interviews/{id}/comments/dialog
func (h *CommentHandler) HandleOpenDialog(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.reviewerInterview(w, r)
	if !ok {
		return
	}

	dialog := service.NewCommentDialog(h.comments, h.directory, identity, id)

	var signals view.DialogSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		slog.Debug("read comment dialog signals", "interview_id", id, "error", err)
	} else {
		dialog.SetDraft(signals.Comment)
		if signals.Rating != "" {
			// An unusable rating leaves the default in place.
			_ = dialog.SetRating(signals.Rating)
		}
	}

	if err := dialog.Open(r.Context()); err != nil {
		slog.Error("open comment dialog", "interview_id", id, "error", err)
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.CommentDialog(id, dialog),
		datastar.WithSelectorID(view.CommentDialogID),
		datastar.WithModeOuter(),
	)
}

// HandleSubmitDialog submits the dialog's draft from the client signals.
// POST /interviews/{id}/comments/dialog
func (h *CommentHandler) HandleSubmitDialog(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.reviewerInterview(w, r)
	if !ok {
		return
	}

	var signals view.DialogSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	dialog := service.NewCommentDialog(h.comments, h.directory, identity, id)
	dialog.Begin()
	dialog.SetDraft(signals.Comment)

	var notice service.Notice
	if err := dialog.SetRating(signals.Rating); err != nil {
		h.metrics.RecordCommentRejected(rejectReason(err))
		notice = service.Notice{Kind: service.NoticeWarning, Message: "Please select a rating"}
	} else {
		rating := dialog.Rating()
		notice = dialog.Submit(r.Context())
		switch notice.Kind {
		case service.NoticeSuccess:
			h.metrics.RecordCommentSubmitted(rating)
		case service.NoticeWarning:
			h.metrics.RecordCommentRejected("invalid")
		default:
			h.metrics.RecordCommentRejected("error")
		}
	}

	sse := datastar.NewSSE(w, r)
	if notice.Kind == service.NoticeSuccess {
		sse.MarshalAndPatchSignals(view.DialogSignals{
			Open:    false,
			Comment: dialog.Draft(),
			Rating:  strconv.Itoa(dialog.Rating()),
		})
		sse.PatchElementTempl(
			view.CommentDialog(id, dialog),
			datastar.WithSelectorID(view.CommentDialogID),
			datastar.WithModeOuter(),
		)
	}
	sse.PatchElementTempl(
		view.Toast(notice),
		datastar.WithSelectorID(view.ToastsID),
		datastar.WithModeAppend(),
	)
}

// HandleLive streams the interview's comment list, re-rendered after every
// change, until the client disconnects.
// GET /interviews/{id}/comments/live
func (h *CommentHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.reviewerInterview(w, r)
	if !ok {
		return
	}

	sub, err := h.comments.Subscribe(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "subscribe to comments")
		return
	}
	defer sub.Close()

	h.metrics.RecordLiveSubscribers(1)
	defer h.metrics.RecordLiveSubscribers(-1)

	sse := datastar.NewSSE(w, r)
	for {
		select {
		case <-r.Context().Done():
			return
		case comments, open := <-sub.C:
			if !open {
				return
			}
			users, err := h.directory.List(r.Context())
			if err != nil {
				// Authors fall back to the unknown placeholder until the next change.
				slog.Warn("list users for live comments", "interview_id", id, "error", err)
			}
			data := service.DialogData{Comments: comments, Users: users}
			if err := sse.PatchElementTempl(
				view.CommentList(view.LiveCommentsID, data),
				datastar.WithSelectorID(view.LiveCommentsID),
				datastar.WithModeOuter(),
			); err != nil {
				return
			}
		}
	}
}

// rejectReason labels a rejected comment for the rejected-comments counter.
// Both the JSON API and the dialog report through it.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
