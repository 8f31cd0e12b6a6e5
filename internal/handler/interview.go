package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/interview-room/internal/service"
	"github.com/msomdec/interview-room/internal/view"
)

// InterviewHandler serves the interview catalogue.
type InterviewHandler struct {
	interviews *service.InterviewService
	directory  *service.DirectoryService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviews *service.InterviewService, directory *service.DirectoryService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, directory: directory}
}

// HandleList returns the interviews visible to the caller.
// GET /api/interviews
func (h *InterviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	interviews, err := h.interviews.List(r.Context(), IdentityFromContext(r))
	if err != nil {
		writeServiceError(w, err, "list interviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interviews": toInterviewDTOs(interviews)})
}

// HandleCreate schedules an interview.
// POST /api/interviews
// Request:  {"title":"...","description":"...","candidateId":"user_...","startTime":"2025-03-04T14:00:00Z"}
// Response: {"interview": {...}}
func (h *InterviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		CandidateID string `json:"candidateId"`
		StartTime   string `json:"startTime"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "startTime must be an RFC 3339 timestamp.")
		return
	}

	iv, err := h.interviews.Schedule(r.Context(), IdentityFromContext(r), req.Title, req.Description, req.CandidateID, start)
	if err != nil {
		writeServiceError(w, err, "schedule interview")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"interview": toInterviewDTO(iv)})
}

// HandleGet returns one interview.
// GET /api/interviews/{id}
func (h *InterviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid interview id.")
		return
	}

	iv, err := h.interviews.Get(r.Context(), IdentityFromContext(r), id)
	if err != nil {
		writeServiceError(w, err, "get interview")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interview": toInterviewDTO(iv)})
}

// HandlePage renders the interview room page.
// GET /interviews/{id}
func (h *InterviewHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	iv, err := h.interviews.Get(r.Context(), IdentityFromContext(r), id)
	if err != nil {
		writeServiceError(w, err, "get interview page")
		return
	}

	users, err := h.directory.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list users for interview page")
		return
	}

	sess := service.SessionFromContext(r.Context())
	view.InterviewPage(sess, iv, service.Resolve(users, iv.CandidateID)).Render(r.Context(), w)
}

// HandleUsers returns the user directory.
// GET /api/users
func (h *InterviewHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toDirectoryDTOs(users)})
}
