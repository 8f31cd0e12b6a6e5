package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/interview-room/internal/service"
	"github.com/msomdec/interview-room/internal/view"
)

// DashboardHandler handles the dashboard page.
type DashboardHandler struct {
	interviews *service.InterviewService
	directory  *service.DirectoryService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(interviews *service.InterviewService, directory *service.DirectoryService) *DashboardHandler {
	return &DashboardHandler{interviews: interviews, directory: directory}
}

// HandleDashboard renders the interviews visible to the caller.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := service.SessionFromContext(r.Context())
	if !sess.Authenticated() {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	interviews, err := h.interviews.List(r.Context(), sess.Identity)
	if err != nil {
		slog.Error("list interviews for dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	users, err := h.directory.List(r.Context())
	if err != nil {
		slog.Error("list users for dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.DashboardPage(sess, interviews, users).Render(r.Context(), w)
}
