package handler

import (
	"net/http"

	"github.com/msomdec/interview-room/internal/service"
	"github.com/msomdec/interview-room/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view.HomePage(service.SessionFromContext(r.Context())).Render(r.Context(), w)
}
