package scan

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ScanPageQueryHandler opens a scan session and renders the scanner
// screen. Each visit gets a fresh session id.
func ScanPageQueryHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ScanPageData{
			SessionID:   sessions.Open(),
			SampleCodes: SampleCodes(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ScanPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render scanner", http.StatusInternalServerError)
			return
		}
	}
}

// ScanResultCommandHandler receives the decoded code (and optional
// still frame) from the browser. The first result for an open session
// wins and moves the flow to the entry screen; anything else is
// dropped and sent back to the cart.
func ScanResultCommandHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		result := Result{
			Code:  strings.TrimSpace(r.FormValue("code")),
			Image: strings.TrimSpace(r.FormValue("image")),
		}
		if !sessions.Resolve(id, result) {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/entry?session="+id, http.StatusSeeOther)
	}
}

// ScanCancelCommandHandler drops the session when the scanner screen
// is dismissed.
func ScanCancelCommandHandler(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Close(chi.URLParam(r, "sessionID"))
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}
