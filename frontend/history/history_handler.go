package history

import (
	"net/http"

	"smartcart/infrastructure/state"
)

// HistoryPageQueryHandler renders the purchase history, newest first.
// Query params: "expanded" opens one purchase, "receipt" triggers the
// auto-download of a freshly checked-out receipt, "warning=export"
// shows the saved-but-not-exported banner.
func HistoryPageQueryHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data := HistoryPageData{
			Purchases:     app.History(),
			ExpandedID:    q.Get("expanded"),
			AutoReceiptID: q.Get("receipt"),
			ExportWarning: q.Get("warning") == "export",
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := HistoryPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render history", http.StatusInternalServerError)
			return
		}
	}
}

// ClearHistoryCommandHandler wipes all purchases. The cart is not
// touched. Confirmation happens in the page before the form submits.
func ClearHistoryCommandHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.ClearHistory(r.Context()); err != nil {
			http.Error(w, "failed to clear history", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/history", http.StatusSeeOther)
	}
}
