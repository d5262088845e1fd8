package entry

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"smartcart/frontend/scan"
	"smartcart/infrastructure/state"
	"smartcart/infrastructure/vision"
)

// EntryPageQueryHandler renders the price/name form for a resolved
// scan session. Unknown or unresolved sessions bounce back to the
// cart.
func EntryPageQueryHandler(sessions *scan.Sessions, app *state.App, namer vision.Namer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session")
		result, ok := sessions.Peek(id)
		if !ok {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}

		data := EntryPageData{
			SessionID:    id,
			Code:         result.Code,
			Image:        result.Image,
			Quantity:     1,
			CanSuggest:   namer != nil && result.Image != "",
			ErrorMessage: strings.TrimSpace(r.URL.Query().Get("error")),
		}
		if seen, ok := app.LastSeen(result.Code); ok {
			data.Name = seen.Name
			data.Price = formatPrice(seen.Price)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := EntryPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render entry form", http.StatusInternalServerError)
			return
		}
	}
}

// SuggestNameQueryHandler asks the vision collaborator for a product
// name based on the session's captured frame. Always answers 200 with
// a name field; failures are logged and come back empty so the form
// never blocks on the suggestion.
func SuggestNameQueryHandler(sessions *scan.Sessions, namer vision.Namer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		respond := func(name string) {
			_ = json.NewEncoder(w).Encode(map[string]string{"name": name})
		}

		if namer == nil {
			respond("")
			return
		}
		result, ok := sessions.Peek(r.URL.Query().Get("session"))
		if !ok || result.Image == "" {
			respond("")
			return
		}
		name, err := namer.SuggestName(r.Context(), result.Image)
		if err != nil {
			slog.Warn("name suggestion failed", slog.String("code", result.Code), slog.Any("err", err))
			respond("")
			return
		}
		respond(name)
	}
}

// ConfirmEntryCommandHandler validates the form and adds the item to
// the cart, consuming the scan session. Validation errors re-display
// the form with the pending scan intact.
func ConfirmEntryCommandHandler(sessions *scan.Sessions, app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		id := r.FormValue("session")
		entryURL := "/entry?session=" + url.QueryEscape(id)

		result, ok := sessions.Peek(id)
		if !ok {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}

		price, err := ParsePrice(r.FormValue("price"))
		if err != nil {
			http.Redirect(w, r, entryURL+"&error="+url.QueryEscape("informe um valor maior que zero"), http.StatusSeeOther)
			return
		}
		quantity := ParseQuantity(r.FormValue("quantity"))
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			name = PlaceholderName(result.Code)
		}

		result, ok = sessions.Take(id)
		if !ok {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		item, err := app.NewItem(result.Code, name, price, quantity, result.Image)
		if err != nil {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		if err := app.AddItem(r.Context(), item); err != nil {
			http.Error(w, "failed to add item", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func formatPrice(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 2, 64), ".", ",")
}

// CancelEntryCommandHandler discards the pending scan.
func CancelEntryCommandHandler(sessions *scan.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			sessions.Close(r.FormValue("session"))
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}
