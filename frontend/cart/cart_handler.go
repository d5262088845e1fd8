package cart

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"smartcart/frontend/receipt"
	"smartcart/infrastructure/state"
)

// CartPageQueryHandler renders the active cart.
func CartPageQueryHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := CartPageData{
			Items:     app.Items(),
			Total:     app.Total(),
			UnitCount: app.UnitCount(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CartPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render cart", http.StatusInternalServerError)
			return
		}
	}
}

// RemoveItemCommandHandler deletes one cart line. Unknown ids are a
// silent no-op, matching the swipe gesture that already removed the
// row visually.
func RemoveItemCommandHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.RemoveItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
			http.Error(w, "failed to remove item", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

// ClearCartCommandHandler empties the cart. The confirmation dialog
// lives in the page.
func ClearCartCommandHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.ClearCart(r.Context()); err != nil {
			http.Error(w, "failed to clear cart", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

// CheckoutReviewQueryHandler shows the digital receipt preview before
// finalizing. An empty cart has nothing to review.
func CheckoutReviewQueryHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := app.Items()
		if len(items) == 0 {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		data := CheckoutPageData{Items: items, Total: app.Total()}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CheckoutReviewPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render checkout", http.StatusInternalServerError)
			return
		}
	}
}

// ConfirmCheckoutCommandHandler finalizes the purchase. The receipt is
// rendered once right away to verify exportability; if that fails the
// purchase stays committed and the history page shows a warning
// instead of triggering the download.
func ConfirmCheckoutCommandHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchase, err := app.Checkout(r.Context())
		if err != nil {
			if errors.Is(err, state.ErrEmptyCart) {
				http.Redirect(w, r, "/cart", http.StatusSeeOther)
				return
			}
			http.Error(w, "failed to finalize purchase", http.StatusInternalServerError)
			return
		}

		target := "/history?expanded=" + url.QueryEscape(purchase.ID)
		if _, err := receipt.Render(purchase); err != nil {
			slog.Warn("receipt export failed after checkout", slog.String("purchase", purchase.ID), slog.Any("err", err))
			http.Redirect(w, r, target+"&warning=export", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, target+"&receipt="+url.QueryEscape(purchase.ID), http.StatusSeeOther)
	}
}
