package receipt

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smartcart/infrastructure/state"
)

// ReceiptQueryHandler regenerates and serves the PDF receipt for a
// stored purchase. Re-exports always rebuild from stored data.
func ReceiptQueryHandler(app *state.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		purchase, ok := app.PurchaseByID(chi.URLParam(r, "purchaseID"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		pdfBytes, err := Render(purchase)
		if err != nil {
			http.Error(w, "failed to render receipt", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(purchase)+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
		_, _ = w.Write(pdfBytes)
	}
}
