package http

import (
	cartpage "smartcart/frontend/cart"
	"smartcart/frontend/entry"
	historypage "smartcart/frontend/history"
	receiptexport "smartcart/frontend/receipt"
	"smartcart/frontend/scan"
	"smartcart/frontend/settings"
)

// RegisterFrontendRoutes wires the shopping flow: cart, scanner, item
// entry, checkout, history and settings.
func (s *Server) RegisterFrontendRoutes() {
	s.router.Get("/cart", cartpage.CartPageQueryHandler(s.State))
	s.router.Post("/cart/items/{itemID}/delete", cartpage.RemoveItemCommandHandler(s.State))
	s.router.Post("/cart/clear", cartpage.ClearCartCommandHandler(s.State))

	s.router.Get("/scan", scan.ScanPageQueryHandler(s.Scans))
	s.router.Post("/scan/{sessionID}/result", scan.ScanResultCommandHandler(s.Scans))
	s.router.Post("/scan/{sessionID}/cancel", scan.ScanCancelCommandHandler(s.Scans))

	s.router.Get("/entry", entry.EntryPageQueryHandler(s.Scans, s.State, s.Namer))
	s.router.Post("/entry", entry.ConfirmEntryCommandHandler(s.Scans, s.State))
	s.router.Post("/entry/cancel", entry.CancelEntryCommandHandler(s.Scans))
	s.router.Get("/api/suggest-name", entry.SuggestNameQueryHandler(s.Scans, s.Namer))

	s.router.Get("/checkout", cartpage.CheckoutReviewQueryHandler(s.State))
	s.router.Post("/checkout", cartpage.ConfirmCheckoutCommandHandler(s.State))

	s.router.Get("/history", historypage.HistoryPageQueryHandler(s.State))
	s.router.Post("/history/clear", historypage.ClearHistoryCommandHandler(s.State))
	s.router.Get("/purchases/{purchaseID}/receipt.pdf", receiptexport.ReceiptQueryHandler(s.State))

	s.router.Get("/settings", settings.SettingsPageQueryHandler())
}
