package settings

import "net/http"

// AppVersion shows up on the settings card and the install modal.
const AppVersion = "1.2.0"

// SettingsPageQueryHandler renders the settings screen: install card,
// version info and the clear-history action.
func SettingsPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SettingsPage(SettingsPageData{Version: AppVersion}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render settings page", http.StatusInternalServerError)
			return
		}
	}
}
