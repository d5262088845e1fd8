package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Tab identifiers for the header switcher.
const (
	TabCart     = "cart"
	TabHistory  = "history"
	TabSettings = "settings"
)

// Page wraps body markup in the app chrome: viewport meta, manifest,
// shared stylesheet, logo header and the three view tabs. Full-screen
// pages (scanner, entry) render Bare instead.
func Page(title, activeTab string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1, viewport-fit=cover">
<meta name="theme-color" content="#0f172a">
<title>%s</title>
<link rel="manifest" href="/assets/manifest.webmanifest">
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
<div class="app">
<header class="app-header">
<div class="brand">SMART<span>CART</span></div>
<nav class="tabs">
%s
</nav>
</header>
<main class="app-main">
`, templ.EscapeString(title), tabBar(activeTab)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
</div>
</body>
</html>
`)
		return err
	})
}

// Bare wraps body markup with the document shell only, no header or
// tabs. The scanner and entry screens own the whole viewport.
func Bare(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1, viewport-fit=cover">
<meta name="theme-color" content="#0f172a">
<title>%s</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body>
</html>
`)
		return err
	})
}

func tabBar(active string) string {
	tabs := []struct {
		id    string
		href  string
		label string
	}{
		{TabCart, "/cart", "Carrinho"},
		{TabHistory, "/history", "Histórico"},
		{TabSettings, "/settings", "Ajustes"},
	}
	out := ""
	for _, t := range tabs {
		cls := "tab"
		if t.id == active {
			cls += " tab-active"
		}
		out += fmt.Sprintf(`<a class="%s" href="%s">%s</a>`+"\n", cls, t.href, t.label)
	}
	return out
}
