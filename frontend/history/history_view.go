package history

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"smartcart/frontend/shared/format"
	"smartcart/frontend/shared/html"
	"smartcart/models"
)

// HistoryPageData feeds the history screen.
type HistoryPageData struct {
	Purchases     []models.Purchase
	ExpandedID    string
	AutoReceiptID string
	ExportWarning bool
}

// HistoryPage lists past purchases with one expandable entry at a
// time. Expansion is a link back to the same page, so the browser
// back button behaves.
func HistoryPage(data HistoryPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.ExportWarning {
			if _, err := io.WriteString(w, `<div class="banner banner-warning">Compra salva, mas o recibo não pôde ser exportado. Reemita o PDF abaixo.</div>
`); err != nil {
				return err
			}
		}

		if len(data.Purchases) == 0 {
			if _, err := io.WriteString(w, `<div class="empty-state"><p>Nenhuma compra finalizada ainda</p></div>
`); err != nil {
				return err
			}
		}

		for _, p := range data.Purchases {
			expanded := p.ID == data.ExpandedID
			href := "/history?expanded=" + p.ID
			if expanded {
				href = "/history"
			}
			if _, err := fmt.Fprintf(w, `<div class="history-card">
<a class="history-head" href="%s">
<div><div class="history-date">%s</div><div class="history-count">%d itens</div></div>
<div class="history-total">%s</div>
</a>
`, templ.EscapeString(href), format.DateTimeShort(p.Time()), p.ItemCount, format.BRL(p.Total)); err != nil {
				return err
			}
			if expanded {
				if _, err := io.WriteString(w, `<div class="history-detail">
`); err != nil {
					return err
				}
				for _, item := range p.Items {
					if _, err := fmt.Fprintf(w, `<div class="history-line"><span>%s</span><span>%s</span></div>
`, templ.EscapeString(item.Name), format.BRL(item.Subtotal())); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, `<a class="reexport-btn" href="/purchases/%s/receipt.pdf">Reemitir PDF</a>
</div>
`, templ.EscapeString(p.ID)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</div>
`); err != nil {
				return err
			}
		}

		if data.AutoReceiptID != "" {
			if _, err := fmt.Fprintf(w, `<script>
window.addEventListener("load", function() {
  var a = document.createElement("a");
  a.href = "/purchases/%s/receipt.pdf";
  a.download = "";
  document.body.appendChild(a);
  a.click();
  a.remove();
});
</script>
`, templ.EscapeString(data.AutoReceiptID)); err != nil {
				return err
			}
		}
		return nil
	})
	return html.Page("Histórico - Smart Cart", html.TabHistory, body)
}
