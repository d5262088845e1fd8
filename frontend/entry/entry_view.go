package entry

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"smartcart/frontend/shared/html"
)

// EntryPageData feeds the item details form.
type EntryPageData struct {
	SessionID    string
	Code         string
	Image        string
	Name         string
	Price        string
	Quantity     int64
	CanSuggest   bool
	ErrorMessage string
}

// EntryPage is the "Detalhes do Item" form: scanned code badge,
// optional photo thumbnail, name with async AI suggestion, quantity
// stepper and price input.
func EntryPage(data EntryPageData) templ.Component {
	return html.Bare("Detalhes do Item - Smart Cart", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="entry">
<div class="entry-header">
<h3>Detalhes do Item</h3>
<form method="post" action="/entry/cancel"><input type="hidden" name="session" value="%[1]s"><button class="icon-btn" type="submit" aria-label="Cancelar">&times;</button></form>
</div>
<div class="entry-body">
<div class="code-row"><span class="code-label">Código</span><span class="code-badge">%[2]s</span></div>
`, templ.EscapeString(data.SessionID), templ.EscapeString(data.Code)); err != nil {
			return err
		}

		if data.Image != "" {
			if _, err := fmt.Fprintf(w, `<div class="entry-photo"><img src="%s" alt="Produto"><span id="suggest-spinner" hidden>IA Identificando...</span></div>
`, templ.EscapeString(data.Image)); err != nil {
				return err
			}
		}
		if data.ErrorMessage != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-error">%s</p>
`, templ.EscapeString(data.ErrorMessage)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<form method="post" action="/entry">
<input type="hidden" name="session" value="%[1]s">
<label class="field-label" for="name-input">Nome do Produto</label>
<input id="name-input" name="name" type="text" placeholder="Digite o nome..." value="%[2]s" autocomplete="off">
<div class="entry-row">
<div class="qty-field">
<label class="field-label">Qtd</label>
<div class="qty-stepper">
<button type="button" id="qty-dec" aria-label="Menos">&minus;</button>
<input id="qty-input" name="quantity" type="text" inputmode="numeric" value="%[3]d" readonly>
<button type="button" id="qty-inc" aria-label="Mais">&plus;</button>
</div>
</div>
<div class="price-field">
<label class="field-label" for="price-input">Valor Unit.</label>
<div class="price-wrap"><span>R$</span>
<input id="price-input" name="price" type="text" inputmode="decimal" placeholder="0,00" value="%[4]s" autofocus>
</div>
</div>
</div>
<button class="primary-btn" type="submit">Adicionar</button>
</form>
</div>
</div>
`, templ.EscapeString(data.SessionID), templ.EscapeString(data.Name), data.Quantity, templ.EscapeString(data.Price)); err != nil {
			return err
		}

		suggest := "false"
		if data.CanSuggest {
			suggest = "true"
		}
		_, err := fmt.Fprintf(w, `<script>
(function() {
  var qty = document.getElementById("qty-input");
  document.getElementById("qty-dec").addEventListener("click", function() {
    qty.value = Math.max(1, parseInt(qty.value, 10) - 1);
  });
  document.getElementById("qty-inc").addEventListener("click", function() {
    qty.value = parseInt(qty.value, 10) + 1;
  });

  if (!%[1]s) return;
  var nameInput = document.getElementById("name-input");
  var spinner = document.getElementById("suggest-spinner");
  if (spinner) spinner.hidden = false;
  fetch("/api/suggest-name?session=%[2]s")
    .then(function(resp) { return resp.json(); })
    .then(function(data) {
      if (data.name && !nameInput.value) nameInput.value = data.name;
    })
    .catch(function() {})
    .finally(function() { if (spinner) spinner.hidden = true; });
})();
</script>
`, suggest, templ.EscapeString(data.SessionID))
		return err
	}))
}
