package cart

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"smartcart/frontend/shared/format"
	"smartcart/frontend/shared/html"
	"smartcart/models"
)

// CartPageData feeds the cart screen.
type CartPageData struct {
	Items     []models.CartItem
	Total     float64
	UnitCount int64
}

// CartPage lists the active cart with swipe-to-remove rows and the
// bottom bar with subtotal, unit count and the scan/finalize actions.
func CartPage(data CartPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(data.Items) == 0 {
			if _, err := io.WriteString(w, `<div class="empty-state"><p>Escaneie produtos para começar</p></div>
`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<div class="cart-list">
`); err != nil {
				return err
			}
			for _, item := range data.Items {
				if _, err := io.WriteString(w, cartRow(item)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<p class="swipe-hint">Arraste para remover</p>
</div>
`); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<div class="cart-footer">
<div class="cart-summary">
<div><span class="summary-label">Subtotal</span><div class="summary-total">%s</div></div>
<div class="summary-right"><span class="summary-label">Produtos</span><div class="summary-count">%d</div></div>
</div>
<div class="cart-actions">
<a class="primary-btn" href="/scan">Escanear</a>
`, format.BRL(data.Total), data.UnitCount); err != nil {
			return err
		}
		if len(data.Items) > 0 {
			if _, err := io.WriteString(w, `<a class="confirm-btn" href="/checkout">Finalizar</a>
`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>
</div>
`); err != nil {
			return err
		}
		_, err := io.WriteString(w, swipeScript)
		return err
	})
	return html.Page("Carrinho - Smart Cart", html.TabCart, body)
}

func cartRow(item models.CartItem) string {
	thumb := `<div class="item-thumb item-thumb-empty"></div>`
	if item.Image != "" {
		thumb = fmt.Sprintf(`<div class="item-thumb"><img src="%s" alt=""></div>`, templ.EscapeString(item.Image))
	}
	qtyLine := ""
	if item.Quantity > 1 {
		qtyLine = fmt.Sprintf(`<div class="item-unit">%dx %s</div>`, item.Quantity, format.BRL(item.Price))
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="swipe-row" data-item-id="%s">
<div class="swipe-under">Remover</div>
<div class="swipe-card">
%s
<div class="item-info"><span class="item-name">%s</span><span class="item-code">%s</span></div>
<div class="item-price"><div class="item-subtotal">%s</div>%s</div>
</div>
<form class="swipe-delete-form" method="post" action="/cart/items/%s/delete" hidden></form>
</div>
`, templ.EscapeString(item.ID), thumb, templ.EscapeString(item.Name), templ.EscapeString(item.Code),
		format.BRL(item.Subtotal()), qtyLine, templ.EscapeString(item.ID))
	return b.String()
}

// Swipe left past the threshold submits the row's delete form. The
// gesture is presentation only; removal happens server-side.
const swipeScript = `<script>
(function() {
  document.querySelectorAll(".swipe-row").forEach(function(row) {
    var card = row.querySelector(".swipe-card");
    var form = row.querySelector(".swipe-delete-form");
    var startX = 0;
    var offset = 0;
    var dragging = false;

    card.addEventListener("touchstart", function(e) {
      startX = e.touches[0].clientX;
      dragging = true;
      card.style.transition = "none";
    }, { passive: true });

    card.addEventListener("touchmove", function(e) {
      if (!dragging) return;
      offset = Math.min(0, Math.max(e.touches[0].clientX - startX, -150));
      card.style.transform = "translateX(" + offset + "px)";
    }, { passive: true });

    card.addEventListener("touchend", function() {
      dragging = false;
      card.style.transition = "transform 0.3s";
      if (offset < -100) {
        card.style.transform = "translateX(-500px)";
        setTimeout(function() { form.submit(); }, 300);
      } else {
        card.style.transform = "translateX(0)";
      }
      offset = 0;
    });
  });
})();
</script>
`

// CheckoutPageData feeds the confirmation screen.
type CheckoutPageData struct {
	Items []models.CartItem
	Total float64
}

// CheckoutReviewPage shows the digital receipt preview with the
// confirm action. Going back leaves the cart untouched.
func CheckoutReviewPage(data CheckoutPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="review">
<div class="review-header"><a class="icon-btn" href="/cart" aria-label="Voltar">&larr;</a><h2>Confirmação</h2><span></span></div>
<div class="review-receipt">
<div class="review-title"><h3>SMART CART</h3><p>Recibo Digital</p></div>
<div class="review-lines">
`); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<div class="review-line"><div><div class="review-name">%s</div><div class="review-unit">%dx %s</div></div><div class="review-subtotal">%s</div></div>
`, templ.EscapeString(item.Name), item.Quantity, format.BRL(item.Price), format.BRL(item.Subtotal())); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</div>
<div class="review-total"><span>TOTAL</span><strong>%s</strong></div>
</div>
<form method="post" action="/checkout">
<button class="primary-btn" type="submit">Confirmar e Baixar PDF</button>
</form>
</div>
`, format.BRL(data.Total))
		return err
	})
	return html.Bare("Confirmação - Smart Cart", body)
}
