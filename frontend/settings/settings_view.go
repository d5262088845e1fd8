package settings

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"smartcart/frontend/shared/html"
)

// SettingsPageData feeds the settings screen.
type SettingsPageData struct {
	Version string
}

// SettingsPage has the mobile install card, the version card and the
// clear-history action. The install modal detects the platform in the
// browser: iOS gets the add-to-home-screen steps, Android captures the
// beforeinstallprompt event and triggers the native prompt.
func SettingsPage(data SettingsPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="settings">
<div class="settings-card settings-install">
<h3>Aplicativo Mobile</h3>
<p>Instale o Smart Cart no seu celular para uma experiência de shopping nativa.</p>
<button class="primary-btn" type="button" id="install-open-btn">Instalar Agora</button>
</div>
<div class="settings-card settings-version">
<div><div class="settings-label">Versão</div><div class="settings-value">%[1]s (Build 2024)</div></div>
<span class="badge-ok">Atualizado</span>
</div>
<form method="post" action="/history/clear" id="clear-history-form">
<button class="danger-btn" type="submit">Limpar Histórico</button>
</form>
</div>

<dialog id="install-modal" class="modal">
<div class="modal-box">
<h3>Instalar Smart Cart</h3>
<p>Tenha acesso rápido direto da sua tela inicial, funcionamento offline e uma experiência de tela cheia.</p>
<div id="install-ios" hidden>
<ol>
<li>Toque no ícone de <strong>Compartilhar</strong> na barra inferior do Safari.</li>
<li>Role a lista e selecione <strong>Adicionar à Tela de Início</strong>.</li>
</ol>
</div>
<button class="primary-btn" type="button" id="install-action-btn">Entendi</button>
<p class="install-version">Smart Cart v%[1]s</p>
<button class="ghost-btn" type="button" id="install-close-btn">Fechar</button>
</div>
</dialog>

<script>
(function() {
  var deferredPrompt = null;
  var modal = document.getElementById("install-modal");
  var actionBtn = document.getElementById("install-action-btn");
  var ua = navigator.userAgent.toLowerCase();
  var isIos = /iphone|ipad|ipod/.test(ua);
  var isAndroid = /android/.test(ua);

  window.addEventListener("beforeinstallprompt", function(e) {
    e.preventDefault();
    deferredPrompt = e;
  });

  if (isIos) {
    document.getElementById("install-ios").hidden = false;
  } else if (isAndroid) {
    actionBtn.textContent = "Instalar no Android";
  }

  document.getElementById("install-open-btn").addEventListener("click", function() {
    modal.showModal();
  });
  document.getElementById("install-close-btn").addEventListener("click", function() {
    modal.close();
  });
  actionBtn.addEventListener("click", function() {
    if (isAndroid && deferredPrompt) {
      deferredPrompt.prompt();
      deferredPrompt.userChoice.then(function(choice) {
        if (choice.outcome === "accepted") modal.close();
        deferredPrompt = null;
      });
      return;
    }
    modal.close();
  });

  document.getElementById("clear-history-form").addEventListener("submit", function(e) {
    if (!window.confirm("Deseja apagar todo o histórico de compras?")) e.preventDefault();
  });
})();
</script>
`, templ.EscapeString(data.Version))
		return err
	})
	return html.Page("Ajustes - Smart Cart", html.TabSettings, body)
}
