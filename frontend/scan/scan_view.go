package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"smartcart/frontend/shared/html"
)

// ScanPageData feeds the scanner screen.
type ScanPageData struct {
	SessionID   string
	SampleCodes []string
}

// ScanPage is the full-screen camera view. The browser owns the camera
// and the BarcodeDetector; the server only hears about the first
// decode, posted to the session result endpoint.
func ScanPage(data ScanPageData) templ.Component {
	return html.Bare("Scanner - Smart Cart", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="scanner">
<div class="scanner-top">
<form method="post" action="/scan/%[1]s/cancel"><button class="icon-btn" type="submit" aria-label="Fechar">&times;</button></form>
<div class="scanner-title">Scanner</div>
<button class="icon-btn" type="button" id="torch-btn" aria-label="Lanterna">&#9889;</button>
</div>
<div class="scanner-stage">
<video id="scan-video" autoplay playsinline muted></video>
<canvas id="scan-canvas" hidden></canvas>
<div class="scanner-frame"><p>Alinhe o código na moldura</p></div>
<p id="scan-error" class="scanner-error" hidden></p>
</div>
<div class="scanner-footer">
<details class="simulate">
<summary>Simular Leitura (Debug)</summary>
<div class="simulate-codes">
%[2]s</div>
</details>
<p id="scan-note" class="scanner-note" hidden>Leitura nativa não suportada neste navegador. Usando modo simulação.</p>
</div>
</div>
<script>
(function() {
  var sessionID = %[1]q;
  var resultURL = "/scan/" + sessionID + "/result";
  var video = document.getElementById("scan-video");
  var canvas = document.getElementById("scan-canvas");
  var stream = null;
  var torchOn = false;
  var timer = null;
  var done = false;

  function showError(msg) {
    var el = document.getElementById("scan-error");
    el.textContent = msg;
    el.hidden = false;
  }

  function stopCamera() {
    if (timer) { clearInterval(timer); timer = null; }
    if (stream) {
      stream.getTracks().forEach(function(t) { t.stop(); });
      stream = null;
    }
    if (video) video.srcObject = null;
  }

  function submitResult(code, image) {
    if (done) return;
    done = true;
    stopCamera();
    var body = new URLSearchParams();
    body.set("code", code);
    if (image) body.set("image", image);
    fetch(resultURL, { method: "POST", body: body })
      .then(function(resp) { window.location = resp.url; })
      .catch(function() { window.location = "/cart"; });
  }

  function detectOnce(detector) {
    if (done || !video || video.readyState !== video.HAVE_ENOUGH_DATA) return;
    detector.detect(video).then(function(barcodes) {
      if (done || !barcodes || barcodes.length === 0) return;
      var code = barcodes[0].rawValue;
      canvas.width = video.videoWidth;
      canvas.height = video.videoHeight;
      canvas.getContext("2d").drawImage(video, 0, 0);
      submitResult(code, canvas.toDataURL("image/jpeg", 0.8));
    }).catch(function() {});
  }

  function toggleTorch() {
    if (!stream) return;
    var track = stream.getVideoTracks()[0];
    if (!track || !track.getCapabilities || !track.getCapabilities().torch) return;
    torchOn = !torchOn;
    track.applyConstraints({ advanced: [{ torch: torchOn }] }).catch(function() {});
  }

  document.getElementById("torch-btn").addEventListener("click", toggleTorch);
  window.addEventListener("pagehide", stopCamera);
  window.addEventListener("beforeunload", stopCamera);

  if (!("BarcodeDetector" in window)) {
    document.getElementById("scan-note").hidden = false;
  }

  navigator.mediaDevices.getUserMedia({
    video: { facingMode: { ideal: "environment" } },
    audio: false
  }).then(function(s) {
    stream = s;
    video.srcObject = s;
    return video.play();
  }).then(function() {
    if (!("BarcodeDetector" in window)) return;
    var detector = new BarcodeDetector({ formats: ["qr_code", "ean_13", "ean_8"] });
    timer = setInterval(function() { detectOnce(detector); }, 500);
  }).catch(function(err) {
    showError("Acesso à câmera não disponível. Use o botão de simulação.");
  });
})();
</script>
`, data.SessionID, sampleButtons(data))
		return err
	}))
}

func sampleButtons(data ScanPageData) string {
	out := ""
	for _, code := range data.SampleCodes {
		out += fmt.Sprintf(`<form method="post" action="/scan/%s/result"><input type="hidden" name="code" value="%s"><button class="simulate-btn" type="submit">%s</button></form>`+"\n",
			data.SessionID, templ.EscapeString(code), templ.EscapeString(code))
	}
	return out
}
