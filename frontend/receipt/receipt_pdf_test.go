package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"smartcart/models"
)

func samplePurchase() models.Purchase {
	ts := time.Date(2024, 3, 7, 18, 42, 0, 0, time.Local).UnixMilli()
	return models.Purchase{
		ID:        "b3f1c2d4-5678-90ab-cdef-1234567890ab",
		Timestamp: ts,
		Total:     25,
		ItemCount: 3,
		Items: []models.CartItem{
			{ID: "a", Code: "7891000100103", Name: "Leite Integral", Price: 10, Quantity: 2, Timestamp: ts},
			{ID: "b", Code: "7894900011517", Name: "Refrigerante 2L", Price: 5, Quantity: 1, Timestamp: ts},
		},
	}
}

func sampleImageDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode sample jpeg: %v", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRender_ProducesPDF(t *testing.T) {
	pdfBytes, err := Render(samplePurchase())
	if err != nil {
		t.Fatalf("render receipt: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatalf("expected non-empty pdf")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", pdfBytes[:8])
	}
}

func TestRender_WithItemPhoto(t *testing.T) {
	p := samplePurchase()
	p.Items[0].Image = sampleImageDataURL(t)

	pdfBytes, err := Render(p)
	if err != nil {
		t.Fatalf("render receipt with photo: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("expected pdf header")
	}
}

func TestQRPayload_DeterministicFromStoredPurchase(t *testing.T) {
	p := samplePurchase()

	first, err := QRPayload(p)
	if err != nil {
		t.Fatalf("qr payload: %v", err)
	}
	second, err := QRPayload(p)
	if err != nil {
		t.Fatalf("qr payload: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("payload not deterministic: %s vs %s", first, second)
	}

	var decoded QRPayloadData
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.ID != p.ID || decoded.Total != 25 || decoded.Items != 3 {
		t.Fatalf("unexpected payload %+v", decoded)
	}
	if decoded.Date != "07/03/2024 18:42:00" {
		t.Fatalf("expected purchase timestamp in payload, got %q", decoded.Date)
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(samplePurchase())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := [4]string{"Leite Integral", "2", "R$ 10,00", "R$ 20,00"}
	if rows[0] != want {
		t.Fatalf("row 0 = %v, want %v", rows[0], want)
	}
}

func TestFilename(t *testing.T) {
	got := Filename(samplePurchase())
	if got != "SmartCart_b3f1c_20240307-1842.pdf" {
		t.Fatalf("unexpected filename %q", got)
	}
}
