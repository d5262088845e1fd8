package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/nfnt/resize"

	"smartcart/frontend/shared/format"
	"smartcart/models"
)

// QRPayloadData is the machine-readable summary embedded in the
// receipt's QR code. Everything derives from the stored purchase, so
// re-exports produce identical payloads.
type QRPayloadData struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Items int64   `json:"items"`
}

// QRPayload serializes the purchase summary for the QR code.
func QRPayload(p models.Purchase) ([]byte, error) {
	payload := QRPayloadData{
		ID:    p.ID,
		Date:  format.DateTimeFull(p.Time()),
		Total: p.Total,
		Items: p.ItemCount,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal qr payload: %w", err)
	}
	return raw, nil
}

// Filename is "SmartCart_<id5>_<yyyymmdd-hhmm>.pdf" from the purchase
// id and timestamp.
func Filename(p models.Purchase) string {
	id := p.ID
	if len(id) > 5 {
		id = id[:5]
	}
	return fmt.Sprintf("SmartCart_%s_%s.pdf", id, p.Time().Format("20060102-1504"))
}

// BuildRows is the item table content: Produto, Qtd, Unit, Subtotal
// per line, in stored order.
func BuildRows(p models.Purchase) [][4]string {
	rows := make([][4]string, 0, len(p.Items))
	for _, item := range p.Items {
		rows = append(rows, [4]string{
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			format.BRL(item.Price),
			format.BRL(item.Subtotal()),
		})
	}
	return rows
}

// Render produces the A4 receipt PDF for a stored purchase: title
// block, QR code, striped item table with photo thumbnails, total row
// and the no-fiscal-validity footer.
func Render(p models.Purchase) ([]byte, error) {
	qrPNG, err := renderQRPNG(p)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Smart Cart - Recibo", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 10, "SMART CART", "", 1, "L", false, 0, "")

	shortID := p.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cupom: %s | Data: %s", shortID, format.DateTimeFull(p.Time()))), "", 1, "L", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("receipt-qr-"+p.ID, opt, bytes.NewReader(qrPNG))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("receipt-qr-"+p.ID, pageW-40, 10, 28, 28, false, opt, 0, "")

	pdf.SetY(44)
	if err := renderItemTable(pdf, tr, p); err != nil {
		return nil, err
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(0, 5, tr("Documento gerado pelo Smart Cart. Sem valor fiscal."), "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}

func renderItemTable(pdf *gofpdf.Fpdf, tr func(string) string, p models.Purchase) error {
	hasThumbs := false
	for _, item := range p.Items {
		if item.Image != "" {
			hasThumbs = true
			break
		}
	}

	left := 14.0
	thumbW := 0.0
	rowH := 8.0
	if hasThumbs {
		thumbW = 14.0
		rowH = 14.0
	}
	nameW := 96.0 - thumbW
	qtyW := 16.0
	unitW := 32.0
	subW := 38.0
	tableW := thumbW + nameW + qtyW + unitW + subW

	pdf.SetX(left)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(37, 99, 235)
	pdf.CellFormat(thumbW+nameW, 8, tr("Produto"), "", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 8, "Qtd", "", 0, "C", true, 0, "")
	pdf.CellFormat(unitW, 8, "Unit", "", 0, "R", true, 0, "")
	pdf.CellFormat(subW, 8, "Subtotal", "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 41, 59)
	rows := BuildRows(p)
	for i, row := range rows {
		fill := i%2 == 1
		pdf.SetFillColor(241, 245, 249)
		y := pdf.GetY()
		pdf.SetX(left)

		if hasThumbs {
			pdf.CellFormat(thumbW, rowH, "", "", 0, "L", fill, 0, "")
			item := p.Items[i]
			if item.Image != "" {
				thumbPNG, err := renderThumbnailJPEG(item.Image)
				if err == nil {
					topt := gofpdf.ImageOptions{ImageType: "JPEG", ReadDpi: false}
					name := fmt.Sprintf("receipt-thumb-%s-%d", p.ID, i)
					pdf.RegisterImageOptionsReader(name, topt, bytes.NewReader(thumbPNG))
					pdf.ImageOptions(name, left+1, y+1, thumbW-2, rowH-2, false, topt, 0, "")
				}
			}
		}
		pdf.CellFormat(nameW, rowH, tr(row[0]), "", 0, "L", fill, 0, "")
		pdf.CellFormat(qtyW, rowH, row[1], "", 0, "C", fill, 0, "")
		pdf.CellFormat(unitW, rowH, tr(row[2]), "", 0, "R", fill, 0, "")
		pdf.CellFormat(subW, rowH, tr(row[3]), "", 1, "R", fill, 0, "")
	}

	pdf.SetX(left)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(tableW-subW-unitW, 9, "", "T", 0, "L", false, 0, "")
	pdf.CellFormat(unitW, 9, "TOTAL", "T", 0, "R", false, 0, "")
	pdf.CellFormat(subW, 9, tr(format.BRL(p.Total)), "T", 1, "R", false, 0, "")
	return nil
}

func renderQRPNG(p models.Purchase) ([]byte, error) {
	payload, err := QRPayload(p)
	if err != nil {
		return nil, err
	}
	code, err := qr.Encode(string(payload), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, 320, 320)
	if err != nil {
		return nil, fmt.Errorf("scale qr: %w", err)
	}
	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return out.Bytes(), nil
}

// renderThumbnailJPEG decodes the captured data URL and shrinks it to
// a small receipt thumbnail.
func renderThumbnailJPEG(dataURL string) ([]byte, error) {
	raw := dataURL
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode item image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("parse item image: %w", err)
	}
	thumb := resize.Thumbnail(96, 96, img, resize.Lanczos3)
	var out bytes.Buffer
	if err := jpeg.Encode(&out, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
