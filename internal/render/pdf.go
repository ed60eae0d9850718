// Package render builds the paginated quote document with gofpdf. Given the
// same request and clock, output is byte-identical: totals are recomputed
// from the request, row order follows input order, and the PDF creation date
// comes from the injected clock.
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goquote/internal/money"
	"github.com/hyperifyio/goquote/internal/quote"
	"github.com/hyperifyio/goquote/internal/store"
)

// Table geometry in millimeters on an A4 page with 15mm margins.
const (
	colImage = 24.0
	colDesc  = 78.0
	colQty   = 15.0
	colUnit  = 30.0
	colTotal = 33.0

	lineHeight  = 5.0
	imageInset  = 2.0
	minRowH     = 10.0
	imageCellH  = 20.0
	pageMargin  = 15.0
	dateLayout  = "2006-01-02"
)

// Builder renders quote requests. Now is the clock used for the issue date
// and the PDF creation date; nil means time.Now.
type Builder struct {
	Now func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Build renders the request into PDF bytes.
func (b *Builder) Build(req quote.Request) ([]byte, error) {
	now := b.now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	b.header(pdf, req, now)
	b.billTo(pdf, req)
	b.itemsTable(pdf, req)
	b.totals(pdf, req)
	b.terms(pdf, req)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build quote document: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write quote document: %w", err)
	}
	return buf.Bytes(), nil
}

// header lays the issuer block (logo when the path resolves, text otherwise)
// beside the quote metadata block.
func (b *Builder) header(pdf *gofpdf.Fpdf, req quote.Request, now time.Time) {
	top := pdf.GetY()

	if canEmbed(req.Issuer.LogoPath) {
		pdf.ImageOptions(req.Issuer.LogoPath, pageMargin, top, 45, 0, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetXY(pageMargin, top+28)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(95, 5, req.Issuer.Name, "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(95, 7, req.Issuer.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(95, 5, req.Issuer.Address, "", 1, "L", false, 0, "")
		pdf.CellFormat(95, 5, req.Issuer.Phone, "", 1, "L", false, 0, "")
		pdf.CellFormat(95, 5, req.Issuer.Email, "", 1, "L", false, 0, "")
	}
	leftBottom := pdf.GetY()

	// Metadata block on the right, aligned with the top of the page body.
	pdf.SetXY(110, top)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(85, 10, "QUOTE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(85, 5, "Quote #: "+req.QuoteNumber, "", 2, "R", false, 0, "")
	pdf.CellFormat(85, 5, "Date: "+now.Format(dateLayout), "", 2, "R", false, 0, "")
	pdf.CellFormat(85, 5, "Valid until: "+req.ValidUntil.Format(dateLayout), "", 2, "R", false, 0, "")
	rightBottom := pdf.GetY()

	if leftBottom > rightBottom {
		pdf.SetY(leftBottom)
	} else {
		pdf.SetY(rightBottom)
	}
	pdf.Ln(6)
}

func (b *Builder) billTo(pdf *gofpdf.Fpdf, req quote.Request) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(180, 7, "BILL TO", "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(180, 5, req.Client.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 5, req.Client.Contact, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (b *Builder) itemsTable(pdf *gofpdf.Fpdf, req quote.Request) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colImage, 8, "Image", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colDesc, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colUnit, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 8, "Total", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)

	for _, it := range req.Items {
		b.itemRow(pdf, it)
	}
}

// itemRow draws one table row, sizing it to the wrapped description and the
// image cell, and breaking the page first when the row would not fit.
func (b *Builder) itemRow(pdf *gofpdf.Fpdf, it quote.Item) {
	lines := pdf.SplitText(it.Description, colDesc-2)
	rowH := float64(len(lines)) * lineHeight
	if rowH < minRowH {
		rowH = minRowH
	}
	hasImage := canEmbed(it.ImageLocalPath)
	if hasImage && rowH < imageCellH {
		rowH = imageCellH
	}

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+rowH > pageH-pageMargin {
		pdf.AddPage()
	}

	x := pageMargin
	y := pdf.GetY()

	pdf.Rect(x, y, colImage, rowH, "D")
	if hasImage {
		pdf.ImageOptions(it.ImageLocalPath, x+imageInset, y+imageInset,
			colImage-2*imageInset, rowH-2*imageInset, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
	x += colImage

	pdf.Rect(x, y, colDesc, rowH, "D")
	pdf.SetXY(x+1, y+1)
	pdf.MultiCell(colDesc-2, lineHeight, it.Description, "", "L", false)
	x += colDesc

	pdf.Rect(x, y, colQty, rowH, "D")
	pdf.SetXY(x, y)
	pdf.CellFormat(colQty, rowH, trimFloat(it.Quantity), "", 0, "C", false, 0, "")
	x += colQty

	pdf.Rect(x, y, colUnit, rowH, "D")
	pdf.SetXY(x, y)
	pdf.CellFormat(colUnit, rowH, money.FormatCurrency(it.UnitPrice), "", 0, "R", false, 0, "")
	x += colUnit

	pdf.Rect(x, y, colTotal, rowH, "D")
	pdf.SetXY(x, y)
	pdf.CellFormat(colTotal, rowH, money.FormatCurrency(it.LineTotal()), "", 0, "R", false, 0, "")

	pdf.SetXY(pageMargin, y+rowH)
}

func (b *Builder) totals(pdf *gofpdf.Fpdf, req quote.Request) {
	t := quote.ComputeTotals(req.Items, req.Discount, req.TaxRatePercent)
	labelW, valueW := 147.0, 33.0

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, money.FormatCurrency(t.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Discount", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, money.FormatCurrency(-req.Discount), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Tax ("+percentLabel(req.TaxRatePercent)+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, money.FormatCurrency(t.TaxAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(labelW, 8, "Grand Total", "", 0, "R", true, 0, "")
	pdf.CellFormat(valueW, 8, money.FormatCurrency(t.GrandTotal), "", 1, "R", true, 0, "")
}

func (b *Builder) terms(pdf *gofpdf.Fpdf, req quote.Request) {
	if strings.TrimSpace(req.Terms) == "" {
		return
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(180, 6, "Terms and Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	// MultiCell preserves the operator's line breaks.
	pdf.MultiCell(180, 4.5, req.Terms, "", "L", false)
}

// canEmbed reports whether path names an image gofpdf can place. The decode
// probe keeps a corrupt file from poisoning the whole document; a bad image
// degrades to a blank cell.
func canEmbed(path string) bool {
	if !store.FileExists(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("image not embeddable, leaving cell blank")
		return false
	}
	return true
}

// percentLabel renders a tax rate without trailing zeros: 7 -> "7%", 7.5 -> "7.5%".
func percentLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// trimFloat renders a quantity without trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SuggestedFilename derives the download filename from the client name and
// the issue date, e.g. "Quote_Acme_Corp_20260831.pdf".
func SuggestedFilename(clientName string, now time.Time) string {
	name := sanitizeFilename(clientName)
	if name == "" {
		name = "quote"
	}
	return "Quote_" + name + "_" + now.Format("20060102") + ".pdf"
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}
