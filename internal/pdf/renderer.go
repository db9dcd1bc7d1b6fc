package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"billing-backend/internal/invoice"
	"billing-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait in points.
const (
	pageMargin  = 40.0
	rightMargin = 550.0
	lineHeight  = 15.0
)

var colWidths = [6]float64{170, 40, 60, 40, 60, 70}

// Render lays out the two-copy printable tax invoice for one fully joined
// snapshot and returns the PDF bytes. Identical input yields identical
// output: the document carries fixed creation and modification dates and
// no other environment-dependent state.
func Render(inv *models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetModificationDate(time.Unix(0, 0).UTC())
	doc.SetAutoPageBreak(false, 0)

	_, pageH := doc.GetPageSize()
	r := &renderer{doc: doc, pageHeight: pageH}

	// Copy 1 carries the company letterhead and footer; copy 2 is the
	// duplicate without either.
	r.renderCopy(inv, true)
	r.renderCopy(inv, false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	doc        *gofpdf.Fpdf
	pageHeight float64
	y          float64
}

func (r *renderer) newPage() {
	r.doc.AddPage()
	r.y = pageMargin
}

// ensureSpace starts a new page when a block of height h would cross the
// printable area.
func (r *renderer) ensureSpace(h float64) {
	if breakNeeded(r.y, h, r.pageHeight) {
		r.newPage()
	}
}

func breakNeeded(y, h, pageHeight float64) bool {
	return y+h > pageHeight-pageMargin
}

func (r *renderer) hline() {
	r.doc.Line(pageMargin, r.y, rightMargin, r.y)
}

// cell draws one aligned text cell with its top edge at the current cursor.
func (r *renderer) cell(x, w float64, text, align string) {
	r.doc.SetXY(x, r.y)
	r.doc.CellFormat(w, lineHeight, text, "", 0, align+"M", false, 0, "")
}

func (r *renderer) cellAt(x, y, w float64, text, align string) {
	r.doc.SetXY(x, y)
	r.doc.CellFormat(w, lineHeight, text, "", 0, align+"M", false, 0, "")
}

func (r *renderer) renderCopy(inv *models.Invoice, withLetterhead bool) {
	doc := r.doc
	r.newPage()

	if withLetterhead {
		r.renderLetterhead()
	}

	// Invoice title
	doc.SetFont("Helvetica", "B", 14)
	r.cell(pageMargin, rightMargin-pageMargin, "TAX INVOICE", "C")
	r.y += 30

	// Invoice info left, bill-to right
	headerY := r.y
	doc.SetFont("Helvetica", "", 10)
	r.cellAt(pageMargin, headerY, 200, "Invoice No: "+inv.InvoiceNumber, "L")
	r.cellAt(pageMargin, headerY+lineHeight, 200,
		"Date: "+inv.CreatedAt.Format("02/01/2006"), "L")

	if inv.Customer != nil {
		const billToX = 350.0
		c := inv.Customer
		doc.SetFont("Helvetica", "U", 10)
		r.cellAt(billToX, headerY, 200, "Bill To:", "L")
		doc.SetFont("Helvetica", "", 10)
		gst := c.GST
		if gst == "" {
			gst = "N/A"
		}
		r.cellAt(billToX, headerY+lineHeight, 200, "Name: "+c.Name, "L")
		r.cellAt(billToX, headerY+2*lineHeight, 200, "Address: "+c.Address, "L")
		r.cellAt(billToX, headerY+3*lineHeight, 200, "City: "+c.City, "L")
		r.cellAt(billToX, headerY+4*lineHeight, 200, "GSTIN: "+gst, "L")
	}

	r.y = headerY + 5*lineHeight + 10
	r.hline()
	r.y += 20

	// Line-item table
	colX := columnOffsets()
	doc.SetFont("Helvetica", "B", 10)
	r.cell(colX[0], colWidths[0], "Product", "L")
	r.cell(colX[1], colWidths[1], "Qty", "C")
	r.cell(colX[2], colWidths[2], "Rate", "R")
	r.cell(colX[3], colWidths[3], "Disc", "C")
	r.cell(colX[4], colWidths[4], "MRP", "R")
	r.cell(colX[5], colWidths[5], "Amount", "R")
	r.y += lineHeight
	r.hline()
	r.y += 5

	doc.SetFont("Helvetica", "", 10)
	for i, p := range inv.ProductDetails {
		r.ensureSpace(lineHeight)

		name := p.Product.Name
		if name == "" {
			name = "Product Name Missing"
		}

		r.cell(colX[0], colWidths[0], fmt.Sprintf("%d. %s", i+1, name), "L")
		r.cell(colX[1], colWidths[1], fmt.Sprintf("%d", p.Qty), "C")
		r.cell(colX[2], colWidths[2], p.Rate.StringFixed(2), "R")
		r.cell(colX[3], colWidths[3], p.Disc.String()+"%", "C")
		r.cell(colX[4], colWidths[4], p.Mrp.StringFixed(2), "R")
		r.cell(colX[5], colWidths[5], p.Amount.StringFixed(2), "R")
		r.y += lineHeight + 5
	}

	r.hline()
	r.y += 20

	// Totals
	doc.SetFont("Helvetica", "B", 10)
	r.cell(pageMargin, rightMargin-pageMargin,
		"Total Amount: Rs."+inv.TotalAmount.StringFixed(2), "R")
	r.y += 30

	// Payment block only exists once payment data has been recorded
	if inv.PaymentData != nil {
		pd := inv.PaymentData
		r.cell(pageMargin, 300, "Payment Details", "L")
		r.y += lineHeight

		doc.SetFont("Helvetica", "", 10)
		r.cell(pageMargin, 300, "Mode of Payment: "+pd.ModeOfPayment, "L")
		r.y += lineHeight
		r.cell(pageMargin, 300, "Status: "+pd.PaymentStatus, "L")
		r.y += lineHeight
		r.cell(pageMargin, 300, "Paid Amount: Rs."+pd.PaidAmount.StringFixed(2), "L")
		r.y += lineHeight

		pending := invoice.PendingAmount(inv.TotalAmount, pd.PaidAmount)
		r.cell(pageMargin, 300, "Pending Amount: Rs."+pending.StringFixed(2), "L")
		r.y += 2*lineHeight + 15
	}

	if withLetterhead {
		r.renderFooter()
	}
}

func (r *renderer) renderLetterhead() {
	doc := r.doc
	y := r.y

	logoPath := filepath.Join("public", "logo.png")
	if _, err := os.Stat(logoPath); err == nil {
		doc.ImageOptions(logoPath, pageMargin, y, 80, 0, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		doc.Rect(pageMargin, y, 80, 50, "D")
		doc.SetFont("Helvetica", "", 8)
		r.cellAt(pageMargin+15, y+18, 50, "LOGO", "C")
	}

	doc.SetFont("Helvetica", "B", 16)
	r.cellAt(140, y+10, 400, "Fitnora Global Pvt. Ltd.", "L")
	doc.SetFont("Helvetica", "", 10)
	r.cellAt(140, y+30, 400, "Senapati Bapat Road, Pune , Maharashtra - 411016", "L")
	r.cellAt(140, y+45, 400, "GSTIN: 27ABCDE1234F1Z5", "L")
	r.cellAt(140, y+60, 400, "Phone: +91 9834012163 | Email: fitnoraglobal@gmail.com", "L")

	r.y += 80
	r.hline()
	r.y += 20
}

func (r *renderer) renderFooter() {
	r.ensureSpace(60)
	r.hline()
	r.y += 10

	r.doc.SetFont("Helvetica", "I", 9)
	r.cell(pageMargin, rightMargin-pageMargin, "Thank you for your business!", "C")
	r.y += 12
	r.cell(pageMargin, rightMargin-pageMargin, "This is a system-generated invoice.", "C")
}

func columnOffsets() [6]float64 {
	var colX [6]float64
	x := pageMargin
	for i, w := range colWidths {
		colX[i] = x
		x += w
	}
	return colX
}
