package ticket

import (
	"RestoPos/pkg/logging"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	pageWidth = 80.0 // mm
	margin    = 4.0
	lineH     = 4.5
	logoW     = 30.0
)

// RenderPDF writes the ticket as an 80 mm wide PDF. A section that cannot
// be drawn, such as a missing logo, is logged and skipped.
func RenderPDF(doc Document, w io.Writer) error {
	logger := logging.GetLogger()
	logger.Debug("RenderPDF:>Start")
	defer logger.Debug("RenderPDF:>End")

	height := 110 + float64(len(doc.Items))*lineH
	if doc.Header.Logo != "" {
		height += logoW
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageWidth, Ht: height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Ticket "+doc.Meta.Number, true)
	if !doc.Meta.Date.IsZero() {
		pdf.SetCreationDate(doc.Meta.Date)
	}
	pdf.AddPage()

	p := &pdfTicket{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	runSteps([]step{
		{"logo", func() error { return p.logo(doc.Header.Logo) }},
		{"header", func() error { return p.header(doc.Header) }},
		{"metadata", func() error { return p.meta(doc.Meta) }},
		{"items", func() error { return p.items(doc.Items) }},
		{"totals", func() error { return p.totals(doc.Totals) }},
		{"payment", func() error { return p.payment(doc.Payment) }},
		{"footer", func() error { return p.footer(doc.Footer) }},
	})

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "write ticket pdf")
	}
	return nil
}

type pdfTicket struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// check turns the accumulated fpdf error into the section's error and
// clears it so later sections can still draw.
func (p *pdfTicket) check() error {
	if p.pdf.Ok() {
		return nil
	}
	err := p.pdf.Error()
	p.pdf.ClearError()
	return err
}

func (p *pdfTicket) width() float64 {
	return pageWidth - 2*margin
}

func (p *pdfTicket) logo(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "logo")
	}
	x := (pageWidth - logoW) / 2
	p.pdf.ImageOptions(path, x, p.pdf.GetY(), logoW, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	return p.check()
}

func (p *pdfTicket) header(h Header) error {
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.CellFormat(p.width(), 6, p.tr(h.Name), "", 1, "C", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 8)
	for _, line := range []string{h.Address, h.Phone} {
		if line != "" {
			p.pdf.CellFormat(p.width(), lineH, p.tr(line), "", 1, "C", false, 0, "")
		}
	}
	if h.CIF != "" {
		p.pdf.CellFormat(p.width(), lineH, p.tr("CIF: "+h.CIF), "", 1, "C", false, 0, "")
	}
	p.separator()
	return p.check()
}

func (p *pdfTicket) meta(m Meta) error {
	date := "-"
	if !m.Date.IsZero() {
		date = m.Date.Format("02/01/2006 15:04")
	}
	p.pdf.SetFont("Helvetica", "", 8)
	p.pair("Ticket: "+m.Number, date)
	p.pair("Mesa: "+m.Table, "Atendido por: "+m.Cashier)
	p.separator()
	return p.check()
}

func (p *pdfTicket) items(items []Item) error {
	cols := []float64{8, 34, 14, 16}
	p.pdf.SetFont("Helvetica", "B", 7)
	for i, head := range []string{"Cant", "Descripción", "Precio", "Importe"} {
		align := "R"
		if i == 1 {
			align = "L"
		}
		p.pdf.CellFormat(cols[i], lineH, p.tr(head), "B", 0, align, false, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont("Helvetica", "", 7)
	for _, it := range items {
		p.pdf.CellFormat(cols[0], lineH, fmt.Sprint(it.Quantity), "", 0, "R", false, 0, "")
		p.pdf.CellFormat(cols[1], lineH, p.tr(clip(it.Name, 24)), "", 0, "L", false, 0, "")
		p.pdf.CellFormat(cols[2], lineH, p.tr(Money(it.UnitPrice)), "", 0, "R", false, 0, "")
		p.pdf.CellFormat(cols[3], lineH, p.tr(Money(it.Subtotal)), "", 1, "R", false, 0, "")
	}
	p.separator()
	return p.check()
}

func (p *pdfTicket) totals(t Totals) error {
	p.pdf.SetFont("Helvetica", "", 8)
	p.pair("Base imponible", Money(t.Base))
	p.pair(fmt.Sprintf("IVA %s%%", t.Rate.Shift(2).String()), Money(t.Tax))
	p.pdf.SetFont("Helvetica", "B", 10)
	p.pair("TOTAL", Money(t.Total))
	return p.check()
}

func (p *pdfTicket) payment(method string) error {
	p.pdf.SetFont("Helvetica", "", 8)
	p.pair("Forma de pago", method)
	p.separator()
	return p.check()
}

func (p *pdfTicket) footer(text string) error {
	p.pdf.Ln(lineH / 2)
	if text != "" {
		p.pdf.SetFont("Helvetica", "I", 8)
		p.pdf.MultiCell(p.width(), lineH, p.tr(text), "", "C", false)
	}
	p.separator()
	return p.check()
}

func (p *pdfTicket) pair(left, right string) {
	half := p.width() / 2
	p.pdf.CellFormat(half, lineH, p.tr(left), "", 0, "L", false, 0, "")
	p.pdf.CellFormat(half, lineH, p.tr(right), "", 1, "R", false, 0, "")
}

func (p *pdfTicket) separator() {
	y := p.pdf.GetY() + 1
	p.pdf.Line(margin, y, pageWidth-margin, y)
	p.pdf.Ln(2)
}
