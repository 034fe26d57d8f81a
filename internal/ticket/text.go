package ticket

import (
	"RestoPos/pkg/logging"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TextWidth is the column count of an 80 mm thermal printer.
const TextWidth = 48

// RenderText writes the plain-text ticket. Only a failing writer is an error.
func RenderText(doc Document, w io.Writer) error {
	logger := logging.GetLogger()
	logger.Debug("RenderText:>Start")
	defer logger.Debug("RenderText:>End")

	var b strings.Builder
	runSteps([]step{
		{"header", func() error { return textHeader(&b, doc.Header) }},
		{"metadata", func() error { return textMeta(&b, doc.Meta) }},
		{"items", func() error { return textItems(&b, doc.Items) }},
		{"totals", func() error { return textTotals(&b, doc.Totals) }},
		{"payment", func() error { return textPayment(&b, doc.Payment) }},
		{"footer", func() error { return textFooter(&b, doc.Footer) }},
	})

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write ticket")
	}
	return nil
}

func textHeader(b *strings.Builder, h Header) error {
	for _, line := range []string{strings.ToUpper(h.Name), h.Address, h.Phone} {
		if line != "" {
			center(b, line)
		}
	}
	if h.CIF != "" {
		center(b, "CIF: "+h.CIF)
	}
	rule(b, '=')
	return nil
}

func textMeta(b *strings.Builder, m Meta) error {
	date := "-"
	if !m.Date.IsZero() {
		date = m.Date.Format("02/01/2006 15:04")
	}
	pair(b, "Ticket: "+m.Number, date)
	pair(b, "Mesa: "+m.Table, "Atendido por: "+m.Cashier)
	rule(b, '-')
	return nil
}

func textItems(b *strings.Builder, items []Item) error {
	fmt.Fprintf(b, "%-4s %-20s %10s %11s\n", "CANT", "DESCRIPCIÓN", "PRECIO", "IMPORTE")
	rule(b, '-')
	for _, it := range items {
		fmt.Fprintf(b, "%4d %-20s %10s %11s\n",
			it.Quantity, clip(it.Name, 20), Money(it.UnitPrice), Money(it.Subtotal))
	}
	rule(b, '-')
	return nil
}

func textTotals(b *strings.Builder, t Totals) error {
	pair(b, "Base imponible", Money(t.Base))
	pair(b, fmt.Sprintf("IVA %s%%", t.Rate.Shift(2).String()), Money(t.Tax))
	pair(b, "TOTAL", Money(t.Total))
	return nil
}

func textPayment(b *strings.Builder, payment string) error {
	pair(b, "Forma de pago", payment)
	rule(b, '=')
	return nil
}

// textFooter always closes the ticket, with or without a footer text.
func textFooter(b *strings.Builder, footer string) error {
	b.WriteByte('\n')
	if footer != "" {
		center(b, footer)
	}
	rule(b, '-')
	return nil
}

func center(b *strings.Builder, s string) {
	s = clip(s, TextWidth)
	pad := (TextWidth - utf8.RuneCountInString(s)) / 2
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s)
	b.WriteByte('\n')
}

func pair(b *strings.Builder, left, right string) {
	gap := TextWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')
}

func rule(b *strings.Builder, c rune) {
	b.WriteString(strings.Repeat(string(c), TextWidth))
	b.WriteByte('\n')
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
