package ticket

import (
	"RestoPos/internal/domain"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opts = Options{
	Name:    "Casa Pepe",
	Address: "Calle Mayor 1, Madrid",
	Phone:   "910 000 000",
	CIF:     "B12345678",
	Footer:  "¡Gracias por su visita!",
}

func sampleBill() domain.Bill {
	table := 3
	return domain.Bill{
		ID:            42,
		TableID:       &table,
		WaiterName:    "Ana",
		PaidAt:        time.Date(2024, 5, 1, 21, 30, 0, 0, time.UTC),
		Total:         30.25,
		PaymentMethod: "tarjeta",
		Lines: []domain.BillLine{
			{Name: "Caña", Quantity: 2, UnitPrice: 2.5, Subtotal: 5},
			{Name: "Entrecot de ternera a la brasa", Quantity: 1, UnitPrice: 25.25, Subtotal: 25.25},
		},
	}
}

func TestSplitAddsUp(t *testing.T) {
	for _, total := range []float64{0, 0.01, 1, 12.1, 30.25, 99.99, 1234.56, 100000} {
		tt := Split(decimal.NewFromFloat(total))
		assert.True(t, tt.Base.Add(tt.Tax).Equal(tt.Total), "total %v", total)

		exact := decimal.NewFromFloat(total).Div(decimal.RequireFromString("1.21"))
		assert.True(t, tt.Base.Sub(exact).Abs().LessThanOrEqual(decimal.RequireFromString("0.005")), "total %v", total)
	}

	tt := Split(decimal.RequireFromString("12.10"))
	assert.Equal(t, "10.00", tt.Base.StringFixed(2))
	assert.Equal(t, "2.10", tt.Tax.StringFixed(2))
}

func TestBuild(t *testing.T) {
	doc := Build(sampleBill(), opts)
	assert.Equal(t, "000042", doc.Meta.Number)
	assert.Equal(t, "3", doc.Meta.Table)
	assert.Equal(t, "Ana", doc.Meta.Cashier)
	assert.Equal(t, "Tarjeta", doc.Payment)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "25,25 €", Money(doc.Items[1].Subtotal))
	assert.Equal(t, "30,25 €", Money(doc.Totals.Total))

	bill := sampleBill()
	bill.TableNumber = 7
	bill.WaiterName = ""
	bill.PaymentMethod = ""
	doc = Build(bill, Options{Cashier: "Caja 1"})
	assert.Equal(t, "7", doc.Meta.Table)
	assert.Equal(t, "Caja 1", doc.Meta.Cashier)
	assert.Equal(t, "No indicado", doc.Payment)
}

func TestRenderTextHasEverySection(t *testing.T) {
	for _, lines := range [][]domain.BillLine{sampleBill().Lines, nil} {
		bill := sampleBill()
		bill.Lines = lines

		var buf bytes.Buffer
		require.NoError(t, RenderText(Build(bill, opts), &buf))
		out := buf.String()

		assert.Contains(t, out, "CASA PEPE")
		assert.Contains(t, out, "CIF: B12345678")
		assert.Contains(t, out, "Ticket: 000042")
		assert.Contains(t, out, "01/05/2024 21:30")
		assert.Contains(t, out, "CANT")
		assert.Contains(t, out, "Base imponible")
		assert.Contains(t, out, "IVA 21%")
		assert.Contains(t, out, "TOTAL")
		assert.Contains(t, out, "Tarjeta")
		assert.Contains(t, out, "¡Gracias por su visita!")

		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			assert.LessOrEqual(t, utf8.RuneCountInString(line), TextWidth, line)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("printer offline") }

func TestRenderTextWriterFailure(t *testing.T) {
	err := RenderText(Build(sampleBill(), opts), failingWriter{})
	assert.Error(t, err)
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(Build(sampleBill(), opts), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderPDFSurvivesBrokenLogo(t *testing.T) {
	missing := opts
	missing.Logo = filepath.Join(t.TempDir(), "nope.png")

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(Build(sampleBill(), missing), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	garbage := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	broken := opts
	broken.Logo = garbage

	buf.Reset()
	bill := sampleBill()
	bill.Lines = nil
	require.NoError(t, RenderPDF(Build(bill, broken), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRunStepsIsolatesFailures(t *testing.T) {
	var ran []string
	failed := runSteps([]step{
		{"a", func() error { ran = append(ran, "a"); return errors.New("bad") }},
		{"b", func() error { ran = append(ran, "b"); panic("worse") }},
		{"c", func() error { ran = append(ran, "c"); return nil }},
	})
	assert.Equal(t, []string{"a", "b", "c"}, ran)
	assert.Len(t, failed, 2)
}

func TestRenderTextClosesWithoutFooter(t *testing.T) {
	plain := opts
	plain.Footer = ""

	var buf bytes.Buffer
	require.NoError(t, RenderText(Build(sampleBill(), plain), &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, strings.Repeat("-", TextWidth), lines[len(lines)-1])

	buf.Reset()
	require.NoError(t, RenderPDF(Build(sampleBill(), plain), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPaymentLabelKeepsMultibyteInitial(t *testing.T) {
	assert.Equal(t, "Efectivo", paymentLabel(" EFECTIVO "))
	assert.Equal(t, "No indicado", paymentLabel(""))
	assert.Equal(t, "Éxito pay", paymentLabel("éxito PAY"))
	assert.True(t, utf8.ValidString(paymentLabel("ñ")))
	assert.Equal(t, "Ñ", paymentLabel("ñ"))
}
