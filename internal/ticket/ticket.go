package ticket

import (
	"RestoPos/internal/domain"
	"RestoPos/pkg/logging"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TaxRate is the VAT included in every bill total.
var TaxRate = decimal.RequireFromString("0.21")

// Options is the restaurant identity printed on every ticket.
type Options struct {
	Name    string
	Address string
	Phone   string
	CIF     string
	Logo    string
	Footer  string
	Cashier string
}

type Header struct {
	Name    string
	Address string
	Phone   string
	CIF     string
	Logo    string
}

type Meta struct {
	Number  string
	Date    time.Time
	Table   string
	Cashier string
}

type Item struct {
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Totals splits the total into base and tax, both rounded to cents, with
// Base+Tax == Total.
type Totals struct {
	Base  decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
	Rate  decimal.Decimal
}

type Document struct {
	Header  Header
	Meta    Meta
	Items   []Item
	Totals  Totals
	Payment string
	Footer  string
}

func Build(bill domain.Bill, opts Options) Document {
	doc := Document{
		Header: Header{
			Name:    opts.Name,
			Address: opts.Address,
			Phone:   opts.Phone,
			CIF:     opts.CIF,
			Logo:    opts.Logo,
		},
		Meta: Meta{
			Number:  fmt.Sprintf("%06d", bill.ID),
			Date:    bill.PaidAt,
			Table:   tableLabel(bill),
			Cashier: firstNonEmpty(bill.WaiterName, opts.Cashier, "-"),
		},
		Items:   make([]Item, 0, len(bill.Lines)),
		Totals:  Split(decimal.NewFromFloat(bill.Total)),
		Payment: paymentLabel(bill.PaymentMethod),
		Footer:  opts.Footer,
	}
	for _, l := range bill.Lines {
		doc.Items = append(doc.Items, Item{
			Quantity:  l.Quantity,
			Name:      l.Name,
			UnitPrice: decimal.NewFromFloat(l.UnitPrice),
			Subtotal:  decimal.NewFromFloat(l.Subtotal),
		})
	}
	return doc
}

// Split backs the tax out of a tax-included total: base = total/(1+rate).
func Split(total decimal.Decimal) Totals {
	total = total.Round(2)
	base := total.Div(decimal.NewFromInt(1).Add(TaxRate)).Round(2)
	return Totals{
		Base:  base,
		Tax:   total.Sub(base),
		Total: total,
		Rate:  TaxRate,
	}
}

// Money formats d the Spanish way, "1234,50 €".
func Money(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + " €"
}

func tableLabel(bill domain.Bill) string {
	switch {
	case bill.TableNumber > 0:
		return strconv.Itoa(bill.TableNumber)
	case bill.TableID != nil:
		return strconv.Itoa(*bill.TableID)
	default:
		return "-"
	}
}

func paymentLabel(method string) string {
	m := strings.TrimSpace(method)
	switch strings.ToLower(m) {
	case "":
		return "No indicado"
	case "efectivo", "cash":
		return "Efectivo"
	case "tarjeta", "card":
		return "Tarjeta"
	case "bizum":
		return "Bizum"
	default:
		r, size := utf8.DecodeRuneInString(m)
		return string(unicode.ToUpper(r)) + strings.ToLower(m[size:])
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type step struct {
	name string
	draw func() error
}

// runSteps draws every section on its own: an error or a panic in one is
// logged and the next section still runs.
func runSteps(steps []step) []error {
	logger := logging.GetLogger()
	var failed []error
	for _, s := range steps {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("panic: %v", r)
				}
			}()
			return s.draw()
		}()
		if err != nil {
			err = errors.Wrapf(err, "ticket section %s", s.name)
			logger.Errorf("Ticket:> %v", err)
			failed = append(failed, err)
		}
	}
	return failed
}
