package mapper

import (
	"RestoPos/internal/domain"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type billLineFields struct {
	Name     string
	Quantity *int
}

func (f billLineFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Quantity, validation.NotNil),
	)
}

// billLineItems normalises the three shapes the backend uses for bill lines:
// a JSON array, a string holding a JSON array (or object), or one object.
func billLineItems(v gjson.Result) []gjson.Result {
	switch {
	case v.IsArray():
		return v.Array()
	case v.IsObject():
		return []gjson.Result{v}
	case v.Type == gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" || !gjson.Valid(s) {
			return nil
		}
		return billLineItems(gjson.Parse(s))
	default:
		return nil
	}
}

func billLineFrom(obj gjson.Result, rep *Report) (domain.BillLine, error) {
	r := newReader(obj, rep)
	name, _ := r.requiredText("nombre", "productoNombre", "producto.nombre", "nombreProducto", "name")
	fields := billLineFields{
		Name:     name,
		Quantity: r.optInt("cantidad", "quantity"),
	}
	if err := fields.Validate(); err != nil {
		return domain.BillLine{}, &ValidationError{Entity: "bill line", Err: err}
	}

	l := domain.BillLine{
		Name:     fields.Name,
		Quantity: *fields.Quantity,
	}
	l.UnitPrice, _ = r.floatOr(0, "precioUnitario", "precio", "producto.precio", "unitPrice")
	subtotal, ok := r.floatOr(0, "subtotal")
	if !ok {
		subtotal = float64(l.Quantity) * l.UnitPrice
	}
	l.Subtotal = subtotal
	return l, nil
}

func billFrom(obj gjson.Result, rep *Report) (domain.Bill, error) {
	r := newReader(obj, rep)
	id, err := requireID("bill", r)
	if err != nil {
		return domain.Bill{}, err
	}
	b := domain.Bill{
		ID:            id,
		TableID:       r.optInt("mesaId", "mesa.id", "tableId"),
		TableNumber:   r.intOr(0, "numeroMesa", "mesa.numero", "tableNumber"),
		WaiterID:      r.optInt("camareroId", "camarero.id", "waiterId"),
		WaiterName:    r.text("nombreCamarero", "camarero.nombre", "waiterName"),
		PaidAt:        r.timeOr("fechaPago", "fecha", "paidAt"),
		PaymentMethod: r.text("metodoPago", "paymentMethod"),
	}

	items, _, _ := r.lookup("detalles", "lineas", "items")
	for i, item := range billLineItems(items) {
		l, err := billLineFrom(item, rep)
		if err != nil {
			rep.skip(errors.Wrapf(err, "bill %d line %d", id, i))
			continue
		}
		b.Lines = append(b.Lines, l)
	}

	total, ok := r.floatOr(0, "total")
	if !ok {
		for _, l := range b.Lines {
			total += l.Subtotal
		}
	}
	b.Total = total
	return b, nil
}

func Bill(raw []byte) (domain.Bill, *Report, error) {
	return mapOne("bill", raw, billFrom)
}

func Bills(raw []byte) ([]domain.Bill, *Report, error) {
	return mapList("bill", raw, billFrom)
}
