package mapper

import (
	"RestoPos/internal/domain"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	DefaultTableCapacity = 4
	DefaultPartySize     = 1
	DefaultLineQuantity  = 1
)

type identity struct {
	ID int
}

func (i identity) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required, validation.Min(1)),
	)
}

// parseObject validates raw as a JSON object.
func parseObject(entity string, raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, errors.Errorf("%s: invalid json", entity)
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return gjson.Result{}, errors.Errorf("%s: expected json object, got %s", entity, obj.Type)
	}
	return obj, nil
}

// parseArray accepts a JSON array or an object wrapping it under a common
// envelope key.
func parseArray(entity string, raw []byte) ([]gjson.Result, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.Errorf("%s: invalid json", entity)
	}
	v := gjson.ParseBytes(raw)
	if v.IsObject() {
		for _, key := range []string{"content", "data", "items"} {
			if inner := v.Get(key); inner.IsArray() {
				v = inner
				break
			}
		}
	}
	if !v.IsArray() {
		return nil, errors.Errorf("%s: expected json array, got %s", entity, v.Type)
	}
	return v.Array(), nil
}

func requireID(entity string, r *reader) (int, error) {
	id := identity{ID: r.intOr(0, "id")}
	if err := id.Validate(); err != nil {
		return 0, &ValidationError{Entity: entity, Err: err}
	}
	return id.ID, nil
}

// mapList applies one object mapper to every element, skipping and reporting
// elements that fail validation.
func mapList[T any](entity string, raw []byte, one func(gjson.Result, *Report) (T, error)) ([]T, *Report, error) {
	rep := &Report{Entity: entity}
	items, err := parseArray(entity, raw)
	if err != nil {
		return nil, rep, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := one(item, rep)
		if err != nil {
			rep.skip(errors.Wrapf(err, "%s[%d]", entity, i))
			continue
		}
		out = append(out, v)
	}
	rep.Log()
	return out, rep, nil
}

func mapOne[T any](entity string, raw []byte, one func(gjson.Result, *Report) (T, error)) (T, *Report, error) {
	rep := &Report{Entity: entity}
	var zero T
	obj, err := parseObject(entity, raw)
	if err != nil {
		return zero, rep, err
	}
	v, err := one(obj, rep)
	rep.Log()
	if err != nil {
		return zero, rep, err
	}
	return v, rep, nil
}

func tableFrom(obj gjson.Result, rep *Report) (domain.Table, error) {
	r := newReader(obj, rep)
	id, err := requireID("table", r)
	if err != nil {
		return domain.Table{}, err
	}
	t := domain.Table{
		ID:       id,
		Number:   r.intOr(0, "numero", "number"),
		Capacity: r.intOr(DefaultTableCapacity, "capacidad", "capacity"),
		Location: r.text("ubicacion", "location"),
	}
	raw := r.text("estado", "state")
	state, ok := domain.ParseTableState(raw)
	if !ok {
		rep.add("estado", fmt.Sprintf("unknown table state %q", raw), state)
	}
	t.State = state
	return t, nil
}

func Table(raw []byte) (domain.Table, *Report, error) {
	return mapOne("table", raw, tableFrom)
}

func Tables(raw []byte) ([]domain.Table, *Report, error) {
	return mapList("table", raw, tableFrom)
}

func productFrom(obj gjson.Result, rep *Report) (domain.Product, error) {
	r := newReader(obj, rep)
	id, err := requireID("product", r)
	if err != nil {
		return domain.Product{}, err
	}
	price, _ := r.floatOr(0, "precio", "price")
	p := domain.Product{
		ID:          id,
		Name:        r.text("nombre", "name"),
		Description: r.text("descripcion", "description"),
		Price:       price,
		CategoryID:  r.intOr(0, "categoriaId", "categoria.id", "categoryId"),
		Available:   r.boolOr(true, "disponible", "available"),
		ImageRef:    r.text("imagenUrl", "imagen", "imageUrl"),
	}
	raw := r.text("tipo", "type")
	typ, ok := domain.ParseProductType(raw)
	if !ok {
		rep.add("tipo", fmt.Sprintf("unknown product type %q", raw), typ)
	}
	p.Type = typ
	return p, nil
}

func Product(raw []byte) (domain.Product, *Report, error) {
	return mapOne("product", raw, productFrom)
}

func Products(raw []byte) ([]domain.Product, *Report, error) {
	return mapList("product", raw, productFrom)
}

func categoryFrom(obj gjson.Result, rep *Report) (domain.Category, error) {
	r := newReader(obj, rep)
	id, err := requireID("category", r)
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{
		ID:          id,
		Name:        r.text("nombre", "name"),
		Description: r.text("descripcion", "description"),
	}, nil
}

func Category(raw []byte) (domain.Category, *Report, error) {
	return mapOne("category", raw, categoryFrom)
}

func Categories(raw []byte) ([]domain.Category, *Report, error) {
	return mapList("category", raw, categoryFrom)
}

func orderLineFrom(obj gjson.Result, rep *Report) (domain.OrderLine, error) {
	r := newReader(obj, rep)
	id, err := requireID("order line", r)
	if err != nil {
		return domain.OrderLine{}, err
	}
	l := domain.OrderLine{
		ID:        id,
		OrderID:   r.intOr(0, "pedidoId", "pedido.id", "orderId"),
		ProductID: r.intOr(0, "productoId", "producto.id", "productId"),
		Quantity:  r.intOr(DefaultLineQuantity, "cantidad", "quantity"),
		Notes:     r.text("notas", "observaciones", "notes"),
	}
	raw := r.text("estado", "state")
	state, ok := domain.ParseOrderState(raw)
	if !ok {
		rep.add("estado", fmt.Sprintf("unknown line state %q", raw), state)
	}
	l.State = state

	if p := obj.Get("producto"); p.IsObject() {
		product, err := productFrom(p, rep)
		if err != nil {
			rep.skip(errors.Wrapf(err, "order line %d product", id))
		} else {
			l.Product = &product
			if l.ProductID == 0 {
				l.ProductID = product.ID
			}
		}
	}
	return l, nil
}

func OrderLine(raw []byte) (domain.OrderLine, *Report, error) {
	return mapOne("order line", raw, orderLineFrom)
}

func OrderLines(raw []byte) ([]domain.OrderLine, *Report, error) {
	return mapList("order line", raw, orderLineFrom)
}

func orderFrom(obj gjson.Result, rep *Report) (domain.Order, error) {
	r := newReader(obj, rep)
	id, err := requireID("order", r)
	if err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		ID:        id,
		TableID:   r.optInt("mesaId", "mesa.id", "tableId"),
		WaiterID:  r.intOr(domain.NoUser, "camareroId", "camarero.id", "usuarioId", "waiterId"),
		Notes:     r.text("notas", "observaciones", "notes"),
		CreatedAt: r.timeOr("fechaCreacion", "fecha", "createdAt"),
	}
	raw := r.text("estado", "state")
	state, ok := domain.ParseOrderState(raw)
	if !ok {
		rep.add("estado", fmt.Sprintf("unknown order state %q", raw), state)
	}
	o.State = state

	lines, _, _ := r.lookup("detalles", "lineas", "items")
	for i, item := range lines.Array() {
		l, err := orderLineFrom(item, rep)
		if err != nil {
			rep.skip(errors.Wrapf(err, "order %d line %d", id, i))
			continue
		}
		if l.OrderID == 0 {
			l.OrderID = id
		}
		o.Lines = append(o.Lines, l)
	}

	total, ok := r.floatOr(0, "total")
	if !ok {
		total = o.LinesTotal()
	}
	o.Total = total
	return o, nil
}

func Order(raw []byte) (domain.Order, *Report, error) {
	return mapOne("order", raw, orderFrom)
}

func Orders(raw []byte) ([]domain.Order, *Report, error) {
	return mapList("order", raw, orderFrom)
}

func reservationFrom(obj gjson.Result, rep *Report) (domain.Reservation, error) {
	r := newReader(obj, rep)
	id, err := requireID("reservation", r)
	if err != nil {
		return domain.Reservation{}, err
	}
	res := domain.Reservation{
		ID:            id,
		TableID:       r.intOr(0, "mesaId", "mesa.id", "tableId"),
		CustomerName:  r.text("nombreCliente", "cliente", "customerName"),
		CustomerPhone: r.text("telefonoCliente", "telefono", "customerPhone"),
		Date:          r.timeOr("fecha", "date"),
		Time:          r.text("hora", "time"),
		PartySize:     r.intOr(DefaultPartySize, "numeroPersonas", "personas", "partySize"),
		Notes:         r.text("notas", "observaciones", "notes"),
	}
	raw := r.text("estado", "state")
	state, ok := domain.ParseReservationState(raw)
	if !ok {
		rep.add("estado", fmt.Sprintf("unknown reservation state %q", raw), state)
	}
	res.State = state
	return res, nil
}

func Reservation(raw []byte) (domain.Reservation, *Report, error) {
	return mapOne("reservation", raw, reservationFrom)
}

func Reservations(raw []byte) ([]domain.Reservation, *Report, error) {
	return mapList("reservation", raw, reservationFrom)
}

func userFrom(obj gjson.Result, rep *Report) (domain.User, error) {
	r := newReader(obj, rep)
	id, err := requireID("user", r)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:        id,
		Username:  r.text("username", "usuario"),
		Email:     r.text("email", "correo"),
		FirstName: r.text("nombre", "firstName"),
		LastName:  r.text("apellido", "apellidos", "lastName"),
		Active:    r.boolOr(true, "activo", "active"),
		CreatedAt: r.timeOr("fechaCreacion", "createdAt"),
	}
	raw := r.text("rol", "role")
	u.Role = domain.ParseRole(raw)
	if u.Role == domain.RoleUnknown {
		rep.add("rol", fmt.Sprintf("unknown role %q", raw), u.Role)
	}
	return u, nil
}

func User(raw []byte) (domain.User, *Report, error) {
	return mapOne("user", raw, userFrom)
}

func Users(raw []byte) ([]domain.User, *Report, error) {
	return mapList("user", raw, userFrom)
}

// Login is the identity carried by a login response. UserID is
// domain.NoUser when the backend only returns the token.
type Login struct {
	Token    string
	UserID   int
	UserName string
	Role     string
}

func (l Login) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Token, validation.Required),
	)
}

func LoginResponse(raw []byte) (Login, *Report, error) {
	rep := &Report{Entity: "login"}
	obj, err := parseObject("login", raw)
	if err != nil {
		return Login{}, rep, err
	}
	r := newReader(obj, rep)
	l := Login{
		Token:    r.text("token", "accessToken", "jwt"),
		UserName: r.text("nombre", "usuario.nombre", "username", "usuario.username"),
		Role:     r.text("rol", "usuario.rol", "role"),
	}
	if id := r.optInt("id", "usuarioId", "usuario.id", "userId"); id != nil {
		l.UserID = *id
	} else {
		l.UserID = domain.NoUser
	}
	rep.Log()
	if err := l.Validate(); err != nil {
		return Login{}, rep, &ValidationError{Entity: "login", Err: err}
	}
	return l, rep, nil
}

func BillSummary(raw []byte) (domain.BillSummary, *Report, error) {
	rep := &Report{Entity: "bill summary"}
	obj, err := parseObject("bill summary", raw)
	if err != nil {
		return domain.BillSummary{}, rep, err
	}
	r := newReader(obj, rep)
	total, _ := r.floatOr(0, "totalVentas", "total")
	s := domain.BillSummary{
		Count:           r.intOr(0, "totalCuentas", "cantidad", "count"),
		Total:           total,
		ByPaymentMethod: map[string]float64{},
	}
	methods, _, _ := r.lookup("porMetodoPago", "metodosPago")
	methods.ForEach(func(key, value gjson.Result) bool {
		if f, ok := toFloat(value); ok {
			s.ByPaymentMethod[key.String()] = f
		} else {
			rep.add("porMetodoPago."+key.String(), "not a number", 0)
		}
		return true
	})
	rep.Log()
	return s, rep, nil
}
