package mapper

import (
	"RestoPos/internal/domain"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Request bodies sent to the backend. Each validates itself before the
// client builds a request.

const DateLayout = "2006-01-02"

var (
	hourRe  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)
)

type LoginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b LoginBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Username, validation.Required),
		validation.Field(&b.Password, validation.Required),
	)
}

type StateBody struct {
	Estado string `json:"estado"`
}

func (b StateBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Estado, validation.Required),
	)
}

type TableBody struct {
	Numero    int    `json:"numero"`
	Capacidad int    `json:"capacidad"`
	Estado    string `json:"estado"`
	Ubicacion string `json:"ubicacion"`
}

func (b TableBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Numero, validation.Required, validation.Min(1)),
		validation.Field(&b.Capacidad, validation.Required, validation.Min(1)),
		validation.Field(&b.Estado, validation.In(
			string(domain.TableFree), string(domain.TableOccupied),
			string(domain.TableReserved), string(domain.TableMaintenance))),
	)
}

func TableToBody(t domain.Table) TableBody {
	state := t.State
	if state == "" {
		state = domain.TableFree
	}
	return TableBody{
		Numero:    t.Number,
		Capacidad: t.Capacity,
		Estado:    string(state),
		Ubicacion: t.Location,
	}
}

type OrderLineBody struct {
	ProductoID int    `json:"productoId"`
	Cantidad   int    `json:"cantidad"`
	Notas      string `json:"notas,omitempty"`
	Estado     string `json:"estado,omitempty"`
}

func (b OrderLineBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ProductoID, validation.Required, validation.Min(1)),
		validation.Field(&b.Cantidad, validation.Required, validation.Min(1)),
	)
}

func OrderLineToBody(l domain.OrderLine) OrderLineBody {
	return OrderLineBody{
		ProductoID: l.ProductID,
		Cantidad:   l.Quantity,
		Notas:      l.Notes,
		Estado:     string(l.State),
	}
}

type OrderBody struct {
	MesaID     *int            `json:"mesaId,omitempty"`
	CamareroID int             `json:"camareroId"`
	Estado     string          `json:"estado"`
	Notas      string          `json:"notas,omitempty"`
	Detalles   []OrderLineBody `json:"detalles,omitempty"`
}

func (b OrderBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.CamareroID, validation.Required, validation.Min(1)),
		validation.Field(&b.Estado, validation.Required),
		validation.Field(&b.Detalles),
	)
}

func OrderToBody(o domain.Order) OrderBody {
	state := o.State
	if state == "" {
		state = domain.OrderReceived
	}
	b := OrderBody{
		MesaID:     o.TableID,
		CamareroID: o.WaiterID,
		Estado:     string(state),
		Notas:      o.Notes,
	}
	for _, l := range o.Lines {
		b.Detalles = append(b.Detalles, OrderLineToBody(l))
	}
	return b
}

type ProductBody struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Tipo        string  `json:"tipo"`
	CategoriaID int     `json:"categoriaId"`
	Disponible  bool    `json:"disponible"`
	ImagenURL   string  `json:"imagenUrl,omitempty"`
}

func (b ProductBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Nombre, validation.Required, validation.Length(1, 120)),
		validation.Field(&b.Precio, validation.Min(0.0)),
		validation.Field(&b.Tipo, validation.Required),
		validation.Field(&b.CategoriaID, validation.Required, validation.Min(1)),
	)
}

func ProductToBody(p domain.Product) ProductBody {
	typ := p.Type
	if typ == "" {
		typ = domain.ProductFood
	}
	return ProductBody{
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		Tipo:        string(typ),
		CategoriaID: p.CategoryID,
		Disponible:  p.Available,
		ImagenURL:   p.ImageRef,
	}
}

type CategoryBody struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (b CategoryBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Nombre, validation.Required, validation.Length(1, 80)),
	)
}

func CategoryToBody(c domain.Category) CategoryBody {
	return CategoryBody{Nombre: c.Name, Descripcion: c.Description}
}

type ReservationBody struct {
	MesaID          int    `json:"mesaId"`
	NombreCliente   string `json:"nombreCliente"`
	TelefonoCliente string `json:"telefonoCliente"`
	Fecha           string `json:"fecha"`
	Hora            string `json:"hora"`
	NumeroPersonas  int    `json:"numeroPersonas"`
	Notas           string `json:"notas,omitempty"`
	Estado          string `json:"estado"`
}

func (b ReservationBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.MesaID, validation.Required, validation.Min(1)),
		validation.Field(&b.NombreCliente, validation.Required),
		validation.Field(&b.TelefonoCliente, validation.Required, validation.Match(phoneRe)),
		validation.Field(&b.Fecha, validation.Required, validation.Date(DateLayout)),
		validation.Field(&b.Hora, validation.Required, validation.Match(hourRe)),
		validation.Field(&b.NumeroPersonas, validation.Required, validation.Min(1)),
	)
}

func ReservationToBody(r domain.Reservation) ReservationBody {
	state := r.State
	if state == "" {
		state = domain.ReservationPending
	}
	var date string
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	return ReservationBody{
		MesaID:          r.TableID,
		NombreCliente:   r.CustomerName,
		TelefonoCliente: r.CustomerPhone,
		Fecha:           date,
		Hora:            r.Time,
		NumeroPersonas:  r.PartySize,
		Notas:           r.Notes,
		Estado:          string(state),
	}
}

type UserBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
}

func (b UserBody) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&b.Email, validation.Required, is.EmailFormat),
		validation.Field(&b.Rol, validation.Required, validation.In(
			string(domain.RoleAdmin), string(domain.RoleWaiter), string(domain.RoleCook))),
	)
}

// UserToBody leaves Password empty; callers set it on create or reset.
func UserToBody(u domain.User) UserBody {
	return UserBody{
		Username: u.Username,
		Email:    u.Email,
		Nombre:   u.FirstName,
		Apellido: u.LastName,
		Rol:      string(u.Role),
		Activo:   u.Active,
	}
}
