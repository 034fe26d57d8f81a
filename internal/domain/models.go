package domain

import "time"

// NoUser marks an absent user id in the session and in optional references.
const NoUser = -1

type Table struct {
	ID       int
	Number   int
	Capacity int
	State    TableState
	Location string
}

func (t Table) Key() int { return t.ID }

type Order struct {
	ID        int
	TableID   *int
	WaiterID  int
	State     OrderState
	Notes     string
	CreatedAt time.Time
	Lines     []OrderLine
	Total     float64
}

func (o Order) Key() int { return o.ID }

// LinesTotal sums quantity*price of the lines that carry a product.
func (o Order) LinesTotal() float64 {
	var total float64
	for _, l := range o.Lines {
		if l.Product != nil {
			total += float64(l.Quantity) * l.Product.Price
		}
	}
	return total
}

type OrderLine struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	Notes     string
	State     OrderState
	Product   *Product
}

func (l OrderLine) Key() int { return l.ID }

type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Type        ProductType
	CategoryID  int
	Available   bool
	ImageRef    string
}

func (p Product) Key() int { return p.ID }

type Category struct {
	ID          int
	Name        string
	Description string
}

func (c Category) Key() int { return c.ID }

type Reservation struct {
	ID            int
	TableID       int
	CustomerName  string
	CustomerPhone string
	Date          time.Time
	Time          string
	PartySize     int
	Notes         string
	State         ReservationState
}

func (r Reservation) Key() int { return r.ID }

type Bill struct {
	ID            int
	TableID       *int
	TableNumber   int
	WaiterID      *int
	WaiterName    string
	PaidAt        time.Time
	Total         float64
	PaymentMethod string
	Lines         []BillLine
}

func (b Bill) Key() int { return b.ID }

type BillLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

type BillSummary struct {
	Count           int
	Total           float64
	ByPaymentMethod map[string]float64
}

type User struct {
	ID        int
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

func (u User) Key() int { return u.ID }

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
