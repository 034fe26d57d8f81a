package domain

import "strings"

type TableState string

const (
	TableFree        TableState = "libre"
	TableOccupied    TableState = "ocupada"
	TableReserved    TableState = "reservada"
	TableMaintenance TableState = "mantenimiento"
)

var tableStates = []TableState{TableFree, TableOccupied, TableReserved, TableMaintenance}

// ParseTableState is case-insensitive, unknown values map to TableFree.
func ParseTableState(s string) (TableState, bool) {
	for _, st := range tableStates {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return TableFree, false
}

func (s TableState) Label() string {
	switch s {
	case TableOccupied:
		return "Ocupada"
	case TableReserved:
		return "Reservada"
	case TableMaintenance:
		return "Mantenimiento"
	default:
		return "Libre"
	}
}

type OrderState string

const (
	OrderReceived      OrderState = "recibido"
	OrderInPreparation OrderState = "en_preparacion"
	OrderReady         OrderState = "listo"
	OrderDelivered     OrderState = "entregado"
	OrderCancelled     OrderState = "cancelado"
)

var orderStates = []OrderState{OrderReceived, OrderInPreparation, OrderReady, OrderDelivered, OrderCancelled}

// ParseOrderState accepts "EN_PREPARACION", "en preparacion" and
// "en-preparacion" alike. Unknown values map to OrderReceived.
func ParseOrderState(s string) (OrderState, bool) {
	n := normalize(s)
	for _, st := range orderStates {
		if n == string(st) {
			return st, true
		}
	}
	return OrderReceived, false
}

func (s OrderState) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

func (s OrderState) Label() string {
	switch s {
	case OrderInPreparation:
		return "En preparación"
	case OrderReady:
		return "Listo"
	case OrderDelivered:
		return "Entregado"
	case OrderCancelled:
		return "Cancelado"
	default:
		return "Recibido"
	}
}

type ProductType string

const (
	ProductFood    ProductType = "comida"
	ProductDrink   ProductType = "bebida"
	ProductDessert ProductType = "postre"
	ProductStarter ProductType = "entrante"
	ProductSide    ProductType = "acompanamiento"
)

var productTypes = []ProductType{ProductFood, ProductDrink, ProductDessert, ProductStarter, ProductSide}

func ParseProductType(s string) (ProductType, bool) {
	n := normalize(s)
	n = strings.ReplaceAll(n, "ñ", "n")
	for _, t := range productTypes {
		if n == string(t) {
			return t, true
		}
	}
	return ProductFood, false
}

type ReservationState string

const (
	ReservationPending         ReservationState = "pendiente"
	ReservationConfirmed       ReservationState = "confirmada"
	ReservationCancelled       ReservationState = "cancelada"
	ReservationCompleted       ReservationState = "completada"
	ReservationCustomerArrived ReservationState = "cliente_llego"
	ReservationNoShow          ReservationState = "no_show"
)

var reservationStates = []ReservationState{
	ReservationPending,
	ReservationConfirmed,
	ReservationCancelled,
	ReservationCompleted,
	ReservationCustomerArrived,
	ReservationNoShow,
}

func ParseReservationState(s string) (ReservationState, bool) {
	n := normalize(s)
	for _, st := range reservationStates {
		if n == string(st) {
			return st, true
		}
	}
	return ReservationPending, false
}

// Open reports whether the reservation still holds its table.
func (s ReservationState) Open() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCustomerArrived
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleWaiter  Role = "camarero"
	RoleCook    Role = "cocinero"
	RoleUnknown Role = ""
)

func ParseRole(s string) Role {
	n := normalize(s)
	n = strings.TrimPrefix(n, "role_")
	switch n {
	case "admin", "administrador":
		return RoleAdmin
	case "camarero", "waiter":
		return RoleWaiter
	case "cocinero", "cocina", "cook":
		return RoleCook
	default:
		return RoleUnknown
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
