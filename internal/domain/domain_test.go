package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTableState(t *testing.T) {
	Assert := assert.New(t)

	for in, want := range map[string]TableState{
		"libre":         TableFree,
		"OCUPADA":       TableOccupied,
		" Reservada ":   TableReserved,
		"MANTENIMIENTO": TableMaintenance,
	} {
		got, ok := ParseTableState(in)
		Assert.True(ok, in)
		Assert.Equal(want, got, in)
	}

	for _, in := range []string{"", "free", "cerrada", "ocupado", "null"} {
		got, ok := ParseTableState(in)
		Assert.False(ok, in)
		Assert.Equal(TableFree, got, in)
	}
}

func TestParseOrderState(t *testing.T) {
	Assert := assert.New(t)

	got, ok := ParseOrderState("EN_PREPARACION")
	Assert.True(ok)
	Assert.Equal(OrderInPreparation, got)

	got, ok = ParseOrderState("en preparacion")
	Assert.True(ok)
	Assert.Equal(OrderInPreparation, got)

	got, ok = ParseOrderState("pagado")
	Assert.False(ok)
	Assert.Equal(OrderReceived, got)
}

func TestParseProductTypeAndRole(t *testing.T) {
	Assert := assert.New(t)

	got, ok := ParseProductType("ACOMPAÑAMIENTO")
	Assert.True(ok)
	Assert.Equal(ProductSide, got)

	_, ok = ParseProductType("vino")
	Assert.False(ok)

	Assert.Equal(RoleAdmin, ParseRole("ROLE_ADMIN"))
	Assert.Equal(RoleWaiter, ParseRole("Camarero"))
	Assert.Equal(RoleCook, ParseRole("COCINERO"))
	Assert.Equal(RoleUnknown, ParseRole("cliente"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderState
		to      OrderState
		role    Role
		allowed bool
	}{
		{"cook starts", OrderReceived, OrderInPreparation, RoleCook, true},
		{"cook finishes", OrderInPreparation, OrderReady, RoleCook, true},
		{"cook cannot deliver", OrderReady, OrderDelivered, RoleCook, false},
		{"waiter delivers", OrderReady, OrderDelivered, RoleWaiter, true},
		{"waiter cannot cook", OrderReceived, OrderInPreparation, RoleWaiter, false},
		{"admin any edge", OrderReady, OrderDelivered, RoleAdmin, true},
		{"no skipping", OrderReceived, OrderReady, RoleAdmin, false},
		{"no going back", OrderReady, OrderInPreparation, RoleAdmin, false},
		{"cancel open order", OrderInPreparation, OrderCancelled, RoleWaiter, true},
		{"cook cannot cancel", OrderReceived, OrderCancelled, RoleCook, false},
		{"terminal stays", OrderDelivered, OrderCancelled, RoleAdmin, false},
		{"cancelled stays", OrderCancelled, OrderReceived, RoleAdmin, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CanTransition(c.from, c.to, c.role)
			if c.allowed {
				assert.NoError(t, err)
			} else {
				var te *ErrTransition
				assert.ErrorAs(t, err, &te)
			}
		})
	}
}

func TestPermissionsFor(t *testing.T) {
	Assert := assert.New(t)

	Assert.True(PermissionsFor(RoleAdmin).ManageUsers)
	Assert.False(PermissionsFor(RoleWaiter).ManageUsers)
	Assert.True(PermissionsFor(RoleWaiter).CloseTables)
	Assert.True(PermissionsFor(RoleCook).KitchenBoard)
	Assert.False(PermissionsFor(RoleCook).TakeOrders)
	Assert.Equal(Permissions{}, PermissionsFor(RoleUnknown))
}

func TestOrderLinesTotal(t *testing.T) {
	o := Order{Lines: []OrderLine{
		{Quantity: 2, Product: &Product{Price: 3.5}},
		{Quantity: 1},
		{Quantity: 3, Product: &Product{Price: 1}},
	}}
	assert.InDelta(t, 10.0, o.LinesTotal(), 1e-9)
}
