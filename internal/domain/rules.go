package domain

import "fmt"

type ErrTransition struct {
	From OrderState
	To   OrderState
	Role Role
}

func (e *ErrTransition) Error() string {
	return fmt.Sprintf("transition %s -> %s not allowed for role %q", e.From, e.To, e.Role)
}

var orderEdges = map[OrderState]OrderState{
	OrderReceived:      OrderInPreparation,
	OrderInPreparation: OrderReady,
	OrderReady:         OrderDelivered,
}

// NextOrderState returns the forward successor of s, false for terminal states.
func NextOrderState(s OrderState) (OrderState, bool) {
	next, ok := orderEdges[s]
	return next, ok
}

// CanTransition checks the order/line state machine together with the role
// gate: cooks move RECEIVED->IN_PREPARATION->READY, waiters READY->DELIVERED,
// admins any legal edge; cancelling a non-terminal order is open to admins
// and waiters.
func CanTransition(from, to OrderState, role Role) error {
	if from.Terminal() || from == to {
		return &ErrTransition{From: from, To: to, Role: role}
	}

	if to == OrderCancelled {
		if role == RoleAdmin || role == RoleWaiter {
			return nil
		}
		return &ErrTransition{From: from, To: to, Role: role}
	}

	if next, ok := orderEdges[from]; !ok || next != to {
		return &ErrTransition{From: from, To: to, Role: role}
	}

	switch role {
	case RoleAdmin:
		return nil
	case RoleCook:
		if to == OrderInPreparation || to == OrderReady {
			return nil
		}
	case RoleWaiter:
		if to == OrderDelivered {
			return nil
		}
	}
	return &ErrTransition{From: from, To: to, Role: role}
}

// Permissions are UI affordances derived from the session role, the backend
// stays the authority.
type Permissions struct {
	ManageUsers        bool
	ManageCatalog      bool
	ManageTables       bool
	TakeOrders         bool
	KitchenBoard       bool
	CloseTables        bool
	ManageReservations bool
	ViewBills          bool
}

func PermissionsFor(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			ManageUsers:        true,
			ManageCatalog:      true,
			ManageTables:       true,
			TakeOrders:         true,
			KitchenBoard:       true,
			CloseTables:        true,
			ManageReservations: true,
			ViewBills:          true,
		}
	case RoleWaiter:
		return Permissions{
			TakeOrders:         true,
			CloseTables:        true,
			ManageReservations: true,
			ViewBills:          true,
		}
	case RoleCook:
		return Permissions{KitchenBoard: true}
	default:
		return Permissions{}
	}
}
