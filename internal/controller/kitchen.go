package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"context"
	"sort"

	"github.com/pkg/errors"
)

// Kitchen is the cooks' board: open orders only, oldest first.
type Kitchen struct {
	*base[[]domain.Order]
}

func NewKitchen(api posapi.POSAPI, s *session.Store) *Kitchen {
	return &Kitchen{newBase[[]domain.Order]("Kitchen", api, s, nil)}
}

func (c *Kitchen) Load(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Order, error) {
		orders, err := c.api.OrderList(ctx, token)
		if err != nil {
			return nil, err
		}
		orders = filterOrders(orders, func(o domain.Order) bool { return !o.State.Terminal() })
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
		return orders, nil
	})
}

func (c *Kitchen) Advance(ctx context.Context, o domain.Order) error {
	err := c.mutate(ctx, "Advance", func(ctx context.Context, token string) error {
		return advanceOrder(ctx, c.api, token, c.role(), o)
	})
	return reload(ctx, err, c.Load)
}

// AdvanceLine moves a single line of an order one step forward.
func (c *Kitchen) AdvanceLine(ctx context.Context, orderID int, l domain.OrderLine) error {
	err := c.mutate(ctx, "AdvanceLine", func(ctx context.Context, token string) error {
		role := c.role()
		next, ok := domain.NextOrderState(l.State)
		if !ok {
			return &domain.ErrTransition{From: l.State, To: l.State, Role: role}
		}
		if err := domain.CanTransition(l.State, next, role); err != nil {
			return err
		}
		if _, err := c.api.OrderLineSetState(ctx, token, orderID, l.ID, next); err != nil {
			return errors.Wrapf(err, "order %d line %d", orderID, l.ID)
		}
		return nil
	})
	return reload(ctx, err, c.Load)
}
