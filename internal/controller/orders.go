package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi"
	"RestoPos/internal/posapi/options"
	"RestoPos/internal/session"
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Orders backs the order-taking screen: all orders, or those of one table.
type Orders struct {
	*base[[]domain.Order]

	filterMu sync.Mutex
	tableID  *int
	waiterID *int
}

func NewOrders(api posapi.POSAPI, s *session.Store) *Orders {
	return &Orders{base: newBase[[]domain.Order]("Orders", api, s, nil)}
}

// Load reloads with the current table filter, newest orders first.
func (c *Orders) Load(ctx context.Context) error {
	c.filterMu.Lock()
	tableID, waiterID := c.tableID, c.waiterID
	c.filterMu.Unlock()

	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Order, error) {
		var opts []options.Option
		if tableID != nil {
			opts = append(opts, options.Table(*tableID))
		}
		if waiterID != nil {
			opts = append(opts, options.Waiter(*waiterID))
		}
		orders, err := c.api.OrderList(ctx, token, opts...)
		if err != nil {
			return nil, err
		}
		if tableID != nil {
			orders = filterOrders(orders, func(o domain.Order) bool {
				return o.TableID == nil || *o.TableID == *tableID
			})
		}
		if waiterID != nil {
			orders = filterOrders(orders, func(o domain.Order) bool { return o.WaiterID == *waiterID })
		}
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
		return orders, nil
	})
}

func (c *Orders) LoadForTable(ctx context.Context, tableID int) error {
	c.filterMu.Lock()
	c.tableID = &tableID
	c.waiterID = nil
	c.filterMu.Unlock()
	return c.Load(ctx)
}

func (c *Orders) LoadAll(ctx context.Context) error {
	c.filterMu.Lock()
	c.tableID = nil
	c.waiterID = nil
	c.filterMu.Unlock()
	return c.Load(ctx)
}

// LoadMine shows the orders taken by the signed-in waiter.
func (c *Orders) LoadMine(ctx context.Context) error {
	waiterID := c.session.UserID()
	c.filterMu.Lock()
	c.tableID = nil
	c.waiterID = &waiterID
	c.filterMu.Unlock()
	return c.Load(ctx)
}

// Create opens an order for the signed-in waiter in state RECEIVED.
func (c *Orders) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	var created *domain.Order
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		if o.WaiterID <= 0 {
			o.WaiterID = c.session.UserID()
		}
		o.State = domain.OrderReceived
		var err error
		created, err = c.api.OrderAdd(ctx, token, mapper.OrderToBody(o))
		return err
	})
	return created, reload(ctx, err, c.Load)
}

func (c *Orders) Update(ctx context.Context, o domain.Order) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		_, err := c.api.OrderUpdate(ctx, token, o.ID, mapper.OrderToBody(o))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Orders) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.OrderDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}

func (c *Orders) AddLine(ctx context.Context, orderID int, l domain.OrderLine) error {
	err := c.mutate(ctx, "AddLine", func(ctx context.Context, token string) error {
		if l.State == "" {
			l.State = domain.OrderReceived
		}
		_, err := c.api.OrderLineAdd(ctx, token, orderID, mapper.OrderLineToBody(l))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Orders) UpdateLine(ctx context.Context, orderID int, l domain.OrderLine) error {
	err := c.mutate(ctx, "UpdateLine", func(ctx context.Context, token string) error {
		_, err := c.api.OrderLineUpdate(ctx, token, orderID, l.ID, mapper.OrderLineToBody(l))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Orders) RemoveLine(ctx context.Context, orderID, lineID int) error {
	err := c.mutate(ctx, "RemoveLine", func(ctx context.Context, token string) error {
		return c.api.OrderLineDelete(ctx, token, orderID, lineID)
	})
	return reload(ctx, err, c.Load)
}

// Advance moves the order one step forward if the session role allows it.
func (c *Orders) Advance(ctx context.Context, o domain.Order) error {
	err := c.mutate(ctx, "Advance", func(ctx context.Context, token string) error {
		return advanceOrder(ctx, c.api, token, c.role(), o)
	})
	return reload(ctx, err, c.Load)
}

func (c *Orders) Cancel(ctx context.Context, o domain.Order) error {
	err := c.mutate(ctx, "Cancel", func(ctx context.Context, token string) error {
		if err := domain.CanTransition(o.State, domain.OrderCancelled, c.role()); err != nil {
			return err
		}
		_, err := c.api.OrderSetState(ctx, token, o.ID, domain.OrderCancelled)
		return err
	})
	return reload(ctx, err, c.Load)
}

func advanceOrder(ctx context.Context, api posapi.POSAPI, token string, role domain.Role, o domain.Order) error {
	next, ok := domain.NextOrderState(o.State)
	if !ok {
		return &domain.ErrTransition{From: o.State, To: o.State, Role: role}
	}
	if err := domain.CanTransition(o.State, next, role); err != nil {
		return err
	}
	if _, err := api.OrderSetState(ctx, token, o.ID, next); err != nil {
		return errors.Wrapf(err, "order %d", o.ID)
	}
	return nil
}

func filterOrders(orders []domain.Order, keep func(domain.Order) bool) []domain.Order {
	out := orders[:0]
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
