package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi"
	"RestoPos/internal/posapi/options"
	"RestoPos/internal/session"
	"RestoPos/pkg/logging"
	"context"
	"sort"

	"github.com/pkg/errors"
)

type Tables struct {
	*base[[]domain.Table]
}

func NewTables(api posapi.POSAPI, s *session.Store) *Tables {
	return &Tables{newBase[[]domain.Table]("Tables", api, s, nil)}
}

// Load publishes the tables ordered by number.
func (c *Tables) Load(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Table, error) {
		tables, err := c.api.TableList(ctx, token)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(tables, func(i, j int) bool { return tables[i].Number < tables[j].Number })
		return tables, nil
	})
}

func (c *Tables) Create(ctx context.Context, t domain.Table) error {
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		_, err := c.api.TableAdd(ctx, token, mapper.TableToBody(t))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Tables) Update(ctx context.Context, t domain.Table) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		_, err := c.api.TableUpdate(ctx, token, t.ID, mapper.TableToBody(t))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Tables) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.TableDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}

func (c *Tables) SetState(ctx context.Context, t domain.Table, state domain.TableState) error {
	t.State = state
	return c.Update(ctx, t)
}

func (c *Tables) Reserve(ctx context.Context, t domain.Table) error {
	return c.SetState(ctx, t, domain.TableReserved)
}

// Maintenance takes a table out of service, or puts it back as free.
func (c *Tables) Maintenance(ctx context.Context, t domain.Table, on bool) error {
	if on {
		return c.SetState(ctx, t, domain.TableMaintenance)
	}
	return c.SetState(ctx, t, domain.TableFree)
}

// Close delivers every open order of the table, generates its bill and
// frees the table. A permission error on freeing the table is logged and
// the close still counts as done.
func (c *Tables) Close(ctx context.Context, tableID int) (*domain.Bill, error) {
	var bill *domain.Bill
	err := c.mutate(ctx, "Close", func(ctx context.Context, token string) error {
		logger := logging.GetLogger()

		orders, err := c.api.OrderList(ctx, token, options.Table(tableID))
		if err != nil {
			return errors.Wrapf(err, "orders of table %d", tableID)
		}
		delivered := 0
		for _, o := range orders {
			if (o.TableID != nil && *o.TableID != tableID) || o.State.Terminal() {
				continue
			}
			if _, err := c.api.OrderSetState(ctx, token, o.ID, domain.OrderDelivered); err != nil {
				return errors.Wrapf(err, "deliver order %d", o.ID)
			}
			delivered++
		}
		logger.Infof("Tables.Close:>table %d: %d orders delivered", tableID, delivered)

		bill, err = c.api.BillGenerateForTable(ctx, token, tableID)
		if err != nil {
			return errors.Wrapf(err, "bill for table %d", tableID)
		}

		table, err := c.find(ctx, token, tableID)
		if err != nil {
			return err
		}
		table.State = domain.TableFree
		if _, err := c.api.TableUpdate(ctx, token, table.ID, mapper.TableToBody(table)); err != nil {
			if !posapi.IsForbidden(err) {
				return errors.Wrapf(err, "free table %d", tableID)
			}
			logger.Warnf("Tables.Close:>table %d left as is, not allowed to free it: %v", tableID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = reload(ctx, nil, c.Load)
	return bill, nil
}

func (c *Tables) find(ctx context.Context, token string, ID int) (domain.Table, error) {
	for _, t := range c.Data.Get() {
		if t.ID == ID {
			return t, nil
		}
	}
	t, err := c.api.TableGet(ctx, token, ID)
	if err != nil {
		return domain.Table{}, errors.Wrapf(err, "table %d", ID)
	}
	return t, nil
}
