package controller

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/posapi/options"
	"RestoPos/internal/session"
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// Bills lists paid bills, newest first, and the sales summary.
type Bills struct {
	*base[[]domain.Bill]

	Summary *Observable[domain.BillSummary]
}

func NewBills(api posapi.POSAPI, s *session.Store) *Bills {
	return &Bills{
		base:    newBase[[]domain.Bill]("Bills", api, s, nil),
		Summary: newObservable(domain.BillSummary{}),
	}
}

func (c *Bills) Load(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Bill, error) {
		bills, err := c.api.BillList(ctx, token)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(bills, func(i, j int) bool { return bills[i].PaidAt.After(bills[j].PaidAt) })
		return bills, nil
	})
}

// Get returns a loaded bill or fetches it.
func (c *Bills) Get(ctx context.Context, ID int) (domain.Bill, error) {
	for _, b := range c.Data.Get() {
		if b.ID == ID {
			return b, nil
		}
	}
	var bill domain.Bill
	err := c.mutate(ctx, "Get", func(ctx context.Context, token string) error {
		var err error
		bill, err = c.api.BillGet(ctx, token, ID)
		return err
	})
	return bill, err
}

// Generate bills a table without touching its orders or state.
func (c *Bills) Generate(ctx context.Context, tableID int) (*domain.Bill, error) {
	var bill *domain.Bill
	err := c.mutate(ctx, "Generate", func(ctx context.Context, token string) error {
		var err error
		bill, err = c.api.BillGenerateForTable(ctx, token, tableID)
		return err
	})
	return bill, reload(ctx, err, c.Load)
}

// LoadSummary publishes the totals of [from, to]; zero times are left out
// of the query.
func (c *Bills) LoadSummary(ctx context.Context, from, to time.Time) error {
	var summary domain.BillSummary
	err := c.mutate(ctx, "LoadSummary", func(ctx context.Context, token string) error {
		var opts []options.Option
		if !from.IsZero() {
			opts = append(opts, options.From(from))
		}
		if !to.IsZero() {
			opts = append(opts, options.To(to))
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return errors.Errorf("summary range ends before it starts: %s > %s",
				from.Format("2006-01-02"), to.Format("2006-01-02"))
		}
		var err error
		summary, err = c.api.BillSummary(ctx, token, opts...)
		return err
	})
	if err != nil {
		return err
	}
	if !c.Detached() {
		c.Summary.set(summary)
	}
	return nil
}
