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
	"time"
)

// Reservations shows the bookings of one day, by hour.
type Reservations struct {
	*base[[]domain.Reservation]

	dayMu sync.Mutex
	day   time.Time
}

func NewReservations(api posapi.POSAPI, s *session.Store) *Reservations {
	return &Reservations{
		base: newBase[[]domain.Reservation]("Reservations", api, s, nil),
		day:  truncateDay(time.Now()),
	}
}

func (c *Reservations) Day() time.Time {
	c.dayMu.Lock()
	defer c.dayMu.Unlock()
	return c.day
}

func (c *Reservations) LoadDay(ctx context.Context, day time.Time) error {
	c.dayMu.Lock()
	c.day = truncateDay(day)
	c.dayMu.Unlock()
	return c.Load(ctx)
}

func (c *Reservations) Load(ctx context.Context) error {
	day := c.Day()
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Reservation, error) {
		all, err := c.api.ReservationList(ctx, token, options.Date(day))
		if err != nil {
			return nil, err
		}
		out := make([]domain.Reservation, 0, len(all))
		for _, r := range all {
			if sameDay(r.Date, day) {
				out = append(out, r)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
		return out, nil
	})
}

func (c *Reservations) Create(ctx context.Context, r domain.Reservation) error {
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		if r.State == "" {
			r.State = domain.ReservationPending
		}
		_, err := c.api.ReservationAdd(ctx, token, mapper.ReservationToBody(r))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Reservations) Update(ctx context.Context, r domain.Reservation) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		_, err := c.api.ReservationUpdate(ctx, token, r.ID, mapper.ReservationToBody(r))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Reservations) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.ReservationDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}

func (c *Reservations) Cancel(ctx context.Context, ID int) error {
	return c.setState(ctx, "Cancel", ID, domain.ReservationCancelled)
}

func (c *Reservations) Confirm(ctx context.Context, ID int) error {
	return c.setState(ctx, "Confirm", ID, domain.ReservationConfirmed)
}

func (c *Reservations) Arrived(ctx context.Context, ID int) error {
	return c.setState(ctx, "Arrived", ID, domain.ReservationCustomerArrived)
}

func (c *Reservations) NoShow(ctx context.Context, ID int) error {
	return c.setState(ctx, "NoShow", ID, domain.ReservationNoShow)
}

func (c *Reservations) Complete(ctx context.Context, ID int) error {
	return c.setState(ctx, "Complete", ID, domain.ReservationCompleted)
}

func (c *Reservations) setState(ctx context.Context, op string, ID int, state domain.ReservationState) error {
	err := c.mutate(ctx, op, func(ctx context.Context, token string) error {
		_, err := c.api.ReservationSetState(ctx, token, ID, state)
		return err
	})
	return reload(ctx, err, c.Load)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
