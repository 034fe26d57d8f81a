package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"fmt"
	"net/http"
)

func (p *posapi) ReservationList(ctx context.Context, token string, opts ...options.Option) ([]domain.Reservation, error) {
	return list(ctx, p, token, "/reservas", opts, mapper.Reservations)
}

func (p *posapi) ReservationGet(ctx context.Context, token string, ID int) (domain.Reservation, error) {
	return get(ctx, p, token, fmt.Sprintf("/reservas/%d", ID), mapper.Reservation)
}

func (p *posapi) ReservationAdd(ctx context.Context, token string, r mapper.ReservationBody) (*domain.Reservation, error) {
	return send(ctx, p, token, http.MethodPost, "/reservas", r, mapper.Reservation)
}

func (p *posapi) ReservationUpdate(ctx context.Context, token string, ID int, r mapper.ReservationBody) (*domain.Reservation, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/reservas/%d", ID), r, mapper.Reservation)
}

func (p *posapi) ReservationSetState(ctx context.Context, token string, ID int, state domain.ReservationState) (*domain.Reservation, error) {
	return send(ctx, p, token, http.MethodPatch, fmt.Sprintf("/reservas/%d/estado", ID),
		mapper.StateBody{Estado: string(state)}, mapper.Reservation)
}

func (p *posapi) ReservationDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/reservas/%d", ID))
}
