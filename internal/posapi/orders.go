package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"fmt"
	"net/http"
)

func (p *posapi) OrderList(ctx context.Context, token string, opts ...options.Option) ([]domain.Order, error) {
	return list(ctx, p, token, "/pedidos", opts, mapper.Orders)
}

func (p *posapi) OrderGet(ctx context.Context, token string, ID int) (domain.Order, error) {
	return get(ctx, p, token, fmt.Sprintf("/pedidos/%d", ID), mapper.Order)
}

func (p *posapi) OrderAdd(ctx context.Context, token string, o mapper.OrderBody) (*domain.Order, error) {
	return send(ctx, p, token, http.MethodPost, "/pedidos", o, mapper.Order)
}

func (p *posapi) OrderUpdate(ctx context.Context, token string, ID int, o mapper.OrderBody) (*domain.Order, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/pedidos/%d", ID), o, mapper.Order)
}

func (p *posapi) OrderSetState(ctx context.Context, token string, ID int, state domain.OrderState) (*domain.Order, error) {
	return send(ctx, p, token, http.MethodPatch, fmt.Sprintf("/pedidos/%d/estado", ID),
		mapper.StateBody{Estado: string(state)}, mapper.Order)
}

func (p *posapi) OrderDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/pedidos/%d", ID))
}

func (p *posapi) OrderLineList(ctx context.Context, token string, orderID int) ([]domain.OrderLine, error) {
	return list(ctx, p, token, fmt.Sprintf("/pedidos/%d/detalles", orderID), nil, mapper.OrderLines)
}

func (p *posapi) OrderLineAdd(ctx context.Context, token string, orderID int, l mapper.OrderLineBody) (*domain.OrderLine, error) {
	return send(ctx, p, token, http.MethodPost, fmt.Sprintf("/pedidos/%d/detalles", orderID), l, mapper.OrderLine)
}

func (p *posapi) OrderLineUpdate(ctx context.Context, token string, orderID, lineID int, l mapper.OrderLineBody) (*domain.OrderLine, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/pedidos/%d/detalles/%d", orderID, lineID), l, mapper.OrderLine)
}

func (p *posapi) OrderLineSetState(ctx context.Context, token string, orderID, lineID int, state domain.OrderState) (*domain.OrderLine, error) {
	return send(ctx, p, token, http.MethodPatch, fmt.Sprintf("/pedidos/%d/detalles/%d/estado", orderID, lineID),
		mapper.StateBody{Estado: string(state)}, mapper.OrderLine)
}

func (p *posapi) OrderLineDelete(ctx context.Context, token string, orderID, lineID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/pedidos/%d/detalles/%d", orderID, lineID))
}
