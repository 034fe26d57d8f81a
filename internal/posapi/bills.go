package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"fmt"
	"net/http"
)

func (p *posapi) BillList(ctx context.Context, token string, opts ...options.Option) ([]domain.Bill, error) {
	return list(ctx, p, token, "/cuentas", opts, mapper.Bills)
}

func (p *posapi) BillGet(ctx context.Context, token string, ID int) (domain.Bill, error) {
	return get(ctx, p, token, fmt.Sprintf("/cuentas/%d", ID), mapper.Bill)
}

func (p *posapi) BillGenerateForTable(ctx context.Context, token string, tableID int) (*domain.Bill, error) {
	return send(ctx, p, token, http.MethodPost, fmt.Sprintf("/cuentas/generar/mesa/%d", tableID), nil, mapper.Bill)
}

func (p *posapi) BillSummary(ctx context.Context, token string, opts ...options.Option) (domain.BillSummary, error) {
	raw, err := p.call(ctx, token, true, http.MethodGet, "/cuentas/resumen", nil, opts)
	if err != nil {
		return domain.BillSummary{}, err
	}
	s, _, err := mapper.BillSummary(raw)
	if err != nil {
		return domain.BillSummary{}, decodeErr("GET /cuentas/resumen", err)
	}
	return s, nil
}
