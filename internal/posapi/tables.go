package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"fmt"
	"net/http"
)

func (p *posapi) TableList(ctx context.Context, token string, opts ...options.Option) ([]domain.Table, error) {
	return list(ctx, p, token, "/mesas", opts, mapper.Tables)
}

func (p *posapi) TableGet(ctx context.Context, token string, ID int) (domain.Table, error) {
	return get(ctx, p, token, fmt.Sprintf("/mesas/%d", ID), mapper.Table)
}

func (p *posapi) TableAdd(ctx context.Context, token string, t mapper.TableBody) (*domain.Table, error) {
	return send(ctx, p, token, http.MethodPost, "/mesas", t, mapper.Table)
}

func (p *posapi) TableUpdate(ctx context.Context, token string, ID int, t mapper.TableBody) (*domain.Table, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/mesas/%d", ID), t, mapper.Table)
}

func (p *posapi) TableDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/mesas/%d", ID))
}
