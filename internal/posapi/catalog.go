package posapi

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/mapper"
	"RestoPos/internal/posapi/options"
	"context"
	"fmt"
	"net/http"
)

func (p *posapi) ProductList(ctx context.Context, token string, opts ...options.Option) ([]domain.Product, error) {
	return list(ctx, p, token, "/productos", opts, mapper.Products)
}

func (p *posapi) ProductGet(ctx context.Context, token string, ID int) (domain.Product, error) {
	return get(ctx, p, token, fmt.Sprintf("/productos/%d", ID), mapper.Product)
}

func (p *posapi) ProductAdd(ctx context.Context, token string, b mapper.ProductBody) (*domain.Product, error) {
	return send(ctx, p, token, http.MethodPost, "/productos", b, mapper.Product)
}

func (p *posapi) ProductUpdate(ctx context.Context, token string, ID int, b mapper.ProductBody) (*domain.Product, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/productos/%d", ID), b, mapper.Product)
}

func (p *posapi) ProductDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/productos/%d", ID))
}

func (p *posapi) CategoryList(ctx context.Context, token string) ([]domain.Category, error) {
	return list(ctx, p, token, "/categorias", nil, mapper.Categories)
}

func (p *posapi) CategoryGet(ctx context.Context, token string, ID int) (domain.Category, error) {
	return get(ctx, p, token, fmt.Sprintf("/categorias/%d", ID), mapper.Category)
}

func (p *posapi) CategoryAdd(ctx context.Context, token string, c mapper.CategoryBody) (*domain.Category, error) {
	return send(ctx, p, token, http.MethodPost, "/categorias", c, mapper.Category)
}

func (p *posapi) CategoryUpdate(ctx context.Context, token string, ID int, c mapper.CategoryBody) (*domain.Category, error) {
	return send(ctx, p, token, http.MethodPut, fmt.Sprintf("/categorias/%d", ID), c, mapper.Category)
}

func (p *posapi) CategoryDelete(ctx context.Context, token string, ID int) error {
	return p.remove(ctx, token, fmt.Sprintf("/categorias/%d", ID))
}
