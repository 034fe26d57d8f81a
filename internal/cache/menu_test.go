package cache

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/posapi/options"
	"RestoPos/internal/session"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	posapi.POSAPI
	products []domain.Product
	err      error
}

func (f *fakeCatalog) ProductList(ctx context.Context, token string, opts ...options.Option) ([]domain.Product, error) {
	if token == "" {
		return nil, posapi.ErrUnauthenticated
	}
	return f.products, f.err
}

func (f *fakeCatalog) CategoryList(ctx context.Context, token string) ([]domain.Category, error) {
	return []domain.Category{{ID: 1, Name: "Bebidas"}}, nil
}

func TestRefreshMenu(t *testing.T) {
	s := session.New(nil)
	api := &fakeCatalog{products: []domain.Product{{ID: 10, Name: "Caña", Price: 2.5, CategoryID: 1}}}
	c := NewCacheMenu(api, s, time.Minute)

	assert.False(t, c.Fresh())
	assert.ErrorIs(t, c.RefreshMenu(context.Background()), posapi.ErrUnauthenticated)

	s.SaveSession("tok", 1, "Ana", "admin")
	require.NoError(t, c.RefreshMenu(context.Background()))
	assert.True(t, c.Fresh())
	assert.Equal(t, "Caña", c.ProductName(10))
	assert.Equal(t, "#11", c.ProductName(11))
	assert.Equal(t, "Bebidas", c.GetCategoriesMapByID()[1].Name)
	assert.Len(t, c.GetProductsMapByID(), 1)

	o := c.FillOrder(domain.Order{Lines: []domain.OrderLine{{ProductID: 10, Quantity: 2}, {ProductID: 11}}})
	require.NotNil(t, o.Lines[0].Product)
	assert.Equal(t, 5.0, o.LinesTotal())
	assert.Nil(t, o.Lines[1].Product)
}

func TestFreshExpires(t *testing.T) {
	s := session.New(nil)
	s.SaveSession("tok", 1, "Ana", "admin")
	c := NewCacheMenu(&fakeCatalog{}, s, time.Minute).(*menu)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.RefreshMenu(context.Background()))
	assert.True(t, c.Fresh())
	clock = clock.Add(2 * time.Minute)
	assert.False(t, c.Fresh())
}
