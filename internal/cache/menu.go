package cache

import (
	"RestoPos/internal/domain"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"RestoPos/pkg/logging"
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// CacheMenu keeps the catalog at hand so order lines that arrive with only
// a product id can still be shown by name.
type CacheMenu interface {
	RefreshMenu(ctx context.Context) error

	GetProductsMapByID() map[int]domain.Product
	GetCategoriesMapByID() map[int]domain.Category
	ProductName(ID int) string
	FillOrder(o domain.Order) domain.Order
	Fresh() bool
}

type menu struct {
	api     posapi.POSAPI
	session *session.Store
	ttl     time.Duration
	now     func() time.Time

	mu                sync.RWMutex
	refreshed         time.Time
	productsMapByID   map[int]domain.Product
	categoriesMapByID map[int]domain.Category
}

func NewCacheMenu(api posapi.POSAPI, s *session.Store, ttl time.Duration) CacheMenu {
	return &menu{
		api:               api,
		session:           s,
		ttl:               ttl,
		now:               time.Now,
		productsMapByID:   map[int]domain.Product{},
		categoriesMapByID: map[int]domain.Category{},
	}
}

func (m *menu) RefreshMenu(ctx context.Context) error {
	logger := logging.GetLogger()
	logger.Debug("RefreshMenu:>Start")
	defer logger.Debug("RefreshMenu:>End")

	token, _ := m.session.Token()
	products, err := m.api.ProductList(ctx, token)
	if err != nil {
		return errors.Wrap(err, "failed RefreshMenu, ProductList")
	}
	categories, err := m.api.CategoryList(ctx, token)
	if err != nil {
		return errors.Wrap(err, "failed RefreshMenu, CategoryList")
	}

	productsMapByID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		productsMapByID[p.ID] = p
	}
	categoriesMapByID := make(map[int]domain.Category, len(categories))
	for _, c := range categories {
		categoriesMapByID[c.ID] = c
	}

	m.mu.Lock()
	m.productsMapByID = productsMapByID
	m.categoriesMapByID = categoriesMapByID
	m.refreshed = m.now()
	m.mu.Unlock()

	logger.Infof("RefreshMenu:>%d products, %d categories", len(products), len(categories))
	return nil
}

func (m *menu) GetProductsMapByID() map[int]domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int]domain.Product, len(m.productsMapByID))
	for k, v := range m.productsMapByID {
		out[k] = v
	}
	return out
}

func (m *menu) GetCategoriesMapByID() map[int]domain.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int]domain.Category, len(m.categoriesMapByID))
	for k, v := range m.categoriesMapByID {
		out[k] = v
	}
	return out
}

// ProductName is "#id" for products the cache does not know.
func (m *menu) ProductName(ID int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.productsMapByID[ID]; ok && p.Name != "" {
		return p.Name
	}
	return "#" + strconv.Itoa(ID)
}

// Fresh is false before the first refresh and once ttl has passed.
func (m *menu) Fresh() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.refreshed.IsZero() {
		return false
	}
	return m.ttl <= 0 || m.now().Sub(m.refreshed) < m.ttl
}

// FillOrder attaches cached products to the lines that came without one.
func (m *menu) FillOrder(o domain.Order) domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := make([]domain.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		if l.Product == nil {
			if p, ok := m.productsMapByID[l.ProductID]; ok {
				p := p
				l.Product = &p
			}
		}
		lines[i] = l
	}
	o.Lines = lines
	return o
}
