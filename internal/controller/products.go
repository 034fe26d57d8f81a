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

	"github.com/pkg/errors"
)

// NoCategory groups products whose category is unknown.
var NoCategory = domain.Category{ID: 0, Name: "Sin categoría"}

// Menu is the catalog as the products screen shows it.
type Menu struct {
	Categories []domain.Category
	Products   []domain.Product
}

type ProductGroup struct {
	Category domain.Category
	Products []domain.Product
}

// Groups lists the products per category in category order. Products of an
// unknown category end up in a trailing NoCategory group.
func (m Menu) Groups() []ProductGroup {
	index := make(map[int]int, len(m.Categories))
	groups := make([]ProductGroup, 0, len(m.Categories)+1)
	for _, cat := range m.Categories {
		index[cat.ID] = len(groups)
		groups = append(groups, ProductGroup{Category: cat})
	}
	var orphans []domain.Product
	for _, p := range m.Products {
		if i, ok := index[p.CategoryID]; ok {
			groups[i].Products = append(groups[i].Products, p)
		} else {
			orphans = append(orphans, p)
		}
	}
	if len(orphans) > 0 {
		groups = append(groups, ProductGroup{Category: NoCategory, Products: orphans})
	}
	return groups
}

// ProductFilter narrows the products screen. The zero value shows the whole
// catalog.
type ProductFilter struct {
	AvailableOnly bool
	CategoryID    int
}

func (f ProductFilter) options() []options.Option {
	var opts []options.Option
	if f.AvailableOnly {
		opts = append(opts, options.Available(true))
	}
	if f.CategoryID > 0 {
		opts = append(opts, options.Category(f.CategoryID))
	}
	return opts
}

func (f ProductFilter) keep(p domain.Product) bool {
	if f.AvailableOnly && !p.Available {
		return false
	}
	return f.CategoryID <= 0 || p.CategoryID == f.CategoryID
}

type Products struct {
	*base[Menu]

	filterMu sync.Mutex
	filter   ProductFilter
}

func NewProducts(api posapi.POSAPI, s *session.Store) *Products {
	return &Products{base: newBase("Products", api, s, Menu{})}
}

// Load reloads the catalog with the current filter. The backend may ignore
// the query, so the filter is applied again here.
func (c *Products) Load(ctx context.Context) error {
	c.filterMu.Lock()
	filter := c.filter
	c.filterMu.Unlock()

	return c.load(ctx, func(ctx context.Context, token string) (Menu, error) {
		categories, err := c.api.CategoryList(ctx, token)
		if err != nil {
			return Menu{}, errors.Wrap(err, "categories")
		}
		all, err := c.api.ProductList(ctx, token, filter.options()...)
		if err != nil {
			return Menu{}, errors.Wrap(err, "products")
		}
		products := make([]domain.Product, 0, len(all))
		for _, p := range all {
			if filter.keep(p) {
				products = append(products, p)
			}
		}
		sort.SliceStable(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
		return Menu{Categories: categories, Products: products}, nil
	})
}

// LoadFiltered sets the filter and reloads.
func (c *Products) LoadFiltered(ctx context.Context, f ProductFilter) error {
	c.filterMu.Lock()
	c.filter = f
	c.filterMu.Unlock()
	return c.Load(ctx)
}

func (c *Products) Create(ctx context.Context, p domain.Product) error {
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		_, err := c.api.ProductAdd(ctx, token, mapper.ProductToBody(p))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Products) Update(ctx context.Context, p domain.Product) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		_, err := c.api.ProductUpdate(ctx, token, p.ID, mapper.ProductToBody(p))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Products) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.ProductDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}

func (c *Products) ToggleAvailability(ctx context.Context, p domain.Product) error {
	p.Available = !p.Available
	return c.Update(ctx, p)
}

type Categories struct {
	*base[[]domain.Category]
}

func NewCategories(api posapi.POSAPI, s *session.Store) *Categories {
	return &Categories{newBase[[]domain.Category]("Categories", api, s, nil)}
}

func (c *Categories) Load(ctx context.Context) error {
	return c.load(ctx, func(ctx context.Context, token string) ([]domain.Category, error) {
		return c.api.CategoryList(ctx, token)
	})
}

func (c *Categories) Create(ctx context.Context, cat domain.Category) error {
	err := c.mutate(ctx, "Create", func(ctx context.Context, token string) error {
		_, err := c.api.CategoryAdd(ctx, token, mapper.CategoryToBody(cat))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Categories) Update(ctx context.Context, cat domain.Category) error {
	err := c.mutate(ctx, "Update", func(ctx context.Context, token string) error {
		_, err := c.api.CategoryUpdate(ctx, token, cat.ID, mapper.CategoryToBody(cat))
		return err
	})
	return reload(ctx, err, c.Load)
}

func (c *Categories) Delete(ctx context.Context, ID int) error {
	err := c.mutate(ctx, "Delete", func(ctx context.Context, token string) error {
		return c.api.CategoryDelete(ctx, token, ID)
	})
	return reload(ctx, err, c.Load)
}
