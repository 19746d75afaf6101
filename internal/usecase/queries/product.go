package queries

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
)

var ErrProductNotFound = errs.New("product not found")

const (
	DefaultLimit     = 20
	MaxLimit         = 100
	defaultLowStock  = 5
	maxLowStockLimit = 1000
)

// ProductFilter narrows the product listing. Nil fields match everything.
type ProductFilter struct {
	Category *string
	Search   *string
	Limit    int
	Offset   int
}

func (f *ProductFilter) normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type ProductReadStore interface {
	FindByID(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, filter ProductFilter) ([]*ProductView, int64, error)
	ListLowStock(ctx context.Context, threshold int) ([]*ProductView, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type ProductQueries interface {
	GetByID(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, filter ProductFilter) ([]*ProductView, Page, error)
	ListLowStock(ctx context.Context, threshold int) ([]*ProductView, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type productQueriesImpl struct {
	readStore ProductReadStore
}

func NewProductQueries(readStore ProductReadStore) ProductQueries {
	return &productQueriesImpl{readStore: readStore}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id int64) (*ProductView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *productQueriesImpl) List(ctx context.Context, filter ProductFilter) ([]*ProductView, Page, error) {
	filter.normalize()

	views, total, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, Page{}, err
	}
	return views, NewPage(total, filter.Limit, filter.Offset), nil
}

func (q *productQueriesImpl) ListLowStock(ctx context.Context, threshold int) ([]*ProductView, error) {
	if threshold <= 0 {
		threshold = defaultLowStock
	}
	if threshold > maxLowStockLimit {
		threshold = maxLowStockLimit
	}
	return q.readStore.ListLowStock(ctx, threshold)
}

func (q *productQueriesImpl) ListCategories(ctx context.Context) ([]string, error) {
	return q.readStore.ListCategories(ctx)
}
