package queries

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
)

var ErrBusinessNotFound = errs.New("business profile not found")

type BusinessReadStore interface {
	Find(ctx context.Context) (*BusinessView, error)
}

type BusinessQueries interface {
	Get(ctx context.Context) (*BusinessView, error)
}

type businessQueriesImpl struct {
	readStore BusinessReadStore
}

func NewBusinessQueries(readStore BusinessReadStore) BusinessQueries {
	return &businessQueriesImpl{readStore: readStore}
}

func (q *businessQueriesImpl) Get(ctx context.Context) (*BusinessView, error) {
	view, err := q.readStore.Find(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return view, nil
}
