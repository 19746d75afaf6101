package commands

import (
	"context"

	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
)

type BusinessCommands interface {
	Upsert(ctx context.Context, req reqdto.UpsertBusinessRequest) (*queries.BusinessView, error)
}

type businessCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.BusinessReadStore
}

func NewBusinessCommands(uow shared.UnitOfWork, readStore queries.BusinessReadStore) BusinessCommands {
	return &businessCommandsImpl{
		uow:       uow,
		readStore: readStore,
	}
}

func (c *businessCommandsImpl) Upsert(ctx context.Context, req reqdto.UpsertBusinessRequest) (*queries.BusinessView, error) {
	b, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Business().Upsert(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.Find(ctx)
}
