package commands

import (
	"context"
	"log/slog"

	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
)

var (
	ErrDuplicateProductName = errs.New("product name already exists")
	ErrEmptyUpdate          = errs.New("no fields to update")
	ErrInvalidStockUpdate   = errs.New("exactly one of stock or adjustment must be provided")
)

// DeleteProductResult reports whether the product row was removed or only
// deactivated because sold transactions still reference it.
type DeleteProductResult struct {
	Deactivated bool
}

type ProductCommands interface {
	Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error)
	Update(ctx context.Context, id int64, req reqdto.UpdateProductRequest) (*queries.ProductView, error)
	UpdateStock(ctx context.Context, id int64, req reqdto.UpdateStockRequest) (*queries.ProductView, error)
	Delete(ctx context.Context, id int64) (*DeleteProductResult, error)
}

type productCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ProductReadStore
}

func NewProductCommands(uow shared.UnitOfWork, readStore queries.ProductReadStore) ProductCommands {
	return &productCommandsImpl{
		uow:       uow,
		readStore: readStore,
	}
}

func (c *productCommandsImpl) Create(ctx context.Context, req reqdto.CreateProductRequest) (*queries.ProductView, error) {
	p, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var id int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Products().FindActiveByName(ctx, p.Name()); err == nil {
			return ErrDuplicateProductName
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		id, err = tx.Products().Create(ctx, p)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateProductName)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, id)
}

func (c *productCommandsImpl) Update(ctx context.Context, id int64, req reqdto.UpdateProductRequest) (*queries.ProductView, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if patch.Name != nil {
			existing, err := tx.Products().FindActiveByName(ctx, *patch.Name)
			if err == nil && existing.ID() != id {
				return ErrDuplicateProductName
			} else if err != nil && !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Products().Update(ctx, id, patch); err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return errs.Mark(err, ErrProductNotFound)
			case infra.IsKind(err, infra.KindDuplicateKey):
				return errs.Mark(err, ErrDuplicateProductName)
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, id)
}

func (c *productCommandsImpl) UpdateStock(ctx context.Context, id int64, req reqdto.UpdateStockRequest) (*queries.ProductView, error) {
	if (req.Stock == nil) == (req.Adjustment == nil) {
		return nil, ErrInvalidStockUpdate
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Lock first so an absolute set cannot race a concurrent sale.
		if _, err := tx.Products().FindActiveByIDForUpdate(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var err error
		if req.Stock != nil {
			err = tx.Products().SetStock(ctx, id, *req.Stock)
		} else {
			err = tx.Products().AdjustStock(ctx, id, *req.Adjustment)
		}
		if err != nil {
			if infra.IsKind(err, infra.KindCheckViolated) {
				return errs.Mark(err, ErrInsufficientStock)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, id)
}

// Delete removes a product outright unless sold transactions reference it, in
// which case it is deactivated so historical lines keep a valid target.
func (c *productCommandsImpl) Delete(ctx context.Context, id int64) (*DeleteProductResult, error) {
	result := &DeleteProductResult{}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Products().FindActiveByIDForUpdate(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProductNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		referenced, err := tx.Products().IsReferencedByLines(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if referenced {
			result.Deactivated = true
			if err := tx.Products().Deactivate(ctx, id); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			slog.Info("product deactivated instead of deleted", "product_id", id)
			return nil
		}

		// The FOR UPDATE lock above blocks new line inserts referencing this
		// product, so the reference check cannot go stale before the delete.
		if err := tx.Products().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
