package commands

import (
	"context"
	"errors"
	"sort"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/clock"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound         = errs.New("product not found")
	ErrTransactionNotFound     = errs.New("transaction not found")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrTotalMismatch           = errs.New("total amount mismatch")
	ErrInvalidStateTransition  = errs.New("invalid status transition")
	ErrAccessDenied            = errs.New("access denied")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type TransactionCommands interface {
	Create(ctx context.Context, req reqdto.CreateTransactionRequest, userID uuid.UUID) (*queries.TransactionView, error)
	UpdateStatus(ctx context.Context, id string, target transaction.Status, actorID uuid.UUID, actorRole user.Role) (*queries.TransactionView, error)
}

type transactionCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.TransactionReadStore
	clock     clock.Clock
}

func NewTransactionCommands(uow shared.UnitOfWork, readStore queries.TransactionReadStore, clock clock.Clock) TransactionCommands {
	return &transactionCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clock,
	}
}

// Create records a sale: every requested product is locked, its stock checked
// and decremented, and the transaction with its line snapshots inserted, all
// inside one unit of work. Any failure leaves stock untouched.
func (c *transactionCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateTransactionRequest,
	userID uuid.UUID,
) (*queries.TransactionView, error) {
	id := transaction.NewID(c.clock.Now())

	// Merge duplicate product rows so each row is locked exactly once.
	quantities := make(map[int64]int, len(req.Items))
	for _, item := range req.Items {
		quantities[item.ProductID] += item.Qty
	}

	// Lock in ascending product order so concurrent sales cannot deadlock.
	productIDs := make([]int64, 0, len(quantities))
	for pid := range quantities {
		productIDs = append(productIDs, pid)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lines := make([]transaction.Line, 0, len(productIDs))
		for _, pid := range productIDs {
			qty := quantities[pid]

			p, err := tx.Products().FindActiveByIDForUpdate(ctx, pid)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrProductNotFound)
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			if err := p.Reserve(qty); err != nil {
				return errs.Mark(err, ErrInsufficientStock)
			}

			line, err := transaction.NewLine(p.ID(), p.Name(), p.Price(), qty)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			lines = append(lines, line)
		}

		t, err := transaction.NewTransaction(id, userID, req.Total,
			transaction.PaymentMethod(req.PaymentMethod), req.Customer(), lines)
		if err != nil {
			if errors.Is(err, transaction.ErrTotalMismatch) {
				return errs.Mark(err, ErrTotalMismatch)
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		for _, pid := range productIDs {
			if err := tx.Products().AdjustStock(ctx, pid, -quantities[pid]); err != nil {
				// The check constraint is the backstop; the locked read above
				// should have caught any shortage already.
				if infra.IsKind(err, infra.KindCheckViolated) {
					return errs.Mark(err, ErrInsufficientStock)
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Transactions().CreateWithLines(ctx, t); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, id)
}

// UpdateStatus settles or cancels a pending sale. Cancellation restores the
// reserved stock in the same unit of work. Terminal transactions reject any
// further transition.
func (c *transactionCommandsImpl) UpdateStatus(
	ctx context.Context,
	id string,
	target transaction.Status,
	actorID uuid.UUID,
	actorRole user.Role,
) (*queries.TransactionView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Transactions().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTransactionNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actorRole.CanAccessTransactionOf(t.UserID() == actorID) {
			return ErrAccessDenied
		}

		return applyTransition(ctx, tx, t, target)
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, id)
}

// applyTransition runs the status change against a transaction already locked
// in tx. Shared with the payment reconciliation flow.
func applyTransition(ctx context.Context, tx shared.Tx, t *transaction.Transaction, target transaction.Status) error {
	switch target {
	case transaction.StatusPaid:
		if err := t.MarkPaid(); err != nil {
			return errs.Mark(err, ErrInvalidStateTransition)
		}
	case transaction.StatusCancelled:
		restore, err := t.Cancel()
		if err != nil {
			return errs.Mark(err, ErrInvalidStateTransition)
		}
		if err := restoreStock(ctx, tx, restore); err != nil {
			return err
		}
	default:
		return ErrInvalidStateTransition
	}

	if err := tx.Transactions().UpdateStatus(ctx, t.ID(), t.Status()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func restoreStock(ctx context.Context, tx shared.Tx, restore map[int64]int) error {
	ids := make([]int64, 0, len(restore))
	for pid := range restore {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, pid := range ids {
		if err := tx.Products().AdjustStock(ctx, pid, restore[pid]); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}
