package commands

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	reqdto "github.com/fawwazmw/cashier-app/internal/handler/dto/request"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrNotGatewayPayment  = errs.New("transaction is not a gateway payment")
)

type PaymentCommands interface {
	CreateSession(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*shared.SnapSession, error)
	HandleNotification(ctx context.Context, req reqdto.PaymentNotificationRequest) error
	SyncStatus(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*queries.TransactionView, error)
	CancelPayment(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*queries.TransactionView, error)
}

type paymentCommandsImpl struct {
	uow       shared.UnitOfWork
	gateway   shared.PaymentGateway
	readStore queries.TransactionReadStore
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway shared.PaymentGateway, readStore queries.TransactionReadStore) PaymentCommands {
	return &paymentCommandsImpl{
		uow:       uow,
		gateway:   gateway,
		readStore: readStore,
	}
}

// mapGatewayStatus translates the gateway's settlement vocabulary into a
// ledger status. ok is false for gateway states that carry no local meaning.
func mapGatewayStatus(status, fraud string) (transaction.Status, bool) {
	switch status {
	case "capture":
		switch fraud {
		case "accept":
			return transaction.StatusPaid, true
		case "challenge":
			return transaction.StatusPending, true
		default:
			return "", false
		}
	case "settlement":
		return transaction.StatusPaid, true
	case "deny", "cancel", "expire":
		return transaction.StatusCancelled, true
	case "pending":
		return transaction.StatusPending, true
	default:
		return "", false
	}
}

// localView loads the read model and maps store errors to usecase sentinels.
func (p *paymentCommandsImpl) localView(ctx context.Context, transactionID string) (*queries.TransactionView, error) {
	view, err := p.readStore.FindByID(ctx, transactionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTransactionNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// CreateSession opens a hosted checkout session for a pending gateway sale
// and stores the returned token on the transaction. The gateway call runs
// outside any database transaction so a slow gateway never pins a locked row.
func (p *paymentCommandsImpl) CreateSession(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*shared.SnapSession, error) {
	view, err := p.localView(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !actorRole.CanAccessTransactionOf(view.UserID == actorID) {
		return nil, ErrAccessDenied
	}
	if view.PaymentMethod != string(transaction.PaymentGateway) {
		return nil, ErrNotGatewayPayment
	}
	if view.Status != string(transaction.StatusPending) {
		return nil, ErrInvalidStateTransition
	}

	items := make([]shared.SnapItem, len(view.Lines))
	for i, l := range view.Lines {
		items[i] = shared.SnapItem{
			ID:    formatProductID(l.ProductID),
			Name:  l.ProductName,
			Price: l.Price,
			Qty:   l.Qty,
		}
	}

	session, err := p.gateway.CreateSnapSession(ctx, shared.SnapRequest{
		OrderID:       view.ID,
		GrossAmount:   view.Total,
		CustomerName:  view.CustomerName,
		CustomerPhone: view.CustomerPhone,
		Items:         items,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Transactions().SetPaymentToken(ctx, view.ID, session.Token); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// HandleNotification applies a gateway webhook. Replays and out-of-order
// deliveries are absorbed: a terminal transaction never changes again, and a
// pending verdict on a pending transaction is a no-op.
func (p *paymentCommandsImpl) HandleNotification(ctx context.Context, req reqdto.PaymentNotificationRequest) error {
	target, ok := mapGatewayStatus(req.TransactionStatus, req.FraudStatus)
	if !ok {
		slog.Warn("ignoring unknown gateway status",
			"order_id", req.OrderID,
			"transaction_status", req.TransactionStatus,
			"fraud_status", req.FraudStatus)
		return nil
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Transactions().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Unknown order ids are acknowledged so the gateway stops
				// retrying deliveries we can never process.
				slog.Warn("notification for unknown transaction", "order_id", req.OrderID)
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return reconcile(ctx, tx, t, target)
	})
}

// SyncStatus pulls the authoritative state from the gateway and reconciles
// the local transaction with it. A gateway outage degrades to the last known
// local status instead of failing the request.
func (p *paymentCommandsImpl) SyncStatus(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*queries.TransactionView, error) {
	view, err := p.localView(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !actorRole.CanAccessTransactionOf(view.UserID == actorID) {
		return nil, ErrAccessDenied
	}

	status, err := p.gateway.Status(ctx, transactionID)
	if err != nil {
		slog.Warn("gateway status check failed, serving local status",
			"transaction_id", transactionID,
			"error", err.Error())
		return view, nil
	}

	target, ok := mapGatewayStatus(status.TransactionStatus, status.FraudStatus)
	if !ok {
		return view, nil
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Transactions().FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTransactionNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return reconcile(ctx, tx, t, target)
	})
	if err != nil {
		return nil, err
	}

	return p.localView(ctx, transactionID)
}

// CancelPayment voids the gateway order and cancels the local transaction,
// restoring its stock. The gateway void is best-effort: a gateway failure
// never blocks the local cancellation.
func (p *paymentCommandsImpl) CancelPayment(ctx context.Context, transactionID string, actorID uuid.UUID, actorRole user.Role) (*queries.TransactionView, error) {
	view, err := p.localView(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !actorRole.CanAccessTransactionOf(view.UserID == actorID) {
		return nil, ErrAccessDenied
	}
	if view.PaymentMethod != string(transaction.PaymentGateway) {
		return nil, ErrNotGatewayPayment
	}

	if err := p.gateway.Cancel(ctx, transactionID); err != nil {
		slog.Warn("gateway cancel failed, cancelling locally",
			"transaction_id", transactionID,
			"error", err.Error())
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Transactions().FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrTransactionNotFound)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return applyTransition(ctx, tx, t, transaction.StatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	return p.localView(ctx, transactionID)
}

func formatProductID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// reconcile moves a locked transaction toward the gateway verdict. Settled
// transactions are left untouched; equal-status verdicts are no-ops.
func reconcile(ctx context.Context, tx shared.Tx, t *transaction.Transaction, target transaction.Status) error {
	if t.Status() == target {
		return nil
	}
	if t.Status().IsTerminal() {
		slog.Info("gateway verdict ignored for settled transaction",
			"transaction_id", t.ID(),
			"status", string(t.Status()),
			"verdict", string(target))
		return nil
	}
	return applyTransition(ctx, tx, t, target)
}
