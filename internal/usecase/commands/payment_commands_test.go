//go:build unit

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/product"
	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"
	"github.com/fawwazmw/cashier-app/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	createFn func(ctx context.Context, req shared.SnapRequest) (*shared.SnapSession, error)
	statusFn func(ctx context.Context, orderID string) (*shared.GatewayStatus, error)
	cancelFn func(ctx context.Context, orderID string) error
}

func (g *stubGateway) CreateSnapSession(ctx context.Context, req shared.SnapRequest) (*shared.SnapSession, error) {
	if g.createFn == nil {
		panic("unexpected CreateSnapSession call")
	}
	return g.createFn(ctx, req)
}

func (g *stubGateway) Status(ctx context.Context, orderID string) (*shared.GatewayStatus, error) {
	if g.statusFn == nil {
		panic("unexpected Status call")
	}
	return g.statusFn(ctx, orderID)
}

func (g *stubGateway) Cancel(ctx context.Context, orderID string) error {
	if g.cancelFn == nil {
		panic("unexpected Cancel call")
	}
	return g.cancelFn(ctx, orderID)
}

type stubReadStore struct {
	view *queries.TransactionView
}

func (s *stubReadStore) FindByID(context.Context, string) (*queries.TransactionView, error) {
	return s.view, nil
}

func (s *stubReadStore) List(context.Context, queries.TransactionFilter) ([]*queries.TransactionView, int64, error) {
	return nil, 0, nil
}

func (s *stubReadStore) OwnerOf(context.Context, string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *stubReadStore) SalesSummary(context.Context, time.Time, time.Time, string) (*queries.SalesSummaryView, error) {
	return nil, nil
}

type stubTransactionRepo struct {
	current      *transaction.Transaction
	statusWrites []transaction.Status
	tokens       []string
}

func (r *stubTransactionRepo) CreateWithLines(context.Context, *transaction.Transaction) error {
	return nil
}

func (r *stubTransactionRepo) FindByIDForUpdate(context.Context, string) (*transaction.Transaction, error) {
	return r.current, nil
}

func (r *stubTransactionRepo) UpdateStatus(_ context.Context, _ string, status transaction.Status) error {
	r.statusWrites = append(r.statusWrites, status)
	return nil
}

func (r *stubTransactionRepo) SetPaymentToken(_ context.Context, _, token string) error {
	r.tokens = append(r.tokens, token)
	return nil
}

type stubProductRepo struct {
	adjusted map[int64]int
}

func (r *stubProductRepo) FindActiveByIDForUpdate(context.Context, int64) (*product.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) FindActiveByID(context.Context, int64) (*product.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) FindActiveByName(context.Context, string) (*product.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Create(context.Context, *product.Product) (int64, error) { return 0, nil }
func (r *stubProductRepo) Update(context.Context, int64, shared.ProductPatch) error {
	return nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	if r.adjusted == nil {
		r.adjusted = map[int64]int{}
	}
	r.adjusted[id] += delta
	return nil
}

func (r *stubProductRepo) SetStock(context.Context, int64, int) error { return nil }
func (r *stubProductRepo) Deactivate(context.Context, int64) error    { return nil }
func (r *stubProductRepo) Delete(context.Context, int64) error        { return nil }
func (r *stubProductRepo) IsReferencedByLines(context.Context, int64) (bool, error) {
	return false, nil
}

type stubTx struct {
	transactions *stubTransactionRepo
	products     *stubProductRepo
}

func (t *stubTx) Products() shared.ProductRepository         { return t.products }
func (t *stubTx) Transactions() shared.TransactionRepository { return t.transactions }
func (t *stubTx) Users() shared.UserRepository               { return nil }
func (t *stubTx) Business() shared.BusinessRepository        { return nil }
func (t *stubTx) DB() db.DBTX                                { return nil }

type stubUoW struct {
	tx    *stubTx
	calls int
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.calls++
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func gatewaySale() *builder.TransactionBuilder {
	return builder.NewTransactionBuilder().With(func(b *builder.TransactionBuilder) {
		b.PaymentMethod = transaction.PaymentGateway
	})
}

func TestSyncStatusGatewayOutage(t *testing.T) {
	b := gatewaySale()
	view := b.BuildReadModel()

	uow := &stubUoW{}
	gw := &stubGateway{
		statusFn: func(context.Context, string) (*shared.GatewayStatus, error) {
			return nil, errors.New("gateway down")
		},
	}
	p := NewPaymentCommands(uow, gw, &stubReadStore{view: view})

	got, err := p.SyncStatus(context.Background(), view.ID, view.UserID, user.RoleCashier)

	require.NoError(t, err, "an unreachable gateway degrades to the local status")
	assert.Equal(t, view, got)
	assert.Zero(t, uow.calls, "nothing to reconcile without a gateway verdict")
}

func TestCancelPaymentGatewayOutage(t *testing.T) {
	b := gatewaySale()
	view := b.BuildReadModel()

	repo := &stubTransactionRepo{current: b.BuildReconstructed()}
	products := &stubProductRepo{}
	uow := &stubUoW{tx: &stubTx{transactions: repo, products: products}}
	gw := &stubGateway{
		cancelFn: func(context.Context, string) error {
			return errors.New("gateway down")
		},
	}
	p := NewPaymentCommands(uow, gw, &stubReadStore{view: view})

	got, err := p.CancelPayment(context.Background(), view.ID, view.UserID, user.RoleCashier)

	require.NoError(t, err, "the gateway void is best-effort")
	require.NotNil(t, got)
	require.Len(t, repo.statusWrites, 1)
	assert.Equal(t, transaction.StatusCancelled, repo.statusWrites[0])
	assert.Equal(t, 3, products.adjusted[1], "cancellation restores the reserved stock")
}

func TestCreateSessionGatewayOutage(t *testing.T) {
	b := gatewaySale()
	view := b.BuildReadModel()

	uow := &stubUoW{}
	gw := &stubGateway{
		createFn: func(context.Context, shared.SnapRequest) (*shared.SnapSession, error) {
			return nil, errors.New("gateway down")
		},
	}
	p := NewPaymentCommands(uow, gw, &stubReadStore{view: view})

	_, err := p.CreateSession(context.Background(), view.ID, view.UserID, user.RoleCashier)

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Zero(t, uow.calls, "no token write without a session")
}

func TestCreateSessionStoresToken(t *testing.T) {
	b := gatewaySale()
	view := b.BuildReadModel()

	repo := &stubTransactionRepo{}
	uow := &stubUoW{tx: &stubTx{transactions: repo}}
	gw := &stubGateway{
		createFn: func(_ context.Context, req shared.SnapRequest) (*shared.SnapSession, error) {
			assert.Equal(t, view.ID, req.OrderID)
			assert.Equal(t, view.Total, req.GrossAmount)
			return &shared.SnapSession{Token: "snap-token", RedirectURL: "https://checkout.example/snap-token"}, nil
		},
	}
	p := NewPaymentCommands(uow, gw, &stubReadStore{view: view})

	session, err := p.CreateSession(context.Background(), view.ID, view.UserID, user.RoleCashier)

	require.NoError(t, err)
	assert.Equal(t, "snap-token", session.Token)
	assert.Equal(t, []string{"snap-token"}, repo.tokens)
}

func TestPaymentOwnership(t *testing.T) {
	b := gatewaySale()
	view := b.BuildReadModel()

	stranger := uuid.New()
	gw := &stubGateway{}
	p := NewPaymentCommands(&stubUoW{}, gw, &stubReadStore{view: view})

	t.Run("cashier cannot touch another cashier's sale", func(t *testing.T) {
		_, err := p.CreateSession(context.Background(), view.ID, stranger, user.RoleCashier)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = p.SyncStatus(context.Background(), view.ID, stranger, user.RoleCashier)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = p.CancelPayment(context.Background(), view.ID, stranger, user.RoleCashier)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin reaches any sale", func(t *testing.T) {
		gw.statusFn = func(context.Context, string) (*shared.GatewayStatus, error) {
			return nil, errors.New("gateway down")
		}

		got, err := p.SyncStatus(context.Background(), view.ID, stranger, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})
}
