package queries

import (
	"context"
	"time"

	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/infra"
	"github.com/fawwazmw/cashier-app/internal/pkg/clock"
	"github.com/fawwazmw/cashier-app/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errs.New("transaction not found")
	ErrTransactionAccess   = errs.New("transaction access denied")
)

// TransactionFilter narrows the transaction listing. Nil fields match
// everything; UserID scopes the listing to one cashier.
type TransactionFilter struct {
	UserID        *uuid.UUID
	Status        *string
	PaymentMethod *string
	// Search matches against the transaction ID and customer name.
	Search *string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

func (f *TransactionFilter) normalize() {
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

type TransactionReadStore interface {
	FindByID(ctx context.Context, id string) (*TransactionView, error)
	List(ctx context.Context, filter TransactionFilter) ([]*TransactionView, int64, error)
	OwnerOf(ctx context.Context, id string) (uuid.UUID, error)
	SalesSummary(ctx context.Context, dayStart, dayEnd time.Time, tz string) (*SalesSummaryView, error)
}

type TransactionQueries interface {
	GetByID(ctx context.Context, id string, actorID uuid.UUID, actorRole user.Role) (*TransactionView, error)
	List(ctx context.Context, filter TransactionFilter, actorID uuid.UUID, actorRole user.Role) ([]*TransactionView, Page, error)
	SalesSummary(ctx context.Context, date *time.Time) (*SalesSummaryView, error)
}

type transactionQueriesImpl struct {
	readStore TransactionReadStore
	clock     clock.Clock
	location  *time.Location
}

func NewTransactionQueries(readStore TransactionReadStore, clock clock.Clock, location *time.Location) TransactionQueries {
	return &transactionQueriesImpl{
		readStore: readStore,
		clock:     clock,
		location:  location,
	}
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, id string, actorID uuid.UUID, actorRole user.Role) (*TransactionView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if !actorRole.CanAccessTransactionOf(view.UserID == actorID) {
		return nil, ErrTransactionAccess
	}

	return view, nil
}

// List scopes cashiers to their own sales regardless of the requested filter.
func (q *transactionQueriesImpl) List(ctx context.Context, filter TransactionFilter, actorID uuid.UUID, actorRole user.Role) ([]*TransactionView, Page, error) {
	filter.normalize()

	if !actorRole.CanAccessTransactionOf(false) {
		filter.UserID = &actorID
	}

	views, total, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, Page{}, err
	}
	return views, NewPage(total, filter.Limit, filter.Offset), nil
}

// SalesSummary aggregates one local calendar day, defaulting to today.
func (q *transactionQueriesImpl) SalesSummary(ctx context.Context, date *time.Time) (*SalesSummaryView, error) {
	// An explicit date names a calendar day, not an instant: its Y/M/D are
	// taken as-is so a UTC-midnight parse does not shift to the previous day
	// in report zones west of UTC.
	year, month, dom := q.clock.Now().In(q.location).Date()
	if date != nil {
		year, month, dom = date.Date()
	}

	dayStart := time.Date(year, month, dom, 0, 0, 0, 0, q.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	return q.readStore.SalesSummary(ctx, dayStart, dayEnd, q.location.String())
}
