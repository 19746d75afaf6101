package shared

import (
	"context"

	"github.com/fawwazmw/cashier-app/internal/domain/business"
	"github.com/fawwazmw/cashier-app/internal/domain/product"
	"github.com/fawwazmw/cashier-app/internal/domain/transaction"
	"github.com/fawwazmw/cashier-app/internal/domain/user"
	"github.com/fawwazmw/cashier-app/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for multi-row write operations with retry logic.
	// Every stock read+decrement, transaction insert and status write runs
	// inside one of these; partial effects are never observable.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Products() ProductRepository
	Transactions() TransactionRepository
	Users() UserRepository
	Business() BusinessRepository
	DB() db.DBTX
}

type ProductRepository interface {
	// FindActiveByIDForUpdate locks the product row until the enclosing
	// transaction commits, serializing concurrent reservations.
	FindActiveByIDForUpdate(ctx context.Context, id int64) (*product.Product, error)
	FindActiveByID(ctx context.Context, id int64) (*product.Product, error)
	FindActiveByName(ctx context.Context, name string) (*product.Product, error)
	Create(ctx context.Context, p *product.Product) (int64, error)
	Update(ctx context.Context, id int64, patch ProductPatch) error
	AdjustStock(ctx context.Context, id int64, delta int) error
	SetStock(ctx context.Context, id int64, stock int) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	IsReferencedByLines(ctx context.Context, id int64) (bool, error)
}

type TransactionRepository interface {
	CreateWithLines(ctx context.Context, t *transaction.Transaction) error
	// FindByIDForUpdate loads the transaction and its lines with the row
	// locked, so concurrent settle/cancel attempts serialize.
	FindByIDForUpdate(ctx context.Context, id string) (*transaction.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status transaction.Status) error
	SetPaymentToken(ctx context.Context, id, token string) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type BusinessRepository interface {
	Upsert(ctx context.Context, b *business.Business) (uuid.UUID, error)
}
