package components

import (
	"github.com/fawwazmw/cashier-app/internal/infra/db"
	"github.com/fawwazmw/cashier-app/internal/infra/readstore"
	"github.com/fawwazmw/cashier-app/internal/infra/uow"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductReadStore)),
		),
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.TransactionReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewBusinessReadStore,
			fx.As(new(queries.BusinessReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
