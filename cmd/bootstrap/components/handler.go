package components

import (
	"github.com/fawwazmw/cashier-app/internal/handler"
	"github.com/fawwazmw/cashier-app/internal/handler/api"
	"github.com/fawwazmw/cashier-app/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewProductHandler,
		api.NewTransactionHandler,
		api.NewPaymentHandler,
		api.NewBusinessHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
