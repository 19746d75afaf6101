package bootstrap

import (
	"github.com/fawwazmw/cashier-app/internal/infra/gateway"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(shared.PaymentGateway)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) *gateway.MidtransGateway {
	return gateway.NewMidtransGateway(cfg.Gateway)
}
