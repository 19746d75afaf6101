package components

import (
	"time"

	"github.com/fawwazmw/cashier-app/internal/pkg/clock"
	"github.com/fawwazmw/cashier-app/internal/pkg/config"
	"github.com/fawwazmw/cashier-app/internal/usecase"
	"github.com/fawwazmw/cashier-app/internal/usecase/commands"
	"github.com/fawwazmw/cashier-app/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewReportLocation,

		commands.NewAuthCommands,
		commands.NewProductCommands,
		commands.NewTransactionCommands,
		commands.NewPaymentCommands,
		commands.NewBusinessCommands,

		queries.NewUserQueries,
		queries.NewProductQueries,
		queries.NewTransactionQueries,
		queries.NewBusinessQueries,

		usecase.NewTokenValidator,
	),
)

// NewReportLocation is the timezone used to bucket daily sales reports.
func NewReportLocation(cfg config.Config) *time.Location {
	loc, err := time.LoadLocation(cfg.Log.TimeZone)
	if err != nil {
		return time.FixedZone(cfg.Log.TimeZone, cfg.Log.TimeZoneOffset)
	}
	return loc
}
