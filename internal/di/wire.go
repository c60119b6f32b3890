//go:build wireinject
// +build wireinject

package di

import (
	"io"

	"github.com/google/wire"

	"MarketDash/internal/domain/repository"
	"MarketDash/internal/usecase"
	"MarketDash/internal/view"
	"MarketDash/pkg/config"
	"MarketDash/pkg/server"
)

var coreSet = wire.NewSet(
	ProvideLogger,
	ProvideFormatter,
	ProvideMarketAPI,
	ProvideMetrics,
	ProvideLocker,
	ProvideDashboard,
)

// InitializeApp wires up the dashboard server.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		coreSet,
		ProvideStateView,
		wire.Bind(new(repository.View), new(*view.StateView)),
		ProvideDashboardHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeCLI wires a dashboard that renders into w.
func InitializeCLI(cfg *config.Config, w io.Writer) (*usecase.DashboardController, func(), error) {
	wire.Build(
		coreSet,
		ProvideConsoleView,
		wire.Bind(new(repository.View), new(*view.ConsoleView)),
	)
	return nil, nil, nil
}
