package di

import (
	"context"
	"fmt"
	"io"

	"MarketDash/internal/domain/repository"
	"MarketDash/internal/handler/api"
	"MarketDash/internal/service/marketapi"
	"MarketDash/internal/usecase"
	"MarketDash/internal/view"
	"MarketDash/pkg/config"
	xhttp "MarketDash/pkg/http"
	"MarketDash/pkg/lock"
	applogger "MarketDash/pkg/logger"
	"MarketDash/pkg/metrics"
	"MarketDash/pkg/server"
	"MarketDash/pkg/util"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideFormatter creates the locale formatter for numbers and dates.
func ProvideFormatter(cfg *config.Config) (*util.Formatter, error) {
	return util.NewFormatter(cfg.Dashboard.Locale)
}

// ProvideMarketAPI creates the market service client.
func ProvideMarketAPI(cfg *config.Config) repository.MarketAPI {
	return marketapi.New(cfg.API.BaseURL, marketapi.WithTimeout(cfg.API.Timeout))
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideLocker creates the action guard. The cleanup closes Redis connections.
func ProvideLocker(cfg *config.Config, logger *applogger.Logger) (repository.Locker, func(), error) {
	switch cfg.Lock.Backend {
	case "redis":
		l, err := lock.NewRedisLocker(context.Background(),
			lock.WithRedisAddr(cfg.Lock.RedisAddr),
			lock.WithRedisPassword(cfg.Lock.RedisPassword),
			lock.WithRedisDB(cfg.Lock.RedisDB),
			lock.WithRedisPrefix(cfg.Lock.Prefix),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis locker: %w", err)
		}
		logger.Info("action guard on redis", applogger.String("addr", cfg.Lock.RedisAddr))
		return l, func() {
			if err := l.Close(); err != nil {
				logger.Warn("redis close error", applogger.Error(err))
			}
		}, nil
	default:
		return lock.NewMemoryLocker(), func() {}, nil
	}
}

// ProvideStateView creates the in-memory view backing the web page.
func ProvideStateView(cfg *config.Config) *view.StateView {
	return view.NewStateView(cfg.Dashboard.StreamBuffer)
}

// ProvideConsoleView creates the line-oriented view used by the CLI.
func ProvideConsoleView(w io.Writer) *view.ConsoleView {
	return view.NewConsoleView(w, false)
}

// ProvideDashboard creates the dashboard controller use case.
func ProvideDashboard(
	cfg *config.Config,
	marketAPI repository.MarketAPI,
	v repository.View,
	format *util.Formatter,
	locker repository.Locker,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.DashboardController {
	return usecase.NewDashboardController(marketAPI, v, format,
		usecase.WithLocker(locker, cfg.Lock.TTL),
		usecase.WithMetrics(m),
		usecase.WithLogger(logger.With(applogger.String("component", "dashboard"))),
	)
}

// ProvideDashboardHandler creates the echo handler for the page, API and stream.
func ProvideDashboardHandler(cfg *config.Config, logger *applogger.Logger, dash *usecase.DashboardController, state *view.StateView) *api.DashboardEchoHandler {
	return api.NewDashboardEchoHandler(logger, dash, state, cfg.Dashboard.PingInterval)
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(cfg *config.Config, logger *applogger.Logger, h *api.DashboardEchoHandler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(logger, []xhttp.Handler{h},
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, srv *xhttp.Server, dash *usecase.DashboardController) *server.App {
	return server.New(cfg, logger, srv, dash)
}
