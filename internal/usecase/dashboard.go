package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketDash/internal/domain/models"
	drepo "MarketDash/internal/domain/repository"
	applogger "MarketDash/pkg/logger"
	"MarketDash/pkg/metrics"
	"MarketDash/pkg/util"
)

// Action names, also used as metric labels and HTTP path values.
const (
	ActionLoad    = "load"
	ActionRefresh = "refresh"
	ActionPredict = "predict"
)

const (
	// DefaultRefreshMessage is acknowledged when the service sends no message.
	DefaultRefreshMessage = "Cache refreshed successfully."

	lockKey        = "dashboard:action"
	defaultLockTTL = 2 * time.Minute
)

var failurePrefix = map[string]string{
	ActionLoad:    "Failed to load market data: ",
	ActionRefresh: "Failed to refresh market cache: ",
	ActionPredict: "Failed to get prediction: ",
}

// ErrBusy is returned when another action holds the dashboard.
var ErrBusy = errors.New("dashboard: another action is in progress")

// ActionError is a failed call chain. Its message is the banner text.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return failurePrefix[e.Action] + e.Err.Error()
}

func (e *ActionError) Unwrap() error { return e.Err }

// DashboardOption configures DashboardController.
type DashboardOption func(*DashboardController)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) DashboardOption {
	return func(d *DashboardController) { d.now = now }
}

// WithLocker sets the guard shared by all actions.
func WithLocker(l drepo.Locker, ttl time.Duration) DashboardOption {
	return func(d *DashboardController) {
		d.locker = l
		if ttl > 0 {
			d.lockTTL = ttl
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m drepo.Metrics) DashboardOption {
	return func(d *DashboardController) { d.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) DashboardOption {
	return func(d *DashboardController) { d.logger = l }
}

// DashboardController drives the dashboard: it calls the market API, formats
// the answers and writes them into the view. Each action is a sequential
// chain that stops at the first failure and leaves the loading indicator
// hidden on every exit path.
type DashboardController struct {
	api     drepo.MarketAPI
	view    drepo.View
	format  *util.Formatter
	locker  drepo.Locker
	lockTTL time.Duration
	metrics drepo.Metrics
	logger  *applogger.Logger
	now     func() time.Time
}

// NewDashboardController wires a controller. Without WithLocker actions are
// not guarded against each other.
func NewDashboardController(api drepo.MarketAPI, view drepo.View, format *util.Formatter, opts ...DashboardOption) *DashboardController {
	d := &DashboardController{
		api:     api,
		view:    view,
		format:  format,
		lockTTL: defaultLockTTL,
		metrics: metrics.Nop{},
		logger:  applogger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init is the page-ready step: stamp today's date and load market data.
func (d *DashboardController) Init(ctx context.Context) error {
	d.view.SetCurrentDate("Data: " + d.format.FormatDate(d.now()))
	return d.LoadMarketData(ctx)
}

// Run dispatches an action by name.
func (d *DashboardController) Run(ctx context.Context, action string) error {
	switch action {
	case ActionLoad:
		return d.LoadMarketData(ctx)
	case ActionRefresh:
		return d.RefreshMarketCache(ctx)
	case ActionPredict:
		return d.GetPrediction(ctx)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

// LoadMarketData fetches the snapshot and the live VIX quote and renders
// both. Nothing is written unless both calls succeed.
func (d *DashboardController) LoadMarketData(ctx context.Context) error {
	return d.guarded(ctx, ActionLoad, func(ctx context.Context) error {
		return d.chain(ctx, ActionLoad, d.loadMarketData)
	})
}

// RefreshMarketCache asks the service to rebuild its cache, acknowledges the
// server message and reloads market data once. A failed reload is reported
// by the reload itself and returned.
func (d *DashboardController) RefreshMarketCache(ctx context.Context) error {
	return d.guarded(ctx, ActionRefresh, func(ctx context.Context) error {
		var reloadErr error
		err := d.chain(ctx, ActionRefresh, func(ctx context.Context) error {
			res, err := d.api.RefreshCache(ctx)
			if err != nil {
				return err
			}

			msg := res.Message
			if msg == "" {
				msg = DefaultRefreshMessage
			}
			d.view.Acknowledge(msg)

			reloadErr = d.chain(ctx, ActionLoad, d.loadMarketData)
			return nil
		})
		if err != nil {
			return err
		}
		return reloadErr
	})
}

// GetPrediction requests the model signal and renders the recommendation.
func (d *DashboardController) GetPrediction(ctx context.Context) error {
	return d.guarded(ctx, ActionPredict, func(ctx context.Context) error {
		return d.chain(ctx, ActionPredict, func(ctx context.Context) error {
			p, err := d.api.Predict(ctx)
			if err != nil {
				return err
			}

			date := p.Date
			if date == "" {
				date = util.Placeholder
			}
			rec := models.RecommendationFor(*p)

			d.view.SetPredictionDate(date)
			d.view.SetRecommendation(rec.Label, rec.Style)
			d.view.ShowPrediction()

			d.logger.Info("prediction rendered",
				applogger.String("date", date),
				applogger.Bool("favorable", p.Favorable()),
			)
			return nil
		})
	})
}

func (d *DashboardController) loadMarketData(ctx context.Context) error {
	snap, err := d.api.MarketData(ctx)
	if err != nil {
		return err
	}
	vix, err := d.api.VIXCurrentPrice(ctx)
	if err != nil {
		return err
	}

	d.renderMarket(snap, vix)
	return nil
}

func (d *DashboardController) renderMarket(snap *models.MarketSnapshot, vix *models.VixQuote) {
	f := d.format

	d.view.SetBTCOpen("$" + f.Number(snap.BTCOpen))
	d.view.SetBTCCloseMA3("$" + f.Number(snap.BTCCloseMA3))
	d.view.SetBTCCurrent("$" + f.Number(snap.BTCCurrent))

	v := models.NewVariation(snap.BTCOpen, snap.BTCCurrent)
	d.view.SetBTCVariation(fmt.Sprintf("%s %s%%", v.Arrow(), f.Float(v.Percent)), v.Trend)

	d.view.SetVIXOpen(f.Number(snap.VIXOpen))
	d.view.SetVIXCloseMA3(f.Number(snap.VIXCloseMA3))
	d.view.SetVIXCurrentPrice(f.Number(vix.CurrentPrice))

	d.view.ShowMarketData()
	d.view.SetLastUpdated(util.FormatClock(d.now()))

	if snap.BTCCurrent != nil {
		d.metrics.RecordLastPrice("BTC", *snap.BTCCurrent)
	}
	if vix.CurrentPrice != nil {
		d.metrics.RecordLastPrice("VIX", *vix.CurrentPrice)
	}
}

// guarded runs fn while holding the controller-wide lock. An overlapping
// call fails with ErrBusy and leaves the view alone. fn gets a deadline at
// the lease expiry so a chain never runs unguarded.
func (d *DashboardController) guarded(ctx context.Context, action string, fn func(context.Context) error) error {
	if d.locker == nil {
		return fn(ctx)
	}

	token, ok, err := d.locker.TryLock(ctx, lockKey, d.lockTTL)
	if err != nil {
		d.metrics.RecordError("lock")
		return fmt.Errorf("acquire action lock: %w", err)
	}
	if !ok {
		d.metrics.RecordAction(action, "busy")
		d.logger.Warn("action rejected, dashboard busy", applogger.String("action", action))
		return ErrBusy
	}
	defer func() {
		// Released on a fresh context so a cancelled request still frees the guard.
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := d.locker.Unlock(unlockCtx, lockKey, token); err != nil {
			d.logger.Warn("release action lock", applogger.String("action", action), applogger.Error(err))
		}
	}()

	leaseCtx, cancel := context.WithTimeout(ctx, d.lockTTL)
	defer cancel()
	return fn(leaseCtx)
}

// chain wraps one call chain with the banner and loading indicator.
func (d *DashboardController) chain(ctx context.Context, action string, fn func(context.Context) error) (err error) {
	d.view.HideError()
	d.view.ShowLoading()
	start := d.now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
		defer d.view.HideLoading()

		elapsed := d.now().Sub(start)
		d.metrics.RecordLatency(action, elapsed.Seconds())

		if err == nil {
			d.metrics.RecordAction(action, "ok")
			d.logger.Debug("action finished", applogger.String("action", action), applogger.Duration("duration_ms", elapsed))
			return
		}

		d.metrics.RecordAction(action, "failed")
		d.metrics.RecordError(errorKind(err))
		aerr := &ActionError{Action: action, Err: err}
		d.view.ShowError(aerr.Error())
		d.logger.Warn("action failed",
			applogger.String("action", action),
			applogger.Duration("duration_ms", elapsed),
			applogger.Error(err),
		)
		err = aerr
	}()

	return fn(ctx)
}

func errorKind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "transport"
}
