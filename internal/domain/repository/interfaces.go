package repository

import (
	"context"
	"time"

	"MarketDash/internal/domain/models"
)

// MarketAPI is the local market data service the dashboard reads from.
type MarketAPI interface {
	MarketData(ctx context.Context) (*models.MarketSnapshot, error)
	VIXCurrentPrice(ctx context.Context) (*models.VixQuote, error)
	RefreshCache(ctx context.Context) (*models.RefreshResult, error)
	Predict(ctx context.Context) (*models.Prediction, error)
}

// View binds the controller to the page regions it writes. Regions are only
// ever written, never read back.
type View interface {
	SetCurrentDate(text string)

	SetBTCOpen(text string)
	SetBTCCloseMA3(text string)
	SetBTCCurrent(text string)
	// SetBTCVariation applies trend to both the label and its card and
	// removes trend.Opposite() from them.
	SetBTCVariation(text string, trend models.Trend)
	SetVIXOpen(text string)
	SetVIXCloseMA3(text string)
	SetVIXCurrentPrice(text string)
	ShowMarketData()
	SetLastUpdated(text string)

	SetPredictionDate(text string)
	SetRecommendation(label, style string)
	ShowPrediction()

	ShowError(message string)
	HideError()
	ShowLoading()
	HideLoading()

	// Acknowledge surfaces a message the user has to dismiss.
	Acknowledge(message string)
}

type Metrics interface {
	RecordAction(action, outcome string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}

// Locker guards actions against overlapping invocations. Each successful
// TryLock returns a token; Unlock only releases the lease carrying it.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}
