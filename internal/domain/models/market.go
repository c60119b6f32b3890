package models

// MarketSnapshot is the body of GET /market-data. Price fields are optional;
// a nil value is rendered as the display placeholder.
type MarketSnapshot struct {
	Date        string   `json:"date,omitempty"`
	BTCOpen     *float64 `json:"btc_open"`
	BTCClose    *float64 `json:"btc_close,omitempty"`
	BTCHigh     *float64 `json:"btc_high,omitempty"`
	BTCLow      *float64 `json:"btc_low,omitempty"`
	BTCCloseMA3 *float64 `json:"btc_close_ma3"`
	BTCCurrent  *float64 `json:"btc_current"`
	VIXOpen     *float64 `json:"vix_open"`
	VIXClose    *float64 `json:"vix_close,omitempty"`
	VIXCurrent  *float64 `json:"vix_current,omitempty"`
	VIXCloseMA3 *float64 `json:"vix_close_ma3"`
	Error       string   `json:"error,omitempty"`
}

// VixQuote is the body of GET /vix-current-price.
type VixQuote struct {
	CurrentPrice *float64 `json:"current_price"`
	Error        string   `json:"error,omitempty"`
}

// RefreshResult is the body of POST /refresh-cache.
type RefreshResult struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Prediction is the body of POST /predict.
type Prediction struct {
	Date           string `json:"date"`
	PredictedClass *int   `json:"predicted_class"`
	Error          string `json:"error,omitempty"`
}

// Favorable reports whether the model signalled to operate. Only class 1 counts.
func (p Prediction) Favorable() bool {
	return p.PredictedClass != nil && *p.PredictedClass == 1
}

// ErrorMessage exposes the application error carried by a body, if any.
type ErrorMessage interface {
	ErrorMessage() string
}

func (m MarketSnapshot) ErrorMessage() string { return m.Error }
func (q VixQuote) ErrorMessage() string       { return q.Error }
func (r RefreshResult) ErrorMessage() string  { return r.Error }
func (p Prediction) ErrorMessage() string     { return p.Error }
